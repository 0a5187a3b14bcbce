package document

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glow-server/internal/utils/platformerrors"
)

type fakeDocumentRepo struct {
	nextID uint
	docs   []*Document
	chunks map[uint][]*DocumentChunk
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{chunks: map[uint][]*DocumentChunk{}}
}

func (r *fakeDocumentRepo) Create(_ context.Context, doc *Document, chunks []*DocumentChunk) error {
	r.nextID++
	doc.ID = r.nextID
	r.docs = append(r.docs, doc)
	for _, c := range chunks {
		c.DocumentID = doc.ID
	}
	r.chunks[doc.ID] = chunks
	return nil
}

func (r *fakeDocumentRepo) FindByFilter(_ context.Context, filter DocumentFilter) ([]*Document, error) {
	var out []*Document
	for i := len(r.docs) - 1; i >= 0; i-- {
		doc := r.docs[i]
		if filter.UserID != nil && doc.UserID != *filter.UserID {
			continue
		}
		out = append(out, doc)
	}
	return out, nil
}

func (r *fakeDocumentRepo) FindByPublicID(_ context.Context, publicID string) (*Document, error) {
	for _, doc := range r.docs {
		if doc.PublicID == publicID {
			return doc, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *fakeDocumentRepo) ListChunks(_ context.Context, documentID uint) ([]*DocumentChunk, error) {
	return r.chunks[documentID], nil
}

func TestIngestTextDocumentChunks(t *testing.T) {
	repo := newFakeDocumentRepo()
	svc := NewService(repo, 1<<20, 100, 10)

	content := []byte(strings.Repeat("All work and no play makes a dull day. ", 10))
	doc, err := svc.Ingest(context.Background(), 1, "notes.txt", content)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(doc.PublicID, "doc_"))
	assert.Equal(t, "notes.txt", doc.Filename)
	assert.Contains(t, doc.MimeType, "text/plain")
	assert.Equal(t, int64(len(content)), doc.SizeBytes)
	assert.Greater(t, doc.ChunkCount, 1)

	chunks, err := svc.Chunks(context.Background(), 1, doc.PublicID)
	require.NoError(t, err)
	require.Len(t, chunks, doc.ChunkCount)

	// Consecutive chunks overlap so boundary sentences stay searchable.
	first := []rune(chunks[0].Content)
	second := chunks[1].Content
	tail := string(first[len(first)-10:])
	assert.True(t, strings.HasPrefix(second, tail))
}

func TestIngestBinaryDocumentKeepsMetadataOnly(t *testing.T) {
	repo := newFakeDocumentRepo()
	svc := NewService(repo, 1<<20, 100, 10)

	// PNG magic header marks the upload as binary.
	content := append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, bytes.Repeat([]byte{0x00}, 64)...)
	doc, err := svc.Ingest(context.Background(), 1, "diagram.png", content)
	require.NoError(t, err)

	assert.Equal(t, "image/png", doc.MimeType)
	assert.Zero(t, doc.ChunkCount)

	chunks, err := svc.Chunks(context.Background(), 1, doc.PublicID)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestIngestRejectsEmptyAndOversize(t *testing.T) {
	repo := newFakeDocumentRepo()
	svc := NewService(repo, 16, 100, 10)

	_, err := svc.Ingest(context.Background(), 1, "empty.txt", nil)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	_, err = svc.Ingest(context.Background(), 1, "big.txt", []byte(strings.Repeat("a", 17)))
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	assert.Empty(t, repo.docs)
}

func TestChunksEnforcesOwnership(t *testing.T) {
	repo := newFakeDocumentRepo()
	svc := NewService(repo, 1<<20, 100, 10)

	doc, err := svc.Ingest(context.Background(), 1, "notes.txt", []byte("short note"))
	require.NoError(t, err)

	_, err = svc.Chunks(context.Background(), 2, doc.PublicID)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden))
}
