package thread

import (
	"context"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glow-server/internal/utils/platformerrors"
	"glow-server/internal/utils/stringutils"
)

type fakeRepo struct {
	nextID   uint
	threads  map[uint]*Thread
	messages []*Message
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, threads: map[uint]*Thread{}}
}

func (r *fakeRepo) Create(_ context.Context, t *Thread) error {
	t.ID = r.nextID
	r.nextID++
	copied := *t
	r.threads[t.ID] = &copied
	return nil
}

func (r *fakeRepo) FindByFilter(_ context.Context, filter ThreadFilter) ([]*Thread, error) {
	var out []*Thread
	for _, t := range r.threads {
		if filter.UserID != nil && t.UserID != *filter.UserID {
			continue
		}
		copied := *t
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *fakeRepo) FindByPublicID(_ context.Context, publicID string) (*Thread, error) {
	for _, t := range r.threads {
		if t.PublicID == publicID {
			copied := *t
			return &copied, nil
		}
	}
	return nil, platformerrors.NewError(context.Background(), platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "thread not found", nil, "")
}

func (r *fakeRepo) Update(_ context.Context, t *Thread) error {
	copied := *t
	r.threads[t.ID] = &copied
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uint) error {
	delete(r.threads, id)
	return nil
}

func (r *fakeRepo) AppendMessage(_ context.Context, m *Message) error {
	m.ID = r.nextID
	r.nextID++
	copied := *m
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *fakeRepo) ListMessages(_ context.Context, threadID uint) ([]*Message, error) {
	var out []*Message
	for _, m := range r.messages {
		if m.ThreadID == threadID {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeRepo) LastMessages(_ context.Context, threadID uint, n int) ([]*Message, error) {
	all, _ := r.ListMessages(context.Background(), threadID)
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all, nil
}

func (r *fakeRepo) CountMessages(_ context.Context, threadID uint) (int64, error) {
	var count int64
	for _, m := range r.messages {
		if m.ThreadID == threadID {
			count++
		}
	}
	return count, nil
}

func TestCreateThreadDefaults(t *testing.T) {
	svc := NewService(newFakeRepo())

	created, err := svc.Create(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, stringutils.DefaultTitle, created.Title)
	assert.Equal(t, uint(7), created.UserID)
	assert.Contains(t, created.PublicID, "thr_")
}

func TestResolveOrCreate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	existing, err := svc.Create(ctx, 1)
	require.NoError(t, err)

	t.Run("nil id creates new thread", func(t *testing.T) {
		got, err := svc.ResolveOrCreate(ctx, 1, nil)
		require.NoError(t, err)
		assert.NotEqual(t, existing.PublicID, got.PublicID)
	})

	t.Run("existing id resolves thread", func(t *testing.T) {
		got, err := svc.ResolveOrCreate(ctx, 1, &existing.PublicID)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, got.ID)
	})

	t.Run("other user's thread is forbidden", func(t *testing.T) {
		_, err := svc.ResolveOrCreate(ctx, 2, &existing.PublicID)
		assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden))
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		missing := "thr_doesnotexist"
		_, err := svc.ResolveOrCreate(ctx, 1, &missing)
		assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
	})
}

func TestAppendUserMessageDerivesTitleOnce(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1)
	require.NoError(t, err)

	_, err = svc.AppendUserMessage(ctx, created, "Plan a weekend trip\nto the coast")
	require.NoError(t, err)
	assert.Equal(t, "Plan a weekend trip to the coast", created.Title)

	_, err = svc.AppendUserMessage(ctx, created, "A completely different second message")
	require.NoError(t, err)
	assert.Equal(t, "Plan a weekend trip to the coast", created.Title)
}

func TestRename(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1)
	require.NoError(t, err)

	t.Run("sets custom title", func(t *testing.T) {
		renamed, err := svc.Rename(ctx, 1, created.PublicID, "Trip planning")
		require.NoError(t, err)
		assert.Equal(t, "Trip planning", renamed.Title)
	})

	t.Run("blank title is a no-op", func(t *testing.T) {
		renamed, err := svc.Rename(ctx, 1, created.PublicID, "   ")
		require.NoError(t, err)
		assert.Equal(t, "Trip planning", renamed.Title)
	})

	t.Run("custom title survives later first-message derivation check", func(t *testing.T) {
		fresh, err := svc.GetOwned(ctx, 1, created.PublicID)
		require.NoError(t, err)
		_, err = svc.AppendUserMessage(ctx, fresh, "Hello there")
		require.NoError(t, err)
		assert.Equal(t, "Trip planning", fresh.Title)
	})
}

func TestContextWindowKeepsChronologicalOrder(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1)
	require.NoError(t, err)

	for i := 0; i < 12; i++ {
		_, err := svc.AppendUserMessage(ctx, created, "message "+strconv.Itoa(i))
		require.NoError(t, err)
	}

	window, err := svc.ContextWindow(ctx, created.ID, 10)
	require.NoError(t, err)
	require.Len(t, window, 10)
	assert.Equal(t, "message 2", window[0].Content)
	assert.Equal(t, "message 11", window[9].Content)
}

func TestDeleteLeavesMessagesInPlace(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1)
	require.NoError(t, err)
	_, err = svc.AppendUserMessage(ctx, created, "hello")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1, created.PublicID))

	_, err = svc.GetOwned(ctx, 1, created.PublicID)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	count, err := repo.CountMessages(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1)
	require.NoError(t, err)

	err = svc.Delete(ctx, 2, created.PublicID)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden))
}
