package imagehandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glow-server/internal/config"
	"glow-server/internal/domain/credit"
	"glow-server/internal/domain/image"
	"glow-server/internal/infrastructure/inference"
	imagerequests "glow-server/internal/interfaces/httpserver/requests/image"
	imageclient "glow-server/internal/utils/httpclients/image"
	"glow-server/internal/utils/platformerrors"
)

type fakeImageRepo struct {
	mu     sync.Mutex
	nextID uint
	images []*image.GeneratedImage
}

func (r *fakeImageRepo) Create(_ context.Context, img *image.GeneratedImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	img.ID = r.nextID
	cp := *img
	r.images = append(r.images, &cp)
	return nil
}

func (r *fakeImageRepo) FindByFilter(_ context.Context, filter image.ImageFilter) ([]*image.GeneratedImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*image.GeneratedImage
	for i := len(r.images) - 1; i >= 0; i-- {
		img := r.images[i]
		if filter.UserID != nil && img.UserID != *filter.UserID {
			continue
		}
		cp := *img
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeImageRepo) FindByPublicID(_ context.Context, publicID string) (*image.GeneratedImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, img := range r.images {
		if img.PublicID == publicID {
			cp := *img
			return &cp, nil
		}
	}
	return nil, errors.New("record not found")
}

type fakeLedger struct {
	mu       sync.Mutex
	balances map[uint]int
	entries  []*credit.Entry
}

func (l *fakeLedger) GetBalance(_ context.Context, userID uint) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[userID], nil
}

func (l *fakeLedger) DebitIfSufficient(_ context.Context, userID uint, amount int) (int, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	balance := l.balances[userID]
	if balance < amount {
		return balance, false, nil
	}
	l.balances[userID] = balance - amount
	return balance - amount, true, nil
}

func (l *fakeLedger) Credit(_ context.Context, userID uint, amount int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[userID] += amount
	return l.balances[userID], nil
}

func (l *fakeLedger) RecordEntry(_ context.Context, entry *credit.Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	return nil
}

func (l *fakeLedger) ListEntries(_ context.Context, userID uint, limit int) ([]*credit.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*credit.Entry
	for i := len(l.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if l.entries[i].UserID == userID {
			out = append(out, l.entries[i])
		}
	}
	return out, nil
}

type imageTestEnv struct {
	handler *ImageHandler
	repo    *fakeImageRepo
	ledger  *fakeLedger
}

func newImageTestEnv(t *testing.T, providerHandler http.HandlerFunc, startBalance int) *imageTestEnv {
	t.Helper()

	server := httptest.NewServer(providerHandler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		ServiceName:          "glow-server-test",
		ImageProviderBaseURL: server.URL,
		ImageModel:           "dall-e-3",
		ImageSize:            "1024x1024",
		ImageCreditCost:      5,
	}

	repo := &fakeImageRepo{}
	ledger := &fakeLedger{balances: map[uint]int{1: startBalance}}

	handler := NewImageHandler(
		image.NewService(repo),
		credit.NewService(ledger),
		inference.NewInferenceProvider(cfg),
		cfg,
	)
	return &imageTestEnv{handler: handler, repo: repo, ledger: ledger}
}

func generationHandler(url string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := imageclient.GenerateResponse{
			Created: 1700000000,
			Data:    []imageclient.ImageData{{URL: url}},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func TestGenerateImage(t *testing.T) {
	env := newImageTestEnv(t, generationHandler("https://cdn.example.com/img1.png"), 12)

	resp, err := env.handler.GenerateImage(context.Background(), 1, imagerequests.GenerateImageRequest{
		Prompt: "a lighthouse at dusk",
	})
	require.NoError(t, err)

	assert.Equal(t, 7, resp.CreditBalance)
	assert.Equal(t, "https://cdn.example.com/img1.png", resp.Image.URL)
	assert.Equal(t, "a lighthouse at dusk", resp.Image.Prompt)

	require.Len(t, env.repo.images, 1)
	require.Len(t, env.ledger.entries, 1)
	assert.Equal(t, -5, env.ledger.entries[0].Amount)
	assert.Equal(t, credit.ReasonImage, env.ledger.entries[0].Reason)
}

func TestGenerateImageInsufficientCredits(t *testing.T) {
	providerCalled := false
	env := newImageTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		providerCalled = true
		generationHandler("unreachable")(w, r)
	}, 4)

	_, err := env.handler.GenerateImage(context.Background(), 1, imagerequests.GenerateImageRequest{
		Prompt: "a lighthouse at dusk",
	})
	require.Error(t, err)
	assert.True(t, credit.IsInsufficientCredits(err))

	// Rejected, not clamped: the balance stays at 4 and nothing else ran.
	balance, _ := env.ledger.GetBalance(context.Background(), 1)
	assert.Equal(t, 4, balance)
	assert.False(t, providerCalled)
	assert.Empty(t, env.repo.images)
	assert.Empty(t, env.ledger.entries)
}

func TestGenerateImageProviderFailureKeepsCharge(t *testing.T) {
	env := newImageTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"generation failed"}`, http.StatusInternalServerError)
	}, 12)

	_, err := env.handler.GenerateImage(context.Background(), 1, imagerequests.GenerateImageRequest{
		Prompt: "a lighthouse at dusk",
	})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal))

	// The deduction is not refunded on provider failure. The ledger entry for
	// the spend stays, and no gallery record exists.
	balance, _ := env.ledger.GetBalance(context.Background(), 1)
	assert.Equal(t, 7, balance)
	require.Len(t, env.ledger.entries, 1)
	assert.Equal(t, -5, env.ledger.entries[0].Amount)
	assert.Empty(t, env.repo.images)
}

func TestListImagesNewestFirst(t *testing.T) {
	env := newImageTestEnv(t, generationHandler("https://cdn.example.com/img.png"), 100)

	for _, prompt := range []string{"first", "second", "third"} {
		_, err := env.handler.GenerateImage(context.Background(), 1, imagerequests.GenerateImageRequest{Prompt: prompt})
		require.NoError(t, err)
	}

	resp, err := env.handler.ListImages(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Images, 3)
	assert.Equal(t, "third", resp.Images[0].Prompt)
	assert.Equal(t, "first", resp.Images[2].Prompt)
}
