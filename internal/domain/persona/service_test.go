package persona

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glow-server/internal/utils/platformerrors"
)

type fakeRepo struct {
	nextID   uint
	personas map[string]*Persona
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{personas: map[string]*Persona{}}
}

func (r *fakeRepo) Create(_ context.Context, p *Persona) error {
	r.nextID++
	p.ID = r.nextID
	r.personas[p.PublicID] = p
	return nil
}

func (r *fakeRepo) FindByFilter(_ context.Context, filter PersonaFilter) ([]*Persona, error) {
	var out []*Persona
	for _, p := range r.personas {
		if filter.UserID != nil && p.UserID != *filter.UserID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeRepo) FindByPublicID(_ context.Context, publicID string) (*Persona, error) {
	p, ok := r.personas[publicID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (r *fakeRepo) Update(_ context.Context, p *Persona) error {
	r.personas[p.PublicID] = p
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uint) error {
	for key, p := range r.personas {
		if p.ID == id {
			delete(r.personas, key)
		}
	}
	return nil
}

func TestCreatePersona(t *testing.T) {
	svc := NewService(newFakeRepo())

	p, err := svc.Create(context.Background(), 1, "Pirate", "You are a pirate.")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(p.PublicID, "prs_"))
	assert.Equal(t, "Pirate", p.Name)
	assert.Equal(t, "You are a pirate.", p.SystemPrompt)
}

func TestCreatePersonaValidation(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), 1, "  ", "prompt")
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	_, err = svc.Create(context.Background(), 1, "Pirate", "")
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestUpdatePersonaPartial(t *testing.T) {
	svc := NewService(newFakeRepo())

	p, err := svc.Create(context.Background(), 1, "Pirate", "You are a pirate.")
	require.NoError(t, err)

	name := "Captain"
	updated, err := svc.Update(context.Background(), 1, p.PublicID, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Captain", updated.Name)
	// Nil field keeps the stored value.
	assert.Equal(t, "You are a pirate.", updated.SystemPrompt)

	blank := "   "
	_, err = svc.Update(context.Background(), 1, p.PublicID, &blank, nil)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestPersonaOwnership(t *testing.T) {
	svc := NewService(newFakeRepo())

	p, err := svc.Create(context.Background(), 1, "Pirate", "You are a pirate.")
	require.NoError(t, err)

	_, err = svc.GetOwned(context.Background(), 2, p.PublicID)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden))

	err = svc.Delete(context.Background(), 2, p.PublicID)
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden))

	err = svc.Delete(context.Background(), 1, p.PublicID)
	require.NoError(t, err)
}
