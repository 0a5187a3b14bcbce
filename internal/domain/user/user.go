// Package user provides user domain models and behaviors.
package user

import (
	"context"
	"errors"
	"time"
)

// User models an application user resolved from a signed dashboard token.
// CreditBalance is owned by the credit ledger; it is carried here for reads
// only and must never be written outside the credit repository.
type User struct {
	ID            uint
	PublicID      string
	Issuer        string
	Subject       string
	Email         *string
	Name          *string
	CreditBalance int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Identity encapsulates the externally provided identity attributes.
type Identity struct {
	Issuer  string
	Subject string
	Email   *string
	Name    *string
}

// Repository defines storage operations for users.
type Repository interface {
	FindByIssuerAndSubject(ctx context.Context, issuer, subject string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
}

// ErrInvalidIdentity indicates missing issuer or subject on the identity payload.
var ErrInvalidIdentity = errors.New("invalid identity: issuer and subject are required")

// CreditGranter hands out the signup bonus for first-time users.
type CreditGranter interface {
	Grant(ctx context.Context, userID uint, amount int) (int, error)
}

// Service persists and resolves users from external identities.
type Service struct {
	repo        Repository
	credits     CreditGranter
	signupGrant int
	newPublicID func() string
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository, credits CreditGranter, signupGrant int, newPublicID func() string) *Service {
	return &Service{
		repo:        repo,
		credits:     credits,
		signupGrant: signupGrant,
		newPublicID: newPublicID,
	}
}

// EnsureUser resolves the identity to an internal user record, creating it
// (with the signup credit grant) on first sight.
func (s *Service) EnsureUser(ctx context.Context, identity Identity) (*User, error) {
	if identity.Issuer == "" || identity.Subject == "" {
		return nil, ErrInvalidIdentity
	}

	existing, err := s.repo.FindByIssuerAndSubject(ctx, identity.Issuer, identity.Subject)
	if err == nil && existing != nil {
		return existing, nil
	}

	u := &User{
		PublicID: s.newPublicID(),
		Issuer:   identity.Issuer,
		Subject:  identity.Subject,
		Email:    identity.Email,
		Name:     identity.Name,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	if s.signupGrant > 0 {
		balance, err := s.credits.Grant(ctx, u.ID, s.signupGrant)
		if err != nil {
			return nil, err
		}
		u.CreditBalance = balance
	}
	return u, nil
}

// Get returns the user by internal id.
func (s *Service) Get(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}
