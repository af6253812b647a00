// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"linkbio/internal/domain/entity"
	"linkbio/internal/domain/service"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a new account.
type SignupInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// SignupOutput returns the newly created account.
type SignupOutput struct {
	User *entity.User
}

// LoginOutput returns the session token after a successful login.
type LoginOutput struct {
	Token string
	User  *entity.User
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*SignupOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Authenticate validates a bearer token and returns the session identity.
	// It fails closed on any signature, expiry, or parse problem.
	Authenticate(ctx context.Context, token string) (*service.SessionClaims, error)

	// Logout ends a stateless session. The token is validated best-effort for
	// logging; actual invalidation happens client-side by discarding it.
	Logout(ctx context.Context, token string) error

	// Me loads the owner-facing view of the authenticated account.
	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
