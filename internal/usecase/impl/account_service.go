// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "linkbio/internal/delivery/context"
	"linkbio/internal/domain/entity"
	domainerrors "linkbio/internal/domain/errors"
	"linkbio/internal/domain/repository"
	"linkbio/internal/domain/service"
	"linkbio/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup orchestrates the complete account registration process.
func (srv *accountService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	username := normalizeUsername(input.Username)
	email := normalizeEmail(input.Email)

	srv.log(ctx).Info("Starting signup", slog.String("username", username))

	if username == "" || email == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "username and email are required")
	}

	// Pre-check both unique keys for a friendly conflict message. The unique
	// indexes remain the backstop for races between check and insert.
	if err := srv.checkAvailability(ctx, username, email); err != nil {
		return nil, err
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during signup", slog.String("username", username), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "password does not meet security requirements")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during signup")
	}

	now := time.Now()
	newUser := &entity.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         sanitizeName(input.Name, username),
		Bio:          entity.DefaultBio,
		Theme:        entity.ThemeCard,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, errors.Wrap(domainerrors.ErrUserAlreadyExists, "signup conflict")
		}

		srv.log(ctx).Error("Failed to create user during signup", slog.String("username", username), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrUserCreationFailed, "failed to create user during signup")
	}

	srv.log(ctx).Debug("Signup completed", slog.Any("userID", newUser.ID))

	return &usecase.SignupOutput{User: newUser}, nil
}

func (srv *accountService) checkAvailability(ctx context.Context, username, email string) error {
	if _, err := srv.userRepo.FindByUsername(ctx, username); err == nil {
		return errors.Wrap(domainerrors.ErrUserAlreadyExists, "username taken")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(err, "failed to check username availability")
	}

	if _, err := srv.userRepo.FindByEmail(ctx, email); err == nil {
		return errors.Wrap(domainerrors.ErrUserAlreadyExists, "email taken")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(err, "failed to check email availability")
	}

	return nil
}

// Login orchestrates the login process. Unknown email and wrong password are
// deliberately indistinguishable to the caller.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	// bcrypt check is CPU-bound and constant-time within the hash comparison.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokenService.GenerateToken(user.ID, user.Username)
	if err != nil {
		srv.log(ctx).Error("Failed to generate session token", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate session token")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		Token: token,
		User:  user,
	}, nil
}

// Authenticate validates a bearer token and returns the session identity.
func (srv *accountService) Authenticate(ctx context.Context, token string) (*service.SessionClaims, error) {
	claims, err := srv.tokenService.ValidateToken(token)
	if err != nil {
		srv.log(ctx).Debug("Token validation failed", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "invalid session token")
	}

	return claims, nil
}

// Logout ends a stateless session. There is no server-side revocation list;
// the token simply stops being presented by the client.
func (srv *accountService) Logout(ctx context.Context, token string) error {
	if token != "" {
		if _, err := srv.tokenService.ValidateToken(token); err != nil {
			srv.log(ctx).Warn("Logout with invalid token", slog.Any("error", err))
		}
	}

	srv.log(ctx).Info("Logged out")

	return nil
}

// Me loads the owner-facing view of the authenticated account.
func (srv *accountService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "session user no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load account")
	}

	return user, nil
}
