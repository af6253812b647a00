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

// profileService implements the ProfileUsecase interface.
type profileService struct {
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	publisher service.EventPublisher
	logger    *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// UpdateProfile applies a sanitized partial patch to the owner's profile.
// Only the authenticated owner reaches this path; concurrent saves are
// last-write-wins.
func (srv *profileService) UpdateProfile(ctx context.Context, ownerID uuid.UUID, patch *usecase.UpdateProfileInput) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "profile owner no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load profile for update")
	}

	if err := srv.applyPatch(ctx, user, patch); err != nil {
		return nil, err
	}
	user.UpdatedAt = time.Now()

	if err := srv.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUser):
			return nil, errors.Wrap(domainerrors.ErrUserAlreadyExists, "username taken")
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "profile vanished during update")
		}

		srv.log(ctx).Error("Failed to update profile", slog.Any("userID", ownerID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrUserUpdateFailed, "failed to update profile")
	}

	srv.log(ctx).Debug("Profile updated", slog.Any("userID", ownerID))

	return user, nil
}

// applyPatch mutates user in place. Nil pointers mean "leave unchanged".
func (srv *profileService) applyPatch(ctx context.Context, user *entity.User, patch *usecase.UpdateProfileInput) error {
	if patch.Username != nil {
		username := normalizeUsername(*patch.Username)
		if username == "" {
			return errors.Wrap(domainerrors.ErrValidationFailed, "username cannot be empty")
		}
		if username != user.Username {
			if err := srv.checkUsernameFree(ctx, username); err != nil {
				return err
			}
			user.Username = username
		}
	}

	if patch.Name != nil {
		user.Name = sanitizeName(*patch.Name, user.Username)
	}
	if patch.Bio != nil {
		user.Bio = sanitizeBio(*patch.Bio)
	}
	if patch.Avatar != nil {
		user.Avatar = normalizeImageURL(*patch.Avatar)
	}
	if patch.Banner != nil {
		user.Banner = normalizeImageURL(*patch.Banner)
	}
	if patch.Theme != nil {
		user.Theme = sanitizeTheme(*patch.Theme)
	}
	if patch.HasLinks {
		user.Links = sanitizeLinks(patch.Links)
	}

	// Credential change is an explicit step here, never a storage hook: the
	// hash is replaced only when a non-empty password is supplied.
	if patch.Password != nil && *patch.Password != "" {
		if err := srv.hasher.ValidatePasswordStrength(*patch.Password); err != nil {
			return errors.Wrap(domainerrors.ErrValidationFailed, "password does not meet security requirements")
		}

		hashed, err := srv.hasher.Hash(*patch.Password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash password during profile update", slog.Any("error", err))

			return errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during update")
		}
		user.PasswordHash = hashed
	}

	return nil
}

func (srv *profileService) checkUsernameFree(ctx context.Context, username string) error {
	_, err := srv.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return errors.Wrap(domainerrors.ErrUserAlreadyExists, "username taken")
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(err, "failed to check username availability")
	}

	return nil
}

// GetPublicProfile fetches the credential-stripped projection and records the
// view. Counting and event publishing are best-effort: their failure never
// fails the read.
func (srv *profileService) GetPublicProfile(ctx context.Context, username string) (*entity.PublicProfile, error) {
	username = normalizeUsername(username)

	user, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "profile not found")
		}

		return nil, errors.Wrap(err, "failed to load public profile")
	}

	if err := srv.userRepo.IncrementViews(ctx, username); err != nil {
		srv.log(ctx).Warn("Failed to increment profile views", slog.String("username", username), slog.Any("error", err))
	}

	if err := srv.publisher.PublishProfileViewEvent(ctx, &service.ProfileViewEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Username:   username,
		OwnerID:    user.ID.String(),
		OccurredAt: time.Now(),
	}); err != nil {
		srv.log(ctx).Warn("Failed to publish profile view event", slog.String("username", username), slog.Any("error", err))
	}

	return user.PublicProfile(), nil
}
