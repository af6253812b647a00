package impl

import (
	"context"
	"strings"
	"testing"

	"linkbio/internal/domain/entity"
	domainerrors "linkbio/internal/domain/errors"
	"linkbio/internal/domain/repository"
	"linkbio/internal/domain/service"
	mockRepo "linkbio/internal/mocks/repository"
	mockService "linkbio/internal/mocks/service"
	"linkbio/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// profileServiceFixtures holds all test dependencies for profile service tests.
type profileServiceFixtures struct {
	service   usecase.ProfileUsecase
	userRepo  *mockRepo.MockUserRepository
	hasher    *mockService.MockPasswordHasher
	publisher *mockService.MockEventPublisher
}

func createTestProfileService(t *testing.T) profileServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)
	publisher := mockService.NewMockEventPublisher(t)

	svc := NewProfileService(ProfileServiceParams{
		UserRepo:  userRepo,
		Hasher:    hasher,
		Publisher: publisher,
		Logger:    newDiscardLogger(),
	})

	return profileServiceFixtures{
		service:   svc,
		userRepo:  userRepo,
		hasher:    hasher,
		publisher: publisher,
	}
}

func existingProfileUser(id uuid.UUID) *entity.User {
	return &entity.User{
		ID:           id,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$12$hash",
		Name:         "Alice",
		Bio:          entity.DefaultBio,
		Theme:        entity.ThemeCard,
	}
}

func TestProfileService_UpdateProfile_SanitizesFields(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	userID := uuid.New()
	user := existingProfileUser(userID)

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
	fx.userRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	updated, err := fx.service.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{
		Name:   strPtr("  New Name  "),
		Bio:    strPtr("  hello world  "),
		Avatar: strPtr("cdn.example/avatar.png"),
		Theme:  strPtr("GRADIENT"),
		Links: []usecase.LinkInput{
			{Label: " GitHub ", URL: "github.com/alice", Color: "#112233"},
			{Label: "", URL: "https://dropped.example"},
			{Label: "Bad color", URL: "https://x.example", Color: "red"},
		},
		HasLinks: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "hello world", updated.Bio)
	assert.Equal(t, "https://cdn.example/avatar.png", updated.Avatar)
	assert.Equal(t, entity.ThemeGradient, updated.Theme)
	require.Len(t, updated.Links, 2)
	assert.Equal(t, "GitHub", updated.Links[0].Label)
	assert.Equal(t, "https://github.com/alice", updated.Links[0].URL)
	assert.Equal(t, "#112233", updated.Links[0].Color)
	assert.Equal(t, entity.DefaultLinkColor, updated.Links[1].Color)
}

func TestProfileService_UpdateProfile_NilFieldsLeaveValuesUnchanged(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	userID := uuid.New()
	user := existingProfileUser(userID)
	user.Links = []entity.Link{{Label: "Existing", URL: "https://keep.example", Color: entity.DefaultLinkColor}}

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
	fx.userRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	updated, err := fx.service.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{
		Bio: strPtr("only the bio changes"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "alice", updated.Username)
	assert.Len(t, updated.Links, 1)
}

func TestProfileService_UpdateProfile_TruncatesLinkList(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(existingProfileUser(userID), nil)
	fx.userRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	links := make([]usecase.LinkInput, entity.MaxLinks+5)
	for i := range links {
		links[i] = usecase.LinkInput{Label: "link", URL: "https://example.com"}
	}

	updated, err := fx.service.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{
		Links:    links,
		HasLinks: true,
	})

	require.NoError(t, err)
	assert.Len(t, updated.Links, entity.MaxLinks)
}

func TestProfileService_UpdateProfile_UsernameConflict(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(existingProfileUser(userID), nil)
	fx.userRepo.EXPECT().FindByUsername(ctx, "taken").Return(&entity.User{Username: "taken"}, nil)

	_, err := fx.service.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{
		Username: strPtr("Taken"),
	})

	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestProfileService_UpdateProfile_PasswordRehashedOnlyWhenProvided(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(existingProfileUser(userID), nil)
	fx.hasher.EXPECT().ValidatePasswordStrength("brand new password").Return(nil)
	fx.hasher.EXPECT().Hash("brand new password").Return("$2a$12$newhash", nil)
	fx.userRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	updated, err := fx.service.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{
		Password: strPtr("brand new password"),
	})

	require.NoError(t, err)
	assert.Equal(t, "$2a$12$newhash", updated.PasswordHash)
}

func TestProfileService_UpdateProfile_EmptyPasswordKeepsHash(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(existingProfileUser(userID), nil)
	fx.userRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	// No hasher expectations: an empty password never reaches the hasher.
	updated, err := fx.service.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{
		Password: strPtr(""),
		Bio:      strPtr("changed"),
	})

	require.NoError(t, err)
	assert.Equal(t, "$2a$12$hash", updated.PasswordHash)
}

func TestProfileService_UpdateProfile_OwnerGone(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{})
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestProfileService_GetPublicProfile_StripsCredentials(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	userID := uuid.New()
	user := existingProfileUser(userID)
	user.Views = 41

	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(user, nil)
	fx.userRepo.EXPECT().IncrementViews(ctx, "alice").Return(nil)
	fx.publisher.EXPECT().PublishProfileViewEvent(ctx, mock.AnythingOfType("*service.ProfileViewEvent")).
		Run(func(ctx context.Context, event *service.ProfileViewEvent) {
			assert.Equal(t, "alice", event.Username)
			assert.Equal(t, userID.String(), event.OwnerID)
			assert.False(t, event.OccurredAt.IsZero())
		}).
		Return(nil)

	profile, err := fx.service.GetPublicProfile(ctx, "  ALICE  ")

	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, int64(41), profile.Views)
}

func TestProfileService_GetPublicProfile_BestEffortSideEffects(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	user := existingProfileUser(uuid.New())

	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(user, nil)
	fx.userRepo.EXPECT().IncrementViews(ctx, "alice").Return(errors.New("mongo down"))
	fx.publisher.EXPECT().PublishProfileViewEvent(ctx, mock.AnythingOfType("*service.ProfileViewEvent")).
		Return(errors.New("broker down"))

	// The read still succeeds when both side effects fail.
	profile, err := fx.service.GetPublicProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
}

func TestProfileService_GetPublicProfile_NotFound(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByUsername(ctx, "ghost").Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.GetPublicProfile(ctx, "ghost")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestProfileService_UpdateProfile_BioTruncatedToBound(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(existingProfileUser(userID), nil)
	fx.userRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	updated, err := fx.service.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{
		Bio: strPtr(strings.Repeat("x", 500)),
	})

	require.NoError(t, err)
	assert.Len(t, []rune(updated.Bio), maxBioRunes)
}
