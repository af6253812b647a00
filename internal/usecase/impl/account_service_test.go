package impl

import (
	"context"
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

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service      usecase.AccountUsecase
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockService.MockPasswordHasher
	tokenService *mockService.MockTokenService
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokenService := mockService.NewMockTokenService(t)

	svc := NewAccountService(AccountServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       newDiscardLogger(),
	})

	return accountServiceFixtures{
		service:      svc,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestAccountService_Signup_Success(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(nil, repository.ErrUserNotFound)
	fx.userRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().ValidatePasswordStrength("correct horse battery staple").Return(nil)
	fx.hasher.EXPECT().Hash("correct horse battery staple").Return("$2a$12$hash", nil)
	fx.userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	out, err := fx.service.Signup(ctx, &usecase.SignupInput{
		Name:     "  Alice  ",
		Username: "  Alice  ",
		Email:    "Alice@Example.COM",
		Password: "correct horse battery staple",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", out.User.Username)
	assert.Equal(t, "alice@example.com", out.User.Email)
	assert.Equal(t, "Alice", out.User.Name)
	assert.Equal(t, "$2a$12$hash", out.User.PasswordHash)
	assert.Equal(t, entity.DefaultBio, out.User.Bio)
	assert.Equal(t, entity.ThemeCard, out.User.Theme)
	assert.NotEqual(t, uuid.Nil, out.User.ID)
}

func TestAccountService_Signup_NameDefaultsToUsername(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByUsername(ctx, "bob").Return(nil, repository.ErrUserNotFound)
	fx.userRepo.EXPECT().FindByEmail(ctx, "bob@example.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().ValidatePasswordStrength(mock.Anything).Return(nil)
	fx.hasher.EXPECT().Hash(mock.Anything).Return("hash", nil)
	fx.userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	out, err := fx.service.Signup(ctx, &usecase.SignupInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "long enough password",
	})

	require.NoError(t, err)
	assert.Equal(t, "bob", out.User.Name)
}

func TestAccountService_Signup_UsernameTaken(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(&entity.User{Username: "alice"}, nil)

	_, err := fx.service.Signup(ctx, &usecase.SignupInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "long enough password",
	})

	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAccountService_Signup_EmailTaken(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(nil, repository.ErrUserNotFound)
	fx.userRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(&entity.User{Email: "alice@example.com"}, nil)

	_, err := fx.service.Signup(ctx, &usecase.SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "long enough password",
	})

	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAccountService_Signup_WeakPassword(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(nil, repository.ErrUserNotFound)
	fx.userRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().ValidatePasswordStrength("short").Return(errors.New("too short"))

	_, err := fx.service.Signup(ctx, &usecase.SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "short",
	})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAccountService_Signup_DuplicateRaceMapsToConflict(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(nil, repository.ErrUserNotFound)
	fx.userRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().ValidatePasswordStrength(mock.Anything).Return(nil)
	fx.hasher.EXPECT().Hash(mock.Anything).Return("hash", nil)
	// Another request won the race: the unique index is the backstop.
	fx.userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).Return(repository.ErrDuplicateUser)

	_, err := fx.service.Signup(ctx, &usecase.SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "long enough password",
	})

	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAccountService_Login_Success(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{
		ID:           userID,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$12$hash",
	}

	fx.userRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(user, nil)
	fx.hasher.EXPECT().Check("correct horse battery staple", "$2a$12$hash").Return(true)
	fx.tokenService.EXPECT().GenerateToken(userID, "alice").Return("signed-token", nil)

	out, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "Alice@Example.com",
		Password: "correct horse battery staple",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", out.Token)
	assert.Equal(t, user, out.User)
}

func TestAccountService_Login_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)

	_, unknownEmailErr := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever password",
	})
	require.Error(t, unknownEmailErr)

	fx.userRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(&entity.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: "$2a$12$hash",
	}, nil)
	fx.hasher.EXPECT().Check("wrong password", "$2a$12$hash").Return(false)

	_, wrongPasswordErr := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "wrong password",
	})
	require.Error(t, wrongPasswordErr)

	// Both failures resolve to the same generic error.
	assert.ErrorIs(t, unknownEmailErr, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPasswordErr, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_Authenticate(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.tokenService.EXPECT().ValidateToken("good-token").Return(&service.SessionClaims{
		UserID:   userID,
		Username: "alice",
	}, nil)

	claims, err := fx.service.Authenticate(ctx, "good-token")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestAccountService_Authenticate_FailsClosed(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.tokenService.EXPECT().ValidateToken("bad-token").Return(nil, errors.New("signature mismatch"))

	_, err := fx.service.Authenticate(ctx, "bad-token")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestAccountService_Logout_InvalidTokenStillSucceeds(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.tokenService.EXPECT().ValidateToken("expired-token").Return(nil, errors.New("token expired"))

	assert.NoError(t, fx.service.Logout(ctx, "expired-token"))
	assert.NoError(t, fx.service.Logout(ctx, ""))
}

func TestAccountService_Me(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, Username: "alice", Email: "alice@example.com"}

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)

	got, err := fx.service.Me(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestAccountService_Me_NotFound(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Me(ctx, userID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
