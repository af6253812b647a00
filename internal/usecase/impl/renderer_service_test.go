package impl

import (
	"context"
	"strings"
	"testing"

	"linkbio/config"
	"linkbio/internal/domain/entity"
	domainerrors "linkbio/internal/domain/errors"
	mockUsecase "linkbio/internal/mocks/usecase"
	"linkbio/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRendererService(t *testing.T) (usecase.RendererUsecase, *mockUsecase.MockProfileUsecase) {
	profiles := mockUsecase.NewMockProfileUsecase(t)

	svc := NewRendererService(RendererServiceParams{
		Profiles: profiles,
		Config: &config.Config{
			Profile: &config.ProfileConfig{DefaultBanner: "https://cdn.example/banner.png"},
		},
		Logger: newDiscardLogger(),
	})

	return svc, profiles
}

func TestRendererService_Render_Found(t *testing.T) {
	svc, profiles := createTestRendererService(t)
	ctx := context.Background()

	profiles.EXPECT().GetPublicProfile(ctx, "alice").Return(&entity.PublicProfile{
		Username: "alice",
		Name:     "Alice",
		Avatar:   "https://cdn.example/alice.png",
		Banner:   "https://cdn.example/alice-banner.png",
		Theme:    entity.ThemeCard,
	}, nil)

	result := svc.Render(ctx, "alice")

	require.Equal(t, usecase.RenderFound, result.State)
	assert.Equal(t, "https://cdn.example/alice.png", result.Profile.Avatar)
	assert.Equal(t, "https://cdn.example/alice-banner.png", result.Profile.Banner)
}

func TestRendererService_Render_FillsDefaults(t *testing.T) {
	svc, profiles := createTestRendererService(t)
	ctx := context.Background()

	profiles.EXPECT().GetPublicProfile(ctx, "alice").Return(&entity.PublicProfile{
		Username: "alice",
		Theme:    entity.ThemeCard,
	}, nil)

	result := svc.Render(ctx, "alice")

	require.Equal(t, usecase.RenderFound, result.State)
	assert.True(t, strings.HasPrefix(result.Profile.Avatar, "data:image/svg+xml;base64,"))
	assert.Equal(t, "https://cdn.example/banner.png", result.Profile.Banner)
}

func TestRendererService_Render_NotFoundIsNotAnError(t *testing.T) {
	svc, profiles := createTestRendererService(t)
	ctx := context.Background()

	profiles.EXPECT().GetPublicProfile(ctx, "ghost").
		Return(nil, errors.Wrap(domainerrors.ErrUserNotFound, "profile not found"))

	result := svc.Render(ctx, "ghost")

	assert.Equal(t, usecase.RenderNotFound, result.State)
	assert.Nil(t, result.Profile)
}

func TestRendererService_Render_InfrastructureFailureIsError(t *testing.T) {
	svc, profiles := createTestRendererService(t)
	ctx := context.Background()

	profiles.EXPECT().GetPublicProfile(ctx, "alice").Return(nil, errors.New("mongo down"))

	result := svc.Render(ctx, "alice")

	// Error and NotFound are distinct terminal states.
	assert.Equal(t, usecase.RenderError, result.State)
	assert.Nil(t, result.Profile)
}

func TestGeneratedAvatarDataURI_Deterministic(t *testing.T) {
	first := generatedAvatarDataURI("alice")
	second := generatedAvatarDataURI("alice")
	other := generatedAvatarDataURI("bob")

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "data:image/svg+xml;base64,"))
	assert.NotEqual(t, first, other)
}
