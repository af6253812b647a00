package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"linkbio/internal/delivery/http/middleware"
	"linkbio/internal/domain/entity"
	mockService "linkbio/internal/mocks/service"
	mockUsecase "linkbio/internal/mocks/usecase"
	"linkbio/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type profileHandlerFixtures struct {
	handler  *ProfileHandler
	profiles *mockUsecase.MockProfileUsecase
	renderer *mockUsecase.MockRendererUsecase
	qrcode   *mockService.MockQRCodeService
}

func createTestProfileHandler(t *testing.T) profileHandlerFixtures {
	profiles := mockUsecase.NewMockProfileUsecase(t)
	renderer := mockUsecase.NewMockRendererUsecase(t)
	qrcode := mockService.NewMockQRCodeService(t)

	return profileHandlerFixtures{
		handler:  NewProfileHandler(profiles, renderer, qrcode, slog.Default()),
		profiles: profiles,
		renderer: renderer,
		qrcode:   qrcode,
	}
}

func newProfileContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestProfileHandler_GetPublicProfile_Found(t *testing.T) {
	f := createTestProfileHandler(t)

	f.renderer.EXPECT().Render(mock.Anything, "alice").Return(&usecase.RenderResult{
		State: usecase.RenderFound,
		Profile: &entity.PublicProfile{
			Username: "alice",
			Name:     "Alice",
			Bio:      entity.DefaultBio,
			Theme:    entity.ThemeCard,
			Views:    7,
		},
	})

	c, rec := newProfileContext(newTestEcho(), http.MethodGet, "/users/alice", "")
	c.SetParamNames("username")
	c.SetParamValues("alice")

	require.NoError(t, f.handler.GetPublicProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	responseBody := rec.Body.String()
	assert.Contains(t, responseBody, `"username":"alice"`)
	assert.Contains(t, responseBody, `"views":7`)
	// The public projection never exposes the login identifier.
	assert.NotContains(t, responseBody, "email")
}

func TestProfileHandler_GetPublicProfile_NotFoundCarriesNullUser(t *testing.T) {
	f := createTestProfileHandler(t)

	f.renderer.EXPECT().Render(mock.Anything, "ghost").Return(&usecase.RenderResult{
		State: usecase.RenderNotFound,
	})

	c, rec := newProfileContext(newTestEcho(), http.MethodGet, "/users/ghost", "")
	c.SetParamNames("username")
	c.SetParamValues("ghost")

	require.NoError(t, f.handler.GetPublicProfile(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var envelope struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)

	user, ok := envelope.Data["user"]
	require.True(t, ok, "404 body must carry an explicit user key")
	assert.Nil(t, user)
}

func TestProfileHandler_GetPublicProfile_RenderFailure(t *testing.T) {
	f := createTestProfileHandler(t)

	f.renderer.EXPECT().Render(mock.Anything, "alice").Return(&usecase.RenderResult{
		State: usecase.RenderError,
	})

	c, rec := newProfileContext(newTestEcho(), http.MethodGet, "/users/alice", "")
	c.SetParamNames("username")
	c.SetParamValues("alice")

	require.NoError(t, f.handler.GetPublicProfile(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestProfileHandler_GetProfileQR_ReturnsPNG(t *testing.T) {
	f := createTestProfileHandler(t)

	pngBytes := []byte{0x89, 'P', 'N', 'G'}
	f.qrcode.EXPECT().GenerateProfileQR("alice").Return(pngBytes, nil)

	c, rec := newProfileContext(newTestEcho(), http.MethodGet, "/users/alice/qr", "")
	c.SetParamNames("username")
	c.SetParamValues("alice")

	require.NoError(t, f.handler.GetProfileQR(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, pngBytes, rec.Body.Bytes())
}

func TestProfileHandler_GetProfileQR_GenerationFailure(t *testing.T) {
	f := createTestProfileHandler(t)

	f.qrcode.EXPECT().GenerateProfileQR("alice").Return(nil, errors.New("encoder failure"))

	c, rec := newProfileContext(newTestEcho(), http.MethodGet, "/users/alice/qr", "")
	c.SetParamNames("username")
	c.SetParamValues("alice")

	require.NoError(t, f.handler.GetProfileQR(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestProfileHandler_UpdateProfile_MapsPatch(t *testing.T) {
	f := createTestProfileHandler(t)
	ownerID := uuid.New()

	f.profiles.EXPECT().
		UpdateProfile(mock.Anything, ownerID, mock.Anything).
		Return(newTestAccount(), nil).
		Run(func(_ context.Context, _ uuid.UUID, patch *usecase.UpdateProfileInput) {
			require.NotNil(t, patch.Bio)
			assert.Equal(t, "new bio", *patch.Bio)
			assert.Nil(t, patch.Name, "absent fields stay nil")
			assert.True(t, patch.HasLinks)
			require.Len(t, patch.Links, 1)
			assert.Equal(t, "GitHub", patch.Links[0].Label)
		})

	body := `{"bio":"new bio","links":[{"label":"GitHub","url":"github.com/alice","color":"#333"}]}`
	c, rec := newProfileContext(newTestEcho(), http.MethodPost, "/users/me/update", body)
	c.Set(middleware.KeyUserID, ownerID)

	require.NoError(t, f.handler.UpdateProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
}

func TestProfileHandler_UpdateProfile_OmittedLinksLeaveListUntouched(t *testing.T) {
	f := createTestProfileHandler(t)
	ownerID := uuid.New()

	f.profiles.EXPECT().
		UpdateProfile(mock.Anything, ownerID, mock.Anything).
		Return(newTestAccount(), nil).
		Run(func(_ context.Context, _ uuid.UUID, patch *usecase.UpdateProfileInput) {
			assert.False(t, patch.HasLinks)
			assert.Nil(t, patch.Links)
		})

	body := `{"name":"Alice B"}`
	c, rec := newProfileContext(newTestEcho(), http.MethodPost, "/users/me/update", body)
	c.Set(middleware.KeyUserID, ownerID)

	require.NoError(t, f.handler.UpdateProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProfileHandler_UpdateProfile_EmptyLinksClearList(t *testing.T) {
	f := createTestProfileHandler(t)
	ownerID := uuid.New()

	f.profiles.EXPECT().
		UpdateProfile(mock.Anything, ownerID, mock.Anything).
		Return(newTestAccount(), nil).
		Run(func(_ context.Context, _ uuid.UUID, patch *usecase.UpdateProfileInput) {
			assert.True(t, patch.HasLinks)
			assert.Empty(t, patch.Links)
		})

	body := `{"links":[]}`
	c, rec := newProfileContext(newTestEcho(), http.MethodPost, "/users/me/update", body)
	c.Set(middleware.KeyUserID, ownerID)

	require.NoError(t, f.handler.UpdateProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProfileHandler_UpdateProfile_RequiresIdentity(t *testing.T) {
	f := createTestProfileHandler(t)

	c, rec := newProfileContext(newTestEcho(), http.MethodPost, "/users/me/update", `{"name":"x"}`)

	require.NoError(t, f.handler.UpdateProfile(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	f.profiles.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}
