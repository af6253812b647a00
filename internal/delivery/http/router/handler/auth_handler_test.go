package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"linkbio/internal/delivery/http/middleware"
	"linkbio/internal/delivery/http/validator"
	"linkbio/internal/domain/entity"
	domainerrors "linkbio/internal/domain/errors"
	mockUsecase "linkbio/internal/mocks/usecase"
	"linkbio/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()

	return e
}

func newTestAccount() *entity.User {
	return &entity.User{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
		Name:     "Alice",
		Bio:      entity.DefaultBio,
		Theme:    entity.ThemeCard,
	}
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	accounts := mockUsecase.NewMockAccountUsecase(t)
	h := NewAuthHandler(accounts, slog.Default())

	user := newTestAccount()
	accounts.EXPECT().
		Signup(mock.Anything, &usecase.SignupInput{
			Name:     "Alice",
			Username: "alice",
			Email:    "alice@example.com",
			Password: "S3cure-pass",
		}).
		Return(&usecase.SignupOutput{User: user}, nil)

	body := `{"name":"Alice","username":"alice","email":"alice@example.com","password":"S3cure-pass"}`
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	responseBody := rec.Body.String()
	assert.Contains(t, responseBody, `"username":"alice"`)
	assert.Contains(t, responseBody, `"email":"alice@example.com"`)
	// The credential never appears in any response body.
	assert.NotContains(t, responseBody, "password")
	assert.NotContains(t, responseBody, "hash")
}

func TestAuthHandler_Signup_RejectsInvalidEmail(t *testing.T) {
	accounts := mockUsecase.NewMockAccountUsecase(t)
	h := NewAuthHandler(accounts, slog.Default())

	body := `{"name":"Alice","username":"alice","email":"not-an-email","password":"S3cure-pass"}`
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	// The usecase must never be reached on validation failure.
	accounts.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
}

func TestAuthHandler_Signup_PropagatesConflict(t *testing.T) {
	accounts := mockUsecase.NewMockAccountUsecase(t)
	h := NewAuthHandler(accounts, slog.Default())

	accounts.EXPECT().
		Signup(mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrUserAlreadyExists)

	body := `{"username":"alice","email":"alice@example.com","password":"S3cure-pass"}`
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Signup(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	accounts := mockUsecase.NewMockAccountUsecase(t)
	h := NewAuthHandler(accounts, slog.Default())

	user := newTestAccount()
	accounts.EXPECT().
		Login(mock.Anything, &usecase.LoginInput{
			Email:    "alice@example.com",
			Password: "S3cure-pass",
		}).
		Return(&usecase.LoginOutput{Token: "header.payload.signature", User: user}, nil)

	body := `{"email":"alice@example.com","password":"S3cure-pass"}`
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"header.payload.signature"`)
}

func TestAuthHandler_Login_PropagatesInvalidCredentials(t *testing.T) {
	accounts := mockUsecase.NewMockAccountUsecase(t)
	h := NewAuthHandler(accounts, slog.Default())

	accounts.EXPECT().
		Login(mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrInvalidCredentials)

	body := `{"email":"alice@example.com","password":"wrong"}`
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthHandler_Logout_WorksWithoutToken(t *testing.T) {
	accounts := mockUsecase.NewMockAccountUsecase(t)
	h := NewAuthHandler(accounts, slog.Default())

	accounts.EXPECT().Logout(mock.Anything, "").Return(nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_Me_Success(t *testing.T) {
	accounts := mockUsecase.NewMockAccountUsecase(t)
	h := NewAuthHandler(accounts, slog.Default())

	user := newTestAccount()
	accounts.EXPECT().Me(mock.Anything, user.ID).Return(user, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.KeyUserID, user.ID)

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data struct {
			User *entity.AccountView `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data.User)
	assert.Equal(t, user.ID, envelope.Data.User.ID)
	assert.Equal(t, "alice@example.com", envelope.Data.User.Email)
}

func TestAuthHandler_Me_RequiresIdentity(t *testing.T) {
	accounts := mockUsecase.NewMockAccountUsecase(t)
	h := NewAuthHandler(accounts, slog.Default())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	accounts.AssertNotCalled(t, "Me", mock.Anything, mock.Anything)
}
