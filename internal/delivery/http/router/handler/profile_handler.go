package handler

import (
	"log/slog"
	"net/http"

	"linkbio/internal/delivery/http/middleware"
	"linkbio/internal/delivery/http/response"
	"linkbio/internal/domain/service"
	"linkbio/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler holds dependencies for profile-related handlers.
type ProfileHandler struct {
	profiles usecase.ProfileUsecase
	renderer usecase.RendererUsecase
	qrcode   service.QRCodeService
	logger   *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(
	profiles usecase.ProfileUsecase,
	renderer usecase.RendererUsecase,
	qrcode service.QRCodeService,
	logger *slog.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		renderer: renderer,
		qrcode:   qrcode,
		logger:   logger,
	}
}

type linkRequest struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Color string `json:"color"`
}

// updateProfileRequest is a partial patch: absent fields stay unchanged.
type updateProfileRequest struct {
	Name     *string        `json:"name"`
	Username *string        `json:"username"`
	Bio      *string        `json:"bio"`
	Avatar   *string        `json:"avatar"`
	Banner   *string        `json:"banner"`
	Theme    *string        `json:"theme"`
	Links    *[]linkRequest `json:"links"`
	Password *string        `json:"password"`
}

// GetPublicProfile serves the vanity page model. A missing profile is a 404
// with an explicit null user; rendering failures are a plain 500.
func (h *ProfileHandler) GetPublicProfile(c echo.Context) error {
	username := c.Param("username")

	result := h.renderer.Render(c.Request().Context(), username)
	switch result.State {
	case usecase.RenderFound:
		return response.Success(c, http.StatusOK, map[string]any{
			"user": result.Profile,
		}, "")
	case usecase.RenderNotFound:
		return response.ErrorWithData(c, http.StatusNotFound, "USER_NOT_FOUND", "profile not found", map[string]any{
			"user": nil,
		})
	default:
		return response.InternalServerError(c, "INTERNAL_ERROR", "failed to render profile")
	}
}

// GetProfileQR serves a PNG QR code pointing at the public profile URL.
func (h *ProfileHandler) GetProfileQR(c echo.Context) error {
	username := c.Param("username")

	png, err := h.qrcode.GenerateProfileQR(username)
	if err != nil {
		h.logger.Error("Failed to generate profile QR", slog.String("username", username), slog.Any("error", err))

		return response.InternalServerError(c, "QR_GENERATION_FAILED", "failed to generate QR code")
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// UpdateProfile applies a partial patch to the authenticated owner's profile.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, ok := c.Get(middleware.KeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "missing session identity")
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile patch")
	}

	patch := &usecase.UpdateProfileInput{
		Name:     req.Name,
		Username: req.Username,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
		Banner:   req.Banner,
		Theme:    req.Theme,
		Password: req.Password,
	}
	if req.Links != nil {
		patch.HasLinks = true
		patch.Links = make([]usecase.LinkInput, 0, len(*req.Links))
		for _, link := range *req.Links {
			patch.Links = append(patch.Links, usecase.LinkInput{
				Label: link.Label,
				URL:   link.URL,
				Color: link.Color,
			})
		}
	}

	user, err := h.profiles.UpdateProfile(c.Request().Context(), userID, patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"user": user.AccountView(),
	}, "Profile updated successfully")
}
