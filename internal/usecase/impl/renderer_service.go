package impl

import (
	"context"
	"encoding/base64"
	"fmt"
	"hash/fnv"
	"log/slog"
	"unicode"

	"linkbio/config"
	deliverycontext "linkbio/internal/delivery/context"
	domainerrors "linkbio/internal/domain/errors"
	"linkbio/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// avatarPalette are the backgrounds for generated avatars. Selection is a pure
// function of the username so the same profile always gets the same avatar.
var avatarPalette = []string{
	"#ef4444", "#f59e0b", "#10b981", "#3b82f6",
	"#6366f1", "#8b5cf6", "#ec4899", "#14b8a6",
}

// rendererService implements the RendererUsecase interface. It turns a vanity
// username into a display-ready page model and never surfaces raw errors.
type rendererService struct {
	profiles      usecase.ProfileUsecase
	defaultBanner string
	logger        *slog.Logger
}

// RendererServiceParams holds dependencies for RendererService, injected by Fx.
type RendererServiceParams struct {
	fx.In

	Profiles usecase.ProfileUsecase
	Config   *config.Config
	Logger   *slog.Logger
}

// NewRendererService is the constructor for rendererService.
func NewRendererService(params RendererServiceParams) usecase.RendererUsecase {
	defaultBanner := ""
	if params.Config.Profile != nil {
		defaultBanner = params.Config.Profile.DefaultBanner
	}

	return &rendererService{
		profiles:      params.Profiles,
		defaultBanner: defaultBanner,
		logger:        params.Logger,
	}
}

func (srv *rendererService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Render resolves the public page for a username. A missing profile is a
// NotFound result, not an error; infrastructure failures collapse into the
// Error state so the delivery layer can choose a failure page.
func (srv *rendererService) Render(ctx context.Context, username string) *usecase.RenderResult {
	profile, err := srv.profiles.GetPublicProfile(ctx, username)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return &usecase.RenderResult{State: usecase.RenderNotFound}
		}

		srv.log(ctx).Error("Failed to render public profile", slog.String("username", username), slog.Any("error", err))

		return &usecase.RenderResult{State: usecase.RenderError}
	}

	if profile.Avatar == "" {
		profile.Avatar = generatedAvatarDataURI(profile.Username)
	}
	if profile.Banner == "" {
		profile.Banner = srv.defaultBanner
	}

	return &usecase.RenderResult{
		State:   usecase.RenderFound,
		Profile: profile,
	}
}

// generatedAvatarDataURI builds a deterministic placeholder avatar: a colored
// tile with the username's initial, inlined as an SVG data URI so no asset
// hosting is needed.
func generatedAvatarDataURI(username string) string {
	hash := fnv.New32a()
	hash.Write([]byte(username))
	background := avatarPalette[int(hash.Sum32())%len(avatarPalette)]

	initial := "?"
	for _, r := range username {
		initial = string(unicode.ToUpper(r))

		break
	}

	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="128" height="128" viewBox="0 0 128 128">`+
			`<rect width="128" height="128" rx="64" fill="%s"/>`+
			`<text x="64" y="82" font-family="sans-serif" font-size="56" fill="#ffffff" text-anchor="middle">%s</text>`+
			`</svg>`,
		background, initial,
	)

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}
