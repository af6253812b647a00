package usecase

import (
	"context"

	"linkbio/internal/domain/entity"
)

// RenderState is the terminal outcome of rendering a public page. NotFound and
// Error are distinct: a missing profile is not a failure.
type RenderState string

const (
	RenderFound    RenderState = "found"
	RenderNotFound RenderState = "not_found"
	RenderError    RenderState = "error"
)

// RenderResult carries the state plus the display-ready profile when found.
type RenderResult struct {
	State   RenderState
	Profile *entity.PublicProfile
}

// RendererUsecase produces the display-ready public page model. Render never
// returns an error; failures collapse into the Error state.
type RendererUsecase interface {
	Render(ctx context.Context, username string) *RenderResult
}
