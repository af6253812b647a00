package usecase

import (
	"context"

	"linkbio/internal/domain/entity"

	"github.com/google/uuid"
)

// LinkInput is one link entry in a profile patch, before sanitization.
type LinkInput struct {
	Label string
	URL   string
	Color string
}

// UpdateProfileInput is a partial patch: nil pointers mean "leave unchanged".
// A non-nil Links slice replaces the whole ordered list.
type UpdateProfileInput struct {
	Name     *string
	Username *string
	Bio      *string
	Avatar   *string
	Banner   *string
	Theme    *string
	Links    []LinkInput
	HasLinks bool // distinguishes "clear all links" from "links absent"

	// Password, when non-empty, is re-hashed and replaces the credential.
	Password *string
}

// ProfileUsecase defines profile read/write operations.
type ProfileUsecase interface {
	// UpdateProfile applies a sanitized partial patch to the owner's profile.
	// Last write wins on concurrent updates.
	UpdateProfile(ctx context.Context, ownerID uuid.UUID, patch *UpdateProfileInput) (*entity.User, error)

	// GetPublicProfile fetches the credential-stripped projection for the
	// vanity username and bumps the view counter best-effort.
	GetPublicProfile(ctx context.Context, username string) (*entity.PublicProfile, error)
}
