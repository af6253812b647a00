// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Theme is an enumerated presentation mode for the public profile page.
// It affects rendering only, never the stored link data.
type Theme string

const (
	ThemeCard     Theme = "card"
	ThemeMinimal  Theme = "minimal"
	ThemeGradient Theme = "gradient"
)

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	switch t {
	case ThemeCard, ThemeMinimal, ThemeGradient:
		return true
	}

	return false
}

// DefaultBio is the placeholder shown until the owner writes their own bio.
const DefaultBio = "This is my bio link. Check out my links below!"

// DefaultLinkColor is the brand color applied when a link has no valid color.
const DefaultLinkColor = "#1f2937"

// MaxLinks bounds the ordered link list stored on a profile.
const MaxLinks = 10

// Link is a single outbound button on the public profile. Links are ordered
// and embedded in the User document; they are not unique.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Color string `json:"color"`
}

// User is the sole persisted entity: an account plus its public profile.
// PasswordHash never leaves the persistence boundary in any projection.
type User struct {
	ID           uuid.UUID // Global unique identifier, stored as the document _id.
	Username     string    // Vanity path segment. Unique, lowercase, trimmed.
	Email        string    // Login identifier. Unique, lowercase, trimmed.
	PasswordHash string    // bcrypt hash of the credential. Never plaintext.
	Name         string    // Display name. Defaults to the username.
	Bio          string    // Short free text, bounded length.
	Avatar       string    // Avatar image URL. Empty means "use the generated default".
	Banner       string    // Banner image URL. Empty means "use the default banner".
	Theme        Theme     // Presentation mode, always one of the enumerated values.
	Links        []Link    // Ordered outbound links, at most MaxLinks entries.
	Views        int64     // Public fetch counter, incremented best-effort.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicProfile is the public-safe projection of a User: credential fields
// (password hash, email) are stripped before it leaves the service boundary.
type PublicProfile struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
	Banner   string `json:"banner"`
	Theme    Theme  `json:"theme"`
	Links    []Link `json:"links,omitempty"`
	Views    int64  `json:"views"`
}

// PublicProfile strips credentials from the user. The links slice is shared,
// not copied; callers must not mutate it.
func (u *User) PublicProfile() *PublicProfile {
	return &PublicProfile{
		Username: u.Username,
		Name:     u.Name,
		Bio:      u.Bio,
		Avatar:   u.Avatar,
		Banner:   u.Banner,
		Theme:    u.Theme,
		Links:    u.Links,
		Views:    u.Views,
	}
}

// AccountView is the owner-facing projection used by the dashboard. It adds
// the email on top of the public fields but still omits the password hash.
type AccountView struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Bio      string    `json:"bio"`
	Avatar   string    `json:"avatar"`
	Banner   string    `json:"banner"`
	Theme    Theme     `json:"theme"`
	Links    []Link    `json:"links"`
	Views    int64     `json:"views"`
}

// AccountView builds the owner-facing projection.
func (u *User) AccountView() *AccountView {
	return &AccountView{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Name:     u.Name,
		Bio:      u.Bio,
		Avatar:   u.Avatar,
		Banner:   u.Banner,
		Theme:    u.Theme,
		Links:    u.Links,
		Views:    u.Views,
	}
}
