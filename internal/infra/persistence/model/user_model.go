// Package model contains the persistence representations of domain entities
// and the mapping between the two. Keeping the bson layout here means the
// domain layer never sees driver tags.
package model

import (
	"time"

	"linkbio/internal/domain/entity"

	"github.com/google/uuid"
)

// LinkModel is the embedded document for a single outbound link.
type LinkModel struct {
	Label string `bson:"label"`
	URL   string `bson:"url"`
	Color string `bson:"color"`
}

// UserModel is the bson document stored in the users collection. The UUID is
// stored as a string _id so documents stay readable in shell tooling.
type UserModel struct {
	ID           string      `bson:"_id"`
	Username     string      `bson:"username"`
	Email        string      `bson:"email"`
	PasswordHash string      `bson:"password"`
	Name         string      `bson:"name"`
	Bio          string      `bson:"bio"`
	Avatar       string      `bson:"avatar"`
	Banner       string      `bson:"banner"`
	Theme        string      `bson:"theme"`
	Links        []LinkModel `bson:"links"`
	Views        int64       `bson:"views"`
	CreatedAt    time.Time   `bson:"created_at"`
	UpdatedAt    time.Time   `bson:"updated_at"`
}

// FromUserDomain maps a pure domain entity to its persistence model.
func FromUserDomain(user *entity.User) *UserModel {
	links := make([]LinkModel, 0, len(user.Links))
	for _, link := range user.Links {
		links = append(links, LinkModel{
			Label: link.Label,
			URL:   link.URL,
			Color: link.Color,
		})
	}

	return &UserModel{
		ID:           user.ID.String(),
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Name:         user.Name,
		Bio:          user.Bio,
		Avatar:       user.Avatar,
		Banner:       user.Banner,
		Theme:        string(user.Theme),
		Links:        links,
		Views:        user.Views,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// ToUserDomain maps a persistence model back to a pure domain entity.
// Unknown or legacy theme values degrade to the default rather than leaking
// out of the persistence boundary.
func ToUserDomain(userM *UserModel) *entity.User {
	id, err := uuid.Parse(userM.ID)
	if err != nil {
		id = uuid.Nil
	}

	theme := entity.Theme(userM.Theme)
	if !theme.Valid() {
		theme = entity.ThemeCard
	}

	var links []entity.Link
	if len(userM.Links) > 0 {
		links = make([]entity.Link, 0, len(userM.Links))
		for _, link := range userM.Links {
			links = append(links, entity.Link{
				Label: link.Label,
				URL:   link.URL,
				Color: link.Color,
			})
		}
	}

	return &entity.User{
		ID:           id,
		Username:     userM.Username,
		Email:        userM.Email,
		PasswordHash: userM.PasswordHash,
		Name:         userM.Name,
		Bio:          userM.Bio,
		Avatar:       userM.Avatar,
		Banner:       userM.Banner,
		Theme:        theme,
		Links:        links,
		Views:        userM.Views,
		CreatedAt:    userM.CreatedAt,
		UpdatedAt:    userM.UpdatedAt,
	}
}
