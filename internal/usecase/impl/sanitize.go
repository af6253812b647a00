package impl

import (
	"regexp"
	"strings"

	"linkbio/internal/domain/entity"
	"linkbio/internal/usecase"
)

// Field bounds for profile content. Inputs beyond these are truncated, not
// rejected: profile text is display data, not a credential.
const (
	maxNameRunes     = 80
	maxUsernameRunes = 40
	maxBioRunes      = 280
	maxLabelRunes    = 60
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// normalizeUsername lowercases and trims the vanity key so lookups are
// case-insensitive by construction.
func normalizeUsername(username string) string {
	return truncateRunes(strings.ToLower(strings.TrimSpace(username)), maxUsernameRunes)
}

// normalizeEmail lowercases and trims the login identifier.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizeName(name, fallback string) string {
	name = truncateRunes(strings.TrimSpace(name), maxNameRunes)
	if name == "" {
		return fallback
	}

	return name
}

func sanitizeBio(bio string) string {
	bio = truncateRunes(strings.TrimSpace(bio), maxBioRunes)
	if bio == "" {
		return entity.DefaultBio
	}

	return bio
}

func sanitizeTheme(theme string) entity.Theme {
	t := entity.Theme(strings.ToLower(strings.TrimSpace(theme)))
	if !t.Valid() {
		return entity.ThemeCard
	}

	return t
}

// sanitizeColor accepts #rgb or #rrggbb; anything else falls back to the
// default brand color.
func sanitizeColor(color string) string {
	color = strings.TrimSpace(color)
	if !hexColorPattern.MatchString(color) {
		return entity.DefaultLinkColor
	}

	return color
}

// normalizeImageURL trims and scheme-normalizes an avatar/banner/link URL.
// An empty value stays empty ("use the default"). Values that already carry a
// scheme (including data URIs for generated avatars) pass through untouched;
// bare hosts get https.
func normalizeImageURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	if strings.Contains(rawURL, "://") || strings.HasPrefix(rawURL, "data:") {
		return rawURL
	}

	return "https://" + rawURL
}

// sanitizeLinks cleans the ordered link list: entries with an empty label or
// URL are dropped, the rest are trimmed, bounded, and capped at MaxLinks.
func sanitizeLinks(inputs []usecase.LinkInput) []entity.Link {
	var links []entity.Link
	for _, input := range inputs {
		label := truncateRunes(strings.TrimSpace(input.Label), maxLabelRunes)
		url := normalizeImageURL(input.URL)
		if label == "" || url == "" {
			continue
		}

		links = append(links, entity.Link{
			Label: label,
			URL:   url,
			Color: sanitizeColor(input.Color),
		})
		if len(links) == entity.MaxLinks {
			break
		}
	}

	return links
}

func truncateRunes(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}

	return string(runes[:maxRunes])
}
