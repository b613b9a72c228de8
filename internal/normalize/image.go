package normalize

import (
	"regexp"

	"github.com/Gabryew/boas-noticias/internal/feed"
)

var imgSrcPattern = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`)

// Image resolves a best-effort image URL for a raw item, or nil when no
// candidate yields one. Fallback order: enclosure, media:content,
// media:thumbnail, then the first <img src> found in the content fields.
func Image(raw feed.Item) *string {
	for _, candidate := range []string{raw.EnclosureURL, raw.MediaContentURL, raw.MediaThumbnailURL} {
		if candidate != "" {
			return &candidate
		}
	}

	for _, body := range []string{raw.Encoded, raw.Content, raw.Summary, raw.Snippet} {
		if body == "" {
			continue
		}
		if m := imgSrcPattern.FindStringSubmatch(body); m != nil {
			src := m[1]
			return &src
		}
	}

	return nil
}
