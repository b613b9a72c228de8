// Package normalize maps raw, shape-inconsistent feed items into the
// canonical news item form. Everything here is pure: no I/O, no errors,
// missing optional fields fall through to the next candidate.
package normalize

import (
	"time"

	"github.com/araddon/dateparse"

	"github.com/Gabryew/boas-noticias/internal/feed"
	"github.com/Gabryew/boas-noticias/internal/news"
)

// UnknownAuthor is the author placeholder when no creator or author field
// is present.
const UnknownAuthor = "Unknown"

// Item builds a partial news item from a raw feed item. Classification
// and image resolution happen elsewhere; everything else is resolved
// here, first non-empty candidate wins.
func Item(raw feed.Item) news.Item {
	content := firstNonEmpty(raw.Snippet, raw.Summary, raw.Encoded, raw.Content)

	return news.Item{
		Title:              raw.Title,
		Content:            content,
		Link:               raw.Link,
		PublishedAt:        publishedAt(raw),
		Author:             firstNonEmpty(raw.Creator, raw.Author, UnknownAuthor),
		Source:             raw.Source,
		ReadingTimeMinutes: news.ReadingTime(content),
	}
}

// publishedAt resolves the publication time: the parsed publish date,
// then the raw publish date string, then the ISO date field, then nil.
func publishedAt(raw feed.Item) *time.Time {
	if raw.PublishedParsed != nil {
		t := *raw.PublishedParsed
		return &t
	}
	for _, candidate := range []string{raw.Published, raw.Date} {
		if candidate == "" {
			continue
		}
		if t, err := dateparse.ParseAny(candidate); err == nil {
			return &t
		}
	}
	return nil
}

func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}
