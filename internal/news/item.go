package news

import (
	"strings"
	"time"
)

// Label is the three-way sentiment classification of an item.
type Label string

const (
	Good    Label = "good"
	Neutral Label = "neutral"
	Bad     Label = "bad"
)

// Valid reports whether l is one of the three known labels.
func (l Label) Valid() bool {
	return l == Good || l == Neutral || l == Bad
}

const wordsPerMinute = 200

// Item is a normalized, classified news item as served to the client.
// Items are immutable once classified; the aggregator treats two items
// with the same Link as the same item.
type Item struct {
	Title              string     `json:"title"`
	Content            string     `json:"content"`
	Link               string     `json:"link"`
	PublishedAt        *time.Time `json:"publishedAt"`
	Image              *string    `json:"image"`
	Author             string     `json:"author"`
	Source             string     `json:"source"`
	Classification     Label      `json:"classification"`
	ReadingTimeMinutes int        `json:"readingTimeMinutes"`
}

// ReadingTime estimates reading time in minutes at 200 words per minute,
// rounded up. Empty content reads in zero minutes.
func ReadingTime(content string) int {
	words := len(strings.Fields(content))
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
