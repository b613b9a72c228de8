package classify

import (
	"context"
	"log"
	"strings"

	"github.com/Gabryew/boas-noticias/internal/news"
	"github.com/Gabryew/boas-noticias/internal/vocab"
)

// DefaultThreshold is the net hit count a text must strictly exceed to
// leave Neutral.
const DefaultThreshold = 1

// scoreText counts how many keywords from each set occur in the text
// (substring presence, each keyword at most once) and returns the net
// score. A word present in both sets contributes to both counts and
// cancels out.
func scoreText(text string, v vocab.Vocabulary) int {
	score := 0
	for _, kw := range v.Positive {
		if strings.Contains(text, kw) {
			score++
		}
	}
	for _, kw := range v.Negative {
		if strings.Contains(text, kw) {
			score--
		}
	}
	return score
}

// labelForScore applies the shared tie-break rule: the comparison is a
// strict inequality both directions, so a score exactly at the threshold
// stays Neutral.
func labelForScore(score, threshold int) news.Label {
	switch {
	case score > threshold:
		return news.Good
	case score < -threshold:
		return news.Bad
	default:
		return news.Neutral
	}
}

// Static scores against the fixed seed vocabulary.
type Static struct {
	vocabulary vocab.Vocabulary
	threshold  int
}

// NewStatic creates the static keyword strategy.
func NewStatic(threshold int) *Static {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Static{vocabulary: vocab.Default(), threshold: threshold}
}

// Classify implements Classifier.
func (s *Static) Classify(_ context.Context, text string) news.Label {
	return labelForScore(scoreText(text, s.vocabulary), s.threshold)
}

// Adaptive scores with the same rule as Static but reads the keyword
// sets from the mutable vocabulary store on every call, so words the
// learning loop appended take effect immediately.
type Adaptive struct {
	store     vocab.Store
	threshold int
}

// NewAdaptive creates the adaptive keyword strategy.
func NewAdaptive(store vocab.Store, threshold int) *Adaptive {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Adaptive{store: store, threshold: threshold}
}

// Classify implements Classifier. A store read failure is logged and the
// seed vocabulary is scored instead; classification never fails.
func (a *Adaptive) Classify(_ context.Context, text string) news.Label {
	v, err := a.store.Load()
	if err != nil {
		log.Printf("Vocabulary load failed, scoring with seed vocabulary: %v", err)
		v = vocab.Default()
	}
	return labelForScore(scoreText(text, v), a.threshold)
}
