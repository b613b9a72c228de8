// Package classify assigns a sentiment label to normalized news text.
// Three interchangeable strategies satisfy the same contract; selection
// happens once, by configuration, not at call sites.
package classify

import (
	"context"
	"strings"
	"unicode"

	"github.com/Gabryew/boas-noticias/internal/news"
	"github.com/Gabryew/boas-noticias/internal/vocab"
)

// Classifier labels normalized text. Implementations never fail the
// caller: a strategy that cannot reach a decision returns news.Neutral.
type Classifier interface {
	Classify(ctx context.Context, text string) news.Label
}

// Strategy names accepted in configuration.
const (
	StrategyStatic   = "static"
	StrategyAdaptive = "adaptive"
	StrategyRemote   = "remote"
)

// New creates the configured strategy. Unknown names fall back to the
// static strategy.
func New(strategy string, threshold int, store vocab.Store, remoteURL, apiKeyEnv string) Classifier {
	switch strategy {
	case StrategyAdaptive:
		return NewAdaptive(store, threshold)
	case StrategyRemote:
		return NewRemote(remoteURL, apiKeyEnv)
	default:
		return NewStatic(threshold)
	}
}

// NormalizeText lower-cases the title and content, strips punctuation,
// and collapses whitespace. The result is both the classification input
// and the cache key, so near-duplicate items across feeds share one
// decision.
func NormalizeText(title, content string) string {
	text := strings.ToLower(title + " " + content)
	text = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, text)
	return strings.Join(strings.Fields(text), " ")
}

// Tokenize splits normalized text into words.
func Tokenize(text string) []string {
	return strings.Fields(text)
}
