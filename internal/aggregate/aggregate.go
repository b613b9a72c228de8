// Package aggregate drives the pipeline across all configured sources:
// retrieve, normalize, resolve image, classify through the cache, feed
// the learning loop, then deduplicate and sort the combined list.
package aggregate

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"

	"github.com/Gabryew/boas-noticias/internal/classify"
	"github.com/Gabryew/boas-noticias/internal/feed"
	"github.com/Gabryew/boas-noticias/internal/news"
	"github.com/Gabryew/boas-noticias/internal/normalize"
)

// ErrNoSources is the only error Run surfaces: an aggregation request
// with nothing to aggregate. Per-source failures are logged and skipped.
var ErrNoSources = errors.New("no feed sources configured")

// DefaultMaxConcurrent caps concurrent feed retrievals.
const DefaultMaxConcurrent = 4

// FeedFetcher retrieves raw items for one source.
type FeedFetcher interface {
	Fetch(ctx context.Context, src feed.Source) ([]feed.Item, error)
}

// ContentFetcher pulls full article text for items whose feed carried no
// body.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}

// Config wires an Aggregator. Feeds, Classifier, and Cache are required;
// Learner and Content are optional enrichments.
type Config struct {
	Feeds         FeedFetcher
	Classifier    classify.Classifier
	Cache         *classify.Cache
	Learner       *classify.Learner
	Content       ContentFetcher
	MaxConcurrent int
}

// Aggregator assembles the unified, deduplicated, sorted item list.
type Aggregator struct {
	feeds         FeedFetcher
	classifier    classify.Classifier
	cache         *classify.Cache
	learner       *classify.Learner
	content       ContentFetcher
	maxConcurrent int
}

// New creates an aggregator.
func New(cfg Config) *Aggregator {
	if cfg.Cache == nil {
		cfg.Cache = classify.NewCache(0)
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = DefaultMaxConcurrent
	}
	return &Aggregator{
		feeds:         cfg.Feeds,
		classifier:    cfg.Classifier,
		cache:         cfg.Cache,
		learner:       cfg.Learner,
		content:       cfg.Content,
		maxConcurrent: cfg.MaxConcurrent,
	}
}

// Run processes all sources and returns the combined result, newest
// first. A failing source is skipped; the only fatal condition is an
// empty source list.
func (a *Aggregator) Run(ctx context.Context, sources []feed.Source) ([]news.Item, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	sem := make(chan struct{}, a.maxConcurrent)
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		all []news.Item
	)

	for _, src := range sources {
		wg.Add(1)
		go func(src feed.Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			items := a.processSource(ctx, src)
			if len(items) == 0 {
				return
			}
			mu.Lock()
			all = append(all, items...)
			mu.Unlock()
		}(src)
	}
	wg.Wait()

	all = Deduplicate(all)
	SortByPublished(all)
	return all, nil
}

func (a *Aggregator) processSource(ctx context.Context, src feed.Source) []news.Item {
	raws, err := a.feeds.Fetch(ctx, src)
	if err != nil {
		if errors.Is(err, feed.ErrEmpty) {
			log.Printf("Skipping feed with no items: %v", err)
		} else {
			log.Printf("Skipping unavailable feed: %v", err)
		}
		return nil
	}

	items := make([]news.Item, 0, len(raws))
	for _, raw := range raws {
		item := normalize.Item(raw)
		item.Image = normalize.Image(raw)

		if item.Content == "" && item.Link != "" && a.content != nil {
			if text, err := a.content.FetchContent(ctx, item.Link); err != nil {
				log.Printf("Content fetch failed for %s: %v", item.Link, err)
			} else if text != "" {
				item.Content = text
				item.ReadingTimeMinutes = news.ReadingTime(text)
			}
		}

		item.Classification = a.classifyItem(ctx, item)
		items = append(items, item)
	}

	log.Printf("Processed %d items from %s", len(items), src.URL)
	return items
}

// classifyItem runs the text through the cache, then the strategy. Fresh
// results populate the cache and feed the learning loop.
func (a *Aggregator) classifyItem(ctx context.Context, item news.Item) news.Label {
	text := classify.NormalizeText(item.Title, item.Content)

	if label, ok := a.cache.Get(text); ok {
		return label
	}

	label := a.classifier.Classify(ctx, text)
	if !label.Valid() {
		label = news.Neutral
	}
	a.cache.Put(text, label)

	if a.learner != nil {
		a.learner.Observe(text, label)
	}
	return label
}

// Deduplicate keeps the first-seen item per canonical link and discards
// later duplicates. Items without a link have no identity to collide on
// and are all kept.
func Deduplicate(items []news.Item) []news.Item {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, item := range items {
		if item.Link != "" {
			if _, dup := seen[item.Link]; dup {
				continue
			}
			seen[item.Link] = struct{}{}
		}
		out = append(out, item)
	}
	return out
}

// SortByPublished orders items by publication time descending. Items
// without a date sort after every dated item.
func SortByPublished(items []news.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].PublishedAt, items[j].PublishedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
