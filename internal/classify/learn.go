package classify

import (
	"log"
	"sync/atomic"

	"github.com/Gabryew/boas-noticias/internal/news"
	"github.com/Gabryew/boas-noticias/internal/vocab"
)

// Learning loop defaults. Both bounds are configurable; they exist
// because the vocabulary only ever grows.
const (
	DefaultMinWordLength = 4
	DefaultMaxWords      = 5000

	learnQueueSize = 256
)

type learnEvent struct {
	text  string
	label news.Label
}

// Learner is the feedback loop that grows the vocabulary from
// classification results. Events flow through a single consumer
// goroutine, so vocabulary writes are serialized and concurrent
// classifications cannot lose each other's words. Everything here is
// best-effort: a failed or dropped update never affects the
// classification that produced it.
type Learner struct {
	store      vocab.Store
	minWordLen int
	maxWords   int
	events     chan learnEvent
	done       chan struct{}
	closed     atomic.Bool
	dropped    atomic.Int64
}

// NewLearner creates a learner writing to the given store.
func NewLearner(store vocab.Store, minWordLen, maxWords int) *Learner {
	if minWordLen <= 0 {
		minWordLen = DefaultMinWordLength
	}
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	l := &Learner{
		store:      store,
		minWordLen: minWordLen,
		maxWords:   maxWords,
		events:     make(chan learnEvent, learnQueueSize),
		done:       make(chan struct{}),
	}
	go l.run()
	return l
}

// Observe enqueues a classification result. Neutral results carry no
// signal and are ignored. The enqueue never blocks; when the queue is
// full the event is dropped and counted.
func (l *Learner) Observe(text string, label news.Label) {
	if label == news.Neutral || l.closed.Load() {
		return
	}
	select {
	case l.events <- learnEvent{text: text, label: label}:
	default:
		l.dropped.Add(1)
	}
}

// Close drains pending events and stops the consumer.
func (l *Learner) Close() {
	if l.closed.Swap(true) {
		return
	}
	close(l.events)
	<-l.done
	if n := l.dropped.Load(); n > 0 {
		log.Printf("Learning loop dropped %d events under load", n)
	}
}

func (l *Learner) run() {
	defer close(l.done)
	for ev := range l.events {
		l.learn(ev)
	}
}

func (l *Learner) learn(ev learnEvent) {
	polarity := vocab.Positive
	if ev.label == news.Bad {
		polarity = vocab.Negative
	}

	words := l.candidateWords(ev.text)
	if len(words) == 0 {
		return
	}

	count, err := l.store.Count(polarity)
	if err != nil {
		log.Printf("Vocabulary count failed: %v", err)
		return
	}
	if count >= l.maxWords {
		return
	}
	if room := l.maxWords - count; len(words) > room {
		words = words[:room]
	}

	added, err := l.store.AddWords(polarity, words)
	if err != nil {
		log.Printf("Vocabulary update failed: %v", err)
		return
	}
	if added > 0 {
		log.Printf("Learned %d new %s keywords", added, polarity)
	}
}

// candidateWords tokenizes normalized text and keeps words long enough
// to carry sentiment signal, deduplicated within the event.
func (l *Learner) candidateWords(text string) []string {
	seen := make(map[string]struct{})
	var words []string
	for _, w := range Tokenize(text) {
		if len([]rune(w)) < l.minWordLen {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words
}
