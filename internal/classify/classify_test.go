package classify

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/Gabryew/boas-noticias/internal/vocab"
)

// fakeStore implements vocab.Store in memory for strategy and learner
// tests.
type fakeStore struct {
	mu      sync.Mutex
	vocab   vocab.Vocabulary
	loadErr error
	addErr  error
}

func newFakeStore(v vocab.Vocabulary) *fakeStore {
	return &fakeStore{vocab: v}
}

func (f *fakeStore) Load() (vocab.Vocabulary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return vocab.Vocabulary{}, f.loadErr
	}
	return f.vocab, nil
}

func (f *fakeStore) Save(v vocab.Vocabulary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vocab = v
	return nil
}

func (f *fakeStore) AddWords(p vocab.Polarity, words []string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return 0, f.addErr
	}
	existing := make(map[string]struct{})
	for _, w := range f.vocab.Keywords(p) {
		existing[w] = struct{}{}
	}
	added := 0
	for _, w := range words {
		if _, ok := existing[w]; ok {
			continue
		}
		existing[w] = struct{}{}
		added++
		if p == vocab.Positive {
			f.vocab.Positive = append(f.vocab.Positive, w)
		} else {
			f.vocab.Negative = append(f.vocab.Negative, w)
		}
	}
	return added, nil
}

func (f *fakeStore) Count(p vocab.Polarity) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return 0, f.loadErr
	}
	return len(f.vocab.Keywords(p)), nil
}

var errStoreDown = errors.New("store down")

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
		want    string
	}{
		{"lowercases", "Cura Descoberta", "", "cura descoberta"},
		{"strips punctuation", "a cura foi incrível, vitória total!", "", "a cura foi incrível vitória total"},
		{"keeps accents", "Incêndio destrói prédio", "", "incêndio destrói prédio"},
		{"joins title and content", "Título", "corpo do texto", "título corpo do texto"},
		{"collapses whitespace", "muito    espaço", "\n\nmais", "muito espaço mais"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.title, tt.content); got != tt.want {
				t.Errorf("NormalizeText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeTextEquivalentInputsShareKey(t *testing.T) {
	a := NormalizeText("Cura descoberta!", "vitória total.")
	b := NormalizeText("cura DESCOBERTA", "vitória, total")
	if a != b {
		t.Errorf("expected equal cache keys, got %q and %q", a, b)
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("a cura foi incrível")
	want := []string{"a", "cura", "foi", "incrível"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestNewSelectsStrategy(t *testing.T) {
	store := newFakeStore(vocab.Default())

	if _, ok := New(StrategyStatic, 1, store, "", "").(*Static); !ok {
		t.Error("expected static strategy")
	}
	if _, ok := New(StrategyAdaptive, 1, store, "", "").(*Adaptive); !ok {
		t.Error("expected adaptive strategy")
	}
	if _, ok := New(StrategyRemote, 1, store, "", "KEY_ENV").(*Remote); !ok {
		t.Error("expected remote strategy")
	}
	if _, ok := New("unknown", 1, store, "", "").(*Static); !ok {
		t.Error("expected unknown strategy to fall back to static")
	}
}
