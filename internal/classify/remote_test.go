package classify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gabryew/boas-noticias/internal/news"
)

func sentimentServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestRemoteClassifyMapsLabels(t *testing.T) {
	tests := []struct {
		name string
		body string
		want news.Label
	}{
		{"positive", `[[{"label":"POS","score":0.98},{"label":"NEG","score":0.02}]]`, news.Good},
		{"negative", `[[{"label":"NEG","score":0.91},{"label":"POS","score":0.09}]]`, news.Bad},
		{"neutral label", `[[{"label":"NEU","score":0.77}]]`, news.Neutral},
		{"flat response shape", `[{"label":"POS","score":0.88}]`, news.Good},
		{"unknown label", `[[{"label":"WHAT","score":0.99}]]`, news.Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := sentimentServer(t, http.StatusOK, tt.body)
			classifier := NewRemote(ts.URL, "")

			got := classifier.Classify(context.Background(), "qualquer texto")
			if got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemoteClassifyDegradesToNeutral(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, "boom"},
		{"rate limited", http.StatusTooManyRequests, `{"error":"loading"}`},
		{"malformed json", http.StatusOK, `{"not":"an array"`},
		{"empty array", http.StatusOK, `[]`},
		{"object instead of array", http.StatusOK, `{"error":"model loading"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := sentimentServer(t, tt.status, tt.body)
			classifier := NewRemote(ts.URL, "")

			if got := classifier.Classify(context.Background(), "texto"); got != news.Neutral {
				t.Errorf("expected Neutral on failure, got %q", got)
			}
		})
	}
}

func TestRemoteClassifyUnreachableService(t *testing.T) {
	classifier := NewRemote("http://127.0.0.1:1/model", "")
	if got := classifier.Classify(context.Background(), "texto"); got != news.Neutral {
		t.Errorf("expected Neutral when service is unreachable, got %q", got)
	}
}

func TestRemoteSendsAPIKey(t *testing.T) {
	t.Setenv("TEST_SENTIMENT_KEY", "segredo")

	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[[{"label":"POS","score":0.9}]]`))
	}))
	t.Cleanup(ts.Close)

	classifier := NewRemote(ts.URL, "TEST_SENTIMENT_KEY")
	if !classifier.IsConfigured() {
		t.Fatal("expected classifier to be configured")
	}
	classifier.Classify(context.Background(), "texto")

	if gotAuth != "Bearer segredo" {
		t.Errorf("expected bearer token, got %q", gotAuth)
	}
}

func TestRemoteDefaultURL(t *testing.T) {
	classifier := NewRemote("", "")
	if classifier.url != DefaultRemoteURL {
		t.Errorf("expected default endpoint, got %q", classifier.url)
	}
}
