package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Gabryew/boas-noticias/internal/news"
)

// DefaultRemoteURL is the sentiment inference endpoint, a Portuguese
// BERT sentiment model on the Hugging Face inference API.
const DefaultRemoteURL = "https://api-inference.huggingface.co/models/pierreguillou/bert-base-cased-pt-sentiment"

const maxRemoteInputLen = 2000

// Remote delegates classification to an external sentiment inference
// service. The service is treated as unreliable: any transport, status,
// or decode failure degrades to Neutral instead of surfacing an error.
type Remote struct {
	url    string
	apiKey string
	client *http.Client
}

// NewRemote creates the remote strategy. The API key is read from the
// named environment variable; an empty URL falls back to the default
// model endpoint.
func NewRemote(url, apiKeyEnv string) *Remote {
	if url == "" {
		url = DefaultRemoteURL
	}
	return &Remote{
		url:    url,
		apiKey: os.Getenv(apiKeyEnv),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// IsConfigured returns whether the API key is available.
func (r *Remote) IsConfigured() bool {
	return r.apiKey != ""
}

// Classify implements Classifier.
func (r *Remote) Classify(ctx context.Context, text string) news.Label {
	if len(text) > maxRemoteInputLen {
		text = text[:maxRemoteInputLen]
	}

	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		log.Printf("Sentiment request encode error: %v", err)
		return news.Neutral
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		log.Printf("Sentiment request error: %v", err)
		return news.Neutral
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		log.Printf("Sentiment service error: %v", err)
		return news.Neutral
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Sentiment service HTTP error: %d", resp.StatusCode)
		return news.Neutral
	}

	label, ok := decodeSentiment(resp.Body)
	if !ok {
		log.Printf("Sentiment service returned an unusable response")
		return news.Neutral
	}
	return mapSentimentLabel(label)
}

type sentimentScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// decodeSentiment extracts the top-scoring label from the inference
// response. The API answers either a flat score list or a list nested
// one level deeper depending on the model pipeline; both are accepted.
func decodeSentiment(body io.Reader) (string, bool) {
	var raw json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return "", false
	}

	var flat []sentimentScore
	if err := json.Unmarshal(raw, &flat); err != nil || len(flat) == 0 {
		var nested [][]sentimentScore
		if err := json.Unmarshal(raw, &nested); err != nil || len(nested) == 0 {
			return "", false
		}
		flat = nested[0]
	}
	if len(flat) == 0 {
		return "", false
	}

	best := flat[0]
	for _, s := range flat[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return best.Label, true
}

// mapSentimentLabel folds the service's label space into the three-way
// enum: positive to Good, negative to Bad, anything else to Neutral.
func mapSentimentLabel(label string) news.Label {
	switch label {
	case "POS", "POSITIVE":
		return news.Good
	case "NEG", "NEGATIVE":
		return news.Bad
	default:
		return news.Neutral
	}
}
