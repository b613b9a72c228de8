package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Escola comunitária é inaugurada</title></head>
<body>
<nav><a href="/">Home</a> | <a href="/sobre">Sobre</a></nav>
<article>
<h1>Escola comunitária é inaugurada no interior</h1>
<p>Moradores celebraram nesta semana a inauguração de uma escola construída
em regime de mutirão. O projeto levou dois anos e contou com doações de
materiais de empresas da região, além do trabalho voluntário de dezenas
de famílias.</p>
<p>A nova unidade atenderá trezentas crianças e deve reduzir pela metade o
tempo de deslocamento dos alunos da zona rural. A prefeitura confirmou a
contratação de doze professores para o próximo semestre letivo.</p>
</article>
<footer>Rodapé do site</footer>
</body>
</html>`

func articleServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestFetchContentExtractsArticleText(t *testing.T) {
	ts := articleServer(t, http.StatusOK, articleHTML)
	fetcher := NewContentFetcher(5 * time.Second)

	text, err := fetcher.FetchContent(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if !strings.Contains(text, "regime de mutirão") {
		t.Errorf("expected article body in extracted text, got %q", text)
	}
	if strings.Contains(text, "Rodapé do site") {
		t.Error("expected boilerplate to be stripped")
	}
}

func TestFetchContentHTTPError(t *testing.T) {
	ts := articleServer(t, http.StatusNotFound, "not here")
	fetcher := NewContentFetcher(5 * time.Second)

	if _, err := fetcher.FetchContent(context.Background(), ts.URL); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestFetchContentTooShortIsEmpty(t *testing.T) {
	ts := articleServer(t, http.StatusOK, "<html><body><p>curto</p></body></html>")
	fetcher := NewContentFetcher(5 * time.Second)

	text, err := fetcher.FetchContent(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("short content must not be an error: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty text for unusable page, got %q", text)
	}
}

func TestFetchContentUnreachable(t *testing.T) {
	fetcher := NewContentFetcher(time.Second)
	if _, err := fetcher.FetchContent(context.Background(), "http://127.0.0.1:1/artigo"); err == nil {
		t.Error("expected error for unreachable host")
	}
}
