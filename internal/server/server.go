// Package server is the HTTP shell handing the pipeline's paginated
// envelope to the client. It aggregates lazily and serves pages out of a
// cached snapshot so cursors stay stable across sequential requests.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gabryew/boas-noticias/internal/aggregate"
	"github.com/Gabryew/boas-noticias/internal/feed"
	"github.com/Gabryew/boas-noticias/internal/news"
)

// Envelope is the paginated response shape. A null nextCursor tells the
// client to stop requesting pages.
type Envelope struct {
	Items      []news.Item `json:"items"`
	NextCursor *int        `json:"nextCursor"`
}

// Server serves the aggregated news list.
type Server struct {
	agg      *aggregate.Aggregator
	sources  []feed.Source
	pageSize int
	ttl      time.Duration
	engine   *gin.Engine

	mu        sync.Mutex
	snapshot  []news.Item
	fetchedAt time.Time
}

// New creates a server around an aggregator.
func New(agg *aggregate.Aggregator, sources []feed.Source, pageSize int, ttl time.Duration) *Server {
	if pageSize <= 0 {
		pageSize = 20
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	s := &Server{
		agg:      agg,
		sources:  sources,
		pageSize: pageSize,
		ttl:      ttl,
	}

	gin.SetMode(gin.ReleaseMode)
	s.engine = gin.New()
	s.engine.Use(gin.Recovery())
	s.engine.Use(corsMiddleware())
	s.routes()
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe blocks serving the API on the given port.
func (s *Server) ListenAndServe(port int) error {
	return http.ListenAndServe(fmt.Sprintf(":%d", port), s.engine)
}

func (s *Server) routes() {
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/api/noticias", s.handleNoticias)
	s.engine.GET("/api/boas-noticias", s.handleBoasNoticias)
}

// corsMiddleware lets the browser client on another origin consume the
// API.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	s.mu.Lock()
	itemCount := len(s.snapshot)
	age := time.Duration(0)
	if !s.fetchedAt.IsZero() {
		age = time.Since(s.fetchedAt)
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"timestamp":    time.Now().Format(time.RFC3339),
		"sources":      len(s.sources),
		"items":        itemCount,
		"snapshot_age": age.String(),
	})
}

func (s *Server) handleNoticias(c *gin.Context) {
	s.servePage(c, nil)
}

// handleBoasNoticias serves only good news, the product's original
// single endpoint.
func (s *Server) handleBoasNoticias(c *gin.Context) {
	s.servePage(c, func(item news.Item) bool { return item.Classification == news.Good })
}

func (s *Server) servePage(c *gin.Context, keep func(news.Item) bool) {
	cursor, ok := parseCursor(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cursor"})
		return
	}

	items, err := s.snapshotItems(c.Request.Context())
	if err != nil {
		log.Printf("Aggregation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to aggregate news"})
		return
	}

	if keep != nil {
		filtered := make([]news.Item, 0, len(items))
		for _, item := range items {
			if keep(item) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	page, next := news.Page(items, cursor, s.pageSize)
	c.JSON(http.StatusOK, Envelope{Items: page, NextCursor: next})
}

func parseCursor(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("cursor", "0")
	cursor, err := strconv.Atoi(raw)
	if err != nil || cursor < 0 {
		return 0, false
	}
	return cursor, true
}

// snapshotItems returns the cached aggregation, refreshing it when
// stale. A refresh failure keeps serving the previous snapshot; only a
// cold start with no snapshot at all surfaces the error.
func (s *Server) snapshotItems(ctx context.Context) ([]news.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.fetchedAt.IsZero() && time.Since(s.fetchedAt) < s.ttl {
		return s.snapshot, nil
	}

	items, err := s.agg.Run(ctx, s.sources)
	if err != nil {
		if s.snapshot != nil {
			log.Printf("Snapshot refresh failed, serving stale data: %v", err)
			return s.snapshot, nil
		}
		return nil, err
	}

	s.snapshot = items
	s.fetchedAt = time.Now()
	return s.snapshot, nil
}
