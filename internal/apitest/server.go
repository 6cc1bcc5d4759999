// Package apitest is a fake of the Flicksy backend's JSON
// contract, served over httptest for widget and client tests.
package apitest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"flicksy/pkg/models"
)

const (
	DemoEmail    = "demo@flicksy.test"
	DemoPassword = "correct horse"
	DemoName     = "Demo User"
)

// Request is what the fake saw of one call.
type Request struct {
	Method   string
	Path     string
	RawQuery string
	Query    string // decoded q parameter
	Body     []byte
}

// Hook runs before routing. It may block, or abort the request to stand in
// for a failing backend.
type Hook func(c *gin.Context)

type Server struct {
	*httptest.Server
	Store *Store

	key sessionKey

	mu       sync.Mutex
	hook     Hook
	requests []Request
}

// NewServer starts a fake seeded with the demo user and catalog. Close it
// when done. Like httptest.NewServer it panics when it cannot start.
func NewServer() *Server {
	gin.SetMode(gin.TestMode)

	st, err := NewStore()
	if err != nil {
		panic(fmt.Sprintf("apitest: %v", err))
	}
	if err := Seed(context.Background(), st); err != nil {
		_ = st.Close()
		panic(fmt.Sprintf("apitest: seed: %v", err))
	}
	s := &Server{
		Store: st,
		key:   sessionKey(uuid.NewString()),
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.record, s.runHook)

	r.POST("/login", s.login)
	r.GET("/search", s.search)

	r.GET("/api/movie/:id/cast", s.cast(models.MediaMovie))
	r.GET("/api/tv/:id/cast", s.cast(models.MediaTV))
	r.GET("/api/movie/:id/platforms", s.platforms(models.MediaMovie))
	r.GET("/api/tv/:id/platforms", s.platforms(models.MediaTV))

	wl := r.Group("/api/watchlist", s.requireSession("User not logged in"))
	s.registerWatchlist(wl)

	reviews := r.Group("", s.requireSession("You must be logged in to post a review."))
	reviews.POST("/movie/:id/review", s.review(models.MediaMovie))
	reviews.POST("/tv/:id/review", s.review(models.MediaTV))

	s.Server = httptest.NewServer(r)
	return s
}

// Close stops the server and drops its database. It may be called more
// than once.
func (s *Server) Close() {
	s.Server.Close()
	_ = s.Store.Close()
}

// SetHook installs h for every following request; nil removes it.
func (s *Server) SetHook(h Hook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hook = h
}

// FailWith makes every request to path answer status with {"error": msg}.
func (s *Server) FailWith(path string, status int, msg string) {
	s.SetHook(func(c *gin.Context) {
		if c.Request.URL.Path != path {
			return
		}
		if msg == "" {
			c.AbortWithStatus(status)
			return
		}
		c.AbortWithStatusJSON(status, gin.H{"error": msg})
	})
}

// Requests returns every request seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// RequestsTo filters Requests by path.
func (s *Server) RequestsTo(path string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (s *Server) record(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:   c.Request.Method,
		Path:     c.Request.URL.Path,
		RawQuery: c.Request.URL.RawQuery,
		Query:    c.Query("q"),
		Body:     body,
	})
	s.mu.Unlock()
	c.Next()
}

func (s *Server) runHook(c *gin.Context) {
	s.mu.Lock()
	h := s.hook
	s.mu.Unlock()
	if h != nil {
		h(c)
	}
	if !c.IsAborted() {
		c.Next()
	}
}
