// Package herotest provides an in-memory heroes REST API for tests.
package herotest

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/heroes-client/internal/hero"
)

// BasePath is the collection path served by the fake API.
const BasePath = "/api/heroes"

// Request is a recorded inbound request.
type Request struct {
	Method      string
	Path        string
	ContentType string
	RequestID   string
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server is a gin-backed heroes API running on an httptest server.
type Server struct {
	mu       sync.Mutex
	heroes   map[int]hero.Hero
	nextID   int
	requests []Request
	failWith int

	ts *httptest.Server
}

// New starts a fake API seeded with the given heroes. It is closed on test cleanup.
func New(t testing.TB, seed ...hero.Hero) *Server {
	t.Helper()

	s := &Server{
		heroes: make(map[int]hero.Hero),
		nextID: 1,
	}
	for _, h := range seed {
		s.heroes[h.ID] = h
		if h.ID >= s.nextID {
			s.nextID = h.ID + 1
		}
	}

	disabledLogger := zerolog.Nop()
	s.ts = httptest.NewServer(s.router(&disabledLogger))
	t.Cleanup(s.ts.Close)

	return s
}

// URL returns the absolute collection URL.
func (s *Server) URL() string {
	return s.ts.URL + BasePath
}

// FailWith makes every following request answer with the given status. Zero restores normal handling.
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	s.failWith = status
	s.mu.Unlock()
}

// Requests returns the recorded requests in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Hero returns the stored hero with the given id.
func (s *Server) Hero(id int) (hero.Hero, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.heroes[id]
	return h, ok
}

func (s *Server) router(logger *zerolog.Logger) http.Handler {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(loggerMiddleware(logger), s.recordMiddleware())

	api := r.Group(BasePath)
	api.GET("", s.listHeroes)
	api.GET("/:id", s.getHero)
	api.POST("", s.createHero)
	api.PUT("", s.updateHero)
	api.DELETE("/:id", s.deleteHero)

	return r
}

func loggerMiddleware(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("http request")
	}
}

func (s *Server) recordMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:      c.Request.Method,
			Path:        c.Request.URL.Path,
			ContentType: c.GetHeader("Content-Type"),
			RequestID:   c.GetHeader(hero.RequestIDHeader),
		})
		status := s.failWith
		s.mu.Unlock()

		if status != 0 {
			c.AbortWithStatusJSON(status, ErrorResponse{Error: http.StatusText(status)})
			return
		}
		c.Next()
	}
}

// GET /api/heroes
func (s *Server) listHeroes(c *gin.Context) {
	s.mu.Lock()
	heroes := make([]hero.Hero, 0, len(s.heroes))
	for _, h := range s.heroes {
		heroes = append(heroes, h)
	}
	s.mu.Unlock()

	sort.Slice(heroes, func(i, j int) bool { return heroes[i].ID < heroes[j].ID })
	c.JSON(http.StatusOK, heroes)
}

// GET /api/heroes/:id
func (s *Server) getHero(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	h, found := s.Hero(id)
	if !found {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "hero not found"})
		return
	}
	c.JSON(http.StatusOK, h)
}

// POST /api/heroes
func (s *Server) createHero(c *gin.Context) {
	var req hero.Hero
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	s.mu.Lock()
	req.ID = s.nextID
	s.nextID++
	s.heroes[req.ID] = req
	s.mu.Unlock()

	c.JSON(http.StatusCreated, req)
}

// PUT /api/heroes
func (s *Server) updateHero(c *gin.Context) {
	var req hero.Hero
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	s.mu.Lock()
	_, found := s.heroes[req.ID]
	if found {
		s.heroes[req.ID] = req
	}
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "hero not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /api/heroes/:id
func (s *Server) deleteHero(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	h, found := s.heroes[id]
	delete(s.heroes, id)
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "hero not found"})
		return
	}
	c.JSON(http.StatusOK, h)
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid hero id"})
		return 0, false
	}
	return id, true
}
