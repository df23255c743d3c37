// Package server exposes the audit service over HTTP.
package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pagelens/backend/middleware"
	"github.com/pagelens/backend/service"
)

// Server wires the gin router around a Service.
type Server struct {
	svc    *service.Service
	engine *gin.Engine
}

type analyzeRequest struct {
	URL  string `json:"url" binding:"required,url"`
	HTML string `json:"html"`
}

// New builds the router with its middleware chain and API routes.
func New(svc *service.Service, limiter *middleware.RateLimiter) *Server {
	s := &Server{svc: svc, engine: gin.New()}

	s.engine.Use(middleware.Recovery())
	s.engine.Use(requestLogger())
	s.engine.Use(cors())
	s.engine.Use(limiter.RateLimit())

	api := s.engine.Group("/api")
	{
		api.GET("/health", s.health)
		api.POST("/analyze", s.analyze)
		api.GET("/statistics", s.statistics)
	}

	return s
}

// Run blocks serving on addr.
func (s *Server) Run(addr string) error {
	log.Info().Str("addr", addr).Msg("server starting")
	return s.engine.Run(addr)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// analyze audits a URL, or raw HTML when the client supplies it (the manual
// paste path); the URL is still required as the base for link resolution.
func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: a valid url is required"})
		return
	}

	if req.HTML != "" {
		result, err := s.svc.AnalyzeHTML(req.HTML, req.URL)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Failed to analyze document: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	result, err := s.svc.AnalyzeURL(c.Request.Context(), req.URL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to analyze URL: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// statistics reports the current month's counters; the full month history
// and cache details only show in dev mode.
func (s *Server) statistics(c *gin.Context) {
	current := s.svc.Stats().GetCurrentStats()
	payload := gin.H{
		"analyses":    current.Analyses,
		"cacheHits":   current.CacheHits,
		"cacheMisses": current.CacheMisses,
		"fetchErrors": current.FetchErrors,
	}
	if os.Getenv("DEV_MODE") == "true" {
		payload["months"] = s.svc.Stats().GetAllMonths()
		payload["cache"] = s.svc.CacheStats()
	}
	c.JSON(http.StatusOK, payload)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("ip", c.ClientIP()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, Cache-Control, X-Requested-With")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
