package api

import (
	"errors"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) registerRoutes() error {
	if s == nil || s.router == nil {
		return nil
	}

	api := s.router.Group("/api")
	apiKey := strings.TrimSpace(os.Getenv("MCQ_EVAL_API_KEY"))
	if apiKey != "" {
		api.Use(apiKeyAuthMiddleware(apiKey))
	} else if strings.EqualFold(strings.TrimSpace(os.Getenv("MCQ_EVAL_DISABLE_AUTH")), "true") {
		// Explicitly allow unauthenticated access.
	} else {
		return errors.New("api: missing auth configuration: set MCQ_EVAL_API_KEY or set MCQ_EVAL_DISABLE_AUTH=true")
	}

	api.GET("/health", s.handleHealth)
	api.GET("/add", s.handleAdd)

	api.POST("/run", s.handleRun)
	api.GET("/results", s.handleResults)
	api.POST("/reset", s.handleReset)

	if s.hub != nil {
		// Progress listeners attach here; no auth, matching the open
		// channel semantics of the dashboard.
		s.router.GET("/ws", func(c *gin.Context) {
			s.hub.HandleConnection(c.Writer, c.Request)
		})
	}

	return nil
}
