package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type resultEntry struct {
	Accuracy string `json:"accuracy"`
	AvgTime  string `json:"avgTime"`
}

func (s *Server) handleHealth(c *gin.Context) {
	clients := 0
	if s.hub != nil {
		clients = s.hub.ClientCount()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"time":             time.Now().UTC().Format(time.RFC3339),
		"connectedClients": clients,
	})
}

// handleRun starts the full evaluation and acknowledges only after every
// domain finishes. The run uses a background context: once started it
// goes to completion even if the caller disconnects.
func (s *Server) handleRun(c *gin.Context) {
	if s.runner == nil {
		respondError(c, http.StatusInternalServerError, errors.New("evaluation runner not configured"))
		return
	}

	if err := s.runner.RunAll(context.Background()); err != nil {
		respondError(c, http.StatusBadGateway, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "complete"})
}

func (s *Server) handleResults(c *gin.Context) {
	if s.results == nil {
		respondError(c, http.StatusInternalServerError, errors.New("aggregator not configured"))
		return
	}

	results, err := s.results.ComputeResults(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	out := make(map[string]resultEntry, len(results))
	for domain, agg := range results {
		out[domain] = resultEntry{
			Accuracy: formatFixed2(agg.AccuracyPercent),
			AvgTime:  formatFixed2(agg.AvgLatencyMs),
		}
	}

	c.JSON(http.StatusOK, out)
}

func (s *Server) handleReset(c *gin.Context) {
	if s.store == nil {
		respondError(c, http.StatusInternalServerError, errors.New("store not configured"))
		return
	}

	if err := s.store.ResetAll(c.Request.Context()); err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

// handleAdd adds two numbers passed as query parameters. A connectivity
// smoke test for the API layer.
func (s *Server) handleAdd(c *gin.Context) {
	a, errA := strconv.ParseFloat(strings.TrimSpace(c.Query("a")), 64)
	b, errB := strconv.ParseFloat(strings.TrimSpace(c.Query("b")), 64)
	if errA != nil || errB != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid input. Both a and b must be numbers.",
			"example": "/api/add?a=2&b=3",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"a":         a,
		"b":         b,
		"result":    a + b,
		"operation": "addition",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func respondError(c *gin.Context, status int, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, gin.H{"error": msg})
}

func formatFixed2(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
