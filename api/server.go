package api

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stellarlinkco/mcq-eval/internal/config"
	"github.com/stellarlinkco/mcq-eval/internal/eval"
	"github.com/stellarlinkco/mcq-eval/internal/store"
	"github.com/stellarlinkco/mcq-eval/internal/ws"
)

// evalRunner starts a full evaluation run and blocks until it finishes.
type evalRunner interface {
	RunAll(ctx context.Context) error
}

// resultsComputer produces the per-domain aggregates.
type resultsComputer interface {
	ComputeResults(ctx context.Context) (map[string]eval.AggregateResult, error)
}

type Server struct {
	router  *gin.Engine
	store   store.Store
	runner  evalRunner
	results resultsComputer
	hub     *ws.Hub
	config  *config.Config
}

func NewServer(cfg *config.Config, st store.Store, runner *eval.Runner, agg *eval.Aggregator, hub *ws.Hub) (*Server, error) {
	r := gin.New()
	s := &Server{
		router:  r,
		store:   st,
		runner:  runner,
		results: agg,
		hub:     hub,
		config:  cfg,
	}
	s.registerMiddleware()
	if err := s.registerRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) Run(addr string) error {
	if s == nil || s.router == nil {
		return errors.New("api: nil server")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		addr = ":8080"
	}
	return s.router.Run(addr)
}
