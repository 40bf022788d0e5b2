package api

import (
	"context"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/stellarlinkco/mcq-eval/internal/eval"
	"github.com/stellarlinkco/mcq-eval/internal/store"
)

type fakeStore struct {
	ListByDomainFunc   func(ctx context.Context, domain string, limit int) ([]*store.QuestionRecord, error)
	AllByDomainFunc    func(ctx context.Context, domain string) ([]*store.QuestionRecord, error)
	SaveResultFunc     func(ctx context.Context, id string, observed string, latencyMs int64) error
	ResetAllFunc       func(ctx context.Context) error
	InsertQuestionFunc func(ctx context.Context, rec *store.QuestionRecord) error
	CloseFunc          func() error
}

func (s *fakeStore) ListByDomain(ctx context.Context, domain string, limit int) ([]*store.QuestionRecord, error) {
	if s.ListByDomainFunc != nil {
		return s.ListByDomainFunc(ctx, domain, limit)
	}
	return nil, nil
}

func (s *fakeStore) AllByDomain(ctx context.Context, domain string) ([]*store.QuestionRecord, error) {
	if s.AllByDomainFunc != nil {
		return s.AllByDomainFunc(ctx, domain)
	}
	return nil, nil
}

func (s *fakeStore) SaveResult(ctx context.Context, id string, observed string, latencyMs int64) error {
	if s.SaveResultFunc != nil {
		return s.SaveResultFunc(ctx, id, observed, latencyMs)
	}
	return nil
}

func (s *fakeStore) ResetAll(ctx context.Context) error {
	if s.ResetAllFunc != nil {
		return s.ResetAllFunc(ctx)
	}
	return nil
}

func (s *fakeStore) InsertQuestion(ctx context.Context, rec *store.QuestionRecord) error {
	if s.InsertQuestionFunc != nil {
		return s.InsertQuestionFunc(ctx, rec)
	}
	return nil
}

func (s *fakeStore) Close() error {
	if s.CloseFunc != nil {
		return s.CloseFunc()
	}
	return nil
}

type fakeRunner struct {
	RunAllFunc func(ctx context.Context) error
}

func (r *fakeRunner) RunAll(ctx context.Context) error {
	if r.RunAllFunc != nil {
		return r.RunAllFunc(ctx)
	}
	return nil
}

type fakeResults struct {
	ComputeResultsFunc func(ctx context.Context) (map[string]eval.AggregateResult, error)
}

func (f *fakeResults) ComputeResults(ctx context.Context) (map[string]eval.AggregateResult, error) {
	if f.ComputeResultsFunc != nil {
		return f.ComputeResultsFunc(ctx)
	}
	return map[string]eval.AggregateResult{}, nil
}

func newTestRouter(t *testing.T, s *Server) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("MCQ_EVAL_API_KEY", "")
	t.Setenv("MCQ_EVAL_DISABLE_AUTH", "true")

	r := gin.New()
	s.router = r
	if err := s.registerRoutes(); err != nil {
		t.Fatalf("registerRoutes: %v", err)
	}
	return r
}
