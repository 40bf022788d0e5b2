package eval

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/stellarlinkco/mcq-eval/internal/oracle"
	"github.com/stellarlinkco/mcq-eval/internal/store"
)

// RecordStore is the store surface the runner needs.
type RecordStore interface {
	store.QuestionReader
	store.ResultWriter
}

// Notifier pushes progress events to any listening observers. The runner
// never touches the listener set directly.
type Notifier interface {
	Broadcast(v any)
}

// ProgressEvent is emitted once per processed record.
type ProgressEvent struct {
	Type     string `json:"type"`
	Category string `json:"category"`
	Index    int    `json:"index"` // 1-based
	Total    int    `json:"total"`
	TimeMs   int64  `json:"time"`
}

// Runner drives the oracle over stored questions, one domain at a time.
// Domains run concurrently with each other; records within a domain are
// processed strictly sequentially so progress indices and latency
// measurements stay meaningful.
type Runner struct {
	Store      RecordStore
	Oracle     *oracle.Client
	Notifier   Notifier
	Domains    []string
	SampleSize int
}

// RunAll evaluates every configured domain concurrently and waits for all
// of them. One domain's fetch failure does not cancel the others; the
// first failure is returned after the join.
func (r *Runner) RunAll(ctx context.Context) error {
	if r == nil {
		return errors.New("eval: nil runner")
	}
	if ctx == nil {
		return errors.New("eval: nil context")
	}

	domains := compactDomains(r.Domains)
	if len(domains) == 0 {
		return errors.New("eval: no domains configured")
	}

	runID := uuid.NewString()
	log.Printf("eval: run %s: starting %d domains", runID, len(domains))

	// Deliberately not errgroup.WithContext: a failed domain must not
	// cancel its siblings.
	g := new(errgroup.Group)
	for _, domain := range domains {
		domain := domain
		g.Go(func() error {
			return r.runDomain(ctx, runID, domain)
		})
	}

	err := g.Wait()
	if err != nil {
		log.Printf("eval: run %s: finished with error: %v", runID, err)
		return err
	}
	log.Printf("eval: run %s: finished", runID)
	return nil
}

// RunDomain evaluates a single domain.
func (r *Runner) RunDomain(ctx context.Context, domain string) error {
	if r == nil {
		return errors.New("eval: nil runner")
	}
	if ctx == nil {
		return errors.New("eval: nil context")
	}
	return r.runDomain(ctx, uuid.NewString(), domain)
}

func (r *Runner) runDomain(ctx context.Context, runID, domain string) error {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return errors.New("eval: empty domain")
	}
	if r.Store == nil {
		return errors.New("eval: nil store")
	}
	if r.Oracle == nil {
		return errors.New("eval: nil oracle client")
	}

	sampleSize := r.SampleSize
	if sampleSize <= 0 {
		sampleSize = 50
	}

	recs, err := r.Store.ListByDomain(ctx, domain, sampleSize)
	if err != nil {
		return fmt.Errorf("eval: fetch %q: %w", domain, err)
	}

	total := len(recs)
	for i, rec := range recs {
		start := time.Now()
		answer := r.Oracle.Ask(ctx, rec)
		latency := time.Since(start).Milliseconds()

		// A failed save is logged and skipped; the run continues and
		// the progress event is still emitted.
		if err := r.Store.SaveResult(ctx, rec.ID, answer.String(), latency); err != nil {
			log.Printf("eval: run %s: save result %s/%s: %v", runID, domain, rec.ID, err)
		}

		if r.Notifier != nil {
			r.Notifier.Broadcast(ProgressEvent{
				Type:     "progress",
				Category: domain,
				Index:    i + 1,
				Total:    total,
				TimeMs:   latency,
			})
		}
	}

	return nil
}

func compactDomains(in []string) []string {
	out := make([]string, 0, len(in))
	for _, d := range in {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		out = append(out, d)
	}
	return out
}
