package eval

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/stellarlinkco/mcq-eval/internal/store"
)

// AggregateResult is a derived per-domain view, computed fresh on each
// request from whatever is currently persisted.
type AggregateResult struct {
	AccuracyPercent float64
	AvgLatencyMs    float64
}

// Aggregator computes accuracy and average latency per domain.
type Aggregator struct {
	Store   store.QuestionReader
	Domains []string
}

// ComputeResults returns one entry per configured domain. A domain with
// no records yields the zero aggregate. Safe to call mid-run; partial
// results are expected, not an error.
func (a *Aggregator) ComputeResults(ctx context.Context) (map[string]AggregateResult, error) {
	if a == nil {
		return nil, errors.New("eval: nil aggregator")
	}
	if ctx == nil {
		return nil, errors.New("eval: nil context")
	}
	if a.Store == nil {
		return nil, errors.New("eval: nil store")
	}

	domains := compactDomains(a.Domains)
	if len(domains) == 0 {
		return nil, errors.New("eval: no domains configured")
	}

	out := make(map[string]AggregateResult, len(domains))
	for _, domain := range domains {
		recs, err := a.Store.AllByDomain(ctx, domain)
		if err != nil {
			return nil, fmt.Errorf("eval: aggregate %q: %w", domain, err)
		}
		out[domain] = aggregate(recs)
	}
	return out, nil
}

func aggregate(recs []*store.QuestionRecord) AggregateResult {
	total := len(recs)
	if total == 0 {
		return AggregateResult{}
	}

	correct := 0
	var latencySum int64
	for _, rec := range recs {
		if rec == nil {
			continue
		}
		if normalizeToken(rec.Observed) == normalizeToken(rec.Expected) {
			correct++
		}
		if rec.LatencyMs.Valid {
			latencySum += rec.LatencyMs.Int64
		}
	}

	return AggregateResult{
		AccuracyPercent: round2(100 * float64(correct) / float64(total)),
		AvgLatencyMs:    round2(float64(latencySum) / float64(total)),
	}
}

func normalizeToken(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
