package eval

import (
	"context"
	"sync"

	"github.com/stellarlinkco/mcq-eval/internal/store"
)

type fakeRecordStore struct {
	ListByDomainFunc func(ctx context.Context, domain string, limit int) ([]*store.QuestionRecord, error)
	AllByDomainFunc  func(ctx context.Context, domain string) ([]*store.QuestionRecord, error)
	SaveResultFunc   func(ctx context.Context, id string, observed string, latencyMs int64) error
	ResetAllFunc     func(ctx context.Context) error
}

func (s *fakeRecordStore) ListByDomain(ctx context.Context, domain string, limit int) ([]*store.QuestionRecord, error) {
	if s.ListByDomainFunc != nil {
		return s.ListByDomainFunc(ctx, domain, limit)
	}
	return nil, nil
}

func (s *fakeRecordStore) AllByDomain(ctx context.Context, domain string) ([]*store.QuestionRecord, error) {
	if s.AllByDomainFunc != nil {
		return s.AllByDomainFunc(ctx, domain)
	}
	return nil, nil
}

func (s *fakeRecordStore) SaveResult(ctx context.Context, id string, observed string, latencyMs int64) error {
	if s.SaveResultFunc != nil {
		return s.SaveResultFunc(ctx, id, observed, latencyMs)
	}
	return nil
}

func (s *fakeRecordStore) ResetAll(ctx context.Context) error {
	if s.ResetAllFunc != nil {
		return s.ResetAllFunc(ctx)
	}
	return nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []ProgressEvent
}

func (n *fakeNotifier) Broadcast(v any) {
	ev, ok := v.(ProgressEvent)
	if !ok {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *fakeNotifier) Events() []ProgressEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]ProgressEvent, len(n.events))
	copy(out, n.events)
	return out
}

func (n *fakeNotifier) ByCategory(category string) []ProgressEvent {
	var out []ProgressEvent
	for _, ev := range n.Events() {
		if ev.Category == category {
			out = append(out, ev)
		}
	}
	return out
}

func mcq(id, domain, expected string) *store.QuestionRecord {
	return &store.QuestionRecord{
		ID:       id,
		Question: "question " + id,
		OptionA:  "option a",
		OptionB:  "option b",
		OptionC:  "option c",
		OptionD:  "option d",
		Domain:   domain,
		Expected: expected,
	}
}
