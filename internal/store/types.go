package store

import (
	"context"
	"database/sql"
)

// QuestionRecord is the unit of work and persistence: one multiple-choice
// question with its ground truth and the latest evaluation outcome.
type QuestionRecord struct {
	ID       string
	Question string
	OptionA  string
	OptionB  string
	OptionC  string
	OptionD  string
	Domain   string
	Expected string // ground truth, one of A-D
	Observed string // "", one of A-D, or "ERROR"

	// LatencyMs is valid iff Observed is non-empty; reset clears both.
	LatencyMs sql.NullInt64
}

// QuestionReader defines read access to question records.
type QuestionReader interface {
	// ListByDomain returns up to limit records for a domain; limit <= 0
	// means no limit. Order is whatever the store returns.
	ListByDomain(ctx context.Context, domain string, limit int) ([]*QuestionRecord, error)
	// AllByDomain returns every record for a domain.
	AllByDomain(ctx context.Context, domain string) ([]*QuestionRecord, error)
}

// ResultWriter defines evaluation-result mutation.
type ResultWriter interface {
	// SaveResult writes the observed answer and latency for one record.
	SaveResult(ctx context.Context, id string, observed string, latencyMs int64) error
	// ResetAll clears observed answers and latencies on every record.
	// Idempotent.
	ResetAll(ctx context.Context) error
}

// QuestionWriter defines record creation, used by the seeding tool.
type QuestionWriter interface {
	InsertQuestion(ctx context.Context, rec *QuestionRecord) error
}

// Store defines the full record-store surface.
type Store interface {
	QuestionReader
	ResultWriter
	QuestionWriter
	Close() error
}
