package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "store.db")
	st, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func seedQuestions(t *testing.T, st *SQLiteStore, recs ...*QuestionRecord) {
	t.Helper()

	ctx := context.Background()
	for _, rec := range recs {
		if err := st.InsertQuestion(ctx, rec); err != nil {
			t.Fatalf("InsertQuestion %q: %v", rec.ID, err)
		}
	}
}

func TestSQLiteStore_InsertAndList(t *testing.T) {
	t.Parallel()

	st := newTestSQLiteStore(t)
	ctx := context.Background()

	seedQuestions(t, st,
		&QuestionRecord{ID: "q1", Question: "What is a firewall?", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", Domain: "computer_security", Expected: "A"},
		&QuestionRecord{ID: "q2", Question: "When was the Bronze Age?", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", Domain: "prehistory", Expected: "B"},
		&QuestionRecord{ID: "q3", Question: "What is anomie?", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", Domain: "sociology", Expected: "C"},
	)

	got, err := st.ListByDomain(ctx, "prehistory", 50)
	if err != nil {
		t.Fatalf("ListByDomain: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListByDomain: got %d records want 1", len(got))
	}
	if got[0].ID != "q2" || got[0].Expected != "B" {
		t.Fatalf("record: got %+v", got[0])
	}
	if got[0].Observed != "" {
		t.Fatalf("Observed: got %q want empty before any run", got[0].Observed)
	}
	if got[0].LatencyMs.Valid {
		t.Fatalf("LatencyMs: expected null before any run")
	}
}

func TestSQLiteStore_ListByDomainLimit(t *testing.T) {
	t.Parallel()

	st := newTestSQLiteStore(t)
	ctx := context.Background()

	for _, id := range []string{"q1", "q2", "q3"} {
		seedQuestions(t, st, &QuestionRecord{ID: id, Question: "q", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", Domain: "sociology", Expected: "A"})
	}

	got, err := st.ListByDomain(ctx, "sociology", 2)
	if err != nil {
		t.Fatalf("ListByDomain: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByDomain limit: got %d records want 2", len(got))
	}

	all, err := st.AllByDomain(ctx, "sociology")
	if err != nil {
		t.Fatalf("AllByDomain: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("AllByDomain: got %d records want 3", len(all))
	}
}

func TestSQLiteStore_SaveResult(t *testing.T) {
	t.Parallel()

	st := newTestSQLiteStore(t)
	ctx := context.Background()

	seedQuestions(t, st, &QuestionRecord{ID: "q1", Question: "q", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", Domain: "sociology", Expected: "A"})

	if err := st.SaveResult(ctx, "q1", "A", 321); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	got, err := st.AllByDomain(ctx, "sociology")
	if err != nil {
		t.Fatalf("AllByDomain: %v", err)
	}
	if got[0].Observed != "A" {
		t.Fatalf("Observed: got %q want %q", got[0].Observed, "A")
	}
	if !got[0].LatencyMs.Valid || got[0].LatencyMs.Int64 != 321 {
		t.Fatalf("LatencyMs: got %+v want 321", got[0].LatencyMs)
	}
}

func TestSQLiteStore_SaveResultUnknownID(t *testing.T) {
	t.Parallel()

	st := newTestSQLiteStore(t)

	if err := st.SaveResult(context.Background(), "missing", "A", 1); err == nil {
		t.Fatalf("SaveResult: expected error for unknown id")
	}
}

func TestSQLiteStore_ResetAllIdempotent(t *testing.T) {
	t.Parallel()

	st := newTestSQLiteStore(t)
	ctx := context.Background()

	seedQuestions(t, st,
		&QuestionRecord{ID: "q1", Question: "q", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", Domain: "sociology", Expected: "A", Observed: "ERROR", LatencyMs: sql.NullInt64{Int64: 15, Valid: true}},
		&QuestionRecord{ID: "q2", Question: "q", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", Domain: "prehistory", Expected: "B", Observed: "B", LatencyMs: sql.NullInt64{Int64: 80, Valid: true}},
	)

	for i := 0; i < 2; i++ {
		if err := st.ResetAll(ctx); err != nil {
			t.Fatalf("ResetAll (call %d): %v", i+1, err)
		}

		for _, domain := range []string{"sociology", "prehistory"} {
			recs, err := st.AllByDomain(ctx, domain)
			if err != nil {
				t.Fatalf("AllByDomain: %v", err)
			}
			for _, rec := range recs {
				if rec.Observed != "" {
					t.Fatalf("Observed after reset: got %q", rec.Observed)
				}
				if rec.LatencyMs.Valid {
					t.Fatalf("LatencyMs after reset: expected null, got %d", rec.LatencyMs.Int64)
				}
			}
		}
	}
}

func TestSQLiteStore_EmptyDomainErrors(t *testing.T) {
	t.Parallel()

	st := newTestSQLiteStore(t)
	ctx := context.Background()

	if _, err := st.ListByDomain(ctx, "  ", 10); err == nil {
		t.Fatalf("ListByDomain: expected error for empty domain")
	}
	if _, err := st.AllByDomain(ctx, ""); err == nil {
		t.Fatalf("AllByDomain: expected error for empty domain")
	}
}
