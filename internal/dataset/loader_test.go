package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeSeedFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "seed.jsonl")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeSeedFile(t, `
{"question":"What does TLS stand for?","A":"Transport Layer Security","B":"Total Link Safety","C":"Trusted Line System","D":"Terminal Level Socket","answer":"a","domain":"computer_security"}

{"id":"fixed-id","question":"Earliest stone tools?","A":"Oldowan","B":"Acheulean","C":"Mousterian","D":"Clovis","answer":"A","domain":"prehistory"}
`)

	recs, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records: got %d want 2", len(recs))
	}

	if recs[0].Expected != "A" {
		t.Fatalf("Expected: got %q, answer letter should be uppercased", recs[0].Expected)
	}
	if recs[0].ID == "" {
		t.Fatalf("ID: expected generated id")
	}
	if recs[1].ID != "fixed-id" {
		t.Fatalf("ID: got %q want fixed-id", recs[1].ID)
	}
	if recs[1].Domain != "prehistory" {
		t.Fatalf("Domain: got %q", recs[1].Domain)
	}
	if recs[0].Observed != "" || recs[0].LatencyMs.Valid {
		t.Fatalf("new record should have no result: %+v", recs[0])
	}
}

func TestLoad_BadAnswer(t *testing.T) {
	t.Parallel()

	path := writeSeedFile(t, `{"question":"q","A":"a","B":"b","C":"c","D":"d","answer":"E","domain":"sociology"}`)

	if _, err := Load(context.Background(), path); err == nil {
		t.Fatalf("Load: expected error for bad answer letter")
	}
}

func TestLoad_MissingDomain(t *testing.T) {
	t.Parallel()

	path := writeSeedFile(t, `{"question":"q","A":"a","B":"b","C":"c","D":"d","answer":"A"}`)

	if _, err := Load(context.Background(), path); err == nil {
		t.Fatalf("Load: expected error for missing domain")
	}
}

func TestLoad_MalformedLine(t *testing.T) {
	t.Parallel()

	path := writeSeedFile(t, "{not json}\n")

	if _, err := Load(context.Background(), path); err == nil {
		t.Fatalf("Load: expected parse error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.jsonl")); err == nil {
		t.Fatalf("Load: expected error for missing file")
	}
}
