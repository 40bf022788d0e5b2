package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/stellarlinkco/mcq-eval/internal/store"
)

// Row is one question in a seed file, mirroring the usual MCQ dataset
// shape: question text, four options keyed A-D, the correct letter, and
// a domain bucket.
type Row struct {
	ID       string `json:"id,omitempty"`
	Question string `json:"question"`
	A        string `json:"A"`
	B        string `json:"B"`
	C        string `json:"C"`
	D        string `json:"D"`
	Answer   string `json:"answer"`
	Domain   string `json:"domain"`
}

// Load reads a JSONL seed file into question records. Rows with missing
// text, a bad answer letter, or no domain are rejected with an error
// naming the line.
func Load(ctx context.Context, path string) ([]*store.QuestionRecord, error) {
	if ctx == nil {
		return nil, errors.New("dataset: nil context")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("dataset: empty path")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %q: %w", path, err)
	}
	defer f.Close()

	rows, err := decodeJSONL(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]*store.QuestionRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := rowToRecord(&row)
		if err != nil {
			return nil, fmt.Errorf("dataset: line %d: %w", i+1, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func rowToRecord(row *Row) (*store.QuestionRecord, error) {
	question := strings.TrimSpace(row.Question)
	if question == "" {
		return nil, errors.New("empty question")
	}

	domain := strings.TrimSpace(row.Domain)
	if domain == "" {
		return nil, errors.New("empty domain")
	}

	answer := strings.ToUpper(strings.TrimSpace(row.Answer))
	switch answer {
	case "A", "B", "C", "D":
	default:
		return nil, fmt.Errorf("bad answer %q", row.Answer)
	}

	id := strings.TrimSpace(row.ID)
	if id == "" {
		id = uuid.NewString()
	}

	return &store.QuestionRecord{
		ID:       id,
		Question: question,
		OptionA:  strings.TrimSpace(row.A),
		OptionB:  strings.TrimSpace(row.B),
		OptionC:  strings.TrimSpace(row.C),
		OptionD:  strings.TrimSpace(row.D),
		Domain:   domain,
		Expected: answer,
	}, nil
}

func decodeJSONL(ctx context.Context, r io.Reader) ([]Row, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)

	var out []Row
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}

		var row Row
		if err := json.Unmarshal(line, &row); err != nil {
			return out, fmt.Errorf("dataset: parse jsonl: %w", err)
		}
		out = append(out, row)
	}
	if err := sc.Err(); err != nil {
		return out, err
	}
	return out, nil
}
