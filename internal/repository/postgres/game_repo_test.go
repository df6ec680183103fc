package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/iamasit07/hotseat-connect4/internal/domain"
)

type fakeRow struct {
	values []any
	err    error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	if len(dest) != len(f.values) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = f.values[i].(string)
		case *int:
			*p = f.values[i].(int)
		case *time.Time:
			*p = f.values[i].(time.Time)
		case *[]byte:
			*p = f.values[i].([]byte)
		default:
			return errors.New("unsupported destination")
		}
	}
	return nil
}

func TestEncodeDecodeBoard(t *testing.T) {
	rec := domain.GameRecord{
		BoardState: [][]int{{0, 1}, {2, 1}},
		WinningRun: []domain.Cell{{Row: 1, Column: 1}},
	}
	boardJSON, runJSON, err := encodeBoard(rec)
	if err != nil {
		t.Fatalf("encodeBoard failed: %v", err)
	}

	var out domain.GameRecord
	if err := decodeBoard(&out, boardJSON, runJSON); err != nil {
		t.Fatalf("decodeBoard failed: %v", err)
	}
	if out.BoardState[1][0] != 2 || out.WinningRun[0].Column != 1 {
		t.Fatalf("unexpected decoded record %+v", out)
	}
}

func TestEncodeBoardWithoutRun(t *testing.T) {
	_, runJSON, err := encodeBoard(domain.GameRecord{BoardState: [][]int{{0}}})
	if err != nil {
		t.Fatalf("encodeBoard failed: %v", err)
	}
	if runJSON != nil {
		t.Fatalf("draws should store a NULL winning run, got %s", runJSON)
	}
}

func TestScanRecord(t *testing.T) {
	now := time.Now()
	row := fakeRow{values: []any{
		"g1", "t1", 7, 6, "red", "yellow", 2, domain.ReasonConnectFour, 12, 30, now, now,
		[]byte(`[[0,0],[1,2]]`), []byte(`[{"row":1,"column":1}]`),
	}}

	rec, err := scanRecord(row, true)
	if err != nil {
		t.Fatalf("scanRecord failed: %v", err)
	}
	if rec.GameID != "g1" || rec.Winner != domain.Player2 || rec.TotalMoves != 12 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if len(rec.BoardState) != 2 || len(rec.WinningRun) != 1 {
		t.Fatalf("board not decoded: %+v", rec)
	}
}

func TestScanRecordPassesErrors(t *testing.T) {
	if _, err := scanRecord(fakeRow{err: errors.New("boom")}, false); err == nil {
		t.Fatalf("expected error")
	}
}
