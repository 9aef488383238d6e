package metrics

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// MoveRow is the columnar layout of a MoveRecord.
type MoveRow struct {
	Game            int32  `parquet:"game"`
	Step            int32  `parquet:"step"`
	Player          int32  `parquet:"player"`
	Action          string `parquet:"action,dict"`
	Algorithm       string `parquet:"algorithm,dict"`
	DurationNanos   int64  `parquet:"duration_ns"`
	Episodes        int32  `parquet:"episodes"`
	FullPlayouts    int32  `parquet:"full_playouts"`
	AbortedPlayouts int32  `parquet:"aborted_playouts"`
	Nodes           int64  `parquet:"nodes"`
	CacheHits       int64  `parquet:"cache_hits"`
	Cutoffs         int64  `parquet:"cutoffs"`
	TimedOut        bool   `parquet:"timed_out"`
}

func NewMoveRow(r MoveRecord) MoveRow {
	return MoveRow{
		Game:            int32(r.Game),
		Step:            int32(r.Step),
		Player:          int32(r.Player),
		Action:          r.Action,
		Algorithm:       r.Algorithm,
		DurationNanos:   r.Duration.Nanoseconds(),
		Episodes:        int32(r.Episodes),
		FullPlayouts:    int32(r.FullPlayouts),
		AbortedPlayouts: int32(r.AbortedPlayouts),
		Nodes:           int64(r.Nodes),
		CacheHits:       int64(r.CacheHits),
		Cutoffs:         int64(r.Cutoffs),
		TimedOut:        r.TimedOut,
	}
}

func (r MoveRow) Record() MoveRecord {
	return MoveRecord{
		Game: int(r.Game),
		MoveMetric: MoveMetric{
			Step:   int(r.Step),
			Player: int(r.Player),
			Action: r.Action,
			SearchMetric: SearchMetric{
				Algorithm:       r.Algorithm,
				Duration:        time.Duration(r.DurationNanos),
				Episodes:        int(r.Episodes),
				FullPlayouts:    int(r.FullPlayouts),
				AbortedPlayouts: int(r.AbortedPlayouts),
				Nodes:           int(r.Nodes),
				CacheHits:       int(r.CacheHits),
				Cutoffs:         int(r.Cutoffs),
				TimedOut:        r.TimedOut,
			},
		},
	}
}

// WriteMoveParquet stores records as move_records.parquet next to the CSV
// files.
func (w *Writer) WriteMoveParquet(records []MoveRecord) error {
	return WriteMoveParquet(filepath.Join(w.baseDir, "move_records.parquet"), records)
}

// WriteMoveParquet writes to a temp file and renames it into place.
func WriteMoveParquet(outPath string, records []MoveRecord) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	rows := make([]MoveRow, len(records))
	for i, r := range records {
		rows[i] = NewMoveRow(r)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)
	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "move_record_v1"),
	); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

func ReadMoveParquet(path string) ([]MoveRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[MoveRow](pf)
	defer reader.Close()

	rows := make([]MoveRow, reader.NumRows())
	read := 0
	for read < len(rows) {
		n, err := reader.Read(rows[read:])
		read += n
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read parquet: %w", err)
		}
		if err == io.EOF || n == 0 {
			break
		}
	}
	records := make([]MoveRecord, read)
	for i, row := range rows[:read] {
		records[i] = row.Record()
	}
	return records, nil
}
