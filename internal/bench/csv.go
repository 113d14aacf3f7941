package bench

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVLog writes one row per measured iteration.
type CSVLog struct {
	file   *os.File
	writer *csv.Writer
}

var csvHeader = []string{
	"timestamp", "session", "iteration", "runtime_us", "runs",
	"delivered", "held", "steps", "gc_cycles", "gc_pause_us", "alloc_bytes",
}

// OpenCSV creates the file at path and writes the header.
func OpenCSV(path string) (*CSVLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		return nil, err
	}
	w.Flush()
	return &CSVLog{file: f, writer: w}, nil
}

// Write appends rec and flushes so a crashed run still leaves its rows.
func (l *CSVLog) Write(session string, rec Record) error {
	row := []string{
		rec.At.Format(time.RFC3339Nano),
		session,
		strconv.Itoa(rec.Iteration),
		strconv.FormatInt(rec.Elapsed.Microseconds(), 10),
		strconv.Itoa(rec.Sum.Runs),
		strconv.Itoa(rec.Sum.Delivered),
		strconv.Itoa(rec.Sum.Held),
		strconv.Itoa(rec.Sum.Steps),
		strconv.FormatUint(uint64(rec.GC.Cycles), 10),
		strconv.FormatInt(rec.GC.Pause.Microseconds(), 10),
		strconv.FormatUint(rec.GC.AllocBytes, 10),
	}
	if err := l.writer.Write(row); err != nil {
		return err
	}
	l.writer.Flush()
	return l.writer.Error()
}

func (l *CSVLog) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.writer.Flush()
	return l.file.Close()
}
