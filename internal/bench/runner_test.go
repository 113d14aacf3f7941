package bench

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"richards/internal/logx"
	"richards/internal/sched"
)

func TestRunnerReport(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "results.csv")
	cfg := Config{Iterations: 3, Warmup: 1, Inner: 2, Count: sched.DefaultCount, Verify: true, CSVPath: csvPath}

	var logs bytes.Buffer
	r, err := NewRunner(cfg, logx.FromWriter(&logs, "info"))
	require.NoError(t, err)

	rep, err := r.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, r.Close())

	want, _ := sched.Expected(sched.DefaultCount)
	assert.Equal(t, r.Session(), rep.Session)
	require.Len(t, rep.Records, 3)
	for i, rec := range rep.Records {
		assert.Equal(t, i, rec.Iteration)
		assert.Equal(t, 2, rec.Sum.Runs)
		assert.Equal(t, 2*want.Delivered, rec.Sum.Delivered)
	}
	assert.Equal(t, 6*want.Delivered, rep.Delivered)
	assert.Equal(t, 6*want.Held, rep.Held)
	assert.Equal(t, 3, rep.Summary.Count)
	assert.LessOrEqual(t, rep.Summary.Min, rep.Summary.Max)

	assert.Contains(t, logs.String(), `"session":"`+rep.Session+`"`)
	assert.Contains(t, logs.String(), "benchmark finished")

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, rep.Session, rows[1][1])
	assert.Equal(t, "46492", rows[1][5])
}

func TestRunnerTraceMode(t *testing.T) {
	cfg := Config{Count: 100, Trace: true, Iterations: 5, Inner: 5}
	r, err := NewRunner(cfg, logx.Nop())
	require.NoError(t, err)

	var out bytes.Buffer
	r.SetTraceOutput(&out)
	rep, err := r.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, rep.Records, 1)
	assert.Equal(t, 1, rep.Records[0].Sum.Runs)
	for _, line := range strings.Split(strings.Trim(out.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 50)
	}
}

func TestRunnerCancelled(t *testing.T) {
	r, err := NewRunner(Config{Iterations: 2, Inner: 2}, logx.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRunnerBadCSVPath(t *testing.T) {
	_, err := NewRunner(Config{CSVPath: filepath.Join(t.TempDir(), "missing", "out.csv")}, logx.Nop())
	assert.Error(t, err)
}
