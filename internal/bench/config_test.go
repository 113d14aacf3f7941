package bench

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.yml")} {
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yml")
	data := []byte(`
iterations: 5
inner: 7
parallel: 0
verify: false
csv_path: out.csv
log:
  level: debug
  file: bench.log
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Iterations)
	assert.Equal(t, 7, cfg.Inner)
	assert.Equal(t, 10000, cfg.Count)
	assert.Equal(t, 1, cfg.Parallel)
	assert.False(t, cfg.Verify)
	assert.Equal(t, "out.csv", cfg.CSVPath)

	lc := cfg.Log.Logx()
	assert.Equal(t, "debug", lc.Level)
	assert.True(t, lc.File.Enabled)
	assert.Equal(t, "bench.log", lc.File.Path)
}

func TestLoadMalformed(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("iterations: [1, 2"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   Config
		want Config
	}{
		{
			name: "clamps",
			in:   Config{Iterations: -1, Warmup: -2, Inner: 0, Count: -5, Parallel: -1},
			want: Config{Iterations: 100, Warmup: 0, Inner: 100, Count: 10000, Parallel: 1},
		},
		{
			name: "trace forces a single run",
			in:   Config{Iterations: 9, Warmup: 3, Inner: 50, Count: 200, Parallel: 8, Trace: true},
			want: Config{Iterations: 1, Warmup: 0, Inner: 1, Count: 200, Parallel: 1, Trace: true},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}
