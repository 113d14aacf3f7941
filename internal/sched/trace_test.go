package sched

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceWriterLayout(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTraceWriter(&buf)

	s, err := Build(CanonicalSpecs(50), WithObserver(tw.Observe))
	require.NoError(t, err)
	s.Run()
	require.NoError(t, tw.Flush())

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\n"))
	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines[:len(lines)-1] {
		assert.Len(t, line, traceLineWidth)
	}
	assert.LessOrEqual(t, len(lines[len(lines)-1]), traceLineWidth)

	// the first dispatch is handler B picking up its first seed packet
	assert.Equal(t, byte('4'), lines[0][0])
	// devices print the letters the worker wrote
	assert.Contains(t, out, "A")
}
