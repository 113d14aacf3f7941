package sched

import (
	"bufio"
	"io"
)

const traceLineWidth = 50

// TraceWriter prints the id of every dispatched task and every byte a device
// receives, wrapping lines at a fixed width.
type TraceWriter struct {
	w      *bufio.Writer
	layout int
}

func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{w: bufio.NewWriter(w)}
}

// Observe is an Observer.
func (tw *TraceWriter) Observe(ev Event) {
	switch ev.Kind {
	case EventDispatch:
		tw.put(byte('0' + ev.TaskID))
	case EventDeviceOutput:
		tw.put(ev.Byte)
	}
}

func (tw *TraceWriter) put(c byte) {
	tw.layout--
	if tw.layout <= 0 {
		_ = tw.w.WriteByte('\n')
		tw.layout = traceLineWidth
	}
	_ = tw.w.WriteByte(c)
}

// Flush ends the last line and flushes buffered output.
func (tw *TraceWriter) Flush() error {
	if err := tw.w.WriteByte('\n'); err != nil {
		return err
	}
	return tw.w.Flush()
}
