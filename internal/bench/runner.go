package bench

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"richards/internal/job"
	"richards/internal/logx"
	"richards/internal/sched"
	"richards/internal/tracing"
)

// NewSessionID returns the id stamped on a harness invocation. Tests may replace it.
var NewSessionID = func() string { return uuid.New().String() }

// GCStats is the collector activity observed during one iteration.
type GCStats struct {
	Cycles     uint32
	Pause      time.Duration
	AllocBytes uint64
}

// Record is one measured iteration.
type Record struct {
	Iteration int
	At        time.Time
	Elapsed   time.Duration
	Sum       job.Sum
	GC        GCStats
}

// Report is the outcome of Runner.Run.
type Report struct {
	Session   string
	Records   []Record
	Delivered int
	Held      int
	Summary   Summary
}

// Runner times repeated passes over the scheduler.
type Runner struct {
	cfg      Config
	log      logx.Logger
	session  string
	traceOut io.Writer
	csv      *CSVLog
}

// NewRunner normalizes cfg and opens the CSV log if configured.
func NewRunner(cfg Config, log logx.Logger) (*Runner, error) {
	cfg = cfg.Normalize()
	session := NewSessionID()
	r := &Runner{
		cfg:      cfg,
		log:      log.With(logx.String("session", session)),
		session:  session,
		traceOut: os.Stdout,
	}
	if cfg.CSVPath != "" {
		c, err := OpenCSV(cfg.CSVPath)
		if err != nil {
			return nil, fmt.Errorf("open csv %s: %w", cfg.CSVPath, err)
		}
		r.csv = c
	}
	return r, nil
}

// SetTraceOutput redirects trace mode output. Must be called before Run.
func (r *Runner) SetTraceOutput(w io.Writer) { r.traceOut = w }

// Session returns the id stamped on logs and CSV rows.
func (r *Runner) Session() string { return r.session }

// Close releases the CSV log.
func (r *Runner) Close() error { return r.csv.Close() }

// Run executes the warmup iterations, then the measured ones.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	rep := Report{Session: r.session}
	stats := NewStats()

	var trace *sched.TraceWriter
	spec := job.Spec{
		Inner:    r.cfg.Inner,
		Count:    r.cfg.Count,
		Parallel: r.cfg.Parallel,
		Verify:   r.cfg.Verify,
		Options:  []sched.Option{sched.WithLogger(r.log)},
	}
	if r.cfg.Trace {
		trace = sched.NewTraceWriter(r.traceOut)
		spec.Options = append(spec.Options, sched.WithObserver(trace.Observe))
	}

	r.log.Info("benchmark starting",
		logx.Int("iterations", r.cfg.Iterations),
		logx.Int("warmup", r.cfg.Warmup),
		logx.Int("inner", r.cfg.Inner),
		logx.Int("count", r.cfg.Count),
		logx.Int("parallel", r.cfg.Parallel),
	)

	for i := 0; i < r.cfg.Warmup; i++ {
		if _, err := job.Pass(ctx, spec); err != nil {
			return rep, fmt.Errorf("warmup %d: %w", i, err)
		}
	}

	for i := 0; i < r.cfg.Iterations; i++ {
		rec, err := r.iteration(ctx, i, spec)
		if err != nil {
			return rep, err
		}
		rep.Records = append(rep.Records, rec)
		rep.Delivered += rec.Sum.Delivered
		rep.Held += rec.Sum.Held
		stats.Add(rec.Elapsed)
	}

	if trace != nil {
		if err := trace.Flush(); err != nil {
			return rep, fmt.Errorf("flush trace: %w", err)
		}
	}

	rep.Summary = stats.Summary()
	r.log.Info("benchmark finished",
		logx.String("delivered", humanize.Comma(int64(rep.Delivered))),
		logx.String("held", humanize.Comma(int64(rep.Held))),
		logx.Duration("min", rep.Summary.Min),
		logx.Duration("median", rep.Summary.Median),
		logx.Duration("p90", rep.Summary.P90),
		logx.Duration("max", rep.Summary.Max),
	)
	return rep, nil
}

func (r *Runner) iteration(ctx context.Context, i int, spec job.Spec) (rec Record, err error) {
	ctx, span := tracing.StartSpan(ctx, "richards.iteration")
	defer func() { tracing.EndSpan(span, err) }()
	span.SetInt("iteration", i)
	span.SetString("session", r.session)

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)

	rec = Record{Iteration: i, At: time.Now()}
	start := time.Now()
	sum, err := job.Pass(ctx, spec)
	rec.Elapsed = time.Since(start)
	if err != nil {
		return rec, fmt.Errorf("iteration %d: %w", i, err)
	}
	rec.Sum = sum

	runtime.ReadMemStats(&after)
	rec.GC = GCStats{
		Cycles:     after.NumGC - before.NumGC,
		Pause:      time.Duration(after.PauseTotalNs - before.PauseTotalNs),
		AllocBytes: after.TotalAlloc - before.TotalAlloc,
	}
	span.SetInt("delivered", sum.Delivered)

	r.log.Info("Richards",
		logx.Int("iterations", 1),
		logx.Int64("runtime_us", rec.Elapsed.Microseconds()),
		logx.Int("delivered", sum.Delivered),
		logx.Int("gc_cycles", int(rec.GC.Cycles)),
		logx.String("alloc", humanize.Bytes(rec.GC.AllocBytes)),
	)

	if r.csv != nil {
		if err := r.csv.Write(r.session, rec); err != nil {
			return rec, fmt.Errorf("write csv: %w", err)
		}
	}
	return rec, nil
}
