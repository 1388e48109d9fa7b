// Package cli implements the licensegate command-line interface.
//
// The CLI audits a project's dependency licenses against a policy and
// reports the results. It is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Logging
//
// The --verbose (-v) flag enables debug-level logging. Loggers are
// passed through context.Context so the scan pipeline can report
// per-analyzer diagnostics without global state.
//
// # Exit Codes
//
//	0  scan completed, no error verdicts
//	1  policy violations found, or the scan could not run
//	130  interrupted
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger builds the CLI logger writing to w at the given level.
// The fixed "15:04:05.00" timestamp layout keeps scan stages aligned
// in the output.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one scan stage; done reports the elapsed duration at
// info level. Concurrent done calls race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time since the tracker was created,
// rounded to milliseconds: "Scanned 3 projects (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey keys the logger in a context without colliding with values
// set by other packages.
type ctxKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger installed by withLogger, or
// log.Default() when the context carries none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
