// Package report implements the global-callback-per-world diagnostic
// channel: a structured report carrying a domain, a severity level, an
// optional source cursor, a message and the status code that produced it,
// delivered through a zerolog.Logger.
package report

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/arlograph/rdf"
)

// Level is the severity of a Report.
type Level uint8

const (
	LevelNote Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelNote:
		return "note"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Report is the user-visible diagnostic payload described in the error
// handling design: a domain ("parser", "writer", ...), a severity, a
// source cursor when available, a formatted message, and the status code
// that produced it.
type Report struct {
	Domain  string
	Level   Level
	Cursor  rdf.Cursor
	Message string
	Status  rdf.Status
}

// Callback receives every Report raised within a World.
type Callback func(Report)

// World holds the single diagnostic callback active for a logical
// operator (a parse call, a write call, ...). The zero World is not
// usable; use New or Default.
type World struct {
	logger   zerolog.Logger
	callback Callback
}

// New returns a World that logs every Report through logger and also
// invokes cb, if non-nil, for callers that want structured access beyond
// the log line.
func New(logger zerolog.Logger, cb Callback) *World {
	return &World{logger: logger, callback: cb}
}

// Default returns a World logging to os.Stderr via a human-readable
// console writer, matching the design's "absent one, messages are written
// to the standard error stream."
func Default() *World {
	w := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()
	return &World{logger: w}
}

// Logger returns the underlying zerolog.Logger, for callers that want to
// attach additional context (With().Str(...).Logger()) before further
// reports.
func (w *World) Logger() zerolog.Logger { return w.logger }

// Emit raises r: it is logged at the level matching r.Level with
// domain/status/cursor fields, and forwarded to the installed callback, if
// any.
func (w *World) Emit(r Report) {
	var ev *zerolog.Event
	switch r.Level {
	case LevelError:
		ev = w.logger.Error()
	case LevelWarning:
		ev = w.logger.Warn()
	default:
		ev = w.logger.Info()
	}
	ev = ev.Str("domain", r.Domain).Str("status", r.Status.String())
	if !r.Cursor.IsZero() {
		ev = ev.Str("file", r.Cursor.Document).Int("line", r.Cursor.Line).Int("column", r.Cursor.Column)
	}
	ev.Msg(r.Message)
	if w.callback != nil {
		w.callback(r)
	}
}

// Errorf is a convenience wrapper that formats a message and emits it at
// LevelError with the given domain, cursor and status.
func (w *World) Errorf(domain string, cursor rdf.Cursor, status rdf.Status, format string, args ...interface{}) {
	w.Emit(Report{Domain: domain, Level: LevelError, Cursor: cursor, Status: status, Message: sprintf(format, args...)})
}

// Warnf is Errorf at LevelWarning, used for lax-mode recovery diagnostics.
func (w *World) Warnf(domain string, cursor rdf.Cursor, status rdf.Status, format string, args ...interface{}) {
	w.Emit(Report{Domain: domain, Level: LevelWarning, Cursor: cursor, Status: status, Message: sprintf(format, args...)})
}

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
