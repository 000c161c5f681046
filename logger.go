// Copyright 2026 The slogscope Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package slogscope

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/trickstertwo/xclock"

	"github.com/quillback/slogscope/internal/origin"
	"github.com/quillback/slogscope/internal/swapio"
)

// Logger is a leveled logging facade over log/slog. Every record it emits
// carries an origin identifying the emitting call site, passes one dynamic
// minimum-level gate, and is delivered both to the console handler and to
// any capture sinks registered via LogToList or LogToFile.
//
// A Logger also manages the two process hooks: the standard library log
// output (EnableWarningsLogging) and the panichook panic handler
// (EnableExceptionLogging).
//
// Children created with With or WithOrigin share the parent's level, sinks,
// hooks, and console output; they differ only in pinned origin and attached
// attributes. Logger is safe for concurrent use.
type Logger struct {
	core   *core
	origin string // pinned origin; empty means resolve per call
	attrs  []slog.Attr
}

// core is the state shared by a Logger and every child derived from it.
type core struct {
	handler    slog.Handler
	levelVar   *slog.LevelVar
	out        *swapio.Writer
	sinks      sinkRegistry
	warnings   hookManager
	exceptions hookManager
	ownedFile  *os.File
	closeOnce  sync.Once
}

// New creates a Logger. Configuration resolves in three tiers: defaults
// first, then environment variables (LOG_LEVEL, LOG_SOURCE_LOCATION,
// SLOGSCOPE_LOG_FORMAT, SLOGSCOPE_LOG_TARGET), then the given options.
// Invalid environment values produce a warning on standard error and fall
// back rather than failing construction.
//
// Console output goes to standard error unless redirected by option or
// environment. When New opens a log file itself (WithLogFile or a
// "file:" target), the Logger owns the handle and Close releases it.
func New(opts ...Option) *Logger {
	cfg := loadConfig()

	state := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(state)
		}
	}
	if state.level != nil {
		cfg.level = *state.level
	}
	if state.addSource != nil {
		cfg.addSource = *state.addSource
	}
	if state.format != nil {
		cfg.format = *state.format
	}
	if state.writer != nil {
		cfg.writer = state.writer
		cfg.filePath = ""
	}
	if state.filePath != nil {
		cfg.filePath = *state.filePath
	}
	if state.origin != nil {
		cfg.origin = *state.origin
	}

	w := cfg.writer
	var ownedFile *os.File
	if cfg.filePath != "" {
		f, err := os.OpenFile(cfg.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[slogscope] WARNING: Failed to open log file %q: %v; falling back to stderr\n", cfg.filePath, err)
		} else {
			w = f
			ownedFile = f
		}
	}
	if w == nil {
		w = os.Stderr
	}

	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.Level(cfg.level))

	out := swapio.New(w)
	hopts := &slog.HandlerOptions{Level: levelVar, AddSource: cfg.addSource}
	var handler slog.Handler
	if cfg.format == FormatJSON {
		handler = slog.NewJSONHandler(out, hopts)
	} else {
		handler = slog.NewTextHandler(out, hopts)
	}

	c := &core{
		handler:   handler,
		levelVar:  levelVar,
		out:       out,
		ownedFile: ownedFile,
	}
	c.warnings = hookManager{
		core:              c,
		point:             &logWriterPoint{},
		errNotEnabled:     ErrWarningsNotEnabled,
		errAlreadyEnabled: ErrWarningsAlreadyEnabled,
		errOverridden:     ErrWarningsOverridden,
	}
	c.exceptions = hookManager{
		core:              c,
		point:             &panicHandlerPoint{},
		errNotEnabled:     ErrExceptionNotEnabled,
		errAlreadyEnabled: ErrExceptionAlreadyEnabled,
		errOverridden:     ErrExceptionOverridden,
	}

	return &Logger{core: c, origin: cfg.origin}
}

// Enabled reports whether records at level would currently be emitted.
func (l *Logger) Enabled(level Level) bool {
	return l.core.enabled(level)
}

// SetLevel dynamically changes the minimum logging level. Records below it
// are discarded before origin resolution or formatting.
func (l *Logger) SetLevel(level Level) { l.core.levelVar.Set(slog.Level(level)) }

// GetLevel returns the current minimum logging level.
func (l *Logger) GetLevel() Level { return Level(l.core.levelVar.Level()) }

// SetOutput redirects console output to w. A nil w discards console
// output. Capture sinks are unaffected.
func (l *Logger) SetOutput(w io.Writer) { l.core.out.Set(w) }

// Close releases resources the Logger owns. When New opened a log file,
// console output is parked on io.Discard and the file handle closed.
// Close is safe to call multiple times; later calls return nil.
func (l *Logger) Close() error {
	var firstErr error
	c := l.core
	c.closeOnce.Do(func() {
		if c.ownedFile != nil {
			c.out.Set(io.Discard)
			firstErr = c.ownedFile.Close()
			c.ownedFile = nil
		}
	})
	return firstErr
}

// With returns a child Logger that attaches the given key/value pairs,
// converted as by slog, to every record it emits. The child shares the
// parent's level, sinks, hooks, and console output.
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}
	attrs := make([]slog.Attr, 0, len(l.attrs)+len(args)/2+1)
	attrs = append(attrs, l.attrs...)
	attrs = appendArgAttrs(attrs, args)
	return &Logger{core: l.core, origin: l.origin, attrs: attrs}
}

// WithOrigin returns a child Logger whose records carry the given origin,
// skipping per-call stack resolution. An empty origin restores resolution.
func (l *Logger) WithOrigin(origin string) *Logger {
	return &Logger{core: l.core, origin: origin, attrs: l.attrs}
}

// Log emits a record at the given level with optional key/value pairs.
func (l *Logger) Log(ctx context.Context, level Level, msg string, args ...any) {
	l.log(ctx, level, msg, args, nil)
}

// LogAttrs emits a record at the given level with pre-built attributes.
func (l *Logger) LogAttrs(ctx context.Context, level Level, msg string, attrs ...slog.Attr) {
	l.log(ctx, level, msg, nil, attrs)
}

// Debug emits a record at LevelDebug.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(context.Background(), LevelDebug, msg, args, nil)
}

// Info emits a record at LevelInfo.
func (l *Logger) Info(msg string, args ...any) {
	l.log(context.Background(), LevelInfo, msg, args, nil)
}

// Warn emits a record at LevelWarning.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(context.Background(), LevelWarning, msg, args, nil)
}

// Error emits a record at LevelError.
func (l *Logger) Error(msg string, args ...any) {
	l.log(context.Background(), LevelError, msg, args, nil)
}

// DebugContext emits a record at LevelDebug, correlating any trace in ctx.
func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, LevelDebug, msg, args, nil)
}

// InfoContext emits a record at LevelInfo, correlating any trace in ctx.
func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, LevelInfo, msg, args, nil)
}

// WarnContext emits a record at LevelWarning, correlating any trace in ctx.
func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, LevelWarning, msg, args, nil)
}

// ErrorContext emits a record at LevelError, correlating any trace in ctx.
func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, LevelError, msg, args, nil)
}

// log is the shared emission path for the public logging methods. Records
// below the minimum level return before any origin or attribute work.
func (l *Logger) log(ctx context.Context, level Level, msg string, args []any, attrs []slog.Attr) {
	if !l.core.enabled(level) {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	org := l.origin
	var pc uintptr
	if org == "" {
		var frame runtime.Frame
		org, frame = origin.Resolve()
		pc = frame.PC
	}

	l.core.emit(ctx, level, msg, org, pc, l.mergeAttrs(attrs, args))
}

// mergeAttrs combines the Logger's attached attributes with per-call ones.
// Returns nil when there is nothing to attach.
func (l *Logger) mergeAttrs(attrs []slog.Attr, args []any) []slog.Attr {
	if len(l.attrs) == 0 && len(attrs) == 0 && len(args) == 0 {
		return nil
	}
	all := make([]slog.Attr, 0, len(l.attrs)+len(attrs)+len(args)/2+1)
	all = append(all, l.attrs...)
	all = append(all, attrs...)
	return appendArgAttrs(all, args)
}

// appendArgAttrs converts slog-style key/value args to attributes,
// including the standard !BADKEY handling, and appends them to dst.
func appendArgAttrs(dst []slog.Attr, args []any) []slog.Attr {
	if len(args) == 0 {
		return dst
	}
	var r slog.Record
	r.Add(args...)
	r.Attrs(func(a slog.Attr) bool {
		dst = append(dst, a)
		return true
	})
	return dst
}

func (c *core) enabled(level Level) bool {
	return slog.Level(level) >= c.levelVar.Level()
}

// emit builds the Record, renders it to the console handler, and fans it
// out to active capture sinks. Origin and source location arrive already
// resolved; hook captures use this entry point directly with origins
// derived from their own stacks.
func (c *core) emit(ctx context.Context, level Level, msg string, org string, pc uintptr, attrs []slog.Attr) {
	now := xclock.Now()

	rec := Record{
		Time:    now,
		Level:   level,
		Message: msg,
		Origin:  org,
		Attrs:   attrs,
	}
	if tid, sid, sampled, ok := traceIdentity(ctx); ok {
		rec.TraceID, rec.SpanID, rec.TraceSampled = tid, sid, sampled
	}

	sr := slog.NewRecord(now, slog.Level(level), msg, pc)
	if org != "" {
		sr.AddAttrs(slog.String("origin", org))
	}
	if rec.TraceID != "" {
		sr.AddAttrs(
			slog.String(TraceIDKey, rec.TraceID),
			slog.String(SpanIDKey, rec.SpanID),
			slog.Bool(TraceSampledKey, rec.TraceSampled),
		)
	}
	sr.AddAttrs(attrs...)
	if c.handler.Enabled(ctx, slog.Level(level)) {
		_ = c.handler.Handle(ctx, sr)
	}

	c.sinks.dispatch(rec)
}
