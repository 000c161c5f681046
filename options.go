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
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LogFormat selects how console output is rendered.
type LogFormat int

const (
	// FormatText renders console output with slog's text handler (default).
	FormatText LogFormat = iota
	// FormatJSON renders console output as structured JSON.
	FormatJSON
)

// Environment variable names consulted by New. Programmatic options take
// precedence over all of them.
const (
	// envLogLevel sets the minimum level, e.g. "debug" or "WARNING".
	envLogLevel = "LOG_LEVEL"
	// envLogSourceLocation enables source file/line in console output.
	envLogSourceLocation = "LOG_SOURCE_LOCATION"
	// envLogFormat selects "text" or "json" console rendering.
	envLogFormat = "SLOGSCOPE_LOG_FORMAT"
	// envLogTarget selects "stderr", "stdout", "discard", or "file:/path".
	envLogTarget = "SLOGSCOPE_LOG_TARGET"
)

// Option configures a Logger during initialization via New. Options are
// applied in order, so later options override earlier ones and any settings
// derived from environment variables.
type Option func(*options)

// options holds settings collected from Option values. Fields are pointers
// so an explicitly set zero value is distinguishable from an unset option,
// which falls back to environment variables and defaults.
type options struct {
	level     *Level
	addSource *bool
	format    *LogFormat
	writer    io.Writer
	filePath  *string
	origin    *string
}

// WithLevel returns an Option that sets the minimum logging level,
// overriding the LOG_LEVEL environment variable. The default is LevelInfo.
func WithLevel(level Level) Option {
	return func(o *options) {
		lvl := level
		o.level = &lvl
	}
}

// WithSourceLocationEnabled returns an Option that enables or disables
// source code location (file and line) in console output, overriding the
// LOG_SOURCE_LOCATION environment variable. Defaults to false.
func WithSourceLocationEnabled(enabled bool) Option {
	return func(o *options) {
		src := enabled
		o.addSource = &src
	}
}

// WithFormat returns an Option that selects the console output format,
// overriding the SLOGSCOPE_LOG_FORMAT environment variable. Defaults to
// FormatText.
func WithFormat(format LogFormat) Option {
	return func(o *options) {
		f := format
		o.format = &f
	}
}

// WithWriter returns an Option that directs console output to w instead of
// standard error. The writer's lifecycle stays with the caller; Close does
// not close it. Overrides the SLOGSCOPE_LOG_TARGET environment variable.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// WithLogFile returns an Option that directs console output to the file at
// path, which New opens in append mode and the Logger owns until Close.
// Overrides the SLOGSCOPE_LOG_TARGET environment variable.
func WithLogFile(path string) Option {
	return func(o *options) {
		p := path
		o.filePath = &p
	}
}

// WithOrigin returns an Option that pins the origin of every record emitted
// by the Logger, skipping per-call stack resolution. Children created with
// Logger.WithOrigin can override it.
func WithOrigin(origin string) Option {
	return func(o *options) {
		org := origin
		o.origin = &org
	}
}

// config is the fully resolved configuration New builds a Logger from.
type config struct {
	level     Level
	addSource bool
	format    LogFormat
	writer    io.Writer // nil means os.Stderr
	filePath  string    // non-empty means New opens and owns this file
	origin    string
}

// loadConfig resolves defaults, then environment variables. Programmatic
// options are layered on top by New.
func loadConfig() config {
	cfg := config{level: LevelInfo}

	cfg.level = parseLevelEnv(os.Getenv(envLogLevel), cfg.level)
	cfg.addSource = parseBoolEnv(os.Getenv(envLogSourceLocation), cfg.addSource)
	cfg.format = parseFormatEnv(os.Getenv(envLogFormat), cfg.format)

	switch target := strings.TrimSpace(os.Getenv(envLogTarget)); {
	case target == "" || strings.EqualFold(target, "stderr"):
		// Default writer, resolved in New.
	case strings.EqualFold(target, "stdout"):
		cfg.writer = os.Stdout
	case strings.EqualFold(target, "discard"):
		cfg.writer = io.Discard
	case strings.HasPrefix(target, "file:"):
		cfg.filePath = strings.TrimPrefix(target, "file:")
	default:
		fmt.Fprintf(os.Stderr, "[slogscope config] WARNING: Invalid log target %q in env var, defaulting to stderr\n", target)
	}

	return cfg
}

// parseLevelEnv converts a level string from the environment into a Level.
// It accepts the canonical names understood by ParseLevel plus raw numeric
// values. Falls back to the provided default when the string is empty or
// invalid.
func parseLevelEnv(levelStr string, defaultLvl Level) Level {
	trimmed := strings.TrimSpace(levelStr)
	if trimmed == "" {
		return defaultLvl
	}
	if lvl, err := ParseLevel(trimmed); err == nil {
		return lvl
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		return Level(n)
	}
	fmt.Fprintf(os.Stderr, "[slogscope config] WARNING: Invalid log level value %q in env var, defaulting to %v\n", levelStr, defaultLvl)
	return defaultLvl
}

// parseBoolEnv converts a boolean string from the environment into a bool.
// It understands true/false, yes/no, 1/0, and on/off. Falls back to the
// provided default when the string is empty or unrecognized.
func parseBoolEnv(boolStr string, defaultVal bool) bool {
	trimmed := strings.ToLower(strings.TrimSpace(boolStr))
	if trimmed == "" {
		return defaultVal
	}
	switch trimmed {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		fmt.Fprintf(os.Stderr, "[slogscope config] WARNING: Invalid boolean value %q in env var, defaulting to %v\n", boolStr, defaultVal)
		return defaultVal
	}
}

// parseFormatEnv converts a format string from the environment into a
// LogFormat. Falls back to the provided default when the string is empty or
// unrecognized.
func parseFormatEnv(formatStr string, defaultVal LogFormat) LogFormat {
	trimmed := strings.ToLower(strings.TrimSpace(formatStr))
	switch trimmed {
	case "":
		return defaultVal
	case "text":
		return FormatText
	case "json":
		return FormatJSON
	default:
		fmt.Fprintf(os.Stderr, "[slogscope config] WARNING: Invalid log format %q in env var, defaulting to text\n", formatStr)
		return defaultVal
	}
}
