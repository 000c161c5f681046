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
	"log/slog"

	"go.uber.org/atomic"
)

// defaultLogger holds the process-wide Logger returned by Default. It is
// built once at package initialization from environment configuration.
var defaultLogger = atomic.NewPointer(New())

// Default returns the process-wide default Logger. The package-level
// logging, hook, and capture functions all operate on it.
func Default() *Logger { return defaultLogger.Load() }

// SetDefault replaces the process-wide default Logger. A nil l is ignored.
// Hooks enabled through the previous default stay bound to it.
func SetDefault(l *Logger) {
	if l == nil {
		return
	}
	defaultLogger.Store(l)
}

// Debug emits a record at LevelDebug on the default logger.
func Debug(msg string, args ...any) {
	Default().log(context.Background(), LevelDebug, msg, args, nil)
}

// Info emits a record at LevelInfo on the default logger.
func Info(msg string, args ...any) {
	Default().log(context.Background(), LevelInfo, msg, args, nil)
}

// Warn emits a record at LevelWarning on the default logger.
func Warn(msg string, args ...any) {
	Default().log(context.Background(), LevelWarning, msg, args, nil)
}

// Error emits a record at LevelError on the default logger.
func Error(msg string, args ...any) {
	Default().log(context.Background(), LevelError, msg, args, nil)
}

// DebugContext emits a record at LevelDebug on the default logger,
// correlating any trace in ctx.
func DebugContext(ctx context.Context, msg string, args ...any) {
	Default().log(ctx, LevelDebug, msg, args, nil)
}

// InfoContext emits a record at LevelInfo on the default logger,
// correlating any trace in ctx.
func InfoContext(ctx context.Context, msg string, args ...any) {
	Default().log(ctx, LevelInfo, msg, args, nil)
}

// WarnContext emits a record at LevelWarning on the default logger,
// correlating any trace in ctx.
func WarnContext(ctx context.Context, msg string, args ...any) {
	Default().log(ctx, LevelWarning, msg, args, nil)
}

// ErrorContext emits a record at LevelError on the default logger,
// correlating any trace in ctx.
func ErrorContext(ctx context.Context, msg string, args ...any) {
	Default().log(ctx, LevelError, msg, args, nil)
}

// Log emits a record at the given level on the default logger.
func Log(ctx context.Context, level Level, msg string, args ...any) {
	Default().log(ctx, level, msg, args, nil)
}

// LogAttrs emits a record with pre-built attributes on the default logger.
func LogAttrs(ctx context.Context, level Level, msg string, attrs ...slog.Attr) {
	Default().log(ctx, level, msg, nil, attrs)
}

// SetLevel changes the default logger's minimum level.
func SetLevel(level Level) { Default().SetLevel(level) }

// GetLevel returns the default logger's minimum level.
func GetLevel() Level { return Default().GetLevel() }
