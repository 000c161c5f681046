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
	"log/slog"
	"strings"
)

// Level represents the severity of a log record. It keeps the underlying
// integer representation of slog.Level, so the two convert freely and
// ordering comparisons carry over.
type Level slog.Level

// The four named levels, mapped onto slog.Level integer values.
const (
	// LevelDebug marks diagnostic detail, hidden by default.
	LevelDebug Level = Level(slog.LevelDebug) // -4

	// LevelInfo marks routine operation and is the default minimum.
	LevelInfo Level = Level(slog.LevelInfo) // 0

	// LevelWarning marks conditions worth attention that did not stop the
	// operation.
	LevelWarning Level = Level(slog.LevelWarn) // 4

	// LevelError marks failures.
	LevelError Level = Level(slog.LevelError) // 8
)

// String returns the canonical name of the Level: "DEBUG", "INFO",
// "WARNING", or "ERROR". These names are what record capture and the file
// sink line format emit. For values between defined constants it returns
// the nearest lower name plus the offset (e.g. "INFO+2").
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	}

	var base Level
	var name string
	switch {
	case l < LevelDebug:
		// Below DEBUG there is no named floor worth anchoring to.
		return slog.Level(l).String()
	case l < LevelInfo:
		base, name = LevelDebug, "DEBUG"
	case l < LevelWarning:
		base, name = LevelInfo, "INFO"
	case l < LevelError:
		base, name = LevelWarning, "WARNING"
	default:
		base, name = LevelError, "ERROR"
	}
	return fmt.Sprintf("%s+%d", name, int(l-base))
}

// Level returns the underlying slog.Level value, satisfying the
// slog.Leveler interface so a Level can be used directly in
// slog.HandlerOptions and the standard slog.Logger methods.
func (l Level) Level() slog.Level {
	return slog.Level(l)
}

// ParseLevel converts a level name to a Level. Matching is
// case-insensitive and accepts the canonical names DEBUG, INFO, WARNING,
// and ERROR plus the common WARN alias.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}
