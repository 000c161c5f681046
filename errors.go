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

// LoggingError reports misuse of the logging facade itself: enabling a hook
// twice, disabling one that is not installed, or tearing down a hook point
// that something else has overridden. Environment failures such as file
// open or write errors are returned as-is and are never a LoggingError.
//
// The package-level Err variables below hold every LoggingError this
// package produces, so callers can match with errors.Is.
type LoggingError struct {
	msg string
}

// Error returns the canonical message.
func (e *LoggingError) Error() string { return e.msg }

var (
	// ErrWarningsNotEnabled is returned by DisableWarningsLogging when the
	// warnings hook is not installed.
	ErrWarningsNotEnabled = &LoggingError{msg: "Warnings logging has not been enabled"}

	// ErrWarningsAlreadyEnabled is returned by EnableWarningsLogging when
	// the warnings hook is already installed.
	ErrWarningsAlreadyEnabled = &LoggingError{msg: "Warnings logging has already been enabled"}

	// ErrWarningsOverridden is returned by DisableWarningsLogging when the
	// standard library log output is no longer the writer this logger
	// installed. The hook state is left unchanged.
	ErrWarningsOverridden = &LoggingError{msg: "Cannot disable warnings logging: log.Writer was not set by this logger, or has been overridden"}

	// ErrExceptionNotEnabled is returned by DisableExceptionLogging when the
	// exception hook is not installed.
	ErrExceptionNotEnabled = &LoggingError{msg: "Exception logging has not been enabled"}

	// ErrExceptionAlreadyEnabled is returned by EnableExceptionLogging when
	// the exception hook is already installed.
	ErrExceptionAlreadyEnabled = &LoggingError{msg: "Exception logging has already been enabled"}

	// ErrExceptionOverridden is returned by DisableExceptionLogging when the
	// installed panic handler is no longer the one this logger installed.
	// The hook state is left unchanged.
	ErrExceptionOverridden = &LoggingError{msg: "Cannot disable exception logging: panichook.Handler was not set by this logger, or has been overridden"}
)
