// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package logging

import (
	"log"
	"log/slog"
	"os"
	"strings"
)

const (
	// LogLevelEnvVar is the environment variable controlling verbosity.
	LogLevelEnvVar = "LOG_LEVEL"

	moduleKey  = "module"
	versionKey = "version"
)

// ParseLogLevel converts a level name to a slog.Level. Matching is
// case-insensitive and tolerates surrounding whitespace. Unknown or empty
// names return slog.LevelInfo.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogLevelFromEnv returns the level named by LOG_LEVEL, or INFO when unset.
func LogLevelFromEnv() slog.Level {
	return ParseLogLevel(os.Getenv(LogLevelEnvVar))
}

// NewStructuredLogger creates a JSON logger writing to stderr with module
// and version attributes attached to every record. Source location is
// recorded only when the configured level is debug.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	lvl := ParseLogLevel(level)

	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}

	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler).With(
		slog.String(moduleKey, module),
		slog.String(versionKey, version),
	)
}

// SetDefaultStructuredLogger installs a structured logger as the slog
// default, with the level taken from the LOG_LEVEL environment variable.
// Call this early in main() before any logging occurs.
func SetDefaultStructuredLogger(module, version string) {
	SetDefaultStructuredLoggerWithLevel(module, version, os.Getenv(LogLevelEnvVar))
}

// SetDefaultStructuredLoggerWithLevel installs a structured logger as the
// slog default at an explicit level, ignoring the environment.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	slog.SetDefault(NewStructuredLogger(module, version, level))
}

// NewLogLogger bridges the standard library log package to the structured
// handler, for dependencies that only accept a *log.Logger.
func NewLogLogger(level slog.Level, addSource bool) *log.Logger {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
	}
	return slog.NewLogLogger(slog.NewJSONHandler(os.Stderr, opts), level)
}
