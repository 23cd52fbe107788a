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

package version

import (
	"errors"
	"fmt"
	"regexp"
)

// Error types for version parsing failures
var (
	ErrEmptyVersion   = errors.New("version string is empty")
	ErrInvalidVersion = errors.New("invalid version string")
	ErrZeroVersion    = errors.New("all-zero version is not comparable")
	ErrNotComparable  = errors.New("operand is not a comparable version")
)

// grammarHint describes the accepted form in validation error messages.
const grammarHint = "expected major[.minor[.patch]][-prerelease][+metadata]"

// versionPattern is the accepted grammar: 1-3 dot-separated digit groups,
// zero or more pre-release segments (digit runs or the literal identifiers
// alpha, beta, rc, sr, a, b, each optionally preceded by '-' and followed
// by '.' or '-'), and optional '+' build metadata of word groups. Digits
// are ASCII.
var versionPattern = regexp.MustCompile(`^(\d+\.){0,2}\d+(-?(\d+|alpha|beta|rc|sr|a|b)[.-]?)*(\+(\w+[.-]?)+)?$`)

// zeroVersions are grammar-valid strings rejected as non-comparable
// sentinels.
var zeroVersions = map[string]bool{
	"0.0.0": true,
	"0.0":   true,
	"0":     true,
}

// Validate checks a raw version string against the grammar and the
// sentinel list. A nil return means the string is safe to normalize.
func Validate(raw string) error {
	if raw == "" {
		return ErrEmptyVersion
	}
	if !versionPattern.MatchString(raw) {
		return fmt.Errorf("%w %q: %s", ErrInvalidVersion, raw, grammarHint)
	}
	if zeroVersions[raw] {
		return fmt.Errorf("%w: %q", ErrZeroVersion, raw)
	}
	return nil
}

// IsValid reports whether raw would parse successfully.
func IsValid(raw string) bool {
	return Validate(raw) == nil
}
