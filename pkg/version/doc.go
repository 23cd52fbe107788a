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

// Package version implements parsing, validation, and ordering of
// SemVer-like version strings.
//
// # Overview
//
// A version string is 1-3 dot-separated numeric groups, optionally
// followed by pre-release identifiers and build metadata:
//
//	major[.minor[.patch]][-prerelease][+metadata]
//
// Accepted pre-release identifiers are digit runs and the literal words
// a, b, alpha, beta, rc, and sr, separated by '.' or '-'. Build metadata
// ('+' onward) is accepted by the grammar but carries no ordering weight.
// The all-zero strings "0.0.0", "0.0", and "0" are rejected outright:
// they are reserved as non-comparable sentinels.
//
// Parsing eagerly normalizes the input into a token sequence: alpha and
// beta collapse to a and b, a letter suffix glued to digits splits into
// its own token ("6.42b" yields 6, 42, b), missing minor/patch fill with
// zero, and each token becomes either an arbitrary-precision integer or
// a lowercase string. A Version is immutable after construction and safe
// for concurrent use.
//
// # Usage
//
//	v1, err := version.Parse("1.2.0")
//	if err != nil {
//	    return err
//	}
//	v2 := version.MustParse("1.2.0-rc.1")
//
//	v1.IsNewer(v2)     // true: pre-release sorts below its release
//	v1.Compare(v2)     // 1
//	v1.Equals(v1)      // true
//
// Sorting a set of raw strings:
//
//	sorted, err := version.SortStrings([]string{"1.10", "1.2", "1.10.1"})
//	// ["1.2", "1.10", "1.10.1"]
//
// # Ordering Rules
//
// Comparison walks both token sequences position by position. Equal
// tokens advance the walk; two numbers or two strings decide by natural
// order (numeric or lexicographic). When an integer meets a string, the
// position decides: within the leading four positions the string operand
// ranks lower (a pre-release marker sorts below a release component),
// past them the integer ranks lower (numeric pre-release counters sort
// below named identifiers). When one sequence is a strict prefix of the
// other, a bare three-token release outranks its longer pre-release
// forms, while between two pre-release chains the longer one ranks
// higher:
//
//	1.0.0-rc.1   < 1.0.0
//	1.0.0-alpha  < 1.0.0-alpha.1
//	6.42b        < 6.42
//
// These rules intentionally diverge from strict SemVer precedence; they
// match the simplified scheme this package implements.
//
// # Error Handling
//
// Parse fails with ErrEmptyVersion, ErrInvalidVersion, or ErrZeroVersion,
// all matchable with errors.Is. The permissive Comparable/CompareValues
// entry points additionally fail with ErrNotComparable for operands that
// are neither Versions nor version strings.
package version
