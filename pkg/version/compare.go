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

import "strings"

// prereleaseBoundary is the last 0-based position treated as part of the
// release block during mixed-type comparison. At or before it a string
// token ranks below an integer (pre-release marker below release
// component); past it an integer ranks below a string (numeric
// pre-release counters below named identifiers).
const prereleaseBoundary = 3

// compareTokens orders two normalized sequences, returning -1, 0, or 1.
// The walk stops at the first differing position; a strict prefix falls
// through to the length tie-break.
func compareTokens(a, b []Token) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		x, y := a[i], b[i]
		if x.Equal(y) {
			continue
		}

		if x.IsNumeric() == y.IsNumeric() {
			// Same type: natural order decides.
			if x.IsNumeric() {
				return x.num.Cmp(y.num)
			}
			return strings.Compare(x.str, y.str)
		}

		// Mixed types.
		if i <= prereleaseBoundary {
			if x.IsNumeric() {
				return 1
			}
			return -1
		}
		if x.IsNumeric() {
			return -1
		}
		return 1
	}

	if len(a) == len(b) {
		return 0
	}

	// Strict prefix. A bare release outranks its pre-release forms;
	// between two pre-release chains the longer one ranks higher.
	if len(a) == minTokens || len(b) == minTokens {
		if len(a) > len(b) {
			return -1
		}
		return 1
	}
	if len(a) < len(b) {
		return -1
	}
	return 1
}
