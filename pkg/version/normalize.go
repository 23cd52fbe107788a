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
	"encoding/json"
	"math/big"
	"regexp"
	"strings"
)

// minTokens is the guaranteed sequence floor: major, minor, patch.
const minTokens = 3

// separatorRun splits normalized strings on runs of dots. A trailing
// separator yields a trailing empty-string token, which stays in the
// sequence as a string token.
var separatorRun = regexp.MustCompile(`\.+`)

// Token is one element of a normalized version sequence: either a
// non-negative arbitrary-precision integer or a lowercase string
// identifier.
type Token struct {
	num *big.Int
	str string
}

// IsNumeric reports whether the token holds an integer value.
func (t Token) IsNumeric() bool {
	return t.num != nil
}

// String renders the token value.
func (t Token) String() string {
	if t.num != nil {
		return t.num.String()
	}
	return t.str
}

// Equal reports whether two tokens have the same type and value.
func (t Token) Equal(o Token) bool {
	if t.IsNumeric() != o.IsNumeric() {
		return false
	}
	if t.IsNumeric() {
		return t.num.Cmp(o.num) == 0
	}
	return t.str == o.str
}

// MarshalJSON encodes numeric tokens as JSON numbers and identifier
// tokens as JSON strings, so a sequence renders as e.g. [1,0,0,"rc",1].
func (t Token) MarshalJSON() ([]byte, error) {
	if t.IsNumeric() {
		return []byte(t.num.String()), nil
	}
	return json.Marshal(t.str)
}

// MarshalYAML encodes numeric tokens as integers and identifier tokens
// as strings. Numerals beyond int64 range degrade to strings.
func (t Token) MarshalYAML() (any, error) {
	if t.IsNumeric() {
		if t.num.IsInt64() {
			return t.num.Int64(), nil
		}
		return t.num.String(), nil
	}
	return t.str, nil
}

// normalize rewrites a validated raw string into its comparable token
// sequence. The rewrite order matters: alpha/beta must collapse to
// single letters before the letter-splitting rewrites run, so that a
// word like "alphabeta" tokenizes as two identifiers rather than one.
func normalize(raw string) []Token {
	s := raw

	// Build metadata carries no ordering weight.
	if i := strings.IndexByte(s, '+'); i >= 0 {
		s = s[:i]
	}

	// Canonicalize pre-release words, split letter suffixes off digits,
	// unify separators.
	s = strings.ReplaceAll(s, "alpha", "a")
	s = strings.ReplaceAll(s, "beta", "b")
	s = strings.ReplaceAll(s, "a", ".a")
	s = strings.ReplaceAll(s, "b", ".b")
	s = strings.ReplaceAll(s, "-", ".")

	parts := separatorRun.Split(s, -1)

	// Missing minor/patch default to zero.
	for len(parts) < minTokens {
		parts = append(parts, "0")
	}

	tokens := make([]Token, 0, len(parts))
	for _, p := range parts {
		if isASCIIDigits(p) {
			n, _ := new(big.Int).SetString(p, 10)
			tokens = append(tokens, Token{num: n})
			continue
		}
		tokens = append(tokens, Token{str: strings.ToLower(p)})
	}
	return tokens
}

// isASCIIDigits reports whether s is a non-empty run of ASCII digits.
func isASCIIDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
