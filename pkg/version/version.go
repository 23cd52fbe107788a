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
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Version is an immutable parsed version. It owns the raw input string
// and the token sequence derived from it at construction time; nothing
// mutates either afterwards, so values are safe to share across
// goroutines.
type Version struct {
	raw    string
	tokens []Token
}

// Parse validates and normalizes a raw version string. It fails with
// ErrEmptyVersion, ErrInvalidVersion, or ErrZeroVersion; on success the
// returned Version carries its comparable token sequence.
func Parse(raw string) (Version, error) {
	if err := Validate(raw); err != nil {
		return Version{}, err
	}
	return Version{raw: raw, tokens: normalize(raw)}, nil
}

// MustParse parses a version string and panics if parsing fails.
// Only use this for hardcoded strings or in tests. For user input or
// runtime data, always use Parse and handle errors explicitly.
//
// Example usage:
//
//	v := version.MustParse("1.33.0") // OK in init() or tests
//	v, err := version.Parse(userInput) // Required for runtime data
func MustParse(raw string) Version {
	v, err := Parse(raw)
	if err != nil {
		panic(fmt.Sprintf("MustParse: %v", err))
	}
	return v
}

// String returns the raw input string the Version was constructed from.
func (v Version) String() string {
	return v.raw
}

// Tokens returns a copy of the normalized token sequence.
func (v Version) Tokens() []Token {
	return append([]Token(nil), v.tokens...)
}

// Compare returns an integer comparing two versions:
// -1 if v < other, 0 if v == other, 1 if v > other.
// Useful for sorting versions.
func (v Version) Compare(other Version) int {
	return compareTokens(v.tokens, other.tokens)
}

// Equals returns true if v and other normalize to identical token
// sequences. Inputs differing only in build metadata are equal.
func (v Version) Equals(other Version) bool {
	return v.Compare(other) == 0
}

// IsNewer returns true if v is strictly newer than other.
func (v Version) IsNewer(other Version) bool {
	return v.Compare(other) > 0
}

// EqualsOrNewer returns true if v is equal to or newer than other.
func (v Version) EqualsOrNewer(other Version) bool {
	return v.Compare(other) >= 0
}

// Comparable converts a supported operand into a Version. Supported
// kinds are Version, *Version, and raw version strings; anything else
// fails with ErrNotComparable. This is the single conversion point for
// the permissive comparison API.
func Comparable(operand any) (Version, error) {
	switch t := operand.(type) {
	case Version:
		return t, nil
	case *Version:
		if t == nil {
			return Version{}, fmt.Errorf("%w: nil version", ErrNotComparable)
		}
		return *t, nil
	case string:
		return Parse(t)
	default:
		return Version{}, fmt.Errorf("%w: %T", ErrNotComparable, operand)
	}
}

// Compare orders two parsed versions. Equivalent to a.Compare(b).
func Compare(a, b Version) int {
	return a.Compare(b)
}

// Relation renders a three-way comparison result as a word: "lesser",
// "equal", or "greater".
func Relation(cmp int) string {
	switch {
	case cmp < 0:
		return "lesser"
	case cmp > 0:
		return "greater"
	default:
		return "equal"
	}
}

// CompareStrings parses and orders two raw version strings.
func CompareStrings(a, b string) (int, error) {
	va, err := Parse(a)
	if err != nil {
		return 0, err
	}
	vb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}

// CompareValues orders two operands of any supported kind, converting
// each through Comparable.
func CompareValues(a, b any) (int, error) {
	va, err := Comparable(a)
	if err != nil {
		return 0, err
	}
	vb, err := Comparable(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}

// Sort orders versions ascending, in place.
func Sort(versions []Version) {
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Compare(versions[j]) < 0
	})
}

// SortStrings parses raw version strings and returns them ordered
// ascending. It fails on the first invalid input.
func SortStrings(raws []string) ([]string, error) {
	versions := make([]Version, 0, len(raws))
	for _, raw := range raws {
		v, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	Sort(versions)

	out := make([]string, len(versions))
	for i, v := range versions {
		out[i] = v.String()
	}
	return out, nil
}

// Latest returns the newest of versions, or false when the slice is
// empty.
func Latest(versions []Version) (Version, bool) {
	if len(versions) == 0 {
		return Version{}, false
	}
	newest := versions[0]
	for _, v := range versions[1:] {
		if v.IsNewer(newest) {
			newest = v
		}
	}
	return newest, true
}

// Oldest returns the oldest of versions, or false when the slice is
// empty.
func Oldest(versions []Version) (Version, bool) {
	if len(versions) == 0 {
		return Version{}, false
	}
	oldest := versions[0]
	for _, v := range versions[1:] {
		if oldest.IsNewer(v) {
			oldest = v
		}
	}
	return oldest, true
}

// MarshalJSON encodes the version as its raw string.
func (v Version) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.raw)
}

// UnmarshalJSON decodes and re-parses a version from its raw string.
func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML encodes the version as its raw string.
func (v Version) MarshalYAML() (any, error) {
	return v.raw, nil
}

// UnmarshalYAML decodes and re-parses a version from its raw string.
func (v *Version) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
