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

package constraint

import (
	"fmt"
	"strings"

	"github.com/NVIDIA/vercmp/pkg/errors"
	"github.com/NVIDIA/vercmp/pkg/version"
)

// Operator represents a comparison operator in constraint expressions.
type Operator string

const (
	// OperatorGTE represents ">=" (greater than or equal).
	OperatorGTE Operator = ">="

	// OperatorLTE represents "<=" (less than or equal).
	OperatorLTE Operator = "<="

	// OperatorGT represents ">" (greater than).
	OperatorGT Operator = ">"

	// OperatorLT represents "<" (less than).
	OperatorLT Operator = "<"

	// OperatorEQ represents "==" (exact match).
	OperatorEQ Operator = "=="

	// OperatorNE represents "!=" (not equal).
	OperatorNE Operator = "!="
)

// operators is ordered longest first to avoid matching ">" when ">="
// is intended.
var operators = []Operator{OperatorGTE, OperatorLTE, OperatorNE, OperatorEQ, OperatorGT, OperatorLT}

// Constraint is a single parsed constraint expression.
type Constraint struct {
	// Operator is the comparison operator.
	Operator Operator

	// Version is the parsed right-hand operand.
	Version version.Version
}

// Parse parses a constraint expression. A bare version with no
// operator is treated as "==".
// Examples:
//   - ">= 1.32.4" -> {Operator: ">=", Version: 1.32.4}
//   - "<2.0"      -> {Operator: "<", Version: 2.0}
//   - "1.33"      -> {Operator: "==", Version: 1.33}
func Parse(expr string) (Constraint, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Constraint{}, errors.New(errors.ErrCodeInvalidConstraint,
			"constraint expression cannot be empty")
	}

	op := OperatorEQ
	operand := expr
	for _, candidate := range operators {
		if strings.HasPrefix(expr, string(candidate)) {
			op = candidate
			operand = strings.TrimSpace(strings.TrimPrefix(expr, string(candidate)))
			break
		}
	}

	if operand == "" {
		return Constraint{}, errors.NewWithContext(errors.ErrCodeInvalidConstraint,
			"constraint has no version after operator", map[string]any{"expression": expr})
	}

	v, err := version.Parse(operand)
	if err != nil {
		return Constraint{}, errors.WrapWithContext(errors.ErrCodeInvalidConstraint,
			"constraint operand is not a valid version", err, map[string]any{"expression": expr})
	}

	return Constraint{Operator: op, Version: v}, nil
}

// MustParse parses a constraint expression and panics if parsing
// fails. Only use this for hardcoded expressions or in tests.
func MustParse(expr string) Constraint {
	c, err := Parse(expr)
	if err != nil {
		panic(fmt.Sprintf("MustParse: %v", err))
	}
	return c
}

// Check reports whether v satisfies the constraint.
func (c Constraint) Check(v version.Version) bool {
	cmp := v.Compare(c.Version)
	switch c.Operator {
	case OperatorGTE:
		return cmp >= 0
	case OperatorLTE:
		return cmp <= 0
	case OperatorGT:
		return cmp > 0
	case OperatorLT:
		return cmp < 0
	case OperatorEQ:
		return cmp == 0
	case OperatorNE:
		return cmp != 0
	default:
		return false
	}
}

// CheckString parses raw and reports whether it satisfies the
// constraint.
func (c Constraint) CheckString(raw string) (bool, error) {
	v, err := version.Parse(raw)
	if err != nil {
		return false, err
	}
	return c.Check(v), nil
}

// String returns the canonical form of the constraint.
func (c Constraint) String() string {
	return fmt.Sprintf("%s %s", c.Operator, c.Version.String())
}

// Set is a list of constraints combined with logical AND.
type Set []Constraint

// ParseSet parses a comma-separated list of constraint expressions,
// e.g. ">= 1.2, < 2.0".
func ParseSet(expr string) (Set, error) {
	parts := strings.Split(expr, ",")
	set := make(Set, 0, len(parts))
	for _, part := range parts {
		c, err := Parse(part)
		if err != nil {
			return nil, err
		}
		set = append(set, c)
	}
	return set, nil
}

// Check reports whether v satisfies every constraint in the set.
func (s Set) Check(v version.Version) bool {
	for _, c := range s {
		if !c.Check(v) {
			return false
		}
	}
	return true
}

// CheckString parses raw and reports whether it satisfies every
// constraint in the set.
func (s Set) CheckString(raw string) (bool, error) {
	v, err := version.Parse(raw)
	if err != nil {
		return false, err
	}
	return s.Check(v), nil
}

// Filter returns the subset of versions satisfying every constraint
// in the set, preserving input order.
func (s Set) Filter(versions []version.Version) []version.Version {
	out := make([]version.Version, 0, len(versions))
	for _, v := range versions {
		if s.Check(v) {
			out = append(out, v)
		}
	}
	return out
}

// String returns the canonical comma-separated form of the set.
func (s Set) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
