// Package constraint parses and evaluates version constraint
// expressions such as ">= 1.32.4" or "< 2.0".
//
// An expression is an optional comparison operator followed by a
// version string; a bare version means exact equality. Multiple
// expressions joined by commas form a Set whose members must all be
// satisfied.
package constraint
