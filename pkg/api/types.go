package api

import ver "github.com/NVIDIA/vercmp/pkg/version"

// CompareResponse is the payload for GET /v1/compare. Result is the
// three-way comparison of a against b (-1, 0, or 1); Relation spells
// it out. The token fields expose the normalized sequences the
// ordering was computed from.
type CompareResponse struct {
	A        string          `json:"a"`
	B        string          `json:"b"`
	Result   int             `json:"result"`
	Relation string          `json:"relation"`
	ATokens  []ver.Token `json:"a_tokens"`
	BTokens  []ver.Token `json:"b_tokens"`
}

// SortRequest is the body for POST /v1/sort.
type SortRequest struct {
	Versions []string `json:"versions" yaml:"versions"`
	Reverse  bool     `json:"reverse,omitempty" yaml:"reverse,omitempty"`
}

// InvalidVersion reports one rejected member of a bulk request.
type InvalidVersion struct {
	Version string `json:"version"`
	Reason  string `json:"reason"`
}

// SortResponse is the payload for POST /v1/sort. Versions holds the
// parseable input sorted ascending (or descending when the request set
// reverse); Invalid lists the members that failed to parse.
type SortResponse struct {
	Versions []string         `json:"versions"`
	Invalid  []InvalidVersion `json:"invalid,omitempty"`
}

// ValidateResponse is the payload for GET /v1/validate.
type ValidateResponse struct {
	Version string `json:"version"`
	Valid   bool   `json:"valid"`
	Reason  string `json:"reason,omitempty"`
}

// CheckRequest is the body for POST /v1/check. Constraints are
// evaluated as a conjunction; each entry may itself hold a
// comma-separated list.
type CheckRequest struct {
	Version     string   `json:"version" yaml:"version"`
	Constraints []string `json:"constraints" yaml:"constraints"`
}

// ConstraintResult reports one constraint of a conjunction.
type ConstraintResult struct {
	Constraint string `json:"constraint"`
	Satisfied  bool   `json:"satisfied"`
}

// CheckResponse is the payload for POST /v1/check.
type CheckResponse struct {
	Version   string             `json:"version"`
	Satisfied bool               `json:"satisfied"`
	Details   []ConstraintResult `json:"details"`
}
