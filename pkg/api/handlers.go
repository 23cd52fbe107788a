package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/NVIDIA/vercmp/pkg/constraint"
	apperrors "github.com/NVIDIA/vercmp/pkg/errors"
	"github.com/NVIDIA/vercmp/pkg/serializer"
	"github.com/NVIDIA/vercmp/pkg/server"
	ver "github.com/NVIDIA/vercmp/pkg/version"
	"gopkg.in/yaml.v3"
)

// defaultMaxBulkVersions caps bulk request sizes when the Handler does
// not override it.
const defaultMaxBulkVersions = 100

// Handler serves the version operation endpoints.
type Handler struct {
	// MaxBulkVersions caps the number of versions accepted by bulk
	// endpoints. Zero means defaultMaxBulkVersions.
	MaxBulkVersions int
}

// NewHandler creates a Handler with default limits.
func NewHandler() *Handler {
	return &Handler{MaxBulkVersions: defaultMaxBulkVersions}
}

func (h *Handler) maxBulk() int {
	if h.MaxBulkVersions > 0 {
		return h.MaxBulkVersions
	}
	return defaultMaxBulkVersions
}

// HandleCompare handles GET /v1/compare?a=<version>&b=<version>.
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, r, http.MethodGet)
		return
	}

	a := strings.TrimSpace(r.URL.Query().Get("a"))
	b := strings.TrimSpace(r.URL.Query().Get("b"))
	if a == "" || b == "" {
		server.WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest,
			"Both 'a' and 'b' query parameters are required", false, map[string]any{
				"a": a,
				"b": b,
			})
		return
	}

	va, err := ver.Parse(a)
	if err != nil {
		writeInvalidVersion(w, r, a, err)
		return
	}
	vb, err := ver.Parse(b)
	if err != nil {
		writeInvalidVersion(w, r, b, err)
		return
	}

	cmp := va.Compare(vb)
	serializer.RespondJSON(w, http.StatusOK, CompareResponse{
		A:        a,
		B:        b,
		Result:   cmp,
		Relation: ver.Relation(cmp),
		ATokens:  va.Tokens(),
		BTokens:  vb.Tokens(),
	})
}

// HandleSort handles POST /v1/sort. Parseable versions come back
// sorted; unparseable members come back in the invalid list instead of
// failing the whole request.
func (h *Handler) HandleSort(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req SortRequest
	if err := decodeRequest(r, &req); err != nil {
		server.WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest,
			"Invalid request body", false, map[string]any{"error": err.Error()})
		return
	}

	if len(req.Versions) == 0 {
		server.WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest,
			"Version list cannot be empty", false, nil)
		return
	}
	if limit := h.maxBulk(); len(req.Versions) > limit {
		server.WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest,
			"Version list exceeds bulk limit", false, map[string]any{
				"count": len(req.Versions),
				"limit": limit,
			})
		return
	}

	parsed := make([]ver.Version, 0, len(req.Versions))
	var invalid []InvalidVersion
	for _, raw := range req.Versions {
		v, err := ver.Parse(raw)
		if err != nil {
			invalid = append(invalid, InvalidVersion{Version: raw, Reason: err.Error()})
			continue
		}
		parsed = append(parsed, v)
	}

	ver.Sort(parsed)
	sorted := make([]string, 0, len(parsed))
	for _, v := range parsed {
		sorted = append(sorted, v.String())
	}
	if req.Reverse {
		slices.Reverse(sorted)
	}

	serializer.RespondJSON(w, http.StatusOK, SortResponse{
		Versions: sorted,
		Invalid:  invalid,
	})
}

// HandleValidate handles GET /v1/validate?version=<version>. The
// validation verdict is the payload, so invalid versions still return
// 200.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, r, http.MethodGet)
		return
	}

	raw := strings.TrimSpace(r.URL.Query().Get("version"))
	if raw == "" {
		server.WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest,
			"The 'version' query parameter is required", false, nil)
		return
	}

	resp := ValidateResponse{Version: raw, Valid: true}
	if err := ver.Validate(raw); err != nil {
		resp.Valid = false
		resp.Reason = err.Error()
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}

// HandleCheck handles POST /v1/check, evaluating a version against a
// constraint conjunction.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req CheckRequest
	if err := decodeRequest(r, &req); err != nil {
		server.WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest,
			"Invalid request body", false, map[string]any{"error": err.Error()})
		return
	}

	if req.Version == "" {
		server.WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest,
			"A version is required", false, nil)
		return
	}
	if len(req.Constraints) == 0 {
		server.WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest,
			"At least one constraint is required", false, nil)
		return
	}

	v, err := ver.Parse(req.Version)
	if err != nil {
		writeInvalidVersion(w, r, req.Version, err)
		return
	}

	set, err := constraint.ParseSet(strings.Join(req.Constraints, ","))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid constraint", nil)
		return
	}

	satisfied := true
	details := make([]ConstraintResult, 0, len(set))
	for _, c := range set {
		ok := c.Check(v)
		if !ok {
			satisfied = false
		}
		details = append(details, ConstraintResult{Constraint: c.String(), Satisfied: ok})
	}

	serializer.RespondJSON(w, http.StatusOK, CheckResponse{
		Version:   req.Version,
		Satisfied: satisfied,
		Details:   details,
	})
}

// decodeRequest reads a JSON or YAML request body based on
// Content-Type. A missing Content-Type defaults to JSON.
func decodeRequest(r *http.Request, v any) error {
	defer func() {
		if r.Body != nil {
			r.Body.Close()
		}
	}()

	mediaType := r.Header.Get("Content-Type")
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = mediaType[:idx]
	}
	mediaType = strings.TrimSpace(strings.ToLower(mediaType))

	switch mediaType {
	case "", "application/json":
		return json.NewDecoder(r.Body).Decode(v)
	case "application/yaml", "application/x-yaml", "text/yaml":
		return yaml.NewDecoder(r.Body).Decode(v)
	default:
		return fmt.Errorf("unsupported content type: %s", mediaType)
	}
}

func writeMethodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	server.WriteError(w, r, http.StatusMethodNotAllowed, apperrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{
			"method":  r.Method,
			"allowed": allowed,
		})
}

func writeInvalidVersion(w http.ResponseWriter, r *http.Request, raw string, err error) {
	server.WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidVersion,
		"Invalid version", false, map[string]any{
			"version": raw,
			"error":   err.Error(),
		})
}
