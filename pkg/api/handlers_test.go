package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NVIDIA/vercmp/pkg/server"
)

// compareResult mirrors CompareResponse with token sequences decoded
// generically, since tokens only marshal.
type compareResult struct {
	A        string `json:"a"`
	B        string `json:"b"`
	Result   int    `json:"result"`
	Relation string `json:"relation"`
	ATokens  []any  `json:"a_tokens"`
	BTokens  []any  `json:"b_tokens"`
}

func TestHandleCompare(t *testing.T) {
	h := NewHandler()

	t.Run("lesser", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/compare?a=1.2&b=1.10.0", nil)
		w := httptest.NewRecorder()

		h.HandleCompare(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp compareResult
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}

		if resp.Result != -1 {
			t.Errorf("expected result -1, got %d", resp.Result)
		}
		if resp.Relation != "lesser" {
			t.Errorf("expected relation lesser, got %s", resp.Relation)
		}
		if resp.A != "1.2" || resp.B != "1.10.0" {
			t.Errorf("expected inputs echoed back, got a=%s b=%s", resp.A, resp.B)
		}

		// 1.2 normalizes to [1, 2, 0]
		if len(resp.ATokens) != 3 {
			t.Fatalf("expected 3 tokens for a, got %v", resp.ATokens)
		}
		if resp.ATokens[0].(float64) != 1 || resp.ATokens[1].(float64) != 2 || resp.ATokens[2].(float64) != 0 {
			t.Errorf("expected a_tokens [1 2 0], got %v", resp.ATokens)
		}
	})

	t.Run("equal across forms", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/compare?a=1.2&b=1.2.0", nil)
		w := httptest.NewRecorder()

		h.HandleCompare(w, req)

		var resp compareResult
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if resp.Result != 0 || resp.Relation != "equal" {
			t.Errorf("expected equal, got result=%d relation=%s", resp.Result, resp.Relation)
		}
	})

	t.Run("prerelease tokens", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/compare?a=1.0.0-rc.1&b=1.0.0", nil)
		w := httptest.NewRecorder()

		h.HandleCompare(w, req)

		var resp compareResult
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if resp.Relation != "lesser" {
			t.Errorf("expected prerelease to be lesser, got %s", resp.Relation)
		}
		// 1.0.0-rc.1 normalizes to [1, 0, 0, "rc", 1]
		if len(resp.ATokens) != 5 {
			t.Fatalf("expected 5 tokens, got %v", resp.ATokens)
		}
		if resp.ATokens[3].(string) != "rc" {
			t.Errorf("expected token 3 to be rc, got %v", resp.ATokens[3])
		}
	})

	t.Run("missing parameters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/compare?a=1.2", nil)
		w := httptest.NewRecorder()

		h.HandleCompare(w, req)

		assertErrorCode(t, w, http.StatusBadRequest, "INVALID_REQUEST")
	})

	t.Run("invalid version", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/compare?a=abc&b=1.0.0", nil)
		w := httptest.NewRecorder()

		h.HandleCompare(w, req)

		assertErrorCode(t, w, http.StatusBadRequest, "INVALID_VERSION")
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/compare", nil)
		w := httptest.NewRecorder()

		h.HandleCompare(w, req)

		assertErrorCode(t, w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED")
		if w.Header().Get("Allow") != http.MethodGet {
			t.Errorf("expected Allow header GET, got %s", w.Header().Get("Allow"))
		}
	})
}

func TestHandleSort(t *testing.T) {
	h := NewHandler()

	t.Run("sorts ascending", func(t *testing.T) {
		body := `{"versions": ["2.0.0", "1.0.0-rc.1", "1.10", "1.2", "1.0.0"]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/sort", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		h.HandleSort(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp SortResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}

		expected := []string{"1.0.0-rc.1", "1.0.0", "1.2", "1.10", "2.0.0"}
		if len(resp.Versions) != len(expected) {
			t.Fatalf("expected %d versions, got %v", len(expected), resp.Versions)
		}
		for i, v := range expected {
			if resp.Versions[i] != v {
				t.Errorf("position %d: expected %s, got %s", i, v, resp.Versions[i])
			}
		}
		if len(resp.Invalid) != 0 {
			t.Errorf("expected no invalid versions, got %v", resp.Invalid)
		}
	})

	t.Run("reverse", func(t *testing.T) {
		body := `{"versions": ["1.2", "2.0.0", "1.10"], "reverse": true}`
		req := httptest.NewRequest(http.MethodPost, "/v1/sort", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		h.HandleSort(w, req)

		var resp SortResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}

		expected := []string{"2.0.0", "1.10", "1.2"}
		for i, v := range expected {
			if resp.Versions[i] != v {
				t.Errorf("position %d: expected %s, got %s", i, v, resp.Versions[i])
			}
		}
	})

	t.Run("reports invalid members", func(t *testing.T) {
		body := `{"versions": ["1.2", "not@valid", "1.0.0"]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/sort", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		h.HandleSort(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}

		var resp SortResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}

		if len(resp.Versions) != 2 {
			t.Errorf("expected 2 sorted versions, got %v", resp.Versions)
		}
		if len(resp.Invalid) != 1 {
			t.Fatalf("expected 1 invalid version, got %v", resp.Invalid)
		}
		if resp.Invalid[0].Version != "not@valid" {
			t.Errorf("expected invalid version not@valid, got %s", resp.Invalid[0].Version)
		}
		if resp.Invalid[0].Reason == "" {
			t.Error("expected a reason for the invalid version")
		}
	})

	t.Run("yaml body", func(t *testing.T) {
		body := "versions:\n  - \"1.10\"\n  - \"1.2\"\n"
		req := httptest.NewRequest(http.MethodPost, "/v1/sort", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/yaml")
		w := httptest.NewRecorder()

		h.HandleSort(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp SortResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if len(resp.Versions) != 2 || resp.Versions[0] != "1.2" {
			t.Errorf("expected [1.2 1.10], got %v", resp.Versions)
		}
	})

	t.Run("empty list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/sort", strings.NewReader(`{"versions": []}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		h.HandleSort(w, req)

		assertErrorCode(t, w, http.StatusBadRequest, "INVALID_REQUEST")
	})

	t.Run("over bulk limit", func(t *testing.T) {
		limited := &Handler{MaxBulkVersions: 2}

		body := `{"versions": ["1.0.0", "1.0.1", "1.0.2"]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/sort", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		limited.HandleSort(w, req)

		assertErrorCode(t, w, http.StatusBadRequest, "INVALID_REQUEST")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/sort", strings.NewReader(`{"versions": [`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		h.HandleSort(w, req)

		assertErrorCode(t, w, http.StatusBadRequest, "INVALID_REQUEST")
	})

	t.Run("unsupported content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/sort", strings.NewReader("1.0.0"))
		req.Header.Set("Content-Type", "text/plain")
		w := httptest.NewRecorder()

		h.HandleSort(w, req)

		assertErrorCode(t, w, http.StatusBadRequest, "INVALID_REQUEST")
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/sort", nil)
		w := httptest.NewRecorder()

		h.HandleSort(w, req)

		assertErrorCode(t, w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED")
	})
}

func TestHandleValidate(t *testing.T) {
	h := NewHandler()

	t.Run("valid version", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/validate?version=1.2.3-rc.1", nil)
		w := httptest.NewRecorder()

		h.HandleValidate(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}

		var resp ValidateResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if !resp.Valid {
			t.Errorf("expected valid=true, got reason %q", resp.Reason)
		}
		if resp.Reason != "" {
			t.Errorf("expected no reason for a valid version, got %q", resp.Reason)
		}
	})

	t.Run("invalid version still returns 200", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/validate?version=nope", nil)
		w := httptest.NewRecorder()

		h.HandleValidate(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}

		var resp ValidateResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if resp.Valid {
			t.Error("expected valid=false")
		}
		if resp.Reason == "" {
			t.Error("expected a reason for the invalid version")
		}
	})

	t.Run("zero sentinel is invalid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/validate?version=0.0.0", nil)
		w := httptest.NewRecorder()

		h.HandleValidate(w, req)

		var resp ValidateResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if resp.Valid {
			t.Error("expected 0.0.0 to be invalid")
		}
	})

	t.Run("missing parameter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/validate", nil)
		w := httptest.NewRecorder()

		h.HandleValidate(w, req)

		assertErrorCode(t, w, http.StatusBadRequest, "INVALID_REQUEST")
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/v1/validate", nil)
		w := httptest.NewRecorder()

		h.HandleValidate(w, req)

		assertErrorCode(t, w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED")
	})
}

func TestHandleCheck(t *testing.T) {
	h := NewHandler()

	t.Run("satisfied conjunction", func(t *testing.T) {
		body := `{"version": "1.32.4", "constraints": [">= 1.30", "< 2.0"]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/check", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		h.HandleCheck(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp CheckResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}

		if !resp.Satisfied {
			t.Errorf("expected satisfied=true, got %v", resp.Details)
		}
		if len(resp.Details) != 2 {
			t.Fatalf("expected 2 constraint results, got %v", resp.Details)
		}
		for _, d := range resp.Details {
			if !d.Satisfied {
				t.Errorf("expected constraint %q to be satisfied", d.Constraint)
			}
		}
	})

	t.Run("prerelease fails release floor", func(t *testing.T) {
		body := `{"version": "1.32.4-rc.1", "constraints": [">= 1.32.4"]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/check", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		h.HandleCheck(w, req)

		var resp CheckResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if resp.Satisfied {
			t.Error("expected prerelease to fail the release floor")
		}
	})

	t.Run("comma-joined constraints expand", func(t *testing.T) {
		body := `{"version": "1.5.0", "constraints": [">= 1.0, < 2.0"]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/check", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		h.HandleCheck(w, req)

		var resp CheckResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if len(resp.Details) != 2 {
			t.Errorf("expected 2 constraint results, got %v", resp.Details)
		}
		if !resp.Satisfied {
			t.Error("expected satisfied=true")
		}
	})

	t.Run("invalid constraint", func(t *testing.T) {
		body := `{"version": "1.0.0", "constraints": ["~> 1.0"]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/check", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		h.HandleCheck(w, req)

		assertErrorCode(t, w, http.StatusBadRequest, "INVALID_CONSTRAINT")
	})

	t.Run("invalid version", func(t *testing.T) {
		body := `{"version": "bogus", "constraints": [">= 1.0"]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/check", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		h.HandleCheck(w, req)

		assertErrorCode(t, w, http.StatusBadRequest, "INVALID_VERSION")
	})

	t.Run("missing version", func(t *testing.T) {
		body := `{"constraints": [">= 1.0"]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/check", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		h.HandleCheck(w, req)

		assertErrorCode(t, w, http.StatusBadRequest, "INVALID_REQUEST")
	})

	t.Run("missing constraints", func(t *testing.T) {
		body := `{"version": "1.0.0"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/check", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		h.HandleCheck(w, req)

		assertErrorCode(t, w, http.StatusBadRequest, "INVALID_REQUEST")
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/check", nil)
		w := httptest.NewRecorder()

		h.HandleCheck(w, req)

		assertErrorCode(t, w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED")
	})
}

// assertErrorCode checks both the HTTP status and the structured error
// code in the response body.
func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantCode string) {
	t.Helper()

	if w.Code != wantStatus {
		t.Fatalf("expected status %d, got %d: %s", wantStatus, w.Code, w.Body.String())
	}

	var resp server.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal error response: %v", err)
	}
	if resp.Code != wantCode {
		t.Errorf("expected error code %s, got %s", wantCode, resp.Code)
	}
	if resp.RequestID == "" {
		t.Error("expected a request ID in the error response")
	}
}
