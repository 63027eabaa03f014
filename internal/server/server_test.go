package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/rowcap/internal/testutil"
	"github.com/leapstack-labs/rowcap/pkg/rowlimit"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(Config{
		Addr:   "localhost:0",
		Policy: rowlimit.Policy{MaxRows: 100},
		Logger: testutil.NewTestLogger(t),
	})
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRewriteEndpoint(t *testing.T) {
	intPtr := func(n int) *int { return &n }

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantSQL    string
	}{
		{
			name:       "caps an unbounded query",
			body:       rewriteRequest{SQL: "SELECT * FROM t"},
			wantStatus: http.StatusOK,
			wantSQL:    "SELECT * FROM t LIMIT 100",
		},
		{
			name:       "tightens an oversized limit",
			body:       rewriteRequest{SQL: "SELECT * FROM t LIMIT 500"},
			wantStatus: http.StatusOK,
			wantSQL:    "SELECT * FROM t LIMIT 100",
		},
		{
			name:       "leaves non-queries alone",
			body:       rewriteRequest{SQL: "DELETE FROM t WHERE id = 1"},
			wantStatus: http.StatusOK,
			wantSQL:    "DELETE FROM t WHERE id = 1",
		},
		{
			name:       "per-request max rows override",
			body:       rewriteRequest{SQL: "SELECT * FROM t", MaxRows: intPtr(10)},
			wantStatus: http.StatusOK,
			wantSQL:    "SELECT * FROM t LIMIT 10",
		},
		{
			name:       "per-request no limit passthrough",
			body:       rewriteRequest{SQL: "SELECT * FROM t LIMIT 500", NoLimit: true},
			wantStatus: http.StatusOK,
			wantSQL:    "SELECT * FROM t LIMIT 500",
		},
		{
			name:       "rejects non-positive max rows",
			body:       rewriteRequest{SQL: "SELECT 1", MaxRows: intPtr(0)},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "rejects empty sql",
			body:       rewriteRequest{SQL: ""},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "syntax error reports position",
			body:       rewriteRequest{SQL: "SELECT * FROM"},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestServer(t)

			rec := postJSON(t, s.Routes(), "/api/rewrite", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				var resp rewriteResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantSQL, resp.SQL)
			}
		})
	}
}

func TestRewriteEndpoint_InvalidJSON(t *testing.T) {
	s := setupTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/rewrite", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRewriteEndpoint_SyntaxErrorBody(t *testing.T) {
	s := setupTestServer(t)

	rec := postJSON(t, s.Routes(), "/api/rewrite", rewriteRequest{SQL: "SELEC * FROM t"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Error syntaxErrorBody `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Error.Line)
	assert.Equal(t, 1, resp.Error.Column)
	assert.NotEmpty(t, resp.Error.Message)
}

func TestClassifyEndpoint(t *testing.T) {
	tests := []struct {
		name        string
		sql         string
		wantKind    string
		wantIsQuery bool
		wantLimit   string
	}{
		{
			name:        "select with limit",
			sql:         "SELECT * FROM t LIMIT 10",
			wantKind:    "query",
			wantIsQuery: true,
			wantLimit:   "10",
		},
		{
			name:        "select without limit",
			sql:         "SELECT * FROM t",
			wantKind:    "query",
			wantIsQuery: true,
		},
		{
			name:     "insert is dml",
			sql:      "INSERT INTO t VALUES (1)",
			wantKind: "dml",
		},
		{
			name:     "create is ddl",
			sql:      "CREATE TABLE t (id INT)",
			wantKind: "ddl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestServer(t)

			rec := postJSON(t, s.Routes(), "/api/classify", rewriteRequest{SQL: tt.sql})
			require.Equal(t, http.StatusOK, rec.Code)

			var resp classifyResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantKind, resp.Kind)
			assert.Equal(t, tt.wantIsQuery, resp.IsQuery)
			assert.Equal(t, tt.wantLimit, resp.Limit)
		})
	}
}
