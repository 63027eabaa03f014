package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/leapstack-labs/rowcap/pkg/parser"
	"github.com/leapstack-labs/rowcap/pkg/rowlimit"
)

type rewriteRequest struct {
	SQL     string `json:"sql"`
	MaxRows *int   `json:"maxRows,omitempty"`
	NoLimit bool   `json:"noLimit,omitempty"`
}

type rewriteResponse struct {
	SQL string `json:"sql"`
}

type classifyResponse struct {
	Kind       string `json:"kind"`
	IsQuery    bool   `json:"isQuery"`
	Limit      string `json:"limit,omitempty"`
	FetchFirst string `json:"fetchFirst,omitempty"`
}

type syntaxErrorBody struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error any `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRewrite(w http.ResponseWriter, r *http.Request) {
	req, policy, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	rewritten, err := rowlimit.Apply(req.SQL, policy)
	if err != nil {
		s.writeApplyError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rewriteResponse{SQL: rewritten})
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	req, _, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	shape, err := rowlimit.Classify(req.SQL)
	if err != nil {
		s.writeApplyError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, classifyResponse{
		Kind:       shape.Kind.String(),
		IsQuery:    shape.IsQuery,
		Limit:      shape.LimitText,
		FetchFirst: shape.FetchFirstText,
	})
}

// decodeRequest parses the request body and resolves the effective policy.
// On failure it writes the error response and returns ok=false.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (rewriteRequest, rowlimit.Policy, bool) {
	var req rewriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return req, rowlimit.Policy{}, false
	}
	if req.SQL == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "sql is required"})
		return req, rowlimit.Policy{}, false
	}

	policy := s.policy
	if req.NoLimit {
		policy.Disabled = true
	}
	if req.MaxRows != nil {
		if *req.MaxRows <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "maxRows must be positive"})
			return req, rowlimit.Policy{}, false
		}
		policy.MaxRows = *req.MaxRows
	}
	return req, policy, true
}

func (s *Server) writeApplyError(w http.ResponseWriter, err error) {
	var synErr *parser.SyntaxError
	if errors.As(err, &synErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: syntaxErrorBody{
			Line:    synErr.Line,
			Column:  synErr.Column,
			Message: synErr.Message,
		}})
		return
	}
	s.logger.Error("rewrite failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
