// Package rowlimit classifies SQL statements and enforces a maximum row
// limit on SELECT-family queries by rewriting their trailing LIMIT or
// FETCH FIRST clause.
package rowlimit

import (
	"github.com/leapstack-labs/rowcap/pkg/parser"
)

// Shape describes what the classifier found on the outermost query body.
// LimitText and FetchFirstText hold the literal value text exactly as it
// appeared in source ("500", "all", ...), or "" when no such clause exists.
// A statement never has both: the grammar rejects LIMIT combined with
// FETCH FIRST, so at most one is meaningful at rewrite time.
type Shape struct {
	IsQuery        bool
	Kind           parser.StatementKind
	LimitText      string
	FetchFirstText string
}

// HasLimit returns true if the outermost query carries a LIMIT clause.
func (s Shape) HasLimit() bool { return s.LimitText != "" }

// HasFetchFirst returns true if the outermost query carries a FETCH FIRST clause.
func (s Shape) HasFetchFirst() bool { return s.FetchFirstText != "" }

// shapeVisitor accumulates the query shape during a tree walk. It records
// the first query node it sees, which in a depth-first walk from the root is
// the outermost one; limits on subqueries and CTEs are ignored.
type shapeVisitor struct {
	shape    Shape
	recorded bool
}

func (v *shapeVisitor) visit(node any) bool {
	q, ok := node.(*parser.QueryStmt)
	if !ok || q == nil || v.recorded {
		return true
	}
	v.recorded = true
	v.shape.IsQuery = true
	if q.Limit != nil {
		v.shape.LimitText = q.Limit.Value
	}
	if q.Fetch != nil {
		v.shape.FetchFirstText = q.Fetch.Count
	}
	// The outermost query is recorded; nothing below changes the shape.
	return false
}

// CollectShape walks a parsed statement and reports its shape. A non-query
// statement yields IsQuery=false with both limit fields empty, which
// signals "do not enforce a row limit".
func CollectShape(stmt parser.Statement) Shape {
	v := &shapeVisitor{}
	if stmt != nil {
		v.shape.Kind = stmt.Kind()
	}
	parser.Walk(stmt, v.visit)
	return v.shape
}
