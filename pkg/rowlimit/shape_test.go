package rowlimit_test

import (
	"testing"

	"github.com/leapstack-labs/rowcap/pkg/parser"
	"github.com/leapstack-labs/rowcap/pkg/rowlimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		isQuery bool
		kind    parser.StatementKind
		limit   string
		fetch   string
	}{
		{
			name:    "bare select",
			sql:     "SELECT * FROM t",
			isQuery: true,
			kind:    parser.KindQuery,
		},
		{
			name:    "select with limit",
			sql:     "SELECT * FROM t LIMIT 500",
			isQuery: true,
			kind:    parser.KindQuery,
			limit:   "500",
		},
		{
			name:    "limit all literal kept",
			sql:     "select * from t limit all",
			isQuery: true,
			kind:    parser.KindQuery,
			limit:   "all",
		},
		{
			name:    "select with fetch first",
			sql:     "SELECT * FROM t FETCH FIRST 1000 ROWS ONLY",
			isQuery: true,
			kind:    parser.KindQuery,
			fetch:   "1000",
		},
		{
			name:    "subquery limit not captured",
			sql:     "SELECT * FROM (SELECT a FROM t LIMIT 5) sub",
			isQuery: true,
			kind:    parser.KindQuery,
		},
		{
			name:    "cte limit not captured",
			sql:     "WITH x AS (SELECT a FROM t LIMIT 5) SELECT * FROM x",
			isQuery: true,
			kind:    parser.KindQuery,
		},
		{
			name:    "in-subquery limit not captured",
			sql:     "SELECT * FROM t WHERE a IN (SELECT b FROM u LIMIT 7)",
			isQuery: true,
			kind:    parser.KindQuery,
		},
		{
			name: "ddl is not a query",
			sql:  "CREATE TABLE t (x int)",
			kind: parser.KindDDL,
		},
		{
			name: "insert select is not a query",
			sql:  "INSERT INTO t SELECT * FROM u LIMIT 5",
			kind: parser.KindDML,
		},
		{
			name: "explain is not a query",
			sql:  "EXPLAIN SELECT * FROM t",
			kind: parser.KindUtility,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, err := rowlimit.Classify(tt.sql)
			require.NoError(t, err)
			assert.Equal(t, tt.isQuery, shape.IsQuery)
			assert.Equal(t, tt.kind, shape.Kind)
			assert.Equal(t, tt.limit, shape.LimitText)
			assert.Equal(t, tt.fetch, shape.FetchFirstText)
			assert.Equal(t, tt.limit != "", shape.HasLimit())
			assert.Equal(t, tt.fetch != "", shape.HasFetchFirst())
		})
	}
}

func TestClassifySyntaxError(t *testing.T) {
	_, err := rowlimit.Classify("SELEC * FROM t")
	require.Error(t, err)

	var serr *parser.SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Positive(t, serr.Line)
}

func TestCollectShapeFreshPerStatement(t *testing.T) {
	// Shapes are collected from fresh visitor state; two statements never
	// bleed into each other.
	first, err := rowlimit.Classify("SELECT * FROM t LIMIT 500")
	require.NoError(t, err)
	second, err := rowlimit.Classify("SELECT * FROM t")
	require.NoError(t, err)

	assert.Equal(t, "500", first.LimitText)
	assert.Empty(t, second.LimitText)
}
