package parser_test

import (
	"testing"

	"github.com/leapstack-labs/rowcap/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustQuery parses sql and requires a clean QueryStmt.
func mustQuery(t *testing.T, sql string) *parser.QueryStmt {
	t.Helper()
	stmt, serr := parser.Parse(sql)
	require.Nil(t, serr, "unexpected syntax error: %v", serr)
	q, ok := stmt.(*parser.QueryStmt)
	require.True(t, ok, "expected query statement, got %T", stmt)
	return q
}

func TestParseSelect(t *testing.T) {
	q := mustQuery(t, "SELECT a, b AS alias, t.* FROM schema.t WHERE a > 1 GROUP BY a HAVING count(*) > 2")
	require.NotNil(t, q.Body)
	core := q.Body.Left.Select
	require.NotNil(t, core)
	assert.Len(t, core.Columns, 3)
	assert.Equal(t, "alias", core.Columns[1].Alias)
	require.NotNil(t, core.From)
	assert.Equal(t, "schema.t", core.From.Source.(*parser.TableName).Name)
	assert.NotNil(t, core.Where)
	assert.Len(t, core.GroupBy, 1)
	assert.NotNil(t, core.Having)
}

func TestParseLimitClause(t *testing.T) {
	tests := []struct {
		name      string
		sql       string
		wantLimit string
	}{
		{"numeric limit", "SELECT * FROM t LIMIT 500", "500"},
		{"limit all", "SELECT * FROM t LIMIT ALL", "ALL"},
		{"lowercase literal kept", "select * from t limit all", "all"},
		{"limit after order by", "SELECT * FROM t ORDER BY a DESC LIMIT 10", "10"},
		{"offset then limit", "SELECT * FROM t OFFSET 5 ROWS LIMIT 10", "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := mustQuery(t, tt.sql)
			require.NotNil(t, q.Limit)
			assert.Equal(t, tt.wantLimit, q.Limit.Value)
			assert.Nil(t, q.Fetch)
		})
	}
}

func TestParseFetchClause(t *testing.T) {
	tests := []struct {
		name      string
		sql       string
		wantCount string
	}{
		{"fetch first rows", "SELECT * FROM t FETCH FIRST 1000 ROWS ONLY", "1000"},
		{"fetch next row", "SELECT * FROM t FETCH NEXT 1 ROW ONLY", "1"},
		{"lowercase", "select * from t fetch first 25 rows only", "25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := mustQuery(t, tt.sql)
			require.NotNil(t, q.Fetch)
			assert.Equal(t, tt.wantCount, q.Fetch.Count)
			assert.Nil(t, q.Limit)
		})
	}
}

func TestParseLimitAndFetchConflict(t *testing.T) {
	_, serr := parser.Parse("SELECT * FROM t LIMIT 10 FETCH FIRST 10 ROWS ONLY")
	require.NotNil(t, serr)
	assert.Contains(t, serr.Message, "cannot both")
}

func TestParseWithClause(t *testing.T) {
	q := mustQuery(t, "WITH x AS (SELECT a FROM t LIMIT 5) SELECT * FROM x")
	require.NotNil(t, q.With)
	require.Len(t, q.With.CTEs, 1)
	assert.Equal(t, "x", q.With.CTEs[0].Name)
	// The CTE's own limit lives on the inner query, not the outer one.
	assert.Nil(t, q.Limit)
	require.NotNil(t, q.With.CTEs[0].Query.Limit)
	assert.Equal(t, "5", q.With.CTEs[0].Query.Limit.Value)
}

func TestParseSetOperations(t *testing.T) {
	q := mustQuery(t, "SELECT a FROM t UNION ALL SELECT b FROM u LIMIT 10")
	require.NotNil(t, q.Body)
	assert.Equal(t, parser.SetOpUnion, q.Body.Op)
	assert.True(t, q.Body.All)
	require.NotNil(t, q.Body.Right)
	// The limit binds to the whole union.
	require.NotNil(t, q.Limit)
	assert.Equal(t, "10", q.Limit.Value)
}

func TestParseJoins(t *testing.T) {
	q := mustQuery(t, "SELECT * FROM a LEFT JOIN b ON a.id = b.id JOIN c USING (id), d")
	from := q.Body.Left.Select.From
	require.NotNil(t, from)
	require.Len(t, from.Joins, 3)
	assert.Equal(t, parser.JoinLeft, from.Joins[0].Type)
	assert.NotNil(t, from.Joins[0].Condition)
	assert.Equal(t, []string{"id"}, from.Joins[1].Using)
	assert.Equal(t, parser.JoinCross, from.Joins[2].Type)
}

func TestParseDerivedTable(t *testing.T) {
	q := mustQuery(t, "SELECT * FROM (SELECT a FROM t LIMIT 3) sub")
	from := q.Body.Left.Select.From
	d, ok := from.Source.(*parser.DerivedTable)
	require.True(t, ok)
	assert.Equal(t, "sub", d.Alias)
	require.NotNil(t, d.Query.Limit)
	// The outer query has no limit of its own.
	assert.Nil(t, q.Limit)
}

func TestParseExpressions(t *testing.T) {
	tests := []string{
		"SELECT CASE WHEN a > 1 THEN 'big' ELSE 'small' END FROM t",
		"SELECT CAST(a AS VARCHAR(10)) FROM t",
		"SELECT * FROM t WHERE a IN (1, 2, 3)",
		"SELECT * FROM t WHERE a IN (SELECT b FROM u)",
		"SELECT * FROM t WHERE a BETWEEN 1 AND 10",
		"SELECT * FROM t WHERE a IS NOT NULL",
		"SELECT * FROM t WHERE NOT (a = 1 OR b = 2)",
		"SELECT * FROM t WHERE name LIKE 'foo%'",
		"SELECT * FROM t WHERE EXISTS (SELECT 1 FROM u)",
		"SELECT count(DISTINCT a), sum(b) * 2 FROM t",
		"SELECT -a + 3.5, a || b FROM t",
	}

	for _, sql := range tests {
		t.Run(sql, func(t *testing.T) {
			mustQuery(t, sql)
		})
	}
}

func TestParseNonQueryStatements(t *testing.T) {
	tests := []struct {
		sql  string
		kind parser.StatementKind
	}{
		{"CREATE TABLE t (x int)", parser.KindDDL},
		{"DROP TABLE t", parser.KindDDL},
		{"ALTER TABLE t ADD COLUMN y int", parser.KindDDL},
		{"INSERT INTO t VALUES (1)", parser.KindDML},
		{"INSERT INTO t SELECT * FROM u", parser.KindDML},
		{"UPDATE t SET x = 1", parser.KindDML},
		{"DELETE FROM t WHERE x = 1", parser.KindDML},
		{"EXPLAIN SELECT * FROM t", parser.KindUtility},
		{"SHOW TABLES", parser.KindUtility},
		{"SET search_path = 'public'", parser.KindUtility},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			stmt, serr := parser.Parse(tt.sql)
			require.Nil(t, serr)
			assert.Equal(t, tt.kind, stmt.Kind())
		})
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"misspelled select", "SELEC * FROM t"},
		{"missing from table", "SELECT * FROM"},
		{"dangling where", "SELECT * FROM t WHERE"},
		{"limit without value", "SELECT * FROM t LIMIT"},
		{"fetch missing only", "SELECT * FROM t FETCH FIRST 10 ROWS"},
		{"unbalanced paren", "SELECT * FROM (SELECT 1"},
		{"trailing garbage", "SELECT 1 1 1 extra ("},
		{"two statements", "SELECT 1; SELECT 2"},
		{"trailing terminator", "SELECT 1;"},
		{"empty input", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, serr := parser.Parse(tt.sql)
			require.NotNil(t, serr, "expected syntax error, got %#v", stmt)
			assert.Positive(t, serr.Line)
			assert.NotEmpty(t, serr.Message)
		})
	}
}

func TestParseAfterTerminatorTrim(t *testing.T) {
	// Callers strip one trailing terminator before parsing; the trimmed
	// text must parse cleanly while the raw text does not.
	q := mustQuery(t, "SELECT 1")
	require.NotNil(t, q.Body)

	_, serr := parser.Parse("SELECT 1;")
	require.NotNil(t, serr)
}

func TestParseErrorPosition(t *testing.T) {
	_, serr := parser.Parse("SELECT *\nFROM WHERE")
	require.NotNil(t, serr)
	assert.Equal(t, 2, serr.Line)
}
