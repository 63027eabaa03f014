package parser

// Statement represents a single parsed SQL statement.
type Statement interface {
	stmtNode()
	// Kind reports the broad statement family.
	Kind() StatementKind
}

// Expr represents an expression.
type Expr interface {
	exprNode()
}

// TableRef represents a table reference in a FROM clause.
type TableRef interface {
	tableRefNode()
}

// StatementKind classifies a statement at the top level.
type StatementKind int

const (
	KindQuery   StatementKind = iota // SELECT family, including WITH ... SELECT
	KindDDL                          // CREATE, DROP, ALTER, TRUNCATE
	KindDML                          // INSERT, UPDATE, DELETE, MERGE
	KindUtility                      // EXPLAIN, SHOW, DESCRIBE, SET, USE, BEGIN, COMMIT, ROLLBACK, GRANT, REVOKE
)

// String returns the string representation of the statement kind.
func (k StatementKind) String() string {
	switch k {
	case KindQuery:
		return "query"
	case KindDDL:
		return "ddl"
	case KindDML:
		return "dml"
	case KindUtility:
		return "utility"
	default:
		return "unknown"
	}
}

// ---------- Statement Types ----------

// QueryStmt represents a complete query: an optional WITH clause wrapping a
// query body with its trailing ORDER BY / OFFSET / row-limiting clauses.
type QueryStmt struct {
	With    *WithClause
	Body    *QueryTerm
	OrderBy []OrderByItem
	Offset  *OffsetClause
	Limit   *LimitClause // mutually exclusive with Fetch
	Fetch   *FetchClause
}

func (*QueryStmt) stmtNode() {}

// Kind implements Statement.
func (*QueryStmt) Kind() StatementKind { return KindQuery }

// RawStmt represents a recognized non-query statement (DDL, DML, utility).
// Its body is consumed permissively: rowcap classifies these statements but
// never rewrites them, so only lexical validity is checked.
type RawStmt struct {
	kind    StatementKind
	Leading string // original text of the leading keyword
}

func (*RawStmt) stmtNode() {}

// Kind implements Statement.
func (s *RawStmt) Kind() StatementKind { return s.kind }

// WithClause represents a WITH clause with CTEs.
type WithClause struct {
	Recursive bool
	CTEs      []*CTE
}

// CTE represents a Common Table Expression.
type CTE struct {
	Name    string
	Columns []string
	Query   *QueryStmt
}

// QueryTerm represents a query body with possible set operations.
type QueryTerm struct {
	Left  *QueryPrimary
	Op    SetOpType  // UNION, INTERSECT, EXCEPT, or none
	All   bool       // UNION ALL
	Right *QueryTerm // for chained set operations
}

// SetOpType represents the type of set operation.
type SetOpType string

// SetOpType constants for set operations in queries.
const (
	SetOpNone      SetOpType = ""
	SetOpUnion     SetOpType = "UNION"
	SetOpIntersect SetOpType = "INTERSECT"
	SetOpExcept    SetOpType = "EXCEPT"
)

// QueryPrimary is a leaf of the set-operation tree: a SELECT core, a VALUES
// list, a TABLE reference, or a parenthesized query.
type QueryPrimary struct {
	Select *SelectCore
	Values [][]Expr
	Table  string     // TABLE name shorthand
	Sub    *QueryStmt // parenthesized query
}

// SelectCore represents the core SELECT clause.
type SelectCore struct {
	Distinct bool
	Columns  []SelectItem
	From     *FromClause
	Where    Expr
	GroupBy  []Expr
	Having   Expr
}

// SelectItem represents one item in the select list.
type SelectItem struct {
	Expr  Expr
	Alias string
}

// FromClause represents the FROM clause.
type FromClause struct {
	Source TableRef
	Joins  []*Join
}

// Join represents a JOIN in a FROM clause.
type Join struct {
	Type      JoinType
	Right     TableRef
	Condition Expr     // ON condition
	Using     []string // USING columns
}

// JoinType represents the type of a join.
type JoinType string

// JoinType constants.
const (
	JoinInner JoinType = "INNER"
	JoinLeft  JoinType = "LEFT"
	JoinRight JoinType = "RIGHT"
	JoinFull  JoinType = "FULL"
	JoinCross JoinType = "CROSS"
)

// TableName is a named table reference with optional alias.
type TableName struct {
	Name  string // possibly schema-qualified, joined with dots
	Alias string
}

func (*TableName) tableRefNode() {}

// DerivedTable is a subquery in a FROM clause.
type DerivedTable struct {
	Query *QueryStmt
	Alias string
}

func (*DerivedTable) tableRefNode() {}

// OrderByItem represents one ORDER BY element.
type OrderByItem struct {
	Expr       Expr
	Desc       bool
	NullsFirst bool
	NullsLast  bool
}

// OffsetClause represents OFFSET n [ROW|ROWS].
type OffsetClause struct {
	Count string // literal numeric text
}

// LimitClause represents LIMIT n or LIMIT ALL. Value holds the literal text
// exactly as it appeared in source ("500", "all", ...).
type LimitClause struct {
	Value string
}

// FetchClause represents FETCH {FIRST|NEXT} n {ROW|ROWS} ONLY. Count holds
// the literal numeric text exactly as it appeared in source.
type FetchClause struct {
	Count string
}

// ---------- Expression Types ----------

// Ident is a possibly-qualified column or table reference.
type Ident struct {
	Parts []string
}

func (*Ident) exprNode() {}

// Star is a bare * or qualified t.* select item.
type Star struct {
	Qualifier []string
}

func (*Star) exprNode() {}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value string
}

func (*NumberLit) exprNode() {}

// StringLit is a string literal.
type StringLit struct {
	Value string
}

func (*StringLit) exprNode() {}

// BoolLit is TRUE or FALSE.
type BoolLit struct {
	Value bool
}

func (*BoolLit) exprNode() {}

// NullLit is the NULL literal.
type NullLit struct{}

func (*NullLit) exprNode() {}

// BinaryExpr is a binary operation.
type BinaryExpr struct {
	Left  Expr
	Op    string
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr is a unary operation (NOT, -).
type UnaryExpr struct {
	Op   string
	Expr Expr
}

func (*UnaryExpr) exprNode() {}

// FuncCall is a function invocation.
type FuncCall struct {
	Name     string
	Distinct bool
	Star     bool // count(*)
	Args     []Expr
}

func (*FuncCall) exprNode() {}

// CaseExpr is a CASE expression.
type CaseExpr struct {
	Operand Expr // nil for searched CASE
	Whens   []CaseWhen
	Else    Expr
}

// CaseWhen is one WHEN ... THEN ... arm.
type CaseWhen struct {
	When Expr
	Then Expr
}

func (*CaseExpr) exprNode() {}

// CastExpr is CAST(expr AS type).
type CastExpr struct {
	Expr Expr
	Type string
}

func (*CastExpr) exprNode() {}

// SubqueryExpr is a parenthesized query used as an expression
// (scalar subquery, IN (...), EXISTS (...)).
type SubqueryExpr struct {
	Query  *QueryStmt
	Exists bool
}

func (*SubqueryExpr) exprNode() {}

// ListExpr is a parenthesized expression list, as in IN (1, 2, 3).
type ListExpr struct {
	Items []Expr
}

func (*ListExpr) exprNode() {}

// BetweenExpr is expr [NOT] BETWEEN low AND high.
type BetweenExpr struct {
	Expr Expr
	Not  bool
	Low  Expr
	High Expr
}

func (*BetweenExpr) exprNode() {}

// InExpr is expr [NOT] IN (list | subquery).
type InExpr struct {
	Expr Expr
	Not  bool
	List Expr // ListExpr or SubqueryExpr
}

func (*InExpr) exprNode() {}

// IsNullExpr is expr IS [NOT] NULL.
type IsNullExpr struct {
	Expr Expr
	Not  bool
}

func (*IsNullExpr) exprNode() {}
