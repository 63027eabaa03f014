// Package token defines the lexical tokens for the rowcap SQL grammar.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT  // identifier
	NUMBER // 123, 45.67, 1e10
	STRING // 'hello'

	// Operators
	PLUS     // +
	MINUS    // -
	STAR     // *
	SLASH    // /
	PERCENT  // %
	DPIPE    // ||
	EQ       // =
	NE       // != or <>
	LT       // <
	GT       // >
	LE       // <=
	GE       // >=
	DOT      // .
	COMMA    // ,
	SEMI     // ;
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]

	// Keywords (alphabetical)
	ALL
	ALTER
	AND
	AS
	ASC
	BEGIN
	BETWEEN
	BY
	CASE
	CAST
	COMMIT
	CREATE
	CROSS
	DELETE
	DESC
	DESCRIBE
	DISTINCT
	DROP
	ELSE
	END
	EXCEPT
	EXISTS
	EXPLAIN
	FALSE
	FETCH
	FIRST
	FROM
	FULL
	GRANT
	GROUP
	HAVING
	IN
	INNER
	INSERT
	INTERSECT
	IS
	JOIN
	LAST
	LEFT
	LIKE
	LIMIT
	MERGE
	NEXT
	NOT
	NULL
	NULLS
	OFFSET
	ON
	ONLY
	OR
	ORDER
	OUTER
	RECURSIVE
	REVOKE
	RIGHT
	ROLLBACK
	ROW
	ROWS
	SELECT
	SET
	SHOW
	TABLE
	THEN
	TRUE
	TRUNCATE
	UNION
	UPDATE
	USE
	USING
	VALUES
	WHEN
	WHERE
	WITH
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",

	PLUS:     "+",
	MINUS:    "-",
	STAR:     "*",
	SLASH:    "/",
	PERCENT:  "%",
	DPIPE:    "||",
	EQ:       "=",
	NE:       "!=",
	LT:       "<",
	GT:       ">",
	LE:       "<=",
	GE:       ">=",
	DOT:      ".",
	COMMA:    ",",
	SEMI:     ";",
	LPAREN:   "(",
	RPAREN:   ")",
	LBRACKET: "[",
	RBRACKET: "]",

	ALL:       "ALL",
	ALTER:     "ALTER",
	AND:       "AND",
	AS:        "AS",
	ASC:       "ASC",
	BEGIN:     "BEGIN",
	BETWEEN:   "BETWEEN",
	BY:        "BY",
	CASE:      "CASE",
	CAST:      "CAST",
	COMMIT:    "COMMIT",
	CREATE:    "CREATE",
	CROSS:     "CROSS",
	DELETE:    "DELETE",
	DESC:      "DESC",
	DESCRIBE:  "DESCRIBE",
	DISTINCT:  "DISTINCT",
	DROP:      "DROP",
	ELSE:      "ELSE",
	END:       "END",
	EXCEPT:    "EXCEPT",
	EXISTS:    "EXISTS",
	EXPLAIN:   "EXPLAIN",
	FALSE:     "FALSE",
	FETCH:     "FETCH",
	FIRST:     "FIRST",
	FROM:      "FROM",
	FULL:      "FULL",
	GRANT:     "GRANT",
	GROUP:     "GROUP",
	HAVING:    "HAVING",
	IN:        "IN",
	INNER:     "INNER",
	INSERT:    "INSERT",
	INTERSECT: "INTERSECT",
	IS:        "IS",
	JOIN:      "JOIN",
	LAST:      "LAST",
	LEFT:      "LEFT",
	LIKE:      "LIKE",
	LIMIT:     "LIMIT",
	MERGE:     "MERGE",
	NEXT:      "NEXT",
	NOT:       "NOT",
	NULL:      "NULL",
	NULLS:     "NULLS",
	OFFSET:    "OFFSET",
	ON:        "ON",
	ONLY:      "ONLY",
	OR:        "OR",
	ORDER:     "ORDER",
	OUTER:     "OUTER",
	RECURSIVE: "RECURSIVE",
	REVOKE:    "REVOKE",
	RIGHT:     "RIGHT",
	ROLLBACK:  "ROLLBACK",
	ROW:       "ROW",
	ROWS:      "ROWS",
	SELECT:    "SELECT",
	SET:       "SET",
	SHOW:      "SHOW",
	TABLE:     "TABLE",
	THEN:      "THEN",
	TRUE:      "TRUE",
	TRUNCATE:  "TRUNCATE",
	UNION:     "UNION",
	UPDATE:    "UPDATE",
	USE:       "USE",
	USING:     "USING",
	VALUES:    "VALUES",
	WHEN:      "WHEN",
	WHERE:     "WHERE",
	WITH:      "WITH",
}

// keywords maps uppercase keyword spellings to their token types.
// Lookups happen on case-normalized text, so the keys are uppercase.
var keywords = map[string]TokenType{
	"ALL":       ALL,
	"ALTER":     ALTER,
	"AND":       AND,
	"AS":        AS,
	"ASC":       ASC,
	"BEGIN":     BEGIN,
	"BETWEEN":   BETWEEN,
	"BY":        BY,
	"CASE":      CASE,
	"CAST":      CAST,
	"COMMIT":    COMMIT,
	"CREATE":    CREATE,
	"CROSS":     CROSS,
	"DELETE":    DELETE,
	"DESC":      DESC,
	"DESCRIBE":  DESCRIBE,
	"DISTINCT":  DISTINCT,
	"DROP":      DROP,
	"ELSE":      ELSE,
	"END":       END,
	"EXCEPT":    EXCEPT,
	"EXISTS":    EXISTS,
	"EXPLAIN":   EXPLAIN,
	"FALSE":     FALSE,
	"FETCH":     FETCH,
	"FIRST":     FIRST,
	"FROM":      FROM,
	"FULL":      FULL,
	"GRANT":     GRANT,
	"GROUP":     GROUP,
	"HAVING":    HAVING,
	"IN":        IN,
	"INNER":     INNER,
	"INSERT":    INSERT,
	"INTERSECT": INTERSECT,
	"IS":        IS,
	"JOIN":      JOIN,
	"LAST":      LAST,
	"LEFT":      LEFT,
	"LIKE":      LIKE,
	"LIMIT":     LIMIT,
	"MERGE":     MERGE,
	"NEXT":      NEXT,
	"NOT":       NOT,
	"NULL":      NULL,
	"NULLS":     NULLS,
	"OFFSET":    OFFSET,
	"ON":        ON,
	"ONLY":      ONLY,
	"OR":        OR,
	"ORDER":     ORDER,
	"OUTER":     OUTER,
	"RECURSIVE": RECURSIVE,
	"REVOKE":    REVOKE,
	"RIGHT":     RIGHT,
	"ROLLBACK":  ROLLBACK,
	"ROW":       ROW,
	"ROWS":      ROWS,
	"SELECT":    SELECT,
	"SET":       SET,
	"SHOW":      SHOW,
	"TABLE":     TABLE,
	"THEN":      THEN,
	"TRUE":      TRUE,
	"TRUNCATE":  TRUNCATE,
	"UNION":     UNION,
	"UPDATE":    UPDATE,
	"USE":       USE,
	"USING":     USING,
	"VALUES":    VALUES,
	"WHEN":      WHEN,
	"WHERE":     WHERE,
	"WITH":      WITH,
}

// LookupIdent returns the token type for the given case-normalized identifier.
// If the identifier is a keyword, the keyword token type is returned.
// Otherwise, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t >= ALL && t <= WITH
}

// Token represents a lexical token with position information.
// Literal always holds the original source text, never the
// case-normalized form used for matching.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}
