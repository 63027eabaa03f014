// Package parser provides the SQL grammar front-end for rowcap.
//
// # Usage
//
//	stmt, serr := parser.Parse("SELECT a, b FROM t LIMIT 500")
//	if serr != nil {
//	    // syntax error with line/column/message
//	}
//
// # Grammar Overview
//
// The parser implements a recursive descent parser for one SQL statement:
//
//	statement    → query | raw_statement
//	query        → [WITH cte_list] query_term [ORDER BY order_list]
//	               [OFFSET n [ROW|ROWS]] [LIMIT (n|ALL) | FETCH (FIRST|NEXT) n (ROW|ROWS) ONLY]
//	query_term   → query_primary [(UNION|INTERSECT|EXCEPT) [ALL|DISTINCT] query_term]
//	query_primary→ select_core | VALUES row_list | TABLE name | "(" query ")"
//	select_core  → SELECT [DISTINCT|ALL] select_list [FROM from_clause]
//	               [WHERE expr] [GROUP BY expr_list] [HAVING expr]
//
// Non-query statements (DDL, DML, utility) are recognized by their leading
// keyword and consumed permissively: rowcap classifies them but never
// rewrites them, so only lexical validity matters.
//
// Parser, lexer, and error sink instances are created fresh per Parse call
// and must not be reused: the sink retains sticky first-error state.
package parser

import (
	"github.com/leapstack-labs/rowcap/pkg/token"
)

// Parser parses a single SQL statement.
type Parser struct {
	lexer *Lexer
	token token.Token // current token
	peek  token.Token // lookahead token
	sink  *ErrorSink
}

// newParser creates a parser for the given SQL input reporting into sink.
func newParser(sql string, sink *ErrorSink) *Parser {
	p := &Parser{
		lexer: NewLexer(sql, sink),
		sink:  sink,
	}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses one SQL statement. On success it returns the statement and a
// nil error. On failure it returns the first syntax error encountered during
// tokenizing or parsing; later errors are discarded.
//
// The input must not carry a statement terminator: callers strip at most one
// trailing ";" beforehand (rowlimit.Trim), so a terminator that survives to
// this point marks a second statement or a doubled terminator, both errors.
func Parse(sql string) (Statement, *SyntaxError) {
	sink := &ErrorSink{}
	p := newParser(sql, sink)
	stmt := p.parseStatement()

	if !p.check(token.EOF) {
		p.addError(ErrUnexpectedInput, p.token.Type)
	}

	if sink.HasError() {
		return nil, sink.Err()
	}
	return stmt, nil
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise records an error.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(ErrUnexpectedToken, p.token.Type, t)
	return false
}

// addError records a parse error at the current token.
func (p *Parser) addError(format string, args ...any) {
	p.sink.Record(p.token.Pos, format, args...)
}

// isQueryStart returns true if t can begin a query production.
func isQueryStart(t token.TokenType) bool {
	switch t {
	case token.SELECT, token.WITH, token.VALUES, token.TABLE, token.LPAREN:
		return true
	}
	return false
}
