package parser

import (
	"strings"

	"github.com/leapstack-labs/rowcap/pkg/token"
)

// Expression parsing by precedence climbing:
//
//	expr        → or
//	or          → and (OR and)*
//	and         → not (AND not)*
//	not         → NOT not | comparison
//	comparison  → additive [(=|!=|<|>|<=|>=) additive
//	              | IS [NOT] NULL | [NOT] BETWEEN additive AND additive
//	              | [NOT] IN "(" (query|expr_list) ")" | [NOT] LIKE additive]
//	additive    → multiplicative ((+|-|"||") multiplicative)*
//	multiplicative → unary ((*|/|%) unary)*
//	unary       → (-|+) unary | primary

// parseExpression parses a full expression.
func (p *Parser) parseExpression() Expr {
	return p.parseOr()
}

// parseExpressionList parses a comma-separated list of expressions.
func (p *Parser) parseExpressionList() []Expr {
	var exprs []Expr
	for {
		exprs = append(exprs, p.parseExpression())
		if !p.match(token.COMMA) {
			return exprs
		}
	}
}

func (p *Parser) parseOr() Expr {
	left := p.parseAnd()
	for p.match(token.OR) {
		left = &BinaryExpr{Left: left, Op: "OR", Right: p.parseAnd()}
	}
	return left
}

func (p *Parser) parseAnd() Expr {
	left := p.parseNot()
	for p.match(token.AND) {
		left = &BinaryExpr{Left: left, Op: "AND", Right: p.parseNot()}
	}
	return left
}

func (p *Parser) parseNot() Expr {
	if p.match(token.NOT) {
		return &UnaryExpr{Op: "NOT", Expr: p.parseNot()}
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() Expr {
	left := p.parseAdditive()

	switch p.token.Type {
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE:
		op := p.token.Type.String()
		p.nextToken()
		return &BinaryExpr{Left: left, Op: op, Right: p.parseAdditive()}

	case token.IS:
		p.nextToken()
		not := p.match(token.NOT)
		switch p.token.Type {
		case token.NULL:
			p.nextToken()
			return &IsNullExpr{Expr: left, Not: not}
		case token.TRUE, token.FALSE:
			val := p.token.Type == token.TRUE
			p.nextToken()
			right := Expr(&BoolLit{Value: val})
			if not {
				right = &UnaryExpr{Op: "NOT", Expr: right}
			}
			return &BinaryExpr{Left: left, Op: "IS", Right: right}
		default:
			p.addError(ErrUnexpectedToken, p.token.Type, token.NULL)
			return left
		}

	case token.BETWEEN:
		return p.parseBetween(left, false)

	case token.IN:
		return p.parseIn(left, false)

	case token.LIKE:
		p.nextToken()
		return &BinaryExpr{Left: left, Op: "LIKE", Right: p.parseAdditive()}

	case token.NOT:
		// NOT BETWEEN / NOT IN / NOT LIKE
		switch p.peek.Type {
		case token.BETWEEN:
			p.nextToken()
			return p.parseBetween(left, true)
		case token.IN:
			p.nextToken()
			return p.parseIn(left, true)
		case token.LIKE:
			p.nextToken()
			p.nextToken()
			return &UnaryExpr{Op: "NOT", Expr: &BinaryExpr{Left: left, Op: "LIKE", Right: p.parseAdditive()}}
		}
	}
	return left
}

// parseBetween parses [NOT] BETWEEN low AND high with left already parsed.
func (p *Parser) parseBetween(left Expr, not bool) Expr {
	p.expect(token.BETWEEN)
	low := p.parseAdditive()
	p.expect(token.AND)
	high := p.parseAdditive()
	return &BetweenExpr{Expr: left, Not: not, Low: low, High: high}
}

// parseIn parses [NOT] IN (list | subquery) with left already parsed.
func (p *Parser) parseIn(left Expr, not bool) Expr {
	p.expect(token.IN)
	p.expect(token.LPAREN)

	var list Expr
	if isQueryStart(p.token.Type) && !p.check(token.LPAREN) {
		list = &SubqueryExpr{Query: p.parseQuery()}
	} else {
		list = &ListExpr{Items: p.parseExpressionList()}
	}
	p.expect(token.RPAREN)
	return &InExpr{Expr: left, Not: not, List: list}
}

func (p *Parser) parseAdditive() Expr {
	left := p.parseMultiplicative()
	for {
		var op string
		switch p.token.Type {
		case token.PLUS:
			op = "+"
		case token.MINUS:
			op = "-"
		case token.DPIPE:
			op = "||"
		default:
			return left
		}
		p.nextToken()
		left = &BinaryExpr{Left: left, Op: op, Right: p.parseMultiplicative()}
	}
}

func (p *Parser) parseMultiplicative() Expr {
	left := p.parseUnary()
	for {
		var op string
		switch p.token.Type {
		case token.STAR:
			op = "*"
		case token.SLASH:
			op = "/"
		case token.PERCENT:
			op = "%"
		default:
			return left
		}
		p.nextToken()
		left = &BinaryExpr{Left: left, Op: op, Right: p.parseUnary()}
	}
}

func (p *Parser) parseUnary() Expr {
	switch p.token.Type {
	case token.MINUS:
		p.nextToken()
		return &UnaryExpr{Op: "-", Expr: p.parseUnary()}
	case token.PLUS:
		p.nextToken()
		return p.parseUnary()
	}
	return p.parsePrimaryExpr()
}

// parsePrimaryExpr parses literals, references, function calls, CASE, CAST,
// EXISTS, and parenthesized expressions or subqueries.
func (p *Parser) parsePrimaryExpr() Expr {
	switch p.token.Type {
	case token.NUMBER:
		e := &NumberLit{Value: p.token.Literal}
		p.nextToken()
		return e

	case token.STRING:
		e := &StringLit{Value: p.token.Literal}
		p.nextToken()
		return e

	case token.TRUE:
		p.nextToken()
		return &BoolLit{Value: true}

	case token.FALSE:
		p.nextToken()
		return &BoolLit{Value: false}

	case token.NULL:
		p.nextToken()
		return &NullLit{}

	case token.STAR:
		p.nextToken()
		return &Star{}

	case token.CASE:
		return p.parseCase()

	case token.CAST:
		return p.parseCast()

	case token.EXISTS:
		p.nextToken()
		p.expect(token.LPAREN)
		sub := &SubqueryExpr{Query: p.parseQuery(), Exists: true}
		p.expect(token.RPAREN)
		return sub

	case token.LPAREN:
		p.nextToken()
		if isQueryStart(p.token.Type) && !p.check(token.LPAREN) {
			sub := &SubqueryExpr{Query: p.parseQuery()}
			p.expect(token.RPAREN)
			return sub
		}
		items := p.parseExpressionList()
		p.expect(token.RPAREN)
		if len(items) == 1 {
			return items[0]
		}
		return &ListExpr{Items: items}

	case token.IDENT:
		return p.parseReference()

	default:
		p.addError(ErrUnexpectedInput, p.token.Type)
		p.nextToken()
		return nil
	}
}

// parseReference parses an identifier chain: a column reference, a qualified
// star, or a function call.
func (p *Parser) parseReference() Expr {
	parts := []string{p.token.Literal}
	p.nextToken()

	for p.check(token.DOT) {
		switch p.peek.Type {
		case token.IDENT:
			p.nextToken()
			parts = append(parts, p.token.Literal)
			p.nextToken()
		case token.STAR:
			p.nextToken()
			p.nextToken()
			return &Star{Qualifier: parts}
		default:
			p.nextToken()
			p.addError(ErrUnexpectedToken, p.token.Type, token.IDENT)
			return &Ident{Parts: parts}
		}
	}

	if p.check(token.LPAREN) {
		return p.parseFuncCall(strings.Join(parts, "."))
	}
	return &Ident{Parts: parts}
}

// parseFuncCall parses the argument list of a function invocation.
func (p *Parser) parseFuncCall(name string) Expr {
	fn := &FuncCall{Name: name}
	p.expect(token.LPAREN)

	if p.match(token.RPAREN) {
		return fn
	}
	if p.check(token.STAR) && p.checkPeek(token.RPAREN) {
		fn.Star = true
		p.nextToken()
		p.nextToken()
		return fn
	}
	fn.Distinct = p.match(token.DISTINCT)
	fn.Args = p.parseExpressionList()
	p.expect(token.RPAREN)
	return fn
}

// parseCase parses simple and searched CASE expressions.
func (p *Parser) parseCase() Expr {
	p.expect(token.CASE)
	c := &CaseExpr{}

	if !p.check(token.WHEN) {
		c.Operand = p.parseExpression()
	}

	for p.match(token.WHEN) {
		arm := CaseWhen{When: p.parseExpression()}
		p.expect(token.THEN)
		arm.Then = p.parseExpression()
		c.Whens = append(c.Whens, arm)
	}
	if len(c.Whens) == 0 {
		p.addError(ErrUnexpectedToken, p.token.Type, token.WHEN)
	}

	if p.match(token.ELSE) {
		c.Else = p.parseExpression()
	}
	p.expect(token.END)
	return c
}

// parseCast parses CAST(expr AS type). Type names may be multi-word
// (DOUBLE PRECISION) and carry a precision suffix (VARCHAR(10)).
func (p *Parser) parseCast() Expr {
	p.expect(token.CAST)
	p.expect(token.LPAREN)
	c := &CastExpr{Expr: p.parseExpression()}
	p.expect(token.AS)

	var parts []string
	for p.check(token.IDENT) {
		parts = append(parts, p.token.Literal)
		p.nextToken()
	}
	if len(parts) == 0 {
		p.addError(ErrUnexpectedToken, p.token.Type, token.IDENT)
	} else if p.match(token.LPAREN) {
		precision := "("
		for p.check(token.NUMBER) || p.check(token.COMMA) {
			precision += p.token.Literal
			p.nextToken()
		}
		p.expect(token.RPAREN)
		parts[len(parts)-1] += precision + ")"
	}
	c.Type = strings.Join(parts, " ")

	p.expect(token.RPAREN)
	return c
}
