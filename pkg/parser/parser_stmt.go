package parser

import (
	"github.com/leapstack-labs/rowcap/pkg/token"
)

// parseStatement parses one statement. The leading token decides the family:
// query productions get a full parse, everything else is classified and
// consumed permissively.
func (p *Parser) parseStatement() Statement {
	switch p.token.Type {
	case token.SELECT, token.WITH, token.VALUES, token.TABLE, token.LPAREN:
		return p.parseQuery()
	case token.CREATE, token.DROP, token.ALTER, token.TRUNCATE:
		return p.parseRawStatement(KindDDL)
	case token.INSERT, token.UPDATE, token.DELETE, token.MERGE:
		return p.parseRawStatement(KindDML)
	case token.EXPLAIN, token.SHOW, token.DESCRIBE, token.SET, token.USE,
		token.BEGIN, token.COMMIT, token.ROLLBACK, token.GRANT, token.REVOKE:
		return p.parseRawStatement(KindUtility)
	default:
		p.addError(ErrUnexpectedInput, p.token.Type)
		return nil
	}
}

// parseRawStatement consumes a non-query statement to end of input. The
// lexer still reports illegal characters and unterminated literals through
// the sink; everything lexically sound passes.
func (p *Parser) parseRawStatement(kind StatementKind) *RawStmt {
	stmt := &RawStmt{kind: kind, Leading: p.token.Literal}
	for !p.check(token.EOF) && !p.check(token.SEMI) {
		p.nextToken()
	}
	return stmt
}

// ---------- Query ----------

// parseQuery parses [WITH ...] query_term with trailing ORDER BY, OFFSET,
// and row-limiting clauses. LIMIT and FETCH FIRST are mutually exclusive.
func (p *Parser) parseQuery() *QueryStmt {
	q := &QueryStmt{}

	if p.check(token.WITH) {
		q.With = p.parseWithClause()
	}

	q.Body = p.parseQueryTerm()

	if p.match(token.ORDER) {
		p.expect(token.BY)
		q.OrderBy = p.parseOrderByList()
	}

	for {
		switch p.token.Type {
		case token.OFFSET:
			if q.Offset != nil {
				p.addError(ErrDuplicateClause, "OFFSET")
			}
			q.Offset = p.parseOffsetClause()
		case token.LIMIT:
			if q.Limit != nil {
				p.addError(ErrDuplicateClause, "LIMIT")
			}
			if q.Fetch != nil {
				p.addError(ErrConflictingLimit)
			}
			q.Limit = p.parseLimitClause()
		case token.FETCH:
			if q.Fetch != nil {
				p.addError(ErrDuplicateClause, "FETCH FIRST")
			}
			if q.Limit != nil {
				p.addError(ErrConflictingLimit)
			}
			q.Fetch = p.parseFetchClause()
		default:
			return q
		}
	}
}

// parseWithClause parses WITH [RECURSIVE] name [(cols)] AS (query), ...
func (p *Parser) parseWithClause() *WithClause {
	w := &WithClause{}
	p.expect(token.WITH)
	w.Recursive = p.match(token.RECURSIVE)

	for {
		cte := &CTE{}
		if p.check(token.IDENT) {
			cte.Name = p.token.Literal
			p.nextToken()
		} else {
			p.addError(ErrUnexpectedToken, p.token.Type, token.IDENT)
			return w
		}

		if p.match(token.LPAREN) {
			for {
				if !p.check(token.IDENT) {
					p.addError(ErrUnexpectedToken, p.token.Type, token.IDENT)
					break
				}
				cte.Columns = append(cte.Columns, p.token.Literal)
				p.nextToken()
				if !p.match(token.COMMA) {
					break
				}
			}
			p.expect(token.RPAREN)
		}

		p.expect(token.AS)
		p.expect(token.LPAREN)
		cte.Query = p.parseQuery()
		p.expect(token.RPAREN)

		w.CTEs = append(w.CTEs, cte)
		if !p.match(token.COMMA) {
			return w
		}
	}
}

// parseQueryTerm parses a query primary with optional set operations.
func (p *Parser) parseQueryTerm() *QueryTerm {
	term := &QueryTerm{Left: p.parseQueryPrimary()}

	var op SetOpType
	switch p.token.Type {
	case token.UNION:
		op = SetOpUnion
	case token.INTERSECT:
		op = SetOpIntersect
	case token.EXCEPT:
		op = SetOpExcept
	default:
		return term
	}
	p.nextToken()

	term.Op = op
	term.All = p.match(token.ALL)
	if !term.All {
		p.match(token.DISTINCT)
	}
	term.Right = p.parseQueryTerm()
	return term
}

// parseQueryPrimary parses one leaf of the set-operation tree.
func (p *Parser) parseQueryPrimary() *QueryPrimary {
	switch p.token.Type {
	case token.SELECT:
		return &QueryPrimary{Select: p.parseSelectCore()}
	case token.VALUES:
		return &QueryPrimary{Values: p.parseValuesRows()}
	case token.TABLE:
		p.nextToken()
		name := p.parseQualifiedName()
		return &QueryPrimary{Table: name}
	case token.LPAREN:
		p.nextToken()
		sub := p.parseQuery()
		p.expect(token.RPAREN)
		return &QueryPrimary{Sub: sub}
	default:
		p.addError(ErrUnexpectedToken, p.token.Type, token.SELECT)
		p.nextToken()
		return &QueryPrimary{}
	}
}

// parseValuesRows parses VALUES (a, b), (c, d), ...
func (p *Parser) parseValuesRows() [][]Expr {
	p.expect(token.VALUES)
	var rows [][]Expr
	for {
		p.expect(token.LPAREN)
		row := p.parseExpressionList()
		p.expect(token.RPAREN)
		rows = append(rows, row)
		if !p.match(token.COMMA) {
			return rows
		}
	}
}

// parseSelectCore parses SELECT ... [FROM] [WHERE] [GROUP BY] [HAVING].
func (p *Parser) parseSelectCore() *SelectCore {
	core := &SelectCore{}
	p.expect(token.SELECT)

	if p.match(token.DISTINCT) {
		core.Distinct = true
	} else {
		p.match(token.ALL)
	}

	core.Columns = p.parseSelectList()

	if p.match(token.FROM) {
		core.From = p.parseFromClause()
	}

	if p.match(token.WHERE) {
		core.Where = p.parseExpression()
	}

	if p.match(token.GROUP) {
		p.expect(token.BY)
		core.GroupBy = p.parseExpressionList()
	}

	if p.match(token.HAVING) {
		core.Having = p.parseExpression()
	}

	return core
}

// parseSelectList parses the comma-separated select items.
func (p *Parser) parseSelectList() []SelectItem {
	var items []SelectItem
	for {
		items = append(items, p.parseSelectItem())
		if !p.match(token.COMMA) {
			return items
		}
	}
}

// parseSelectItem parses one select item with optional alias.
func (p *Parser) parseSelectItem() SelectItem {
	item := SelectItem{Expr: p.parseExpression()}

	if p.match(token.AS) {
		if p.check(token.IDENT) {
			item.Alias = p.token.Literal
			p.nextToken()
		} else {
			p.addError(ErrUnexpectedToken, p.token.Type, token.IDENT)
		}
	} else if p.check(token.IDENT) {
		// Implicit alias
		item.Alias = p.token.Literal
		p.nextToken()
	}
	return item
}

// ---------- FROM Clause ----------

// parseFromClause parses the table references and joins after FROM.
func (p *Parser) parseFromClause() *FromClause {
	from := &FromClause{Source: p.parseTableRef()}

	for {
		switch p.token.Type {
		case token.COMMA:
			p.nextToken()
			from.Joins = append(from.Joins, &Join{Type: JoinCross, Right: p.parseTableRef()})
		case token.JOIN, token.INNER, token.LEFT, token.RIGHT, token.FULL, token.CROSS:
			from.Joins = append(from.Joins, p.parseJoin())
		default:
			return from
		}
	}
}

// parseJoin parses one JOIN with its optional ON/USING condition.
func (p *Parser) parseJoin() *Join {
	join := &Join{Type: JoinInner}

	switch p.token.Type {
	case token.LEFT:
		join.Type = JoinLeft
		p.nextToken()
		p.match(token.OUTER)
	case token.RIGHT:
		join.Type = JoinRight
		p.nextToken()
		p.match(token.OUTER)
	case token.FULL:
		join.Type = JoinFull
		p.nextToken()
		p.match(token.OUTER)
	case token.CROSS:
		join.Type = JoinCross
		p.nextToken()
	case token.INNER:
		p.nextToken()
	}
	p.expect(token.JOIN)

	join.Right = p.parseTableRef()

	switch {
	case join.Type == JoinCross:
		// no condition
	case p.match(token.ON):
		join.Condition = p.parseExpression()
	case p.match(token.USING):
		p.expect(token.LPAREN)
		for {
			if !p.check(token.IDENT) {
				p.addError(ErrUnexpectedToken, p.token.Type, token.IDENT)
				break
			}
			join.Using = append(join.Using, p.token.Literal)
			p.nextToken()
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN)
	}
	return join
}

// parseTableRef parses a named table or a derived table with optional alias.
func (p *Parser) parseTableRef() TableRef {
	if p.match(token.LPAREN) {
		sub := p.parseQuery()
		p.expect(token.RPAREN)
		d := &DerivedTable{Query: sub}
		d.Alias = p.parseOptionalAlias()
		return d
	}

	if !p.check(token.IDENT) {
		p.addError(ErrUnexpectedToken, p.token.Type, token.IDENT)
		return &TableName{}
	}
	t := &TableName{Name: p.parseQualifiedName()}
	t.Alias = p.parseOptionalAlias()
	return t
}

// parseOptionalAlias consumes an [AS] alias if present.
func (p *Parser) parseOptionalAlias() string {
	if p.match(token.AS) {
		if p.check(token.IDENT) {
			alias := p.token.Literal
			p.nextToken()
			return alias
		}
		p.addError(ErrUnexpectedToken, p.token.Type, token.IDENT)
		return ""
	}
	if p.check(token.IDENT) {
		alias := p.token.Literal
		p.nextToken()
		return alias
	}
	return ""
}

// parseQualifiedName parses ident(.ident)* into a dotted string.
func (p *Parser) parseQualifiedName() string {
	if !p.check(token.IDENT) {
		p.addError(ErrUnexpectedToken, p.token.Type, token.IDENT)
		return ""
	}
	name := p.token.Literal
	p.nextToken()
	for p.check(token.DOT) && p.checkPeek(token.IDENT) {
		p.nextToken()
		name += "." + p.token.Literal
		p.nextToken()
	}
	return name
}

// ---------- Trailing Clauses ----------

// parseOrderByList parses expr [ASC|DESC] [NULLS FIRST|LAST], ...
func (p *Parser) parseOrderByList() []OrderByItem {
	var items []OrderByItem
	for {
		item := OrderByItem{Expr: p.parseExpression()}
		switch {
		case p.match(token.DESC):
			item.Desc = true
		case p.match(token.ASC):
		}
		if p.match(token.NULLS) {
			switch {
			case p.match(token.FIRST):
				item.NullsFirst = true
			case p.match(token.LAST):
				item.NullsLast = true
			default:
				p.addError(ErrUnexpectedToken, p.token.Type, token.FIRST)
			}
		}
		items = append(items, item)
		if !p.match(token.COMMA) {
			return items
		}
	}
}

// parseOffsetClause parses OFFSET n [ROW|ROWS].
func (p *Parser) parseOffsetClause() *OffsetClause {
	p.expect(token.OFFSET)
	c := &OffsetClause{}
	if p.check(token.NUMBER) {
		c.Count = p.token.Literal
		p.nextToken()
	} else {
		p.addError(ErrUnexpectedToken, p.token.Type, token.NUMBER)
	}
	if !p.match(token.ROWS) {
		p.match(token.ROW)
	}
	return c
}

// parseLimitClause parses LIMIT n or LIMIT ALL. The literal source text of
// the value is retained for the rewriter.
func (p *Parser) parseLimitClause() *LimitClause {
	p.expect(token.LIMIT)
	c := &LimitClause{}
	switch p.token.Type {
	case token.NUMBER, token.ALL:
		c.Value = p.token.Literal
		p.nextToken()
	default:
		p.addError(ErrUnexpectedToken, p.token.Type, token.NUMBER)
	}
	return c
}

// parseFetchClause parses FETCH {FIRST|NEXT} n {ROW|ROWS} ONLY. The literal
// source text of the count is retained for the rewriter.
func (p *Parser) parseFetchClause() *FetchClause {
	p.expect(token.FETCH)
	if !p.match(token.FIRST) && !p.match(token.NEXT) {
		p.addError(ErrUnexpectedToken, p.token.Type, token.FIRST)
	}
	c := &FetchClause{}
	if p.check(token.NUMBER) {
		c.Count = p.token.Literal
		p.nextToken()
	} else {
		p.addError(ErrUnexpectedToken, p.token.Type, token.NUMBER)
	}
	if !p.match(token.ROWS) && !p.match(token.ROW) {
		p.addError(ErrUnexpectedToken, p.token.Type, token.ROWS)
	}
	p.expect(token.ONLY)
	return c
}
