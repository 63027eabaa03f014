package parser

// Walk traverses a parse tree depth-first and calls fn for each node.
// If fn returns false, traversal below that node stops.
func Walk(node any, fn func(node any) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	walkNode(node, fn)
}

func walkNode(node any, fn func(node any) bool) {
	switch n := node.(type) {
	case *QueryStmt:
		if n == nil {
			return
		}
		Walk(n.With, fn)
		Walk(n.Body, fn)
		for _, item := range n.OrderBy {
			Walk(item.Expr, fn)
		}

	case *RawStmt:
		// Leaf node

	case *WithClause:
		if n == nil {
			return
		}
		for _, cte := range n.CTEs {
			Walk(cte, fn)
		}

	case *CTE:
		if n == nil {
			return
		}
		Walk(n.Query, fn)

	case *QueryTerm:
		if n == nil {
			return
		}
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *QueryPrimary:
		if n == nil {
			return
		}
		Walk(n.Select, fn)
		for _, row := range n.Values {
			for _, e := range row {
				Walk(e, fn)
			}
		}
		Walk(n.Sub, fn)

	case *SelectCore:
		if n == nil {
			return
		}
		for _, col := range n.Columns {
			Walk(col.Expr, fn)
		}
		Walk(n.From, fn)
		Walk(n.Where, fn)
		for _, e := range n.GroupBy {
			Walk(e, fn)
		}
		Walk(n.Having, fn)

	case *FromClause:
		if n == nil {
			return
		}
		Walk(n.Source, fn)
		for _, join := range n.Joins {
			Walk(join, fn)
		}

	case *Join:
		if n == nil {
			return
		}
		Walk(n.Right, fn)
		Walk(n.Condition, fn)

	case *TableName:
		// Leaf node

	case *DerivedTable:
		if n == nil {
			return
		}
		Walk(n.Query, fn)

	case *BinaryExpr:
		if n == nil {
			return
		}
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *UnaryExpr:
		if n == nil {
			return
		}
		Walk(n.Expr, fn)

	case *FuncCall:
		if n == nil {
			return
		}
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *CaseExpr:
		if n == nil {
			return
		}
		Walk(n.Operand, fn)
		for _, arm := range n.Whens {
			Walk(arm.When, fn)
			Walk(arm.Then, fn)
		}
		Walk(n.Else, fn)

	case *CastExpr:
		if n == nil {
			return
		}
		Walk(n.Expr, fn)

	case *SubqueryExpr:
		if n == nil {
			return
		}
		Walk(n.Query, fn)

	case *ListExpr:
		if n == nil {
			return
		}
		for _, item := range n.Items {
			Walk(item, fn)
		}

	case *BetweenExpr:
		if n == nil {
			return
		}
		Walk(n.Expr, fn)
		Walk(n.Low, fn)
		Walk(n.High, fn)

	case *InExpr:
		if n == nil {
			return
		}
		Walk(n.Expr, fn)
		Walk(n.List, fn)

	case *IsNullExpr:
		if n == nil {
			return
		}
		Walk(n.Expr, fn)
	}
}
