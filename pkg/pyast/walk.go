package pyast

// StmtFunc is called for each statement visited by WalkStmts.
// Return a non-nil error to stop the walk.
type StmtFunc func(stmt Stmt) error

// WalkStmts performs a pre-order traversal of body, descending into every
// nested block: function and class bodies, branches, loop bodies and their
// else clauses, with/try blocks, and match cases.
func WalkStmts(body []Stmt, fn StmtFunc) error {
	for _, stmt := range body {
		if stmt == nil {
			continue
		}
		if err := fn(stmt); err != nil {
			return err
		}
		for _, block := range Blocks(stmt) {
			if err := WalkStmts(block, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Blocks returns the statement lists nested directly inside stmt, in source order.
func Blocks(stmt Stmt) [][]Stmt {
	switch s := stmt.(type) {
	case *FunctionDef:
		return [][]Stmt{s.Body}
	case *ClassDef:
		return [][]Stmt{s.Body}
	case *If:
		return [][]Stmt{s.Body, s.Orelse}
	case *While:
		return [][]Stmt{s.Body, s.Orelse}
	case *For:
		return [][]Stmt{s.Body, s.Orelse}
	case *With:
		return [][]Stmt{s.Body}
	case *Try:
		blocks := make([][]Stmt, 0, len(s.Handlers)+3)
		blocks = append(blocks, s.Body)
		for _, handler := range s.Handlers {
			blocks = append(blocks, handler.Body)
		}
		return append(blocks, s.Orelse, s.Finalbody)
	case *GenericStmt:
		return s.Blocks
	default:
		return nil
	}
}

// StmtExprs returns the expressions owned directly by stmt, in source order.
// Expressions inside nested blocks are not included.
func StmtExprs(stmt Stmt) []Expr {
	var out exprList

	switch s := stmt.(type) {
	case *FunctionDef:
		out.add(s.Decorators...)
		out.addArgs(s.Args)
		out.add(s.Returns)
	case *ClassDef:
		out.add(s.Decorators...)
		out.add(s.Bases...)
		out.addKeywords(s.Keywords)
	case *Assign:
		out.add(s.Targets...)
		out.add(s.Value)
	case *AnnAssign:
		out.add(s.Target, s.Annotation, s.Value)
	case *AugAssign:
		out.add(s.Target, s.Value)
	case *Return:
		out.add(s.Value)
	case *ExprStmt:
		out.add(s.Value)
	case *If:
		out.add(s.Test)
	case *While:
		out.add(s.Test)
	case *For:
		out.add(s.Target, s.Iter)
	case *With:
		for _, item := range s.Items {
			out.add(item.Context, item.Vars)
		}
	case *Try:
		for _, handler := range s.Handlers {
			out.add(handler.Type)
		}
	case *GenericStmt:
		out.add(s.Exprs...)
	}

	return out
}

// ExprChildren returns the direct subexpressions of expr, in source order.
func ExprChildren(expr Expr) []Expr {
	var out exprList

	switch e := expr.(type) {
	case *Attribute:
		out.add(e.Value)
	case *Call:
		out.add(e.Func)
		out.add(e.Args...)
		out.addKeywords(e.Keywords)
	case *Subscript:
		out.add(e.Value, e.Slice)
	case *BinOp:
		out.add(e.Left, e.Right)
	case *BoolOp:
		out.add(e.Values...)
	case *UnaryOp:
		out.add(e.Operand)
	case *Compare:
		out.add(e.Left)
		out.add(e.Comparators...)
	case *IfExp:
		out.add(e.Body, e.Test, e.Orelse)
	case *Lambda:
		out.addArgs(e.Args)
		out.add(e.Body)
	case *Collection:
		out.add(e.Elts...)
	case *Starred:
		out.add(e.Value)
	case *GenericExpr:
		out.add(e.Children...)
	}

	return out
}

// InspectExpr traverses expr in pre-order, calling fn for each node.
// If fn returns false, the children of that node are skipped.
func InspectExpr(expr Expr, fn func(Expr) bool) {
	if expr == nil || !fn(expr) {
		return
	}
	for _, child := range ExprChildren(expr) {
		InspectExpr(child, fn)
	}
}

type exprList []Expr

func (l *exprList) add(exprs ...Expr) {
	for _, expr := range exprs {
		if expr != nil {
			*l = append(*l, expr)
		}
	}
}

func (l *exprList) addArgs(args []Arg) {
	for _, arg := range args {
		l.add(arg.Annotation, arg.Default)
	}
}

func (l *exprList) addKeywords(keywords []Keyword) {
	for _, kw := range keywords {
		l.add(kw.Value)
	}
}
