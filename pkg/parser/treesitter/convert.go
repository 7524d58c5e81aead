package treesitter

import (
	"bytes"
	"strings"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/yaklabco/gopylint/pkg/pyast"
)

// converter maps the tree-sitter-python concrete syntax tree onto pyast.
type converter struct {
	src []byte
}

func (c *converter) text(n *sitter.Node) string {
	return string(c.src[n.StartByte():n.EndByte()])
}

// pos returns the 1-based position of n, with the column counted in characters.
func (c *converter) pos(n *sitter.Node) pyast.Pos {
	start := int(n.StartByte())
	if start > len(c.src) {
		start = len(c.src)
	}
	lineStart := bytes.LastIndexByte(c.src[:start], '\n') + 1
	return pyast.Pos{
		Line:   int(n.StartPosition().Row) + 1,
		Column: utf8.RuneCount(c.src[lineStart:start]) + 1,
	}
}

func (c *converter) at(n *sitter.Node) pyast.At {
	return pyast.At{Pos: c.pos(n)}
}

// namedChildren returns the named children of n, skipping comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := n.NamedChildCount()
	out := make([]*sitter.Node, 0, count)
	for i := uint(0); i < count; i++ {
		child := n.NamedChild(i)
		if child == nil || child.Kind() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

// hasKeyword reports whether n starts with the anonymous token kw (e.g. "async").
func hasKeyword(n *sitter.Node, kw string) bool {
	if n.ChildCount() == 0 {
		return false
	}
	first := n.Child(0)
	return first != nil && !first.IsNamed() && first.Kind() == kw
}

func (c *converter) module(root *sitter.Node) *pyast.Module {
	return &pyast.Module{Body: c.block(root)}
}

func (c *converter) block(n *sitter.Node) []pyast.Stmt {
	children := namedChildren(n)
	if len(children) == 0 {
		return nil
	}
	body := make([]pyast.Stmt, 0, len(children))
	for _, child := range children {
		body = append(body, c.stmt(child))
	}
	return body
}

func (c *converter) stmt(n *sitter.Node) pyast.Stmt {
	switch n.Kind() {
	case "expression_statement":
		return c.exprStatement(n)
	case "import_statement":
		return c.importStmt(n)
	case "import_from_statement":
		return c.importFrom(n)
	case "function_definition":
		return c.functionDef(n, nil)
	case "class_definition":
		return c.classDef(n, nil)
	case "decorated_definition":
		return c.decorated(n)
	case "return_statement":
		return &pyast.Return{At: c.at(n), Value: c.exprList(namedChildren(n))}
	case "if_statement":
		return c.ifStmt(n)
	case "for_statement":
		return &pyast.For{
			At:     c.at(n),
			Async:  hasKeyword(n, "async"),
			Target: c.expr(n.ChildByFieldName("left")),
			Iter:   c.expr(n.ChildByFieldName("right")),
			Body:   c.block(n.ChildByFieldName("body")),
			Orelse: c.elseBlock(n.ChildByFieldName("alternative")),
		}
	case "while_statement":
		return &pyast.While{
			At:     c.at(n),
			Test:   c.expr(n.ChildByFieldName("condition")),
			Body:   c.block(n.ChildByFieldName("body")),
			Orelse: c.elseBlock(n.ChildByFieldName("alternative")),
		}
	case "try_statement":
		return c.tryStmt(n)
	case "with_statement":
		return c.withStmt(n)
	case "match_statement":
		return c.matchStmt(n)
	case "future_import_statement", "global_statement", "nonlocal_statement",
		"pass_statement", "break_statement", "continue_statement":
		return &pyast.GenericStmt{At: c.at(n), Kind: n.Kind()}
	default:
		return c.genericStmt(n)
	}
}

// genericStmt keeps the expressions and blocks of statements no rule inspects.
func (c *converter) genericStmt(n *sitter.Node) pyast.Stmt {
	stmt := &pyast.GenericStmt{At: c.at(n), Kind: n.Kind()}
	for _, child := range namedChildren(n) {
		if child.Kind() == "block" {
			stmt.Blocks = append(stmt.Blocks, c.block(child))
			continue
		}
		if e := c.expr(child); e != nil {
			stmt.Exprs = append(stmt.Exprs, e)
		}
	}
	return stmt
}

func (c *converter) exprStatement(n *sitter.Node) pyast.Stmt {
	children := namedChildren(n)
	if len(children) == 1 {
		switch children[0].Kind() {
		case "assignment":
			return c.assignment(n, children[0])
		case "augmented_assignment":
			aug := children[0]
			op := ""
			if opNode := aug.ChildByFieldName("operator"); opNode != nil {
				op = c.text(opNode)
			}
			return &pyast.AugAssign{
				At:     c.at(n),
				Target: c.expr(aug.ChildByFieldName("left")),
				Op:     op,
				Value:  c.expr(aug.ChildByFieldName("right")),
			}
		}
	}
	return &pyast.ExprStmt{At: c.at(n), Value: c.exprList(children)}
}

// assignment flattens chained assignments: `a = b = 1` yields targets [a, b].
func (c *converter) assignment(stmt, n *sitter.Node) pyast.Stmt {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")

	if annotation := n.ChildByFieldName("type"); annotation != nil {
		return &pyast.AnnAssign{
			At:         c.at(stmt),
			Target:     c.expr(left),
			Annotation: c.expr(annotation),
			Value:      c.expr(right),
		}
	}

	targets := []pyast.Expr{c.expr(left)}
	for right != nil && right.Kind() == "assignment" && right.ChildByFieldName("type") == nil {
		targets = append(targets, c.expr(right.ChildByFieldName("left")))
		right = right.ChildByFieldName("right")
	}

	return &pyast.Assign{At: c.at(stmt), Targets: targets, Value: c.expr(right)}
}

func (c *converter) importStmt(n *sitter.Node) pyast.Stmt {
	stmt := &pyast.Import{At: c.at(n)}
	for _, child := range namedChildren(n) {
		if alias, ok := c.alias(child); ok {
			stmt.Names = append(stmt.Names, alias)
		}
	}
	return stmt
}

func (c *converter) importFrom(n *sitter.Node) pyast.Stmt {
	stmt := &pyast.ImportFrom{At: c.at(n)}

	afterImport := false
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if !child.IsNamed() {
			if child.Kind() == "import" {
				afterImport = true
			}
			continue
		}

		switch {
		case child.Kind() == "comment":
		case !afterImport && child.Kind() == "relative_import":
			text := c.text(child)
			module := strings.TrimLeft(text, ".")
			stmt.Level = len(text) - len(module)
			stmt.Module = strings.TrimSpace(module)
		case !afterImport:
			stmt.Module = c.text(child)
		case child.Kind() == "wildcard_import":
			stmt.Wildcard = true
		default:
			if alias, ok := c.alias(child); ok {
				stmt.Names = append(stmt.Names, alias)
			}
		}
	}

	return stmt
}

func (c *converter) alias(n *sitter.Node) (pyast.Alias, bool) {
	switch n.Kind() {
	case "dotted_name", "identifier":
		return pyast.Alias{At: c.at(n), Name: c.text(n)}, true
	case "aliased_import":
		alias := pyast.Alias{At: c.at(n)}
		if name := n.ChildByFieldName("name"); name != nil {
			alias.Name = c.text(name)
		}
		if as := n.ChildByFieldName("alias"); as != nil {
			alias.AsName = c.text(as)
		}
		return alias, alias.Name != ""
	default:
		return pyast.Alias{}, false
	}
}

func (c *converter) decorated(n *sitter.Node) pyast.Stmt {
	var decorators []pyast.Expr
	for _, child := range namedChildren(n) {
		if child.Kind() != "decorator" {
			continue
		}
		if inner := namedChildren(child); len(inner) > 0 {
			decorators = append(decorators, c.expr(inner[0]))
		}
	}

	def := n.ChildByFieldName("definition")
	if def == nil {
		return c.genericStmt(n)
	}

	switch def.Kind() {
	case "function_definition":
		return c.functionDef(def, decorators)
	case "class_definition":
		return c.classDef(def, decorators)
	default:
		return c.genericStmt(n)
	}
}

func (c *converter) functionDef(n *sitter.Node, decorators []pyast.Expr) pyast.Stmt {
	fn := &pyast.FunctionDef{
		At:         c.at(n),
		Async:      hasKeyword(n, "async"),
		Args:       c.params(n.ChildByFieldName("parameters")),
		Returns:    c.expr(n.ChildByFieldName("return_type")),
		Decorators: decorators,
		Body:       c.block(n.ChildByFieldName("body")),
	}
	if name := n.ChildByFieldName("name"); name != nil {
		fn.Name = c.text(name)
	}
	return fn
}

func (c *converter) classDef(n *sitter.Node, decorators []pyast.Expr) pyast.Stmt {
	cls := &pyast.ClassDef{
		At:         c.at(n),
		Decorators: decorators,
		Body:       c.block(n.ChildByFieldName("body")),
	}
	if name := n.ChildByFieldName("name"); name != nil {
		cls.Name = c.text(name)
	}
	cls.Bases, cls.Keywords = c.arguments(n.ChildByFieldName("superclasses"))
	return cls
}

func (c *converter) params(n *sitter.Node) []pyast.Arg {
	var args []pyast.Arg
	for _, child := range namedChildren(n) {
		arg := pyast.Arg{At: c.at(child)}

		switch child.Kind() {
		case "identifier":
			arg.Name = c.text(child)
		case "typed_parameter":
			if inner := namedChildren(child); len(inner) > 0 {
				arg.Name = strings.TrimLeft(c.text(inner[0]), "*")
			}
			arg.Annotation = c.expr(child.ChildByFieldName("type"))
		case "default_parameter", "typed_default_parameter":
			if name := child.ChildByFieldName("name"); name != nil {
				arg.Name = c.text(name)
			}
			arg.Annotation = c.expr(child.ChildByFieldName("type"))
			arg.Default = c.expr(child.ChildByFieldName("value"))
		case "list_splat_pattern", "dictionary_splat_pattern", "tuple_pattern":
			arg.Name = strings.TrimLeft(c.text(child), "*")
		default:
			continue
		}

		args = append(args, arg)
	}
	return args
}

// arguments splits an argument_list into positional arguments and keywords.
func (c *converter) arguments(n *sitter.Node) ([]pyast.Expr, []pyast.Keyword) {
	if n == nil {
		return nil, nil
	}
	if n.Kind() == "generator_expression" {
		return []pyast.Expr{c.expr(n)}, nil
	}

	var args []pyast.Expr
	var keywords []pyast.Keyword
	for _, child := range namedChildren(n) {
		switch child.Kind() {
		case "keyword_argument":
			kw := pyast.Keyword{Value: c.expr(child.ChildByFieldName("value"))}
			if name := child.ChildByFieldName("name"); name != nil {
				kw.Name = c.text(name)
			}
			keywords = append(keywords, kw)
		case "dictionary_splat":
			keywords = append(keywords, pyast.Keyword{Value: c.expr(child)})
		default:
			if e := c.expr(child); e != nil {
				args = append(args, e)
			}
		}
	}
	return args, keywords
}

// ifStmt folds elif clauses into nested If statements.
func (c *converter) ifStmt(n *sitter.Node) pyast.Stmt {
	root := &pyast.If{
		At:   c.at(n),
		Test: c.expr(n.ChildByFieldName("condition")),
		Body: c.block(n.ChildByFieldName("consequence")),
	}

	current := root
	for _, child := range namedChildren(n) {
		switch child.Kind() {
		case "elif_clause":
			nested := &pyast.If{
				At:   c.at(child),
				Test: c.expr(child.ChildByFieldName("condition")),
				Body: c.block(child.ChildByFieldName("consequence")),
			}
			current.Orelse = []pyast.Stmt{nested}
			current = nested
		case "else_clause":
			current.Orelse = c.elseBlock(child)
		}
	}

	return root
}

func (c *converter) elseBlock(n *sitter.Node) []pyast.Stmt {
	if n == nil {
		return nil
	}
	if body := n.ChildByFieldName("body"); body != nil {
		return c.block(body)
	}
	return c.firstBlock(n)
}

func (c *converter) firstBlock(n *sitter.Node) []pyast.Stmt {
	for _, child := range namedChildren(n) {
		if child.Kind() == "block" {
			return c.block(child)
		}
	}
	return nil
}

func (c *converter) tryStmt(n *sitter.Node) pyast.Stmt {
	stmt := &pyast.Try{At: c.at(n), Body: c.block(n.ChildByFieldName("body"))}

	for _, child := range namedChildren(n) {
		switch child.Kind() {
		case "except_clause", "except_group_clause":
			stmt.Handlers = append(stmt.Handlers, c.exceptHandler(child))
		case "else_clause":
			stmt.Orelse = c.elseBlock(child)
		case "finally_clause":
			stmt.Finalbody = c.firstBlock(child)
		}
	}

	return stmt
}

func (c *converter) exceptHandler(n *sitter.Node) pyast.ExceptHandler {
	handler := pyast.ExceptHandler{At: c.at(n)}

	var exprs []*sitter.Node
	for _, child := range namedChildren(n) {
		if child.Kind() == "block" {
			handler.Body = c.block(child)
			continue
		}
		exprs = append(exprs, child)
	}

	if len(exprs) == 1 && exprs[0].Kind() == "as_pattern" {
		exprs = namedChildren(exprs[0])
	}
	if len(exprs) > 0 {
		handler.Type = c.expr(exprs[0])
	}
	if len(exprs) > 1 {
		handler.Name = c.text(exprs[1])
	}

	return handler
}

func (c *converter) withStmt(n *sitter.Node) pyast.Stmt {
	stmt := &pyast.With{
		At:    c.at(n),
		Async: hasKeyword(n, "async"),
		Body:  c.block(n.ChildByFieldName("body")),
	}

	for _, child := range namedChildren(n) {
		if child.Kind() != "with_clause" {
			continue
		}
		for _, item := range namedChildren(child) {
			if item.Kind() != "with_item" {
				continue
			}
			stmt.Items = append(stmt.Items, c.withItem(item))
		}
	}

	return stmt
}

func (c *converter) withItem(n *sitter.Node) pyast.WithItem {
	value := n.ChildByFieldName("value")
	if value == nil {
		if inner := namedChildren(n); len(inner) > 0 {
			value = inner[0]
		}
	}
	if value != nil && value.Kind() == "as_pattern" {
		parts := namedChildren(value)
		item := pyast.WithItem{}
		if len(parts) > 0 {
			item.Context = c.expr(parts[0])
		}
		if len(parts) > 1 {
			item.Vars = c.expr(parts[1])
		}
		return item
	}
	return pyast.WithItem{Context: c.expr(value)}
}

// matchStmt keeps the subject and guards as expressions and each case body as a block.
func (c *converter) matchStmt(n *sitter.Node) pyast.Stmt {
	stmt := &pyast.GenericStmt{At: c.at(n), Kind: n.Kind()}

	for _, child := range namedChildren(n) {
		if child.Kind() != "block" {
			stmt.Exprs = append(stmt.Exprs, c.expr(child))
			continue
		}
		for _, clause := range namedChildren(child) {
			if clause.Kind() != "case_clause" {
				continue
			}
			for _, part := range namedChildren(clause) {
				switch part.Kind() {
				case "if_clause":
					stmt.Exprs = append(stmt.Exprs, c.expr(part))
				case "block":
					stmt.Blocks = append(stmt.Blocks, c.block(part))
				}
			}
		}
	}

	return stmt
}

// exprList converts zero, one or several comma-separated expressions.
func (c *converter) exprList(nodes []*sitter.Node) pyast.Expr {
	switch len(nodes) {
	case 0:
		return nil
	case 1:
		return c.expr(nodes[0])
	default:
		coll := &pyast.Collection{At: c.at(nodes[0]), Kind: "tuple"}
		for _, n := range nodes {
			coll.Elts = append(coll.Elts, c.expr(n))
		}
		return coll
	}
}

func (c *converter) expr(n *sitter.Node) pyast.Expr {
	if n == nil || n.Kind() == "comment" {
		return nil
	}

	switch n.Kind() {
	case "identifier", "keyword_identifier":
		return &pyast.Name{At: c.at(n), ID: c.text(n)}
	case "attribute":
		attr := &pyast.Attribute{At: c.at(n), Value: c.expr(n.ChildByFieldName("object"))}
		if name := n.ChildByFieldName("attribute"); name != nil {
			attr.Attr = c.text(name)
		}
		return attr
	case "call":
		call := &pyast.Call{At: c.at(n), Func: c.expr(n.ChildByFieldName("function"))}
		call.Args, call.Keywords = c.arguments(n.ChildByFieldName("arguments"))
		return call
	case "subscript":
		parts := namedChildren(n)
		if len(parts) == 0 {
			return nil
		}
		return &pyast.Subscript{At: c.at(n), Value: c.expr(parts[0]), Slice: c.exprList(parts[1:])}
	case "binary_operator":
		return &pyast.BinOp{
			At:    c.at(n),
			Left:  c.expr(n.ChildByFieldName("left")),
			Op:    c.fieldText(n, "operator"),
			Right: c.expr(n.ChildByFieldName("right")),
		}
	case "boolean_operator":
		return &pyast.BoolOp{
			At:     c.at(n),
			Op:     c.fieldText(n, "operator"),
			Values: c.exprs(n.ChildByFieldName("left"), n.ChildByFieldName("right")),
		}
	case "not_operator":
		return &pyast.UnaryOp{At: c.at(n), Op: "not", Operand: c.expr(n.ChildByFieldName("argument"))}
	case "unary_operator":
		return &pyast.UnaryOp{
			At:      c.at(n),
			Op:      c.fieldText(n, "operator"),
			Operand: c.expr(n.ChildByFieldName("argument")),
		}
	case "comparison_operator":
		return c.compare(n)
	case "conditional_expression":
		parts := namedChildren(n)
		if len(parts) != 3 {
			return c.genericExpr(n)
		}
		return &pyast.IfExp{At: c.at(n), Body: c.expr(parts[0]), Test: c.expr(parts[1]), Orelse: c.expr(parts[2])}
	case "lambda":
		return &pyast.Lambda{
			At:   c.at(n),
			Args: c.params(n.ChildByFieldName("parameters")),
			Body: c.expr(n.ChildByFieldName("body")),
		}
	case "parenthesized_expression", "type":
		if parts := namedChildren(n); len(parts) == 1 {
			return c.expr(parts[0])
		}
		return c.genericExpr(n)
	case "list", "list_pattern":
		return c.collection(n, "list")
	case "tuple", "tuple_pattern", "expression_list", "pattern_list":
		return c.collection(n, "tuple")
	case "set":
		return c.collection(n, "set")
	case "dictionary":
		return c.dictionary(n)
	case "string", "concatenated_string":
		return c.str(n)
	case "integer", "float", "true", "false", "none", "ellipsis":
		return &pyast.Constant{At: c.at(n), Kind: n.Kind(), Value: c.text(n)}
	case "list_splat", "dictionary_splat", "list_splat_pattern", "dictionary_splat_pattern":
		var value pyast.Expr
		if parts := namedChildren(n); len(parts) > 0 {
			value = c.expr(parts[0])
		}
		return &pyast.Starred{At: c.at(n), Value: value}
	default:
		return c.genericExpr(n)
	}
}

func (c *converter) exprs(nodes ...*sitter.Node) []pyast.Expr {
	out := make([]pyast.Expr, 0, len(nodes))
	for _, n := range nodes {
		if e := c.expr(n); e != nil {
			out = append(out, e)
		}
	}
	return out
}

func (c *converter) fieldText(n *sitter.Node, field string) string {
	if child := n.ChildByFieldName(field); child != nil {
		return c.text(child)
	}
	return ""
}

func (c *converter) genericExpr(n *sitter.Node) pyast.Expr {
	return &pyast.GenericExpr{At: c.at(n), Kind: n.Kind(), Children: c.exprs(namedChildren(n)...)}
}

func (c *converter) compare(n *sitter.Node) pyast.Expr {
	cmp := &pyast.Compare{At: c.at(n)}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil || child.Kind() == "comment" {
			continue
		}
		if !child.IsNamed() {
			cmp.Ops = append(cmp.Ops, c.text(child))
			continue
		}
		if cmp.Left == nil {
			cmp.Left = c.expr(child)
			continue
		}
		cmp.Comparators = append(cmp.Comparators, c.expr(child))
	}
	return cmp
}

func (c *converter) collection(n *sitter.Node, kind string) pyast.Expr {
	return &pyast.Collection{At: c.at(n), Kind: kind, Elts: c.exprs(namedChildren(n)...)}
}

func (c *converter) dictionary(n *sitter.Node) pyast.Expr {
	dict := &pyast.Collection{At: c.at(n), Kind: "dict"}
	for _, child := range namedChildren(n) {
		if child.Kind() == "pair" {
			dict.Elts = append(dict.Elts, c.exprs(child.ChildByFieldName("key"), child.ChildByFieldName("value"))...)
			continue
		}
		if e := c.expr(child); e != nil {
			dict.Elts = append(dict.Elts, e)
		}
	}
	return dict
}

// str returns a Constant for plain strings and a GenericExpr holding the
// interpolated expressions for f-strings.
func (c *converter) str(n *sitter.Node) pyast.Expr {
	var parts []pyast.Expr
	c.interpolations(n, &parts)
	if len(parts) == 0 {
		return &pyast.Constant{At: c.at(n), Kind: "string", Value: c.text(n)}
	}
	return &pyast.GenericExpr{At: c.at(n), Kind: "fstring", Children: parts}
}

func (c *converter) interpolations(n *sitter.Node, out *[]pyast.Expr) {
	for _, child := range namedChildren(n) {
		if child.Kind() != "interpolation" {
			c.interpolations(child, out)
			continue
		}
		for _, part := range namedChildren(child) {
			switch part.Kind() {
			case "type_conversion":
			case "format_specifier":
				c.interpolations(part, out)
			default:
				if e := c.expr(part); e != nil {
					*out = append(*out, e)
				}
			}
		}
	}
}
