package pyast

// Node is implemented by every statement and expression.
type Node interface {
	Position() Pos
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Module is the root of a parsed file.
type Module struct {
	Body []Stmt
}

// At carries a node's position. It is embedded by every node type.
type At struct {
	Pos Pos
}

// Position returns the node's 1-based start position.
func (a At) Position() Pos { return a.Pos }

// Arg is a function or lambda parameter.
type Arg struct {
	At
	Name       string
	Annotation Expr
	Default    Expr
}

// Alias is one name imported by an import statement.
type Alias struct {
	At
	// Name is the imported name as written, dotted for plain imports.
	Name string
	// AsName is the local alias, empty when there is none.
	AsName string
}

// Keyword is a keyword argument in a call or class header. Name is empty for **kwargs.
type Keyword struct {
	Name  string
	Value Expr
}

// WithItem is one context manager of a with statement.
type WithItem struct {
	Context Expr
	Vars    Expr
}

// ExceptHandler is one except clause of a try statement.
type ExceptHandler struct {
	At
	Type Expr
	Name string
	Body []Stmt
}

// Statements.
type (
	FunctionDef struct {
		At
		Name       string
		Async      bool
		Args       []Arg
		Returns    Expr
		Decorators []Expr
		Body       []Stmt
	}

	ClassDef struct {
		At
		Name       string
		Bases      []Expr
		Keywords   []Keyword
		Decorators []Expr
		Body       []Stmt
	}

	// Assign is `a = b = value`; each target appears in Targets.
	Assign struct {
		At
		Targets []Expr
		Value   Expr
	}

	// AnnAssign is `target: annotation [= value]`. Value may be nil.
	AnnAssign struct {
		At
		Target     Expr
		Annotation Expr
		Value      Expr
	}

	AugAssign struct {
		At
		Target Expr
		Op     string
		Value  Expr
	}

	// Return holds a nil Value for a bare return.
	Return struct {
		At
		Value Expr
	}

	ExprStmt struct {
		At
		Value Expr
	}

	// If represents if/elif/else; an elif is a single nested If in Orelse.
	If struct {
		At
		Test   Expr
		Body   []Stmt
		Orelse []Stmt
	}

	While struct {
		At
		Test   Expr
		Body   []Stmt
		Orelse []Stmt
	}

	For struct {
		At
		Async  bool
		Target Expr
		Iter   Expr
		Body   []Stmt
		Orelse []Stmt
	}

	With struct {
		At
		Async bool
		Items []WithItem
		Body  []Stmt
	}

	Try struct {
		At
		Body      []Stmt
		Handlers  []ExceptHandler
		Orelse    []Stmt
		Finalbody []Stmt
	}

	Import struct {
		At
		Names []Alias
	}

	// ImportFrom is `from Module import ...`. Level counts leading dots;
	// Module excludes them and is empty for `from . import x`.
	ImportFrom struct {
		At
		Module   string
		Level    int
		Names    []Alias
		Wildcard bool
	}

	// GenericStmt covers statements no rule inspects structurally
	// (pass, raise, del, assert, global, match, ...).
	GenericStmt struct {
		At
		Kind   string
		Exprs  []Expr
		Blocks [][]Stmt
	}
)

// Expressions.
type (
	Name struct {
		At
		ID string
	}

	Attribute struct {
		At
		Value Expr
		Attr  string
	}

	Call struct {
		At
		Func     Expr
		Args     []Expr
		Keywords []Keyword
	}

	// Subscript holds a Collection of kind "tuple" in Slice for x[a, b].
	Subscript struct {
		At
		Value Expr
		Slice Expr
	}

	BinOp struct {
		At
		Left  Expr
		Op    string
		Right Expr
	}

	BoolOp struct {
		At
		Op     string
		Values []Expr
	}

	UnaryOp struct {
		At
		Op      string
		Operand Expr
	}

	Compare struct {
		At
		Left        Expr
		Ops         []string
		Comparators []Expr
	}

	IfExp struct {
		At
		Test   Expr
		Body   Expr
		Orelse Expr
	}

	Lambda struct {
		At
		Args []Arg
		Body Expr
	}

	// Constant is a literal without embedded expressions.
	Constant struct {
		At
		Kind  string
		Value string
	}

	// Collection is a list, tuple, set or dict display. Dict keys and values
	// are interleaved in Elts.
	Collection struct {
		At
		Kind string
		Elts []Expr
	}

	Starred struct {
		At
		Value Expr
	}

	// GenericExpr covers expressions no rule inspects structurally
	// (comprehensions, await, yield, f-strings, slices, ...).
	GenericExpr struct {
		At
		Kind     string
		Children []Expr
	}
)

func (*FunctionDef) stmtNode() {}
func (*ClassDef) stmtNode()    {}
func (*Assign) stmtNode()      {}
func (*AnnAssign) stmtNode()   {}
func (*AugAssign) stmtNode()   {}
func (*Return) stmtNode()      {}
func (*ExprStmt) stmtNode()    {}
func (*If) stmtNode()          {}
func (*While) stmtNode()       {}
func (*For) stmtNode()         {}
func (*With) stmtNode()        {}
func (*Try) stmtNode()         {}
func (*Import) stmtNode()      {}
func (*ImportFrom) stmtNode()  {}
func (*GenericStmt) stmtNode() {}

func (*Name) exprNode()        {}
func (*Attribute) exprNode()   {}
func (*Call) exprNode()        {}
func (*Subscript) exprNode()   {}
func (*BinOp) exprNode()       {}
func (*BoolOp) exprNode()      {}
func (*UnaryOp) exprNode()     {}
func (*Compare) exprNode()     {}
func (*IfExp) exprNode()       {}
func (*Lambda) exprNode()      {}
func (*Constant) exprNode()    {}
func (*Collection) exprNode()  {}
func (*Starred) exprNode()     {}
func (*GenericExpr) exprNode() {}
