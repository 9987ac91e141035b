package ast

// Expression is implemented by every expression node. Every expression
// caches its resolved type, memoized by the semantic analyzer on first
// (and only) write.
type Expression interface {
	Node
	expressionNode()
	ResolvedType() Type
	SetResolvedType(Type)
}

// exprBase carries the fields common to every expression node.
type exprBase struct {
	LineNo int
	Typ    Type
}

func (b *exprBase) Line() int              { return b.LineNo }
func (b *exprBase) ResolvedType() Type     { return b.Typ }
func (b *exprBase) SetResolvedType(t Type) { b.Typ = t }
func (*exprBase) expressionNode()          {}

// Assignment is `target <- value`. The target is syntactically
// restricted to a bare identifier by the parser; the semantic analyzer
// additionally requires it to resolve to an in-scope variable.
type Assignment struct {
	exprBase
	Target *Primary
	Value  Expression
}

// LogicalOr is a chain of two or more `or`-joined operands.
type LogicalOr struct {
	exprBase
	Operands []Expression
}

// LogicalAnd is a chain of two or more `and`-joined operands.
type LogicalAnd struct {
	exprBase
	Operands []Expression
}

// EqualityOp distinguishes `=` from `!=`.
type EqualityOp int

const (
	OpEqual EqualityOp = iota
	OpNotEqual
)

// Equality is a strictly binary `=`/`!=` comparison.
type Equality struct {
	exprBase
	Op          EqualityOp
	Left, Right Expression
}

// RelationalOp distinguishes `<`, `>`, `<=`, `>=`.
type RelationalOp int

const (
	OpLess RelationalOp = iota
	OpGreater
	OpLessEqual
	OpGreaterEqual
)

// Relational is a strictly binary ordering comparison.
type Relational struct {
	exprBase
	Op          RelationalOp
	Left, Right Expression
}

// ArithOp is a `+`/`-`/`*`/`/`/`mod` operator appearing between two
// operands of an Additive or Multiplicative chain.
type ArithOp int

const (
	OpAdd ArithOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
)

// Additive is a left-to-right chain of `+`/`-` operands.
// len(Operators) == len(Operands) - 1.
type Additive struct {
	exprBase
	Operands  []Expression
	Operators []ArithOp
}

// Multiplicative is a left-to-right chain of `*`/`/`/`mod` operands.
// len(Operators) == len(Operands) - 1.
type Multiplicative struct {
	exprBase
	Operands  []Expression
	Operators []ArithOp
}

// PrefixOp distinguishes unary `-` from `not`.
type PrefixOp int

const (
	PrefixNeg PrefixOp = iota
	PrefixNot
)

// Prefix is a unary `-` or `not` applied to one operand.
type Prefix struct {
	exprBase
	Op      PrefixOp
	Operand Expression
}

// Postfix is a function call: an identifier callee plus its argument
// list. A bare identifier reference with no call parentheses is
// represented directly as a Primary, not wrapped in a Postfix — the
// parser collapses the trivial case rather than emitting a pass-through
// node.
type Postfix struct {
	exprBase
	Callee string
	Args   []Expression
}

// PrimaryKind distinguishes the literal/identifier forms a Primary can
// take.
type PrimaryKind int

const (
	PrimaryIdent PrimaryKind = iota
	PrimaryNumber
	PrimaryNumberHex
	PrimaryBool
)

// Primary is a single literal or identifier token.
type Primary struct {
	exprBase
	Kind      PrimaryKind
	Name      string // set when Kind == PrimaryIdent
	IntValue  int64  // set when Kind == PrimaryNumber or PrimaryNumberHex
	BoolValue bool   // set when Kind == PrimaryBool
}
