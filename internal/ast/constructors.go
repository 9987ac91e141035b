package ast

// This file collects constructor functions for expression nodes. They
// exist because exprBase is unexported: callers outside this package
// (the parser) cannot build an expression's composite literal directly,
// so each node gets a New* constructor that also seeds its type cache
// with TypeInvalid.

func NewAssignment(line int, target *Primary, value Expression) *Assignment {
	return &Assignment{exprBase: exprBase{LineNo: line, Typ: TypeInvalid}, Target: target, Value: value}
}

func NewLogicalOr(line int, operands []Expression) *LogicalOr {
	return &LogicalOr{exprBase: exprBase{LineNo: line, Typ: TypeInvalid}, Operands: operands}
}

func NewLogicalAnd(line int, operands []Expression) *LogicalAnd {
	return &LogicalAnd{exprBase: exprBase{LineNo: line, Typ: TypeInvalid}, Operands: operands}
}

func NewEquality(line int, op EqualityOp, left, right Expression) *Equality {
	return &Equality{exprBase: exprBase{LineNo: line, Typ: TypeInvalid}, Op: op, Left: left, Right: right}
}

func NewRelational(line int, op RelationalOp, left, right Expression) *Relational {
	return &Relational{exprBase: exprBase{LineNo: line, Typ: TypeInvalid}, Op: op, Left: left, Right: right}
}

func NewAdditive(line int, operands []Expression, ops []ArithOp) *Additive {
	return &Additive{exprBase: exprBase{LineNo: line, Typ: TypeInvalid}, Operands: operands, Operators: ops}
}

func NewMultiplicative(line int, operands []Expression, ops []ArithOp) *Multiplicative {
	return &Multiplicative{exprBase: exprBase{LineNo: line, Typ: TypeInvalid}, Operands: operands, Operators: ops}
}

func NewPrefix(line int, op PrefixOp, operand Expression) *Prefix {
	return &Prefix{exprBase: exprBase{LineNo: line, Typ: TypeInvalid}, Op: op, Operand: operand}
}

func NewPostfix(line int, callee string, args []Expression) *Postfix {
	return &Postfix{exprBase: exprBase{LineNo: line, Typ: TypeInvalid}, Callee: callee, Args: args}
}

func NewPrimaryIdent(line int, name string) *Primary {
	return &Primary{exprBase: exprBase{LineNo: line, Typ: TypeInvalid}, Kind: PrimaryIdent, Name: name}
}

func NewPrimaryNumber(line int, value int64) *Primary {
	return &Primary{exprBase: exprBase{LineNo: line, Typ: TypeInvalid}, Kind: PrimaryNumber, IntValue: value}
}

func NewPrimaryNumberHex(line int, value int64) *Primary {
	return &Primary{exprBase: exprBase{LineNo: line, Typ: TypeInvalid}, Kind: PrimaryNumberHex, IntValue: value}
}

func NewPrimaryBool(line int, value bool) *Primary {
	return &Primary{exprBase: exprBase{LineNo: line, Typ: TypeInvalid}, Kind: PrimaryBool, BoolValue: value}
}
