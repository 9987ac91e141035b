package semantic

import (
	"github.com/rgeorge/ramseyc/internal/ast"
	"github.com/rgeorge/ramseyc/internal/errors"
)

// analyzeExpr returns expr's type, computing and memoizing it on first
// visit. Expressions are only ever visited once per analysis pass, but
// the cache check keeps this safe to call from more than one caller
// (e.g. an assignment target is never re-typed, but nothing prevents a
// future caller from doing so).
func (a *Analyzer) analyzeExpr(expr ast.Expression) (ast.Type, error) {
	if t := expr.ResolvedType(); t != ast.TypeInvalid {
		return t, nil
	}
	typ, err := a.computeType(expr)
	if err != nil {
		return ast.TypeInvalid, err
	}
	expr.SetResolvedType(typ)
	return typ, nil
}

func (a *Analyzer) computeType(expr ast.Expression) (ast.Type, error) {
	switch e := expr.(type) {
	case *ast.Assignment:
		return a.analyzeAssignment(e)
	case *ast.LogicalOr:
		return a.analyzeLogical(e.Operands, "or")
	case *ast.LogicalAnd:
		return a.analyzeLogical(e.Operands, "and")
	case *ast.Equality:
		return a.analyzeEquality(e)
	case *ast.Relational:
		return a.analyzeRelational(e)
	case *ast.Additive:
		return a.analyzeArith(e.Operands, e.Line(), "additive")
	case *ast.Multiplicative:
		return a.analyzeArith(e.Operands, e.Line(), "multiplicative")
	case *ast.Prefix:
		return a.analyzePrefix(e)
	case *ast.Postfix:
		return a.analyzeCall(e)
	case *ast.Primary:
		return a.analyzePrimary(e)
	default:
		return ast.TypeInvalid, errors.Semantic(expr.Line(), "internal error: unhandled expression type")
	}
}

func (a *Analyzer) analyzeAssignment(asn *ast.Assignment) (ast.Type, error) {
	sym, ok := a.symbols.Lookup(asn.Target.Name)
	if !ok || sym.Kind != SymVariable {
		return ast.TypeInvalid, errors.Semantic(asn.Line(), "assignment to undeclared variable '%s'", asn.Target.Name)
	}
	asn.Target.SetResolvedType(sym.Type)

	valueType, err := a.analyzeExpr(asn.Value)
	if err != nil {
		return ast.TypeInvalid, err
	}
	if !assignable(valueType, sym.Type) {
		return ast.TypeInvalid, errors.Semantic(asn.Line(), "cannot assign a value of type %s to '%s' of type %s", valueType, asn.Target.Name, sym.Type)
	}
	return sym.Type, nil
}

func (a *Analyzer) analyzeLogical(operands []ast.Expression, opName string) (ast.Type, error) {
	for _, op := range operands {
		t, err := a.analyzeExpr(op)
		if err != nil {
			return ast.TypeInvalid, err
		}
		if t != ast.TypeBoo {
			return ast.TypeInvalid, errors.Semantic(op.Line(), "%s operands must have type boo, found %s", opName, t)
		}
	}
	return ast.TypeBoo, nil
}

func (a *Analyzer) analyzeEquality(eq *ast.Equality) (ast.Type, error) {
	leftType, err := a.analyzeExpr(eq.Left)
	if err != nil {
		return ast.TypeInvalid, err
	}
	rightType, err := a.analyzeExpr(eq.Right)
	if err != nil {
		return ast.TypeInvalid, err
	}
	if !leftType.IsNumeric() || !rightType.IsNumeric() {
		return ast.TypeInvalid, errors.Semantic(eq.Line(), "equality operands must be numeric, found %s and %s", leftType, rightType)
	}
	if !typesUnify(leftType, rightType) {
		return ast.TypeInvalid, errors.Semantic(eq.Line(), "equality operands have incompatible types %s and %s", leftType, rightType)
	}
	return ast.TypeBoo, nil
}

func (a *Analyzer) analyzeRelational(rel *ast.Relational) (ast.Type, error) {
	leftType, err := a.analyzeExpr(rel.Left)
	if err != nil {
		return ast.TypeInvalid, err
	}
	rightType, err := a.analyzeExpr(rel.Right)
	if err != nil {
		return ast.TypeInvalid, err
	}
	if !leftType.IsNumeric() || !rightType.IsNumeric() {
		return ast.TypeInvalid, errors.Semantic(rel.Line(), "relational operands must be numeric, found %s and %s", leftType, rightType)
	}
	if !typesUnify(leftType, rightType) {
		return ast.TypeInvalid, errors.Semantic(rel.Line(), "relational operands have incompatible types %s and %s", leftType, rightType)
	}
	return ast.TypeBoo, nil
}

func (a *Analyzer) analyzeArith(operands []ast.Expression, line int, chainName string) (ast.Type, error) {
	result := ast.TypeIn
	for i, op := range operands {
		t, err := a.analyzeExpr(op)
		if err != nil {
			return ast.TypeInvalid, err
		}
		if !t.IsNumeric() {
			return ast.TypeInvalid, errors.Semantic(op.Line(), "%s operands must be numeric, found %s", chainName, t)
		}
		if i == 0 {
			result = t
			continue
		}
		widened, ok := widen(result, t)
		if !ok {
			return ast.TypeInvalid, errors.Semantic(line, "incompatible operand types %s and %s in %s expression", result, t, chainName)
		}
		result = widened
	}
	return result, nil
}

func (a *Analyzer) analyzePrefix(p *ast.Prefix) (ast.Type, error) {
	t, err := a.analyzeExpr(p.Operand)
	if err != nil {
		return ast.TypeInvalid, err
	}
	switch p.Op {
	case ast.PrefixNot:
		if t != ast.TypeBoo {
			return ast.TypeInvalid, errors.Semantic(p.Line(), "not requires a boo operand, found %s", t)
		}
		return ast.TypeBoo, nil
	case ast.PrefixNeg:
		if !t.IsNumeric() {
			return ast.TypeInvalid, errors.Semantic(p.Line(), "unary - requires a numeric operand, found %s", t)
		}
		return t, nil
	default:
		return ast.TypeInvalid, errors.Semantic(p.Line(), "internal error: unhandled prefix operator")
	}
}

func (a *Analyzer) analyzeCall(call *ast.Postfix) (ast.Type, error) {
	sym, ok := a.symbols.Lookup(call.Callee)
	if !ok || sym.Kind != SymFunction {
		return ast.TypeInvalid, errors.Semantic(call.Line(), "call to undeclared function '%s'", call.Callee)
	}

	argTypes := make([]ast.Type, len(call.Args))
	for i, arg := range call.Args {
		t, err := a.analyzeExpr(arg)
		if err != nil {
			return ast.TypeInvalid, err
		}
		argTypes[i] = t
	}

	switch matchArgs(sym.ParamTypes, argTypes) {
	case argTooFew:
		return ast.TypeInvalid, errors.Semantic(call.Line(), "too few arguments to function '%s': expected %d, found %d", call.Callee, len(sym.ParamTypes), len(argTypes))
	case argTooMany:
		return ast.TypeInvalid, errors.Semantic(call.Line(), "too many arguments to function '%s': expected %d, found %d", call.Callee, len(sym.ParamTypes), len(argTypes))
	case argBadTypes:
		return ast.TypeInvalid, errors.Semantic(call.Line(), "argument type mismatch in call to function '%s'", call.Callee)
	}

	return sym.Type, nil
}

func (a *Analyzer) analyzePrimary(p *ast.Primary) (ast.Type, error) {
	switch p.Kind {
	case ast.PrimaryIdent:
		sym, ok := a.symbols.Lookup(p.Name)
		if !ok || sym.Kind != SymVariable {
			return ast.TypeInvalid, errors.Semantic(p.Line(), "undeclared identifier '%s'", p.Name)
		}
		return sym.Type, nil
	case ast.PrimaryNumber, ast.PrimaryNumberHex:
		return ast.TypeIn, nil
	case ast.PrimaryBool:
		return ast.TypeBoo, nil
	default:
		return ast.TypeInvalid, errors.Semantic(p.Line(), "internal error: unhandled primary kind")
	}
}
