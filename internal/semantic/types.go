package semantic

import "github.com/rgeorge/ramseyc/internal/ast"

// assignable reports whether a value of type from may be stored into a
// slot of type to: same type always qualifies, small widens to big
// implicitly, and in unifies with either concrete width in either
// direction. No other numeric conversion is permitted, and boo never
// mixes with a numeric type.
func assignable(from, to ast.Type) bool {
	if from == to {
		return true
	}
	if !from.IsNumeric() || !to.IsNumeric() {
		return false
	}
	if from == ast.TypeIn || to == ast.TypeIn {
		return true
	}
	return from == ast.TypeSmall && to == ast.TypeBig
}

// typesUnify reports whether a and b may stand on either side of an
// equality or relational comparison under the same promotion rule
// assignable uses, checked symmetrically.
func typesUnify(a, b ast.Type) bool {
	return assignable(a, b) || assignable(b, a)
}

// widen returns the result type of combining two numeric operands in an
// additive or multiplicative chain: the presence of any big operand
// forces big, otherwise the presence of any small operand forces small,
// and a chain of nothing but in stays in.
func widen(a, b ast.Type) (ast.Type, bool) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return ast.TypeInvalid, false
	}
	if a == ast.TypeBig || b == ast.TypeBig {
		return ast.TypeBig, true
	}
	if a == ast.TypeSmall || b == ast.TypeSmall {
		return ast.TypeSmall, true
	}
	return ast.TypeIn, true
}

// argMatch classifies a call's argument list against a function's
// declared parameter types.
type argMatch int

const (
	argOkay argMatch = iota
	argTooFew
	argTooMany
	argBadTypes
)

func matchArgs(paramTypes, argTypes []ast.Type) argMatch {
	if len(argTypes) < len(paramTypes) {
		return argTooFew
	}
	if len(argTypes) > len(paramTypes) {
		return argTooMany
	}
	for i, pt := range paramTypes {
		if !assignable(argTypes[i], pt) {
			return argBadTypes
		}
	}
	return argOkay
}
