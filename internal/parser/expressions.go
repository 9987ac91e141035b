package parser

import (
	"strconv"

	"github.com/rgeorge/ramseyc/internal/ast"
	"github.com/rgeorge/ramseyc/internal/token"
)

// parseExpr := assignment
func (p *Parser) parseExpr() (ast.Expression, error) {
	return p.parseAssignment()
}

// parseAssignment := or-expr ('<-' assignment)?
func (p *Parser) parseAssignment() (ast.Expression, error) {
	line := p.line
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.current().Kind != token.Assign {
		return left, nil
	}

	target, ok := left.(*ast.Primary)
	if !ok || target.Kind != ast.PrimaryIdent {
		return nil, p.errorf("assignment target must be an identifier")
	}

	p.advance() // '<-'
	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return ast.NewAssignment(line, target, value), nil
}

// parseOr := and-expr ('or' and-expr)*
func (p *Parser) parseOr() (ast.Expression, error) {
	line := p.line
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	if p.current().Kind != token.Or {
		return first, nil
	}

	operands := []ast.Expression{first}
	for p.current().Kind == token.Or {
		p.advance()
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	return ast.NewLogicalOr(line, operands), nil
}

// parseAnd := eq-expr ('and' eq-expr)*
func (p *Parser) parseAnd() (ast.Expression, error) {
	line := p.line
	first, err := p.parseEq()
	if err != nil {
		return nil, err
	}
	if p.current().Kind != token.And {
		return first, nil
	}

	operands := []ast.Expression{first}
	for p.current().Kind == token.And {
		p.advance()
		next, err := p.parseEq()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	return ast.NewLogicalAnd(line, operands), nil
}

// parseEq := rel-expr (('='|'!=') rel-expr)? -- strictly binary; chained
// comparisons are a syntax error by construction, since only one
// operator may be consumed here.
func (p *Parser) parseEq() (ast.Expression, error) {
	line := p.line
	left, err := p.parseRel()
	if err != nil {
		return nil, err
	}

	switch p.current().Kind {
	case token.Eq:
		p.advance()
		right, err := p.parseRel()
		if err != nil {
			return nil, err
		}
		return ast.NewEquality(line, ast.OpEqual, left, right), nil
	case token.Neq:
		p.advance()
		right, err := p.parseRel()
		if err != nil {
			return nil, err
		}
		return ast.NewEquality(line, ast.OpNotEqual, left, right), nil
	default:
		return left, nil
	}
}

// parseRel := add-expr (('<'|'>'|'<='|'>=') add-expr)? -- strictly binary.
func (p *Parser) parseRel() (ast.Expression, error) {
	line := p.line
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}

	var op ast.RelationalOp
	switch p.current().Kind {
	case token.Lt:
		op = ast.OpLess
	case token.Gt:
		op = ast.OpGreater
	case token.Le:
		op = ast.OpLessEqual
	case token.Ge:
		op = ast.OpGreaterEqual
	default:
		return left, nil
	}

	p.advance()
	right, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	return ast.NewRelational(line, op, left, right), nil
}

// parseAdd := mul-expr (('+'|'-') mul-expr)*
func (p *Parser) parseAdd() (ast.Expression, error) {
	line := p.line
	first, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	if p.current().Kind != token.Plus && p.current().Kind != token.Minus {
		return first, nil
	}

	operands := []ast.Expression{first}
	var ops []ast.ArithOp
	for p.current().Kind == token.Plus || p.current().Kind == token.Minus {
		op := ast.OpAdd
		if p.current().Kind == token.Minus {
			op = ast.OpSub
		}
		p.advance()
		next, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
		ops = append(ops, op)
	}
	return ast.NewAdditive(line, operands, ops), nil
}

// parseMul := prefix-expr (('*'|'/'|'mod') prefix-expr)*
func (p *Parser) parseMul() (ast.Expression, error) {
	line := p.line
	first, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	if p.current().Kind != token.Star && p.current().Kind != token.Slash && p.current().Kind != token.Mod {
		return first, nil
	}

	operands := []ast.Expression{first}
	var ops []ast.ArithOp
	for p.current().Kind == token.Star || p.current().Kind == token.Slash || p.current().Kind == token.Mod {
		var op ast.ArithOp
		switch p.current().Kind {
		case token.Star:
			op = ast.OpMul
		case token.Slash:
			op = ast.OpDiv
		default:
			op = ast.OpMod
		}
		p.advance()
		next, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
		ops = append(ops, op)
	}
	return ast.NewMultiplicative(line, operands, ops), nil
}

// parsePrefix := ('-'|'not')? postfix-expr
func (p *Parser) parsePrefix() (ast.Expression, error) {
	line := p.line
	switch p.current().Kind {
	case token.Minus:
		p.advance()
		operand, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		return ast.NewPrefix(line, ast.PrefixNeg, operand), nil
	case token.Not:
		p.advance()
		operand, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		return ast.NewPrefix(line, ast.PrefixNot, operand), nil
	default:
		return p.parsePostfix()
	}
}

// parsePostfix := primary ('(' expr-list? ')')?
func (p *Parser) parsePostfix() (ast.Expression, error) {
	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.current().Kind != token.LParen {
		return primary, nil
	}

	ident, ok := primary.(*ast.Primary)
	if !ok || ident.Kind != ast.PrimaryIdent {
		return nil, p.errorf("only identifiers may be called as functions")
	}

	line := p.line
	p.advance() // '('

	var args []ast.Expression
	if p.current().Kind != token.RParen {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.current().Kind != token.Comma {
				break
			}
			p.advance()
		}
	}

	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return ast.NewPostfix(line, ident.Name, args), nil
}

// parsePrimary := id | number | hex-number | bool-literal | '(' expr ')'
func (p *Parser) parsePrimary() (ast.Expression, error) {
	line := p.line
	tok := p.current()

	switch tok.Kind {
	case token.Ident:
		p.advance()
		return ast.NewPrimaryIdent(line, tok.Lexeme), nil

	case token.Number:
		p.advance()
		v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, p.errorf("malformed decimal literal %q", tok.Lexeme)
		}
		return ast.NewPrimaryNumber(line, v), nil

	case token.NumberHex:
		p.advance()
		v, err := strconv.ParseInt(tok.Lexeme[2:], 16, 64)
		if err != nil {
			return nil, p.errorf("malformed hexadecimal literal %q", tok.Lexeme)
		}
		return ast.NewPrimaryNumberHex(line, v), nil

	case token.BoolTrue:
		p.advance()
		return ast.NewPrimaryBool(line, true), nil

	case token.BoolFalse:
		p.advance()
		return ast.NewPrimaryBool(line, false), nil

	case token.LParen:
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		return nil, p.errorf("unexpected token %s in expression", p.describeCurrent())
	}
}
