// Package parser implements the LL(1) recursive-descent parser for
// Ramsey, built directly over the published grammar. Each grammar
// routine returns a typed AST node (or error) directly rather than
// threading a builder stack; single-operand chains collapse naturally
// by simply not wrapping them when only one operand was parsed.
package parser

import (
	"fmt"

	"github.com/rgeorge/ramseyc/internal/ast"
	"github.com/rgeorge/ramseyc/internal/errors"
	"github.com/rgeorge/ramseyc/internal/lexer"
	"github.com/rgeorge/ramseyc/internal/token"
)

// Parser drives a Cursor over a lexed token sequence, tracking the
// current source line itself: line numbers are not carried on tokens,
// so the parser derives them by counting EOL tokens as it consumes them.
type Parser struct {
	cur  *lexer.Cursor
	line int
}

// New creates a Parser over an already-lexed token sequence.
func New(toks []token.Token) *Parser {
	return &Parser{cur: lexer.NewCursor(toks), line: 1}
}

// Parse lexes nothing itself; it parses an already-tokenized program.
func Parse(toks []token.Token) (*ast.Program, error) {
	return New(toks).parseProgram()
}

func (p *Parser) current() token.Token {
	return p.cur.Current()
}

// advance consumes the current token and returns it, bumping the
// tracked line number whenever an EOL is consumed.
func (p *Parser) advance() token.Token {
	t := p.cur.Advance()
	if t.Kind == token.EOL {
		p.line++
	}
	return t
}

// expect consumes the current token if it has kind k, or fails with a
// ParseError naming the current line and the offending token.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.current().Kind != k {
		return token.Token{}, p.errorf("expected %s but found %s", k, p.describeCurrent())
	}
	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return errors.Parse(p.line, format, args...)
}

func (p *Parser) describeCurrent() string {
	t := p.current()
	if t.Lexeme != "" {
		return fmt.Sprintf("%q (%s)", t.Lexeme, t.Kind)
	}
	return t.Kind.String()
}

func describeKinds(kinds []token.Kind) string {
	if len(kinds) == 0 {
		return "end of construct"
	}
	s := kinds[0].String()
	for _, k := range kinds[1:] {
		s += " or " + k.String()
	}
	return s
}

// skipEOLs consumes zero or more consecutive EOL tokens; multiple
// newlines between statements are transparent to the grammar.
func (p *Parser) skipEOLs() {
	for p.current().Kind == token.EOL {
		p.advance()
	}
}

func (p *Parser) atAny(kinds []token.Kind) bool {
	cur := p.current().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

// parseProgram := (function)*
func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	p.skipEOLs()
	for p.current().Kind != token.EOF {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		prog.Functions = append(prog.Functions, fn)
		p.skipEOLs()
	}
	return prog, nil
}

// parseFunction := 'fun' id '(' params? ')' ('as' type)? eol stmt* 'endfun' eol
func (p *Parser) parseFunction() (*ast.Function, error) {
	line := p.line
	if _, err := p.expect(token.Fun); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}

	fn := &ast.Function{LineNo: line, Name: nameTok.Lexeme, ReturnType: ast.TypeIn}

	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	if p.current().Kind != token.RParen {
		params, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		fn.Params = params
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}

	if p.current().Kind == token.As {
		p.advance()
		typ, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		fn.ReturnType = typ
	}

	if _, err := p.expect(token.EOL); err != nil {
		return nil, err
	}

	body, err := p.parseStmtList(token.Endfun)
	if err != nil {
		return nil, err
	}
	fn.Body = body

	if _, err := p.expect(token.Endfun); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EOL); err != nil {
		return nil, err
	}

	return fn, nil
}

// parseParams := type id (',' type id)*
func (p *Parser) parseParams() ([]*ast.Parameter, error) {
	var params []*ast.Parameter
	for {
		line := p.line
		typ, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		nameTok, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		params = append(params, &ast.Parameter{LineNo: line, Type: typ, Name: nameTok.Lexeme})
		if p.current().Kind != token.Comma {
			break
		}
		p.advance()
	}
	return params, nil
}

func (p *Parser) parseTypeName() (ast.Type, error) {
	switch p.current().Kind {
	case token.In:
		p.advance()
		return ast.TypeIn, nil
	case token.Big:
		p.advance()
		return ast.TypeBig, nil
	case token.Small:
		p.advance()
		return ast.TypeSmall, nil
	case token.Boo:
		p.advance()
		return ast.TypeBoo, nil
	default:
		return ast.TypeInvalid, p.errorf("expected a type name but found %s", p.describeCurrent())
	}
}

// parseStmtList parses statements until the current token matches one of
// the given terminator kinds, which are left unconsumed.
func (p *Parser) parseStmtList(enders ...token.Kind) ([]ast.Statement, error) {
	var stmts []ast.Statement
	p.skipEOLs()
	for !p.atAny(enders) {
		if p.current().Kind == token.EOF {
			return nil, p.errorf("unexpected end of file, expected %s", describeKinds(enders))
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.skipEOLs()
	}
	return stmts, nil
}

// parseStmt := decl | if | while | jump | expr-list
func (p *Parser) parseStmt() (ast.Statement, error) {
	switch p.current().Kind {
	case token.In, token.Big, token.Small, token.Boo:
		return p.parseDecl()
	case token.If:
		return p.parseSelection()
	case token.While:
		return p.parseIterative()
	case token.Toss, token.Smash:
		return p.parseJump()
	default:
		return p.parseExprStatement()
	}
}

// parseDecl := type id ('<-' expr)? eol
func (p *Parser) parseDecl() (ast.Statement, error) {
	line := p.line
	typ, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}

	decl := &ast.Declaration{LineNo: line, Type: typ, Name: nameTok.Lexeme}

	if p.current().Kind == token.Assign {
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		decl.Init = expr
	}

	if _, err := p.expect(token.EOL); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseExprStatement := expr (',' expr)* eol
func (p *Parser) parseExprStatement() (ast.Statement, error) {
	line := p.line
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	exprs := []ast.Expression{expr}
	for p.current().Kind == token.Comma {
		p.advance()
		next, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, next)
	}
	if _, err := p.expect(token.EOL); err != nil {
		return nil, err
	}
	return &ast.ExprStatement{LineNo: line, Exprs: exprs}, nil
}

// parseSelection := 'if' '(' expr ')' eol stmt* (elf)* ('else' eol stmt*)? 'endif' eol
func (p *Parser) parseSelection() (ast.Statement, error) {
	line := p.line
	p.advance() // 'if'

	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EOL); err != nil {
		return nil, err
	}

	thenBody, err := p.parseStmtList(token.Elf, token.Else, token.Endif)
	if err != nil {
		return nil, err
	}

	sel := &ast.Selection{LineNo: line, Cond: cond, Then: thenBody}

	if p.current().Kind == token.Elf {
		elf, err := p.parseElf()
		if err != nil {
			return nil, err
		}
		sel.Elf = elf
	}

	if p.current().Kind == token.Else {
		p.advance()
		if _, err := p.expect(token.EOL); err != nil {
			return nil, err
		}
		elseBody, err := p.parseStmtList(token.Endif)
		if err != nil {
			return nil, err
		}
		sel.Else = elseBody
	}

	if _, err := p.expect(token.Endif); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EOL); err != nil {
		return nil, err
	}

	return sel, nil
}

// parseElf := 'elf' '(' expr ')' eol stmt*
func (p *Parser) parseElf() (*ast.Elf, error) {
	line := p.line
	p.advance() // 'elf'

	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EOL); err != nil {
		return nil, err
	}

	body, err := p.parseStmtList(token.Elf, token.Else, token.Endif)
	if err != nil {
		return nil, err
	}

	elf := &ast.Elf{LineNo: line, Cond: cond, Body: body}

	if p.current().Kind == token.Elf {
		next, err := p.parseElf()
		if err != nil {
			return nil, err
		}
		elf.Next = next
	}

	return elf, nil
}

// parseIterative := 'while' '(' expr ')' eol stmt* 'endwhile' eol
func (p *Parser) parseIterative() (ast.Statement, error) {
	line := p.line
	p.advance() // 'while'

	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EOL); err != nil {
		return nil, err
	}

	body, err := p.parseStmtList(token.Endwhile)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Endwhile); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EOL); err != nil {
		return nil, err
	}

	return &ast.Iterative{LineNo: line, Cond: cond, Body: body}, nil
}

// parseJump := 'toss' expr? eol | 'smash' eol
func (p *Parser) parseJump() (ast.Statement, error) {
	line := p.line
	switch p.current().Kind {
	case token.Smash:
		p.advance()
		if _, err := p.expect(token.EOL); err != nil {
			return nil, err
		}
		return &ast.Jump{LineNo: line, Kind: ast.JumpSmash}, nil

	case token.Toss:
		p.advance()
		j := &ast.Jump{LineNo: line, Kind: ast.JumpToss}
		if p.current().Kind != token.EOL {
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			j.Expr = expr
		}
		if _, err := p.expect(token.EOL); err != nil {
			return nil, err
		}
		return j, nil

	default:
		return nil, p.errorf("expected toss or smash but found %s", p.describeCurrent())
	}
}
