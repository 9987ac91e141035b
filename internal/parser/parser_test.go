package parser

import (
	"testing"

	"github.com/rgeorge/ramseyc/internal/ast"
	"github.com/rgeorge/ramseyc/internal/lexer"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, err := lexer.New(src).Tokenize()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	prog, err := Parse(toks)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return prog
}

func TestParseFunctionSignature(t *testing.T) {
	src := "fun add(in a, in b) as in\n" +
		"toss a + b\n" +
		"endfun\n"

	prog := parseSource(t, src)
	if len(prog.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(prog.Functions))
	}
	fn := prog.Functions[0]
	if fn.Name != "add" {
		t.Errorf("expected function name 'add', got %q", fn.Name)
	}
	if fn.ReturnType != ast.TypeIn {
		t.Errorf("expected return type in, got %s", fn.ReturnType)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if fn.Params[0].Name != "a" || fn.Params[0].Type != ast.TypeIn {
		t.Errorf("unexpected first parameter: %+v", fn.Params[0])
	}
	if fn.Params[1].Name != "b" || fn.Params[1].Type != ast.TypeIn {
		t.Errorf("unexpected second parameter: %+v", fn.Params[1])
	}
}

func TestParseImplicitReturnTypeDefaultsToIn(t *testing.T) {
	src := "fun noop()\n" +
		"toss\n" +
		"endfun\n"

	fn := parseSource(t, src).Functions[0]
	if fn.ReturnType != ast.TypeIn {
		t.Errorf("expected implicit return type in, got %s", fn.ReturnType)
	}
}

func TestParseDeclarationWithInitializer(t *testing.T) {
	src := "fun main() as in\n" +
		"in x <- 41\n" +
		"toss x\n" +
		"endfun\n"

	fn := parseSource(t, src).Functions[0]
	decl, ok := fn.Body[0].(*ast.Declaration)
	if !ok {
		t.Fatalf("expected a Declaration, got %T", fn.Body[0])
	}
	if decl.Name != "x" || decl.Type != ast.TypeIn {
		t.Errorf("unexpected declaration: %+v", decl)
	}
	num, ok := decl.Init.(*ast.Primary)
	if !ok || num.Kind != ast.PrimaryNumber || num.IntValue != 41 {
		t.Errorf("expected initializer literal 41, got %+v", decl.Init)
	}
}

func TestParseIfElfElseChain(t *testing.T) {
	src := "fun classify(in n) as in\n" +
		"if (n < 0)\n" +
		"toss 0 - 1\n" +
		"elf (n = 0)\n" +
		"toss 0\n" +
		"else\n" +
		"toss 1\n" +
		"endif\n" +
		"endfun\n"

	fn := parseSource(t, src).Functions[0]
	sel, ok := fn.Body[0].(*ast.Selection)
	if !ok {
		t.Fatalf("expected a Selection, got %T", fn.Body[0])
	}
	if len(sel.Then) != 1 {
		t.Fatalf("expected 1 then-statement, got %d", len(sel.Then))
	}
	if sel.Elf == nil {
		t.Fatal("expected a chained elf clause")
	}
	if sel.Elf.Next != nil {
		t.Error("expected exactly one elf clause in the chain")
	}
	if len(sel.Else) != 1 {
		t.Fatalf("expected 1 else-statement, got %d", len(sel.Else))
	}
}

func TestParseWhileLoop(t *testing.T) {
	src := "fun countDown(in n) as in\n" +
		"while (n > 0)\n" +
		"n <- n - 1\n" +
		"endwhile\n" +
		"toss n\n" +
		"endfun\n"

	fn := parseSource(t, src).Functions[0]
	it, ok := fn.Body[0].(*ast.Iterative)
	if !ok {
		t.Fatalf("expected an Iterative, got %T", fn.Body[0])
	}
	if len(it.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(it.Body))
	}
}

func TestParseTossWithAndWithoutValue(t *testing.T) {
	src := "fun f() as in\n" +
		"toss 1\n" +
		"endfun\n"
	fn := parseSource(t, src).Functions[0]
	jmp, ok := fn.Body[0].(*ast.Jump)
	if !ok || jmp.Kind != ast.JumpToss || jmp.Expr == nil {
		t.Fatalf("expected a toss with a value, got %+v", fn.Body[0])
	}

	src = "fun g()\n" +
		"toss\n" +
		"endfun\n"
	fn = parseSource(t, src).Functions[0]
	jmp, ok = fn.Body[0].(*ast.Jump)
	if !ok || jmp.Kind != ast.JumpToss || jmp.Expr != nil {
		t.Fatalf("expected a bare toss, got %+v", fn.Body[0])
	}
}

func TestParseSmash(t *testing.T) {
	src := "fun f() as in\n" +
		"while (true)\n" +
		"smash\n" +
		"endwhile\n" +
		"toss 0\n" +
		"endfun\n"
	fn := parseSource(t, src).Functions[0]
	it := fn.Body[0].(*ast.Iterative)
	jmp, ok := it.Body[0].(*ast.Jump)
	if !ok || jmp.Kind != ast.JumpSmash {
		t.Fatalf("expected a smash, got %+v", it.Body[0])
	}
}

func TestParseAssignmentExpression(t *testing.T) {
	src := "fun f() as in\n" +
		"in x <- 0\n" +
		"x <- x + 1\n" +
		"toss x\n" +
		"endfun\n"
	fn := parseSource(t, src).Functions[0]
	stmt, ok := fn.Body[1].(*ast.ExprStatement)
	if !ok {
		t.Fatalf("expected an ExprStatement, got %T", fn.Body[1])
	}
	asn, ok := stmt.Exprs[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("expected an Assignment, got %T", stmt.Exprs[0])
	}
	if asn.Target.Name != "x" {
		t.Errorf("expected assignment target 'x', got %q", asn.Target.Name)
	}
}

func TestParseFunctionCall(t *testing.T) {
	src := "fun f(in n) as in\n" +
		"toss f(n - 1)\n" +
		"endfun\n"
	fn := parseSource(t, src).Functions[0]
	jmp := fn.Body[0].(*ast.Jump)
	call, ok := jmp.Expr.(*ast.Postfix)
	if !ok {
		t.Fatalf("expected a Postfix call, got %T", jmp.Expr)
	}
	if call.Callee != "f" {
		t.Errorf("expected callee 'f', got %q", call.Callee)
	}
	if len(call.Args) != 1 {
		t.Fatalf("expected 1 argument, got %d", len(call.Args))
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	src := "fun f() as in\n" +
		"toss 1 + 2 * 3\n" +
		"endfun\n"
	fn := parseSource(t, src).Functions[0]
	jmp := fn.Body[0].(*ast.Jump)
	add, ok := jmp.Expr.(*ast.Additive)
	if !ok {
		t.Fatalf("expected an Additive at the top, got %T", jmp.Expr)
	}
	if len(add.Operands) != 2 {
		t.Fatalf("expected 2 additive operands, got %d", len(add.Operands))
	}
	if _, ok := add.Operands[1].(*ast.Multiplicative); !ok {
		t.Errorf("expected the second operand to be a Multiplicative, got %T", add.Operands[1])
	}
}

func TestParseUnexpectedTokenIsParseError(t *testing.T) {
	toks, err := lexer.New("fun f(\n").Tokenize()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	if _, err := Parse(toks); err == nil {
		t.Fatal("expected a parse error for a malformed function header")
	}
}

func TestParseMultipleFunctions(t *testing.T) {
	src := "fun a() as in\n" +
		"toss 1\n" +
		"endfun\n" +
		"fun b() as in\n" +
		"toss 2\n" +
		"endfun\n"
	prog := parseSource(t, src)
	if len(prog.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(prog.Functions))
	}
}
