package semantic

import (
	"strings"
	"testing"

	"github.com/rgeorge/ramseyc/internal/ast"
	"github.com/rgeorge/ramseyc/internal/lexer"
	"github.com/rgeorge/ramseyc/internal/parser"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, err := lexer.New(src).Tokenize()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return prog
}

func analyzeSource(t *testing.T, src string) error {
	t.Helper()
	return Analyze(parseProgram(t, src))
}

func TestAnalyzeSimpleFunctionOkay(t *testing.T) {
	src := "fun main() as in\n" +
		"in x <- 1\n" +
		"toss x\n" +
		"endfun\n"
	if err := analyzeSource(t, src); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestAnalyzeRedeclaredVariable(t *testing.T) {
	src := "fun main() as in\n" +
		"in x <- 1\n" +
		"in x <- 2\n" +
		"toss x\n" +
		"endfun\n"
	err := analyzeSource(t, src)
	if err == nil || !strings.Contains(err.Error(), "redeclaration of variable 'x'") {
		t.Fatalf("expected redeclaration error, got: %v", err)
	}
}

func TestAnalyzeUndeclaredIdentifier(t *testing.T) {
	src := "fun main() as in\n" +
		"toss y\n" +
		"endfun\n"
	err := analyzeSource(t, src)
	if err == nil || !strings.Contains(err.Error(), "undeclared identifier 'y'") {
		t.Fatalf("expected undeclared identifier error, got: %v", err)
	}
}

func TestAnalyzeIfConditionMustBeBoo(t *testing.T) {
	src := "fun main() as in\n" +
		"if (1)\n" +
		"toss 1\n" +
		"endif\n" +
		"toss 0\n" +
		"endfun\n"
	err := analyzeSource(t, src)
	if err == nil || !strings.Contains(err.Error(), "if-statement condition must have type boo") {
		t.Fatalf("expected boo condition error, got: %v", err)
	}
}

func TestAnalyzeSmashOutsideLoop(t *testing.T) {
	src := "fun main() as in\n" +
		"smash\n" +
		"toss 0\n" +
		"endfun\n"
	err := analyzeSource(t, src)
	if err == nil || !strings.Contains(err.Error(), "smash used outside of a while loop") {
		t.Fatalf("expected smash-outside-loop error, got: %v", err)
	}
}

func TestAnalyzeSmashInsideLoopOkay(t *testing.T) {
	src := "fun main() as in\n" +
		"while (true)\n" +
		"smash\n" +
		"endwhile\n" +
		"toss 0\n" +
		"endfun\n"
	if err := analyzeSource(t, src); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestAnalyzeAssignmentTypeMismatch(t *testing.T) {
	src := "fun main() as in\n" +
		"boo b <- true\n" +
		"b <- 1\n" +
		"toss 0\n" +
		"endfun\n"
	err := analyzeSource(t, src)
	if err == nil || !strings.Contains(err.Error(), "cannot assign") {
		t.Fatalf("expected assignment type mismatch error, got: %v", err)
	}
}

func TestAnalyzeSmallWidensToBig(t *testing.T) {
	src := "fun main() as in\n" +
		"small s <- 1\n" +
		"big g <- s\n" +
		"toss 0\n" +
		"endfun\n"
	if err := analyzeSource(t, src); err != nil {
		t.Fatalf("expected small->big widening to be legal, got: %v", err)
	}
}

func TestAnalyzeBigDoesNotNarrowToSmall(t *testing.T) {
	src := "fun main() as in\n" +
		"big g <- 1\n" +
		"small s <- g\n" +
		"toss 0\n" +
		"endfun\n"
	err := analyzeSource(t, src)
	if err == nil || !strings.Contains(err.Error(), "cannot initialize") {
		t.Fatalf("expected big->small narrowing to be rejected, got: %v", err)
	}
}

func TestAnalyzeCallArityMismatch(t *testing.T) {
	src := "fun add(in a, in b) as in\n" +
		"toss a + b\n" +
		"endfun\n" +
		"fun main() as in\n" +
		"toss add(1)\n" +
		"endfun\n"
	err := analyzeSource(t, src)
	if err == nil || !strings.Contains(err.Error(), "too few arguments") {
		t.Fatalf("expected too-few-arguments error, got: %v", err)
	}
}

func TestAnalyzeCallTypeMismatch(t *testing.T) {
	src := "fun takesBoo(boo b) as in\n" +
		"toss 0\n" +
		"endfun\n" +
		"fun main() as in\n" +
		"toss takesBoo(1)\n" +
		"endfun\n"
	err := analyzeSource(t, src)
	if err == nil || !strings.Contains(err.Error(), "argument type mismatch") {
		t.Fatalf("expected argument type mismatch error, got: %v", err)
	}
}

func TestAnalyzeMutualRecursionResolves(t *testing.T) {
	src := "fun isEven(in n) as boo\n" +
		"if (n = 0)\n" +
		"toss true\n" +
		"endif\n" +
		"toss isOdd(n - 1)\n" +
		"endfun\n" +
		"fun isOdd(in n) as boo\n" +
		"if (n = 0)\n" +
		"toss false\n" +
		"endif\n" +
		"toss isEven(n - 1)\n" +
		"endfun\n"
	if err := analyzeSource(t, src); err != nil {
		t.Fatalf("expected mutual recursion to resolve, got: %v", err)
	}
}

func TestAnalyzeBlockScopingDoesNotLeak(t *testing.T) {
	src := "fun main() as in\n" +
		"if (true)\n" +
		"in x <- 1\n" +
		"endif\n" +
		"toss x\n" +
		"endfun\n"
	err := analyzeSource(t, src)
	if err == nil || !strings.Contains(err.Error(), "undeclared identifier 'x'") {
		t.Fatalf("expected x to be out of scope after the if-block, got: %v", err)
	}
}

func TestAnalyzeTossTypeMismatch(t *testing.T) {
	src := "fun main() as boo\n" +
		"toss 1\n" +
		"endfun\n"
	err := analyzeSource(t, src)
	if err == nil || !strings.Contains(err.Error(), "is not assignable to return type") {
		t.Fatalf("expected toss type mismatch error, got: %v", err)
	}
}

func TestAnalyzeFunctionRedeclaration(t *testing.T) {
	src := "fun main() as in\n" +
		"toss 0\n" +
		"endfun\n" +
		"fun main() as in\n" +
		"toss 1\n" +
		"endfun\n"
	err := analyzeSource(t, src)
	if err == nil || !strings.Contains(err.Error(), "redeclaration of function 'main'") {
		t.Fatalf("expected function redeclaration error, got: %v", err)
	}
}

func TestAnalyzeLogicalOperandsMustBeBoo(t *testing.T) {
	src := "fun main() as in\n" +
		"boo b <- (1 and true)\n" +
		"toss 0\n" +
		"endfun\n"
	err := analyzeSource(t, src)
	if err == nil || !strings.Contains(err.Error(), "operands must have type boo") {
		t.Fatalf("expected logical operand error, got: %v", err)
	}
}

func TestAnalyzeArithmeticWideningPicksBig(t *testing.T) {
	prog := parseProgram(t, "fun main() as in\n"+
		"small s <- 1\n"+
		"big g <- 2\n"+
		"in result <- s + g\n"+
		"toss result\n"+
		"endfun\n")
	if err := Analyze(prog); err != nil {
		t.Fatalf("expected widening to big to succeed, got: %v", err)
	}
	sum := prog.Functions[0].Body[2].(*ast.Declaration).Init
	if got := sum.ResolvedType(); got != ast.TypeBig {
		t.Errorf("expected s + g to have type big, got %s", got)
	}
}
