package codegen

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/rgeorge/ramseyc/internal/lexer"
	"github.com/rgeorge/ramseyc/internal/parser"
	"github.com/rgeorge/ramseyc/internal/semantic"
)

func compile(t *testing.T, src string) string {
	t.Helper()
	toks, err := lexer.New(src).Tokenize()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if err := semantic.Analyze(prog); err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	return Generate(prog, Posix)
}

func TestGenerateSimpleReturn(t *testing.T) {
	src := "fun main() as in\n" +
		"in x <- 1\n" +
		"toss x\n" +
		"endfun\n"
	snaps.MatchSnapshot(t, compile(t, src))
}

func TestGenerateIfElfElse(t *testing.T) {
	src := "fun classify(in n) as in\n" +
		"if (n < 0)\n" +
		"toss 0 - 1\n" +
		"elf (n = 0)\n" +
		"toss 0\n" +
		"else\n" +
		"toss 1\n" +
		"endif\n" +
		"endfun\n"
	snaps.MatchSnapshot(t, compile(t, src))
}

func TestGenerateWhileSmash(t *testing.T) {
	src := "fun countTo(in limit) as in\n" +
		"in i <- 0\n" +
		"while (i < limit)\n" +
		"if (i = 5)\n" +
		"smash\n" +
		"endif\n" +
		"i <- i + 1\n" +
		"endwhile\n" +
		"toss i\n" +
		"endfun\n"
	snaps.MatchSnapshot(t, compile(t, src))
}

func TestGenerateRecursiveCall(t *testing.T) {
	src := "fun fact(in n) as in\n" +
		"if (n < 2)\n" +
		"toss 1\n" +
		"endif\n" +
		"toss n * fact(n - 1)\n" +
		"endfun\n"
	snaps.MatchSnapshot(t, compile(t, src))
}

func TestGenerateWideningArithmetic(t *testing.T) {
	src := "fun widen(small a, big b) as big\n" +
		"toss a + b\n" +
		"endfun\n"
	snaps.MatchSnapshot(t, compile(t, src))
}

func TestGenerateLogicalShortCircuit(t *testing.T) {
	src := "fun both(boo a, boo b) as boo\n" +
		"toss a and b or not a\n" +
		"endfun\n"
	snaps.MatchSnapshot(t, compile(t, src))
}

func TestGenerateMultiFunctionLabelsDoNotCollide(t *testing.T) {
	src := "fun first(in x) as in\n" +
		"if (x < 0)\n" +
		"toss 0\n" +
		"endif\n" +
		"toss x\n" +
		"endfun\n" +
		"fun second(in y) as in\n" +
		"if (y < 0)\n" +
		"toss 0\n" +
		"endif\n" +
		"toss second(y - 1)\n" +
		"endfun\n"
	snaps.MatchSnapshot(t, compile(t, src))
}
