package codegen

import (
	"fmt"

	"github.com/rgeorge/ramseyc/internal/ast"
)

// genFunction resets every piece of per-function state before emitting
// a function's prologue, body, and epilogue. Unlike the reference
// implementation this state is reset per function rather than left to
// accumulate across an entire program: label numbers must stay globally
// unique (two functions must never share a local label), but frame
// allocation, argument numbering, and the register pool are specific to
// one call frame and must start fresh for every function, or a second
// function in the same file would inherit stack offsets and argument
// positions left over from the first.
func (g *Generator) genFunction(fn *ast.Function) string {
	g.alloc = 0
	g.argCount = 0
	g.freeList = [3][]int{}
	g.regHead = regInvalid
	g.regCount = -1
	g.returnLabel = 0
	g.storeLabels = nil
	g.before.Reset()
	g.body.Reset()

	g.pushScope()
	defer g.popScope()

	g.beginFunction(fn.Name)
	for _, param := range fn.Params {
		param.Offset = g.nextArgumentOffset()
		g.bind(param.Name, param.Offset, param.Type)
	}
	for _, stmt := range fn.Body {
		g.genStatement(stmt)
	}
	g.endFunction()

	return g.before.String() + g.body.String() + "\n"
}

func (g *Generator) symbolName(name string) string {
	if g.platform == Windows {
		return "_" + name
	}
	return name
}

func (g *Generator) beginFunction(name string) {
	symbol := g.symbolName(name)
	g.instructionBefore(".globl %s", symbol)
	g.instructionBefore(".type %s, @function", symbol)
	fmt.Fprintf(&g.before, "%s:\n", symbol)
	g.instructionBefore("pushl %%ebp")
	g.instructionBefore("movl %%esp, %%ebp")
}

func (g *Generator) endFunction() {
	if g.returnLabel > 0 {
		g.writeline("lbl%d:", g.returnLabel)
		g.returnLabel = 0
	}
	if g.alloc > 0 {
		// stack allocation amount is always a multiple of 16 (see
		// nextVariableOffset), which keeps %esp aligned for any callee.
		g.instructionBefore("subl $%d, %%esp", g.alloc)
		g.instruction("leave")
	} else {
		g.instruction("popl %%ebp")
	}
	g.instruction("ret")
}
