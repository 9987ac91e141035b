// Package codegen lowers a type-checked Ramsey AST to 32-bit x86 AT&T
// assembly, following the cdecl calling convention. Intermediate
// results live in a four-register pool (eax/ebx/ecx/edx) that spills to
// the stack once every register is simultaneously in use; locals are
// packed onto the stack frame by width using a small free-list
// allocator so that byte and word locals don't waste a full dword each.
package codegen

import (
	"fmt"
	"io"
	"strings"

	"github.com/rgeorge/ramseyc/internal/ast"
	"github.com/rgeorge/ramseyc/internal/errors"
)

// Platform selects the target's symbol-naming convention: POSIX ELF
// targets use bare symbol names, while the MS Windows/MinGW toolchain
// requires a leading underscore on every global symbol.
type Platform int

const (
	Posix Platform = iota
	Windows
)

// widths indexes free-list buckets by allocation size: widths[0] is the
// 4-byte bucket, widths[1] the 2-byte bucket, widths[2] the 1-byte
// bucket.
var widths = [3]int{4, 2, 1}

func widthIndex(w int) int {
	switch w {
	case 2:
		return 1
	case 1:
		return 2
	default:
		return 0
	}
}

// Generator emits one assembly listing for an entire program. Labels
// are numbered globally across every function so that two functions
// never emit a colliding local label; everything else (frame layout,
// register pool, stored break targets) is reset at the start of each
// function by genFunction.
type Generator struct {
	platform Platform

	before, body strings.Builder

	label int

	alloc    int
	argCount int
	freeList [3][]int

	regHead  reg
	regCount int

	returnLabel int
	storeLabels []int

	scope []map[string]symbolRef
}

// symbolRef is codegen's own minimal view of a variable: just enough to
// load and store it. It is populated as declarations and parameters are
// visited, independent of the semantic analyzer's own symbol table.
type symbolRef struct {
	offset int
	typ    ast.Type
}

// NewGenerator returns a Generator targeting the given platform.
func NewGenerator(platform Platform) *Generator {
	return &Generator{platform: platform}
}

// Generate lowers an entire, already-analyzed program to assembly text,
// buffering the whole listing in memory. Prefer WriteTo for a real
// compile: it flushes one function at a time so the downstream
// assembler pipe never has to absorb an entire program's worth of
// assembly in one write.
func Generate(prog *ast.Program, platform Platform) string {
	var sb strings.Builder
	_ = WriteTo(&sb, prog, platform) // strings.Builder.Write never fails
	return sb.String()
}

// WriteTo lowers prog to assembly, writing (and flushing, in the sense
// of handing off to w) one function's listing at a time rather than
// accumulating the entire program before the first byte reaches the
// downstream sink. A write failure on w is surfaced as an IoError and
// aborts the remaining functions, matching the fail-fast discipline the
// rest of the compiler's pass boundaries use.
func WriteTo(w io.Writer, prog *ast.Program, platform Platform) error {
	g := NewGenerator(platform)
	for _, fn := range prog.Functions {
		listing := g.genFunction(fn)
		if _, err := io.WriteString(w, listing); err != nil {
			return errors.IO(err, "failed writing generated assembly")
		}
	}
	return nil
}

func (g *Generator) pushScope() {
	g.scope = append(g.scope, make(map[string]symbolRef))
}

func (g *Generator) popScope() {
	g.scope = g.scope[:len(g.scope)-1]
}

func (g *Generator) bind(name string, offset int, typ ast.Type) {
	g.scope[len(g.scope)-1][name] = symbolRef{offset: offset, typ: typ}
}

func (g *Generator) resolve(name string) symbolRef {
	for i := len(g.scope) - 1; i >= 0; i-- {
		if sym, ok := g.scope[i][name]; ok {
			return sym
		}
	}
	panic(fmt.Sprintf("codegen: internal error: unresolved identifier %q (semantic analysis should have rejected this)", name))
}

// instruction writes one assembly instruction to the function body,
// column-aligning the mnemonic the way the rest of this compiler's
// output is formatted.
func (g *Generator) instruction(format string, args ...any) {
	writeInstruction(&g.body, format, args...)
}

// instructionBefore writes to the function's preamble buffer, used for
// the handful of directives and the prologue that must precede the
// first instruction generated from the function body.
func (g *Generator) instructionBefore(format string, args ...any) {
	writeInstruction(&g.before, format, args...)
}

// writeline appends a raw line (typically a label definition) to the
// function body with no mnemonic-column formatting.
func (g *Generator) writeline(format string, args ...any) {
	fmt.Fprintf(&g.body, format+"\n", args...)
}

func writeInstruction(buf *strings.Builder, format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	mnemonic, rest, hasRest := strings.Cut(line, " ")
	if !hasRest {
		fmt.Fprintf(buf, "\t%s\n", mnemonic)
		return
	}
	fmt.Fprintf(buf, "\t%-7s%s\n", mnemonic, rest)
}

func (g *Generator) newLabel() int {
	g.label++
	return g.label
}

// returnLabelOf returns the label the function's `toss` statements jump
// to, allocating it lazily on first use.
func (g *Generator) returnLabelOf() int {
	if g.returnLabel <= 0 {
		g.returnLabel = g.newLabel()
	}
	return g.returnLabel
}

func (g *Generator) pushStoreLabel(lbl int) {
	g.storeLabels = append(g.storeLabels, lbl)
}

func (g *Generator) popStoreLabel() {
	g.storeLabels = g.storeLabels[:len(g.storeLabels)-1]
}

func (g *Generator) storeLabel() int {
	return g.storeLabels[len(g.storeLabels)-1]
}

// expectsResult reports whether the current expression context has an
// allocated result register (false only at the top of a statement that
// discards its expression's value entirely).
func (g *Generator) expectsResult() bool {
	return g.regCount >= 0
}

func (g *Generator) currentResultRegister(width int) string {
	return g.regHead.name(width)
}

// allocateResultRegister reserves the next register in the pool,
// spilling the incoming occupant to the stack once the pool wraps
// around (i.e. more than regCount results are simultaneously live).
func (g *Generator) allocateResultRegister() {
	g.regCount++
	g.regHead = reg(g.regCount % regCount)
	if g.regCount >= regCount {
		g.instruction("pushl %%%s", g.currentResultRegister(4))
	}
}

func (g *Generator) deallocateResultRegister() {
	if g.regCount >= regCount {
		g.instruction("popl %%%s", g.currentResultRegister(4))
	}
	g.regCount--
	if g.regCount < 0 {
		g.regHead = regInvalid
	} else {
		g.regHead = reg(g.regCount % regCount)
	}
}

// saveRegisters preserves every in-use register except the current
// result register across a call, so the callee's own register use
// can't clobber a pending intermediate value.
func (g *Generator) saveRegisters() {
	for i := 0; i < int(g.regHead); i++ {
		g.instruction("pushl %%%s", reg(i).name(4))
	}
	if g.regCount >= regCount {
		for i := int(g.regHead) + 1; i < regCount; i++ {
			g.instruction("pushl %%%s", reg(i).name(4))
		}
	}
}

func (g *Generator) restoreRegisters() {
	if g.regCount >= regCount {
		for i := regCount - 1; i > int(g.regHead); i-- {
			g.instruction("popl %%%s", reg(i).name(4))
		}
	}
	for i := int(g.regHead) - 1; i >= 0; i-- {
		g.instruction("popl %%%s", reg(i).name(4))
	}
}

// nextVariableOffset returns the next free stack slot (as a negative
// %ebp-relative offset) for a local of the given width, packing
// narrower locals into the padding left by wider ones rather than
// rounding every local up to 4 bytes.
func (g *Generator) nextVariableOffset(width int) int {
	iter := widthIndex(width)
	if len(g.freeList[iter]) == 0 {
		i := iter - 1
		for i >= 0 && len(g.freeList[i]) == 0 {
			i--
		}
		if i < 0 {
			old := g.alloc + 4
			g.alloc += 16
			for ; old <= g.alloc; old += 4 {
				g.freeList[0] = append(g.freeList[0], old)
			}
			i = 0
		}
		for ; i < iter; i++ {
			off := g.freeList[i][0]
			g.freeList[i] = g.freeList[i][1:]
			w := widths[i+1]
			g.freeList[i+1] = append(g.freeList[i+1], off-w, off)
		}
	}
	offset := g.freeList[iter][0]
	g.freeList[iter] = g.freeList[iter][1:]
	return -offset
}

// nextArgumentOffset returns the next cdecl argument slot: arguments
// live at positive offsets starting at 8(%ebp) (past the saved return
// address and saved %ebp), one 4-byte slot per argument regardless of
// its declared width, since every call site pushes a full register.
func (g *Generator) nextArgumentOffset() int {
	off := 8 + 4*g.argCount
	g.argCount++
	return off
}
