package codegen

import "github.com/rgeorge/ramseyc/internal/ast"

// genExpr lowers expr into the ambient result-register context: each
// node decides for itself, via expectsResult(), whether a register was
// already reserved for it by its caller (in which case it computes into
// that register and leaves it allocated) or whether it must reserve and
// release its own scratch register (when evaluated for a side effect,
// or as the first operand of a larger expression).
func (g *Generator) genExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Assignment:
		g.genAssignment(e)
	case *ast.LogicalOr:
		g.genLogicalOr(e)
	case *ast.LogicalAnd:
		g.genLogicalAnd(e)
	case *ast.Equality:
		g.genEquality(e)
	case *ast.Relational:
		g.genRelational(e)
	case *ast.Additive:
		g.genArith(e.Operands, e.Operators)
	case *ast.Multiplicative:
		g.genArith(e.Operands, e.Operators)
	case *ast.Prefix:
		g.genPrefix(e)
	case *ast.Postfix:
		g.genCall(e)
	case *ast.Primary:
		g.genPrimary(e)
	default:
		panic("codegen: internal error: unhandled expression type")
	}
}

// loadOperand optionally reserves a new result register, generates code
// for operand into it, and returns the register that now holds the
// value — the ambient one if this call didn't allocate.
func (g *Generator) loadOperand(operand ast.Expression, alloc bool) string {
	if alloc {
		g.allocateResultRegister()
	}
	g.genExpr(operand)
	if !g.expectsResult() {
		return "eax"
	}
	return g.currentResultRegister(4)
}

func (g *Generator) genAssignment(asn *ast.Assignment) {
	alloc := !g.expectsResult()
	sym := g.resolve(asn.Target.Name)

	if alloc {
		g.allocateResultRegister()
	}
	g.genExpr(asn.Value)

	regName := g.currentResultRegister(sym.typ.Width())
	g.storeVariable(sym, regName)

	if alloc {
		g.deallocateResultRegister()
	} else {
		// the assignment expression's own value is the assigned value;
		// reload it at full width into the caller's result register.
		g.instruction("movl %d(%%ebp), %%%s", sym.offset, g.currentResultRegister(4))
	}
}

func (g *Generator) genLogicalOr(e *ast.LogicalOr) {
	alloc := !g.expectsResult()
	lblTrue, lblFalse, lblDone := g.newLabel(), g.newLabel(), g.newLabel()

	regName := g.loadOperand(e.Operands[0], alloc)
	for _, operand := range e.Operands[1:] {
		g.instruction("cmpl $0, %%%s", regName)
		g.instruction("jne lbl%d", lblTrue)
		regName = g.loadOperand(operand, true)
	}
	g.instruction("cmpl $0, %%%s", regName)
	g.instruction("je lbl%d", lblFalse)

	g.writeline("lbl%d:", lblTrue)
	g.instruction("movl $1, %%%s", regName)
	g.instruction("jmp lbl%d", lblDone)

	g.writeline("lbl%d:", lblFalse)
	g.instruction("movl $0, %%%s", regName)
	g.writeline("lbl%d:", lblDone)

	if alloc {
		g.deallocateResultRegister()
	}
}

func (g *Generator) genLogicalAnd(e *ast.LogicalAnd) {
	alloc := !g.expectsResult()
	lblFalse, lblTrue, lblDone := g.newLabel(), g.newLabel(), g.newLabel()

	regName := g.loadOperand(e.Operands[0], alloc)
	for _, operand := range e.Operands[1:] {
		g.instruction("cmpl $0, %%%s", regName)
		g.instruction("je lbl%d", lblFalse)
		regName = g.loadOperand(operand, true)
	}
	g.instruction("cmpl $0, %%%s", regName)
	g.instruction("jne lbl%d", lblTrue)

	g.writeline("lbl%d:", lblFalse)
	g.instruction("movl $0, %%%s", regName)
	g.instruction("jmp lbl%d", lblDone)

	g.writeline("lbl%d:", lblTrue)
	g.instruction("movl $1, %%%s", regName)
	g.writeline("lbl%d:", lblDone)

	if alloc {
		g.deallocateResultRegister()
	}
}

func (g *Generator) genEquality(e *ast.Equality) {
	alloc := !g.expectsResult()
	regA := g.loadOperand(e.Left, alloc)
	regB := g.loadOperand(e.Right, true)

	lblTrue, lblDone := g.newLabel(), g.newLabel()
	g.instruction("cmp %%%s, %%%s", regA, regB)
	g.deallocateResultRegister()
	if alloc {
		g.deallocateResultRegister()
	}

	mnemonic := "je"
	if e.Op == ast.OpNotEqual {
		mnemonic = "jne"
	}
	g.instruction("%s lbl%d", mnemonic, lblTrue)
	g.instruction("movl $0, %%%s", regA)
	g.instruction("jmp lbl%d", lblDone)
	g.writeline("lbl%d:", lblTrue)
	g.instruction("movl $1, %%%s", regA)
	g.writeline("lbl%d:", lblDone)
}

func (g *Generator) genRelational(e *ast.Relational) {
	alloc := !g.expectsResult()
	regA := g.loadOperand(e.Left, alloc)
	regB := g.loadOperand(e.Right, true)

	lblTrue, lblDone := g.newLabel(), g.newLabel()
	g.instruction("cmp %%%s, %%%s", regB, regA)
	g.deallocateResultRegister()
	if alloc {
		g.deallocateResultRegister()
	}

	var mnemonic string
	switch e.Op {
	case ast.OpLess:
		mnemonic = "jl"
	case ast.OpGreater:
		mnemonic = "jg"
	case ast.OpLessEqual:
		mnemonic = "jle"
	default:
		mnemonic = "jge"
	}
	g.instruction("%s lbl%d", mnemonic, lblTrue)
	g.instruction("movl $0, %%%s", regA)
	g.instruction("jmp lbl%d", lblDone)
	g.writeline("lbl%d:", lblTrue)
	g.instruction("movl $1, %%%s", regA)
	g.writeline("lbl%d:", lblDone)
}

func (g *Generator) genArith(operands []ast.Expression, ops []ast.ArithOp) {
	alloc := !g.expectsResult()
	accum := g.loadOperand(operands[0], alloc)
	for i, op := range ops {
		g.loadOperand(operands[i+1], true)
		g.applyArithOp(op, accum)
		g.deallocateResultRegister()
	}
	if alloc {
		g.deallocateResultRegister()
	}
}

func (g *Generator) applyArithOp(op ast.ArithOp, accum string) {
	current := g.currentResultRegister(4)
	switch op {
	case ast.OpAdd:
		g.instruction("addl %%%s, %%%s", current, accum)
	case ast.OpSub:
		g.instruction("subl %%%s, %%%s", current, accum)
	case ast.OpMul:
		g.instruction("imull %%%s, %%%s", current, accum)
	default: // OpDiv, OpMod
		g.genDivMod(op, accum)
	}
}

// genDivMod implements signed division: the dividend must be in %eax,
// sign-extended into %edx via cdq, with the quotient left in %eax and
// the remainder in %edx. Since the accumulator and divisor may already
// occupy %eax/%edx for unrelated intermediate results, both are saved
// around the operation when necessary and restored afterward.
func (g *Generator) genDivMod(op ast.ArithOp, accum string) {
	current := g.currentResultRegister(4)
	saveEAX := accum != "eax"
	saveEDX := g.regCount >= int(regEDX)

	if saveEAX {
		g.instruction("pushl %%eax")
		g.instruction("movl %%%s, %%eax", accum)
	}
	if saveEDX {
		g.instruction("pushl %%edx")
	}
	g.instruction("cdq")
	if g.regHead == regEDX {
		g.instruction("idivl (%%esp)")
	} else {
		g.instruction("idivl %%%s", current)
	}
	if op == ast.OpMod {
		g.instruction("movl %%edx, %%%s", accum)
	} else if saveEAX {
		g.instruction("movl %%eax, %%%s", accum)
	}
	if saveEDX {
		g.instruction("popl %%edx")
	}
	if saveEAX {
		g.instruction("popl %%eax")
	}
}

func (g *Generator) genPrefix(p *ast.Prefix) {
	alloc := !g.expectsResult()
	regName := g.loadOperand(p.Operand, alloc)

	if p.Op == ast.PrefixNot {
		regLow := g.currentResultRegister(1)
		g.instruction("cmp $0, %%%s", regName)
		g.instruction("sete %%%s", regLow)
		g.instruction("movzbl %%%s, %%%s", regLow, regName)
	} else {
		g.instruction("negl %%%s", regName)
	}

	if alloc {
		g.deallocateResultRegister()
	}
}

// genCall pushes arguments right-to-left (cdecl order: the leftmost
// argument ends up at the lowest address, 8(%ebp)) and always passes
// them as full 4-byte values, matching how nextArgumentOffset lays out
// the callee's frame.
func (g *Generator) genCall(call *ast.Postfix) {
	g.saveRegisters()

	alloc := !g.expectsResult()
	if alloc {
		g.allocateResultRegister()
	}
	for i := len(call.Args) - 1; i >= 0; i-- {
		g.genExpr(call.Args[i])
		g.instruction("pushl %%%s", g.currentResultRegister(4))
	}
	if alloc {
		g.deallocateResultRegister()
	}

	g.instruction("call %s", g.symbolName(call.Callee))
	if g.expectsResult() && g.regHead != regEAX {
		g.instruction("movl %%eax, %%%s", g.currentResultRegister(4))
	}
	if len(call.Args) > 0 {
		g.instruction("addl $%d, %%esp", len(call.Args)*4)
	}

	g.restoreRegisters()
}

func (g *Generator) genPrimary(p *ast.Primary) {
	if !g.expectsResult() {
		return
	}
	dest := g.currentResultRegister(4)

	switch p.Kind {
	case ast.PrimaryIdent:
		g.loadVariable(g.resolve(p.Name), dest)
	case ast.PrimaryNumber, ast.PrimaryNumberHex:
		g.instruction("movl $%d, %%%s", p.IntValue, dest)
	case ast.PrimaryBool:
		v := 0
		if p.BoolValue {
			v = 1
		}
		g.instruction("movl $%d, %%%s", v, dest)
	}
}

// storeVariable writes regName into sym's stack slot. A parameter
// (offset >= 0) always occupies a full 4-byte slot, since every call
// site pushes a full register for each argument regardless of its
// declared width, so the store is always movl there; a local (offset <
// 0) is packed at its declared width by nextVariableOffset.
func (g *Generator) storeVariable(sym symbolRef, regName string) {
	if sym.offset >= 0 {
		g.instruction("movl %%%s, %d(%%ebp)", regName, sym.offset)
		return
	}
	switch sym.typ.Width() {
	case 2:
		g.instruction("movw %%%s, %d(%%ebp)", regName, sym.offset)
	case 1:
		g.instruction("movb %%%s, %d(%%ebp)", regName, sym.offset)
	default:
		g.instruction("movl %%%s, %d(%%ebp)", regName, sym.offset)
	}
}

// loadVariable reads sym's stack slot into destReg (always a full
// 4-byte register), sign-extending narrower locals the same way the
// x86 ABI sign-extends a promoted integer.
func (g *Generator) loadVariable(sym symbolRef, destReg string) {
	if sym.offset >= 0 {
		g.instruction("movl %d(%%ebp), %%%s", sym.offset, destReg)
		return
	}
	switch sym.typ.Width() {
	case 2:
		g.instruction("movswl %d(%%ebp), %%%s", sym.offset, destReg)
	case 1:
		g.instruction("movsbl %d(%%ebp), %%%s", sym.offset, destReg)
	default:
		g.instruction("movl %d(%%ebp), %%%s", sym.offset, destReg)
	}
}
