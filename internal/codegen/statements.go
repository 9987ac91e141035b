package codegen

import "github.com/rgeorge/ramseyc/internal/ast"

func (g *Generator) genStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Declaration:
		g.genDeclaration(s)
	case *ast.ExprStatement:
		for _, e := range s.Exprs {
			g.genExpr(e)
		}
	case *ast.Selection:
		g.genSelection(s)
	case *ast.Iterative:
		g.genIterative(s)
	case *ast.Jump:
		g.genJump(s)
	default:
		panic("codegen: internal error: unhandled statement type")
	}
}

func (g *Generator) genDeclaration(d *ast.Declaration) {
	d.Offset = g.nextVariableOffset(d.Type.Width())
	if d.Init != nil {
		g.allocateResultRegister()
		g.genExpr(d.Init)
		g.storeVariable(symbolRef{offset: d.Offset, typ: d.Type}, g.currentResultRegister(d.Type.Width()))
		g.deallocateResultRegister()
	}
	g.bind(d.Name, d.Offset, d.Type)
}

// genCondition loads a boo-typed condition and compares it to zero. A
// bare identifier condition compares its stack slot directly, avoiding
// a pointless load into a register purely to immediately discard it.
func (g *Generator) genCondition(cond ast.Expression) {
	if prim, ok := cond.(*ast.Primary); ok && prim.Kind == ast.PrimaryIdent {
		sym := g.resolve(prim.Name)
		g.instruction("%s $0, %d(%%ebp)", cmpMnemonic(sym.typ), sym.offset)
		return
	}

	g.allocateResultRegister()
	regName := g.currentResultRegister(4)
	g.genExpr(cond)
	g.deallocateResultRegister()
	g.instruction("cmpl $0, %%%s", regName)
}

func cmpMnemonic(t ast.Type) string {
	switch t.Width() {
	case 2:
		return "cmpw"
	case 1:
		return "cmpb"
	default:
		return "cmpl"
	}
}

func (g *Generator) genSelection(s *ast.Selection) {
	lblTrue, lblDone := g.newLabel(), g.newLabel()

	g.genCondition(s.Cond)
	g.instruction("jne lbl%d", lblTrue)

	g.pushStoreLabel(lblDone)
	if s.Elf != nil {
		g.genElf(s.Elf)
	}
	g.popStoreLabel()

	if s.Else != nil {
		g.genBlock(s.Else)
	}
	g.instruction("jmp lbl%d", lblDone)

	g.writeline("lbl%d:", lblTrue)
	if len(s.Then) == 0 {
		g.instruction("nop")
	} else {
		g.genBlock(s.Then)
	}
	g.writeline("lbl%d:", lblDone)
}

func (g *Generator) genElf(e *ast.Elf) {
	lblDone := g.storeLabel()
	lblFalse := g.newLabel()

	g.genCondition(e.Cond)
	g.instruction("je lbl%d", lblFalse)

	g.genBlock(e.Body)
	g.instruction("jmp lbl%d", lblDone)

	g.writeline("lbl%d:", lblFalse)
	if e.Next != nil {
		g.genElf(e.Next)
	}
}

func (g *Generator) genIterative(it *ast.Iterative) {
	lblTop, lblDone := g.newLabel(), g.newLabel()

	g.writeline("lbl%d:", lblTop)
	g.genCondition(it.Cond)
	g.instruction("je lbl%d", lblDone)

	g.pushStoreLabel(lblDone)
	g.genBlock(it.Body)
	g.popStoreLabel()

	g.instruction("jmp lbl%d", lblTop)
	g.writeline("lbl%d:", lblDone)
}

func (g *Generator) genJump(j *ast.Jump) {
	switch j.Kind {
	case ast.JumpToss:
		if j.Expr != nil {
			g.allocateResultRegister()
			g.genExpr(j.Expr)
			g.deallocateResultRegister()
		}
		g.instruction("jmp lbl%d", g.returnLabelOf())
	case ast.JumpSmash:
		g.instruction("jmp lbl%d", g.storeLabel())
	}
}

func (g *Generator) genBlock(stmts []ast.Statement) {
	g.pushScope()
	for _, stmt := range stmts {
		g.genStatement(stmt)
	}
	g.popScope()
}
