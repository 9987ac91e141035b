package semantic

import (
	"github.com/rgeorge/ramseyc/internal/ast"
	"github.com/rgeorge/ramseyc/internal/errors"
)

// Analyzer performs a single pass over a parsed program: it resolves
// every identifier, checks every type rule, and annotates every
// expression's ResolvedType in place. It does not mutate control flow or
// fold constants; that is the code generator's concern.
type Analyzer struct {
	symbols *SymbolTable
}

// NewAnalyzer returns an Analyzer with a fresh, empty symbol table.
func NewAnalyzer() *Analyzer {
	return &Analyzer{symbols: NewSymbolTable()}
}

// Analyze type-checks prog and annotates its expressions, returning the
// first error encountered (analysis stops at the first failure, as
// there is no recovery notion in this language).
func Analyze(prog *ast.Program) error {
	return NewAnalyzer().AnalyzeProgram(prog)
}

// AnalyzeProgram inserts every function's signature into a file-level
// scope (so forward and mutual calls resolve regardless of declaration
// order) before analyzing any function body.
func (a *Analyzer) AnalyzeProgram(prog *ast.Program) error {
	a.symbols.PushScope()
	defer a.symbols.PopScope()

	for _, fn := range prog.Functions {
		paramTypes := make([]ast.Type, len(fn.Params))
		for i, param := range fn.Params {
			paramTypes[i] = param.Type
		}
		sym := &Symbol{Kind: SymFunction, Name: fn.Name, Type: fn.ReturnType, ParamTypes: paramTypes, Decl: fn}
		if !a.symbols.Insert(sym) {
			return errors.Semantic(fn.Line(), "redeclaration of function '%s'", fn.Name)
		}
	}

	for _, fn := range prog.Functions {
		if err := a.analyzeFunction(fn); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeFunction(fn *ast.Function) error {
	a.symbols.PushScope()
	defer a.symbols.PopScope()
	a.symbols.EnterFunction(fn)
	defer a.symbols.ExitFunction()

	for _, param := range fn.Params {
		sym := &Symbol{Kind: SymVariable, Name: param.Name, Type: param.Type, Decl: param}
		if !a.symbols.Insert(sym) {
			return errors.Semantic(param.Line(), "duplicate parameter name '%s' in function '%s'", param.Name, fn.Name)
		}
	}

	return a.analyzeStatements(fn.Body)
}

func (a *Analyzer) analyzeStatements(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := a.analyzeStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Declaration:
		return a.analyzeDeclaration(s)
	case *ast.ExprStatement:
		for _, e := range s.Exprs {
			if _, err := a.analyzeExpr(e); err != nil {
				return err
			}
		}
		return nil
	case *ast.Selection:
		return a.analyzeSelection(s)
	case *ast.Iterative:
		return a.analyzeIterative(s)
	case *ast.Jump:
		return a.analyzeJump(s)
	default:
		return errors.Semantic(stmt.Line(), "internal error: unhandled statement type")
	}
}

// analyzeDeclaration checks the initializer, if any, under the scope as
// it stands BEFORE the new binding is inserted: `in x <- x` is a use of
// an outer (or undeclared) x, never a self-reference.
func (a *Analyzer) analyzeDeclaration(decl *ast.Declaration) error {
	if decl.Init != nil {
		initType, err := a.analyzeExpr(decl.Init)
		if err != nil {
			return err
		}
		if !assignable(initType, decl.Type) {
			return errors.Semantic(decl.Line(), "cannot initialize '%s' of type %s with a value of type %s", decl.Name, decl.Type, initType)
		}
	}

	sym := &Symbol{Kind: SymVariable, Name: decl.Name, Type: decl.Type, Decl: decl}
	if !a.symbols.Insert(sym) {
		return errors.Semantic(decl.Line(), "redeclaration of variable '%s'", decl.Name)
	}
	return nil
}

func (a *Analyzer) analyzeSelection(sel *ast.Selection) error {
	condType, err := a.analyzeExpr(sel.Cond)
	if err != nil {
		return err
	}
	if condType != ast.TypeBoo {
		return errors.Semantic(sel.Cond.Line(), "if-statement condition must have type boo, found %s", condType)
	}

	a.symbols.PushScope()
	err = a.analyzeStatements(sel.Then)
	a.symbols.PopScope()
	if err != nil {
		return err
	}

	if sel.Elf != nil {
		if err := a.analyzeElf(sel.Elf); err != nil {
			return err
		}
	}

	if sel.Else != nil {
		a.symbols.PushScope()
		err = a.analyzeStatements(sel.Else)
		a.symbols.PopScope()
		if err != nil {
			return err
		}
	}

	return nil
}

func (a *Analyzer) analyzeElf(elf *ast.Elf) error {
	condType, err := a.analyzeExpr(elf.Cond)
	if err != nil {
		return err
	}
	if condType != ast.TypeBoo {
		return errors.Semantic(elf.Cond.Line(), "elf condition must have type boo, found %s", condType)
	}

	a.symbols.PushScope()
	err = a.analyzeStatements(elf.Body)
	a.symbols.PopScope()
	if err != nil {
		return err
	}

	if elf.Next != nil {
		return a.analyzeElf(elf.Next)
	}
	return nil
}

func (a *Analyzer) analyzeIterative(it *ast.Iterative) error {
	condType, err := a.analyzeExpr(it.Cond)
	if err != nil {
		return err
	}
	if condType != ast.TypeBoo {
		return errors.Semantic(it.Cond.Line(), "while condition must have type boo, found %s", condType)
	}

	a.symbols.PushScope()
	a.symbols.EnterLoop()
	err = a.analyzeStatements(it.Body)
	a.symbols.ExitLoop()
	a.symbols.PopScope()
	return err
}

func (a *Analyzer) analyzeJump(j *ast.Jump) error {
	switch j.Kind {
	case ast.JumpToss:
		fn := a.symbols.EnclosingFunction()
		if fn == nil {
			return errors.Semantic(j.Line(), "toss used outside of a function")
		}
		if j.Expr == nil {
			return nil
		}
		exprType, err := a.analyzeExpr(j.Expr)
		if err != nil {
			return err
		}
		if !assignable(exprType, fn.ReturnType) {
			return errors.Semantic(j.Line(), "toss value of type %s is not assignable to return type %s of function '%s'", exprType, fn.ReturnType, fn.Name)
		}
		return nil

	case ast.JumpSmash:
		if !a.symbols.InLoop() {
			return errors.Semantic(j.Line(), "smash used outside of a while loop")
		}
		return nil

	default:
		return errors.Semantic(j.Line(), "internal error: unhandled jump kind")
	}
}
