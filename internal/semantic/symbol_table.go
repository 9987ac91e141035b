// Package semantic implements the Ramsey semantic analyzer: scope and
// symbol resolution, type checking, implicit numeric promotion, and
// function signature matching.
package semantic

import "github.com/rgeorge/ramseyc/internal/ast"

// SymbolKind distinguishes a variable symbol from a function symbol.
type SymbolKind int

const (
	SymVariable SymbolKind = iota
	SymFunction
)

// Symbol is a non-owning reference into the AST: it carries a pointer
// back to the node that declared it (a *ast.Function, *ast.Parameter, or
// *ast.Declaration). Symbols never outlive a single analysis pass, and
// the AST outlives the symbol table, so this reference is always valid.
type Symbol struct {
	Kind       SymbolKind
	Name       string
	Type       ast.Type
	ParamTypes []ast.Type // populated only for SymFunction
	Decl       ast.Node
}

type scope struct {
	symbols map[string]*Symbol
}

// SymbolTable is a stack of lexical scopes. It also tracks the currently
// enclosing function (for `toss` type checking) and a loop nesting
// counter (for `smash` validity).
type SymbolTable struct {
	scopes        []*scope
	functionStack []*ast.Function
	loopDepth     int
}

// NewSymbolTable returns an empty symbol table with no open scopes.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

// PushScope opens a new innermost scope.
func (t *SymbolTable) PushScope() {
	t.scopes = append(t.scopes, &scope{symbols: make(map[string]*Symbol)})
}

// PopScope discards the innermost scope's symbols. It never touches the
// AST: symbols are references, not owners.
func (t *SymbolTable) PopScope() {
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Insert adds sym to the innermost scope, returning false if the name is
// already bound within that same scope (a redeclaration).
func (t *SymbolTable) Insert(sym *Symbol) bool {
	top := t.scopes[len(t.scopes)-1]
	if _, exists := top.symbols[sym.Name]; exists {
		return false
	}
	top.symbols[sym.Name] = sym
	return true
}

// Lookup searches scopes from innermost to outermost.
func (t *SymbolTable) Lookup(name string) (*Symbol, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i].symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// EnterFunction marks fn as the currently enclosing function.
func (t *SymbolTable) EnterFunction(fn *ast.Function) {
	t.functionStack = append(t.functionStack, fn)
}

// ExitFunction pops the currently enclosing function.
func (t *SymbolTable) ExitFunction() {
	t.functionStack = t.functionStack[:len(t.functionStack)-1]
}

// EnclosingFunction returns the innermost function being analyzed, or
// nil outside of any function.
func (t *SymbolTable) EnclosingFunction() *ast.Function {
	if len(t.functionStack) == 0 {
		return nil
	}
	return t.functionStack[len(t.functionStack)-1]
}

// EnterLoop increments the while-loop nesting counter.
func (t *SymbolTable) EnterLoop() { t.loopDepth++ }

// ExitLoop decrements the while-loop nesting counter.
func (t *SymbolTable) ExitLoop() { t.loopDepth-- }

// InLoop reports whether analysis is currently inside a while body.
func (t *SymbolTable) InLoop() bool { return t.loopDepth > 0 }
