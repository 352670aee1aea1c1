// Package infer implements the type-inference engine: a Hindley-Milner
// Algorithm W walk over the syntax tree with let-polymorphism, union types
// for branch merging, flow-sensitive narrowing, a multi-source method
// resolver and a deferred-constraint fixed-point solver.
package infer

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/amber-lang/amber/internal/ast"
	"github.com/amber-lang/amber/internal/diagnostics"
	"github.com/amber-lang/amber/internal/foreign"
	"github.com/amber-lang/amber/internal/sigdecl"
	"github.com/amber-lang/amber/internal/token"
	"github.com/amber-lang/amber/internal/types"
)

// ClassDef is a class declared by the program under inference.
type ClassDef struct {
	Name    string
	Super   string
	Methods map[string]Scheme
}

// methodCall is a deferred resolution: the receiver was still an unbound
// variable when the call site was walked. The solver replays it once the
// receiver becomes concrete.
type methodCall struct {
	token    token.Token
	receiver types.Type
	method   string
	args     []types.Type
	result   types.Var
}

// Session is one inference engine instance, scoped to exactly one
// compilation unit. It owns the variable arena, the environment stack, the
// output maps and the diagnostics list, and is not safe for concurrent use;
// parallel compilation of independent units must create independent
// sessions.
type Session struct {
	ID      string
	Arena   *types.Arena
	Decls   *sigdecl.Table
	Foreign *foreign.Registry

	Classes map[string]*ClassDef

	// Outputs, finalized after the solve.
	TypeMap       map[ast.Node]types.Type
	IvarTypes     map[string]map[string]types.Type
	FunctionTypes map[string]types.Function
	Diagnostics   []*diagnostics.DiagnosticError

	env          *Env
	pending      []*methodCall
	currentClass *ClassDef
	returnStack  []types.Type
	funcSigs     map[string]types.Function
	reported     map[string]bool
}

// NewSession creates an engine for one compilation unit. Both tables may be
// empty but must not be nil.
func NewSession(decls *sigdecl.Table, registry *foreign.Registry) *Session {
	return &Session{
		ID:            uuid.NewString(),
		Arena:         types.NewArena(),
		Decls:         decls,
		Foreign:       registry,
		Classes:       make(map[string]*ClassDef),
		TypeMap:       make(map[ast.Node]types.Type),
		IvarTypes:     make(map[string]map[string]types.Type),
		FunctionTypes: make(map[string]types.Function),
		env:           NewEnv(),
		funcSigs:      make(map[string]types.Function),
		reported:      make(map[string]bool),
	}
}

// Run performs one full inference pass: a single forward walk of the tree,
// the deferred-constraint fixed point, and finalization of every output
// map. Diagnostics accumulate; the pass never aborts early.
func (s *Session) Run(program *ast.Program) {
	s.collectClasses(program)
	for _, stmt := range program.Statements {
		s.inferNode(stmt)
	}
	s.solveDeferred()
	s.finalizeOutputs()
}

// collectClasses registers every class declaration up front so that forward
// references between classes resolve during the single walk.
func (s *Session) collectClasses(program *ast.Program) {
	for _, stmt := range program.Statements {
		decl, ok := stmt.(*ast.ClassDecl)
		if !ok {
			continue
		}
		if _, exists := s.Classes[decl.Name]; !exists {
			s.Classes[decl.Name] = &ClassDef{
				Name:    decl.Name,
				Super:   decl.SuperName,
				Methods: make(map[string]Scheme),
			}
		}
	}
}

// report appends a diagnostic, deduplicating on position, code and message
// so the solver replaying a constraint does not double-report.
func (s *Session) report(code diagnostics.ErrorCode, tok token.Token, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	key := fmt.Sprintf("%d:%d:%s:%s", tok.Line, tok.Column, code, msg)
	if s.reported[key] {
		return
	}
	s.reported[key] = true
	s.Diagnostics = append(s.Diagnostics, diagnostics.NewError(code, tok, msg))
}

// reportUnify translates a unification failure into the matching diagnostic
// code.
func (s *Session) reportUnify(tok token.Token, err error) {
	switch err.(type) {
	case *types.OccursError:
		s.report(diagnostics.ErrT001, tok, "%s", err.Error())
	default:
		s.report(diagnostics.ErrT002, tok, "%s", err.Error())
	}
}

// unify wraps arena unification with diagnostic reporting at tok.
func (s *Session) unify(tok token.Token, t1, t2 types.Type) bool {
	if err := s.Arena.Unify(t1, t2); err != nil {
		s.reportUnify(tok, err)
		return false
	}
	return true
}

// generalize builds a scheme quantifying the variables free in t but not
// free in the environment. Variables referenced by a still-pending method
// constraint stay monomorphic: a later call site must be able to bind them
// so the solver can replay the constraint.
func (s *Session) generalize(t types.Type) Scheme {
	resolved := s.Arena.Resolve(t)
	envFree := s.env.freeVars(s.Arena)
	protected := s.pendingVars()
	// Instance-variable slots are shared state, not per-call: a method
	// returning one must keep the slot variable monomorphic.
	for _, fields := range s.IvarTypes {
		for _, field := range fields {
			for _, id := range s.Arena.FreeVars(field) {
				protected[id] = true
			}
		}
	}

	var quantified []int
	for _, id := range s.Arena.FreeVars(resolved) {
		if !envFree[id] && !protected[id] {
			quantified = append(quantified, id)
		}
	}
	return Scheme{Quantified: quantified, Body: resolved}
}

func (s *Session) pendingVars() map[int]bool {
	protected := make(map[int]bool)
	for _, c := range s.pending {
		for _, id := range s.Arena.FreeVars(c.receiver) {
			protected[id] = true
		}
		for _, arg := range c.args {
			for _, id := range s.Arena.FreeVars(arg) {
				protected[id] = true
			}
		}
		protected[c.result.ID] = true
	}
	return protected
}

// finalizeOutputs substitutes Untyped for every variable still free in the
// output maps, producing fully concrete types for the downstream stages.
func (s *Session) finalizeOutputs() {
	for node, t := range s.TypeMap {
		s.TypeMap[node] = s.Arena.Finalize(t)
	}
	for _, fields := range s.IvarTypes {
		for name, t := range fields {
			fields[name] = s.Arena.Finalize(t)
		}
	}
	for name, fn := range s.funcSigs {
		finalized, ok := s.Arena.Finalize(fn).(types.Function)
		if !ok {
			continue
		}
		s.FunctionTypes[name] = finalized
	}
}

// ivarSlot returns the tracked type of an instance variable, allocating a
// fresh variable for a first mention. Toplevel code owns its ivars under
// the implicit main object.
func (s *Session) ivarSlot(name string) types.Type {
	class := "main"
	if s.currentClass != nil {
		class = s.currentClass.Name
	}
	fields := s.IvarTypes[class]
	if fields == nil {
		fields = make(map[string]types.Type)
		s.IvarTypes[class] = fields
	}
	if t, ok := fields[name]; ok {
		return t
	}
	v := s.Arena.NewVar()
	fields[name] = v
	return v
}
