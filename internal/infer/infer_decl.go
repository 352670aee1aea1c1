package infer

import (
	"github.com/amber-lang/amber/internal/ast"
	"github.com/amber-lang/amber/internal/diagnostics"
	"github.com/amber-lang/amber/internal/types"
)

// inferAssign infers the right-hand side, generalizes it and binds the name
// in the current frame.
func (s *Session) inferAssign(n *ast.AssignExpression) types.Type {
	value := s.inferNode(n.Value)
	scheme := s.generalize(value)
	s.env.Define(n.Name.Value, scheme)
	s.TypeMap[n.Name] = value
	return value
}

func (s *Session) inferIvarAssign(n *ast.IvarAssignExpression) types.Type {
	value := s.inferNode(n.Value)
	slot := s.ivarSlot(n.Name)
	s.unify(n.GetToken(), slot, value)
	return value
}

// inferMethodDef types a function or method definition. The name is bound to
// a monomorphic signature before the body is analyzed, so direct and mutual
// recursion resolve against fresh variables; generalization happens after
// the body.
func (s *Session) inferMethodDef(n *ast.MethodDef) types.Type {
	params := make([]types.Type, len(n.Params))
	for i := range n.Params {
		params[i] = s.Arena.NewVar()
	}
	ret := s.Arena.NewVar()
	fn := types.Function{Params: params, Return: ret}

	if s.currentClass != nil {
		s.currentClass.Methods[n.Name] = monotype(fn)
	} else {
		s.env.Define(n.Name, monotype(fn))
	}

	s.env.Push()
	for i, p := range n.Params {
		s.env.Define(p.Value, monotype(params[i]))
		s.TypeMap[p] = params[i]
	}
	s.returnStack = append(s.returnStack, ret)
	body := s.inferBlock(n.Body)
	s.returnStack = s.returnStack[:len(s.returnStack)-1]
	s.env.Pop()

	s.unify(n.GetToken(), ret, body)
	s.checkDeclaredSignature(n, fn)

	if s.currentClass == nil {
		// The recursion prebinding must not keep the signature's variables
		// free in the environment, or nothing would ever quantify.
		s.env.Undefine(n.Name)
	}
	scheme := s.generalize(fn)
	if s.currentClass != nil {
		s.currentClass.Methods[n.Name] = scheme
		s.recordFunctionSig(s.currentClass.Name+"#"+n.Name, fn)
	} else {
		s.env.Define(n.Name, scheme)
		s.recordFunctionSig(n.Name, fn)
	}
	return types.Nil
}

// checkDeclaredSignature unifies an inferred definition against its
// supplementary declaration when one exists; a conflict is a mismatch
// diagnostic, and the declaration's constraints stick.
func (s *Session) checkDeclaredSignature(n *ast.MethodDef, fn types.Function) {
	var declared []types.Function
	if s.currentClass != nil {
		declared = s.Decls.MethodType(s.currentClass.Name, n.Name)
	} else if sig, ok := s.Decls.FunctionType(n.Name); ok {
		declared = []types.Function{sig}
	}
	// Multiple declared overloads cannot all equal one inferred body; they
	// take effect at call sites through the resolver instead.
	if len(declared) == 1 {
		s.unify(n.GetToken(), declared[0], fn)
	}
}

func (s *Session) recordFunctionSig(name string, fn types.Function) {
	s.funcSigs[name] = fn
}

// inferClassDecl registers the class (collectClasses already created the
// definition for toplevel declarations) and infers its body with the class
// as the current method context.
func (s *Session) inferClassDecl(n *ast.ClassDecl) types.Type {
	class, ok := s.Classes[n.Name]
	if !ok {
		class = &ClassDef{Name: n.Name, Super: n.SuperName, Methods: make(map[string]Scheme)}
		s.Classes[n.Name] = class
	}
	if n.SuperName != "" && s.Classes[n.SuperName] == nil && !s.isClassName(n.SuperName) {
		s.report(diagnostics.ErrT006, n.GetToken(), "undefined superclass %s", n.SuperName)
	}

	previous := s.currentClass
	s.currentClass = class
	s.env.Push()
	s.inferBlock(n.Body)
	s.env.Pop()
	s.currentClass = previous
	return types.Nil
}
