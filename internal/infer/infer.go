package infer

import (
	"github.com/amber-lang/amber/internal/ast"
	"github.com/amber-lang/amber/internal/diagnostics"
	"github.com/amber-lang/amber/internal/types"
)

// inferNode assigns a type to one node, recording it in the TypeMap. It
// always returns a type; failures surface as accumulated diagnostics with
// Untyped standing in at the failed site.
func (s *Session) inferNode(node ast.Node) types.Type {
	t := s.inferDispatch(node)
	if t == nil {
		t = types.Untyped
	}
	s.TypeMap[node] = t
	return t
}

func (s *Session) inferDispatch(node ast.Node) types.Type {
	switch n := node.(type) {
	case *ast.Program:
		var last types.Type = types.Nil
		for _, stmt := range n.Statements {
			last = s.inferNode(stmt)
		}
		return last

	case *ast.ExpressionStatement:
		return s.inferNode(n.Expression)

	case *ast.BlockStatement:
		return s.inferBlock(n)

	case *ast.ReturnStatement:
		return s.inferReturn(n)

	case *ast.MethodDef:
		return s.inferMethodDef(n)

	case *ast.ClassDecl:
		return s.inferClassDecl(n)

	case *ast.Identifier:
		return s.inferIdentifier(n)

	case *ast.IvarExpression:
		return s.ivarSlot(n.Name)

	case *ast.AssignExpression:
		return s.inferAssign(n)

	case *ast.IvarAssignExpression:
		return s.inferIvarAssign(n)

	case *ast.IfExpression:
		return s.inferIf(n)

	case *ast.CaseExpression:
		return s.inferCase(n)

	case *ast.WhileExpression:
		return s.inferWhile(n)

	case *ast.CallExpression:
		return s.inferCall(n)

	case *ast.FunctionLiteral:
		return s.inferFunctionLiteral(n)

	case *ast.PrefixExpression:
		return s.inferPrefix(n)

	case *ast.InfixExpression:
		return s.inferInfix(n)

	default:
		return s.inferLiteral(node)
	}
}

// inferBlock types a statement sequence as its last statement's type, Nil
// when empty.
func (s *Session) inferBlock(n *ast.BlockStatement) types.Type {
	if n == nil {
		return types.Nil
	}
	var last types.Type = types.Nil
	for _, stmt := range n.Statements {
		last = s.inferNode(stmt)
	}
	return last
}

func (s *Session) inferReturn(n *ast.ReturnStatement) types.Type {
	var value types.Type = types.Nil
	if n.Value != nil {
		value = s.inferNode(n.Value)
	}
	if len(s.returnStack) == 0 {
		return value
	}
	s.unify(n.GetToken(), s.returnStack[len(s.returnStack)-1], value)
	return value
}

// inferIdentifier instantiates the looked-up scheme: each read of a
// polymorphic name gets its own fresh variables.
func (s *Session) inferIdentifier(n *ast.Identifier) types.Type {
	if scheme, ok := s.env.Lookup(n.Value); ok {
		return instantiate(s.Arena, scheme)
	}
	if s.isClassName(n.Value) {
		// A bare class constant; only meaningful as a call receiver, which
		// inferCall handles before reaching here.
		return types.Untyped
	}
	s.report(diagnostics.ErrT006, n.GetToken(), "undefined name %s", n.Value)
	return types.Untyped
}

// isClassName reports whether name denotes a class in any resolution
// source: the program, the declaration documents, or foreign metadata.
func (s *Session) isClassName(name string) bool {
	if _, ok := s.Classes[name]; ok {
		return true
	}
	if s.Decls.TypeExists(name) || s.Decls.IsOpaqueHandle(name) {
		return true
	}
	_, ok := s.Foreign.Class(name)
	return ok
}
