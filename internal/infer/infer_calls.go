package infer

import (
	"github.com/amber-lang/amber/internal/ast"
	"github.com/amber-lang/amber/internal/diagnostics"
	"github.com/amber-lang/amber/internal/token"
	"github.com/amber-lang/amber/internal/types"
)

// builtinFunctions are the toplevel functions every program can call.
var builtinFunctions = map[string]types.Function{
	"puts":  sig(types.Nil, types.Untyped),
	"print": sig(types.Nil, types.Untyped),
	"p":     sig(types.Untyped, types.Untyped),
	"gets":  sig(types.Union{Members: []types.Type{types.Nil, types.String}}),
	"rand":  sig(types.Float),
	"sleep": sig(types.Nil, types.Float),
}

func (s *Session) inferCall(n *ast.CallExpression) types.Type {
	args := make([]types.Type, len(n.Arguments))
	for i, arg := range n.Arguments {
		args[i] = s.inferNode(arg)
	}
	if n.Block != nil {
		// The block is typed for its own body's diagnostics; resolution
		// does not thread it through the method signature.
		s.inferNode(n.Block)
	}

	if n.Receiver == nil {
		return s.inferFunctionCall(n, args)
	}

	if ident, ok := n.Receiver.(*ast.Identifier); ok {
		if _, bound := s.env.Lookup(ident.Value); !bound && s.isClassName(ident.Value) {
			s.TypeMap[n.Receiver] = types.Untyped
			return s.inferStaticCall(n, ident.Value, args)
		}
	}

	recv := s.inferNode(n.Receiver)
	return s.inferMethodSend(n.GetToken(), recv, n.Method, args)
}

// inferMethodSend resolves a method on an inferred receiver, deferring to
// the solver when the receiver is still an unbound variable: no guess, no
// error yet.
func (s *Session) inferMethodSend(tok token.Token, recv types.Type, method string, args []types.Type) types.Type {
	resolved := s.Arena.Resolve(recv)
	if v, free := resolved.(types.Var); free {
		result := s.Arena.NewVar()
		s.pending = append(s.pending, &methodCall{
			token:    tok,
			receiver: v,
			method:   method,
			args:     args,
			result:   result,
		})
		return result
	}

	result, ok := s.resolveMethod(tok, resolved, method, args)
	if !ok {
		s.report(diagnostics.ErrT003, tok, "unresolved method %s for %s", method, resolved)
		return types.Untyped
	}
	return result
}

// inferFunctionCall types a toplevel call: a binding in scope, a declared
// function, a native extension function, or a built-in.
func (s *Session) inferFunctionCall(n *ast.CallExpression, args []types.Type) types.Type {
	tok := n.GetToken()
	name := n.Method

	if scheme, ok := s.env.Lookup(name); ok {
		return s.applyCallable(tok, instantiate(s.Arena, scheme), args)
	}
	if declared, ok := s.Decls.FunctionType(name); ok {
		return s.applySignature(tok, declared, args)
	}
	if native, ok := s.Decls.NativeFunction(name); ok {
		s.TypeMap[n] = native
		return s.applySignature(tok, types.Function{Params: native.Params, Return: native.Return}, args)
	}
	if builtin, ok := builtinFunctions[name]; ok {
		if len(builtin.Params) == 1 && len(args) == 0 {
			// Output builtins accept a missing argument.
			return s.returnOf(builtin)
		}
		return s.applySignature(tok, builtin, args)
	}
	if s.currentClass != nil {
		// Implicit-self method call inside a class body.
		recv := types.ClassInstance{Name: s.currentClass.Name}
		if result, ok := s.resolveMethod(tok, recv, name, args); ok {
			return result
		}
	}

	s.report(diagnostics.ErrT006, tok, "undefined function %s", name)
	return types.Untyped
}

// applyCallable unifies an instantiated binding with the call shape. An
// unbound callee variable is constrained to a fresh function type, which is
// how recursive calls see their own signature.
func (s *Session) applyCallable(tok token.Token, callee types.Type, args []types.Type) types.Type {
	resolved := s.Arena.Resolve(callee)
	switch fn := resolved.(type) {
	case types.Function:
		return s.applySignature(tok, fn, args)
	case types.NativeCall:
		return s.applySignature(tok, types.Function{Params: fn.Params, Return: fn.Return}, args)
	case types.Var:
		result := s.Arena.NewVar()
		shape := types.Function{Params: args, Return: result}
		s.unify(tok, fn, shape)
		return result
	case types.Primitive:
		if fn == types.Untyped {
			return types.Untyped
		}
	}
	s.report(diagnostics.ErrT002, tok, "%s is not callable", resolved)
	return types.Untyped
}

// inferStaticCall handles Class.method(args): construction and foreign
// static methods.
func (s *Session) inferStaticCall(n *ast.CallExpression, className string, args []types.Type) types.Type {
	tok := n.GetToken()

	if n.Method == "new" {
		return s.inferConstruction(tok, className, args)
	}

	if info, ok := s.Foreign.Class(className); ok {
		if _, declared := s.Classes[className]; !declared {
			if m, ok := info.StaticMethods[n.Method]; ok {
				return s.applySignature(tok, types.Function{Params: m.Params, Return: m.Return}, args)
			}
		}
	}
	if declared := s.Decls.MethodType(className, n.Method); len(declared) > 0 {
		if result, ok := s.selectOverload(tok, n.Method, declared, args); ok {
			return result
		}
	}

	s.report(diagnostics.ErrT003, tok, "unresolved method %s for %s", n.Method, className)
	return types.Untyped
}

func (s *Session) inferConstruction(tok token.Token, className string, args []types.Type) types.Type {
	instance := types.ClassInstance{Name: className}

	if class, ok := s.Classes[className]; ok {
		if scheme, ok := class.Methods["initialize"]; ok {
			resolved := s.Arena.Resolve(instantiate(s.Arena, scheme))
			if fn, isFn := resolved.(types.Function); isFn {
				s.applySignature(tok, types.Function{Params: fn.Params, Return: instance}, args)
			}
		} else if len(args) > 0 {
			s.report(diagnostics.ErrT002, tok, "wrong number of arguments: %d for 0", len(args))
		}
		return instance
	}

	if info, ok := s.Foreign.Class(className); ok && info.HasConstructor {
		s.applySignature(tok, types.Function{Params: info.ConstructorParams, Return: instance}, args)
		return instance
	}

	return instance
}

// inferFunctionLiteral infers an anonymous function in place, so its body
// closes over the frames active right now.
func (s *Session) inferFunctionLiteral(n *ast.FunctionLiteral) types.Type {
	params := make([]types.Type, len(n.Params))
	for i := range n.Params {
		params[i] = s.Arena.NewVar()
	}
	s.env.Push()
	for i, p := range n.Params {
		s.env.Define(p.Value, monotype(params[i]))
		s.TypeMap[p] = params[i]
	}
	body := s.inferBlock(n.Body)
	s.env.Pop()
	return types.Function{Params: params, Return: body}
}

func (s *Session) inferPrefix(n *ast.PrefixExpression) types.Type {
	operand := s.inferNode(n.Right)
	switch n.Operator {
	case "!":
		return types.Bool()
	case "-":
		return s.inferMethodSend(n.GetToken(), operand, "-@", nil)
	}
	s.report(diagnostics.ErrT003, n.GetToken(), "unresolved operator %s", n.Operator)
	return types.Untyped
}

// inferInfix types the logical pair structurally and desugars every other
// operator into a method call on the left operand.
func (s *Session) inferInfix(n *ast.InfixExpression) types.Type {
	left := s.inferNode(n.Left)
	right := s.inferNode(n.Right)

	switch n.Operator {
	case "&&", "||":
		// The result is whichever operand the evaluation stopped at.
		return s.Arena.NormalizeUnion([]types.Type{
			s.Arena.Resolve(left),
			s.Arena.Resolve(right),
		})
	case "==", "!=":
		// Equality is universal: defined for every receiver, boolean, never
		// deferred.
		return types.Bool()
	}
	return s.inferMethodSend(n.GetToken(), left, n.Operator, []types.Type{right})
}
