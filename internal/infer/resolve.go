package infer

import (
	"github.com/amber-lang/amber/internal/config"
	"github.com/amber-lang/amber/internal/diagnostics"
	"github.com/amber-lang/amber/internal/token"
	"github.com/amber-lang/amber/internal/types"
)

// resolveMethod resolves receiver.method(args) for a concretely resolved
// receiver. A declared signature is authoritative whenever an exact entry
// for the method exists, so declarations are consulted first; then the
// built-in operator table, user-defined methods along the inheritance
// chain, opaque handle declarations, and introspected foreign metadata for
// classes the program does not define. A false result means no source
// matched; the caller decides between a diagnostic and deferral.
func (s *Session) resolveMethod(tok token.Token, recv types.Type, method string, args []types.Type) (types.Type, bool) {
	recv = s.Arena.Resolve(recv)

	// Declared signatures override any other source for this exact method.
	if name := nominalName(recv); name != "" {
		if declared := s.Decls.MethodType(name, method); len(declared) > 0 {
			if result, ok := s.selectOverload(tok, method, declared, args); ok {
				return result, true
			}
		}
	}

	if candidates := builtinCandidates(recv, method); len(candidates) > 0 {
		if result, ok := s.selectOverload(tok, method, candidates, args); ok {
			return result, true
		}
	}

	switch t := recv.(type) {
	case types.Primitive:
		if t == types.Untyped {
			// Dynamic receiver: any method goes through, dynamically typed.
			return types.Untyped, true
		}

	case types.Vector:
		if result, ok := s.resolveVectorMethod(tok, t, method, args); ok {
			return result, true
		}

	case types.ClassInstance:
		switch t.Name {
		case config.ArrayTypeName:
			if result, ok := s.resolveArrayMethod(tok, t, method, args); ok {
				return result, true
			}
		case config.HashTypeName:
			if result, ok := s.resolveHashMethod(tok, t, method, args); ok {
				return result, true
			}
		}
		if result, ok := s.resolveUserMethod(tok, t, method, args); ok {
			return result, true
		}
		if om, ok := s.Decls.OpaqueMethodType(t.Name, method); ok {
			return s.applySignature(tok, types.Function{Params: om.Params, Return: om.Return}, args), true
		}
		// Foreign metadata, only for classes the program does not define.
		if _, declared := s.Classes[t.Name]; !declared {
			if m, ok := s.Foreign.InstanceMethod(t.Name, method); ok {
				return s.applySignature(tok, types.Function{Params: m.Params, Return: m.Return}, args), true
			}
		}

	case types.Union:
		return s.resolveUnionMethod(tok, t, method, args)
	}

	return nil, false
}

// resolveUserMethod walks the inheritance chain from most-derived to
// least-derived.
func (s *Session) resolveUserMethod(tok token.Token, recv types.ClassInstance, method string, args []types.Type) (types.Type, bool) {
	seen := make(map[string]bool)
	for class := s.Classes[recv.Name]; class != nil && !seen[class.Name]; class = s.Classes[class.Super] {
		seen[class.Name] = true
		scheme, ok := class.Methods[method]
		if !ok {
			continue
		}
		resolved := s.Arena.Resolve(instantiate(s.Arena, scheme))
		fn, ok := resolved.(types.Function)
		if !ok {
			return types.Untyped, true
		}
		return s.applySignature(tok, fn, args), true
	}
	return nil, false
}

// resolveUnionMethod requires the method on every member and unions the
// results; one failing member fails the whole receiver.
func (s *Session) resolveUnionMethod(tok token.Token, recv types.Union, method string, args []types.Type) (types.Type, bool) {
	results := make([]types.Type, 0, len(recv.Members))
	for _, member := range recv.Members {
		result, ok := s.resolveMethod(tok, member, method, args)
		if !ok {
			return nil, false
		}
		results = append(results, s.Arena.Resolve(result))
	}
	return s.Arena.NormalizeUnion(results), true
}

// selectOverload scores arity-matching candidates against the actual
// arguments: two points per exact match, one per literal widening, zero for
// a merely-unifiable pair. The best score wins; an exact tie between
// distinct candidates keeps the first-declared one and reports the
// ambiguity.
func (s *Session) selectOverload(tok token.Token, method string, candidates []types.Function, args []types.Type) (types.Type, bool) {
	best := -1
	bestIndex := -1
	tied := false
	for i, cand := range candidates {
		if len(cand.Params) != len(args) {
			continue
		}
		score, feasible := s.scoreCandidate(cand, args)
		if !feasible {
			continue
		}
		if score > best {
			best = score
			bestIndex = i
			tied = false
		} else if score == best {
			tied = true
		}
	}
	if bestIndex < 0 {
		return nil, false
	}
	if tied {
		s.report(diagnostics.ErrT004, tok, "ambiguous call to %s: multiple candidates score equally", method)
	}
	return s.applySignature(tok, candidates[bestIndex], args), true
}

// scoreCandidate trials the candidate against the arguments on a rollback
// mark, leaving no bindings behind.
func (s *Session) scoreCandidate(cand types.Function, args []types.Type) (int, bool) {
	mark := s.Arena.Mark()
	defer s.Arena.Rollback(mark)

	score := 0
	for i, param := range cand.Params {
		arg := s.Arena.Resolve(args[i])
		param = s.Arena.Resolve(param)
		switch {
		case typeEqual(param, arg):
			score += 2
		case isWidening(param, arg):
			score++
		default:
			if err := s.Arena.Unify(param, arg); err != nil {
				return 0, false
			}
		}
	}
	return score, true
}

// applySignature commits the chosen candidate: unifies each parameter with
// its argument (mismatches become diagnostics, the call still types) and
// returns the signature's return type.
func (s *Session) applySignature(tok token.Token, fn types.Function, args []types.Type) types.Type {
	if len(fn.Params) != len(args) {
		s.report(diagnostics.ErrT002, tok, "wrong number of arguments: %d for %d", len(args), len(fn.Params))
		return s.returnOf(fn)
	}
	for i, param := range fn.Params {
		if isWidening(s.Arena.Resolve(param), s.Arena.Resolve(args[i])) {
			// The argument stays Integer; only the parameter position reads
			// it as floating.
			continue
		}
		s.unify(tok, param, args[i])
	}
	return s.returnOf(fn)
}

func (s *Session) returnOf(fn types.Function) types.Type {
	if fn.Return == nil {
		return types.Untyped
	}
	return fn.Return
}

func typeEqual(a, b types.Type) bool {
	if _, ok := a.(types.Var); ok {
		return false
	}
	if _, ok := b.(types.Var); ok {
		return false
	}
	return a.String() == b.String()
}

// isWidening reports the one-directional literal subsumption: an integer
// argument into a floating parameter.
func isWidening(param, arg types.Type) bool {
	p, ok := param.(types.Primitive)
	if !ok {
		return false
	}
	a, ok := arg.(types.Primitive)
	if !ok {
		return false
	}
	return p == types.Float && a == types.Int
}

// nominalName maps a resolved receiver onto the class name declarations are
// keyed by.
func nominalName(t types.Type) string {
	switch t := t.(type) {
	case types.Primitive:
		if t == types.Untyped {
			return ""
		}
		return t.String()
	case types.ClassInstance:
		return t.Name
	case types.Vector:
		return t.String()
	case types.Union:
		if types.IsBool(t) {
			return config.BoolTypeName
		}
	}
	return ""
}

// resolveArrayMethod covers the generic built-in list methods, which the
// fixed operator table cannot express because they mention the element
// type.
func (s *Session) resolveArrayMethod(tok token.Token, recv types.ClassInstance, method string, args []types.Type) (types.Type, bool) {
	var elemType types.Type = types.Untyped
	if len(recv.Args) == 1 {
		elemType = recv.Args[0]
	}
	switch method {
	case "length", "size", "count":
		return s.applySignature(tok, sig(types.Int), args), true
	case "empty?":
		return s.applySignature(tok, sig(types.Bool()), args), true
	case "first", "last":
		return s.applySignature(tok, sig(elemType), args), true
	case "[]":
		return s.applySignature(tok, sig(elemType, types.Int), args), true
	case "push", "<<":
		return s.applySignature(tok, sig(recv, elemType), args), true
	case "pop", "shift":
		return s.applySignature(tok, sig(elemType), args), true
	case "include?":
		return s.applySignature(tok, sig(types.Bool(), elemType), args), true
	case "join":
		return s.applySignature(tok, sig(types.String, types.String), args), true
	case "reverse", "sort", "uniq", "each":
		return s.applySignature(tok, sig(recv), args), true
	case "min", "max", "sum":
		return s.applySignature(tok, sig(elemType), args), true
	case "map", "filter", "select", "reject":
		// Block result types are not tracked through resolution; the mapped
		// list degrades to a dynamic element.
		return s.applySignature(tok, sig(arrayOf(types.Untyped)), args), true
	}
	return nil, false
}

func (s *Session) resolveHashMethod(tok token.Token, recv types.ClassInstance, method string, args []types.Type) (types.Type, bool) {
	var key, value types.Type = types.Untyped, types.Untyped
	if len(recv.Args) == 2 {
		key, value = recv.Args[0], recv.Args[1]
	}
	switch method {
	case "length", "size", "count":
		return s.applySignature(tok, sig(types.Int), args), true
	case "empty?":
		return s.applySignature(tok, sig(types.Bool()), args), true
	case "[]":
		return s.applySignature(tok, sig(value, key), args), true
	case "[]=", "store":
		return s.applySignature(tok, sig(value, key, value), args), true
	case "key?", "has_key?", "include?":
		return s.applySignature(tok, sig(types.Bool(), key), args), true
	case "keys":
		return s.applySignature(tok, sig(arrayOf(key)), args), true
	case "values":
		return s.applySignature(tok, sig(arrayOf(value)), args), true
	case "delete":
		return s.applySignature(tok, sig(value, key), args), true
	}
	return nil, false
}

// resolveVectorMethod covers lane-preserving arithmetic on the fixed-width
// float vectors plus the scalar accessors.
func (s *Session) resolveVectorMethod(tok token.Token, recv types.Vector, method string, args []types.Type) (types.Type, bool) {
	switch method {
	case "+", "-":
		return s.applySignature(tok, sig(recv, recv), args), true
	case "*", "/":
		return s.applySignature(tok, sig(recv, types.Float), args), true
	case "dot":
		return s.applySignature(tok, sig(types.Float, recv), args), true
	case "length":
		return s.applySignature(tok, sig(types.Float), args), true
	case "lanes":
		return s.applySignature(tok, sig(types.Int), args), true
	case "[]":
		return s.applySignature(tok, sig(types.Float, types.Int), args), true
	}
	return nil, false
}
