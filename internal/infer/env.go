package infer

import (
	"github.com/amber-lang/amber/internal/types"
)

// Scheme is a reusable polymorphic type bound to a name at a binding site:
// a body plus the set of arena variable IDs quantified over it.
type Scheme struct {
	Quantified []int
	Body       types.Type
}

// monotype wraps a type as a scheme with nothing quantified.
func monotype(t types.Type) Scheme {
	return Scheme{Body: t}
}

// Env is the ordered stack of scope frames, each mapping a name to its
// scheme. Lookup walks from the innermost frame outward. Closures see the
// frames active at their creation because their bodies are inferred in
// place, under those very frames.
type Env struct {
	frames []map[string]Scheme
}

// NewEnv creates an environment with a single global frame.
func NewEnv() *Env {
	return &Env{frames: []map[string]Scheme{make(map[string]Scheme)}}
}

// Push opens a new innermost frame.
func (e *Env) Push() {
	e.frames = append(e.frames, make(map[string]Scheme))
}

// Pop discards the innermost frame.
func (e *Env) Pop() {
	e.frames = e.frames[:len(e.frames)-1]
}

// Define binds name in the innermost frame, shadowing any outer binding for
// the remainder of the frame.
func (e *Env) Define(name string, s Scheme) {
	e.frames[len(e.frames)-1][name] = s
}

// Undefine removes the innermost binding of name, if any. Definitions use
// it to drop their own recursion prebinding before generalizing, so the
// prebinding's monomorphic variables do not count as free in the
// environment.
func (e *Env) Undefine(name string) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if _, ok := e.frames[i][name]; ok {
			delete(e.frames[i], name)
			return
		}
	}
}

// Lookup finds the innermost binding of name.
func (e *Env) Lookup(name string) (Scheme, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if s, ok := e.frames[i][name]; ok {
			return s, true
		}
	}
	return Scheme{}, false
}

// freeVars collects every arena variable free in some binding of the
// environment. A scheme's quantified variables are not free in it.
func (e *Env) freeVars(arena *types.Arena) map[int]bool {
	free := make(map[int]bool)
	for _, frame := range e.frames {
		for _, scheme := range frame {
			bound := make(map[int]bool, len(scheme.Quantified))
			for _, id := range scheme.Quantified {
				bound[id] = true
			}
			for _, id := range arena.FreeVars(scheme.Body) {
				if !bound[id] {
					free[id] = true
				}
			}
		}
	}
	return free
}

// instantiate produces an independent monomorphic copy of the scheme,
// allocating one fresh variable per quantified variable. Two instantiations
// of the same scheme never interfere.
func instantiate(arena *types.Arena, s Scheme) types.Type {
	if len(s.Quantified) == 0 {
		return s.Body
	}
	subst := make(map[int]types.Type, len(s.Quantified))
	for _, id := range s.Quantified {
		subst[id] = arena.NewVar()
	}
	return replaceVars(arena, s.Body, subst)
}

func replaceVars(arena *types.Arena, t types.Type, subst map[int]types.Type) types.Type {
	t = arena.Prune(t)
	switch t := t.(type) {
	case types.Var:
		if replacement, ok := subst[t.ID]; ok {
			return replacement
		}
		return t
	case types.ClassInstance:
		args := make([]types.Type, len(t.Args))
		for i, arg := range t.Args {
			args[i] = replaceVars(arena, arg, subst)
		}
		return types.ClassInstance{Name: t.Name, Args: args}
	case types.Function:
		params := make([]types.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = replaceVars(arena, p, subst)
		}
		var ret types.Type
		if t.Return != nil {
			ret = replaceVars(arena, t.Return, subst)
		}
		return types.Function{Params: params, Return: ret}
	case types.Union:
		members := make([]types.Type, len(t.Members))
		for i, m := range t.Members {
			members[i] = replaceVars(arena, m, subst)
		}
		return arena.NormalizeUnion(members)
	case types.NativeCall:
		params := make([]types.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = replaceVars(arena, p, subst)
		}
		return types.NativeCall{Name: t.Name, LinkName: t.LinkName, Params: params, Return: replaceVars(arena, t.Return, subst)}
	case types.OpaqueMethod:
		params := make([]types.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = replaceVars(arena, p, subst)
		}
		return types.OpaqueMethod{Handle: t.Handle, Name: t.Name, Params: params, Return: replaceVars(arena, t.Return, subst)}
	default:
		return t
	}
}
