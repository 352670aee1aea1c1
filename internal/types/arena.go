package types

import "strconv"

// Arena owns every type variable created during one inference pass. A slot
// is nil while its variable is unbound, or holds the representative type the
// variable was unified with (possibly another Var, forming a union-find
// chain). One arena is scoped to exactly one compilation unit and is not
// safe for concurrent use.
type Arena struct {
	slots []Type
	// trail records every slot overwrite (binding and path compression
	// alike), newest last, so a speculative unification can be rolled back.
	trail []trailEntry
}

type trailEntry struct {
	id   int
	prev Type
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// NewVar allocates a fresh, unbound type variable.
func (a *Arena) NewVar() Var {
	a.slots = append(a.slots, nil)
	return Var{ID: len(a.slots) - 1}
}

// Len returns the number of variables allocated so far.
func (a *Arena) Len() int { return len(a.slots) }

// bind sets the representative of v. The occurs check has already run by
// the time bind is called, so the representative chain stays acyclic.
func (a *Arena) bind(v Var, t Type) {
	a.setSlot(v.ID, t)
}

func (a *Arena) setSlot(id int, t Type) {
	a.trail = append(a.trail, trailEntry{id: id, prev: a.slots[id]})
	a.slots[id] = t
}

// Bound reports whether v has been unified with anything yet.
func (a *Arena) Bound(v Var) bool {
	return a.slots[v.ID] != nil
}

// Mark returns a rollback point for speculative unification, such as the
// resolver trying one overload candidate against the actual arguments.
func (a *Arena) Mark() int { return len(a.trail) }

// Rollback restores every slot written since the given mark.
func (a *Arena) Rollback(mark int) {
	for i := len(a.trail) - 1; i >= mark; i-- {
		a.slots[a.trail[i].id] = a.trail[i].prev
	}
	a.trail = a.trail[:mark]
}

// Prune follows representative pointers to the canonical form of t: a
// concrete type, or a still-free variable. Intermediate variables are
// re-pointed at the result (path compression), keeping later chains short.
func (a *Arena) Prune(t Type) Type {
	v, ok := t.(Var)
	if !ok {
		return t
	}
	bound := a.slots[v.ID]
	if bound == nil {
		return v
	}
	result := a.Prune(bound)
	if _, chained := bound.(Var); chained {
		a.setSlot(v.ID, result)
	}
	return result
}

// Resolve prunes t and, when the result is a constructed type, prunes its
// components as well. It never substitutes for free variables; use Finalize
// for that.
func (a *Arena) Resolve(t Type) Type {
	t = a.Prune(t)
	switch t := t.(type) {
	case ClassInstance:
		args := make([]Type, len(t.Args))
		for i, arg := range t.Args {
			args[i] = a.Resolve(arg)
		}
		return ClassInstance{Name: t.Name, Args: args}
	case Function:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = a.Resolve(p)
		}
		return Function{Params: params, Return: a.Resolve(t.Return)}
	case Union:
		members := make([]Type, len(t.Members))
		for i, m := range t.Members {
			members[i] = a.Resolve(m)
		}
		return a.NormalizeUnion(members)
	case NativeCall:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = a.Resolve(p)
		}
		return NativeCall{Name: t.Name, LinkName: t.LinkName, Params: params, Return: a.Resolve(t.Return)}
	case OpaqueMethod:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = a.Resolve(p)
		}
		return OpaqueMethod{Handle: t.Handle, Name: t.Name, Params: params, Return: a.Resolve(t.Return)}
	default:
		return t
	}
}

// Finalize fully dereferences t, substituting Untyped for any variable that
// is still free. Finalize is idempotent: finalizing an already-final type
// returns it unchanged.
func (a *Arena) Finalize(t Type) Type {
	t = a.Prune(t)
	switch t := t.(type) {
	case Var:
		return Untyped
	case ClassInstance:
		args := make([]Type, len(t.Args))
		for i, arg := range t.Args {
			args[i] = a.Finalize(arg)
		}
		return ClassInstance{Name: t.Name, Args: args}
	case Function:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = a.Finalize(p)
		}
		ret := t.Return
		if ret == nil {
			ret = Untyped
		}
		return Function{Params: params, Return: a.Finalize(ret)}
	case Union:
		members := make([]Type, len(t.Members))
		for i, m := range t.Members {
			members[i] = a.Finalize(m)
		}
		return a.NormalizeUnion(members)
	case NativeCall:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = a.Finalize(p)
		}
		return NativeCall{Name: t.Name, LinkName: t.LinkName, Params: params, Return: a.Finalize(t.Return)}
	case OpaqueMethod:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = a.Finalize(p)
		}
		return OpaqueMethod{Handle: t.Handle, Name: t.Name, Params: params, Return: a.Finalize(t.Return)}
	default:
		return t
	}
}

// FreeVars collects the IDs of every unbound variable reachable from t, in
// first-seen order.
func (a *Arena) FreeVars(t Type) []int {
	var ids []int
	seen := make(map[int]bool)
	a.freeVars(t, seen, &ids)
	return ids
}

func (a *Arena) freeVars(t Type, seen map[int]bool, ids *[]int) {
	t = a.Prune(t)
	switch t := t.(type) {
	case Var:
		if !seen[t.ID] {
			seen[t.ID] = true
			*ids = append(*ids, t.ID)
		}
	case ClassInstance:
		for _, arg := range t.Args {
			a.freeVars(arg, seen, ids)
		}
	case Function:
		for _, p := range t.Params {
			a.freeVars(p, seen, ids)
		}
		if t.Return != nil {
			a.freeVars(t.Return, seen, ids)
		}
	case Union:
		for _, m := range t.Members {
			a.freeVars(m, seen, ids)
		}
	case NativeCall:
		for _, p := range t.Params {
			a.freeVars(p, seen, ids)
		}
		a.freeVars(t.Return, seen, ids)
	case OpaqueMethod:
		for _, p := range t.Params {
			a.freeVars(p, seen, ids)
		}
		a.freeVars(t.Return, seen, ids)
	}
}

// NormalizeUnion flattens nested unions, deduplicates members and sorts them
// for deterministic comparison. A single surviving member is returned
// directly rather than as a one-element union.
func (a *Arena) NormalizeUnion(members []Type) Type {
	var flat []Type
	for _, m := range members {
		m = a.Prune(m)
		if u, ok := m.(Union); ok {
			for _, inner := range u.Members {
				flat = append(flat, a.Prune(inner))
			}
		} else {
			flat = append(flat, m)
		}
	}

	seen := make(map[string]bool)
	unique := make([]Type, 0, len(flat))
	for _, m := range flat {
		key := m.String()
		if v, ok := m.(Var); ok {
			// Distinct free variables must not collapse on their printed
			// form under test-mode name normalization.
			key = "var#" + strconv.Itoa(v.ID)
		}
		if !seen[key] {
			seen[key] = true
			unique = append(unique, m)
		}
	}

	if len(unique) == 0 {
		return Nil
	}
	if len(unique) == 1 {
		return unique[0]
	}
	sortMembers(unique)
	return Union{Members: unique}
}
