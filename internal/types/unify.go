package types

import "fmt"

// MismatchError reports two required-equal concrete types that disagree.
// Both sides are named so diagnostics can show them.
type MismatchError struct {
	Left   Type
	Right  Type
	Detail string
}

func (e *MismatchError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("cannot unify %s with %s: %s", e.Left, e.Right, e.Detail)
	}
	return fmt.Sprintf("cannot unify %s with %s", e.Left, e.Right)
}

// OccursError reports an occurs-check failure: binding the variable would
// create a type that contains itself.
type OccursError struct {
	Var Var
	In  Type
}

func (e *OccursError) Error() string {
	return fmt.Sprintf("infinite type detected: %s in %s", e.Var, e.In)
}

func errUnify(t1, t2 Type) error {
	return &MismatchError{Left: t1, Right: t2}
}

func errUnifyMsg(t1, t2 Type, detail string) error {
	return &MismatchError{Left: t1, Right: t2, Detail: detail}
}

// Unify makes t1 and t2 equal by mutating variable bindings in the arena,
// or fails with a Mismatch or Occurs error leaving any partial bindings
// rolled back. t1 is the expected side: an integer literal widens into a
// Float context, never the reverse.
func (a *Arena) Unify(t1, t2 Type) error {
	mark := a.Mark()
	if err := a.unify(t1, t2); err != nil {
		a.Rollback(mark)
		return err
	}
	return nil
}

func (a *Arena) unify(t1, t2 Type) error {
	t1 = a.Prune(t1)
	t2 = a.Prune(t2)

	// Untyped is compatible with every type in both directions and
	// constrains neither side.
	if p, ok := t1.(Primitive); ok && p == Untyped {
		return nil
	}
	if p, ok := t2.(Primitive); ok && p == Untyped {
		return nil
	}

	if v1, ok := t1.(Var); ok {
		if v2, ok := t2.(Var); ok && v1.ID == v2.ID {
			return nil
		}
		return a.bindVar(v1, t2)
	}
	if v2, ok := t2.(Var); ok {
		return a.bindVar(v2, t1)
	}

	// A union absorbs a unifying member without change. Member attempts are
	// speculative: bindings from a failed attempt must not leak.
	if u1, ok := t1.(Union); ok {
		if u2, ok := t2.(Union); ok {
			return a.unifyUnions(u1, u2)
		}
		return a.absorb(u1, t2)
	}
	if u2, ok := t2.(Union); ok {
		return a.absorb(u2, t1)
	}

	switch t1 := t1.(type) {
	case Primitive:
		p2, ok := t2.(Primitive)
		if !ok {
			return errUnify(t1, t2)
		}
		if t1 == p2 {
			return nil
		}
		// Numeric literal subsumption: an integer-literal-derived type is
		// accepted where a floating type is expected. One-directional.
		if t1 == Float && p2 == Int {
			return nil
		}
		return errUnify(t1, t2)

	case ClassInstance:
		c2, ok := t2.(ClassInstance)
		if !ok {
			return errUnify(t1, t2)
		}
		if t1.Name != c2.Name {
			return errUnifyMsg(t1, t2, "class mismatch")
		}
		if len(t1.Args) != len(c2.Args) {
			return errUnifyMsg(t1, t2, fmt.Sprintf("type arguments length mismatch: %d vs %d", len(t1.Args), len(c2.Args)))
		}
		for i := range t1.Args {
			if err := a.unify(t1.Args[i], c2.Args[i]); err != nil {
				return err
			}
		}
		return nil

	case Function:
		f2, ok := t2.(Function)
		if !ok {
			return errUnify(t1, t2)
		}
		if len(t1.Params) != len(f2.Params) {
			return errUnifyMsg(t1, t2, fmt.Sprintf("parameter count mismatch: %d vs %d", len(t1.Params), len(f2.Params)))
		}
		for i := range t1.Params {
			if err := a.unify(t1.Params[i], f2.Params[i]); err != nil {
				return err
			}
		}
		return a.unify(t1.Return, f2.Return)

	case NativeCall:
		n2, ok := t2.(NativeCall)
		if !ok {
			return errUnify(t1, t2)
		}
		if t1.LinkName != n2.LinkName || len(t1.Params) != len(n2.Params) {
			return errUnifyMsg(t1, t2, "native signature mismatch")
		}
		for i := range t1.Params {
			if err := a.unify(t1.Params[i], n2.Params[i]); err != nil {
				return err
			}
		}
		return a.unify(t1.Return, n2.Return)

	case OpaqueMethod:
		o2, ok := t2.(OpaqueMethod)
		if !ok {
			return errUnify(t1, t2)
		}
		if t1.Handle != o2.Handle || t1.Name != o2.Name || len(t1.Params) != len(o2.Params) {
			return errUnifyMsg(t1, t2, "opaque handle method mismatch")
		}
		for i := range t1.Params {
			if err := a.unify(t1.Params[i], o2.Params[i]); err != nil {
				return err
			}
		}
		return a.unify(t1.Return, o2.Return)

	case Vector:
		v2, ok := t2.(Vector)
		if !ok {
			return errUnify(t1, t2)
		}
		if t1.Lanes != v2.Lanes {
			return errUnifyMsg(t1, t2, "vector lane count mismatch")
		}
		return nil
	}

	return errUnifyMsg(t1, t2, fmt.Sprintf("unknown type kind %T", t1))
}

// bindVar binds a free variable after the occurs check.
func (a *Arena) bindVar(v Var, t Type) error {
	if a.Occurs(v, t) {
		return &OccursError{Var: v, In: a.Resolve(t)}
	}
	a.bind(v, t)
	return nil
}

// Occurs reports whether v appears free in t.
func (a *Arena) Occurs(v Var, t Type) bool {
	for _, id := range a.FreeVars(t) {
		if id == v.ID {
			return true
		}
	}
	return false
}

// absorb unifies t against the first union member it is compatible with.
func (a *Arena) absorb(u Union, t Type) error {
	for _, member := range u.Members {
		mark := a.Mark()
		if err := a.unify(member, t); err == nil {
			return nil
		}
		a.Rollback(mark)
	}
	return errUnifyMsg(u, t, "type is not a member of union")
}

// unifyUnions requires structural equality of normalized members.
func (a *Arena) unifyUnions(u1, u2 Union) error {
	n1 := a.NormalizeUnion(u1.Members)
	n2 := a.NormalizeUnion(u2.Members)
	m1, ok1 := n1.(Union)
	m2, ok2 := n2.(Union)
	if !ok1 || !ok2 {
		return a.unify(n1, n2)
	}
	if len(m1.Members) != len(m2.Members) {
		return errUnifyMsg(u1, u2, fmt.Sprintf("union member count mismatch: %d vs %d", len(m1.Members), len(m2.Members)))
	}
	// Members are sorted by NormalizeUnion, so pairwise comparison holds.
	for i := range m1.Members {
		if err := a.unify(m1.Members[i], m2.Members[i]); err != nil {
			return err
		}
	}
	return nil
}
