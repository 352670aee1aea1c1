package infer

import (
	"github.com/amber-lang/amber/internal/diagnostics"
	"github.com/amber-lang/amber/internal/types"
)

// solveDeferred drains the pending method-call constraints in rounds. A
// round replays every constraint whose receiver has become concretely bound
// through unification elsewhere; a round that resolves nothing stops the
// loop (boundedness follows from the finite, shrinking set of unresolved
// receivers). Constraints still pending afterwards become UnresolvedMethod
// diagnostics; that is the only path by which a method on a never-exercised
// parameter turns into an explicit compile-time error.
func (s *Session) solveDeferred() {
	for {
		progress := false
		remaining := make([]*methodCall, 0, len(s.pending))
		for _, c := range s.pending {
			recv := s.Arena.Resolve(c.receiver)
			if _, free := recv.(types.Var); free {
				remaining = append(remaining, c)
				continue
			}
			progress = true
			result, ok := s.resolveMethod(c.token, recv, c.method, c.args)
			if !ok {
				s.report(diagnostics.ErrT003, c.token, "unresolved method %s for %s", c.method, recv)
				result = types.Untyped
			}
			s.unify(c.token, c.result, result)
		}
		s.pending = remaining
		if !progress {
			break
		}
	}

	for _, c := range s.pending {
		s.report(diagnostics.ErrT003, c.token, "unresolved method %s for %s", c.method, s.Arena.Resolve(c.receiver))
		s.unify(c.token, c.result, types.Untyped)
	}
	s.pending = nil
}
