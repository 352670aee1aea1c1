package infer

import (
	"github.com/amber-lang/amber/internal/ast"
	"github.com/amber-lang/amber/internal/config"
	"github.com/amber-lang/amber/internal/types"
)

// narrowing maps a variable name to its refined type within one branch.
type narrowing map[string]types.Type

func (n narrowing) merge(other narrowing) narrowing {
	if len(other) == 0 {
		return n
	}
	if n == nil {
		n = make(narrowing, len(other))
	}
	for name, t := range other {
		n[name] = t
	}
	return n
}

// analyzeCondition recognizes a closed set of guard shapes and returns the
// refined bindings for the true and false branches. Any shape outside the
// set narrows nothing: a conservative default, never a best-effort guess.
//
// Recognized guards: a bare truthiness test on a name; equality or
// inequality against a nil literal in either operand order; the nil-test
// predicate call; conjunctions (true branch only) and disjunctions (false
// branch only) of recognized guards.
func (s *Session) analyzeCondition(cond ast.Expression) (thenN, elseN narrowing) {
	switch c := cond.(type) {
	case *ast.Identifier:
		if t, ok := s.nonNilRefinement(c.Value); ok {
			thenN = narrowing{c.Value: t}
		}
		// A falsy subject may be nil or false; the false branch narrows to
		// nil only through a disjunction, where both sides are known falsy.
		return thenN, nil

	case *ast.InfixExpression:
		switch c.Operator {
		case "==":
			if name, ok := nilComparisonSubject(c); ok {
				return s.nilGuard(name)
			}
		case "!=":
			if name, ok := nilComparisonSubject(c); ok {
				thenN, elseN = s.nilGuard(name)
				return elseN, thenN
			}
		case "&&":
			leftThen, _ := s.analyzeCondition(c.Left)
			rightThen, _ := s.analyzeCondition(c.Right)
			// A false conjunction cannot be attributed to either conjunct.
			return leftThen.merge(rightThen), nil
		case "||":
			_, leftElse := s.analyzeCondition(c.Left)
			_, rightElse := s.analyzeCondition(c.Right)
			leftFalse := s.falsyRefinement(c.Left).merge(leftElse)
			rightFalse := s.falsyRefinement(c.Right).merge(rightElse)
			// Either side may have satisfied a true disjunction; only the
			// false branch knows both sides failed.
			return nil, leftFalse.merge(rightFalse)
		}
		return nil, nil

	case *ast.CallExpression:
		if c.Method == config.NilCheckMethodName && len(c.Arguments) == 0 && c.Receiver != nil {
			if ident, ok := c.Receiver.(*ast.Identifier); ok {
				thenN, elseN = s.nilGuard(ident.Value)
				return thenN, elseN
			}
		}
		return nil, nil
	}
	return nil, nil
}

// nilGuard returns the two branches of a "subject is nil" test: nil in the
// true branch, non-nil in the false branch.
func (s *Session) nilGuard(name string) (isNil, notNil narrowing) {
	if _, defined := s.env.Lookup(name); !defined {
		return nil, nil
	}
	isNil = narrowing{name: types.Nil}
	if t, ok := s.nonNilRefinement(name); ok {
		notNil = narrowing{name: t}
	}
	return isNil, notNil
}

// falsyRefinement narrows a bare-truthiness disjunct to Nil for the branch
// where the whole disjunction was false.
func (s *Session) falsyRefinement(cond ast.Expression) narrowing {
	ident, ok := cond.(*ast.Identifier)
	if !ok {
		return nil
	}
	if _, defined := s.env.Lookup(ident.Value); !defined {
		return nil
	}
	return narrowing{ident.Value: types.Nil}
}

// nonNilRefinement computes the refined type of name with Nil excluded.
// Subtracting Nil from a union drops the member; an unbound variable has no
// union to subtract from and refines to Untyped, leaving the variable itself
// unconstrained outside the branch.
func (s *Session) nonNilRefinement(name string) (types.Type, bool) {
	scheme, ok := s.env.Lookup(name)
	if !ok {
		return nil, false
	}
	current := s.Arena.Resolve(scheme.Body)
	switch t := current.(type) {
	case types.Var:
		return types.Untyped, true
	case types.Union:
		kept := make([]types.Type, 0, len(t.Members))
		for _, m := range t.Members {
			if prim, isPrim := m.(types.Primitive); isPrim && prim == types.Nil {
				continue
			}
			kept = append(kept, m)
		}
		if len(kept) == len(t.Members) {
			return nil, false
		}
		return s.Arena.NormalizeUnion(kept), true
	default:
		return nil, false
	}
}

// nilComparisonSubject matches `name == nil` / `nil == name` (and the !=
// forms, which share the shape).
func nilComparisonSubject(n *ast.InfixExpression) (string, bool) {
	if ident, ok := n.Left.(*ast.Identifier); ok {
		if _, isNil := n.Right.(*ast.NilLiteral); isNil {
			return ident.Value, true
		}
	}
	if ident, ok := n.Right.(*ast.Identifier); ok {
		if _, isNil := n.Left.(*ast.NilLiteral); isNil {
			return ident.Value, true
		}
	}
	return "", false
}
