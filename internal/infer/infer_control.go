package infer

import (
	"github.com/amber-lang/amber/internal/ast"
	"github.com/amber-lang/amber/internal/types"
)

// inferIf infers both arms under their narrowed environments and merges the
// results into a deduplicated union. Equal-typed arms collapse to the single
// type; a missing alternative contributes Nil.
func (s *Session) inferIf(n *ast.IfExpression) types.Type {
	s.inferNode(n.Condition)
	thenNarrow, elseNarrow := s.analyzeCondition(n.Condition)

	thenType := s.inferNarrowed(n.Consequence, thenNarrow)
	var elseType types.Type = types.Nil
	if n.Alternative != nil {
		elseType = s.inferNarrowed(n.Alternative, elseNarrow)
	}
	return s.Arena.NormalizeUnion([]types.Type{
		s.Arena.Resolve(thenType),
		s.Arena.Resolve(elseType),
	})
}

// inferNarrowed infers a branch body in a fresh frame carrying the refined
// bindings. The frame is popped on exit; narrowing never escapes the branch.
func (s *Session) inferNarrowed(body *ast.BlockStatement, refined narrowing) types.Type {
	s.env.Push()
	for name, t := range refined {
		s.env.Define(name, monotype(t))
	}
	result := s.inferBlock(body)
	s.env.Pop()
	return result
}

// inferCase merges every arm into a union; the subject contributes no
// narrowing. An absent else arm contributes Nil.
func (s *Session) inferCase(n *ast.CaseExpression) types.Type {
	if n.Subject != nil {
		s.inferNode(n.Subject)
	}
	var arms []types.Type
	for _, when := range n.Whens {
		for _, v := range when.Values {
			s.inferNode(v)
		}
		arms = append(arms, s.Arena.Resolve(s.inferNarrowed(when.Body, nil)))
	}
	if n.Else != nil {
		arms = append(arms, s.Arena.Resolve(s.inferNarrowed(n.Else, nil)))
	} else {
		arms = append(arms, types.Nil)
	}
	return s.Arena.NormalizeUnion(arms)
}

// inferWhile types the loop as Nil: its result is never observed by the
// surrounding expression. The condition's narrowing holds inside the body.
func (s *Session) inferWhile(n *ast.WhileExpression) types.Type {
	s.inferNode(n.Condition)
	bodyNarrow, _ := s.analyzeCondition(n.Condition)
	s.inferNarrowed(n.Body, bodyNarrow)
	return types.Nil
}
