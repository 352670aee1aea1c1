package infer

import (
	"github.com/amber-lang/amber/internal/ast"
	"github.com/amber-lang/amber/internal/config"
	"github.com/amber-lang/amber/internal/types"
)

// inferLiteral maps literal nodes directly onto nominal types. Aggregate
// literals merge heterogeneous elements into a union rather than forcing a
// unification failure.
func (s *Session) inferLiteral(node ast.Node) types.Type {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return types.Int

	case *ast.FloatLiteral:
		return types.Float

	case *ast.StringLiteral:
		return types.String

	case *ast.SymbolLiteral:
		return types.Symbol

	case *ast.RegexpLiteral:
		return types.Regexp

	case *ast.BooleanLiteral:
		if n.Value {
			return types.True
		}
		return types.False

	case *ast.NilLiteral:
		return types.Nil

	case *ast.RangeLiteral:
		s.inferNode(n.Low)
		s.inferNode(n.High)
		return types.Range

	case *ast.ArrayLiteral:
		return s.inferArrayLiteral(n)

	case *ast.HashLiteral:
		return s.inferHashLiteral(n)
	}
	return types.Untyped
}

func (s *Session) inferArrayLiteral(n *ast.ArrayLiteral) types.Type {
	if len(n.Elements) == 0 {
		// Element type stays open; generalization at the binding site makes
		// the empty literal reusable at several element types.
		return types.ClassInstance{Name: config.ArrayTypeName, Args: []types.Type{s.Arena.NewVar()}}
	}
	members := make([]types.Type, len(n.Elements))
	for i, elem := range n.Elements {
		members[i] = s.Arena.Resolve(s.inferNode(elem))
	}
	elem := s.Arena.NormalizeUnion(members)
	return types.ClassInstance{Name: config.ArrayTypeName, Args: []types.Type{elem}}
}

func (s *Session) inferHashLiteral(n *ast.HashLiteral) types.Type {
	if len(n.Keys) == 0 {
		return types.ClassInstance{
			Name: config.HashTypeName,
			Args: []types.Type{s.Arena.NewVar(), s.Arena.NewVar()},
		}
	}
	keys := make([]types.Type, len(n.Keys))
	values := make([]types.Type, len(n.Values))
	for i := range n.Keys {
		keys[i] = s.Arena.Resolve(s.inferNode(n.Keys[i]))
		values[i] = s.Arena.Resolve(s.inferNode(n.Values[i]))
	}
	return types.ClassInstance{
		Name: config.HashTypeName,
		Args: []types.Type{s.Arena.NormalizeUnion(keys), s.Arena.NormalizeUnion(values)},
	}
}
