package infer

import (
	"testing"

	"github.com/amber-lang/amber/internal/foreign"
	"github.com/amber-lang/amber/internal/sigdecl"
	"github.com/amber-lang/amber/internal/types"
)

func TestInstantiateYieldsFreshIsomorphicTypes(t *testing.T) {
	arena := types.NewArena()
	v := arena.NewVar()
	scheme := Scheme{
		Quantified: []int{v.ID},
		Body:       types.Function{Params: []types.Type{v}, Return: v},
	}

	first, ok := instantiate(arena, scheme).(types.Function)
	if !ok {
		t.Fatal("expected a function instantiation")
	}
	second := instantiate(arena, scheme).(types.Function)

	fp := first.Params[0].(types.Var)
	fr := first.Return.(types.Var)
	sp := second.Params[0].(types.Var)

	if fp.ID != fr.ID {
		t.Errorf("instantiation broke sharing: param %d, return %d", fp.ID, fr.ID)
	}
	if fp.ID == v.ID {
		t.Error("instantiation reused the quantified variable")
	}
	if fp.ID == sp.ID {
		t.Error("two instantiations share a fresh variable")
	}
}

func TestInstantiateLeavesFreeVarsAlone(t *testing.T) {
	arena := types.NewArena()
	free := arena.NewVar()
	scheme := Scheme{Body: types.Function{Params: []types.Type{free}, Return: types.Int}}

	got := instantiate(arena, scheme).(types.Function)
	if got.Params[0].(types.Var).ID != free.ID {
		t.Error("monomorphic variable was replaced during instantiation")
	}
}

func TestGeneralizeSkipsEnvironmentVars(t *testing.T) {
	s := NewSession(sigdecl.NewTable(), foreign.NewRegistry())
	envVar := s.Arena.NewVar()
	s.env.Define("y", monotype(envVar))
	ownVar := s.Arena.NewVar()

	scheme := s.generalize(types.Function{Params: []types.Type{envVar}, Return: ownVar})

	if len(scheme.Quantified) != 1 || scheme.Quantified[0] != ownVar.ID {
		t.Errorf("expected only %d quantified, got %v", ownVar.ID, scheme.Quantified)
	}
}

func TestGeneralizeSkipsPendingConstraintVars(t *testing.T) {
	s := NewSession(sigdecl.NewTable(), foreign.NewRegistry())
	recv := s.Arena.NewVar()
	result := s.Arena.NewVar()
	s.pending = append(s.pending, &methodCall{receiver: recv, method: "m", result: result})

	scheme := s.generalize(types.Function{Params: []types.Type{recv}, Return: result})
	if len(scheme.Quantified) != 0 {
		t.Errorf("pending-constraint variables must stay monomorphic, got %v", scheme.Quantified)
	}
}

func TestEnvShadowingAndPop(t *testing.T) {
	env := NewEnv()
	env.Define("x", monotype(types.Int))
	env.Push()
	env.Define("x", monotype(types.String))

	if got, _ := env.Lookup("x"); got.Body != types.String {
		t.Errorf("inner frame should shadow, got %s", got.Body)
	}
	env.Pop()
	if got, _ := env.Lookup("x"); got.Body != types.Int {
		t.Errorf("pop should restore the outer binding, got %s", got.Body)
	}
	if _, ok := env.Lookup("never_defined"); ok {
		t.Error("lookup of an undefined name succeeded")
	}
}
