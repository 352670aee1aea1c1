package infer

import (
	"strings"
	"testing"

	"github.com/amber-lang/amber/internal/diagnostics"
)

func TestSolverResolvesChainedConstraints(t *testing.T) {
	// Both sends defer: x is a parameter, y the result of the first send.
	// The call site binds x, one solving round then cascades through y.
	def := methodDef("f", []string{"x"}, blockOf(
		assign("y", call(ident("x"), "reverse")),
		call(ident("y"), "length"),
	))
	use := stmt(fnCall("f", strLit("abc")))
	s := runProgram(t, def, use)

	wantNoDiagnostics(t, s)
	fn, ok := s.FunctionTypes["f"]
	if !ok {
		t.Fatal("f missing from function types")
	}
	wantType(t, fn.Params[0], "String")
	wantType(t, fn.Return, "Integer")
}

func TestSolverNeverGuessesByName(t *testing.T) {
	// length exists on String and Array both; with the receiver never
	// bound the constraint must stay unresolved rather than pick one.
	def := methodDef("g", []string{"x"}, blockOf(call(ident("x"), "length")))
	s := runProgram(t, def)

	d := onlyDiagnostic(t, s, diagnostics.ErrT003)
	if !strings.Contains(d.Message, "length") {
		t.Errorf("diagnostic does not name the method: %s", d.Message)
	}
	fn := s.FunctionTypes["g"]
	wantType(t, fn.Return, "Untyped")
}

func TestSolverReportsEachLeftoverOnce(t *testing.T) {
	def := methodDef("h", []string{"a", "b"}, blockOf(
		call(ident("a"), "first_unknown"),
		call(ident("b"), "second_unknown"),
	))
	s := runProgram(t, def)

	if len(s.Diagnostics) != 2 {
		t.Fatalf("expected two diagnostics, got %d: %v", len(s.Diagnostics), s.Diagnostics)
	}
	for _, d := range s.Diagnostics {
		if d.Code != diagnostics.ErrT003 {
			t.Errorf("expected %s, got %s: %s", diagnostics.ErrT003, d.Code, d.Message)
		}
	}
}
