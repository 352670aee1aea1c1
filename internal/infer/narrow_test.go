package infer

import (
	"testing"

	"github.com/amber-lang/amber/internal/ast"
	"github.com/amber-lang/amber/internal/config"
	"github.com/amber-lang/amber/internal/diagnostics"
)

// nilableInt builds x = if true then 1 else nil end, giving x the union
// Integer | Nil for the narrowing scenarios below.
func nilableInt(name string) *ast.ExpressionStatement {
	return stmt(assign(name, ifExpr(boolLit(true), blockOf(intLit(1)), blockOf(nilLit()))))
}

func TestNilInequalityNarrowsThenBranch(t *testing.T) {
	use := ifExpr(
		infix(ident("x"), "!=", nilLit()),
		blockOf(infix(ident("x"), "+", intLit(1))),
		blockOf(intLit(0)),
	)
	s := runProgram(t, nilableInt("x"), stmt(use))

	wantNoDiagnostics(t, s)
	wantType(t, s.TypeMap[use], "Integer")
}

func TestNilEqualityReversedOperands(t *testing.T) {
	// nil == x narrows exactly like x == nil.
	use := ifExpr(
		infix(nilLit(), "==", ident("x")),
		blockOf(intLit(0)),
		blockOf(infix(ident("x"), "+", intLit(1))),
	)
	s := runProgram(t, nilableInt("x"), stmt(use))

	wantNoDiagnostics(t, s)
	wantType(t, s.TypeMap[use], "Integer")
}

func TestNilPredicateNarrows(t *testing.T) {
	use := ifExpr(
		call(ident("x"), config.NilCheckMethodName),
		blockOf(intLit(0)),
		blockOf(infix(ident("x"), "+", intLit(1))),
	)
	s := runProgram(t, nilableInt("x"), stmt(use))

	wantNoDiagnostics(t, s)
	wantType(t, s.TypeMap[use], "Integer")
}

func TestConjunctionNarrowsThenBranchOnly(t *testing.T) {
	use := ifExpr(
		infix(
			infix(ident("x"), "!=", nilLit()),
			"&&",
			infix(ident("y"), "!=", nilLit()),
		),
		blockOf(infix(ident("x"), "+", ident("y"))),
		blockOf(intLit(0)),
	)
	s := runProgram(t, nilableInt("x"), nilableInt("y"), stmt(use))

	wantNoDiagnostics(t, s)
	wantType(t, s.TypeMap[use], "Integer")
}

func TestDisjunctionNarrowsElseBranchOnly(t *testing.T) {
	use := ifExpr(
		infix(
			infix(ident("x"), "==", nilLit()),
			"||",
			infix(ident("y"), "==", nilLit()),
		),
		blockOf(intLit(0)),
		blockOf(infix(ident("x"), "+", ident("y"))),
	)
	s := runProgram(t, nilableInt("x"), nilableInt("y"), stmt(use))

	wantNoDiagnostics(t, s)
	wantType(t, s.TypeMap[use], "Integer")
}

func TestTruthinessNarrowsThenBranch(t *testing.T) {
	use := ifExpr(
		ident("x"),
		blockOf(infix(ident("x"), "+", intLit(1))),
		blockOf(intLit(0)),
	)
	s := runProgram(t, nilableInt("x"), stmt(use))

	wantNoDiagnostics(t, s)
	wantType(t, s.TypeMap[use], "Integer")
}

func TestTruthinessDoesNotNarrowElseBranch(t *testing.T) {
	// A falsy bare subject may be nil or false, so the false branch keeps
	// the full union and the method send fails on the Nil member.
	use := ifExpr(
		ident("x"),
		blockOf(intLit(0)),
		blockOf(infix(ident("x"), "+", intLit(1))),
	)
	s := runProgram(t, nilableInt("x"), stmt(use))
	onlyDiagnostic(t, s, diagnostics.ErrT003)
}

func TestUnrecognizedGuardNarrowsNothing(t *testing.T) {
	// !(x == nil) is outside the recognized guard set: conservative, no
	// refinement, so the Nil member still blocks the arithmetic.
	use := ifExpr(
		&ast.PrefixExpression{Token: tk(), Operator: "!", Right: infix(ident("x"), "==", nilLit())},
		blockOf(infix(ident("x"), "+", intLit(1))),
		blockOf(intLit(0)),
	)
	s := runProgram(t, nilableInt("x"), stmt(use))
	onlyDiagnostic(t, s, diagnostics.ErrT003)
}

func TestNarrowingDoesNotEscapeBranch(t *testing.T) {
	guarded := ifExpr(
		infix(ident("x"), "!=", nilLit()),
		blockOf(infix(ident("x"), "+", intLit(1))),
		blockOf(intLit(0)),
	)
	after := assign("z", ident("x"))
	s := runProgram(t, nilableInt("x"), stmt(guarded), stmt(after))

	wantNoDiagnostics(t, s)
	wantType(t, s.TypeMap[after], "Integer | Nil")
}

func TestWhileConditionNarrowsBody(t *testing.T) {
	loop := &ast.WhileExpression{
		Token:     tk(),
		Condition: infix(ident("x"), "!=", nilLit()),
		Body:      blockOf(infix(ident("x"), "+", intLit(1))),
	}
	s := runProgram(t, nilableInt("x"), stmt(loop))

	wantNoDiagnostics(t, s)
	wantType(t, s.TypeMap[loop], "Nil")
}
