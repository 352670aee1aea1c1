package infer

import (
	"testing"

	"github.com/amber-lang/amber/internal/ast"
	"github.com/amber-lang/amber/internal/pipeline"
)

func TestProcessorPopulatesContext(t *testing.T) {
	a := assign("x", intLit(1))
	def := methodDef("double", []string{"n"}, blockOf(infix(ident("n"), "*", intLit(2))))
	use := stmt(fnCall("double", intLit(3)))

	ctx := &pipeline.PipelineContext{
		FilePath: "main.amb",
		AstRoot:  &ast.Program{File: "main.amb", Statements: []ast.Statement{stmt(a), def, use}},
	}
	out := pipeline.New(&TypeInferenceProcessor{}).Run(ctx)

	if len(out.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", out.Errors)
	}
	wantType(t, out.TypeMap[a], "Integer")
	fn, ok := out.FunctionTypes["double"]
	if !ok {
		t.Fatal("double missing from function types")
	}
	wantType(t, fn.Return, "Integer")
}

func TestProcessorSkipsWithoutTree(t *testing.T) {
	ctx := &pipeline.PipelineContext{FilePath: "empty.amb"}
	out := (&TypeInferenceProcessor{}).Process(ctx)
	if out.TypeMap != nil || len(out.Errors) != 0 {
		t.Errorf("expected untouched context, got %+v", out)
	}
}
