package export

import (
	"testing"

	"github.com/amber-lang/amber/internal/diagnostics"
	"github.com/amber-lang/amber/internal/pipeline"
	"github.com/amber-lang/amber/internal/token"
	"github.com/amber-lang/amber/internal/types"
)

func TestProcessorEmitsPayload(t *testing.T) {
	ctx := &pipeline.PipelineContext{
		FunctionTypes: map[string]types.Function{
			"main": {Return: types.Nil},
		},
	}
	out := (&Processor{}).Process(ctx)

	if len(out.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", out.Errors)
	}
	if len(out.Export) == 0 {
		t.Fatal("expected a payload")
	}

	enc, err := NewEncoder()
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	got, err := enc.Decode(out.Export)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Functions) != 1 || got.Functions[0].Name != "main" {
		t.Errorf("unexpected payload contents: %+v", got)
	}
}

func TestProcessorSkipsAfterEarlierErrors(t *testing.T) {
	ctx := &pipeline.PipelineContext{
		Errors: []*diagnostics.DiagnosticError{
			diagnostics.NewError(diagnostics.ErrT002, token.Token{}, "earlier failure"),
		},
	}
	out := (&Processor{}).Process(ctx)

	if out.Export != nil {
		t.Error("payload must not be produced for a failed run")
	}
	if len(out.Errors) != 1 {
		t.Errorf("errors must pass through unchanged, got %v", out.Errors)
	}
}
