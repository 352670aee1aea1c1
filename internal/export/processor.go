package export

import (
	"github.com/amber-lang/amber/internal/diagnostics"
	"github.com/amber-lang/amber/internal/pipeline"
	"github.com/amber-lang/amber/internal/token"
)

// Processor is the pipeline stage that serializes the inference outputs.
// It is skipped when earlier stages already recorded diagnostics: backends
// only ever see payloads from clean runs.
type Processor struct{}

func (p *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if len(ctx.Errors) > 0 {
		return ctx
	}

	enc, err := NewEncoder()
	if err != nil {
		ctx.Errors = append(ctx.Errors, exportError(err))
		return ctx
	}
	payload, err := enc.Encode(ctx.FunctionTypes, ctx.IvarTypes)
	if err != nil {
		ctx.Errors = append(ctx.Errors, exportError(err))
		return ctx
	}
	ctx.Export = payload
	return ctx
}

func exportError(err error) *diagnostics.DiagnosticError {
	return diagnostics.Newf(diagnostics.ErrT005, token.Token{}, "export failed: %v", err)
}
