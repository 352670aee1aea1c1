// Package pipeline wires the compiler stages together. Each stage is a
// Processor transforming a shared context; the surrounding driver composes
// parsing, inference and export into one Pipeline.
package pipeline

import (
	"github.com/amber-lang/amber/internal/ast"
	"github.com/amber-lang/amber/internal/diagnostics"
	"github.com/amber-lang/amber/internal/foreign"
	"github.com/amber-lang/amber/internal/sigdecl"
	"github.com/amber-lang/amber/internal/types"
)

// PipelineContext carries one compilation unit through the stages.
type PipelineContext struct {
	FilePath string
	AstRoot  *ast.Program

	// Inputs materialized before inference.
	Decls   *sigdecl.Table
	Foreign *foreign.Registry

	// Outputs of the inference stage, consumed by IR building and codegen.
	TypeMap       map[ast.Node]types.Type
	IvarTypes     map[string]map[string]types.Type
	FunctionTypes map[string]types.Function

	// Export is the serialized typed-program payload handed to backends.
	Export []byte

	Errors []*diagnostics.DiagnosticError
}

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline is a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages run even after earlier errors so one
// invocation collects diagnostics from every stage.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
