package infer

import (
	"github.com/amber-lang/amber/internal/foreign"
	"github.com/amber-lang/amber/internal/pipeline"
	"github.com/amber-lang/amber/internal/sigdecl"
)

// TypeInferenceProcessor is the pipeline stage running one inference session
// over the context's syntax tree.
type TypeInferenceProcessor struct{}

func (tip *TypeInferenceProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}

	decls := ctx.Decls
	if decls == nil {
		decls = sigdecl.NewTable()
	}
	registry := ctx.Foreign
	if registry == nil {
		registry = foreign.NewRegistry()
	}

	session := NewSession(decls, registry)
	session.Run(ctx.AstRoot)

	ctx.TypeMap = session.TypeMap
	ctx.IvarTypes = session.IvarTypes
	ctx.FunctionTypes = session.FunctionTypes
	ctx.Errors = append(ctx.Errors, session.Diagnostics...)
	return ctx
}
