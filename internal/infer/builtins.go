package infer

import (
	"github.com/amber-lang/amber/internal/config"
	"github.com/amber-lang/amber/internal/types"
)

// The built-in operator table: fixed-arity primitive semantics for numeric,
// string and boolean receivers. Entry order is declaration order, which
// breaks overload-score ties deterministically.

type builtinEntry struct {
	method string
	sig    types.Function
}

func sig(ret types.Type, params ...types.Type) types.Function {
	return types.Function{Params: params, Return: ret}
}

var builtinMethods = map[string][]builtinEntry{
	"Integer": {
		{"+", sig(types.Int, types.Int)},
		{"+", sig(types.Float, types.Float)},
		{"-", sig(types.Int, types.Int)},
		{"-", sig(types.Float, types.Float)},
		{"*", sig(types.Int, types.Int)},
		{"*", sig(types.Float, types.Float)},
		{"/", sig(types.Int, types.Int)},
		{"/", sig(types.Float, types.Float)},
		{"%", sig(types.Int, types.Int)},
		{"**", sig(types.Int, types.Int)},
		{"**", sig(types.Float, types.Float)},
		{"<", sig(types.Bool(), types.Int)},
		{"<", sig(types.Bool(), types.Float)},
		{"<=", sig(types.Bool(), types.Int)},
		{"<=", sig(types.Bool(), types.Float)},
		{">", sig(types.Bool(), types.Int)},
		{">", sig(types.Bool(), types.Float)},
		{">=", sig(types.Bool(), types.Int)},
		{">=", sig(types.Bool(), types.Float)},
		{"<=>", sig(types.Int, types.Int)},
		{"&", sig(types.Int, types.Int)},
		{"|", sig(types.Int, types.Int)},
		{"^", sig(types.Int, types.Int)},
		{"<<", sig(types.Int, types.Int)},
		{">>", sig(types.Int, types.Int)},
		{"-@", sig(types.Int)},
		{"to_i", sig(types.Int)},
		{"to_f", sig(types.Float)},
		{"abs", sig(types.Int)},
		{"succ", sig(types.Int)},
		{"chr", sig(types.String)},
		{"even?", sig(types.Bool())},
		{"odd?", sig(types.Bool())},
		{"zero?", sig(types.Bool())},
	},
	"Float": {
		{"+", sig(types.Float, types.Float)},
		{"-", sig(types.Float, types.Float)},
		{"*", sig(types.Float, types.Float)},
		{"/", sig(types.Float, types.Float)},
		{"%", sig(types.Float, types.Float)},
		{"**", sig(types.Float, types.Float)},
		{"<", sig(types.Bool(), types.Float)},
		{"<=", sig(types.Bool(), types.Float)},
		{">", sig(types.Bool(), types.Float)},
		{">=", sig(types.Bool(), types.Float)},
		{"<=>", sig(types.Int, types.Float)},
		{"-@", sig(types.Float)},
		{"to_i", sig(types.Int)},
		{"to_f", sig(types.Float)},
		{"abs", sig(types.Float)},
		{"floor", sig(types.Int)},
		{"ceil", sig(types.Int)},
		{"round", sig(types.Int)},
		{"zero?", sig(types.Bool())},
	},
	"String": {
		{"+", sig(types.String, types.String)},
		{"*", sig(types.String, types.Int)},
		{"<", sig(types.Bool(), types.String)},
		{"<=", sig(types.Bool(), types.String)},
		{">", sig(types.Bool(), types.String)},
		{">=", sig(types.Bool(), types.String)},
		{"<=>", sig(types.Int, types.String)},
		{"=~", sig(types.Union{Members: []types.Type{types.Int, types.Nil}}, types.Regexp)},
		{"[]", sig(types.String, types.Int)},
		{"[]", sig(types.String, types.Range)},
		{"length", sig(types.Int)},
		{"size", sig(types.Int)},
		{"to_i", sig(types.Int)},
		{"to_f", sig(types.Float)},
		{"to_sym", sig(types.Symbol)},
		{"upcase", sig(types.String)},
		{"downcase", sig(types.String)},
		{"capitalize", sig(types.String)},
		{"reverse", sig(types.String)},
		{"strip", sig(types.String)},
		{"chomp", sig(types.String)},
		{"chars", sig(arrayOf(types.String))},
		{"split", sig(arrayOf(types.String), types.String)},
		{"include?", sig(types.Bool(), types.String)},
		{"start_with?", sig(types.Bool(), types.String)},
		{"end_with?", sig(types.Bool(), types.String)},
		{"empty?", sig(types.Bool())},
	},
	"Symbol": {
		{"to_sym", sig(types.Symbol)},
	},
	"Regexp": {
		{"source", sig(types.String)},
		{"match?", sig(types.Bool(), types.String)},
	},
	"Range": {
		{"to_a", sig(arrayOf(types.Int))},
		{"include?", sig(types.Bool(), types.Int)},
		{"min", sig(types.Int)},
		{"max", sig(types.Int)},
		{"first", sig(types.Int)},
		{"last", sig(types.Int)},
		{"size", sig(types.Int)},
	},
	"Bool": {
		{"&", sig(types.Bool(), types.Bool())},
		{"|", sig(types.Bool(), types.Bool())},
		{"^", sig(types.Bool(), types.Bool())},
	},
	"Nil": {
		{"to_a", sig(arrayOf(types.Untyped))},
	},
}

// universalMethods resolve on every receiver, consulted after the
// receiver-specific entries.
var universalMethods = []builtinEntry{
	{"to_s", sig(types.String)},
	{"inspect", sig(types.String)},
	{"nil?", sig(types.Bool())},
	{"==", sig(types.Bool(), types.Untyped)},
	{"!=", sig(types.Bool(), types.Untyped)},
	{"frozen?", sig(types.Bool())},
	{"hash", sig(types.Int)},
}

func arrayOf(elem types.Type) types.Type {
	return types.ClassInstance{Name: config.ArrayTypeName, Args: []types.Type{elem}}
}

// builtinReceiverKey maps a resolved receiver type to its table key, empty
// when the receiver has no specific entry set.
func builtinReceiverKey(recv types.Type) string {
	switch t := recv.(type) {
	case types.Primitive:
		switch t {
		case types.True, types.False:
			return "Bool"
		case types.Nil:
			return "Nil"
		case types.Untyped:
			return ""
		}
		return t.String()
	case types.Union:
		if types.IsBool(t) {
			return "Bool"
		}
	}
	return ""
}

// builtinCandidates returns the matching operator-table signatures for a
// receiver, specific entries first, universal fallbacks after, preserving
// declaration order.
func builtinCandidates(recv types.Type, method string) []types.Function {
	var candidates []types.Function
	if key := builtinReceiverKey(recv); key != "" {
		for _, entry := range builtinMethods[key] {
			if entry.method == method {
				candidates = append(candidates, entry.sig)
			}
		}
	}
	for _, entry := range universalMethods {
		if entry.method == method {
			candidates = append(candidates, entry.sig)
		}
	}
	return candidates
}
