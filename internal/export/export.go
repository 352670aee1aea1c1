// Package export serializes the inference outputs for the code-generation
// backends. The wire form is a dynamic protobuf message: backends living in
// other processes decode it without sharing Go types with the engine.
package export

import (
	"fmt"
	"sort"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/builder"
	"github.com/jhump/protoreflect/dynamic"

	"github.com/amber-lang/amber/internal/types"
)

// FunctionSig is one exported function signature, types in printed form.
type FunctionSig struct {
	Name       string
	ParamTypes []string
	ReturnType string
}

// ClassIvars is the exported instance-variable layout of one class.
type ClassIvars struct {
	ClassName string
	Fields    map[string]string
}

// TypedProgram is the decoded form of one export payload.
type TypedProgram struct {
	Functions []FunctionSig
	Classes   []ClassIvars
}

// Encoder builds and holds the message descriptors once; encoding is then a
// matter of filling dynamic messages.
type Encoder struct {
	program *desc.MessageDescriptor
}

// NewEncoder constructs the descriptor set for the export payload.
func NewEncoder() (*Encoder, error) {
	function := builder.NewMessage("FunctionSignature").
		AddField(builder.NewField("name", builder.FieldTypeString())).
		AddField(builder.NewField("param_types", builder.FieldTypeString()).SetRepeated()).
		AddField(builder.NewField("return_type", builder.FieldTypeString()))

	field := builder.NewMessage("IvarField").
		AddField(builder.NewField("name", builder.FieldTypeString())).
		AddField(builder.NewField("type", builder.FieldTypeString()))

	class := builder.NewMessage("ClassIvars").
		AddField(builder.NewField("class_name", builder.FieldTypeString())).
		AddField(builder.NewField("fields", builder.FieldTypeMessage(field)).SetRepeated())

	program := builder.NewMessage("TypedProgram").
		AddField(builder.NewField("functions", builder.FieldTypeMessage(function)).SetRepeated()).
		AddField(builder.NewField("classes", builder.FieldTypeMessage(class)).SetRepeated())

	md, err := program.Build()
	if err != nil {
		return nil, fmt.Errorf("building export descriptors: %w", err)
	}
	return &Encoder{program: md}, nil
}

// Encode serializes the function-signature and instance-variable maps.
// Entries are emitted in sorted order so equal inputs produce equal bytes.
func (e *Encoder) Encode(functions map[string]types.Function, ivars map[string]map[string]types.Type) ([]byte, error) {
	msg := dynamic.NewMessage(e.program)

	fnDesc := e.program.FindFieldByName("functions").GetMessageType()
	for _, name := range sortedKeys(functions) {
		fn := functions[name]
		entry := dynamic.NewMessage(fnDesc)
		entry.SetFieldByName("name", name)
		for _, p := range fn.Params {
			entry.AddRepeatedFieldByName("param_types", typeString(p))
		}
		entry.SetFieldByName("return_type", typeString(fn.Return))
		msg.AddRepeatedFieldByName("functions", entry)
	}

	classDesc := e.program.FindFieldByName("classes").GetMessageType()
	fieldDesc := classDesc.FindFieldByName("fields").GetMessageType()
	for _, className := range sortedKeys(ivars) {
		entry := dynamic.NewMessage(classDesc)
		entry.SetFieldByName("class_name", className)
		fields := ivars[className]
		for _, fieldName := range sortedKeys(fields) {
			f := dynamic.NewMessage(fieldDesc)
			f.SetFieldByName("name", fieldName)
			f.SetFieldByName("type", typeString(fields[fieldName]))
			entry.AddRepeatedFieldByName("fields", f)
		}
		msg.AddRepeatedFieldByName("classes", entry)
	}

	return msg.Marshal()
}

// Decode parses an export payload back into its structured form; tooling
// collaborators use this to inspect a build artifact.
func (e *Encoder) Decode(data []byte) (*TypedProgram, error) {
	msg := dynamic.NewMessage(e.program)
	if err := msg.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("decoding export payload: %w", err)
	}

	program := &TypedProgram{}

	for _, raw := range msg.GetFieldByName("functions").([]interface{}) {
		entry := raw.(*dynamic.Message)
		fn := FunctionSig{
			Name:       entry.GetFieldByName("name").(string),
			ReturnType: entry.GetFieldByName("return_type").(string),
		}
		for _, p := range entry.GetFieldByName("param_types").([]interface{}) {
			fn.ParamTypes = append(fn.ParamTypes, p.(string))
		}
		program.Functions = append(program.Functions, fn)
	}

	for _, raw := range msg.GetFieldByName("classes").([]interface{}) {
		entry := raw.(*dynamic.Message)
		class := ClassIvars{
			ClassName: entry.GetFieldByName("class_name").(string),
			Fields:    make(map[string]string),
		}
		for _, rawField := range entry.GetFieldByName("fields").([]interface{}) {
			f := rawField.(*dynamic.Message)
			class.Fields[f.GetFieldByName("name").(string)] = f.GetFieldByName("type").(string)
		}
		program.Classes = append(program.Classes, class)
	}

	return program, nil
}

func typeString(t types.Type) string {
	if t == nil {
		return types.Untyped.String()
	}
	return t.String()
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
