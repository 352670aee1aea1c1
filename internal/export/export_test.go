package export

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/amber-lang/amber/internal/types"
)

func sampleInputs() (map[string]types.Function, map[string]map[string]types.Type) {
	functions := map[string]types.Function{
		"add": {
			Params: []types.Type{types.Int, types.Int},
			Return: types.Int,
		},
		"Greeter#greet": {
			Params: []types.Type{types.String},
			Return: types.Nil,
		},
	}
	ivars := map[string]map[string]types.Type{
		"Greeter": {
			"@name":  types.String,
			"@count": types.Int,
		},
	}
	return functions, ivars
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	enc, err := NewEncoder()
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	functions, ivars := sampleInputs()
	payload, err := enc.Encode(functions, ivars)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(payload) == 0 {
		t.Fatal("expected non-empty payload")
	}

	got, err := enc.Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := &TypedProgram{
		Functions: []FunctionSig{
			{Name: "Greeter#greet", ParamTypes: []string{"String"}, ReturnType: "Nil"},
			{Name: "add", ParamTypes: []string{"Integer", "Integer"}, ReturnType: "Integer"},
		},
		Classes: []ClassIvars{
			{ClassName: "Greeter", Fields: map[string]string{"@name": "String", "@count": "Integer"}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	enc, err := NewEncoder()
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	functions, ivars := sampleInputs()
	first, err := enc.Encode(functions, ivars)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	second, err := enc.Encode(functions, ivars)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("equal inputs produced different payloads")
	}
}

func TestEncodeEmpty(t *testing.T) {
	enc, err := NewEncoder()
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	payload, err := enc.Encode(nil, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := enc.Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Functions) != 0 || len(got.Classes) != 0 {
		t.Errorf("expected empty program, got %+v", got)
	}
}
