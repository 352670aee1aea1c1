package foreign

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/amber-lang/amber/internal/types"
)

func TestDecodeMethodDescriptor(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string
		wantParams []types.Type
		wantReturn types.Type
	}{
		{
			name:       "integral widths collapse",
			descriptor: "(BIJ)J",
			wantParams: []types.Type{types.Int, types.Int, types.Int},
			wantReturn: types.Int,
		},
		{
			name:       "float widths collapse",
			descriptor: "(FD)D",
			wantParams: []types.Type{types.Float, types.Float},
			wantReturn: types.Float,
		},
		{
			name:       "string reference",
			descriptor: "(Ljava/lang/String;)V",
			wantParams: []types.Type{types.String},
			wantReturn: types.Nil,
		},
		{
			name:       "boolean",
			descriptor: "(Z)Z",
			wantParams: []types.Type{types.Bool()},
			wantReturn: types.Bool(),
		},
		{
			name:       "object is dynamic",
			descriptor: "(Ljava/lang/Object;)V",
			wantParams: []types.Type{types.Untyped},
			wantReturn: types.Nil,
		},
		{
			name:       "class reference keeps simple name",
			descriptor: "(Lamber/canvas/Canvas;)V",
			wantParams: []types.Type{types.ClassInstance{Name: "Canvas"}},
			wantReturn: types.Nil,
		},
		{
			name:       "array of longs",
			descriptor: "([J)V",
			wantParams: []types.Type{types.ClassInstance{Name: "Array", Args: []types.Type{types.Int}}},
			wantReturn: types.Nil,
		},
		{
			name:       "no parameters",
			descriptor: "()D",
			wantParams: nil,
			wantReturn: types.Float,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, ret, err := DecodeMethodDescriptor(tt.descriptor)
			if err != nil {
				t.Fatalf("DecodeMethodDescriptor(%q) error: %v", tt.descriptor, err)
			}
			if diff := cmp.Diff(tt.wantParams, params); diff != "" {
				t.Errorf("params mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantReturn, ret); diff != "" {
				t.Errorf("return mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeMethodDescriptorErrors(t *testing.T) {
	inputs := []string{"", "J", "(J", "(J)", "(Lfoo)V", "(Q)V", "(J)JJ"}
	for _, input := range inputs {
		if _, _, err := DecodeMethodDescriptor(input); err == nil {
			t.Errorf("DecodeMethodDescriptor(%q) succeeded, want error", input)
		}
	}
}

func TestDecodeFieldDescriptor(t *testing.T) {
	typ, err := DecodeFieldDescriptor("Ljava/lang/String;")
	if err != nil {
		t.Fatalf("DecodeFieldDescriptor error: %v", err)
	}
	if typ != types.String {
		t.Errorf("field type = %s, want String", typ)
	}

	if _, err := DecodeFieldDescriptor("JJ"); err == nil {
		t.Errorf("DecodeFieldDescriptor accepted trailing input, want error")
	}
}

// Encoding then decoding must reproduce the type for everything the engine
// can hand to a backend stub.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []types.Type{
		types.Int,
		types.Float,
		types.String,
		types.Nil,
		types.Untyped,
		types.Bool(),
		types.ClassInstance{Name: "Canvas"},
		types.ClassInstance{Name: "Array", Args: []types.Type{types.Int}},
		types.ClassInstance{Name: "Array", Args: []types.Type{types.ClassInstance{Name: "Array", Args: []types.Type{types.Float}}}},
	}
	for _, typ := range cases {
		desc, err := EncodeType(typ)
		if err != nil {
			t.Fatalf("EncodeType(%s) error: %v", typ, err)
		}
		back, err := DecodeFieldDescriptor(desc)
		if err != nil {
			t.Fatalf("decoding %q (from %s): %v", desc, typ, err)
		}
		if diff := cmp.Diff(typ, back); diff != "" {
			t.Errorf("round trip of %s via %q (-want +got):\n%s", typ, desc, diff)
		}
	}
}

func TestEncodeMethodDescriptor(t *testing.T) {
	desc, err := EncodeMethodDescriptor([]types.Type{types.Int, types.String}, types.Float)
	if err != nil {
		t.Fatalf("EncodeMethodDescriptor error: %v", err)
	}
	if desc != "(JLjava/lang/String;)D" {
		t.Errorf("descriptor = %q, want (JLjava/lang/String;)D", desc)
	}

	if _, err := EncodeType(types.Function{Return: types.Nil}); err == nil {
		t.Errorf("EncodeType accepted a function type, want error")
	}
}

func TestSimpleName(t *testing.T) {
	tests := map[string]string{
		"Canvas":                    "Canvas",
		"amber/canvas/Canvas":    "Canvas",
		"amber/ui/KCanvas$Inner": "Inner",
	}
	for input, want := range tests {
		if got := SimpleName(input); got != want {
			t.Errorf("SimpleName(%q) = %q, want %q", input, got, want)
		}
	}
}
