package foreign

import (
	"fmt"
	"strings"

	"github.com/amber-lang/amber/internal/config"
	"github.com/amber-lang/amber/internal/types"
)

// JVM descriptor decoding. The introspection tool reports every method and
// field as a raw descriptor string; the engine maps those onto its own type
// vocabulary. Both 32- and 64-bit integral descriptors collapse onto Integer,
// and both float widths onto Float, because the language has a single integer
// and a single float type.

const (
	stringInternalName = "java/lang/String"
	objectInternalName = "java/lang/Object"
)

// DecodeMethodDescriptor decodes a JVM method descriptor such as
// "(JLjava/lang/String;)D" into parameter and return types.
func DecodeMethodDescriptor(desc string) ([]types.Type, types.Type, error) {
	if len(desc) == 0 || desc[0] != '(' {
		return nil, nil, fmt.Errorf("malformed method descriptor %q: missing parameter list", desc)
	}
	rest := desc[1:]
	var params []types.Type
	for len(rest) > 0 && rest[0] != ')' {
		typ, remaining, err := decodeOne(rest)
		if err != nil {
			return nil, nil, fmt.Errorf("malformed method descriptor %q: %w", desc, err)
		}
		params = append(params, typ)
		rest = remaining
	}
	if len(rest) == 0 {
		return nil, nil, fmt.Errorf("malformed method descriptor %q: unterminated parameter list", desc)
	}
	rest = rest[1:] // consume ')'
	ret, remaining, err := decodeOne(rest)
	if err != nil {
		return nil, nil, fmt.Errorf("malformed method descriptor %q: %w", desc, err)
	}
	if remaining != "" {
		return nil, nil, fmt.Errorf("malformed method descriptor %q: trailing %q", desc, remaining)
	}
	return params, ret, nil
}

// DecodeFieldDescriptor decodes a single field descriptor such as "J" or
// "Ljava/lang/String;".
func DecodeFieldDescriptor(desc string) (types.Type, error) {
	typ, rest, err := decodeOne(desc)
	if err != nil {
		return nil, fmt.Errorf("malformed field descriptor %q: %w", desc, err)
	}
	if rest != "" {
		return nil, fmt.Errorf("malformed field descriptor %q: trailing %q", desc, rest)
	}
	return typ, nil
}

// decodeOne consumes exactly one type from the front of desc and returns the
// unconsumed remainder.
func decodeOne(desc string) (types.Type, string, error) {
	if len(desc) == 0 {
		return nil, "", fmt.Errorf("empty descriptor")
	}
	switch desc[0] {
	case 'B', 'S', 'I', 'J':
		return types.Int, desc[1:], nil
	case 'F', 'D':
		return types.Float, desc[1:], nil
	case 'Z':
		return types.Bool(), desc[1:], nil
	case 'C':
		// A lone character surfaces as a one-character string.
		return types.String, desc[1:], nil
	case 'V':
		return types.Nil, desc[1:], nil
	case 'L':
		end := strings.IndexByte(desc, ';')
		if end < 0 {
			return nil, "", fmt.Errorf("unterminated class reference in %q", desc)
		}
		internal := desc[1:end]
		rest := desc[end+1:]
		switch internal {
		case stringInternalName:
			return types.String, rest, nil
		case objectInternalName:
			// Object is the dynamic top type on the foreign side.
			return types.Untyped, rest, nil
		}
		return types.ClassInstance{Name: SimpleName(internal)}, rest, nil
	case '[':
		elem, rest, err := decodeOne(desc[1:])
		if err != nil {
			return nil, "", err
		}
		return types.ClassInstance{Name: config.ArrayTypeName, Args: []types.Type{elem}}, rest, nil
	}
	return nil, "", fmt.Errorf("unknown descriptor tag %q", string(desc[0]))
}

// EncodeType is the inverse mapping, used when emitting call stubs for the
// backends. Integer encodes as the 64-bit integral and Float as the 64-bit
// float, matching the widths the runtime uses.
func EncodeType(t types.Type) (string, error) {
	switch t := t.(type) {
	case types.Primitive:
		switch t {
		case types.Int:
			return "J", nil
		case types.Float:
			return "D", nil
		case types.String:
			return "L" + stringInternalName + ";", nil
		case types.Nil:
			return "V", nil
		case types.True, types.False:
			return "Z", nil
		case types.Untyped:
			return "L" + objectInternalName + ";", nil
		}
	case types.Union:
		if types.IsBool(t) {
			return "Z", nil
		}
	case types.ClassInstance:
		if t.Name == config.ArrayTypeName && len(t.Args) == 1 {
			elem, err := EncodeType(t.Args[0])
			if err != nil {
				return "", err
			}
			return "[" + elem, nil
		}
		if len(t.Args) == 0 {
			return "L" + t.Name + ";", nil
		}
	}
	return "", fmt.Errorf("type %s has no foreign encoding", t)
}

// EncodeMethodDescriptor builds a JVM method descriptor from decoded types.
func EncodeMethodDescriptor(params []types.Type, ret types.Type) (string, error) {
	var sb strings.Builder
	sb.WriteByte('(')
	for _, p := range params {
		enc, err := EncodeType(p)
		if err != nil {
			return "", err
		}
		sb.WriteString(enc)
	}
	sb.WriteByte(')')
	enc, err := EncodeType(ret)
	if err != nil {
		return "", err
	}
	sb.WriteString(enc)
	return sb.String(), nil
}

// SimpleName strips the package path from an internal class name:
// "amber/canvas/Canvas" becomes "Canvas". Inner-class markers keep only
// the innermost segment.
func SimpleName(internal string) string {
	if i := strings.LastIndexByte(internal, '/'); i >= 0 {
		internal = internal[i+1:]
	}
	if i := strings.LastIndexByte(internal, '$'); i >= 0 {
		internal = internal[i+1:]
	}
	return internal
}
