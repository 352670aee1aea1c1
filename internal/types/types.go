package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/amber-lang/amber/internal/config"
)

// Type is the closed tagged union of every type the engine can assign.
// Variants are fixed; dispatch is always an exhaustive type switch.
type Type interface {
	String() string
	isType()
}

// Var is an arena-indexed type variable. The Arena owns its binding state;
// a Var value itself is just the index.
type Var struct {
	ID int
}

func (v Var) isType() {}

func (v Var) String() string {
	if config.IsTestMode {
		return "t?"
	}
	return fmt.Sprintf("t%d", v.ID)
}

// Primitive is a built-in nominal type with no arguments.
type Primitive int

const (
	Int Primitive = iota
	Float
	String
	Symbol
	Regexp
	Range
	True
	False
	Nil
	// Untyped is the dynamic escape hatch: compatible with every type in
	// both directions, and what any still-free variable finalizes to.
	Untyped
)

func (p Primitive) isType() {}

func (p Primitive) String() string {
	switch p {
	case Int:
		return config.IntegerTypeName
	case Float:
		return config.FloatTypeName
	case String:
		return config.StringTypeName
	case Symbol:
		return config.SymbolTypeName
	case Regexp:
		return config.RegexpTypeName
	case Range:
		return config.RangeTypeName
	case True:
		return "TrueClass"
	case False:
		return "FalseClass"
	case Nil:
		return config.NilTypeName
	case Untyped:
		return config.UntypedTypeName
	}
	return fmt.Sprintf("Primitive(%d)", int(p))
}

// ClassInstance is a nominal, possibly generic type: user classes, and the
// built-in generics (Array carries its element type, Hash key and value).
type ClassInstance struct {
	Name string
	Args []Type
}

func (c ClassInstance) isType() {}

func (c ClassInstance) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", c.Name, strings.Join(args, ", "))
}

// Function is a callable signature: named functions, methods and blocks.
type Function struct {
	Params []Type
	Return Type
}

func (f Function) isType() {}

func (f Function) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	ret := "?"
	if f.Return != nil {
		ret = f.Return.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), ret)
}

// Union is a deduplicated, flattened, sorted merge of heterogeneous branch
// results. Always built through NormalizeUnion; a Union has at least two
// members.
type Union struct {
	Members []Type
}

func (u Union) isType() {}

func (u Union) String() string {
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

// NativeCall is a foreign function signature from a native extension:
// argument/return tags plus the symbol it links against.
type NativeCall struct {
	Name     string
	LinkName string
	Params   []Type
	Return   Type
}

func (n NativeCall) isType() {}

func (n NativeCall) String() string {
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("native %s(%s) -> %s [%s]", n.Name, strings.Join(params, ", "), n.Return, n.LinkName)
}

// OpaqueMethod is an instance method on a foreign opaque handle. The first
// parameter is implicitly the handle itself and is not listed in Params.
type OpaqueMethod struct {
	Handle string
	Name   string
	Params []Type
	Return Type
}

func (o OpaqueMethod) isType() {}

func (o OpaqueMethod) String() string {
	params := make([]string, len(o.Params))
	for i, p := range o.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("%s#%s(%s) -> %s", o.Handle, o.Name, strings.Join(params, ", "), o.Return)
}

// Vector is a value type with homogeneous floating lanes packed into a
// hardware vector register.
type Vector struct {
	Lanes int
}

func (v Vector) isType() {}

func (v Vector) String() string {
	return fmt.Sprintf("%s%d", config.VectorTypePrefix, v.Lanes)
}

// allowedVectorLanes is the fixed set of lane counts the backends can lower
// to a register.
var allowedVectorLanes = map[int]bool{2: true, 3: true, 4: true, 8: true, 16: true}

// NewVector creates a vector type, rejecting lane counts outside the
// allowed set.
func NewVector(lanes int) (Vector, error) {
	if !allowedVectorLanes[lanes] {
		return Vector{}, fmt.Errorf("invalid vector lane count %d (allowed: 2, 3, 4, 8, 16)", lanes)
	}
	return Vector{Lanes: lanes}, nil
}

// Bool is the normalized union of the two boolean singletons (members kept
// in sorted order, matching NormalizeUnion output).
func Bool() Type {
	return Union{Members: []Type{False, True}}
}

// IsBool reports whether t is the boolean union or one of its singletons.
func IsBool(t Type) bool {
	switch t := t.(type) {
	case Primitive:
		return t == True || t == False
	case Union:
		if len(t.Members) != 2 {
			return false
		}
		return IsBool(t.Members[0]) && IsBool(t.Members[1])
	}
	return false
}

// sortMembers orders union members for deterministic comparison and output.
func sortMembers(members []Type) {
	sort.Slice(members, func(i, j int) bool {
		return members[i].String() < members[j].String()
	})
}
