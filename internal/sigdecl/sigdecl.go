// Package sigdecl loads supplementary interface-declaration documents and
// exposes them as lookup tables for the method resolver.
//
// Documents are YAML. They declare method signatures for classes, toplevel
// function signatures, native extension functions with their linkage names,
// and instance methods on foreign opaque handles. Declarations are
// authoritative: when a document carries an entry for a method, it overrides
// whatever the built-in table or inference found for that method.
package sigdecl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/amber-lang/amber/internal/config"
	"github.com/amber-lang/amber/internal/types"
)

// document is the top-level YAML layout of one declaration file.
type document struct {
	// Classes maps class name -> method name -> signature expressions.
	// A method may declare several candidate signatures (overloads).
	Classes map[string]classDecl `yaml:"classes,omitempty"`

	// Functions maps toplevel function name -> signature expression.
	Functions map[string]string `yaml:"functions,omitempty"`

	// NativeFunctions declares foreign functions from native extensions.
	NativeFunctions map[string]nativeDecl `yaml:"native_functions,omitempty"`

	// OpaqueHandles declares instance methods on foreign opaque handles.
	// The handle itself is the implicit first parameter of every method.
	OpaqueHandles map[string]classDecl `yaml:"opaque_handles,omitempty"`
}

type classDecl struct {
	Methods map[string][]string `yaml:"methods,omitempty"`
}

type nativeDecl struct {
	Link   string   `yaml:"link"`
	Params []string `yaml:"params,omitempty"`
	Return string   `yaml:"return"`
}

// Table is the merged lookup view over every loaded document.
type Table struct {
	methods   map[string]map[string][]types.Function // class -> method -> candidates
	functions map[string]types.Function
	natives   map[string]types.NativeCall
	opaque    map[string]map[string]types.OpaqueMethod
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		methods:   make(map[string]map[string][]types.Function),
		functions: make(map[string]types.Function),
		natives:   make(map[string]types.NativeCall),
		opaque:    make(map[string]map[string]types.OpaqueMethod),
	}
}

// Load parses one YAML document and merges it into the table.
func (t *Table) Load(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid signature document: %w", err)
	}
	return t.merge(&doc)
}

// LoadFile loads a single declaration file.
func (t *Table) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := t.Load(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// LoadDir loads every signature document in dir, in name order so later
// files override earlier ones deterministically.
func (t *Table) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), config.SignatureFileExt) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		if err := t.LoadFile(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) merge(doc *document) error {
	for class, decl := range doc.Classes {
		for method, sigs := range decl.Methods {
			var candidates []types.Function
			for _, sig := range sigs {
				fn, err := ParseSignature(sig)
				if err != nil {
					return fmt.Errorf("class %s method %s: %w", class, method, err)
				}
				candidates = append(candidates, fn)
			}
			if t.methods[class] == nil {
				t.methods[class] = make(map[string][]types.Function)
			}
			t.methods[class][method] = candidates
		}
	}

	for name, sig := range doc.Functions {
		fn, err := ParseSignature(sig)
		if err != nil {
			return fmt.Errorf("function %s: %w", name, err)
		}
		t.functions[name] = fn
	}

	for name, decl := range doc.NativeFunctions {
		if decl.Link == "" {
			return fmt.Errorf("native function %s: missing link name", name)
		}
		params := make([]types.Type, len(decl.Params))
		for i, p := range decl.Params {
			typ, err := ParseType(p)
			if err != nil {
				return fmt.Errorf("native function %s: %w", name, err)
			}
			params[i] = typ
		}
		ret, err := ParseType(decl.Return)
		if err != nil {
			return fmt.Errorf("native function %s: %w", name, err)
		}
		t.natives[name] = types.NativeCall{Name: name, LinkName: decl.Link, Params: params, Return: ret}
	}

	for handle, decl := range doc.OpaqueHandles {
		for method, sigs := range decl.Methods {
			if len(sigs) != 1 {
				return fmt.Errorf("opaque handle %s method %s: exactly one signature required", handle, method)
			}
			fn, err := ParseSignature(sigs[0])
			if err != nil {
				return fmt.Errorf("opaque handle %s method %s: %w", handle, method, err)
			}
			if t.opaque[handle] == nil {
				t.opaque[handle] = make(map[string]types.OpaqueMethod)
			}
			t.opaque[handle][method] = types.OpaqueMethod{
				Handle: handle,
				Name:   method,
				Params: fn.Params,
				Return: fn.Return,
			}
		}
	}

	return nil
}

// TypeExists reports whether any declaration mentions the class or handle.
func (t *Table) TypeExists(name string) bool {
	if _, ok := t.methods[name]; ok {
		return true
	}
	_, ok := t.opaque[name]
	return ok
}

// MethodType returns the declared candidate signatures for a class method,
// or nil when the document set carries no entry for it.
func (t *Table) MethodType(className, methodName string) []types.Function {
	if byMethod, ok := t.methods[className]; ok {
		return byMethod[methodName]
	}
	return nil
}

// InstanceMethods lists the declared method names of a class, sorted.
func (t *Table) InstanceMethods(className string) []string {
	byMethod, ok := t.methods[className]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byMethod))
	for name := range byMethod {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FunctionType returns the declared signature for a toplevel function.
func (t *Table) FunctionType(name string) (types.Function, bool) {
	fn, ok := t.functions[name]
	return fn, ok
}

// NativeFunction returns the declared native signature for name.
func (t *Table) NativeFunction(name string) (types.NativeCall, bool) {
	nc, ok := t.natives[name]
	return nc, ok
}

// OpaqueMethodType returns the declared method on a foreign opaque handle.
func (t *Table) OpaqueMethodType(handle, method string) (types.OpaqueMethod, bool) {
	if byMethod, ok := t.opaque[handle]; ok {
		om, ok := byMethod[method]
		return om, ok
	}
	return types.OpaqueMethod{}, false
}

// IsOpaqueHandle reports whether name is a declared foreign opaque handle.
func (t *Table) IsOpaqueHandle(name string) bool {
	_, ok := t.opaque[name]
	return ok
}
