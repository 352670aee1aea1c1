// Package foreign holds metadata about classes outside the program: types
// decoded from JVM descriptors, the registry the method resolver consults
// as its last source, and a sqlite-backed store for large classpaths.
//
// Metadata originates from an external introspection tool that reads .class
// files and prints one JSON document describing every requested class. The
// registry consumes that document; it never touches class files itself.
package foreign

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/amber-lang/amber/internal/types"
)

// MethodInfo is one decoded foreign method.
type MethodInfo struct {
	Name       string
	Descriptor string
	Params     []types.Type
	Return     types.Type
}

// FieldInfo is one decoded foreign field.
type FieldInfo struct {
	Name       string
	Descriptor string
	Type       types.Type
}

// ClassInfo is the decoded metadata of one foreign class.
type ClassInfo struct {
	Name              string // simple name, as the language refers to it
	InternalName      string // slash-separated name on the foreign side
	IsInterface       bool
	Interfaces        []string
	Methods           map[string]MethodInfo
	StaticMethods     map[string]MethodInfo
	AbstractMethods   map[string]MethodInfo
	Fields            map[string]FieldInfo
	StaticFields      map[string]FieldInfo
	ConstructorParams []types.Type
	HasConstructor    bool
}

// IsSAMInterface reports whether the class is an interface with exactly one
// abstract method, which makes it eligible as a block target.
func (c *ClassInfo) IsSAMInterface() bool {
	return c.IsInterface && len(c.AbstractMethods) == 1
}

// SAMethod returns the single abstract method of a SAM interface.
func (c *ClassInfo) SAMethod() (MethodInfo, bool) {
	if !c.IsSAMInterface() {
		return MethodInfo{}, false
	}
	for _, m := range c.AbstractMethods {
		return m, true
	}
	return MethodInfo{}, false
}

// Registry is the lookup table of every introspected class, keyed by simple
// name. It is the fourth and last source the method resolver consults, and
// only for classes the program itself does not declare.
type Registry struct {
	classes map[string]*ClassInfo
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]*ClassInfo)}
}

// Class looks up a foreign class by its simple name.
func (r *Registry) Class(name string) (*ClassInfo, bool) {
	info, ok := r.classes[name]
	return info, ok
}

// InstanceMethod resolves an instance method on a foreign class.
func (r *Registry) InstanceMethod(className, methodName string) (MethodInfo, bool) {
	info, ok := r.classes[className]
	if !ok {
		return MethodInfo{}, false
	}
	m, ok := info.Methods[methodName]
	return m, ok
}

// StaticMethod resolves a static method on a foreign class.
func (r *Registry) StaticMethod(className, methodName string) (MethodInfo, bool) {
	info, ok := r.classes[className]
	if !ok {
		return MethodInfo{}, false
	}
	m, ok := info.StaticMethods[methodName]
	return m, ok
}

// ClassNames returns every registered simple name in sorted order.
func (r *Registry) ClassNames() []string {
	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) add(info *ClassInfo) {
	r.classes[info.Name] = info
}

// Wire layout of the introspection tool's JSON output.
type introspectionDoc struct {
	Classes map[string]classEntry `json:"classes"`
}

type classEntry struct {
	Methods         map[string]methodEntry `json:"methods"`
	StaticMethods   map[string]methodEntry `json:"static_methods"`
	Constructor     *methodEntry           `json:"constructor"`
	IsInterface     bool                   `json:"is_interface"`
	Interfaces      []string               `json:"interfaces"`
	AbstractMethods map[string]methodEntry `json:"abstract_methods"`
	Fields          map[string]methodEntry `json:"fields"`
	StaticFields    map[string]methodEntry `json:"static_fields"`
	InnerClasses    map[string]classEntry  `json:"inner_classes"`
}

type methodEntry struct {
	Descriptor string `json:"descriptor"`
}

// LoadJSON merges one introspection document into the registry. Inner
// classes register under their own simple names alongside their parent.
func (r *Registry) LoadJSON(reader io.Reader) error {
	var doc introspectionDoc
	dec := json.NewDecoder(reader)
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decoding introspection payload: %w", err)
	}
	for internal, entry := range doc.Classes {
		if err := r.mergeEntry(internal, entry); err != nil {
			return err
		}
	}
	return nil
}

// LoadJSONFile loads an introspection document from disk.
func (r *Registry) LoadJSONFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := r.LoadJSON(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func (r *Registry) mergeEntry(internal string, entry classEntry) error {
	info := &ClassInfo{
		Name:            SimpleName(internal),
		InternalName:    internal,
		IsInterface:     entry.IsInterface,
		Interfaces:      entry.Interfaces,
		Methods:         make(map[string]MethodInfo),
		StaticMethods:   make(map[string]MethodInfo),
		AbstractMethods: make(map[string]MethodInfo),
		Fields:          make(map[string]FieldInfo),
		StaticFields:    make(map[string]FieldInfo),
	}

	decodeMethods := func(raw map[string]methodEntry, dst map[string]MethodInfo) error {
		for name, m := range raw {
			params, ret, err := DecodeMethodDescriptor(m.Descriptor)
			if err != nil {
				return fmt.Errorf("class %s method %s: %w", internal, name, err)
			}
			dst[name] = MethodInfo{Name: name, Descriptor: m.Descriptor, Params: params, Return: ret}
		}
		return nil
	}
	decodeFields := func(raw map[string]methodEntry, dst map[string]FieldInfo) error {
		for name, f := range raw {
			typ, err := DecodeFieldDescriptor(f.Descriptor)
			if err != nil {
				return fmt.Errorf("class %s field %s: %w", internal, name, err)
			}
			dst[name] = FieldInfo{Name: name, Descriptor: f.Descriptor, Type: typ}
		}
		return nil
	}

	if err := decodeMethods(entry.Methods, info.Methods); err != nil {
		return err
	}
	if err := decodeMethods(entry.StaticMethods, info.StaticMethods); err != nil {
		return err
	}
	if err := decodeMethods(entry.AbstractMethods, info.AbstractMethods); err != nil {
		return err
	}
	if err := decodeFields(entry.Fields, info.Fields); err != nil {
		return err
	}
	if err := decodeFields(entry.StaticFields, info.StaticFields); err != nil {
		return err
	}

	if entry.Constructor != nil {
		params, ret, err := DecodeMethodDescriptor(entry.Constructor.Descriptor)
		if err != nil {
			return fmt.Errorf("class %s constructor: %w", internal, err)
		}
		if ret != types.Nil {
			return fmt.Errorf("class %s constructor: return descriptor must be void", internal)
		}
		info.ConstructorParams = params
		info.HasConstructor = true
	}

	r.add(info)

	for innerName, inner := range entry.InnerClasses {
		if err := r.mergeEntry(innerName, inner); err != nil {
			return err
		}
	}
	return nil
}
