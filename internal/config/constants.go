package config

// IsTestMode indicates if the engine is running under test. Set once at
// startup; used to normalize type-variable names in printed output.
var IsTestMode = false

// SignatureFileExt is the extension of supplementary interface-declaration
// documents consumed by the sigdecl loader.
const SignatureFileExt = ".sig.yaml"

// Built-in generic type names.
const (
	ArrayTypeName = "Array"
	HashTypeName  = "Hash"
)

// Built-in nominal type names as they appear in signature documents and in
// printed diagnostics.
const (
	IntegerTypeName = "Integer"
	FloatTypeName   = "Float"
	StringTypeName  = "String"
	SymbolTypeName  = "Symbol"
	RegexpTypeName  = "Regexp"
	RangeTypeName   = "Range"
	NilTypeName     = "Nil"
	BoolTypeName    = "Bool"
	UntypedTypeName = "Untyped"
)

// VectorTypePrefix names fixed-width float vector types: Vec2, Vec3, Vec4...
const VectorTypePrefix = "Vec"

// NilCheckMethodName is the predicate the narrowing pass recognizes as a
// nil test, alongside equality against a nil literal.
const NilCheckMethodName = "nil?"
