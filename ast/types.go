package ast

// Type is one of BPL's closed set of static types. Unlike Go, BPL has no
// user-defined types: every value in a well-typed program is one of the
// seven members below.
type Type int

const (
	UNTYPED Type = iota
	INT
	STRING
	VOID
	INT_PTR
	STR_PTR
	INT_ARR
	STR_ARR
)

func (t Type) String() string {
	switch t {
	case INT:
		return "int"
	case STRING:
		return "string"
	case VOID:
		return "void"
	case INT_PTR:
		return "int*"
	case STR_PTR:
		return "string*"
	case INT_ARR:
		return "int[]"
	case STR_ARR:
		return "string[]"
	default:
		return "<untyped>"
	}
}

// AddressOf returns the pointer type produced by taking the address of
// a value of type t, and false if t cannot be addressed (only plain
// scalar INT/STRING declarations can).
func AddressOf(t Type) (Type, bool) {
	switch t {
	case INT:
		return INT_PTR, true
	case STRING:
		return STR_PTR, true
	default:
		return UNTYPED, false
	}
}

// Deref returns the type produced by dereferencing a pointer type.
func Deref(t Type) (Type, bool) {
	switch t {
	case INT_PTR:
		return INT, true
	case STR_PTR:
		return STRING, true
	default:
		return UNTYPED, false
	}
}

// IsArray reports whether t is one of BPL's two array types.
func IsArray(t Type) bool {
	return t == INT_ARR || t == STR_ARR
}

// IsPointer reports whether t is one of BPL's two pointer types.
func IsPointer(t Type) bool {
	return t == INT_PTR || t == STR_PTR
}

// ElemType returns the scalar type that indexing an array type
// produces.
func ElemType(t Type) (Type, bool) {
	switch t {
	case INT_ARR:
		return INT, true
	case STR_ARR:
		return STRING, true
	default:
		return UNTYPED, false
	}
}
