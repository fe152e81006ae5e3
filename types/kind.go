// Package types defines the value kinds an option can hold and the shapes those
// values take on the command line. Every (kind, shape) pair is a Type backed by a
// stateless converter from raw tokens to a typed Go value.
package types

import (
	"fmt"
	"os"
	"slices"
)

// Kind is the base value kind of an option.
type Kind int

const (
	Boolean Kind = iota + 1
	Byte
	Short
	Integer
	Long
	Float
	Double
	String
	File
)

var kindNames = [...]string{
	Boolean: "BOOLEAN",
	Byte:    "BYTE",
	Short:   "SHORT",
	Integer: "INTEGER",
	Long:    "LONG",
	Float:   "FLOAT",
	Double:  "DOUBLE",
	String:  "STRING",
	File:    "FILE",
}

// String returns the upper-case name of the kind
func (k Kind) String() string {
	if k < Boolean || k > File {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// IsNumeric reports whether the kind supports range shapes
func (k Kind) IsNumeric() bool {
	return k >= Byte && k <= Double
}

// Shape is the layout a value of some kind takes on the command line.
type Shape int

const (
	ShapeValue Shape = iota + 1
	ShapeArray
	ShapeArrayComma
	ShapeArraySemicolon
	ShapeSet
	ShapeSetComma
	ShapeSetSemicolon
	ShapeMap
	ShapeMapComma
	ShapeMapSemicolon
	ShapeRange
	ShapeLabelArray
	ShapeLabelRange
)

var shapeNames = [...]string{
	ShapeValue:          "VALUE",
	ShapeArray:          "ARRAY",
	ShapeArrayComma:     "ARRAY_COMMA",
	ShapeArraySemicolon: "ARRAY_SEMICOLON",
	ShapeSet:            "SET",
	ShapeSetComma:       "SET_COMMA",
	ShapeSetSemicolon:   "SET_SEMICOLON",
	ShapeMap:            "MAP",
	ShapeMapComma:       "MAP_COMMA",
	ShapeMapSemicolon:   "MAP_SEMICOLON",
	ShapeRange:          "RANGE",
	ShapeLabelArray:     "LABEL_ARRAY",
	ShapeLabelRange:     "LABEL_RANGE",
}

func (s Shape) String() string {
	if s < ShapeValue || s > ShapeLabelRange {
		return "UNKNOWN"
	}
	return shapeNames[s]
}

// Type identifies one (kind, shape) converter. The zero Type is invalid.
// Types are comparable and safe to use as map keys.
type Type struct {
	kind  Kind
	shape Shape
}

// Of returns the Type for the given kind and shape. Use Valid to check that the
// pair is supported (range shapes exist only for numeric kinds).
func Of(kind Kind, shape Shape) Type {
	return Type{kind: kind, shape: shape}
}

// Shape constructors - Kind.Value(), Kind.Array(), ...

// Value returns the single-token scalar type of the kind (a zero-token flag for Boolean)
func (k Kind) Value() Type { return Type{k, ShapeValue} }

// Array returns the multi-token array type of the kind
func (k Kind) Array() Type { return Type{k, ShapeArray} }

// ArrayComma returns the array type read from one comma-joined token
func (k Kind) ArrayComma() Type { return Type{k, ShapeArrayComma} }

// ArraySemicolon returns the array type read from one semicolon-joined token
func (k Kind) ArraySemicolon() Type { return Type{k, ShapeArraySemicolon} }

// Set returns the multi-token set type of the kind
func (k Kind) Set() Type { return Type{k, ShapeSet} }

// SetComma returns the set type read from one comma-joined token
func (k Kind) SetComma() Type { return Type{k, ShapeSetComma} }

// SetSemicolon returns the set type read from one semicolon-joined token
func (k Kind) SetSemicolon() Type { return Type{k, ShapeSetSemicolon} }

// Map returns the multi-token key=value map type of the kind
func (k Kind) Map() Type { return Type{k, ShapeMap} }

// MapComma returns the map type read from one comma-joined token
func (k Kind) MapComma() Type { return Type{k, ShapeMapComma} }

// MapSemicolon returns the map type read from one semicolon-joined token
func (k Kind) MapSemicolon() Type { return Type{k, ShapeMapSemicolon} }

// Range returns the lo-hi range type of the kind (numeric kinds only)
func (k Kind) Range() Type { return Type{k, ShapeRange} }

// LabelArray returns the label:v1,v2 type of the kind
func (k Kind) LabelArray() Type { return Type{k, ShapeLabelArray} }

// LabelRange returns the label:lo-hi type of the kind (numeric kinds only)
func (k Kind) LabelRange() Type { return Type{k, ShapeLabelRange} }

// Kind returns the base kind of the type
func (t Type) Kind() Kind { return t.kind }

// Shape returns the shape of the type
func (t Type) Shape() Shape { return t.shape }

// String returns names like INTEGER, INTEGER_ARRAY_COMMA or DOUBLE_RANGE
func (t Type) String() string {
	if t.shape == ShapeValue {
		return t.kind.String()
	}
	return t.kind.String() + "_" + t.shape.String()
}

// Valid reports whether a converter exists for the (kind, shape) pair
func (t Type) Valid() bool {
	_, ok := registry[t]
	return ok
}

// Convert turns raw tokens into the typed value of this Type.
// Malformed input always yields a *ConversionError, never a silent default.
func (t Type) Convert(tokens ...string) (any, error) {
	c, ok := registry[t]
	if !ok {
		return nil, &ConversionError{Type: t, Err: ErrUnsupportedType}
	}
	return c.convert(tokens)
}

// DefaultArity returns the built-in arity: -1 variable, 0 flag, n fixed.
func (t Type) DefaultArity() int {
	return registry[t].arity
}

// DefaultValue returns the built-in default value (nil for most types, false for
// Boolean flags).
func (t Type) DefaultValue() any {
	return registry[t].value
}

// Format returns a human-readable hint of the expected token layout.
func (t Type) Format() string {
	return registry[t].format
}

// Accepts reports whether v has the Go type this Type converts to.
func (t Type) Accepts(v any) bool {
	c, ok := registry[t]
	return ok && c.accepts(v)
}

// FilePath is the value of a File kind option.
type FilePath string

func (f FilePath) String() string { return string(f) }

// Exists reports whether the path exists on the local file system
func (f FilePath) Exists() bool {
	_, err := os.Stat(string(f))
	return err == nil
}

// IsDir reports whether the path exists and is a directory
func (f FilePath) IsDir() bool {
	info, err := os.Stat(string(f))
	return err == nil && info.IsDir()
}

// Set is an insertion-ordered collection of unique values.
type Set[T comparable] []T

// NewSet builds a Set from values, keeping the first occurrence of duplicates.
func NewSet[T comparable](values ...T) Set[T] {
	s := make(Set[T], 0, len(values))
	for _, v := range values {
		if !slices.Contains(s, v) {
			s = append(s, v)
		}
	}
	return s
}

// Contains reports whether v is a member of the set
func (s Set[T]) Contains(v T) bool {
	return slices.Contains(s, v)
}

// Len returns the number of members
func (s Set[T]) Len() int { return len(s) }

// Number is the set of element types that support range shapes.
type Number interface {
	int8 | int16 | int32 | int64 | float32 | float64
}

// Range is an inclusive [Min, Max] interval. An open side on the command line
// takes the minimum or maximum of the kind.
type Range[T Number] struct {
	Min T
	Max T
}

// Contains reports whether Min <= v <= Max
func (r Range[T]) Contains(v T) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range[T]) String() string {
	return fmt.Sprintf("%v-%v", r.Min, r.Max)
}
