package gen

import (
	"go/token"
)

// Prim is a fixed-width scalar known to the runtime package.
type Prim uint8

const (
	PrimNone Prim = iota
	PrimBool
	PrimInt8
	PrimUint8
	PrimInt16
	PrimUint16
	PrimInt32
	PrimUint32
	PrimInt64
	PrimUint64
	PrimFloat32
	PrimFloat64
)

var primNames = [...]string{
	PrimNone:    "none",
	PrimBool:    "bool",
	PrimInt8:    "int8",
	PrimUint8:   "uint8",
	PrimInt16:   "int16",
	PrimUint16:  "uint16",
	PrimInt32:   "int32",
	PrimUint32:  "uint32",
	PrimInt64:   "int64",
	PrimUint64:  "uint64",
	PrimFloat32: "float32",
	PrimFloat64: "float64",
}

var primSizes = [...]int{
	PrimBool:    1,
	PrimInt8:    1,
	PrimUint8:   1,
	PrimInt16:   2,
	PrimUint16:  2,
	PrimInt32:   4,
	PrimUint32:  4,
	PrimInt64:   8,
	PrimUint64:  8,
	PrimFloat32: 4,
	PrimFloat64: 8,
}

// primAliases accepts Go aliases and the short u32/i16 spellings used in repr directives.
var primAliases = map[string]Prim{
	"bool":    PrimBool,
	"int8":    PrimInt8,
	"uint8":   PrimUint8,
	"byte":    PrimUint8,
	"int16":   PrimInt16,
	"uint16":  PrimUint16,
	"int32":   PrimInt32,
	"rune":    PrimInt32,
	"uint32":  PrimUint32,
	"int64":   PrimInt64,
	"uint64":  PrimUint64,
	"float32": PrimFloat32,
	"float64": PrimFloat64,
	"i8":      PrimInt8,
	"u8":      PrimUint8,
	"i16":     PrimInt16,
	"u16":     PrimUint16,
	"i32":     PrimInt32,
	"u32":     PrimUint32,
	"i64":     PrimInt64,
	"u64":     PrimUint64,
	"f32":     PrimFloat32,
	"f64":     PrimFloat64,
}

// ParsePrim returns the primitive named by s, or PrimNone.
func ParsePrim(s string) Prim {
	return primAliases[s]
}

func (p Prim) String() string {
	if int(p) < len(primNames) {
		return primNames[p]
	}
	return "unknown"
}

// Size returns the encoded width in bytes.
func (p Prim) Size() int {
	if int(p) < len(primSizes) {
		return primSizes[p]
	}
	return 0
}

// IsInteger reports whether p can serve as a union representation.
func (p Prim) IsInteger() bool {
	return p >= PrimInt8 && p <= PrimUint64
}

// IsSigned reports whether p is a signed integer.
func (p Prim) IsSigned() bool {
	switch p {
	case PrimInt8, PrimInt16, PrimInt32, PrimInt64:
		return true
	}
	return false
}

// RefKind classifies how a field type is encoded.
type RefKind uint8

const (
	// RefPrimitive goes through the byte-order proxy with the resolved order.
	RefPrimitive RefKind = iota
	// RefCodec recurses into the type's own WriteEndian and ReadEndian.
	RefCodec
	// RefUnion recurses into the generated WriteX and ReadX functions of a union in the same package.
	RefUnion
	// RefArray repeats its element Len times.
	RefArray
	// RefUnsupported has no fixed binary layout.
	RefUnsupported
)

var refKindNames = [...]string{
	RefPrimitive:   "primitive",
	RefCodec:       "codec",
	RefUnion:       "union",
	RefArray:       "array",
	RefUnsupported: "unsupported",
}

func (k RefKind) String() string {
	if int(k) < len(refKindNames) {
		return refKindNames[k]
	}
	return "unknown"
}

// TypeRef describes a field type as seen from the generated file.
type TypeRef struct {
	Elem *TypeRef
	// Expr is the Go type expression valid in the generated file, e.g. "uint32" or "wire.Header".
	Expr string
	// Name is the union type name for RefUnion.
	Name string
	Len  int
	Kind RefKind
	Prim Prim
}

// IsComposite reports whether the type carries its own internally resolved orders.
func (t TypeRef) IsComposite() bool {
	switch t.Kind {
	case RefCodec, RefUnion:
		return true
	case RefArray:
		return t.Elem != nil && t.Elem.IsComposite()
	}
	return false
}

// needsConv reports whether values must be converted to and from the primitive type.
func (t TypeRef) needsConv() bool {
	return t.Kind == RefPrimitive && t.Expr != "" && t.Expr != t.Prim.String()
}

// Field is a record or variant field in declaration order.
type Field struct {
	// Endian is the field-level override, nil when absent.
	Endian *Marker
	// Name is the Go field name; empty for positional fields.
	Name string
	Type TypeRef
	Pos  token.Position
}

// Variant is one case of a tagged union.
type Variant struct {
	// Discriminant is the literal text, nil when the variant declares none.
	Discriminant *Marker
	Name         string
	Fields       []Field
	Pos          token.Position
	// Pointer is set when only *Name implements the union interface.
	Pointer bool
}

// Const is one named value of an enum.
type Const struct {
	Name  string
	Value string
}

// DeclKind is the declared shape of a type.
type DeclKind uint8

const (
	DeclUnknown DeclKind = iota
	// DeclRecord is a struct with named fields, or a unit struct.
	DeclRecord
	// DeclTuple is a named array type with positional elements.
	DeclTuple
	// DeclUnion is a sealed interface with variant structs.
	DeclUnion
	// DeclEnum is a named integer type with typed constants.
	DeclEnum
	// DeclPayload is a field-less marker with a constant wire form.
	DeclPayload
)

var declKindNames = [...]string{
	DeclUnknown: "unknown",
	DeclRecord:  "record",
	DeclTuple:   "tuple",
	DeclUnion:   "union",
	DeclEnum:    "enum",
	DeclPayload: "payload",
}

func (k DeclKind) String() string {
	if int(k) < len(declKindNames) {
		return declKindNames[k]
	}
	return "unknown"
}

// Import is a package referenced by a field type of a declaration.
type Import struct {
	// Name is set when the file imports the package under a different name.
	Name string
	Path string
}

// Decl is the structured generation request for one annotated type.
type Decl struct {
	Endian   *Marker
	Repr     *Marker
	Name     string
	Detail   string
	Fields   []Field
	Variants []Variant
	Consts   []Const
	Payload  []byte
	Imports  []Import
	// Manual lists hand-written WriteEndian/ReadEndian methods found on the type.
	Manual []string
	Pos    token.Position
	Kind   DeclKind
}

// ShapeStyle is how a field list is accessed and reconstructed.
type ShapeStyle uint8

const (
	ShapeUnit ShapeStyle = iota
	ShapeNamed
	ShapePositional
)

var shapeStyleNames = [...]string{
	ShapeUnit:       "unit",
	ShapeNamed:      "named",
	ShapePositional: "positional",
}

func (s ShapeStyle) String() string {
	if int(s) < len(shapeStyleNames) {
		return shapeStyleNames[s]
	}
	return "unknown"
}

// Shape is an ordered field list with its access style.
type Shape struct {
	// Type is the Go type expression used for reconstruction.
	Type   string
	Fields []Field
	Style  ShapeStyle
}

// recordShape returns the shape of a record or tuple declaration.
func (d *Decl) recordShape() Shape {
	s := Shape{Type: d.Name, Fields: d.Fields}
	switch {
	case len(d.Fields) == 0:
		s.Style = ShapeUnit
	case d.Kind == DeclTuple:
		s.Style = ShapePositional
	default:
		s.Style = ShapeNamed
	}
	return s
}

// shape returns the field shape of a union variant.
func (v *Variant) shape() Shape {
	s := Shape{Type: v.Name, Fields: v.Fields, Style: ShapeNamed}
	if len(v.Fields) == 0 {
		s.Style = ShapeUnit
	}
	return s
}
