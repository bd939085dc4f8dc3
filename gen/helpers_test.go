package gen

import (
	"go/token"
	"strconv"
	"strings"
)

func prim(p Prim) TypeRef {
	return TypeRef{Kind: RefPrimitive, Prim: p, Expr: p.String()}
}

func named(expr string, p Prim) TypeRef {
	return TypeRef{Kind: RefPrimitive, Prim: p, Expr: expr}
}

func codec(expr string) TypeRef {
	return TypeRef{Kind: RefCodec, Expr: expr}
}

func union(name string) TypeRef {
	return TypeRef{Kind: RefUnion, Name: name, Expr: name}
}

func array(n int, elem TypeRef) TypeRef {
	return TypeRef{Kind: RefArray, Len: n, Elem: &elem, Expr: "[" + strconv.Itoa(n) + "]" + elem.Expr}
}

func marker(text string) *Marker {
	return &Marker{Text: text, Pos: token.Position{Filename: "types.go", Line: 7, Column: 2}}
}

func field(name string, t TypeRef) Field {
	return Field{Name: name, Type: t}
}

func override(f Field, text string) Field {
	f.Endian = marker(text)
	return f
}

// statusDecl is a big-endian record with a bool, a uint32 and a little-endian int16.
func statusDecl() *Decl {
	return &Decl{
		Name:   "Status",
		Kind:   DeclRecord,
		Endian: marker("big"),
		Fields: []Field{
			field("Works", prim(PrimBool)),
			field("Data", prim(PrimUint32)),
			override(field("Extra", prim(PrimInt16)), "little"),
		},
	}
}

// msgDecl is a little-endian uint32 union with one variant holding a bool.
func msgDecl() *Decl {
	return &Decl{
		Name:   "Msg",
		Kind:   DeclUnion,
		Endian: marker("little"),
		Repr:   marker("uint32"),
		Variants: []Variant{
			{
				Name:         "Bar",
				Discriminant: marker("0xc0ffee"),
				Fields:       []Field{field("X", prim(PrimBool))},
			},
		},
	}
}

// squash collapses whitespace runs so assertions do not depend on gofmt alignment.
func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
