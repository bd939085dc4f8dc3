// Package scan turns annotated Go source into generation requests.
//
// A type opts in with a directive in its doc comment:
//
//	//endian:big
//	type Header struct {
//		Magic uint32
//		Flags uint16 `endian:"little"`
//	}
//
// Unions are sealed interfaces with a representation type. Their variants are
// struct types that name the union and their discriminant:
//
//	//endian:little repr=uint32
//	type Msg interface{ isMsg() }
//
//	//endian:variant Msg 0xc0ffee
//	type Bar struct{ X bool }
//
// Named integer types become enums over their typed constants, named array
// types are positional records, and field-less structs may declare a constant
// wire form with //endian:payload followed by hex bytes.
package scan
