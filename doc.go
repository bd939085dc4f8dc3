// Package endiangen generates fixed-layout binary codecs for Go types.
//
// Types are annotated with //endian: directives and the generator writes
// WriteEndian and ReadEndian methods that encode every field in declaration
// order, with no padding, tags or length prefixes. Each type names a default
// byte order and individual fields may override it with a struct tag.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct responsibilities:
//
//	endiangen/           Module documentation
//	├── endian/          Runtime: byte orders, primitives, bool, payload markers
//	├── gen/             Field plans, code rendering, layouts and file emission
//	├── scan/            Package loading and directive parsing into declarations
//	├── config/          .endiangen.yaml generator configuration
//	├── errors/          Structured error types for generation and decoding
//	├── internal/cli/    The endiangen command: generate, check, layout, explore
//	└── cmd/endiangen/   Command entry point
//
// # Quick Start
//
// Annotate the types of a package:
//
//	//endian:big
//	type Header struct {
//	    Version uint16
//	    Length  uint32 `endian:"little"`
//	    Flags   [4]bool
//	}
//
//	//endian:little repr=uint32
//	type Body interface{ isBody() }
//
//	//endian:variant Body 0xc0ffee
//	type Ping struct{ Seq uint64 }
//
// Then run the generator from the package directory:
//
//	//go:generate endiangen generate
//
// The output provides methods for records, arrays, enums and markers, and a
// WriteBody/ReadBody function pair for each union:
//
//	data, err := endian.Marshal(hdr)
//	err = endian.Unmarshal(data, &hdr)
//	err = WriteBody(w, Ping{Seq: 1})
//	body, err := ReadBody(r)
//
// # Directives
//
// A type directive names the default order: native (ne, _), little (le) or
// big (be). Unions and enums may add repr=<integer type> for the width of
// the discriminant. Variants attach to a union with
// //endian:variant <Union> <discriminant>, and marker structs carry a
// constant byte sequence with //endian:payload <hex>.
//
// # Errors
//
// Generation errors carry the source position of the offending directive or
// field, one per failed type. Decoding errors from unknown discriminants,
// boolean bytes other than 0 or 1 and mismatched payloads all match
//
//	errors.Is(err, endian.ErrInvalidData)
//
// while I/O errors from the reader are returned unchanged. A failed read
// never modifies its receiver.
package endiangen
