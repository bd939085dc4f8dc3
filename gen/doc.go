// Package gen generates Encoder and Decoder implementations for annotated Go
// types.
//
// A Decl describes one type: its shape, its mandatory default byte order and
// the per-field overrides. Generation resolves every field to a concrete order,
// builds a Plan in declaration order and renders it twice, once as a write
// sequence and once as a read-and-reconstruct sequence. The two sides share the
// plan, so the wire layout of a type is the same in both directions.
//
// Byte orders are resolved here, at generation time. Generated code names them
// as type arguments of the runtime package:
//
//	if err := endian.Write[endian.Big](w, x.Magic); err != nil {
//		return err
//	}
//
// Generation errors carry the source position of the directive, tag or
// declaration at fault. GenerateAll reports each failing type independently.
package gen
