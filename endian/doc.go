// Package endian is the runtime half of endiangen: fixed-width primitive
// codecs, byte-order proxies and the Encoder/Decoder contract implemented by
// generated code.
//
// # Byte Orders
//
// Byte order is selected by type argument, never stored in a value:
//
//	endian.Write[endian.Big](w, uint32(10))   // 00 00 00 0a
//	endian.Write[endian.Little](w, int16(20)) // 14 00
//	v, err := endian.Read[endian.Native, uint64](r)
//
// Native, Little and Big are the only types satisfying Order.
//
// # Primitives
//
//	Type                 Width
//	──────────────────────────
//	int8/uint8           1
//	int16/uint16         2
//	int32/uint32/float32 4
//	int64/uint64/float64 8
//	bool                 1 (0 or 1, byte order ignored)
//
// Encode and Decode work on caller-provided buffers and cannot fail.
// Write and Read move exactly Size bytes through an io.Writer or io.Reader;
// a short write is io.ErrShortWrite, a short read is io.ErrUnexpectedEOF
// (io.EOF when the source was already exhausted). Sink and source errors are
// returned unchanged and never retried.
//
// # Encodable Types
//
// Types participate in nested encoding by implementing Encoder and Decoder:
//
//	func (x Header) WriteEndian(w io.Writer) error
//	func (x *Header) ReadEndian(r io.Reader) error
//
// endiangen generates both methods from directives; hand-written
// implementations are used for custom framing such as length prefixes.
// ReadEndian never leaves a partially decoded value behind: generated code
// decodes into locals and assigns the receiver only on success.
//
// # Invalid Data
//
// Bytes that decode to no valid value (unknown discriminant, boolean byte
// other than 0/1, marker payload mismatch) produce a structured error that
// matches ErrInvalidData:
//
//	if errors.Is(err, endian.ErrInvalidData) { ... }
//
// # Thread Safety
//
// Every function is stateless. Concurrent calls on distinct readers and
// writers need no coordination.
package endian
