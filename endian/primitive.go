package endian

import "math"

// Primitive is the set of fixed-width scalars with a byte-order dependent layout.
// Named types must be converted to their underlying type first; bool is handled
// by WriteBool and ReadBool because its single byte has no order.
type Primitive interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// MaxSize is the widest primitive encoding in bytes.
const MaxSize = 8

// Size returns the encoded width of T in bytes.
func Size[T Primitive]() int {
	var v T
	switch any(v).(type) {
	case int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	default:
		return 8
	}
}

// Encode stores v into dst using byte order O. dst must hold at least Size[T]() bytes.
func Encode[O Order, T Primitive](dst []byte, v T) {
	bo := ByteOrder[O]()
	switch x := any(v).(type) {
	case int8:
		dst[0] = byte(x)
	case uint8:
		dst[0] = x
	case int16:
		bo.PutUint16(dst, uint16(x))
	case uint16:
		bo.PutUint16(dst, x)
	case int32:
		bo.PutUint32(dst, uint32(x))
	case uint32:
		bo.PutUint32(dst, x)
	case int64:
		bo.PutUint64(dst, uint64(x))
	case uint64:
		bo.PutUint64(dst, x)
	case float32:
		bo.PutUint32(dst, math.Float32bits(x))
	case float64:
		bo.PutUint64(dst, math.Float64bits(x))
	}
}

// Decode loads a T from src using byte order O. src must hold at least Size[T]() bytes.
func Decode[O Order, T Primitive](src []byte) T {
	bo := ByteOrder[O]()
	var v T
	switch p := any(&v).(type) {
	case *int8:
		*p = int8(src[0])
	case *uint8:
		*p = src[0]
	case *int16:
		*p = int16(bo.Uint16(src))
	case *uint16:
		*p = bo.Uint16(src)
	case *int32:
		*p = int32(bo.Uint32(src))
	case *uint32:
		*p = bo.Uint32(src)
	case *int64:
		*p = int64(bo.Uint64(src))
	case *uint64:
		*p = bo.Uint64(src)
	case *float32:
		*p = math.Float32frombits(bo.Uint32(src))
	case *float64:
		*p = math.Float64frombits(bo.Uint64(src))
	}
	return v
}

// Append appends the encoding of v in byte order O to dst.
func Append[O Order, T Primitive](dst []byte, v T) []byte {
	var buf [MaxSize]byte
	n := Size[T]()
	Encode[O](buf[:n], v)
	return append(dst, buf[:n]...)
}

// Bytes returns the encoding of v in byte order O.
func Bytes[O Order, T Primitive](v T) []byte {
	return Append[O](make([]byte, 0, Size[T]()), v)
}
