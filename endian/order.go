package endian

import "encoding/binary"

// Order is satisfied by exactly three zero-size selectors: Native, Little and Big.
type Order interface {
	Native | Little | Big
	byteOrder() binary.ByteOrder
	name() string
}

// Native selects the byte order of the running machine.
type Native struct{}

// Little selects little-endian byte order.
type Little struct{}

// Big selects big-endian byte order.
type Big struct{}

func (Native) byteOrder() binary.ByteOrder { return binary.NativeEndian }
func (Little) byteOrder() binary.ByteOrder { return binary.LittleEndian }
func (Big) byteOrder() binary.ByteOrder    { return binary.BigEndian }

func (Native) name() string { return "native" }
func (Little) name() string { return "little" }
func (Big) name() string    { return "big" }

// ByteOrder returns the encoding/binary order behind O.
func ByteOrder[O Order]() binary.ByteOrder {
	var o O
	return o.byteOrder()
}

// Name returns the canonical spelling of O: "native", "little" or "big".
func Name[O Order]() string {
	var o O
	return o.name()
}
