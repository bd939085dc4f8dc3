package endian

import (
	"io"

	"github.com/wippyai/endiangen/errors"
)

// WriteBool writes v as a single byte, 1 for true and 0 for false.
func WriteBool(w io.Writer, v bool) error {
	var buf [1]byte
	if v {
		buf[0] = 1
	}
	return writeFull(w, buf[:])
}

// ReadBool reads a single byte that must be 0 or 1.
func ReadBool(r io.Reader) (bool, error) {
	b, err := readByte(r)
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, errors.InvalidBool(b)
}

// ReadBoolUnchecked reads a single byte; any nonzero value is true.
func ReadBoolUnchecked(r io.Reader) (bool, error) {
	b, err := readByte(r)
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

func readByte(r io.Reader) (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}
