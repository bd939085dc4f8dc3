package endian

import "io"

// Write encodes v in byte order O and writes exactly Size[T]() bytes to w.
func Write[O Order, T Primitive](w io.Writer, v T) error {
	var buf [MaxSize]byte
	n := Size[T]()
	Encode[O](buf[:n], v)
	return writeFull(w, buf[:n])
}

// Read reads exactly Size[T]() bytes from r and decodes them in byte order O.
func Read[O Order, T Primitive](r io.Reader) (T, error) {
	var buf [MaxSize]byte
	n := Size[T]()
	if _, err := io.ReadFull(r, buf[:n]); err != nil {
		var zero T
		return zero, err
	}
	return Decode[O, T](buf[:n]), nil
}

// WriteNE writes v in native byte order.
func WriteNE[T Primitive](w io.Writer, v T) error { return Write[Native](w, v) }

// WriteLE writes v in little-endian byte order.
func WriteLE[T Primitive](w io.Writer, v T) error { return Write[Little](w, v) }

// WriteBE writes v in big-endian byte order.
func WriteBE[T Primitive](w io.Writer, v T) error { return Write[Big](w, v) }

// ReadNE reads a T in native byte order.
func ReadNE[T Primitive](r io.Reader) (T, error) { return Read[Native, T](r) }

// ReadLE reads a T in little-endian byte order.
func ReadLE[T Primitive](r io.Reader) (T, error) { return Read[Little, T](r) }

// ReadBE reads a T in big-endian byte order.
func ReadBE[T Primitive](r io.Reader) (T, error) { return Read[Big, T](r) }

func writeFull(w io.Writer, p []byte) error {
	n, err := w.Write(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return nil
}
