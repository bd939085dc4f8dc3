package endian

import (
	"bytes"
	"io"

	"github.com/wippyai/endiangen/errors"
)

// Payload is implemented by marker types whose wire form is one constant
// byte sequence, such as file magic numbers.
type Payload interface {
	Payload() []byte
}

// WritePayload writes the constant p.
func WritePayload(w io.Writer, p []byte) error {
	return writeFull(w, p)
}

// ReadPayload reads len(p) bytes and requires them to equal p exactly.
func ReadPayload(r io.Reader, p []byte) error {
	got := make([]byte, len(p))
	if _, err := io.ReadFull(r, got); err != nil {
		return err
	}
	if !bytes.Equal(got, p) {
		return errors.PayloadMismatch(p, got)
	}
	return nil
}

// Marker adapts a hand-written Payload type to the Codec contract.
//
//	type PNG struct{}
//	func (PNG) Payload() []byte { return []byte("\x89PNG\r\n\x1a\n") }
//
//	var m endian.Marker[PNG]
//	err := m.ReadEndian(r)
type Marker[P Payload] struct {
	Value P
}

// WriteEndian writes the payload of m.Value.
func (m Marker[P]) WriteEndian(w io.Writer) error {
	return WritePayload(w, m.Value.Payload())
}

// ReadEndian verifies the payload of the zero P.
func (m *Marker[P]) ReadEndian(r io.Reader) error {
	var v P
	if err := ReadPayload(r, v.Payload()); err != nil {
		return err
	}
	m.Value = v
	return nil
}
