package endian

import (
	"bytes"
	"fmt"
	"io"

	"github.com/wippyai/endiangen/errors"
)

// Encoder is implemented by types that write their own fixed binary layout.
type Encoder interface {
	WriteEndian(w io.Writer) error
}

// Decoder is implemented by types that read their own fixed binary layout.
// On error the receiver is left unchanged.
type Decoder interface {
	ReadEndian(r io.Reader) error
}

// Codec is the full encodable contract.
type Codec interface {
	Encoder
	Decoder
}

// Marshal returns the wire form of v.
func Marshal(v Encoder) ([]byte, error) {
	var buf bytes.Buffer
	if err := v.WriteEndian(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes data into v. The whole input must be consumed;
// leftover bytes are reported as invalid data.
func Unmarshal(data []byte, v Decoder) error {
	r := bytes.NewReader(data)
	if err := v.ReadEndian(r); err != nil {
		return err
	}
	if r.Len() > 0 {
		return errors.InvalidData(errors.PhaseDecode, nil, fmt.Sprintf("%d trailing bytes after value", r.Len()))
	}
	return nil
}
