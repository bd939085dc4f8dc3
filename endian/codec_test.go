package endian

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

// point is a hand-written Codec, the way custom framing is implemented.
type point struct {
	X int16
	Y int16
}

func (p point) WriteEndian(w io.Writer) error {
	if err := Write[Big](w, p.X); err != nil {
		return err
	}
	return Write[Big](w, p.Y)
}

func (p *point) ReadEndian(r io.Reader) error {
	x, err := Read[Big, int16](r)
	if err != nil {
		return err
	}
	y, err := Read[Big, int16](r)
	if err != nil {
		return err
	}
	*p = point{X: x, Y: y}
	return nil
}

var _ Codec = (*point)(nil)

func TestMarshalUnmarshal(t *testing.T) {
	data, err := Marshal(point{X: 1, Y: -1})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(data, []byte{0, 1, 0xff, 0xff}) {
		t.Fatalf("bytes = %x", data)
	}

	var p point
	if err := Unmarshal(data, &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p != (point{X: 1, Y: -1}) {
		t.Errorf("got %+v", p)
	}
}

func TestUnmarshalTrailing(t *testing.T) {
	var p point
	err := Unmarshal([]byte{0, 1, 0, 2, 9}, &p)
	if !errors.Is(err, ErrInvalidData) {
		t.Errorf("expected invalid data for trailing bytes, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "1 trailing bytes") || !strings.Contains(err.Error(), "[decode]") {
		t.Errorf("message %q should name the decode phase and the trailing count", err)
	}
}

func TestUnmarshalLeavesReceiverOnError(t *testing.T) {
	p := point{X: 7, Y: 8}
	err := Unmarshal([]byte{0, 1, 0}, &p)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected io.ErrUnexpectedEOF, got %v", err)
	}
	if p != (point{X: 7, Y: 8}) {
		t.Errorf("receiver modified on failure: %+v", p)
	}
}

func TestBool(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBool(&buf, true); err != nil {
		t.Fatal(err)
	}
	if err := WriteBool(&buf, false); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{1, 0}) {
		t.Fatalf("bytes = %x", buf.Bytes())
	}

	for b := 0; b < 256; b++ {
		got, err := ReadBool(bytes.NewReader([]byte{byte(b)}))
		switch b {
		case 0, 1:
			if err != nil || got != (b == 1) {
				t.Errorf("ReadBool(%#x) = %v, %v", b, got, err)
			}
		default:
			if !errors.Is(err, ErrInvalidData) {
				t.Errorf("ReadBool(%#x): expected invalid data, got %v", b, err)
			}
		}

		got, err = ReadBoolUnchecked(bytes.NewReader([]byte{byte(b)}))
		if err != nil || got != (b != 0) {
			t.Errorf("ReadBoolUnchecked(%#x) = %v, %v", b, got, err)
		}
	}

	if _, err := ReadBool(bytes.NewReader(nil)); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

type pngMagic struct{}

func (pngMagic) Payload() []byte {
	return []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
}

func TestPayload(t *testing.T) {
	var m Marker[pngMagic]
	data, err := Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, pngMagic{}.Payload()) {
		t.Fatalf("bytes = %x", data)
	}
	if err := Unmarshal(data, &m); err != nil {
		t.Fatalf("exact payload rejected: %v", err)
	}

	for i := range data {
		garbage := bytes.Clone(data)
		garbage[i] ^= 0xff
		err := ReadPayload(bytes.NewReader(garbage), pngMagic{}.Payload())
		if !errors.Is(err, ErrInvalidData) {
			t.Errorf("byte %d altered: expected invalid data, got %v", i, err)
		}
	}

	err = ReadPayload(bytes.NewReader(data[:3]), pngMagic{}.Payload())
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestUnknownDiscriminant(t *testing.T) {
	err := UnknownDiscriminant("Foo", uint32(0))
	if !errors.Is(err, ErrInvalidData) {
		t.Errorf("expected invalid data, got %v", err)
	}
	err = UnknownVariant("Foo", nil)
	if !errors.Is(err, ErrInvalidData) {
		t.Errorf("expected invalid data, got %v", err)
	}
}
