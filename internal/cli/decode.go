package cli

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/endiangen/endian"
	"github.com/wippyai/endiangen/gen"
)

// decodedRow is one layout row applied to sample bytes.
type decodedRow struct {
	Row   gen.Row
	Bytes string
	Value string
}

// parseHex accepts hex bytes with optional 0x prefixes and any whitespace,
// colon or comma separators.
func parseHex(s string) ([]byte, error) {
	s = strings.NewReplacer("0x", "", "0X", "", ":", "", ",", "").Replace(s)
	s = strings.Join(strings.Fields(s), "")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("parse hex: %w", err)
	}
	return b, nil
}

// decodeRows interprets data against every row of l. Rows after a variable
// width or past the end of data get no value. Union variants all start after
// the discriminant, so every variant is shown over the same bytes.
func decodeRows(l *gen.Layout, data []byte) []decodedRow {
	out := make([]decodedRow, 0, len(l.Rows))
	for _, r := range l.Rows {
		d := decodedRow{Row: r}
		switch {
		case r.Offset == gen.Variable || r.Size == gen.Variable:
			d.Value = "var"
		case r.Offset+r.Size > len(data):
			d.Value = "short"
			if r.Offset < len(data) {
				d.Bytes = hex.EncodeToString(data[r.Offset:])
			}
		default:
			b := data[r.Offset : r.Offset+r.Size]
			d.Bytes = hex.EncodeToString(b)
			d.Value = decodeValue(r, b)
		}
		out = append(out, d)
	}
	return out
}

func decodeValue(r gen.Row, b []byte) string {
	if r.Prim == gen.PrimBool {
		switch b[0] {
		case 0:
			return "false"
		case 1:
			return "true"
		}
		return fmt.Sprintf("invalid (0x%02x)", b[0])
	}
	switch r.Order {
	case "big":
		return decodeAs[endian.Big](r.Prim, b)
	case "little":
		return decodeAs[endian.Little](r.Prim, b)
	case "native":
		return decodeAs[endian.Native](r.Prim, b)
	}
	return ""
}

func decodeAs[O endian.Order](p gen.Prim, b []byte) string {
	switch p {
	case gen.PrimInt8:
		return strconv.FormatInt(int64(endian.Decode[O, int8](b)), 10)
	case gen.PrimUint8:
		return strconv.FormatUint(uint64(endian.Decode[O, uint8](b)), 10)
	case gen.PrimInt16:
		return strconv.FormatInt(int64(endian.Decode[O, int16](b)), 10)
	case gen.PrimUint16:
		return strconv.FormatUint(uint64(endian.Decode[O, uint16](b)), 10)
	case gen.PrimInt32:
		return strconv.FormatInt(int64(endian.Decode[O, int32](b)), 10)
	case gen.PrimUint32:
		return strconv.FormatUint(uint64(endian.Decode[O, uint32](b)), 10)
	case gen.PrimInt64:
		return strconv.FormatInt(endian.Decode[O, int64](b), 10)
	case gen.PrimUint64:
		return strconv.FormatUint(endian.Decode[O, uint64](b), 10)
	case gen.PrimFloat32:
		return strconv.FormatFloat(float64(endian.Decode[O, float32](b)), 'g', -1, 32)
	case gen.PrimFloat64:
		return strconv.FormatFloat(endian.Decode[O, float64](b), 'g', -1, 64)
	}
	return ""
}
