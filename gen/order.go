package gen

import (
	"go/token"
	"strings"

	"github.com/wippyai/endiangen/errors"
)

// Order is a byte order resolved at generation time. It only ever appears in
// generated code as a type argument: endian.Native, endian.Little or endian.Big.
type Order uint8

const (
	Native Order = iota
	Little
	Big
)

var orderNames = [...]string{
	Native: "native",
	Little: "little",
	Big:    "big",
}

var orderTypes = [...]string{
	Native: "Native",
	Little: "Little",
	Big:    "Big",
}

func (o Order) String() string {
	if int(o) < len(orderNames) {
		return orderNames[o]
	}
	return "unknown"
}

// TypeName returns the runtime selector type for o, without package qualifier.
func (o Order) TypeName() string {
	if int(o) < len(orderTypes) {
		return orderTypes[o]
	}
	return "Native"
}

// Marker is a piece of directive or tag text together with where it was written.
type Marker struct {
	Text string
	Pos  token.Position
}

// ParseOrder maps an endian spelling to its order.
//
//	_ ne native -> Native
//	le little   -> Little
//	be big      -> Big
func ParseOrder(m Marker) (Order, error) {
	switch strings.TrimSpace(m.Text) {
	case "_", "ne", "native":
		return Native, nil
	case "le", "little":
		return Little, nil
	case "be", "big":
		return Big, nil
	}
	return 0, errors.UnknownEndianSpelling(m.Pos, m.Text)
}

// Resolve returns the effective order of a field. A nil override inherits the
// type default; an override equal to the default is rejected as redundant.
func Resolve(def Order, override *Marker, path []string) (Order, error) {
	if override == nil {
		return def, nil
	}
	o, err := ParseOrder(*override)
	if err != nil {
		return 0, err
	}
	if o == def {
		return 0, errors.RedundantOverride(override.Pos, path, o.String())
	}
	return o, nil
}

// defaultOrder resolves the mandatory type-level order of a declaration.
func defaultOrder(d *Decl) (Order, error) {
	if d.Endian == nil {
		return 0, errors.MissingDefaultEndian(d.Pos, d.Name)
	}
	return ParseOrder(*d.Endian)
}
