package gen

import (
	"fmt"
	"strconv"

	"github.com/wippyai/endiangen/errors"
)

// Accessor returns the expression that reads field i of the value being written.
type Accessor func(i int, f Field) string

// NamedAccess selects fields by name: recv.Name.
func NamedAccess(recv string) Accessor {
	return func(_ int, f Field) string {
		return recv + "." + f.Name
	}
}

// IndexAccess selects fields by position: recv[i].
func IndexAccess(recv string) Accessor {
	return func(i int, _ Field) string {
		return recv + "[" + strconv.Itoa(i) + "]"
	}
}

// Op is the resolved encode/decode step for one field.
type Op struct {
	Field Field
	// Access is the expression read by the write side.
	Access string
	// Local is the variable the read side decodes into.
	Local string
	// Order is the resolved byte order; composites ignore it.
	Order Order
}

// Plan is the ordered list of field operations for one shape.
type Plan struct {
	Shape Shape
	Ops   []Op
}

// PlanFields resolves every field of s against the type default def, in
// declaration order. The same plan drives the write sequence and the read
// reconstruction, so wire order and reconstruction order cannot diverge.
func PlanFields(s Shape, def Order, access Accessor, path []string) (*Plan, error) {
	p := &Plan{Shape: s, Ops: make([]Op, 0, len(s.Fields))}

	for i, f := range s.Fields {
		fieldPath := append(append([]string{}, path...), fieldLabel(i, f))

		if err := checkFieldType(f, fieldPath); err != nil {
			return nil, err
		}

		order := def
		if f.Type.IsComposite() {
			if f.Endian != nil {
				return nil, errors.New(errors.PhaseGenerate, errors.KindOverrideOnComposite).
					Pos(f.Endian.Pos).
					Path(fieldPath...).
					GoType(f.Type.Expr).
					Detail("endian %q would be ignored: the type encodes its own fields", f.Endian.Text).
					Build()
			}
		} else {
			var err error
			order, err = Resolve(def, f.Endian, fieldPath)
			if err != nil {
				return nil, err
			}
		}

		p.Ops = append(p.Ops, Op{
			Field:  f,
			Access: access(i, f),
			Local:  "f" + strconv.Itoa(i),
			Order:  order,
		})
	}

	return p, nil
}

func checkFieldType(f Field, path []string) error {
	t := f.Type
	if t.Kind == RefArray {
		if t.Elem == nil || t.Elem.Kind == RefArray {
			return errors.New(errors.PhaseGenerate, errors.KindUnsupportedType).
				Pos(f.Pos).
				Path(path...).
				GoType(t.Expr).
				Detail("arrays must have primitive or encodable elements").
				Build()
		}
		t = *t.Elem
	}
	switch {
	case t.Kind == RefUnsupported:
		return errors.UnsupportedType(f.Pos, path, t.Expr)
	case t.Kind == RefPrimitive && t.Prim == PrimNone:
		return errors.UnsupportedType(f.Pos, path, t.Expr)
	case t.Kind == RefUnion && t.Name == "":
		return errors.UnsupportedType(f.Pos, path, t.Expr)
	}
	return nil
}

func fieldLabel(i int, f Field) string {
	if f.Name != "" {
		return f.Name
	}
	return fmt.Sprintf("[%d]", i)
}
