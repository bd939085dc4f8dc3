package gen

import (
	"strings"

	"github.com/wippyai/endiangen/errors"
)

// Variable marks a width or offset that depends on the encoded value, or on a
// type declared outside the scanned package.
const Variable = -1

// Row is one encoded item of a type layout. Prim is PrimNone for composite
// rows and payload bytes.
type Row struct {
	Path   string
	Type   string
	Order  string
	Offset int
	Size   int
	Prim   Prim
}

// Layout is the wire layout of one declaration.
type Layout struct {
	Name string
	Rows []Row
	Size int
	Kind DeclKind
}

// Layouts computes the wire layout of every declaration. Codec fields are sized
// through the other declarations in the slice; failures are collected per type.
func (g *Generator) Layouts(decls []*Decl) ([]*Layout, error) {
	c := &layoutCalc{
		index: make(map[string]*Decl, len(decls)),
		sizes: make(map[string]int, len(decls)),
	}
	for _, d := range decls {
		c.index[d.Name] = d
	}

	out := make([]*Layout, 0, len(decls))
	var errs errors.List
	for _, d := range decls {
		l, err := c.layout(d)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, l)
	}
	return out, errs.Err()
}

type layoutCalc struct {
	index map[string]*Decl
	sizes map[string]int
	// active guards against recursive value types, which Go rejects anyway.
	active []string
}

func (c *layoutCalc) layout(d *Decl) (*Layout, error) {
	l := &Layout{Name: d.Name, Kind: d.Kind}

	switch d.Kind {
	case DeclRecord, DeclTuple:
		def, err := defaultOrder(d)
		if err != nil {
			return nil, err
		}
		plan, err := PlanFields(d.recordShape(), def, NamedAccess(d.Name), []string{d.Name})
		if err != nil {
			return nil, err
		}
		l.Size = c.rows(l, plan, "", 0)

	case DeclUnion:
		def, err := defaultOrder(d)
		if err != nil {
			return nil, err
		}
		repr, err := reprOf(d)
		if err != nil {
			return nil, err
		}
		l.Rows = append(l.Rows, Row{Path: "discriminant", Type: repr.String(), Order: def.String(), Size: repr.Size(), Prim: repr})
		size := 0
		for i := range d.Variants {
			v := &d.Variants[i]
			plan, err := PlanFields(v.shape(), def, NamedAccess(v.Name), []string{d.Name, v.Name})
			if err != nil {
				return nil, err
			}
			n := c.rows(l, plan, v.Name+".", repr.Size())
			size = mergeVariant(size, n, i)
		}
		l.Size = add(repr.Size(), size)

	case DeclEnum:
		def, err := defaultOrder(d)
		if err != nil {
			return nil, err
		}
		repr, err := reprOf(d)
		if err != nil {
			return nil, err
		}
		l.Rows = append(l.Rows, Row{Path: d.Name, Type: repr.String(), Order: def.String(), Size: repr.Size(), Prim: repr})
		l.Size = repr.Size()

	case DeclPayload:
		l.Rows = append(l.Rows, Row{Path: "payload", Type: "[]byte", Order: "-", Size: len(d.Payload)})
		l.Size = len(d.Payload)

	default:
		return nil, errors.UnsupportedShape(d.Pos, d.Name, d.Detail)
	}
	return l, nil
}

// rows appends one row per op starting at offset and returns the total width.
func (c *layoutCalc) rows(l *Layout, p *Plan, prefix string, offset int) int {
	total := 0
	for i, op := range p.Ops {
		order := op.Order.String()
		if op.Field.Type.IsComposite() || op.Field.Type.Prim == PrimBool {
			order = "-"
		}
		n := c.size(op.Field.Type)
		row := Row{
			Path:   prefix + fieldLabel(i, op.Field),
			Type:   op.Field.Type.Expr,
			Order:  order,
			Offset: add(offset, total),
			Size:   n,
		}
		if op.Field.Type.Kind == RefPrimitive {
			row.Prim = op.Field.Type.Prim
		}
		l.Rows = append(l.Rows, row)
		total = add(total, n)
	}
	return total
}

func (c *layoutCalc) size(t TypeRef) int {
	switch t.Kind {
	case RefPrimitive:
		return t.Prim.Size()
	case RefArray:
		if t.Elem == nil {
			return Variable
		}
		n := c.size(*t.Elem)
		if n == Variable {
			return Variable
		}
		return n * t.Len
	case RefCodec, RefUnion:
		name := t.Expr
		if t.Kind == RefUnion {
			name = t.Name
		}
		return c.declSize(name)
	}
	return Variable
}

func (c *layoutCalc) declSize(name string) int {
	if n, ok := c.sizes[name]; ok {
		return n
	}
	d, ok := c.index[name]
	if !ok || strings.Contains(name, ".") {
		return Variable
	}
	for _, a := range c.active {
		if a == name {
			return Variable
		}
	}
	c.active = append(c.active, name)
	defer func() { c.active = c.active[:len(c.active)-1] }()

	n := Variable
	if l, err := c.layout(d); err == nil {
		n = l.Size
	}
	c.sizes[name] = n
	return n
}

func add(a, b int) int {
	if a == Variable || b == Variable {
		return Variable
	}
	return a + b
}

// mergeVariant keeps the common variant width, or Variable once two differ.
func mergeVariant(acc, n, i int) int {
	if i == 0 || acc == n {
		return n
	}
	return Variable
}
