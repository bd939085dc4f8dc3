package gen

import (
	"bytes"
	"fmt"
	"strings"
)

// builder accumulates generated source one line at a time.
type builder struct {
	buf    bytes.Buffer
	indent int
}

func (b *builder) line(format string, args ...any) {
	if format == "" {
		b.buf.WriteByte('\n')
		return
	}
	b.buf.WriteString(strings.Repeat("\t", b.indent))
	if len(args) > 0 {
		fmt.Fprintf(&b.buf, format, args...)
	} else {
		b.buf.WriteString(format)
	}
	b.buf.WriteByte('\n')
}

// raw emits text verbatim at the current indentation.
func (b *builder) raw(text string) {
	b.buf.WriteString(strings.Repeat("\t", b.indent))
	b.buf.WriteString(text)
	b.buf.WriteByte('\n')
}

func (b *builder) in()  { b.indent++ }
func (b *builder) out() { b.indent-- }

// check emits "if err := call; err != nil { ret }".
func (b *builder) check(call, ret string) {
	b.line("if err := %s; err != nil {", call)
	b.in()
	b.raw(ret)
	b.out()
	b.line("}")
}

// errBlock emits the error test after a "v, err :=" assignment.
func (b *builder) errBlock(ret string) {
	b.line("if err != nil {")
	b.in()
	b.raw(ret)
	b.out()
	b.line("}")
}

func (b *builder) String() string {
	return b.buf.String()
}

// renderer turns plans into Go statements.
type renderer struct {
	// rt is the package name of the runtime package in the generated file.
	rt            string
	uncheckedBool bool
}

// writeOps emits one write statement per op, in plan order.
func (r *renderer) writeOps(b *builder, p *Plan, ret string) {
	for _, op := range p.Ops {
		r.writeValue(b, op.Field.Type, op.Access, op.Order, ret)
	}
}

func (r *renderer) writeValue(b *builder, t TypeRef, access string, order Order, ret string) {
	switch t.Kind {
	case RefPrimitive:
		b.check(r.writeCall(t, access, order), ret)
	case RefCodec:
		b.check(access+".WriteEndian(w)", ret)
	case RefUnion:
		b.check(fmt.Sprintf("Write%s(w, %s)", t.Name, access), ret)
	case RefArray:
		b.line("for _, e := range %s {", access)
		b.in()
		r.writeValue(b, *t.Elem, "e", order, ret)
		b.out()
		b.line("}")
	}
}

func (r *renderer) writeCall(t TypeRef, access string, order Order) string {
	v := access
	if t.needsConv() {
		v = t.Prim.String() + "(" + access + ")"
	}
	if t.Prim == PrimBool {
		return fmt.Sprintf("%s.WriteBool(w, %s)", r.rt, v)
	}
	return fmt.Sprintf("%s.Write[%s.%s](w, %s)", r.rt, r.rt, order.TypeName(), v)
}

func (r *renderer) readCall(t TypeRef, order Order) string {
	if t.Prim == PrimBool {
		if r.uncheckedBool {
			return r.rt + ".ReadBoolUnchecked(r)"
		}
		return r.rt + ".ReadBool(r)"
	}
	return fmt.Sprintf("%s.Read[%s.%s, %s](r)", r.rt, r.rt, order.TypeName(), t.Prim)
}

// readOps emits the decode statements for every op and returns the value
// expressions, in plan order, used to reconstruct the shape.
func (r *renderer) readOps(b *builder, p *Plan, ret string) []string {
	values := make([]string, 0, len(p.Ops))
	for _, op := range p.Ops {
		values = append(values, r.readValue(b, op.Field.Type, op.Local, op.Order, ret))
	}
	return values
}

func (r *renderer) readValue(b *builder, t TypeRef, local string, order Order, ret string) string {
	switch t.Kind {
	case RefPrimitive:
		b.line("%s, err := %s", local, r.readCall(t, order))
		b.errBlock(ret)
		return convert(t, local)
	case RefCodec:
		b.line("var %s %s", local, t.Expr)
		b.check(local+".ReadEndian(r)", ret)
		return local
	case RefUnion:
		b.line("%s, err := Read%s(r)", local, t.Name)
		b.errBlock(ret)
		return local
	case RefArray:
		elem := *t.Elem
		b.line("var %s %s", local, t.Expr)
		b.line("for i := range %s {", local)
		b.in()
		switch elem.Kind {
		case RefCodec:
			b.check(local+"[i].ReadEndian(r)", ret)
		case RefUnion:
			b.line("e, err := Read%s(r)", elem.Name)
			b.errBlock(ret)
			b.line("%s[i] = e", local)
		default:
			b.line("e, err := %s", r.readCall(elem, order))
			b.errBlock(ret)
			b.line("%s[i] = %s", local, convert(elem, "e"))
		}
		b.out()
		b.line("}")
		return local
	}
	return local
}

func convert(t TypeRef, v string) string {
	if t.needsConv() {
		return t.Expr + "(" + v + ")"
	}
	return v
}

// rebuild returns the composite literal that reconstructs s from values.
func rebuild(s Shape, values []string) string {
	switch s.Style {
	case ShapeNamed:
		var sb strings.Builder
		sb.WriteString(s.Type)
		sb.WriteString("{\n")
		for i, f := range s.Fields {
			sb.WriteString(f.Name)
			sb.WriteString(": ")
			sb.WriteString(values[i])
			sb.WriteString(",\n")
		}
		sb.WriteString("}")
		return sb.String()
	case ShapePositional:
		return s.Type + "{" + strings.Join(values, ", ") + "}"
	default:
		return s.Type + "{}"
	}
}
