package gen

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/endiangen/errors"
)

// DefaultRuntime is the import path of the runtime package used by generated code.
const DefaultRuntime = "github.com/wippyai/endiangen/endian"

// Options configure code generation.
type Options struct {
	// Runtime is the import path of the runtime package. Defaults to DefaultRuntime.
	Runtime string
	// UncheckedBool decodes any nonzero boolean byte as true instead of failing.
	UncheckedBool bool
}

// Generator turns declarations into Encoder/Decoder implementations.
// It holds no per-call state and is safe for concurrent use.
type Generator struct {
	opts Options
	r    renderer
}

// New creates a Generator.
func New(opts Options) *Generator {
	if opts.Runtime == "" {
		opts.Runtime = DefaultRuntime
	}
	return &Generator{
		opts: opts,
		r: renderer{
			rt:            runtimeName(opts.Runtime),
			uncheckedBool: opts.UncheckedBool,
		},
	}
}

// Options returns the effective options.
func (g *Generator) Options() Options {
	return g.opts
}

// Impl is the generated source for one declaration.
type Impl struct {
	Decl *Decl
	// Code holds top-level Go declarations without package clause or imports.
	Code string
}

// Generate produces the implementation for one declaration.
func (g *Generator) Generate(d *Decl) (*Impl, error) {
	if len(d.Manual) > 0 {
		return nil, errors.New(errors.PhaseGenerate, errors.KindConflictingImpl).
			Pos(d.Pos).
			GoType(d.Name).
			Detail("hand-written %s conflicts with the endian directive", strings.Join(d.Manual, " and ")).
			Build()
	}

	var (
		code string
		err  error
	)
	switch d.Kind {
	case DeclRecord, DeclTuple:
		code, err = g.genRecord(d)
	case DeclUnion:
		code, err = g.genUnion(d)
	case DeclEnum:
		code, err = g.genEnum(d)
	case DeclPayload:
		code, err = g.genPayload(d)
	default:
		detail := d.Detail
		if detail == "" {
			detail = "only structs, array types, integer enums and sealed interfaces can be derived"
		}
		err = errors.UnsupportedShape(d.Pos, d.Name, detail)
	}
	if err != nil {
		return nil, err
	}

	Logger().Debug("generated",
		zap.String("type", d.Name),
		zap.Stringer("kind", d.Kind),
		zap.Int("fields", len(d.Fields)),
		zap.Int("variants", len(d.Variants)),
	)
	return &Impl{Decl: d, Code: code}, nil
}

// GenerateAll generates every declaration independently. Failed types do not
// stop the others; their errors are returned together as an errors.List in
// declaration order.
func (g *Generator) GenerateAll(decls []*Decl) ([]*Impl, error) {
	impls := make([]*Impl, 0, len(decls))
	var errs errors.List
	for _, d := range decls {
		impl, err := g.Generate(d)
		if err != nil {
			Logger().Debug("generation failed", zap.String("type", d.Name), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		impls = append(impls, impl)
	}
	return impls, errs.Err()
}

func (g *Generator) genRecord(d *Decl) (string, error) {
	def, err := defaultOrder(d)
	if err != nil {
		return "", err
	}

	shape := d.recordShape()
	access := NamedAccess("x")
	if shape.Style == ShapePositional {
		access = IndexAccess("x")
	}
	plan, err := PlanFields(shape, def, access, []string{d.Name})
	if err != nil {
		return "", err
	}

	b := &builder{}
	b.line("// WriteEndian writes x in its fixed binary layout.")
	b.line("func (x %s) WriteEndian(w io.Writer) error {", d.Name)
	b.in()
	g.r.writeOps(b, plan, "return err")
	b.line("return nil")
	b.out()
	b.line("}")
	b.line("")
	b.line("// ReadEndian reads x from its fixed binary layout. x is unchanged on error.")
	b.line("func (x *%s) ReadEndian(r io.Reader) error {", d.Name)
	b.in()
	values := g.r.readOps(b, plan, "return err")
	b.line("*x = %s", rebuild(shape, values))
	b.line("return nil")
	b.out()
	b.line("}")
	return b.String(), nil
}

// discriminant is a validated variant tag.
type discriminant struct {
	text string
	key  string
}

func parseDiscriminant(m Marker, repr Prim, union, variant string) (discriminant, error) {
	text := strings.TrimSpace(m.Text)
	bits := repr.Size() * 8

	var key string
	if repr.IsSigned() {
		v, err := strconv.ParseInt(text, 0, bits)
		if err != nil {
			return discriminant{}, invalidDiscriminant(m, repr, union, variant, err)
		}
		key = strconv.FormatInt(v, 10)
	} else {
		v, err := strconv.ParseUint(text, 0, bits)
		if err != nil {
			return discriminant{}, invalidDiscriminant(m, repr, union, variant, err)
		}
		key = strconv.FormatUint(v, 10)
	}
	return discriminant{text: text, key: key}, nil
}

func invalidDiscriminant(m Marker, repr Prim, union, variant string, cause error) error {
	return errors.New(errors.PhaseGenerate, errors.KindInvalidDiscriminant).
		Pos(m.Pos).
		GoType(union).
		Path(variant).
		Value(m.Text).
		Detail("discriminant %q is not a %s literal", m.Text, repr).
		Cause(cause).
		Build()
}

// reprOf validates the representation type of a union or enum.
func reprOf(d *Decl) (Prim, error) {
	if d.Repr == nil {
		return PrimNone, errors.MissingRepr(d.Pos, d.Name)
	}
	p := ParsePrim(strings.TrimSpace(d.Repr.Text))
	if !p.IsInteger() {
		pos := d.Repr.Pos
		if !pos.IsValid() {
			pos = d.Pos
		}
		return PrimNone, errors.NonIntegerRepr(pos, d.Name, d.Repr.Text)
	}
	return p, nil
}

func (g *Generator) genUnion(d *Decl) (string, error) {
	def, err := defaultOrder(d)
	if err != nil {
		return "", err
	}
	repr, err := reprOf(d)
	if err != nil {
		return "", err
	}
	if len(d.Variants) == 0 {
		return "", errors.UnsupportedShape(d.Pos, d.Name, "union declares no variants")
	}

	discs := make([]discriminant, len(d.Variants))
	plans := make([]*Plan, len(d.Variants))
	seen := make(map[string]string, len(d.Variants))
	for i := range d.Variants {
		v := &d.Variants[i]
		if v.Discriminant == nil {
			return "", errors.MissingDiscriminant(v.Pos, d.Name, v.Name)
		}
		disc, err := parseDiscriminant(*v.Discriminant, repr, d.Name, v.Name)
		if err != nil {
			return "", err
		}
		if prev, ok := seen[disc.key]; ok {
			return "", errors.New(errors.PhaseGenerate, errors.KindDuplicateDiscriminant).
				Pos(v.Discriminant.Pos).
				GoType(d.Name).
				Path(v.Name).
				Value(disc.text).
				Detail("discriminant %s already used by %s", disc.text, prev).
				Build()
		}
		seen[disc.key] = v.Name
		discs[i] = disc

		plan, err := PlanFields(v.shape(), def, NamedAccess("v"), []string{d.Name, v.Name})
		if err != nil {
			return "", err
		}
		plans[i] = plan
	}

	rt := g.r.rt
	b := &builder{}

	b.line("// Write%s writes v as its %s discriminant followed by the variant fields.", d.Name, repr)
	b.line("func Write%s(w io.Writer, v %s) error {", d.Name, d.Name)
	b.in()
	b.line("switch v := v.(type) {")
	for i, v := range d.Variants {
		if !v.Pointer {
			b.line("case %s:", v.Name)
			b.in()
			g.writeVariant(b, def, repr, discs[i], plans[i])
			b.out()
		}
		b.line("case *%s:", v.Name)
		b.in()
		b.line("if v == nil {")
		b.in()
		b.line("return %s.UnknownVariant(%q, nil)", rt, d.Name)
		b.out()
		b.line("}")
		if v.Pointer {
			g.writeVariant(b, def, repr, discs[i], plans[i])
		} else {
			b.line("return Write%s(w, *v)", d.Name)
		}
		b.out()
	}
	b.line("}")
	b.line("return %s.UnknownVariant(%q, v)", rt, d.Name)
	b.out()
	b.line("}")
	b.line("")

	b.line("// Read%s reads a discriminant and the variant it selects.", d.Name)
	b.line("func Read%s(r io.Reader) (%s, error) {", d.Name, d.Name)
	b.in()
	b.line("disc, err := %s.Read[%s.%s, %s](r)", rt, rt, def.TypeName(), repr)
	b.errBlock("return nil, err")
	b.line("switch disc {")
	for i, v := range d.Variants {
		b.line("case %s:", discs[i].text)
		b.in()
		values := g.r.readOps(b, plans[i], "return nil, err")
		lit := rebuild(plans[i].Shape, values)
		if v.Pointer {
			lit = "&" + lit
		}
		b.line("return %s, nil", lit)
		b.out()
	}
	b.line("}")
	b.line("return nil, %s.UnknownDiscriminant(%q, disc)", rt, d.Name)
	b.out()
	b.line("}")
	return b.String(), nil
}

func (g *Generator) writeVariant(b *builder, def Order, repr Prim, disc discriminant, plan *Plan) {
	rt := g.r.rt
	b.check(fmt.Sprintf("%s.Write[%s.%s](w, %s(%s))", rt, rt, def.TypeName(), repr, disc.text), "return err")
	g.r.writeOps(b, plan, "return err")
	b.line("return nil")
}

func (g *Generator) genEnum(d *Decl) (string, error) {
	def, err := defaultOrder(d)
	if err != nil {
		return "", err
	}
	repr, err := reprOf(d)
	if err != nil {
		return "", err
	}

	names := enumCases(d.Consts)
	if len(names) == 0 {
		return "", errors.UnsupportedShape(d.Pos, d.Name, "enum declares no constants")
	}
	cases := strings.Join(names, ", ")

	rt := g.r.rt
	b := &builder{}
	b.line("// WriteEndian writes x as a %s. Values outside the declared constants are rejected.", repr)
	b.line("func (x %s) WriteEndian(w io.Writer) error {", d.Name)
	b.in()
	b.line("switch x {")
	b.line("case %s:", cases)
	b.in()
	b.line("return %s.Write[%s.%s](w, %s(x))", rt, rt, def.TypeName(), repr)
	b.out()
	b.line("}")
	b.line("return %s.UnknownVariant(%q, x)", rt, d.Name)
	b.out()
	b.line("}")
	b.line("")
	b.line("// ReadEndian reads a %s that must match one of the declared constants.", repr)
	b.line("func (x *%s) ReadEndian(r io.Reader) error {", d.Name)
	b.in()
	b.line("v, err := %s.Read[%s.%s, %s](r)", rt, rt, def.TypeName(), repr)
	b.errBlock("return err")
	b.line("switch %s(v) {", d.Name)
	b.line("case %s:", cases)
	b.in()
	b.line("*x = %s(v)", d.Name)
	b.line("return nil")
	b.out()
	b.line("}")
	b.line("return %s.UnknownDiscriminant(%q, v)", rt, d.Name)
	b.out()
	b.line("}")
	return b.String(), nil
}

// enumCases returns one constant name per distinct value, first declared wins.
func enumCases(consts []Const) []string {
	seen := make(map[string]bool, len(consts))
	names := make([]string, 0, len(consts))
	for _, c := range consts {
		if c.Name == "_" || seen[c.Value] {
			continue
		}
		seen[c.Value] = true
		names = append(names, c.Name)
	}
	return names
}

func (g *Generator) genPayload(d *Decl) (string, error) {
	if len(d.Payload) == 0 {
		return "", errors.New(errors.PhaseGenerate, errors.KindInvalidDirective).
			Pos(d.Pos).
			GoType(d.Name).
			Detail("payload directive needs at least one byte").
			Build()
	}
	if len(d.Fields) > 0 {
		return "", errors.UnsupportedShape(d.Pos, d.Name, "payload markers cannot have fields")
	}

	rt := g.r.rt
	name := "_" + d.Name + "_payload"
	b := &builder{}
	b.line("var %s = []byte{%s}", name, byteList(d.Payload))
	b.line("")
	b.line("// WriteEndian writes the %d-byte marker payload.", len(d.Payload))
	b.line("func (x %s) WriteEndian(w io.Writer) error {", d.Name)
	b.in()
	b.line("return %s.WritePayload(w, %s)", rt, name)
	b.out()
	b.line("}")
	b.line("")
	b.line("// ReadEndian requires the next %d bytes to equal the marker payload.", len(d.Payload))
	b.line("func (x *%s) ReadEndian(r io.Reader) error {", d.Name)
	b.in()
	b.check(fmt.Sprintf("%s.ReadPayload(r, %s)", rt, name), "return err")
	b.line("*x = %s{}", d.Name)
	b.line("return nil")
	b.out()
	b.line("}")
	return b.String(), nil
}

func byteList(p []byte) string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = fmt.Sprintf("0x%02x", c)
	}
	return strings.Join(parts, ", ")
}

func runtimeName(importPath string) string {
	if i := strings.LastIndexByte(importPath, '/'); i >= 0 {
		return importPath[i+1:]
	}
	return importPath
}
