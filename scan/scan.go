package scan

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path"
	"reflect"
	"sort"

	"go.uber.org/zap"

	"github.com/wippyai/endiangen/errors"
	"github.com/wippyai/endiangen/gen"
)

// TagKey is the struct tag key for field-level byte order overrides.
const TagKey = "endian"

// Result is the scanned content of one package.
type Result struct {
	// Name is the package name.
	Name string
	// Path is the package import path.
	Path string
	// Dir is the package directory, empty for in-memory sources.
	Dir   string
	Decls []*gen.Decl
	// Errors holds directive problems. The affected types are left out of Decls.
	Errors errors.List
}

// entry is an annotated type spec waiting to become a Decl.
type entry struct {
	spec    *ast.TypeSpec
	dir     *directive
	obj     *types.TypeName
	decl    *gen.Decl
	imports map[string]gen.Import
}

type scanner struct {
	fset    *token.FileSet
	pkg     *types.Package
	res     *Result
	entries []*entry
	byName  map[string]*entry
	// cur collects imports of the declaration being classified.
	cur *entry
}

// Scan extracts generation requests from type-checked files. Files must be
// in the order the package lists them; declarations keep source order.
func Scan(fset *token.FileSet, files []*ast.File, pkg *types.Package) *Result {
	s := &scanner{
		fset:   fset,
		pkg:    pkg,
		res:    &Result{Name: pkg.Name(), Path: pkg.Path()},
		byName: make(map[string]*entry),
	}
	s.collect(files)
	s.classify()
	s.attachVariants()

	for _, e := range s.entries {
		if e.decl == nil || e.dir.kind == dirVariant {
			continue
		}
		e.decl.Imports = sortedImports(e.imports)
		s.res.Decls = append(s.res.Decls, e.decl)
	}

	Logger().Debug("scanned package",
		zap.String("package", pkg.Path()),
		zap.Int("decls", len(s.res.Decls)),
		zap.Int("errors", len(s.res.Errors)),
	)
	return s.res
}

func (s *scanner) fail(err error) {
	s.res.Errors = append(s.res.Errors, err)
}

func (s *scanner) collect(files []*ast.File) {
	for _, f := range files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}
				dir, err := findDirective(s.fset, doc)
				if err != nil {
					s.fail(err)
					continue
				}
				if dir == nil {
					continue
				}
				obj, ok := s.pkg.Scope().Lookup(ts.Name.Name).(*types.TypeName)
				if !ok {
					// local types inside functions are not visible at package scope
					continue
				}
				e := &entry{spec: ts, dir: dir, obj: obj, imports: make(map[string]gen.Import)}
				s.entries = append(s.entries, e)
				s.byName[ts.Name.Name] = e
			}
		}
	}
}

func (s *scanner) position(p token.Pos) token.Position {
	return s.fset.Position(p)
}

// classify decides the shape of every non-variant entry. Kinds are assigned
// before any field is classified so fields can refer to later declarations.
func (s *scanner) classify() {
	for _, e := range s.entries {
		if e.dir.kind == dirVariant {
			continue
		}
		e.decl = &gen.Decl{
			Name:   e.obj.Name(),
			Pos:    s.position(e.spec.Name.Pos()),
			Endian: e.dir.order,
			Repr:   e.dir.repr,
		}
		e.decl.Kind, e.decl.Detail = s.kindOf(e)
	}

	for _, e := range s.entries {
		if e.decl == nil {
			continue
		}
		if err := s.fill(e); err != nil {
			s.fail(err)
			e.decl = nil
		}
	}
}

func (s *scanner) kindOf(e *entry) (gen.DeclKind, string) {
	if e.spec.TypeParams != nil {
		return gen.DeclUnknown, "generic types have no fixed binary layout"
	}
	if e.obj.IsAlias() {
		return gen.DeclUnknown, "alias declarations cannot carry methods"
	}
	under := e.obj.Type().Underlying()

	if e.dir.kind == dirPayload {
		if _, ok := under.(*types.Struct); !ok {
			return gen.DeclUnknown, "payload markers must be struct types"
		}
		return gen.DeclPayload, ""
	}

	switch u := under.(type) {
	case *types.Struct:
		return gen.DeclRecord, ""
	case *types.Array:
		return gen.DeclTuple, ""
	case *types.Interface:
		return gen.DeclUnion, ""
	case *types.Basic:
		if u.Info()&types.IsInteger != 0 {
			return gen.DeclEnum, ""
		}
		return gen.DeclUnknown, fmt.Sprintf("%s types cannot be derived, only integer enums", u.Name())
	}
	return gen.DeclUnknown, fmt.Sprintf("%s types have no fixed binary layout", kindName(under))
}

func kindName(t types.Type) string {
	switch t.(type) {
	case *types.Pointer:
		return "pointer"
	case *types.Slice:
		return "slice"
	case *types.Map:
		return "map"
	case *types.Chan:
		return "channel"
	case *types.Signature:
		return "func"
	}
	return types.TypeString(t, nil)
}

// fill populates fields, constants and payload of a classified entry.
func (s *scanner) fill(e *entry) error {
	d := e.decl
	s.cur = e
	defer func() { s.cur = nil }()

	if d.Repr != nil && d.Kind != gen.DeclUnion && d.Kind != gen.DeclEnum {
		return errors.New(errors.PhaseGenerate, errors.KindInvalidDirective).
			Pos(d.Repr.Pos).
			GoType(d.Name).
			Detail("repr applies to unions and enums only").
			Build()
	}

	d.Manual = s.manualMethods(e)

	switch d.Kind {
	case gen.DeclRecord, gen.DeclPayload:
		fields, err := s.structFields(e.obj.Type().Underlying().(*types.Struct), d.Name)
		if err != nil {
			return err
		}
		d.Fields = fields
		d.Payload = e.dir.payload

	case gen.DeclTuple:
		arr := e.obj.Type().Underlying().(*types.Array)
		ref := s.typeRef(arr.Elem())
		d.Fields = make([]gen.Field, arr.Len())
		for i := range d.Fields {
			d.Fields[i] = gen.Field{Type: ref, Pos: d.Pos}
		}

	case gen.DeclEnum:
		basic := e.obj.Type().Underlying().(*types.Basic)
		under := &gen.Marker{Text: basic.Name(), Pos: d.Pos}
		if d.Repr != nil && gen.ParsePrim(d.Repr.Text) != gen.ParsePrim(basic.Name()) {
			return errors.New(errors.PhaseGenerate, errors.KindInvalidDirective).
				Pos(d.Repr.Pos).
				GoType(d.Name).
				Detail("repr=%s does not match the underlying type %s", d.Repr.Text, basic.Name()).
				Build()
		}
		d.Repr = under
		d.Consts = s.enumConsts(e.obj)
	}
	return nil
}

func (s *scanner) structFields(st *types.Struct, owner string) ([]gen.Field, error) {
	fields := make([]gen.Field, 0, st.NumFields())
	for i := 0; i < st.NumFields(); i++ {
		v := st.Field(i)
		f := gen.Field{
			Name: v.Name(),
			Pos:  s.position(v.Pos()),
			Type: s.typeRef(v.Type()),
		}
		if v.Name() == "_" {
			return nil, errors.New(errors.PhaseGenerate, errors.KindUnsupportedType).
				Pos(f.Pos).
				Path(owner, "_").
				GoType(f.Type.Expr).
				Detail("blank fields cannot be reconstructed").
				Build()
		}
		if text, ok := reflect.StructTag(st.Tag(i)).Lookup(TagKey); ok {
			f.Endian = &gen.Marker{Text: text, Pos: f.Pos}
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// typeRef classifies a field type as seen from the generated file.
func (s *scanner) typeRef(t types.Type) gen.TypeRef {
	ref := gen.TypeRef{Expr: types.TypeString(t, s.qualify)}

	if named, ok := t.(*types.Named); ok && named.Obj().Pkg() == s.pkg {
		if e, ok := s.byName[named.Obj().Name()]; ok && e.decl != nil {
			if e.decl.Kind == gen.DeclUnion {
				ref.Kind = gen.RefUnion
				ref.Name = e.decl.Name
				return ref
			}
			if e.decl.Kind != gen.DeclUnknown {
				ref.Kind = gen.RefCodec
				return ref
			}
		}
	}
	if isCodec(t) {
		ref.Kind = gen.RefCodec
		return ref
	}

	switch u := t.Underlying().(type) {
	case *types.Basic:
		ref.Kind = gen.RefPrimitive
		ref.Prim = basicPrim(u)
		if ref.Prim == gen.PrimNone {
			ref.Kind = gen.RefUnsupported
		}
	case *types.Array:
		elem := s.typeRef(u.Elem())
		ref.Kind = gen.RefArray
		ref.Len = int(u.Len())
		ref.Elem = &elem
	default:
		ref.Kind = gen.RefUnsupported
	}
	return ref
}

func basicPrim(b *types.Basic) gen.Prim {
	switch b.Kind() {
	case types.Bool:
		return gen.PrimBool
	case types.Int8:
		return gen.PrimInt8
	case types.Uint8:
		return gen.PrimUint8
	case types.Int16:
		return gen.PrimInt16
	case types.Uint16:
		return gen.PrimUint16
	case types.Int32:
		return gen.PrimInt32
	case types.Uint32:
		return gen.PrimUint32
	case types.Int64:
		return gen.PrimInt64
	case types.Uint64:
		return gen.PrimUint64
	case types.Float32:
		return gen.PrimFloat32
	case types.Float64:
		return gen.PrimFloat64
	}
	return gen.PrimNone
}

// qualify names packages in type expressions and records them as imports.
func (s *scanner) qualify(p *types.Package) string {
	if p == s.pkg {
		return ""
	}
	if s.cur != nil {
		imp := gen.Import{Path: p.Path()}
		if path.Base(p.Path()) != p.Name() {
			imp.Name = p.Name()
		}
		s.cur.imports[p.Path()] = imp
	}
	return p.Name()
}

// isCodec reports whether t has WriteEndian(io.Writer) error and
// ReadEndian(io.Reader) error methods, by value or by pointer.
func isCodec(t types.Type) bool {
	ms := types.NewMethodSet(types.NewPointer(t))
	return hasMethod(ms, "WriteEndian", "Writer") && hasMethod(ms, "ReadEndian", "Reader")
}

// hasMethod reports whether ms has name with a single io.<param> parameter
// and a single error result.
func hasMethod(ms *types.MethodSet, name, param string) bool {
	for i := 0; i < ms.Len(); i++ {
		fn := ms.At(i).Obj()
		if fn.Name() != name {
			continue
		}
		sig, ok := fn.Type().(*types.Signature)
		if !ok || sig.Variadic() || sig.Params().Len() != 1 || sig.Results().Len() != 1 {
			return false
		}
		return isIO(sig.Params().At(0).Type(), param) &&
			types.Identical(sig.Results().At(0).Type(), types.Universe.Lookup("error").Type())
	}
	return false
}

func isIO(t types.Type, name string) bool {
	n, ok := t.(*types.Named) // go1.21: go/types does not materialize aliases
	if !ok {
		return false
	}
	obj := n.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == "io" && obj.Name() == name
}

// manualMethods lists hand-written codec methods or union functions.
func (s *scanner) manualMethods(e *entry) []string {
	var found []string
	if e.decl.Kind == gen.DeclUnion {
		for _, name := range []string{"Write" + e.decl.Name, "Read" + e.decl.Name} {
			if _, ok := s.pkg.Scope().Lookup(name).(*types.Func); ok {
				found = append(found, name)
			}
		}
		return found
	}

	ms := types.NewMethodSet(types.NewPointer(e.obj.Type()))
	for _, name := range []string{"WriteEndian", "ReadEndian"} {
		sel := ms.Lookup(nil, name)
		// promoted methods of embedded fields are shadowed by generated ones
		if sel != nil && len(sel.Index()) == 1 {
			found = append(found, name)
		}
	}
	return found
}

func (s *scanner) enumConsts(obj *types.TypeName) []gen.Const {
	var consts []*types.Const
	scope := s.pkg.Scope()
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if ok && types.Identical(c.Type(), obj.Type()) {
			consts = append(consts, c)
		}
	}
	sort.Slice(consts, func(i, j int) bool { return consts[i].Pos() < consts[j].Pos() })

	out := make([]gen.Const, len(consts))
	for i, c := range consts {
		out[i] = gen.Const{Name: c.Name(), Value: c.Val().ExactString()}
	}
	return out
}

// attachVariants moves variant structs into the union they name.
func (s *scanner) attachVariants() {
	for _, e := range s.entries {
		if e.dir.kind != dirVariant {
			continue
		}
		if err := s.attach(e); err != nil {
			s.fail(err)
			if u, ok := s.byName[e.dir.union]; ok && u.decl != nil && u.decl.Kind == gen.DeclUnion {
				// a union with a broken variant would silently lose a case
				u.decl = nil
			}
		}
	}
}

func (s *scanner) attach(e *entry) error {
	pos := s.position(e.spec.Name.Pos())
	invalid := func(format string, args ...any) error {
		return errors.New(errors.PhaseGenerate, errors.KindInvalidDirective).
			Pos(e.dir.pos).
			GoType(e.obj.Name()).
			Detail(format, args...).
			Build()
	}

	u, ok := s.byName[e.dir.union]
	if !ok || u.dir.kind != dirType {
		return invalid("variant of unknown union %s", e.dir.union)
	}
	if u.decl == nil {
		// the union already failed and has been reported
		return nil
	}
	if u.decl.Kind != gen.DeclUnion {
		return invalid("%s is not an interface type", e.dir.union)
	}
	st, ok := e.obj.Type().Underlying().(*types.Struct)
	if !ok {
		return errors.UnsupportedShape(pos, e.obj.Name(), "union variants must be struct types")
	}

	iface := u.obj.Type().Underlying().(*types.Interface)
	v := gen.Variant{
		Name:         e.obj.Name(),
		Discriminant: e.dir.disc,
		Pos:          pos,
	}
	switch {
	case types.Implements(e.obj.Type(), iface):
	case types.Implements(types.NewPointer(e.obj.Type()), iface):
		v.Pointer = true
	default:
		return invalid("%s does not implement %s", e.obj.Name(), e.dir.union)
	}

	s.cur = u
	defer func() { s.cur = nil }()
	fields, err := s.structFields(st, e.obj.Name())
	if err != nil {
		return err
	}
	v.Fields = fields
	u.decl.Variants = append(u.decl.Variants, v)
	return nil
}

func sortedImports(m map[string]gen.Import) []gen.Import {
	if len(m) == 0 {
		return nil
	}
	out := make([]gen.Import, 0, len(m))
	for _, imp := range m {
		out = append(out, imp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
