package errors

import (
	"fmt"
	"go/token"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseGenerate Phase = "generate" // code generation for a type
	PhaseEncode   Phase = "encode"   // Go value to bytes
	PhaseDecode   Phase = "decode"   // bytes to Go value
	PhaseLoad     Phase = "load"     // package loading
	PhaseConfig   Phase = "config"   // generator configuration
)

// Kind categorizes the error
type Kind string

const (
	KindMissingDefaultEndian  Kind = "missing_default_endian"
	KindRedundantOverride     Kind = "redundant_override"
	KindUnknownEndianSpelling Kind = "unknown_endian_spelling"
	KindMissingRepr           Kind = "missing_repr"
	KindNonIntegerRepr        Kind = "non_integer_repr"
	KindMissingDiscriminant   Kind = "missing_discriminant"
	KindInvalidDiscriminant   Kind = "invalid_discriminant"
	KindDuplicateDiscriminant Kind = "duplicate_discriminant"
	KindUnsupportedShape      Kind = "unsupported_shape"
	KindUnsupportedType       Kind = "unsupported_type"
	KindOverrideOnComposite   Kind = "override_on_composite"
	KindConflictingImpl       Kind = "conflicting_impl"
	KindInvalidDirective      Kind = "invalid_directive"

	KindInvalidData    Kind = "invalid_data"
	KindInvalidVariant Kind = "invalid_variant"
	KindInvalidBool    Kind = "invalid_bool"
	KindPayload        Kind = "payload_mismatch"

	KindNotFound     Kind = "not_found"
	KindInvalidInput Kind = "invalid_input"
)

// Error is the structured error type used throughout the generator and runtime
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Detail string
	Path   []string
	Pos    token.Position
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Pos.IsValid() {
		b.WriteString(e.Pos.String())
		b.WriteString(": ")
	}

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" {
		b.WriteString(": type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target with an empty Phase matches any phase, and a target with an
// empty Kind matches any kind within its phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	if t.Kind == "" {
		return true
	}
	if t.Kind == KindInvalidData {
		return e.Kind.IsInvalidData()
	}
	return t.Kind == e.Kind
}

// IsInvalidData reports whether the kind belongs to the runtime
// invalid-data family: decoded bytes that map to no valid value.
func (k Kind) IsInvalidData() bool {
	switch k {
	case KindInvalidData, KindInvalidVariant, KindInvalidBool, KindPayload:
		return true
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Pos sets the source position the error refers to
func (b *Builder) Pos(pos token.Position) *Builder {
	b.err.Pos = pos
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Generation-time constructors

// MissingDefaultEndian creates an error for a type without a type-level endian directive
func MissingDefaultEndian(pos token.Position, typeName string) *Error {
	return &Error{
		Phase:  PhaseGenerate,
		Kind:   KindMissingDefaultEndian,
		Pos:    pos,
		GoType: typeName,
		Detail: "please specify default endian",
	}
}

// RedundantOverride creates an error for a field override equal to the type default
func RedundantOverride(pos token.Position, path []string, order string) *Error {
	return &Error{
		Phase:  PhaseGenerate,
		Kind:   KindRedundantOverride,
		Pos:    pos,
		Path:   path,
		Detail: fmt.Sprintf("endian %q repeats the type default", order),
		Value:  order,
	}
}

// UnknownEndianSpelling creates an error for an unrecognized endian marker
func UnknownEndianSpelling(pos token.Position, text string) *Error {
	return &Error{
		Phase:  PhaseGenerate,
		Kind:   KindUnknownEndianSpelling,
		Pos:    pos,
		Detail: fmt.Sprintf("failed to determine endian from %q", text),
		Value:  text,
	}
}

// MissingRepr creates an error for a union declared without a representation type
func MissingRepr(pos token.Position, typeName string) *Error {
	return &Error{
		Phase:  PhaseGenerate,
		Kind:   KindMissingRepr,
		Pos:    pos,
		GoType: typeName,
		Detail: "unions must declare repr=<integer type>",
	}
}

// NonIntegerRepr creates an error for a representation that is not an integer type
func NonIntegerRepr(pos token.Position, typeName, repr string) *Error {
	return &Error{
		Phase:  PhaseGenerate,
		Kind:   KindNonIntegerRepr,
		Pos:    pos,
		GoType: typeName,
		Detail: fmt.Sprintf("unsupported repr type %q", repr),
		Value:  repr,
	}
}

// MissingDiscriminant creates an error for a variant without an explicit discriminant
func MissingDiscriminant(pos token.Position, union, variant string) *Error {
	return &Error{
		Phase:  PhaseGenerate,
		Kind:   KindMissingDiscriminant,
		Pos:    pos,
		GoType: union,
		Path:   []string{variant},
		Detail: "all variants must have explicit discriminants",
	}
}

// UnsupportedShape creates an error for a type the generator cannot derive
func UnsupportedShape(pos token.Position, typeName, what string) *Error {
	return &Error{
		Phase:  PhaseGenerate,
		Kind:   KindUnsupportedShape,
		Pos:    pos,
		GoType: typeName,
		Detail: what,
	}
}

// UnsupportedType creates an error for a field type with no fixed binary layout
func UnsupportedType(pos token.Position, path []string, goType string) *Error {
	return &Error{
		Phase:  PhaseGenerate,
		Kind:   KindUnsupportedType,
		Pos:    pos,
		Path:   path,
		GoType: goType,
		Detail: "type has no fixed-width encoding",
	}
}

// Runtime constructors

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// InvalidDiscriminant creates an error for a discriminant that matches no variant
func InvalidDiscriminant(phase Phase, typeName string, disc any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidVariant,
		GoType: typeName,
		Detail: fmt.Sprintf("unknown discriminant %v", disc),
		Value:  disc,
	}
}

// InvalidBool creates an error for a boolean byte other than 0 or 1
func InvalidBool(b byte) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidBool,
		Detail: fmt.Sprintf("invalid boolean encoding 0x%02x", b),
		Value:  b,
	}
}

// PayloadMismatch creates an error for marker bytes that differ from the constant
func PayloadMismatch(want, got []byte) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindPayload,
		Detail: fmt.Sprintf("expected payload %x, got %x", want, got),
		Value:  got,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Load creates a package loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindNotFound,
		Detail: detail,
		Cause:  cause,
	}
}

// List collects independent errors, one per failed type.
type List []error

// Error joins the messages of every collected error, one per line.
func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d errors:", len(l)))
	for _, err := range l {
		b.WriteString("\n  ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (l List) Unwrap() []error {
	return l
}

// Err returns nil for an empty list and the list otherwise.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
