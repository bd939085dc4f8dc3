// Package errors provides structured error types for endiangen.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// Generation-time errors carry the source position of the offending directive,
// field or variant; runtime errors describe bytes that decode to no valid value.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseGenerate, errors.KindUnsupportedType).
//		Pos(field.Pos).
//		Path("Header", "flags").
//		GoType("map[string]int").
//		Detail("type has no fixed-width encoding").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.RedundantOverride(pos, path, "big")
//	err := errors.InvalidDiscriminant(errors.PhaseDecode, "Message", uint32(0))
//
// A target with an empty Phase or Kind acts as a wildcard in errors.Is, and the
// KindInvalidData target matches every invalid-data kind:
//
//	errors.Is(err, &errors.Error{Kind: errors.KindInvalidData})
//
// Underlying I/O errors from a sink or source are never wrapped by the runtime;
// callers test them directly against io.EOF, io.ErrUnexpectedEOF and friends.
package errors
