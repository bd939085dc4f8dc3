package endian

import (
	"fmt"

	"github.com/wippyai/endiangen/errors"
)

// ErrInvalidData matches every error produced when bytes decode to no valid value.
var ErrInvalidData = &errors.Error{Kind: errors.KindInvalidData}

// UnknownDiscriminant reports a decoded discriminant that matches no variant of typeName.
func UnknownDiscriminant(typeName string, disc any) error {
	return errors.InvalidDiscriminant(errors.PhaseDecode, typeName, disc)
}

// UnknownVariant reports a value that cannot be encoded as any variant of typeName:
// a nil union, a foreign implementation of the union interface, or an enum value
// outside its declared constants.
func UnknownVariant(typeName string, v any) error {
	detail := fmt.Sprintf("%T is not a variant", v)
	if v == nil {
		detail = "nil value"
	}
	return errors.New(errors.PhaseEncode, errors.KindInvalidVariant).
		GoType(typeName).
		Detail("%s", detail).
		Value(v).
		Build()
}
