package errors

import (
	"errors"
	"go/token"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseGenerate,
				Kind:   KindRedundantOverride,
				Pos:    token.Position{Filename: "msg.go", Line: 12, Column: 2},
				Path:   []string{"Header", "Flags"},
				GoType: "uint16",
				Detail: "repeats the type default",
			},
			contains: []string{"msg.go:12:2", "[generate]", "redundant_override", "Header.Flags", "uint16", "repeats the type default"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindInvalidBool,
			},
			contains: []string{"[decode]", "invalid_bool"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindNotFound,
				Detail: "load package",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[load]", "not_found", "load package", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_NoPositionPrefix(t *testing.T) {
	err := &Error{Phase: PhaseDecode, Kind: KindInvalidData}
	if got := err.Error(); !strings.HasPrefix(got, "[decode]") {
		t.Errorf("Error() = %q, want prefix [decode]", got)
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseGenerate,
		Kind:  KindMissingRepr,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseGenerate, Kind: KindMissingRepr}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindMissingRepr}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseGenerate, Kind: KindNonIntegerRepr}) {
		t.Error("Is should not match different kind")
	}
	if !err.Is(&Error{Kind: KindMissingRepr}) {
		t.Error("Is should treat empty phase as wildcard")
	}
	if !err.Is(&Error{Phase: PhaseGenerate}) {
		t.Error("Is should treat empty kind as wildcard")
	}
	if !errors.Is(err, &Error{Phase: PhaseGenerate, Kind: KindMissingRepr}) {
		t.Error("errors.Is should match")
	}
	if err.Is(errors.New("plain")) {
		t.Error("Is should not match non-structured errors")
	}
}

func TestError_IsInvalidDataFamily(t *testing.T) {
	target := &Error{Kind: KindInvalidData}
	for _, kind := range []Kind{KindInvalidData, KindInvalidVariant, KindInvalidBool, KindPayload} {
		err := &Error{Phase: PhaseDecode, Kind: kind}
		if !errors.Is(err, target) {
			t.Errorf("%s should match the invalid data target", kind)
		}
	}
	for _, kind := range []Kind{KindConflictingImpl, KindRedundantOverride, KindNotFound} {
		err := &Error{Phase: PhaseDecode, Kind: kind}
		if errors.Is(err, target) {
			t.Errorf("%s should not match the invalid data target", kind)
		}
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	pos := token.Position{Filename: "a.go", Line: 3, Column: 1}
	err := New(PhaseGenerate, KindUnsupportedType).
		Path("Frame", "body").
		GoType("[]byte").
		Pos(pos).
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "fixed", "slice").
		Build()

	if err.Phase != PhaseGenerate {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseGenerate)
	}
	if err.Kind != KindUnsupportedType {
		t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupportedType)
	}
	if len(err.Path) != 2 || err.Path[0] != "Frame" || err.Path[1] != "body" {
		t.Errorf("Path = %v, want [Frame body]", err.Path)
	}
	if err.GoType != "[]byte" {
		t.Errorf("GoType = %v, want '[]byte'", err.GoType)
	}
	if err.Pos != pos {
		t.Errorf("Pos = %v, want %v", err.Pos, pos)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected fixed, got slice" {
		t.Errorf("Detail = %v, want 'expected fixed, got slice'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	pos := token.Position{Filename: "x.go", Line: 1, Column: 1}

	tests := []struct {
		name  string
		err   *Error
		phase Phase
		kind  Kind
	}{
		{"MissingDefaultEndian", MissingDefaultEndian(pos, "T"), PhaseGenerate, KindMissingDefaultEndian},
		{"RedundantOverride", RedundantOverride(pos, []string{"T", "f"}, "big"), PhaseGenerate, KindRedundantOverride},
		{"UnknownEndianSpelling", UnknownEndianSpelling(pos, "middle"), PhaseGenerate, KindUnknownEndianSpelling},
		{"MissingRepr", MissingRepr(pos, "U"), PhaseGenerate, KindMissingRepr},
		{"NonIntegerRepr", NonIntegerRepr(pos, "U", "float32"), PhaseGenerate, KindNonIntegerRepr},
		{"MissingDiscriminant", MissingDiscriminant(pos, "U", "A"), PhaseGenerate, KindMissingDiscriminant},
		{"UnsupportedShape", UnsupportedShape(pos, "T", "channel"), PhaseGenerate, KindUnsupportedShape},
		{"UnsupportedType", UnsupportedType(pos, []string{"T", "f"}, "string"), PhaseGenerate, KindUnsupportedType},
		{"InvalidDiscriminant", InvalidDiscriminant(PhaseDecode, "U", uint32(0)), PhaseDecode, KindInvalidVariant},
		{"InvalidBool", InvalidBool(2), PhaseDecode, KindInvalidBool},
		{"PayloadMismatch", PayloadMismatch([]byte{1}, []byte{2}), PhaseDecode, KindPayload},
		{"InvalidData", InvalidData(PhaseDecode, []string{"T"}, "trailing"), PhaseDecode, KindInvalidData},
		{"NotFound", NotFound(PhaseLoad, "type", "T"), PhaseLoad, KindNotFound},
		{"InvalidInput", InvalidInput(PhaseConfig, "bad"), PhaseConfig, KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("Phase = %v, want %v", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
		})
	}

	t.Run("RedundantOverride carries position", func(t *testing.T) {
		err := RedundantOverride(pos, []string{"T", "f"}, "big")
		if err.Pos != pos {
			t.Errorf("Pos = %v, want %v", err.Pos, pos)
		}
		if !strings.Contains(err.Error(), "x.go:1:1") {
			t.Errorf("message %q should include position", err.Error())
		}
	})

	t.Run("InvalidBool detail", func(t *testing.T) {
		err := InvalidBool(0xfe)
		if !strings.Contains(err.Detail, "0xfe") {
			t.Errorf("Detail = %q, should contain byte", err.Detail)
		}
	})
}

func TestList(t *testing.T) {
	var empty List
	if empty.Err() != nil {
		t.Error("empty list should produce nil error")
	}

	a := MissingRepr(token.Position{}, "A")
	b := MissingDefaultEndian(token.Position{}, "B")
	list := List{a, b}

	err := list.Err()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "2 errors") {
		t.Errorf("message %q should count errors", err.Error())
	}
	if !errors.Is(err, &Error{Kind: KindMissingDefaultEndian}) {
		t.Error("errors.Is should see through the list")
	}

	var target *Error
	if !errors.As(err, &target) || target.Kind != KindMissingRepr {
		t.Errorf("errors.As should find first error, got %v", target)
	}

	single := List{a}
	if single.Error() != a.Error() {
		t.Errorf("single list message = %q, want %q", single.Error(), a.Error())
	}
}
