package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := New(ErrCodeInvalidLayer, "unknown layer: %s", "WG2")
	want := "INVALID_LAYER: unknown layer: WG2"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeStore, cause, "failed to persist record")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause with errors.Is")
	}
	if !Is(err, ErrCodeStore) {
		t.Error("Is should match the error code")
	}
	if Is(err, ErrCodeCache) {
		t.Error("Is should not match a different code")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeRouteImpossible, "ports face away")
	outer := fmt.Errorf("routing bundle: %w", inner)

	if !Is(outer, ErrCodeRouteImpossible) {
		t.Error("Is should unwrap fmt-wrapped errors")
	}
	if GetCode(outer) != ErrCodeRouteImpossible {
		t.Errorf("GetCode = %q", GetCode(outer))
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodePortNotFound, "no port o3 on mzi_1")
	if got := UserMessage(err); got != "no port o3 on mzi_1" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := stderrors.New("plain")
	if got := UserMessage(plain); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestGetCodeNonStructured(t *testing.T) {
	if code := GetCode(stderrors.New("x")); code != "" {
		t.Errorf("GetCode = %q, want empty", code)
	}
}

func TestValidateCellName(t *testing.T) {
	valid := []string{"straight", "bend_euler", "mzi_dl10.5", "ring$2", "Taper-1"}
	for _, name := range valid {
		if err := ValidateCellName(name); err != nil {
			t.Errorf("ValidateCellName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "1bad", "a/b", "a\\b", "a b"}
	for _, name := range invalid {
		if err := ValidateCellName(name); err == nil {
			t.Errorf("ValidateCellName(%q) = nil, want error", name)
		}
	}
}

func TestValidatePortName(t *testing.T) {
	if err := ValidatePortName("o1"); err != nil {
		t.Errorf("ValidatePortName(o1) = %v", err)
	}
	if err := ValidatePortName("9x"); err == nil {
		t.Error("ValidatePortName(9x) should fail")
	}
}

func TestValidateLayer(t *testing.T) {
	if err := ValidateLayer(1, 0); err != nil {
		t.Errorf("ValidateLayer(1,0) = %v", err)
	}
	if err := ValidateLayer(-1, 0); err == nil {
		t.Error("negative layer should fail")
	}
	if err := ValidateLayer(1, 70000); err == nil {
		t.Error("oversized datatype should fail")
	}
}
