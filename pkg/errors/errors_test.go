package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"new", New(ErrCodeInvalidSpec, "columns must be positive, got %d", 0), "INVALID_SPEC: columns must be positive, got 0"},
		{"wrap", Wrap(ErrCodeInvalidConfig, errors.New("no such file"), "read preferences %s", "p.toml"), "INVALID_CONFIG: read preferences p.toml: no such file"},
		{"no args", New(ErrCodeNotFound, "unknown grid"), "NOT_FOUND: unknown grid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapChain(t *testing.T) {
	cause := errors.New("permission denied")
	err := fmt.Errorf("watch: %w", Wrap(ErrCodeInvalidConfig, cause, "read preferences"))

	if !errors.Is(err, cause) {
		t.Error("cause not reachable through the chain")
	}
	if GetCode(err) != ErrCodeInvalidConfig {
		t.Errorf("GetCode() = %q, want INVALID_CONFIG", GetCode(err))
	}
	if got := UserMessage(err); got != "read preferences" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestCodeLookup(t *testing.T) {
	nested := Wrap(ErrCodeInvalidInput, New(ErrCodeInvalidMetrics, "density"), "options")

	tests := []struct {
		name     string
		err      error
		code     Code
		wantIs   bool
		wantCode Code
	}{
		{"match", New(ErrCodeInvalidMetrics, "x"), ErrCodeInvalidMetrics, true, ErrCodeInvalidMetrics},
		{"other code", New(ErrCodeInvalidMetrics, "x"), ErrCodeInvalidSpec, false, ErrCodeInvalidMetrics},
		{"outermost wins", nested, ErrCodeInvalidInput, true, ErrCodeInvalidInput},
		{"inner code hidden", nested, ErrCodeInvalidMetrics, false, ErrCodeInvalidInput},
		{"fmt wrapped", fmt.Errorf("resolve: %w", New(ErrCodeUnsupported, "ext")), ErrCodeUnsupported, true, ErrCodeUnsupported},
		{"plain", errors.New("plain"), ErrCodeInternal, false, ""},
		{"nil", nil, ErrCodeInternal, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.wantIs {
				t.Errorf("Is(%v) = %v, want %v", tt.code, got, tt.wantIs)
			}
			if got := GetCode(tt.err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeNotFound, "unknown grid %q", "9x9")); got != `unknown grid "9x9"` {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("boom")); got != "boom" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
