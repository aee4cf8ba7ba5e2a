package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

// loadFailure mimics the chain a style load builds: a document that fails
// on one field, wrapped as a parse error, wrapped again by a caller.
func loadFailure() error {
	field := &FieldError{Field: "fontSize", Reason: "expected number"}
	parse := Wrap(ErrCodeParse, field, "invalid style document")
	return fmt.Errorf("load %q: %w", "topAttr", parse)
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			"without cause",
			New(ErrCodeInvalidColor, "invalid color %q", "#zz"),
			`INVALID_COLOR: invalid color "#zz"`,
		},
		{
			"with cause",
			Wrap(ErrCodeStorage, fs.ErrPermission, "write %s", "topAttr"),
			"STORAGE_ERROR: write topAttr: permission denied",
		},
		{
			"field cause",
			Wrap(ErrCodeParse, &FieldError{Field: "rect", Reason: "missing"}, "invalid style document"),
			`PARSE_ERROR: invalid style document: field "rect": missing`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStorageErrorKeepsCause(t *testing.T) {
	err := Wrap(ErrCodeStorage, fs.ErrPermission, "write topAttr")
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("errors.Is should see the wrapped fs error")
	}
	if errors.Unwrap(err) != fs.ErrPermission {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), fs.ErrPermission)
	}
	if Is(err, ErrCodeParse) {
		t.Error("storage failure must not read as a parse error")
	}
}

func TestCodeThroughWrapping(t *testing.T) {
	err := loadFailure()

	if got := GetCode(err); got != ErrCodeParse {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeParse)
	}
	if !Is(err, ErrCodeParse) {
		t.Error("Is(PARSE_ERROR) = false through fmt wrapping")
	}

	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatal("errors.As should reach the FieldError")
	}
	if fe.Field != "fontSize" || fe.Code() != ErrCodeParse {
		t.Errorf("FieldError = %+v (code %q), want fontSize / PARSE_ERROR", fe, fe.Code())
	}
}

func TestOutermostCodeWins(t *testing.T) {
	err := Wrap(ErrCodeStorage, New(ErrCodeInvalidKey, "bad key"), "open store")
	if got := GetCode(err); got != ErrCodeStorage {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeStorage)
	}
	if Is(err, ErrCodeInvalidKey) {
		t.Error("Is only checks the outermost coded error")
	}
}

func TestUncodedErrors(t *testing.T) {
	for _, err := range []error{nil, context.Canceled, errors.New("plain")} {
		if got := GetCode(err); got != "" {
			t.Errorf("GetCode(%v) = %q, want empty", err, got)
		}
		if Is(err, ErrCodeInternal) {
			t.Errorf("Is(%v, INTERNAL_ERROR) = true", err)
		}
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{New(ErrCodeTooLarge, "style document exceeds %d bytes", 1<<20), "style document exceeds 1048576 bytes"},
		{loadFailure(), "invalid style document"},
		{errors.New("connection refused"), "connection refused"},
	}
	for _, tt := range tests {
		if got := UserMessage(tt.err); got != tt.want {
			t.Errorf("UserMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
