package ferrors

import (
	"errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNameConflict", ErrNameConflict},
		{"ErrCycleDetected", ErrCycleDetected},
		{"ErrInvalidArgument", ErrInvalidArgument},
		{"ErrUnsupportedMediaType", ErrUnsupportedMediaType},
		{"ErrUnauthenticated", ErrUnauthenticated},
		{"ErrForbidden", ErrForbidden},
		{"ErrNotFound", ErrNotFound},
		{"ErrQuotaExceeded", ErrQuotaExceeded},
		{"ErrBatchSizeExceeded", ErrBatchSizeExceeded},
		{"ErrBatchFileCountExceeded", ErrBatchFileCountExceeded},
		{"ErrFolderFileCountExceeded", ErrFolderFileCountExceeded},
		{"ErrInvalidLength", ErrInvalidLength},
		{"ErrInvalidPadding", ErrInvalidPadding},
		{"ErrTruncatedFrame", ErrTruncatedFrame},
		{"ErrCorruptFrame", ErrCorruptFrame},
		{"ErrIoError", ErrIoError},
		{"ErrDatabaseUnavailable", ErrDatabaseUnavailable},
		{"ErrCancelled", ErrCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Error("sentinel error should not be nil")
			}
			if tt.err.Error() == "" {
				t.Error("sentinel error should have a message")
			}
		})
	}
}

func TestOpError(t *testing.T) {
	baseErr := errors.New("disk full")
	opErr := NewOpError("blobstore.put", "file-abc123.txt", baseErr)

	if opErr.Error() != "blobstore.put file-abc123.txt: disk full" {
		t.Errorf("unexpected error message: %s", opErr.Error())
	}
	if opErr.Unwrap() != baseErr {
		t.Error("Unwrap should return underlying error")
	}

	noKey := NewOpError("namespace.emptyTrash", "", baseErr)
	if noKey.Error() != "namespace.emptyTrash: disk full" {
		t.Errorf("unexpected error message without key: %s", noKey.Error())
	}
}

func TestValidationError(t *testing.T) {
	validErr := NewValidationError("name", "must not be empty")

	expected := "validation: name: must not be empty"
	if validErr.Error() != expected {
		t.Errorf("unexpected error message: %s", validErr.Error())
	}
}

func TestIs(t *testing.T) {
	if !Is(ErrNameConflict, ErrNameConflict) {
		t.Error("Is should return true for same error")
	}

	if Is(ErrNameConflict, ErrCycleDetected) {
		t.Error("Is should return false for different errors")
	}
}

func TestAs(t *testing.T) {
	opErr := NewOpError("test.op", "key", errors.New("test"))

	var target *OpError
	if !As(opErr, &target) {
		t.Error("As should find OpError")
	}

	if target.Op != "test.op" {
		t.Errorf("unexpected Op: %s", target.Op)
	}
}

func TestWrap(t *testing.T) {
	baseErr := errors.New("base")
	wrapped := Wrap(baseErr, "context")

	if wrapped.Error() != "context: base" {
		t.Errorf("unexpected wrapped message: %s", wrapped.Error())
	}

	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestConvenienceFunctions(t *testing.T) {
	if !IsCancelled(ErrCancelled) {
		t.Error("IsCancelled should return true for ErrCancelled")
	}
	if IsCancelled(ErrForbidden) {
		t.Error("IsCancelled should return false for other errors")
	}

	if !IsCorrupt(ErrCorruptFrame) {
		t.Error("IsCorrupt should return true for ErrCorruptFrame")
	}
	if !IsCorrupt(ErrTruncatedFrame) {
		t.Error("IsCorrupt should return true for ErrTruncatedFrame")
	}
	if IsCorrupt(ErrNotFound) {
		t.Error("IsCorrupt should return false for unrelated errors")
	}
}

func TestIsClientError(t *testing.T) {
	clientErrs := []error{
		ErrNameConflict, ErrCycleDetected, ErrNotFound, ErrQuotaExceeded,
		ErrBatchSizeExceeded, ErrBatchFileCountExceeded, ErrFolderFileCountExceeded,
		ErrInvalidArgument, ErrUnsupportedMediaType,
	}
	for _, err := range clientErrs {
		if !IsClientError(err) {
			t.Errorf("IsClientError(%v) = false; want true", err)
		}
	}

	transientErrs := []error{ErrIoError, ErrDatabaseUnavailable, ErrCorruptFrame}
	for _, err := range transientErrs {
		if IsClientError(err) {
			t.Errorf("IsClientError(%v) = true; want false", err)
		}
	}
}
