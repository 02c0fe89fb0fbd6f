package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		notFound  bool
		duplicate bool
	}{
		{"nil error", nil, false, false},
		{"generic error", errors.New("some error"), false, false},
		{"ErrNotFound", ErrNotFound, true, false},
		{"ErrResultNotFound", ErrResultNotFound, true, false},
		{"wrapped ErrHomeworkNotFound", fmt.Errorf("get homework: %w", ErrHomeworkNotFound), true, false},
		{"ErrHomeworkItemNotFound", ErrHomeworkItemNotFound, true, false},
		{"ErrDuplicate", ErrDuplicate, false, true},
		{"wrapped ErrItemAlreadyDone", fmt.Errorf("mark item: %w", ErrItemAlreadyDone), false, true},
		{
			"store error around not found",
			NewStoreError("homework", "get", "no rows", ErrHomeworkNotFound),
			true, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFoundError(tt.err); got != tt.notFound {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.notFound)
			}
			if got := IsDuplicateError(tt.err); got != tt.duplicate {
				t.Errorf("IsDuplicateError() = %v, want %v", got, tt.duplicate)
			}
		})
	}
}

func TestStoreError(t *testing.T) {
	originalErr := errors.New("database connection failed")
	storeErr := NewStoreError("exercise_result", "create", "database error", originalErr)

	want := "create operation on exercise_result failed: database error: database connection failed"
	if got := storeErr.Error(); got != want {
		t.Errorf("StoreError.Error() = %v, want %v", got, want)
	}
	if !errors.Is(storeErr, originalErr) {
		t.Errorf("errors.Is() not recognizing the wrapped error")
	}

	bare := NewStoreError("homework", "get", "no access", nil)
	if got := bare.Error(); got != "get operation on homework failed: no access" {
		t.Errorf("StoreError.Error() = %v", got)
	}
}
