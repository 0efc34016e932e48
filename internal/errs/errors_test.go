package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	assert.Equal(t, "[not_found] bucket does not exist", New(ErrKindNotFound, "bucket does not exist").Error())

	cause := errors.New("dial tcp: refused")
	assert.Equal(t,
		"[connection_failed] ping failed: dial tcp: refused",
		Wrap(ErrKindConnectionFailed, "ping failed", cause).Error(),
	)
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{"not found", New(ErrKindNotFound, "x"), IsNotFound},
		{"conflict", New(ErrKindConflict, "x"), IsConflict},
		{"timeout", New(ErrKindTimeout, "x"), IsTimeout},
		{"connection", New(ErrKindConnectionFailed, "x"), IsConnectionFailed},
		{"query", New(ErrKindQueryFailed, "x"), IsQueryFailed},
		{"invalid input", New(ErrKindInvalidInput, "x"), IsInvalidInput},
		{"permission", New(ErrKindPermissionDenied, "x"), IsPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.pred(tt.err))
			assert.True(t, tt.pred(fmt.Errorf("wrapped: %w", tt.err)))
			assert.False(t, tt.pred(errors.New("plain")))
		})
	}
}

func TestKindOf_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ErrKindQueryFailed, "insert failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrKindQueryFailed, KindOf(err))
	assert.Equal(t, ErrKindUnknown, KindOf(cause))
	assert.Equal(t, ErrKindUnknown, KindOf(nil))
	assert.Equal(t, "conflict", ErrKindConflict.String())
	assert.Equal(t, "unknown", ErrKind(99).String())
}
