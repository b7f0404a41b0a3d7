package ig_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dehesa/finance-ig-sub001/pkg/ig"
)

func TestError_IsHelpers(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")

	tests := []struct {
		name  string
		err   *ig.Error
		check func(error) bool
	}{
		{"session expired", ig.NewSessionExpired("gone"), ig.IsSessionExpired},
		{"invalid credentials", ig.NewInvalidCredentials("none held"), ig.IsInvalidCredentials},
		{"invalid request", ig.NewInvalidRequest("bad input", cause), ig.IsInvalidRequest},
		{"call failed", ig.NewCallFailed("network", nil, nil, nil, cause), ig.IsCallFailed},
		{"invalid response", ig.NewInvalidResponse("bad body", nil, nil, nil, cause), ig.IsInvalidResponse},
		{"streamer", ig.NewStreamerError("decode failed", cause), ig.IsStreamerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.True(t, tc.check(tc.err))
		})
	}
}

func TestError_WrapsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying failure")
	err := ig.NewInvalidRequest("validation failed", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "underlying failure")
}

func TestError_WithContext(t *testing.T) {
	t.Parallel()

	err := ig.NewInvalidResponse("bad status", nil, nil, nil, nil).
		WithContext("expected", 200).
		WithContext("received", 500)

	assert.Len(t, err.Context, 2)
	assert.Equal(t, "expected", err.Context[0].Label)
}

func TestError_DistinctFromStandardError(t *testing.T) {
	t.Parallel()

	err := ig.NewSessionExpired("gone")

	var target *ig.Error

	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &target))
	assert.Equal(t, ig.ErrorKindSessionExpired, target.Kind)
}
