package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryError(t *testing.T) {
	inner := errors.New("underlying")
	e := NewRegistryError(ErrRejected, "registry refused", 503, inner)
	require.NotNil(t, e)
	assert.Equal(t, ErrRejected, e.Code)
	assert.Equal(t, "registry refused", e.Message)
	assert.Equal(t, 503, e.StatusCode)
	assert.Same(t, inner, e.Inner)
}

func TestRegistryError_Constructors(t *testing.T) {
	assert.Equal(t, ErrConnect, NewConnectError("dial", nil).Code)
	assert.Equal(t, ErrTimeout, NewTimeoutError("slow", nil).Code)
	assert.Equal(t, ErrRejected, NewRejectedError("no", 500, nil).Code)
	notFound := NewNotFoundError("gone", nil)
	assert.Equal(t, ErrNotFound, notFound.Code)
	assert.Equal(t, 404, notFound.StatusCode)
}

func TestRegistryError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *RegistryError
		want string
	}{
		{
			name: "code_and_message",
			err:  NewConnectError("registry unreachable", nil),
			want: "connect_error registry unreachable",
		},
		{
			name: "with_status",
			err:  NewRejectedError("register refused", 500, nil),
			want: "rejected_error register refused (status 500)",
		},
		{
			name: "with_status_and_inner",
			err:  NewRejectedError("register refused", 401, errors.New("bad credentials")),
			want: "rejected_error register refused (status 401): bad credentials",
		},
		{
			name: "with_inner",
			err:  NewTimeoutError("register timed out", context.DeadlineExceeded),
			want: "timeout_error register timed out: context deadline exceeded",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestRegistryError_Unwrap(t *testing.T) {
	e := NewTimeoutError("slow", context.DeadlineExceeded)
	assert.ErrorIs(t, e, context.DeadlineExceeded)
}

func TestToRegistryError(t *testing.T) {
	t.Run("wrapped", func(t *testing.T) {
		e := NewConnectError("dial", nil)
		got := ToRegistryError(fmt.Errorf("register at http://admin: %w", e))
		require.NotNil(t, got)
		assert.Same(t, e, got)
	})
	t.Run("joined", func(t *testing.T) {
		e := NewRejectedError("no", 500, nil)
		got := ToRegistryError(errors.Join(errors.New("other"), e))
		require.NotNil(t, got)
		assert.Equal(t, ErrRejected, got.Code)
	})
	t.Run("plain", func(t *testing.T) {
		assert.Nil(t, ToRegistryError(errors.New("plain")))
		assert.Equal(t, "", ToRegistryErrorCode(errors.New("plain")))
	})
}

func TestIsRegistryErrorHelpers(t *testing.T) {
	assert.True(t, IsConnectError(NewConnectError("x", nil)))
	assert.True(t, IsTimeoutError(NewTimeoutError("x", nil)))
	assert.True(t, IsRejectedError(NewRejectedError("x", 500, nil)))
	assert.True(t, IsNotFoundError(NewNotFoundError("x", nil)))
	assert.False(t, IsNotFoundError(NewRejectedError("x", 500, nil)))
	assert.False(t, IsConnectError(nil))
}
