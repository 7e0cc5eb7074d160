package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrNotFound:       http.StatusNotFound,
		ErrInvalidState:   http.StatusBadRequest,
		ErrNotTeamMember:  http.StatusBadRequest,
		ErrInvalidInput:   http.StatusBadRequest,
		ErrUnauthorized:   http.StatusUnauthorized,
		ErrTokenExpired:   http.StatusUnauthorized,
		ErrForbidden:      http.StatusForbidden,
		ErrAlreadyExists:  http.StatusConflict,
		ErrInternalServer: http.StatusInternalServerError,
		ErrCreateFailed:   http.StatusInternalServerError,
	}
	for code, status := range cases {
		require.Equal(t, status, NewAppError(code, "x", nil).HTTPStatus(), code)
	}
}

func TestIsCode(t *testing.T) {
	base := NewAppError(ErrNotFound, "missing", nil)
	wrapped := fmt.Errorf("lookup: %w", base)

	require.True(t, IsCode(wrapped, ErrNotFound))
	require.False(t, IsCode(wrapped, ErrInvalidState))
	require.False(t, IsCode(New("plain"), ErrNotFound))
}

func TestErrorUnwrap(t *testing.T) {
	cause := New("boom")
	err := NewAppError(ErrInternalServer, "failed", cause)

	require.ErrorIs(t, err, cause)
	require.Equal(t, "INTERNAL_SERVER_ERROR: failed: boom", err.Error())
}
