package journal

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorKindsMatchSentinels(t *testing.T) {
	detail := "Not authenticated"
	cases := []struct {
		err  error
		kind error
	}{
		{&InvalidInputError{Status: 401, Detail: &detail}, ErrInvalidInput},
		{&NetworkError{Err: context.Canceled}, ErrNetwork},
		{&ServerError{Code: 503}, ErrServer},
		{&DecodingError{Context: "trip"}, ErrDecoding},
	}
	kinds := []error{ErrInvalidInput, ErrNetwork, ErrServer, ErrDecoding}
	for _, tc := range cases {
		wrapped := fmt.Errorf("op: %w", tc.err)
		for _, kind := range kinds {
			require.Equal(t, kind == tc.kind, errors.Is(wrapped, kind), "%T vs %v", tc.err, kind)
		}
	}
}

func TestNetworkErrorUnwrapsCause(t *testing.T) {
	err := networkError(context.DeadlineExceeded)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.ErrorIs(t, err, ErrNetwork)
}

func TestMessage(t *testing.T) {
	detail := "Trip not found"
	require.Equal(t, "Trip not found", Message(&InvalidInputError{Status: 404, Detail: &detail}))
	require.Equal(t, "Unknown error.", Message(&InvalidInputError{Status: 400}))
	require.Equal(t, "Unable to connect to the server. Please check your internet connection.", Message(networkError(errors.New("dial tcp"))))
	require.Equal(t, "The server encountered an error. (Code: 502)", Message(fmt.Errorf("wrapped: %w", &ServerError{Code: 502})))
	require.Equal(t, "Failed to decode token", Message(decodingError("token", errors.New("eof"))))
	require.Equal(t, "boom", Message(errors.New("boom")))
	require.Empty(t, Message(nil))
}
