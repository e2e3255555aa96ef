package journal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInterpretResponsePassesSuccessBodies(t *testing.T) {
	body := []byte(`{"id":1}`)
	for status := 200; status <= 399; status++ {
		out, err := InterpretResponse(status, body)
		require.NoError(t, err, "status %d", status)
		require.Equal(t, body, out)
	}
}

func TestInterpretResponseClientErrors(t *testing.T) {
	for status := 400; status <= 499; status++ {
		_, err := InterpretResponse(status, []byte(`{"detail":"Not authenticated"}`))
		var invalid *InvalidInputError
		require.True(t, errors.As(err, &invalid), "status %d", status)
		require.Equal(t, status, invalid.Status)
		require.Equal(t, "Not authenticated", *invalid.Detail)
	}

	for _, body := range []string{"", "<html>bad gateway</html>", `{"detail":[{"msg":"field required"}]}`, `{"error":"x"}`} {
		_, err := InterpretResponse(422, []byte(body))
		var invalid *InvalidInputError
		require.True(t, errors.As(err, &invalid), "body %q", body)
		require.Nil(t, invalid.Detail, "body %q", body)
	}
}

func TestInterpretResponseServerErrors(t *testing.T) {
	for status := 500; status <= 599; status++ {
		_, err := InterpretResponse(status, []byte(`{"detail":"ignored"}`))
		var server *ServerError
		require.True(t, errors.As(err, &server), "status %d", status)
		require.Equal(t, status, server.Code)
	}
}

func TestInterpretResponseOtherStatusesAreNetworkErrors(t *testing.T) {
	for _, status := range []int{0, 100, 101, 199, 600, 999, -1} {
		_, err := InterpretResponse(status, nil)
		require.ErrorIs(t, err, ErrNetwork, "status %d", status)
	}
}
