package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeValidator map[string]string

func (f fakeValidator) Validate(raw string) (string, error) {
	if username, ok := f[raw]; ok {
		return username, nil
	}
	return "", errors.New("bad token")
}

func TestAuth(t *testing.T) {
	var seen string
	handler := Auth(fakeValidator{"good": "alice"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UsernameFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		header string
		status int
		body   string
	}{
		{"", http.StatusUnauthorized, `{"detail":"Not authenticated"}`},
		{"Basic good", http.StatusUnauthorized, `{"detail":"Not authenticated"}`},
		{"Bearer", http.StatusUnauthorized, `{"detail":"Not authenticated"}`},
		{"Bearer wrong", http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`},
		{"bearer good", http.StatusNoContent, ""},
	}
	for _, tc := range cases {
		seen = ""
		req := httptest.NewRequest(http.MethodGet, "/trips", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, tc.status, rec.Code, "header %q", tc.header)
		if tc.body != "" {
			require.JSONEq(t, tc.body, rec.Body.String())
			require.Empty(t, seen)
		} else {
			require.Equal(t, "alice", seen)
		}
	}
}

func TestRecoveryAndLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	handler := Logging(logger)(Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trips", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"detail":"Internal Server Error"}`, rec.Body.String())
	require.Equal(t, 1, logs.FilterMessage("handler panic").Len())

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	require.EqualValues(t, http.StatusInternalServerError, entries[0].ContextMap()["status"])
}
