package journal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Method is an HTTP verb the journal API uses.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodDelete Method = http.MethodDelete
	MethodPatch  Method = http.MethodPatch
)

func (m Method) valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch:
		return true
	}
	return false
}

// Header names and values of the default header policy.
const (
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderAuthorization = "Authorization"

	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
	AcceptAny       = "*/*"
)

// BuildRequest constructs the transport request for endpoint. Headers are
// stored with their keys exactly as given. body is attached whenever it is
// non-nil, whatever the method. The only failure is an endpoint that is not
// an absolute URL (or an unknown method), reported as *NetworkError.
func BuildRequest(ctx context.Context, endpoint string, method Method, headers map[string]string, body []byte) (*http.Request, error) {
	if !method.valid() {
		return nil, networkError(fmt.Errorf("unsupported method %q", method))
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, networkError(fmt.Errorf("invalid url %q: %w", endpoint, err))
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return nil, networkError(fmt.Errorf("invalid url %q: not absolute", endpoint))
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, string(method), parsed.String(), reader)
	if err != nil {
		return nil, networkError(err)
	}
	for k, v := range headers {
		req.Header[k] = []string{v}
	}
	return req, nil
}

// defaultHeaders returns the JSON header set, with a bearer credential when
// accessToken is non-empty.
func defaultHeaders(accessToken string) map[string]string {
	headers := map[string]string{
		HeaderContentType: ContentTypeJSON,
		HeaderAccept:      ContentTypeJSON,
	}
	if accessToken != "" {
		headers[HeaderAuthorization] = "Bearer " + accessToken
	}
	return headers
}

// formPair is one key=value entry of a form body.
type formPair struct {
	Key, Value string
}

// encodeForm joins pairs as key=value with '&', in the given order. Keys and
// values keep only RFC 3986 unreserved characters; everything else is
// percent-encoded, including spaces (%20).
func encodeForm(pairs ...formPair) []byte {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, escapeQueryComponent(p.Key)+"="+escapeQueryComponent(p.Value))
	}
	return []byte(strings.Join(parts, "&"))
}

func escapeQueryComponent(s string) string {
	// QueryEscape leaves only unreserved characters and turns ' ' into '+';
	// a literal '+' is already %2B, so the swap is unambiguous.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
