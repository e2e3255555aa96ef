package journal

import (
	"encoding/json"
	"fmt"
)

type errorResponse struct {
	Detail *string `json:"detail"`
}

// InterpretResponse classifies a response by status. 2xx and 3xx pass the
// body through untouched, 4xx becomes *InvalidInputError carrying the
// server's detail when the body has one, 5xx becomes *ServerError, and
// anything else is a *NetworkError.
func InterpretResponse(status int, body []byte) ([]byte, error) {
	switch {
	case status >= 200 && status <= 399:
		return body, nil
	case status >= 400 && status <= 499:
		var payload errorResponse
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, &InvalidInputError{Status: status}
		}
		return nil, &InvalidInputError{Status: status, Detail: payload.Detail}
	case status >= 500 && status <= 599:
		return nil, &ServerError{Code: status}
	default:
		return nil, networkError(fmt.Errorf("unexpected status %d", status))
	}
}
