package bakus

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrServerError        = errors.New("server error")
	ErrUnexpectedResponse = errors.New("unexpected response")
	ErrNotFound           = errors.New("not found")
	ErrUnknown            = errors.New("unknown error")
)

// APIError is a non-success response from the server.
type APIError struct {
	StatusCode int
	Detail     string
	Kind       error
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("API error (status %d)", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func newAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Kind: kindForStatus(resp.StatusCode)}

	bodyBytes, _ := io.ReadAll(resp.Body)
	var decoded errorResponse
	if err := json.Unmarshal(bodyBytes, &decoded); err != nil || decoded.Detail == "" {
		apiErr.Detail = string(bodyBytes)
		if apiErr.Kind == ErrUnknown {
			apiErr.Kind = ErrUnexpectedResponse
		}
		return apiErr
	}
	apiErr.Detail = decoded.Detail
	return apiErr
}

func kindForStatus(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusInternalServerError:
		return ErrServerError
	default:
		return ErrUnknown
	}
}
