package spotify

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
)

// APIError is a non-2xx answer from the provider.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("spotify adapter: status %d", e.Status)
	}
	return fmt.Sprintf("spotify adapter: status %d: %s", e.Status, e.Message)
}

// Unwrap lets callers match provider failures against domain sentinels.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrNotFound
	}
	return nil
}

// Temporary reports whether the breaker should count the failure.
func (e *APIError) Temporary() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= http.StatusInternalServerError
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	// The Web API reports {"error": {"status": 401, "message": "..."}}; the
	// accounts service reports {"error": "invalid_client", "error_description": "..."}.
	var wrapped struct {
		Error json.RawMessage `json:"error"`
		Desc  string          `json:"error_description"`
	}
	if json.Unmarshal(body, &wrapped) != nil {
		return apiErr
	}
	var detail struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(wrapped.Error, &detail) == nil && detail.Message != "" {
		apiErr.Message = detail.Message
		return apiErr
	}
	var code string
	if json.Unmarshal(wrapped.Error, &code) == nil {
		apiErr.Message = code
		if wrapped.Desc != "" {
			apiErr.Message = code + ": " + wrapped.Desc
		}
	}
	return apiErr
}
