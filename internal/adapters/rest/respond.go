package rest

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
	"github.com/sakshi-kolawale/MoodTune/internal/core/ports"
)

const errCodeNoConfidentMatch = "NO_CONFIDENT_MATCH"

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// requestError is returned by handlers for failures they have already
// classified, such as a malformed body.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(message string) error {
	return &requestError{status: http.StatusBadRequest, message: message}
}

// handle adapts an error-returning handler to http.HandlerFunc.
func (h *Handler) handle(fn func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		var reqErr *requestError
		if errors.As(err, &reqErr) {
			writeError(w, reqErr.status, reqErr.message)
			return
		}

		status, code := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.log.Error("request failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Error(err))
		}
		writeErrorWithCode(w, status, err.Error(), code)
	}
}

// statusFor maps service and adapter errors to an HTTP status and an
// optional machine-readable code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ports.ErrNoConfidentMatch):
		return http.StatusUnprocessableEntity, errCodeNoConfidentMatch
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidMood),
		errors.Is(err, domain.ErrFeaturesUnavailable):
		return http.StatusBadRequest, ""
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ""
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ""
	case errors.Is(err, domain.ErrDuplicateISRC), errors.Is(err, domain.ErrDuplicateTrack):
		return http.StatusConflict, ""
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable, ""
	default:
		return http.StatusInternalServerError, ""
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeErrorWithCode(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

func isJSONContentType(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// decodeJSON reads a JSON request body into v. An empty body leaves v
// untouched so that every field takes its default.
func decodeJSON(r *http.Request, v any) error {
	if r.ContentLength == 0 && r.Body == http.NoBody {
		return nil
	}
	if r.Header.Get("Content-Type") != "" && !isJSONContentType(r) {
		return &requestError{status: http.StatusUnsupportedMediaType, message: "Content-Type must be application/json"}
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return badRequest("Invalid request body")
	}
	return nil
}

// bearerToken extracts the token from an "Authorization: Bearer" header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest("Invalid " + key + ": must be an integer")
	}
	return n, nil
}
