package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

type codedError struct {
	err  error
	code int
}

func (e *codedError) Error() string {
	return e.err.Error()
}

func (e *codedError) Unwrap() error {
	return e.err
}

// CodedError attaches an HTTP status code to err.
func CodedError(code int, err error) error {
	return &codedError{err: err, code: code}
}

// CodedErrorf formats an error carrying an HTTP status code.
func CodedErrorf(code int, format string, args ...any) error {
	return &codedError{err: fmt.Errorf(format, args...), code: code}
}

type errorResponse struct {
	Error string `json:"error"`
}

// ParseRequest decodes the JSON request body into T.
func ParseRequest[T any](r *http.Request) (T, error) {
	var data T
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		return data, CodedError(http.StatusBadRequest, errors.New("unable to parse request body"))
	}

	return data, nil
}

// RestHandler adapts handler to an http.HandlerFunc writing JSON responses.
// Errors become {"error": ...} bodies with the status of a coded error, or
// 500 otherwise.
func RestHandler(log *zap.Logger, handler func(r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := handler(r)
		if err != nil {
			code := http.StatusInternalServerError
			msg := http.StatusText(code)

			var cerr *codedError
			if errors.As(err, &cerr) {
				code, msg = cerr.code, cerr.Error()
			}
			if code == http.StatusInternalServerError {
				log.Error("internal server error", zap.String("path", r.URL.Path), zap.Error(err))
			}

			WriteJSON(log, w, code, errorResponse{Error: msg})
			return
		}

		if res == nil {
			res = struct{}{}
		}

		WriteJSON(log, w, http.StatusOK, res)
	}
}

// WriteJSON writes data as a JSON response with the given status.
func WriteJSON(log *zap.Logger, w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("error serializing response body", zap.Error(err))
	}
}
