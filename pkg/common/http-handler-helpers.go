package common

import (
	"errors"
	"net/http"

	"github.com/matst80/listing-filters/pkg/common/jsoncompat"
	"github.com/matst80/listing-filters/pkg/logger"
)

// HttpError carries the status a handler error should be answered with.
type HttpError struct {
	Status int
	Err    error
}

func (e *HttpError) Error() string {
	return e.Err.Error()
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func NewHttpError(status int, err error) error {
	return &HttpError{Status: status, Err: err}
}

type errorResponse struct {
	Error string `json:"error"`
}

// JsonHandler writes the value returned by fn as JSON. Errors are logged and
// answered with their HttpError status, or 500.
func JsonHandler(log logger.Logger, fn func(w http.ResponseWriter, r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		data, err := fn(w, r)
		if err != nil {
			status := http.StatusInternalServerError
			var httpErr *HttpError
			if errors.As(err, &httpErr) {
				status = httpErr.Status
			}
			fields := logger.Fields{"method": r.Method, "path": r.URL.Path, "status": status}
			if status >= http.StatusInternalServerError {
				log.WithError(err).Error("error handling request", fields)
			} else {
				log.WithError(err).Debug("rejected request", fields)
			}
			w.WriteHeader(status)
			_ = jsoncompat.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
			return
		}
		if data == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err = jsoncompat.NewEncoder(w).Encode(data); err != nil {
			log.WithError(err).Error("error writing response", logger.Fields{"path": r.URL.Path})
		}
	}
}

// DecodeJson reads the request body into v, answering 400 when it is not
// valid JSON.
func DecodeJson(r *http.Request, v any) error {
	if err := jsoncompat.NewDecoder(r.Body).Decode(v); err != nil {
		return NewHttpError(http.StatusBadRequest, err)
	}
	return nil
}
