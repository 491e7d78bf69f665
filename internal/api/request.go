package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/MikeSquared-Agency/Triage/internal/scoring"
)

var validate = validator.New()

// BatchRequest is the body accepted by every processing endpoint.
type BatchRequest struct {
	Tasks []scoring.Task `json:"tasks" validate:"required,min=1"`
}

// requestError is a boundary failure detected before the scoring core runs.
type requestError struct {
	status  int
	message string
	err     error
}

func (e *requestError) Error() string { return e.message }

func (e *requestError) Unwrap() error { return e.err }

// decodeBatch reads and checks the request envelope. Per-task field checks
// belong to the scoring core.
func decodeBatch(w http.ResponseWriter, r *http.Request, maxBytes int64) ([]scoring.Task, error) {
	body := r.Body
	if maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &requestError{status: http.StatusRequestEntityTooLarge, message: "Request body too large", err: err}
		}
		return nil, &requestError{status: http.StatusBadRequest, message: "Could not read request body", err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &requestError{status: http.StatusBadRequest, message: "No data provided"}
	}

	var req BatchRequest
	if err := json.Unmarshal(data, &req); err != nil {
		var fieldErr *scoring.FieldError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &fieldErr):
			return nil, &requestError{status: http.StatusBadRequest, message: "Invalid task data: " + fieldErr.Error(), err: err}
		case errors.As(err, &typeErr):
			msg := "Invalid task data: tasks must be an array of objects"
			if trimmed := bytes.TrimSpace(data); trimmed[0] != '{' {
				msg = "Invalid task data: request body must be an object with a tasks array"
			}
			return nil, &requestError{status: http.StatusBadRequest, message: msg, err: err}
		default:
			return nil, &requestError{status: http.StatusBadRequest, message: "Invalid JSON", err: err}
		}
	}

	if err := validate.Struct(req); err != nil {
		return nil, &requestError{status: http.StatusBadRequest, message: "No tasks provided", err: err}
	}
	return req.Tasks, nil
}
