package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/server/validate"
)

// errBadBody marks a request body that is not valid JSON for the target.
var errBadBody = errors.New("invalid request body")

// bodyError is a caller-safe description of an undecodable body. Field is
// set when the problem is a single attribute of the wrong type.
type bodyError struct {
	Field   string
	Message string
}

func (e *bodyError) Error() string { return e.Message }

func (e *bodyError) Unwrap() error { return errBadBody }

type errorResponse struct {
	Detail string                `json:"detail"`
	Errors []validate.FieldError `json:"errors,omitempty"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status code and a caller-safe body. Unexpected
// errors are logged and reported without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve validate.Errors
		be *bodyError
	)
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "Validation failed", Errors: ve})
	case errors.As(err, &be):
		resp := errorResponse{Detail: be.Message}
		if be.Field != "" {
			resp.Errors = []validate.FieldError{{Field: be.Field, Message: "invalid type"}}
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	case errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: common.Message(err, "Not found")})
	case errors.Is(err, common.ErrorConflict):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: common.Message(err, "Conflict")})
	default:
		msg := "request failed"
		if errors.Is(err, common.ErrorInternal) {
			msg = "store failure"
		}
		s.log.Error(r.Context(), msg,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"err", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Internal server error"})
	}
}

// decodeJSON reads exactly one JSON value from the request body into v.
// Decoder errors are replaced by messages that name the offending field.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return &bodyError{Message: "Request body is empty"}
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var te *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return &bodyError{Message: "Request body is empty"}
		case errors.As(err, &te) && te.Field != "":
			return &bodyError{Field: te.Field, Message: "Invalid value for field '" + te.Field + "'"}
		default:
			return &bodyError{Message: "Request body is not valid JSON"}
		}
	}
	if dec.More() {
		return &bodyError{Message: "Request body must contain a single JSON object"}
	}
	return nil
}
