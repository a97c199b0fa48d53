package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/timeline-backend/internal/domain"
	"github.com/heartmarshall/timeline-backend/pkg/ctxutil"
)

// Error codes returned in the "code" field of an error response.
const (
	CodeValidation    = "VALIDATION"
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeBadRequest    = "BAD_REQUEST"
	CodeInternal      = "INTERNAL"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failure.
type ErrorBody struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// writeError maps err to a status and writes the error body.
// Unexpected errors are logged with the request id and hidden from the client.
func writeError(ctx context.Context, log *slog.Logger, w http.ResponseWriter, err error) {
	var (
		verr *domain.ValidationError
		derr *domain.DateError
	)

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrorBody{
			Code:    CodeValidation,
			Message: verr.Error(),
			Fields:  verr.Errors,
		}})
	case errors.As(err, &derr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrorBody{
			Code:    CodeValidation,
			Message: derr.Error(),
		}})
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrMalformedDate):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrorBody{
			Code:    CodeValidation,
			Message: err.Error(),
		}})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrorBody{
			Code:    CodeNotFound,
			Message: "not found",
		}})
	case errors.Is(err, domain.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: ErrorBody{
			Code:    CodeAlreadyExists,
			Message: alreadyExistsMessage(err),
		}})
	default:
		log.ErrorContext(ctx, "request failed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorBody{
			Code:    CodeInternal,
			Message: "internal error",
		}})
	}
}

func alreadyExistsMessage(err error) string {
	var dup *domain.DuplicateTagError
	if errors.As(err, &dup) {
		return dup.Error()
	}
	return "already exists"
}

// writeBadRequest reports a body or path that could not be decoded.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrorBody{
		Code:    CodeBadRequest,
		Message: message,
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
