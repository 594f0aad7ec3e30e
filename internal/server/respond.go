package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/at-ishikawa/imjang/internal/apperr"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind               apperr.Kind `json:"kind"`
	Message            string      `json:"message"`
	MissingQuestionIDs []string    `json:"missing_question_ids,omitempty"`
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindTooManyRequests:
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to write a response", "error", err)
	}
}

// writeError renders err with the status of its kind. Unclassified errors are logged and hidden.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	detail := errorDetail{Kind: apperr.KindInternal, Message: "internal server error"}
	if e, ok := apperr.As(err); ok {
		detail = errorDetail{Kind: e.Kind, Message: e.Message, MissingQuestionIDs: e.MissingQuestionIDs}
	} else {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeJSON(w, statusOf(detail.Kind), errorBody{Error: detail})
}

// decodeJSON reads the request body into dst and validates it.
func (s *Server) decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("request body is required")
		}
		return apperr.Validation("request body is not valid JSON: %v", err)
	}
	if err := s.validator.Struct(dst); err != nil {
		return err
	}
	return nil
}

func pathValue(r *http.Request, name string) (string, error) {
	value := r.PathValue(name)
	if value == "" {
		return "", apperr.Validation("%s is required", name)
	}
	return value, nil
}
