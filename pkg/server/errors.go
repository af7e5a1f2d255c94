package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/matzehuels/inspectreport/pkg/archive"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

type errorBody struct {
	Error     errorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

type errorDetail struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

// StatusFor maps an error to an HTTP status. Input problems are checked
// before generation failures so an invalid record wrapped as a failed
// generation is still a client error.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, archive.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, archive.ErrInvalidID):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrCodeInvalidInput), errs.Is(err, errs.ErrCodeInvalidRecord),
		errs.Is(err, errs.ErrCodeInvalidFormat), errs.Is(err, errs.ErrCodeInvalidPath):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrCodeNotFound), errs.Is(err, errs.ErrCodeFileNotFound), errs.Is(err, errs.ErrCodeReportNotFound):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrCodeUnsupported):
		return http.StatusNotImplemented
	case errs.Is(err, errs.ErrCodeTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errs.Is(err, errs.ErrCodeLayoutOverflow):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// codeFor picks the most specific code for the response body.
func codeFor(err error, status int) errs.Code {
	for _, c := range []errs.Code{
		errs.ErrCodeInvalidRecord, errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidInput,
		errs.ErrCodeLayoutOverflow, errs.ErrCodeTimeout,
	} {
		if errs.Is(err, c) {
			return c
		}
	}
	if code := errs.GetCode(err); code != "" {
		return code
	}
	switch status {
	case http.StatusNotFound:
		return errs.ErrCodeNotFound
	case http.StatusBadRequest:
		return errs.ErrCodeInvalidInput
	}
	return errs.ErrCodeInternal
}

// messageFor returns the message of the error in the chain carrying code.
func messageFor(err error, code errs.Code) string {
	for e := err; e != nil; {
		var coded *errs.Error
		if !errors.As(e, &coded) {
			break
		}
		if coded.Code == code {
			return coded.Message
		}
		e = coded.Cause
	}
	return errs.UserMessage(err)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	code := codeFor(err, status)
	body := errorBody{
		Error:     errorDetail{Code: code, Message: messageFor(err, code)},
		RequestID: RequestIDFrom(r.Context()),
	}
	if status >= 500 {
		s.logger.Error("request failed", "err", err, "request_id", body.RequestID)
		if status == http.StatusInternalServerError {
			body.Error.Message = "report generation failed"
		}
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
