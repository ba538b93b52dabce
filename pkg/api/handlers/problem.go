// Package handlers provides the HTTP handlers for the proxy API.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/registryops/eppproxy/internal/commands"
)

// Problem represents an RFC 7807 "problem details" response.
// https://tools.ietf.org/html/rfc7807
type Problem struct {
	// Type is a URI reference that identifies the problem type.
	// If not set, defaults to "about:blank".
	Type string `json:"type,omitempty"`

	// Title is a short, human-readable summary of the problem type.
	Title string `json:"title"`

	// Status is the HTTP status code for this occurrence of the problem.
	Status int `json:"status"`

	// Detail is a human-readable explanation specific to this occurrence.
	Detail string `json:"detail,omitempty"`
}

// ContentTypeProblemJSON is the Content-Type for RFC 7807 problem
// responses.
const ContentTypeProblemJSON = "application/problem+json"

// WriteProblem writes an RFC 7807 problem response.
func WriteProblem(w http.ResponseWriter, status int, title, detail string) {
	problem := &Problem{
		Type:   "about:blank",
		Title:  title,
		Status: status,
		Detail: detail,
	}

	w.Header().Set("Content-Type", ContentTypeProblemJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(problem)
}

// BadRequest writes a 400 Bad Request problem response.
func BadRequest(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusBadRequest, "Bad Request", detail)
}

// Unauthorized writes a 401 Unauthorized problem response.
func Unauthorized(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusUnauthorized, "Unauthorized", detail)
}

// NotFound writes a 404 Not Found problem response.
func NotFound(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusNotFound, "Not Found", detail)
}

// InternalServerError writes a 500 Internal Server Error problem
// response.
func InternalServerError(w http.ResponseWriter, detail string) {
	WriteProblem(w, http.StatusInternalServerError, "Internal Server Error", detail)
}

// WriteCommandError maps the command error taxonomy onto HTTP statuses:
//
//	NotReady       503  the session is reconnecting or draining
//	Unsupported    501  the registry never advertised the feature
//	Timeout        504  the response watchdog fired
//	ServerInternal 502  the registry answered with a 2500-range code
//	Err            422  validation or a caller-visible protocol error
func WriteCommandError(w http.ResponseWriter, err error) {
	var cmdErr *commands.Error
	if !errors.As(err, &cmdErr) {
		InternalServerError(w, err.Error())
		return
	}

	switch {
	case errors.Is(err, commands.ErrNotReady):
		WriteProblem(w, http.StatusServiceUnavailable, "Registry Not Ready", cmdErr.Error())
	case errors.Is(err, commands.ErrUnsupported):
		WriteProblem(w, http.StatusNotImplemented, "Not Supported By Registry", cmdErr.Error())
	case errors.Is(err, commands.ErrTimeout):
		WriteProblem(w, http.StatusGatewayTimeout, "Registry Timeout", cmdErr.Error())
	case errors.Is(err, commands.ErrServerInternal):
		WriteProblem(w, http.StatusBadGateway, "Registry Error", cmdErr.Error())
	default:
		WriteProblem(w, http.StatusUnprocessableEntity, "Command Rejected", cmdErr.Error())
	}
}
