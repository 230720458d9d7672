// Package response is the JSON envelope every handler writes. Uploads can
// partially succeed, so the envelope carries a warning line and the failed
// file names next to the data instead of forcing an all-or-nothing status.
package response

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Response struct {
	Status      string      `json:"status"`
	Error       string      `json:"error,omitempty"`
	Message     string      `json:"message,omitempty"`
	Warning     string      `json:"warning,omitempty"`
	FailedFiles []string    `json:"failed_files,omitempty"`
	Data        interface{} `json:"data,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusError   = "error"
)

func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(data)
}

func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError flattens validator failures into one error line.
func ValidationError(errs validator.ValidationErrors) Response {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Field()+": "+err.Tag())
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(messages, "; "),
	}
}

func RequestOK(message string, data interface{}) Response {
	return Response{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	}
}

// PartialOK reports an operation that completed with some casualties: the
// data made it, but the named files did not.
func PartialOK(message, warning string, failedFiles []string, data interface{}) Response {
	return Response{
		Status:      StatusPartial,
		Message:     message,
		Warning:     warning,
		FailedFiles: failedFiles,
		Data:        data,
	}
}
