package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the envelope every API handler renders. Success carries
// Data, failures carry Error plus an optional human Message.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func Ok(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

func Error(msg string) Response {
	return Response{
		Success: false,
		Error:   msg,
	}
}

// Fail reports a machine-readable error code with a human message.
func Fail(code, msg string) Response {
	return Response{
		Success: false,
		Error:   code,
		Message: msg,
	}
}

// ValidationError flattens validator failures into one message.
func ValidationError(errs validator.ValidationErrors) Response {
	var msgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", err.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s is not a valid email", err.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field %s is too long", err.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}

	return Response{
		Success: false,
		Error:   "validation failed",
		Message: strings.Join(msgs, "; "),
	}
}
