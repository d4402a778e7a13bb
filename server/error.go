package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/goccy/temporalconv/converter"
	"github.com/goccy/temporalconv/internal/logger"
)

type ServerError struct {
	Status    int         `json:"-"`
	Reason    ErrorReason `json:"reason"`
	Location  string      `json:"location"`
	DebugInfo string      `json:"debugInfo"`
	Message   string      `json:"message"`
}

type ResponseError struct {
	Error *ErrorFormat `json:"error"`
}

type ErrorFormat struct {
	Errors  []*ServerError `json:"errors"`
	Code    int            `json:"code"`
	Message string         `json:"message"`
}

func (e *ServerError) Response() []byte {
	b, _ := json.Marshal(&ResponseError{
		Error: &ErrorFormat{
			Errors:  []*ServerError{e},
			Code:    e.Status,
			Message: e.Message,
		},
	})
	return b
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

// GRPCStatus lets status.FromError and status.Code read the error.
func (e *ServerError) GRPCStatus() *status.Status {
	var code codes.Code
	switch e.Reason {
	case Invalid, InvalidInput:
		code = codes.InvalidArgument
	case NotFound:
		code = codes.NotFound
	default:
		code = codes.Internal
	}
	return status.New(code, e.Error())
}

type ErrorReason string

const (
	InternalError ErrorReason = "internalError"
	Invalid       ErrorReason = "invalid"
	InvalidInput  ErrorReason = "invalidInput"
	NotFound      ErrorReason = "notFound"
)

func errInternalError(msg string) *ServerError {
	return &ServerError{
		Status:  http.StatusInternalServerError,
		Reason:  InternalError,
		Message: msg,
	}
}

func errInvalid(msg string) *ServerError {
	return &ServerError{
		Status:  http.StatusBadRequest,
		Reason:  Invalid,
		Message: msg,
	}
}

// errInvalidInput reports input rejected by every pattern. Location
// carries the converter scope and Message the message bundle key.
func errInvalidInput(e *converter.ValidationError) *ServerError {
	return &ServerError{
		Status:    http.StatusUnprocessableEntity,
		Reason:    InvalidInput,
		Location:  e.Scope,
		DebugInfo: e.Input,
		Message:   e.MessageKey(),
	}
}

func errNotFound(msg string) *ServerError {
	return &ServerError{
		Status:  http.StatusNotFound,
		Reason:  NotFound,
		Message: msg,
	}
}

func errorResponse(ctx context.Context, w http.ResponseWriter, e *ServerError) {
	logger.Logger(ctx).WithOptions(zap.AddCallerSkip(1)).Debug(
		"error response",
		zap.String("reason", string(e.Reason)),
		zap.String("message", e.Message),
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	w.Write(e.Response())
}
