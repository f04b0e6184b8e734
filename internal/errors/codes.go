package errors

import "net/http"

// Code classifies an error for callers and transports
type Code string

// Error codes
const (
	CodeOK                  Code = "OK"
	CodeInvalidArgument     Code = "INVALID_ARGUMENT"
	CodeMalformedExpression Code = "MALFORMED_EXPRESSION"
	CodeNotFound            Code = "NOT_FOUND"
	CodeAlreadyExists       Code = "ALREADY_EXISTS"
	CodeFailedPrecondition  Code = "FAILED_PRECONDITION"
	CodeAborted             Code = "ABORTED"
	CodeUnimplemented       Code = "UNIMPLEMENTED"
	CodeInternal            Code = "INTERNAL"
	CodeUnavailable         Code = "UNAVAILABLE"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// HTTPStatus returns the corresponding HTTP status code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeOK:
		return http.StatusOK
	case CodeInvalidArgument, CodeMalformedExpression:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists, CodeAborted:
		return http.StatusConflict
	case CodeFailedPrecondition:
		return http.StatusPreconditionFailed
	case CodeUnimplemented:
		return http.StatusNotImplemented
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
