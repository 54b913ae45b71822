package rpc

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrLinkClosed  = errors.New("rpc link closed")
	ErrBadResponse = errors.New("malformed rpc response")
)

// Code is the symbolic error code carried in [ErrorData].
type Code string

const (
	CodeParseError         Code = "PARSE_ERROR"
	CodeBadRequest         Code = "BAD_REQUEST"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeMethodNotSupported Code = "METHOD_NOT_SUPPORTED"
	CodeTimeout            Code = "TIMEOUT"
	CodeInternalError      Code = "INTERNAL_SERVER_ERROR"
)

type codeInfo struct {
	number     int
	httpStatus int
}

var codes = map[Code]codeInfo{
	CodeParseError:         {number: -32700, httpStatus: http.StatusBadRequest},
	CodeBadRequest:         {number: -32600, httpStatus: http.StatusBadRequest},
	CodeUnauthorized:       {number: -32001, httpStatus: http.StatusUnauthorized},
	CodeNotFound:           {number: -32004, httpStatus: http.StatusNotFound},
	CodeMethodNotSupported: {number: -32005, httpStatus: http.StatusMethodNotAllowed},
	CodeTimeout:            {number: -32008, httpStatus: http.StatusRequestTimeout},
	CodeInternalError:      {number: -32603, httpStatus: http.StatusInternalServerError},
}

// HTTPStatus returns the status code a response carrying only this error
// gets. Unknown codes map to 500.
func (c Code) HTTPStatus() int {
	if info, ok := codes[c]; ok {
		return info.httpStatus
	}
	return http.StatusInternalServerError
}

// Number returns the JSON-RPC style numeric code.
func (c Code) Number() int {
	if info, ok := codes[c]; ok {
		return info.number
	}
	return codes[CodeInternalError].number
}

// Error is a procedure failure as seen on the wire.
type Error struct {
	Message string    `json:"message"`
	Number  int       `json:"code"`
	Data    ErrorData `json:"data"`
}

// ErrorData carries the symbolic code and the failing procedure path.
type ErrorData struct {
	Code       Code   `json:"code"`
	HTTPStatus int    `json:"httpStatus"`
	Path       string `json:"path,omitempty"`
}

// NewError builds an [*Error] for code.
func NewError(code Code, message string) *Error {
	return &Error{
		Message: message,
		Number:  code.Number(),
		Data:    ErrorData{Code: code, HTTPStatus: code.HTTPStatus()},
	}
}

// Errorf builds an [*Error] for code with a formatted message.
func Errorf(code Code, format string, args ...any) *Error {
	return NewError(code, fmt.Sprintf(format, args...))
}

func (e *Error) Error() string {
	if e.Data.Path != "" {
		return fmt.Sprintf("rpc %s: %s: %s", e.Data.Path, e.Data.Code, e.Message)
	}
	return fmt.Sprintf("rpc: %s: %s", e.Data.Code, e.Message)
}

// Is matches another [*Error] by code so callers can write
// errors.Is(err, rpc.NewError(rpc.CodeNotFound, "")).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Data.Code == e.Data.Code
}

// CodeOf returns the code of the first [*Error] in err's chain, or
// [CodeInternalError].
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Data.Code
	}
	return CodeInternalError
}
