package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrAlreadyExists    = errors.New("resource already exists")
	ErrInvalidInput     = errors.New("invalid input")
	ErrBadRequest       = errors.New("bad request")
	ErrUnsupportedChain = errors.New("unsupported chain")
	ErrWalletInactive   = errors.New("wallet is not active")
	ErrChainUnavailable = errors.New("chain unavailable")
	ErrInvalidRule      = errors.New("invalid alert rule")
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, "NOT_FOUND", message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "BAD_REQUEST", message, ErrInvalidInput)
}

func UnsupportedChain(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "UNSUPPORTED_CHAIN", message, ErrUnsupportedChain)
}

func ChainUnavailable(message string) *AppError {
	return NewAppError(http.StatusServiceUnavailable, "CHAIN_UNAVAILABLE", message, ErrChainUnavailable)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "INTERNAL", "internal server error", err)
}
