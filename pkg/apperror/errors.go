package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"error"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Internal cause, never sent to the client
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// HasCode reports whether err is an *AppError carrying code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// Codes exposed to clients.
const (
	CodeInvalidCredentials = "AUTH_001"
	CodeNotAuthenticated   = "AUTH_002"
	CodeInsufficientFunds  = "TRF_001"
	CodeInvalidAmount      = "TRF_002"
	CodeTransferFailed     = "TRF_003"
	CodeInternal           = "SYS_001"
	CodeBodyTooLarge       = "SYS_002"
)

// ---- Authentication (AUTH) ----

// ErrInvalidCredentials is returned for both unknown usernames and wrong passwords.
func ErrInvalidCredentials() *AppError {
	return New(CodeInvalidCredentials, "Invalid credentials", http.StatusUnauthorized)
}

func ErrNotAuthenticated() *AppError {
	return New(CodeNotAuthenticated, "Not authenticated", http.StatusUnauthorized)
}

// ---- Transfers (TRF) ----

func ErrInsufficientFunds() *AppError {
	return New(CodeInsufficientFunds, "Insufficient funds", http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return New(CodeInvalidAmount, "Invalid amount", http.StatusBadRequest)
}

// ErrTransferFailed reports a storage fault during a transfer without detail.
func ErrTransferFailed(err error) *AppError {
	return Wrap(CodeTransferFailed, "Transfer failed", http.StatusInternalServerError, err)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}

// ErrBodyTooLarge is returned when the request body exceeds the configured limit.
func ErrBodyTooLarge() *AppError {
	return New(CodeBodyTooLarge, "Request body too large", http.StatusRequestEntityTooLarge)
}

// Validation returns a TRF_002-style validation error with a custom message.
func Validation(message string) *AppError {
	return New(CodeInvalidAmount, message, http.StatusBadRequest)
}
