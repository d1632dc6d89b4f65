package models

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"solana-token-tracker/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Rate limiting errors
	ErrorCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"

	// Validation errors
	ErrorCodeInvalidWallet ErrorCode = "INVALID_WALLET_ADDRESS"

	// Wallet provider errors
	ErrorCodeWalletNotInstalled     ErrorCode = "WALLET_NOT_INSTALLED"
	ErrorCodeWalletConnectFailed    ErrorCode = "WALLET_CONNECT_FAILED"
	ErrorCodeWalletDisconnectFailed ErrorCode = "WALLET_DISCONNECT_FAILED"

	// Internal errors
	ErrorCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// ErrorResponse represents the standardized error response format
type ErrorResponse struct {
	Error         ErrorDetail `json:"error"`
	Timestamp     time.Time   `json:"timestamp"`
	CorrelationID string      `json:"correlation_id,omitempty"`
}

// HTTPStatusCode returns the appropriate HTTP status code for each error type
func (e ErrorCode) HTTPStatusCode() int {
	switch e {
	case ErrorCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case ErrorCodeInvalidWallet:
		return http.StatusBadRequest
	case ErrorCodeWalletNotInstalled:
		return http.StatusNotFound
	case ErrorCodeWalletConnectFailed, ErrorCodeWalletDisconnectFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// AppError represents an application error with context
type AppError struct {
	Code       ErrorCode
	Message    string
	Details    string
	Cause      error
	Context    map[string]interface{}
	StatusCode int
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: code.HTTPStatusCode(),
		Context:    make(map[string]interface{}),
	}
}

// NewAppErrorWithCause creates a new application error with underlying cause
func NewAppErrorWithCause(code ErrorCode, message string, cause error) *AppError {
	appErr := NewAppError(code, message)
	appErr.Cause = cause
	return appErr
}

// NewAppErrorWithDetails creates a new application error with details
func NewAppErrorWithDetails(code ErrorCode, message, details string) *AppError {
	appErr := NewAppError(code, message)
	appErr.Details = details
	return appErr
}

// NewInvalidWalletError reports a wallet address that failed the format check
func NewInvalidWalletError(address string) *AppError {
	return NewAppErrorWithDetails(
		ErrorCodeInvalidWallet,
		"Invalid wallet address format",
		"Wallet address: "+address,
	).WithContext("wallet_address", address)
}

// NewRateLimitError creates a rate limit error
func NewRateLimitError(details string) *AppError {
	return NewAppErrorWithDetails(ErrorCodeRateLimitExceeded, "Too many requests. Rate limit exceeded.", details)
}

// HandleError logs err and writes the JSON error envelope
func HandleError(c *gin.Context, err error, log *logger.Logger) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewAppErrorWithCause(ErrorCodeInternalError, "Internal server error", err)
	}

	appErr.WithContext("method", c.Request.Method).
		WithContext("path", c.Request.URL.Path).
		WithContext("client_ip", c.ClientIP())

	if log != nil {
		fields := []zap.Field{
			zap.String("error_code", string(appErr.Code)),
			zap.String("error_message", appErr.Message),
			zap.Any("error_context", appErr.Context),
		}
		if appErr.Cause != nil {
			fields = append(fields, zap.Error(appErr.Cause))
		}

		if appErr.StatusCode >= 500 {
			log.Error("Application error", fields...)
		} else {
			log.Warn("Client error", fields...)
		}
	}

	c.JSON(appErr.StatusCode, &ErrorResponse{
		Error: ErrorDetail{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		},
		Timestamp:     time.Now().UTC(),
		CorrelationID: logger.GetCorrelationIDFromContext(c.Request.Context()),
	})
}
