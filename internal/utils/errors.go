package utils

import (
	"net/http"

	"github.com/google/uuid"
)

type AppError struct {
	StatusCode int
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewBadRequestError(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Message: message}
}

func NewInternalError(message string) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: message}
}

func NewBadGatewayError(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadGateway, Message: message}
}

// GenerateID returns a random identifier for submissions and sessions.
func GenerateID() string {
	return uuid.New().String()
}
