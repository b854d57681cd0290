// Package dto defines the wire types of the HTTP API.
package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "prd-builder-api/pkg/errors"
)

// SuccessResponse is the envelope of every successful reply. Clients
// rely on exactly these two keys.
type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ErrorResponse is the envelope of every failed reply.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Success writes a 200 with the success envelope.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: data})
}

// Created writes a 201 with the success envelope.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, SuccessResponse{Success: true, Data: data})
}

// Accepted writes a 202 with the success envelope.
func Accepted(c *gin.Context, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Success: true, Data: data})
}

// Error maps err to its HTTP status and writes the error envelope.
func Error(c *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)
	c.JSON(appErr.HTTPStatus, ErrorResponse{Success: false, Error: appErr.Message})
}

// AbortError is Error plus request abortion, for middleware.
func AbortError(c *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, ErrorResponse{Success: false, Error: appErr.Message})
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: message})
}
