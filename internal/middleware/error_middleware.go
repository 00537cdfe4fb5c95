package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clgres/resultapi/internal/app/models/dto"
	"github.com/clgres/resultapi/internal/pkg/apperrors"
	"github.com/clgres/resultapi/internal/pkg/logger"
)

// HandleAPIError maps service errors onto status codes and the {"error": ...} body.
// Not-found and validation errors carry their own message; anything else is a 500
// carrying the underlying message.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrorCodeResourceNotFound, err.Error()))
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, err.Error()))
	case errors.Is(err, apperrors.ErrUpstreamFailure):
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Document store request failed")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrorCodeDatabaseError, err.Error()))
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled request error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrorCodeInternalServer, err.Error()))
	}
}
