package handler

import (
	"errors"
	"net/http"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/httpapi/dto"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/httpapi/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct {
	Logger *zap.Logger
}

// Success sends a 200 response with the standard envelope.
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with pagination meta.
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 response.
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// BadRequest sends a 400 validation error.
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(domain.CodeValidation, message))
}

// HandleError maps a domain error to its HTTP status; anything that is not
// a domain error is logged and reported as an opaque internal error.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		c.JSON(dto.GetHTTPStatus(domainErr.Code), dto.NewErrorResponse(domainErr.Code, domainErr.Message))
		return
	}

	if h.Logger != nil {
		h.Logger.Error("unhandled error",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err))
	}

	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(domain.CodeInternal, "Internal server error"))
}

// userID extracts the authenticated user's ID, aborting with 401 when the
// authentication middleware did not run.
func (h *BaseHandler) userID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse(domain.CodeUnauthorized, "Authentication required"))
		return uuid.Nil, false
	}

	return userID, true
}

// parseID parses a UUID path parameter.
func (h *BaseHandler) parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		h.BadRequest(c, "Invalid "+param)
		return uuid.Nil, false
	}

	return id, true
}
