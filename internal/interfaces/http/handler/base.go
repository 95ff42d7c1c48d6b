package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studioerp/backend/internal/domain/shared"
	"github.com/studioerp/backend/internal/interfaces/http/dto"
	"github.com/studioerp/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getUserID extracts the authenticated user's ID from the JWT claims
func getUserID(c *gin.Context) (uuid.UUID, error) {
	idStr := middleware.GetJWTUserID(c)
	if idStr == "" {
		return uuid.Nil, shared.ErrUnauthorized
	}
	return uuid.Parse(idStr)
}

// bindID parses and validates the :id path parameter
func bindID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrCodeValidation, "Invalid id parameter"))
		return uuid.Nil, false
	}
	return id, true
}

// bindListQuery parses pagination query params into a domain filter
func bindListQuery(c *gin.Context) (shared.Filter, bool) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrCodeValidation, "Invalid query parameters"))
		return shared.Filter{}, false
	}
	filter := shared.Filter{
		Page:   q.Page,
		Limit:  q.Limit,
		Search: q.Search,
	}
	if q.Status != "" {
		filter = filter.WithFilter("status", q.Status)
	}
	filter.Normalize()
	return filter, true
}

// Success sends a 200 envelope carrying data
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 envelope carrying data
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Message sends a 200 envelope carrying only a message
func (h *BaseHandler) Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.NewMessageResponse(message))
}

// Paginated sends a paginated collection envelope
func (h *BaseHandler) Paginated(c *gin.Context, data any, count int, total int64, page, pages int) {
	c.JSON(http.StatusOK, dto.NewListResponse(data, count, total, page, pages))
}

// BindError sends a 400 for a failed request binding, with field-level
// validator messages flattened into one line
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	h.BadRequest(c, middleware.ValidationMessage(err))
}

// BadRequest sends a 400 validation failure envelope
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeValidation, message))
}

// HandleError converts domain errors to HTTP responses. Wrapped errors are
// resolved with errors.As; anything unrecognized becomes a 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, domainErr.Message))
		return
	}

	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.ErrCodeInternal, "An unexpected error occurred"))
}
