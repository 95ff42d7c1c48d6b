package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studioerp/backend/internal/interfaces/http/dto"
)

// BodyLimit rejects request bodies larger than maxBytes. The limit also
// applies while streaming bodies without a Content-Length header.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeBadRequest, "Request body too large"))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
