package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/studioerp/backend/internal/application/identity"
	"github.com/studioerp/backend/internal/domain/shared"
	"github.com/studioerp/backend/internal/interfaces/http/middleware"
)

var errForbiddenPasswordChange = shared.NewDomainError("FORBIDDEN", "You can only change your own password")

// UserHandler handles user management API endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers user routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("", h.List)
		users.GET("/stats", h.Stats)
		users.GET("/:id", h.GetByID)
		users.POST("", middleware.RequireElevated(), h.Register)
		users.PUT("/:id", middleware.RequireElevated(), h.Update)
		users.PUT("/:id/password", h.ChangePassword)
		users.DELETE("/:id", middleware.RequireElevated(), h.Delete)
	}
}

// Register creates a new user account
func (h *UserHandler) Register(c *gin.Context) {
	var req identityapp.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// List returns users with search, filters and pagination
func (h *UserHandler) List(c *gin.Context) {
	filter, ok := bindListQuery(c)
	if !ok {
		return
	}
	if role := c.Query("role"); role != "" {
		filter = filter.WithFilter("role", role)
	}
	users, page, err := h.userService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, users, len(users), page.Total, page.Page, page.Pages())
}

// GetByID returns a single user
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Update applies a partial update to a user
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req identityapp.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	user, err := h.userService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ChangePassword changes the authenticated user's own password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	callerID, err := getUserID(c)
	if err != nil || callerID != id {
		h.HandleError(c, errForbiddenPasswordChange)
		return
	}
	var req identityapp.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	if err := h.userService.ChangePassword(c.Request.Context(), id, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Password updated")
}

// Stats returns account counts by activation and role
func (h *UserHandler) Stats(c *gin.Context) {
	stats, err := h.userService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// Delete removes a user account
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "User deleted")
}
