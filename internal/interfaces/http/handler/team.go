package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	projectapp "github.com/studioerp/backend/internal/application/project"
	"github.com/studioerp/backend/internal/interfaces/http/middleware"
)

// TeamHandler handles team API endpoints
type TeamHandler struct {
	BaseHandler
	teamService *projectapp.TeamService
}

// NewTeamHandler creates a new TeamHandler
func NewTeamHandler(teamService *projectapp.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// RegisterRoutes registers team routes
func (h *TeamHandler) RegisterRoutes(rg *gin.RouterGroup) {
	teams := rg.Group("/teams")
	{
		teams.GET("", h.List)
		teams.GET("/:id", h.GetByID)
		teams.POST("", h.Create)
		teams.PUT("/:id", h.Update)
		teams.POST("/:id/members", h.AddMember)
		teams.DELETE("/:id/members/:userId", h.RemoveMember)
		teams.DELETE("/:id", middleware.RequireElevated(), h.Delete)
	}
}

// Create creates a new team
func (h *TeamHandler) Create(c *gin.Context) {
	var req projectapp.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	team, err := h.teamService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, team)
}

// List returns teams with search, filters and pagination
func (h *TeamHandler) List(c *gin.Context) {
	filter, ok := bindListQuery(c)
	if !ok {
		return
	}
	teams, page, err := h.teamService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, teams, len(teams), page.Total, page.Page, page.Pages())
}

// GetByID returns a single team
func (h *TeamHandler) GetByID(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	team, err := h.teamService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, team)
}

// Update applies a partial update to a team
func (h *TeamHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req projectapp.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	team, err := h.teamService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, team)
}

// AddMember adds a user to the team
func (h *TeamHandler) AddMember(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req projectapp.AddTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	team, err := h.teamService.AddMember(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, team)
}

// RemoveMember removes a user from the team
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		h.BadRequest(c, "Invalid userId parameter")
		return
	}
	team, err := h.teamService.RemoveMember(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, team)
}

// Delete removes a team
func (h *TeamHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.teamService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Team deleted")
}
