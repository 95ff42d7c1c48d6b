package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	projectapp "github.com/studioerp/backend/internal/application/project"
)

// TaskHandler handles task API endpoints
type TaskHandler struct {
	BaseHandler
	taskService *projectapp.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *projectapp.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// RegisterRoutes registers task routes
func (h *TaskHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tasks := rg.Group("/tasks")
	{
		tasks.GET("", h.List)
		tasks.GET("/stats", h.Stats)
		tasks.GET("/my", h.ListMine)
		tasks.GET("/:id", h.GetByID)
		tasks.POST("", h.Create)
		tasks.PUT("/:id", h.Update)
		tasks.DELETE("/:id", h.Delete)
	}
}

// Create creates a new task
func (h *TaskHandler) Create(c *gin.Context) {
	var req projectapp.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	task, err := h.taskService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, task)
}

// List returns tasks with search, filters and pagination
func (h *TaskHandler) List(c *gin.Context) {
	filter, ok := bindListQuery(c)
	if !ok {
		return
	}
	if priority := c.Query("priority"); priority != "" {
		filter = filter.WithFilter("priority", priority)
	}
	if assignee := c.Query("assignedTo"); assignee != "" {
		if id, err := uuid.Parse(assignee); err == nil {
			filter = filter.WithFilter("assigned_to", id)
		}
	}
	tasks, page, err := h.taskService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, tasks, len(tasks), page.Total, page.Page, page.Pages())
}

// ListMine returns tasks assigned to the authenticated user
func (h *TaskHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	filter, ok := bindListQuery(c)
	if !ok {
		return
	}
	tasks, page, err := h.taskService.ListByAssignee(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, tasks, len(tasks), page.Total, page.Page, page.Pages())
}

// GetByID returns a single task
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	task, err := h.taskService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, task)
}

// Update applies a partial update to a task
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req projectapp.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	userID, _ := getUserID(c)
	task, err := h.taskService.Update(c.Request.Context(), id, req, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, task)
}

// Delete removes a task
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.taskService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Message(c, "Task deleted")
}

// Stats returns task counts by workflow state
func (h *TaskHandler) Stats(c *gin.Context) {
	stats, err := h.taskService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
