package project

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/studioerp/backend/internal/domain/identity"
	"github.com/studioerp/backend/internal/domain/project"
)

// CreateTaskRequest represents a request to create a task
type CreateTaskRequest struct {
	Title          string           `json:"title" binding:"required,min=1,max=200"`
	Description    string           `json:"description"`
	ProjectName    string           `json:"projectName" binding:"max=200"`
	AssignedTo     *uuid.UUID       `json:"assignedTo"`
	TeamID         *uuid.UUID       `json:"teamId"`
	Priority       string           `json:"priority" binding:"omitempty,oneof=Low Medium High Critical"`
	DueDate        *time.Time       `json:"dueDate"`
	EstimatedHours *decimal.Decimal `json:"estimatedHours"`
	Notes          string           `json:"notes"`
	Tags           []string         `json:"tags"`
	CreatedBy      *uuid.UUID       `json:"-"`
}

// UpdateTaskRequest represents a partial update to a task
type UpdateTaskRequest struct {
	Title          *string          `json:"title" binding:"omitempty,min=1,max=200"`
	Description    *string          `json:"description"`
	ProjectName    *string          `json:"projectName" binding:"omitempty,max=200"`
	AssignedTo     *uuid.UUID       `json:"assignedTo"`
	Unassign       bool             `json:"unassign"`
	TeamID         *uuid.UUID       `json:"teamId"`
	Status         *string          `json:"status" binding:"omitempty,oneof='To Do' 'In Progress' Completed Blocked"`
	Priority       *string          `json:"priority" binding:"omitempty,oneof=Low Medium High Critical"`
	Progress       *int             `json:"progress" binding:"omitempty,min=0,max=100"`
	DueDate        *time.Time       `json:"dueDate"`
	EstimatedHours *decimal.Decimal `json:"estimatedHours"`
	ActualHours    *decimal.Decimal `json:"actualHours"`
	Notes          *string          `json:"notes"`
	Tags           *[]string        `json:"tags"`
}

// TaskResponse represents a task in API responses. The assignee summary is
// resolved on single-record reads and omitted from lists.
type TaskResponse struct {
	ID             uuid.UUID       `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	ProjectName    string          `json:"projectName"`
	AssignedTo     *uuid.UUID      `json:"assignedTo"`
	AssignedToUser *identity.UserSummary `json:"assignedToUser,omitempty"`
	TeamID         *uuid.UUID      `json:"teamId"`
	Status         string          `json:"status"`
	Priority       string          `json:"priority"`
	DueDate        *time.Time      `json:"dueDate"`
	CompletedAt    *time.Time      `json:"completedAt"`
	Progress       int             `json:"progress"`
	EstimatedHours decimal.Decimal `json:"estimatedHours"`
	ActualHours    decimal.Decimal `json:"actualHours"`
	Notes          string          `json:"notes"`
	Tags           []string        `json:"tags"`
	Overdue        bool            `json:"overdue"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ToTaskResponse maps a domain task to its API representation
func ToTaskResponse(t *project.Task) TaskResponse {
	return TaskResponse{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		ProjectName:    t.ProjectName,
		AssignedTo:     t.AssignedTo,
		TeamID:         t.TeamID,
		Status:         string(t.Status),
		Priority:       string(t.Priority),
		DueDate:        t.DueDate,
		CompletedAt:    t.CompletedAt,
		Progress:       t.Progress,
		EstimatedHours: t.EstimatedHours,
		ActualHours:    t.ActualHours,
		Notes:          t.Notes,
		Tags:           t.Tags,
		Overdue:        t.IsOverdue(time.Now()),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// CreateTeamRequest represents a request to create a team
type CreateTeamRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=100"`
	Description string     `json:"description"`
	Department  string     `json:"department" binding:"max=100"`
	LeadID      *uuid.UUID `json:"leadId"`
	CreatedBy   *uuid.UUID `json:"-"`
}

// UpdateTeamRequest represents a partial update to a team
type UpdateTeamRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string    `json:"description"`
	Department  *string    `json:"department" binding:"omitempty,max=100"`
	LeadID      *uuid.UUID `json:"leadId"`
	Active      *bool      `json:"active"`
}

// AddTeamMemberRequest adds a user to a team
type AddTeamMemberRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
	Role   string    `json:"role" binding:"omitempty,oneof='Team Lead' Member Contributor"`
}

// TeamMemberResponse represents a team member in API responses. The user
// summary is resolved on single-record reads and omitted from lists.
type TeamMemberResponse struct {
	UserID  uuid.UUID             `json:"userId"`
	User    *identity.UserSummary `json:"user,omitempty"`
	Role    string                `json:"role"`
	AddedAt time.Time             `json:"addedAt"`
}

// TeamResponse represents a team in API responses
type TeamResponse struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Department  string               `json:"department"`
	LeadID      *uuid.UUID           `json:"leadId"`
	Members     []TeamMemberResponse `json:"members"`
	MemberCount int                  `json:"memberCount"`
	Active      bool                 `json:"active"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// ToTeamResponse maps a domain team to its API representation
func ToTeamResponse(t *project.Team) TeamResponse {
	members := make([]TeamMemberResponse, len(t.Members))
	for i, m := range t.Members {
		members[i] = TeamMemberResponse{UserID: m.UserID, Role: string(m.Role), AddedAt: m.AddedAt}
	}
	return TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Department:  t.Department,
		LeadID:      t.LeadID,
		Members:     members,
		MemberCount: t.MemberCount(),
		Active:      t.Active,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
