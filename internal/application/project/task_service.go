package project

import (
	"context"

	"github.com/google/uuid"

	notifysvc "github.com/studioerp/backend/internal/application/notify"
	"github.com/studioerp/backend/internal/domain/identity"
	domnotify "github.com/studioerp/backend/internal/domain/notify"
	"github.com/studioerp/backend/internal/domain/project"
	"github.com/studioerp/backend/internal/domain/shared"
)

// TaskService handles task business operations
type TaskService struct {
	taskRepo project.TaskRepository
	userRepo identity.UserRepository
	notifier *notifysvc.Notifier
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo project.TaskRepository, userRepo identity.UserRepository, notifier *notifysvc.Notifier) *TaskService {
	return &TaskService{taskRepo: taskRepo, userRepo: userRepo, notifier: notifier}
}

// Create creates a new task and notifies the assignee
func (s *TaskService) Create(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error) {
	createdBy := uuid.Nil
	if req.CreatedBy != nil {
		createdBy = *req.CreatedBy
	}

	task, err := project.NewTask(createdBy, req.Title)
	if err != nil {
		return nil, err
	}
	task.Description = req.Description
	task.ProjectName = req.ProjectName
	task.TeamID = req.TeamID
	task.DueDate = req.DueDate
	task.Notes = req.Notes
	task.SetTags(req.Tags)

	if req.EstimatedHours != nil {
		if err := task.SetEstimatedHours(*req.EstimatedHours); err != nil {
			return nil, err
		}
	}
	if req.Priority != "" {
		if err := task.SetPriority(project.TaskPriority(req.Priority)); err != nil {
			return nil, err
		}
	}
	if req.AssignedTo != nil {
		task.Assign(*req.AssignedTo)
	}

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	s.notifyAssignment(ctx, task, createdBy)

	response := ToTaskResponse(task)
	return &response, nil
}

// GetByID retrieves a task by ID with its assignee resolved to a user summary
func (s *TaskService) GetByID(ctx context.Context, id uuid.UUID) (*TaskResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTaskResponse(task)

	if task.AssignedTo != nil {
		users, err := s.userRepo.FindSummaries(ctx, []uuid.UUID{*task.AssignedTo})
		if err != nil {
			return nil, err
		}
		if u, ok := users[*task.AssignedTo]; ok {
			response.AssignedToUser = &u
		}
	}
	return &response, nil
}

// List retrieves tasks with filtering and pagination
func (s *TaskService) List(ctx context.Context, filter shared.Filter) ([]TaskResponse, *shared.Paginated[project.Task], error) {
	page, err := s.taskRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return toTaskResponses(page), page, nil
}

// ListByAssignee retrieves tasks assigned to a user
func (s *TaskService) ListByAssignee(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]TaskResponse, *shared.Paginated[project.Task], error) {
	page, err := s.taskRepo.FindByAssignee(ctx, userID, filter)
	if err != nil {
		return nil, nil, err
	}
	return toTaskResponses(page), page, nil
}

// Update applies a partial update to a task. Reassignment notifies the new
// assignee.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, req UpdateTaskRequest, updatedBy uuid.UUID) (*TaskResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previousAssignee := task.AssignedTo

	if req.Title != nil {
		if err := task.Retitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.ProjectName != nil {
		task.ProjectName = *req.ProjectName
	}
	if req.Unassign {
		task.Unassign()
	} else if req.AssignedTo != nil {
		task.Assign(*req.AssignedTo)
	}
	if req.TeamID != nil {
		task.TeamID = req.TeamID
	}
	if req.Priority != nil {
		if err := task.SetPriority(project.TaskPriority(*req.Priority)); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if err := task.SetStatus(project.TaskStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Progress != nil {
		if err := task.SetProgress(*req.Progress); err != nil {
			return nil, err
		}
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.EstimatedHours != nil {
		if err := task.SetEstimatedHours(*req.EstimatedHours); err != nil {
			return nil, err
		}
	}
	if req.ActualHours != nil {
		if err := task.SetActualHours(*req.ActualHours); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		task.Notes = *req.Notes
	}
	if req.Tags != nil {
		task.SetTags(*req.Tags)
	}
	task.Touch()

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	assigneeChanged := task.AssignedTo != nil &&
		(previousAssignee == nil || *previousAssignee != *task.AssignedTo)
	if assigneeChanged {
		s.notifyAssignment(ctx, task, updatedBy)
	}

	response := ToTaskResponse(task)
	return &response, nil
}

// Delete removes a task
func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.taskRepo.Delete(ctx, id)
}

// Stats returns task counts by workflow state
func (s *TaskService) Stats(ctx context.Context) (*project.TaskStats, error) {
	return s.taskRepo.Stats(ctx)
}

func (s *TaskService) notifyAssignment(ctx context.Context, task *project.Task, actor uuid.UUID) {
	if s.notifier == nil || task.AssignedTo == nil || *task.AssignedTo == actor {
		return
	}
	s.notifier.NotifyUser(ctx, *task.AssignedTo,
		domnotify.NotificationTypeTask,
		"Task assigned to you",
		task.Title,
		domnotify.RelatedModelTask, task.ID)
}

func toTaskResponses(page *shared.Paginated[project.Task]) []TaskResponse {
	responses := make([]TaskResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = ToTaskResponse(&page.Items[i])
	}
	return responses
}
