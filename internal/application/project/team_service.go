package project

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/studioerp/backend/internal/domain/identity"
	"github.com/studioerp/backend/internal/domain/project"
	"github.com/studioerp/backend/internal/domain/shared"
)

// TeamService handles team business operations
type TeamService struct {
	teamRepo project.TeamRepository
	userRepo identity.UserRepository
}

// NewTeamService creates a new TeamService
func NewTeamService(teamRepo project.TeamRepository, userRepo identity.UserRepository) *TeamService {
	return &TeamService{teamRepo: teamRepo, userRepo: userRepo}
}

// Create creates a new team. Team names are unique.
func (s *TeamService) Create(ctx context.Context, req CreateTeamRequest) (*TeamResponse, error) {
	if err := s.ensureNameFree(ctx, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	createdBy := uuid.Nil
	if req.CreatedBy != nil {
		createdBy = *req.CreatedBy
	}

	team, err := project.NewTeam(createdBy, req.Name)
	if err != nil {
		return nil, err
	}
	team.Description = req.Description
	team.Department = req.Department
	if req.LeadID != nil {
		if err := team.SetLead(*req.LeadID); err != nil {
			return nil, err
		}
	}

	if err := s.teamRepo.Save(ctx, team); err != nil {
		return nil, err
	}

	response := ToTeamResponse(team)
	return &response, nil
}

// GetByID retrieves a team by ID with its member references resolved to
// user summaries
func (s *TeamService) GetByID(ctx context.Context, id uuid.UUID) (*TeamResponse, error) {
	team, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTeamResponse(team)

	ids := make([]uuid.UUID, 0, len(team.Members))
	for _, m := range team.Members {
		ids = append(ids, m.UserID)
	}
	users, err := s.userRepo.FindSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range response.Members {
		if u, ok := users[response.Members[i].UserID]; ok {
			response.Members[i].User = &u
		}
	}
	return &response, nil
}

// List retrieves teams with filtering and pagination
func (s *TeamService) List(ctx context.Context, filter shared.Filter) ([]TeamResponse, *shared.Paginated[project.Team], error) {
	page, err := s.teamRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]TeamResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = ToTeamResponse(&page.Items[i])
	}
	return responses, page, nil
}

// Update applies a partial update to a team
func (s *TeamService) Update(ctx context.Context, id uuid.UUID, req UpdateTeamRequest) (*TeamResponse, error) {
	team, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != team.Name {
		if err := s.ensureNameFree(ctx, *req.Name, team.ID); err != nil {
			return nil, err
		}
		if err := team.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	if req.Department != nil {
		team.Department = *req.Department
	}
	if req.LeadID != nil {
		if err := team.SetLead(*req.LeadID); err != nil {
			return nil, err
		}
	}
	if req.Active != nil && !*req.Active {
		team.Deactivate()
	}
	team.Touch()

	if err := s.teamRepo.Save(ctx, team); err != nil {
		return nil, err
	}

	response := ToTeamResponse(team)
	return &response, nil
}

// AddMember adds a user to the team
func (s *TeamService) AddMember(ctx context.Context, id uuid.UUID, req AddTeamMemberRequest) (*TeamResponse, error) {
	team, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := team.AddMember(req.UserID, project.TeamRole(req.Role)); err != nil {
		return nil, err
	}
	if err := s.teamRepo.Save(ctx, team); err != nil {
		return nil, err
	}
	response := ToTeamResponse(team)
	return &response, nil
}

// RemoveMember removes a user from the team
func (s *TeamService) RemoveMember(ctx context.Context, id, userID uuid.UUID) (*TeamResponse, error) {
	team, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := team.RemoveMember(userID); err != nil {
		return nil, err
	}
	if err := s.teamRepo.Save(ctx, team); err != nil {
		return nil, err
	}
	response := ToTeamResponse(team)
	return &response, nil
}

// Delete removes a team
func (s *TeamService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.teamRepo.Delete(ctx, id)
}

func (s *TeamService) ensureNameFree(ctx context.Context, name string, selfID uuid.UUID) error {
	existing, err := s.teamRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return shared.NewDomainError("ALREADY_EXISTS", "A team with this name already exists")
	}
	return nil
}
