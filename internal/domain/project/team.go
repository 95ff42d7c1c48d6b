package project

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/studioerp/backend/internal/domain/shared"
)

// TeamRole describes what a user does within a team
type TeamRole string

const (
	TeamRoleLead        TeamRole = "Team Lead"
	TeamRoleMember      TeamRole = "Member"
	TeamRoleContributor TeamRole = "Contributor"
)

// IsValid checks if the role is one of the allowed values
func (r TeamRole) IsValid() bool {
	switch r {
	case TeamRoleLead, TeamRoleMember, TeamRoleContributor:
		return true
	}
	return false
}

// TeamMember links a user into a team with a role
type TeamMember struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	TeamID  uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Role    TeamRole  `gorm:"type:varchar(20);not null;default:'Member'"`
	AddedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TeamMember) TableName() string {
	return "team_members"
}

// Team represents a working group of users. Team names are unique across the
// firm; membership is deduplicated by user.
type Team struct {
	shared.OwnedEntity
	Name        string       `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string       `gorm:"type:text"`
	Department  string       `gorm:"type:varchar(100)"`
	LeadID      *uuid.UUID   `gorm:"type:uuid"`
	Members     []TeamMember `gorm:"foreignKey:TeamID;references:ID"`
	Active      bool         `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Team) TableName() string {
	return "teams"
}

// NewTeam creates a new active team
func NewTeam(createdBy uuid.UUID, name string) (*Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_TEAM_NAME", "Please provide a team name")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_TEAM_NAME", "Team name cannot exceed 100 characters")
	}

	return &Team{
		OwnedEntity: shared.NewOwnedEntity(createdBy),
		Name:        name,
		Active:      true,
		Members:     make([]TeamMember, 0),
	}, nil
}

// Rename changes the team name
func (t *Team) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_TEAM_NAME", "Please provide a team name")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_TEAM_NAME", "Team name cannot exceed 100 characters")
	}
	t.Name = name
	t.Touch()
	return nil
}

// AddMember adds a user to the team. Adding an existing member fails.
func (t *Team) AddMember(userID uuid.UUID, role TeamRole) error {
	if userID == uuid.Nil {
		return shared.NewDomainError("INVALID_MEMBER", "Please select a user")
	}
	if t.HasMember(userID) {
		return shared.NewDomainError("MEMBER_EXISTS", "User is already a member of this team")
	}
	role = TeamRole(strings.TrimSpace(string(role)))
	if role == "" {
		role = TeamRoleMember
	}
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown team role")
	}
	t.Members = append(t.Members, TeamMember{
		ID:      uuid.New(),
		TeamID:  t.ID,
		UserID:  userID,
		Role:    role,
		AddedAt: time.Now(),
	})
	t.Touch()
	return nil
}

// RemoveMember removes a user from the team. The lead slot is cleared if the
// lead leaves.
func (t *Team) RemoveMember(userID uuid.UUID) error {
	for idx, m := range t.Members {
		if m.UserID == userID {
			t.Members = append(t.Members[:idx], t.Members[idx+1:]...)
			if t.LeadID != nil && *t.LeadID == userID {
				t.LeadID = nil
			}
			t.Touch()
			return nil
		}
	}
	return shared.NewDomainError("MEMBER_NOT_FOUND", "User is not a member of this team")
}

// SetLead assigns the team lead, adding them as a member if needed
func (t *Team) SetLead(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.NewDomainError("INVALID_MEMBER", "Please select a user")
	}
	if !t.HasMember(userID) {
		if err := t.AddMember(userID, TeamRoleLead); err != nil {
			return err
		}
	}
	t.LeadID = &userID
	t.Touch()
	return nil
}

// HasMember reports whether a user belongs to the team
func (t *Team) HasMember(userID uuid.UUID) bool {
	for _, m := range t.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// MemberCount returns the number of members
func (t *Team) MemberCount() int {
	return len(t.Members)
}

// Deactivate retires the team without deleting its history
func (t *Team) Deactivate() {
	t.Active = false
	t.Touch()
}
