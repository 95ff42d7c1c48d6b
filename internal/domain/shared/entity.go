package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// Touch updates the UpdatedAt timestamp
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// OwnedEntity extends BaseEntity with a weak reference to the creating user.
// The reference carries no ownership semantics; deleting the user does not
// cascade to owned records.
type OwnedEntity struct {
	BaseEntity
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
}

// NewOwnedEntity creates a new entity owned by the given user
func NewOwnedEntity(createdBy uuid.UUID) OwnedEntity {
	e := OwnedEntity{BaseEntity: NewBaseEntity()}
	if createdBy != uuid.Nil {
		e.CreatedBy = &createdBy
	}
	return e
}

// SetCreatedBy sets the creator user ID
func (e *OwnedEntity) SetCreatedBy(userID uuid.UUID) {
	e.CreatedBy = &userID
}

// GetCreatedBy returns the creator user ID
func (e *OwnedEntity) GetCreatedBy() *uuid.UUID {
	return e.CreatedBy
}
