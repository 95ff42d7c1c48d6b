package partner

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/studioerp/backend/internal/domain/shared"
)

// ClientStatus represents the status of a client
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "Active"
	ClientStatusInactive ClientStatus = "Inactive"
	ClientStatusArchived ClientStatus = "Archived"
)

// IsValid checks if the status is a valid ClientStatus
func (s ClientStatus) IsValid() bool {
	switch s {
	case ClientStatusActive, ClientStatusInactive, ClientStatusArchived:
		return true
	}
	return false
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Client represents a customer of the design firm.
// It is the aggregate root for client-related operations.
type Client struct {
	shared.OwnedEntity
	Name                    string       `gorm:"type:varchar(200);not null"`
	Email                   string       `gorm:"type:varchar(200);not null;index"`
	Phone                   string       `gorm:"type:varchar(50)"`
	Address                 string       `gorm:"type:text"`
	SiteAddress             string       `gorm:"type:text"`
	BillingAddress          string       `gorm:"type:text"`
	BillingPincode          string       `gorm:"type:varchar(20)"`
	Contact1                string       `gorm:"type:varchar(50)"`
	Contact2                string       `gorm:"type:varchar(50)"`
	ClientGST               string       `gorm:"type:varchar(50)"`
	PAN                     string       `gorm:"type:varchar(20)"`
	ClientManager           string       `gorm:"type:varchar(100)"`
	ClientManagerContact    string       `gorm:"type:varchar(50)"`
	ClientManagerEmail      string       `gorm:"type:varchar(200)"`
	InteriorDesigner        string       `gorm:"type:varchar(100)"`
	InteriorDesignerContact string       `gorm:"type:varchar(50)"`
	InteriorDesignerEmail   string       `gorm:"type:varchar(200)"`
	CustomerServiceContact  string       `gorm:"type:varchar(50)"`
	CustomerServiceEmail    string       `gorm:"type:varchar(200)"`
	Status                  ClientStatus `gorm:"type:varchar(20);not null;default:'Active';index"`
	Notes                   string       `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client with required fields
func NewClient(createdBy uuid.UUID, name, email string) (*Client, error) {
	if err := validateClientName(name); err != nil {
		return nil, err
	}
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	return &Client{
		OwnedEntity: shared.NewOwnedEntity(createdBy),
		Name:        strings.TrimSpace(name),
		Email:       normalized,
		Status:      ClientStatusActive,
	}, nil
}

// Rename updates the client's name
func (c *Client) Rename(name string) error {
	if err := validateClientName(name); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(name)
	c.Touch()
	return nil
}

// SetEmail updates the primary email address
func (c *Client) SetEmail(email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	c.Email = normalized
	c.Touch()
	return nil
}

// SetStatus updates the client status
func (c *Client) SetStatus(status ClientStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Client status must be Active, Inactive or Archived")
	}
	c.Status = status
	c.Touch()
	return nil
}

// SetTaxIDs sets the GST and PAN identifiers, uppercased
func (c *Client) SetTaxIDs(gst, pan string) {
	c.ClientGST = strings.ToUpper(strings.TrimSpace(gst))
	c.PAN = strings.ToUpper(strings.TrimSpace(pan))
	c.Touch()
}

// SetManagerEmail sets the client manager's email
func (c *Client) SetManagerEmail(email string) error {
	if email == "" {
		c.ClientManagerEmail = ""
		return nil
	}
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	c.ClientManagerEmail = normalized
	c.Touch()
	return nil
}

// IsArchived reports whether the client has been archived
func (c *Client) IsArchived() bool {
	return c.Status == ClientStatusArchived
}

func validateClientName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 200 characters")
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if !emailPattern.MatchString(email) {
		return "", shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return email, nil
}

// ClientSummary is the display-friendly view used when other entities resolve
// a weak reference to a client.
type ClientSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone,omitempty"`
}

// Summary returns the display summary of the client
func (c *Client) Summary() ClientSummary {
	return ClientSummary{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone}
}
