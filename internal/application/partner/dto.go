package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/studioerp/backend/internal/domain/partner"
)

// CreateClientRequest represents a request to create a new client
type CreateClientRequest struct {
	Name                    string     `json:"name" binding:"required,min=1,max=200"`
	Email                   string     `json:"email" binding:"required,email,max=255"`
	Phone                   string     `json:"phone" binding:"max=50"`
	Address                 string     `json:"address" binding:"max=500"`
	SiteAddress             string     `json:"siteAddress" binding:"max=500"`
	BillingAddress          string     `json:"billingAddress" binding:"max=500"`
	BillingPincode          string     `json:"billingPincode" binding:"max=20"`
	Contact1                string     `json:"contact1" binding:"max=50"`
	Contact2                string     `json:"contact2" binding:"max=50"`
	ClientGST               string     `json:"clientGst" binding:"max=50"`
	PAN                     string     `json:"pan" binding:"max=20"`
	ClientManager           string     `json:"clientManager" binding:"max=100"`
	ClientManagerContact    string     `json:"clientManagerContact" binding:"max=50"`
	ClientManagerEmail      string     `json:"clientManagerEmail" binding:"omitempty,email,max=255"`
	InteriorDesigner        string     `json:"interiorDesigner" binding:"max=100"`
	InteriorDesignerContact string     `json:"interiorDesignerContact" binding:"max=50"`
	InteriorDesignerEmail   string     `json:"interiorDesignerEmail" binding:"omitempty,email,max=255"`
	CustomerServiceContact  string     `json:"customerServiceContact" binding:"max=50"`
	CustomerServiceEmail    string     `json:"customerServiceEmail" binding:"omitempty,email,max=255"`
	Status                  string     `json:"status" binding:"omitempty,oneof=Active Inactive Archived"`
	Notes                   string     `json:"notes"`
	CreatedBy               *uuid.UUID `json:"-"` // Set from JWT context, not from request body
}

// UpdateClientRequest represents a request to update a client.
// Pointer fields distinguish "leave unchanged" from "set to empty".
type UpdateClientRequest struct {
	Name                    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Email                   *string `json:"email" binding:"omitempty,email,max=255"`
	Phone                   *string `json:"phone" binding:"omitempty,max=50"`
	Address                 *string `json:"address" binding:"omitempty,max=500"`
	SiteAddress             *string `json:"siteAddress" binding:"omitempty,max=500"`
	BillingAddress          *string `json:"billingAddress" binding:"omitempty,max=500"`
	BillingPincode          *string `json:"billingPincode" binding:"omitempty,max=20"`
	Contact1                *string `json:"contact1" binding:"omitempty,max=50"`
	Contact2                *string `json:"contact2" binding:"omitempty,max=50"`
	ClientGST               *string `json:"clientGst" binding:"omitempty,max=50"`
	PAN                     *string `json:"pan" binding:"omitempty,max=20"`
	ClientManager           *string `json:"clientManager" binding:"omitempty,max=100"`
	ClientManagerContact    *string `json:"clientManagerContact" binding:"omitempty,max=50"`
	ClientManagerEmail      *string `json:"clientManagerEmail" binding:"omitempty,email,max=255"`
	InteriorDesigner        *string `json:"interiorDesigner" binding:"omitempty,max=100"`
	InteriorDesignerContact *string `json:"interiorDesignerContact" binding:"omitempty,max=50"`
	InteriorDesignerEmail   *string `json:"interiorDesignerEmail" binding:"omitempty,email,max=255"`
	CustomerServiceContact  *string `json:"customerServiceContact" binding:"omitempty,max=50"`
	CustomerServiceEmail    *string `json:"customerServiceEmail" binding:"omitempty,email,max=255"`
	Status                  *string `json:"status" binding:"omitempty,oneof=Active Inactive Archived"`
	Notes                   *string `json:"notes"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID                      uuid.UUID `json:"id"`
	Name                    string    `json:"name"`
	Email                   string    `json:"email"`
	Phone                   string    `json:"phone"`
	Address                 string    `json:"address"`
	SiteAddress             string    `json:"siteAddress"`
	BillingAddress          string    `json:"billingAddress"`
	BillingPincode          string    `json:"billingPincode"`
	Contact1                string    `json:"contact1"`
	Contact2                string    `json:"contact2"`
	ClientGST               string    `json:"clientGst"`
	PAN                     string    `json:"pan"`
	ClientManager           string    `json:"clientManager"`
	ClientManagerContact    string    `json:"clientManagerContact"`
	ClientManagerEmail      string    `json:"clientManagerEmail"`
	InteriorDesigner        string    `json:"interiorDesigner"`
	InteriorDesignerContact string    `json:"interiorDesignerContact"`
	InteriorDesignerEmail   string    `json:"interiorDesignerEmail"`
	CustomerServiceContact  string    `json:"customerServiceContact"`
	CustomerServiceEmail    string    `json:"customerServiceEmail"`
	Status                  string    `json:"status"`
	Notes                   string    `json:"notes"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// ToClientResponse maps a domain client to its API representation
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{
		ID:                      c.ID,
		Name:                    c.Name,
		Email:                   c.Email,
		Phone:                   c.Phone,
		Address:                 c.Address,
		SiteAddress:             c.SiteAddress,
		BillingAddress:          c.BillingAddress,
		BillingPincode:          c.BillingPincode,
		Contact1:                c.Contact1,
		Contact2:                c.Contact2,
		ClientGST:               c.ClientGST,
		PAN:                     c.PAN,
		ClientManager:           c.ClientManager,
		ClientManagerContact:    c.ClientManagerContact,
		ClientManagerEmail:      c.ClientManagerEmail,
		InteriorDesigner:        c.InteriorDesigner,
		InteriorDesignerContact: c.InteriorDesignerContact,
		InteriorDesignerEmail:   c.InteriorDesignerEmail,
		CustomerServiceContact:  c.CustomerServiceContact,
		CustomerServiceEmail:    c.CustomerServiceEmail,
		Status:                  string(c.Status),
		Notes:                   c.Notes,
		CreatedAt:               c.CreatedAt,
		UpdatedAt:               c.UpdatedAt,
	}
}
