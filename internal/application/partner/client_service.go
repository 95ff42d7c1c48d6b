package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/studioerp/backend/internal/domain/partner"
	"github.com/studioerp/backend/internal/domain/shared"
)

// ClientService handles client-related business operations
type ClientService struct {
	clientRepo partner.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo partner.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// Create creates a new client
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	createdBy := uuid.Nil
	if req.CreatedBy != nil {
		createdBy = *req.CreatedBy
	}

	client, err := partner.NewClient(createdBy, req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	client.Phone = req.Phone
	client.Address = req.Address
	client.SiteAddress = req.SiteAddress
	client.BillingAddress = req.BillingAddress
	client.BillingPincode = req.BillingPincode
	client.Contact1 = req.Contact1
	client.Contact2 = req.Contact2
	client.ClientManager = req.ClientManager
	client.ClientManagerContact = req.ClientManagerContact
	client.InteriorDesigner = req.InteriorDesigner
	client.InteriorDesignerContact = req.InteriorDesignerContact
	client.CustomerServiceContact = req.CustomerServiceContact
	client.CustomerServiceEmail = req.CustomerServiceEmail
	client.Notes = req.Notes
	client.SetTaxIDs(req.ClientGST, req.PAN)

	if req.ClientManagerEmail != "" {
		if err := client.SetManagerEmail(req.ClientManagerEmail); err != nil {
			return nil, err
		}
	}
	client.InteriorDesignerEmail = req.InteriorDesignerEmail
	if req.Status != "" {
		if err := client.SetStatus(partner.ClientStatus(req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients with filtering and pagination
func (s *ClientService) List(ctx context.Context, filter shared.Filter) ([]ClientResponse, *shared.Paginated[partner.Client], error) {
	page, err := s.clientRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]ClientResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = ToClientResponse(&page.Items[i])
	}
	return responses, page, nil
}

// Update applies a partial update to a client
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := client.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Email != nil {
		if err := client.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.SiteAddress != nil {
		client.SiteAddress = *req.SiteAddress
	}
	if req.BillingAddress != nil {
		client.BillingAddress = *req.BillingAddress
	}
	if req.BillingPincode != nil {
		client.BillingPincode = *req.BillingPincode
	}
	if req.Contact1 != nil {
		client.Contact1 = *req.Contact1
	}
	if req.Contact2 != nil {
		client.Contact2 = *req.Contact2
	}
	if req.ClientGST != nil || req.PAN != nil {
		gst := client.ClientGST
		pan := client.PAN
		if req.ClientGST != nil {
			gst = *req.ClientGST
		}
		if req.PAN != nil {
			pan = *req.PAN
		}
		client.SetTaxIDs(gst, pan)
	}
	if req.ClientManager != nil {
		client.ClientManager = *req.ClientManager
	}
	if req.ClientManagerContact != nil {
		client.ClientManagerContact = *req.ClientManagerContact
	}
	if req.ClientManagerEmail != nil {
		if err := client.SetManagerEmail(*req.ClientManagerEmail); err != nil {
			return nil, err
		}
	}
	if req.InteriorDesigner != nil {
		client.InteriorDesigner = *req.InteriorDesigner
	}
	if req.InteriorDesignerContact != nil {
		client.InteriorDesignerContact = *req.InteriorDesignerContact
	}
	if req.InteriorDesignerEmail != nil {
		client.InteriorDesignerEmail = *req.InteriorDesignerEmail
	}
	if req.CustomerServiceContact != nil {
		client.CustomerServiceContact = *req.CustomerServiceContact
	}
	if req.CustomerServiceEmail != nil {
		client.CustomerServiceEmail = *req.CustomerServiceEmail
	}
	if req.Status != nil {
		if err := client.SetStatus(partner.ClientStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}
	client.Touch()

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// Delete removes a client
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.clientRepo.Delete(ctx, id)
}

// Stats returns client counts by status
func (s *ClientService) Stats(ctx context.Context) (*partner.ClientStats, error) {
	return s.clientRepo.Stats(ctx)
}
