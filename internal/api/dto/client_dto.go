package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	"github.com/spec-kit/scaffold-report-service/internal/domain"
)

// ClientRequest payload for creating or updating a client.
type ClientRequest struct {
	Name        string  `json:"name"`
	ContactInfo *string `json:"contact_info"`
}

// Validate checks the client payload.
func (r *ClientRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 255)),
		validation.Field(&r.ContactInfo, validation.Length(0, 1000)),
	)
}

// ClientResponse is the public shape of a client.
type ClientResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ContactInfo *string   `json:"contact_info,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewClientResponse maps a domain client.
func NewClientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ID:          client.ID,
		Name:        client.Name,
		ContactInfo: client.ContactInfo,
		CreatedAt:   client.CreatedAt,
	}
}
