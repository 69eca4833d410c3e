package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/scaffold-report-service/internal/domain"
	"github.com/spec-kit/scaffold-report-service/internal/repository"
	apperrors "github.com/spec-kit/scaffold-report-service/pkg/util"
)

// ClientService handles client company administration.
type ClientService struct {
	clients repository.ClientRepository
}

// NewClientService builds the service.
func NewClientService(clients repository.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

// List returns all clients ordered by name.
func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	return s.clients.List(ctx)
}

// Get fetches a single client.
func (s *ClientService) Get(ctx context.Context, id int64) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("client", nil)
		}
		return nil, err
	}
	return client, nil
}

// Create adds a client.
func (s *ClientService) Create(ctx context.Context, client *domain.Client) error {
	return s.clients.Create(ctx, client)
}

// Update modifies a client.
func (s *ClientService) Update(ctx context.Context, client *domain.Client) error {
	if err := s.clients.Update(ctx, client); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("client", nil)
		}
		return err
	}
	return nil
}

// Delete removes a client and, via cascade, its projects.
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	if err := s.clients.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("client", nil)
		}
		return err
	}
	return nil
}
