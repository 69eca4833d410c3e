package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/scaffold-report-service/internal/api/dto"
	"github.com/spec-kit/scaffold-report-service/internal/domain"
	"github.com/spec-kit/scaffold-report-service/internal/service"
	apperrors "github.com/spec-kit/scaffold-report-service/pkg/util"
)

// ClientsHandler exposes admin-only client CRUD endpoints.
type ClientsHandler struct {
	clients *service.ClientService
}

// NewClientsHandler constructs handler.
func NewClientsHandler(clientService *service.ClientService) *ClientsHandler {
	return &ClientsHandler{clients: clientService}
}

// List handles GET /api/clients.
func (h *ClientsHandler) List(c *fiber.Ctx) error {
	clients, err := h.clients.List(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		out = append(out, dto.NewClientResponse(&clients[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Get handles GET /api/clients/:id.
func (h *ClientsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	client, err := h.clients.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewClientResponse(client)})
}

// Create handles POST /api/clients.
func (h *ClientsHandler) Create(c *fiber.Ctx) error {
	req, err := parseClientRequest(c)
	if err != nil {
		return err
	}

	client := &domain.Client{Name: req.Name, ContactInfo: req.ContactInfo}
	if err := h.clients.Create(c.UserContext(), client); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewClientResponse(client)})
}

// Update handles PUT /api/clients/:id.
func (h *ClientsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	req, err := parseClientRequest(c)
	if err != nil {
		return err
	}

	client := &domain.Client{ID: id, Name: req.Name, ContactInfo: req.ContactInfo}
	if err := h.clients.Update(c.UserContext(), client); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewClientResponse(client)})
}

// Delete handles DELETE /api/clients/:id.
func (h *ClientsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.clients.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "client deleted"}})
}

func parseClientRequest(c *fiber.Ctx) (*dto.ClientRequest, error) {
	var req dto.ClientRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	return &req, nil
}
