package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/scaffold-report-service/internal/api/dto"
	"github.com/spec-kit/scaffold-report-service/internal/auth"
	"github.com/spec-kit/scaffold-report-service/internal/domain"
	"github.com/spec-kit/scaffold-report-service/internal/service"
	apperrors "github.com/spec-kit/scaffold-report-service/pkg/util"
)

// ProjectsHandler exposes project CRUD, assignment and export endpoints.
type ProjectsHandler struct {
	projects *service.ProjectService
	exports  *service.ExportService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projectService *service.ProjectService, exportService *service.ExportService) *ProjectsHandler {
	return &ProjectsHandler{projects: projectService, exports: exportService}
}

// List handles GET /api/projects. Admins see every project,
// technicians only their assignments.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("not authenticated")
	}

	projects, err := h.projects.ListFor(c.UserContext(), identity)
	if err != nil {
		return err
	}

	out := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, dto.NewProjectResponse(&projects[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Get handles GET /api/projects/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	project, err := h.projects.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// Create handles POST /api/projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	req, err := parseProjectRequest(c)
	if err != nil {
		return err
	}

	project := &domain.Project{
		ClientID: req.ClientID,
		Name:     req.Name,
		Status:   domain.ProjectStatus(req.Status),
	}
	if err := h.projects.Create(c.UserContext(), identity, project); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// Update handles PUT /api/projects/:id.
func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	req, err := parseProjectRequest(c)
	if err != nil {
		return err
	}

	project := &domain.Project{
		ID:       id,
		ClientID: req.ClientID,
		Name:     req.Name,
		Status:   domain.ProjectStatus(req.Status),
	}
	if err := h.projects.Update(c.UserContext(), project); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectResponse(project)})
}

// Delete handles DELETE /api/projects/:id.
func (h *ProjectsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.projects.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "project deleted"}})
}

// AssignedUsers handles GET /api/projects/:id/users.
func (h *ProjectsHandler) AssignedUsers(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ids, err := h.projects.AssignedUserIDs(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ids})
}

// AssignUsers handles POST /api/projects/:id/users.
func (h *ProjectsHandler) AssignUsers(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.AssignUsersRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	if err := h.projects.AssignUsers(c.UserContext(), id, req.UserIDs); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "users assigned"}})
}

// ReportPDF handles GET /api/projects/:id/report/pdf.
func (h *ProjectsHandler) ReportPDF(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	name, err := h.exports.WriteProjectPDF(c.UserContext(), id, &buf)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="report_%s.pdf"`, sanitizeFilename(name)))
	return c.Send(buf.Bytes())
}

// ReportExcel handles GET /api/projects/:id/report/excel.
func (h *ProjectsHandler) ReportExcel(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	name, data, err := h.exports.BuildProjectExcel(c.UserContext(), id)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="report_%s.xlsx"`, sanitizeFilename(name)))
	return c.Send(data)
}

func parseProjectRequest(c *fiber.Ctx) (*dto.ProjectRequest, error) {
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	return &req, nil
}

func sanitizeFilename(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}
