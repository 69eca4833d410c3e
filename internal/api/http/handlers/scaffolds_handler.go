package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/scaffold-report-service/internal/api/dto"
	"github.com/spec-kit/scaffold-report-service/internal/auth"
	"github.com/spec-kit/scaffold-report-service/internal/service"
	apperrors "github.com/spec-kit/scaffold-report-service/pkg/util"
)

// ScaffoldsHandler exposes assembly and disassembly reporting endpoints.
// Reports arrive as multipart forms because each carries a photo.
type ScaffoldsHandler struct {
	scaffolds *service.ScaffoldService
}

// NewScaffoldsHandler constructs handler.
func NewScaffoldsHandler(scaffoldService *service.ScaffoldService) *ScaffoldsHandler {
	return &ScaffoldsHandler{scaffolds: scaffoldService}
}

// Create handles POST /api/scaffolds. Expects a multipart form with the
// scaffold fields plus an "assembly_image" file.
func (h *ScaffoldsHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("not authenticated")
	}

	req, err := scaffoldRequestFromForm(c)
	if err != nil {
		return err
	}

	photo, err := photoFromForm(c, "assembly_image")
	if err != nil {
		return err
	}

	scaffold, err := h.scaffolds.Report(c.UserContext(), identity, service.NewScaffoldReport{
		ProjectID:          req.ProjectID,
		Height:             req.Height,
		Width:              req.Width,
		Depth:              req.Depth,
		ProgressPercentage: req.ProgressPercentage,
		AssemblyNotes:      req.AssemblyNotes,
	}, photo)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewScaffoldResponse(scaffold)})
}

// Disassemble handles PUT /api/scaffolds/:id/disassemble. Expects a
// multipart form with optional notes plus a "disassembly_image" file.
func (h *ScaffoldsHandler) Disassemble(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("not authenticated")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	req := dto.DisassembleScaffoldRequest{DisassemblyNotes: c.FormValue("disassembly_notes")}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	photo, err := photoFromForm(c, "disassembly_image")
	if err != nil {
		return err
	}

	scaffold, err := h.scaffolds.Disassemble(c.UserContext(), identity, id, req.DisassemblyNotes, photo)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewScaffoldResponse(scaffold)})
}

// ListByProject handles GET /api/scaffolds/project/:projectId.
func (h *ScaffoldsHandler) ListByProject(c *fiber.Ctx) error {
	projectID, err := parseID(c, "projectId")
	if err != nil {
		return err
	}
	scaffolds, err := h.scaffolds.ListByProject(c.UserContext(), projectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewScaffoldResponses(scaffolds)})
}

// MyHistory handles GET /api/scaffolds/my-history.
func (h *ScaffoldsHandler) MyHistory(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("not authenticated")
	}
	scaffolds, err := h.scaffolds.HistoryFor(c.UserContext(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewScaffoldResponses(scaffolds)})
}

func scaffoldRequestFromForm(c *fiber.Ctx) (*dto.CreateScaffoldRequest, error) {
	projectID, err := strconv.ParseInt(c.FormValue("project_id"), 10, 64)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid project_id", nil)
	}
	height, err := strconv.ParseFloat(c.FormValue("height"), 64)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid height", nil)
	}
	width, err := strconv.ParseFloat(c.FormValue("width"), 64)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid width", nil)
	}
	depth, err := strconv.ParseFloat(c.FormValue("depth"), 64)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid depth", nil)
	}

	progress := 0
	if raw := c.FormValue("progress_percentage"); raw != "" {
		progress, err = strconv.Atoi(raw)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid progress_percentage", nil)
		}
	}

	req := &dto.CreateScaffoldRequest{
		ProjectID:          projectID,
		Height:             height,
		Width:              width,
		Depth:              depth,
		ProgressPercentage: progress,
		AssemblyNotes:      c.FormValue("assembly_notes"),
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	return req, nil
}

func photoFromForm(c *fiber.Ctx, field string) (service.Photo, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return service.Photo{}, apperrors.NewValidationError(field+" file is required", nil)
	}
	data, contentType, err := readUpload(header)
	if err != nil {
		return service.Photo{}, apperrors.NewValidationError("could not read "+field, nil)
	}
	return service.Photo{Filename: header.Filename, ContentType: contentType, Data: data}, nil
}

func readUpload(header *multipart.FileHeader) ([]byte, string, error) {
	file, err := header.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return data, header.Header.Get("Content-Type"), nil
}
