package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/observability"
	"github.com/spec-kit/complaint-service/internal/service"
	"github.com/spec-kit/complaint-service/internal/storage"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// ComplaintsHandler manages complaint endpoints.
type ComplaintsHandler struct {
	service *service.ComplaintService
	photos  storage.PhotoStore
	metrics *observability.Metrics
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService, photos storage.PhotoStore, metrics *observability.Metrics) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService, photos: photos, metrics: metrics}
}

// Submit POST /complaints. Accepts JSON or multipart with an optional photo.
func (h *ComplaintsHandler) Submit(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.SubmitComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Check(req); err != nil {
		return err
	}

	input := service.ComplaintSubmitInput{
		Name:        req.Name,
		Ward:        req.Ward,
		Location:    req.Location,
		Category:    req.Category,
		Description: req.Description,
	}

	if isMultipart(c) {
		if file, err := c.FormFile("photo"); err == nil && file != nil {
			url, err := h.photos.Save(file)
			if err != nil {
				return err
			}
			input.PhotoURL = &url
		}
	}

	complaint, err := h.service.Submit(c.Context(), identity, input)
	if err != nil {
		return err
	}
	h.metrics.ComplaintsSubmitted.Inc()

	return c.Status(http.StatusCreated).JSON(dto.NewComplaintResponse(complaint))
}

// List GET /complaints. Admins see everything, citizens only their own.
func (h *ComplaintsHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	filter := service.ComplaintListFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.ComplaintStatus(strings.TrimSpace(part)))
		}
	}

	complaints, err := h.service.List(c.Context(), identity, filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewComplaintResponses(complaints))
}

// Get GET /complaints/:id.
func (h *ComplaintsHandler) Get(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	complaint, err := h.service.Get(c.Context(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewComplaintResponse(complaint))
}

// UpdateStatus PATCH /complaints/:id (alias /complaints/:id/status).
func (h *ComplaintsHandler) UpdateStatus(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Check(req); err != nil {
		return err
	}

	complaint, err := h.service.UpdateStatus(c.Context(), identity, c.Params("id"),
		domain.ComplaintStatus(req.Status), req.ResolutionNote)
	if err != nil {
		return err
	}
	h.metrics.ComplaintStatusUpdates.WithLabelValues(string(complaint.Status)).Inc()

	return c.JSON(dto.NewComplaintResponse(complaint))
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}
