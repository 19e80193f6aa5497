package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// SubmitComplaintRequest payload. The photo arrives separately as a
// multipart file; the owner is never client-supplied.
type SubmitComplaintRequest struct {
	Name        string `json:"name" form:"name" validate:"required"`
	Ward        string `json:"ward" form:"ward" validate:"required"`
	Location    string `json:"location" form:"location" validate:"required"`
	Category    string `json:"category" form:"category" validate:"required"`
	Description string `json:"description" form:"description" validate:"required"`
}

// UpdateStatusRequest payload for PATCH /complaints/:id.
type UpdateStatusRequest struct {
	Status         string `json:"status" validate:"required"`
	ResolutionNote string `json:"resolutionNote"`
}

// ComplaintResponse is the public complaint representation.
type ComplaintResponse struct {
	ID             string                 `json:"id"`
	Code           string                 `json:"complaintId"`
	UserID         string                 `json:"user"`
	Name           string                 `json:"name"`
	Ward           string                 `json:"ward"`
	Location       string                 `json:"location"`
	Category       string                 `json:"category"`
	PhotoURL       *string                `json:"photoUrl,omitempty"`
	Description    string                 `json:"description"`
	Status         domain.ComplaintStatus `json:"status"`
	ResolutionNote *string                `json:"resolutionNote,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

// NewComplaintResponse maps the domain model.
func NewComplaintResponse(complaint *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:             complaint.ID,
		Code:           complaint.Code,
		UserID:         complaint.UserID,
		Name:           complaint.Name,
		Ward:           complaint.Ward,
		Location:       complaint.Location,
		Category:       complaint.Category,
		PhotoURL:       complaint.PhotoURL,
		Description:    complaint.Description,
		Status:         complaint.Status,
		ResolutionNote: complaint.ResolutionNote,
		CreatedAt:      complaint.CreatedAt,
		UpdatedAt:      complaint.UpdatedAt,
	}
}

// NewComplaintResponses maps a slice.
func NewComplaintResponses(complaints []domain.Complaint) []ComplaintResponse {
	items := make([]ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, NewComplaintResponse(&complaints[i]))
	}
	return items
}
