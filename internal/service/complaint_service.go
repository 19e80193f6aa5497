package service

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// Unambiguous alphabet for the short human-facing code: no 0/O, no I.
const codeAlphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const (
	codeLength       = 6
	maxCodeAttempts  = 5
	defaultListLimit = 100
)

// ComplaintService enforces complaint policy: field validation, ownership
// visibility, and the status machine.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	dispatcher events.Dispatcher
}

// ComplaintDependencies bundles requirements for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	Dispatcher    events.Dispatcher
}

// ComplaintSubmitInput describes the submission payload. The owner is never
// part of the input; it is always the authenticated caller.
type ComplaintSubmitInput struct {
	Name        string
	Ward        string
	Location    string
	Category    string
	Description string
	PhotoURL    *string
}

// ComplaintListFilter narrows listings within the caller's visibility scope.
type ComplaintListFilter struct {
	Statuses []domain.ComplaintStatus
	Limit    int
	Offset   int
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints: deps.ComplaintRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Submit records a new complaint owned by the caller, status Open.
func (s *ComplaintService) Submit(ctx context.Context, owner domain.Identity, input ComplaintSubmitInput) (*domain.Complaint, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Ward = strings.TrimSpace(input.Ward)
	input.Location = strings.TrimSpace(input.Location)
	input.Category = strings.TrimSpace(input.Category)
	input.Description = strings.TrimSpace(input.Description)

	if details := missingFields(input); len(details) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", details)
	}

	code, err := s.uniqueCode(ctx)
	if err != nil {
		return nil, err
	}

	complaint := &domain.Complaint{
		Code:        code,
		UserID:      owner.ID,
		Name:        input.Name,
		Ward:        input.Ward,
		Location:    input.Location,
		Category:    input.Category,
		PhotoURL:    input.PhotoURL,
		Description: input.Description,
		Status:      domain.ComplaintStatusOpen,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintSubmitted,
		ComplaintID: complaint.ID,
		Actor:       events.Actor{UserID: owner.ID, Role: owner.Role},
		Payload: events.ComplaintSubmittedPayload{
			Code:     complaint.Code,
			Ward:     complaint.Ward,
			Category: complaint.Category,
		},
	})
	return complaint, nil
}

// List returns complaints visible to the caller, newest first. Admins see
// everything; citizens only their own submissions.
func (s *ComplaintService) List(ctx context.Context, identity domain.Identity, filter ComplaintListFilter) ([]domain.Complaint, error) {
	repoFilter := repository.ComplaintFilter{
		Statuses: filter.Statuses,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}
	if repoFilter.Limit <= 0 {
		repoFilter.Limit = defaultListLimit
	}
	if !identity.IsAdmin() {
		ownerID := identity.ID
		repoFilter.OwnerID = &ownerID
	}

	complaints, err := s.complaints.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	if complaints == nil {
		complaints = []domain.Complaint{}
	}
	return complaints, nil
}

// Get fetches a single complaint under the same visibility rule as List.
func (s *ComplaintService) Get(ctx context.Context, identity domain.Identity, complaintID string) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"id": complaintID})
		}
		return nil, err
	}
	if !identity.IsAdmin() && complaint.UserID != identity.ID {
		return nil, apperrors.NewForbidden("access denied")
	}
	return complaint, nil
}

// UpdateStatus changes a complaint's status. Admin only. Any transition
// between known states is allowed; resolving requires a non-empty note. A
// provided note overwrites the stored one, an absent note leaves it intact.
func (s *ComplaintService) UpdateStatus(ctx context.Context, identity domain.Identity, complaintID string, newStatus domain.ComplaintStatus, resolutionNote string) (*domain.Complaint, error) {
	if !identity.IsAdmin() {
		return nil, apperrors.NewForbidden("admin role required")
	}
	if !newStatus.Valid() {
		return nil, apperrors.NewInvalidStatus(string(newStatus))
	}
	resolutionNote = strings.TrimSpace(resolutionNote)
	if newStatus == domain.ComplaintStatusResolved && resolutionNote == "" {
		return nil, apperrors.NewMissingResolutionNote()
	}

	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"id": complaintID})
		}
		return nil, err
	}

	oldStatus := complaint.Status
	complaint.Status = newStatus
	if resolutionNote != "" {
		complaint.ResolutionNote = &resolutionNote
	}
	if err := s.complaints.Update(ctx, complaint); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: complaint.ID,
		Actor:       events.Actor{UserID: identity.ID, Role: identity.Role},
		Payload: events.ComplaintStatusChangedPayload{
			OldStatus:      oldStatus,
			NewStatus:      newStatus,
			ResolutionNote: resolutionNote,
		},
	})
	return complaint, nil
}

// uniqueCode draws short codes until one is unused. The space (33^6) makes
// collisions rare; the retry bound exists so a pathological store state
// cannot loop forever.
func (s *ComplaintService) uniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := generateCode()
		if err != nil {
			return "", err
		}
		_, err = s.complaints.GetByCode(ctx, code)
		if errors.Is(err, pgx.ErrNoRows) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", apperrors.NewInternalError(errors.New("could not allocate complaint code"))
}

func generateCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, codeLength)
	for i, b := range buf {
		out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(out), nil
}

func missingFields(input ComplaintSubmitInput) map[string]any {
	details := map[string]any{}
	if input.Name == "" {
		details["name"] = "required"
	}
	if input.Ward == "" {
		details["ward"] = "required"
	}
	if input.Location == "" {
		details["location"] = "required"
	}
	if input.Category == "" {
		details["category"] = "required"
	}
	if input.Description == "" {
		details["description"] = "required"
	}
	return details
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
