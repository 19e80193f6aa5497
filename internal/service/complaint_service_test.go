package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
)

var (
	citizenA = domain.Identity{ID: "citizen-a", Role: domain.RoleCitizen, Email: "a@x.com"}
	citizenB = domain.Identity{ID: "citizen-b", Role: domain.RoleCitizen, Email: "b@x.com"}
	adminID  = domain.Identity{ID: "admin-1", Role: domain.RoleAdmin, Email: "adm@x.com"}
)

func newTestComplaintService() (*ComplaintService, events.Dispatcher) {
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewComplaintService(ComplaintDependencies{
		ComplaintRepo: repository.NewInMemoryComplaintRepository(),
		Dispatcher:    dispatcher,
	})
	return svc, dispatcher
}

func validInput() ComplaintSubmitInput {
	return ComplaintSubmitInput{
		Name:        "Asha",
		Ward:        "12",
		Location:    "Main Street",
		Category:    "Water Supply",
		Description: "leak",
	}
}

func TestSubmitSetsOpenStatusAndCode(t *testing.T) {
	svc, _ := newTestComplaintService()
	ctx := context.Background()

	complaint, err := svc.Submit(ctx, citizenA, validInput())
	require.NoError(t, err)

	assert.Equal(t, domain.ComplaintStatusOpen, complaint.Status)
	assert.Nil(t, complaint.ResolutionNote)
	assert.Equal(t, citizenA.ID, complaint.UserID)
	assert.Len(t, complaint.Code, 6)
	for _, ch := range complaint.Code {
		assert.Contains(t, codeAlphabet, string(ch))
	}
}

func TestSubmitRejectsMissingFields(t *testing.T) {
	svc, _ := newTestComplaintService()
	ctx := context.Background()

	input := validInput()
	input.Ward = "  "
	input.Description = ""

	_, err := svc.Submit(ctx, citizenA, input)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
	assert.Contains(t, err.Error(), "missing required fields")
}

func TestSubmitPublishesEvent(t *testing.T) {
	svc, dispatcher := newTestComplaintService()
	ctx := context.Background()

	var captured []events.Event
	dispatcher.Subscribe(events.EventComplaintSubmitted, func(_ context.Context, e events.Event) error {
		captured = append(captured, e)
		return nil
	})

	complaint, err := svc.Submit(ctx, citizenA, validInput())
	require.NoError(t, err)

	require.Len(t, captured, 1)
	assert.Equal(t, complaint.ID, captured[0].ComplaintID)
	assert.Equal(t, citizenA.ID, captured[0].Actor.UserID)
}

func TestListScopesToOwnerForCitizens(t *testing.T) {
	svc, _ := newTestComplaintService()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Submit(ctx, citizenA, validInput())
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}
	_, err := svc.Submit(ctx, citizenB, validInput())
	require.NoError(t, err)

	forA, err := svc.List(ctx, citizenA, ComplaintListFilter{})
	require.NoError(t, err)
	assert.Len(t, forA, 2)
	for _, c := range forA {
		assert.Equal(t, citizenA.ID, c.UserID)
	}

	forB, err := svc.List(ctx, citizenB, ComplaintListFilter{})
	require.NoError(t, err)
	assert.Len(t, forB, 1)

	forAdmin, err := svc.List(ctx, adminID, ComplaintListFilter{})
	require.NoError(t, err)
	assert.Len(t, forAdmin, 3)
}

func TestListReturnsEmptySliceForNewCitizen(t *testing.T) {
	svc, _ := newTestComplaintService()
	ctx := context.Background()

	_, err := svc.Submit(ctx, citizenA, validInput())
	require.NoError(t, err)

	forB, err := svc.List(ctx, citizenB, ComplaintListFilter{})
	require.NoError(t, err)
	assert.NotNil(t, forB)
	assert.Empty(t, forB)
}

func TestListNewestFirst(t *testing.T) {
	svc, _ := newTestComplaintService()
	ctx := context.Background()

	first, err := svc.Submit(ctx, citizenA, validInput())
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := svc.Submit(ctx, citizenA, validInput())
	require.NoError(t, err)

	list, err := svc.List(ctx, citizenA, ComplaintListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestUpdateStatusRequiresAdmin(t *testing.T) {
	svc, _ := newTestComplaintService()
	ctx := context.Background()

	complaint, err := svc.Submit(ctx, citizenA, validInput())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, citizenA, complaint.ID, domain.ComplaintStatusResolved, "fixed pipe")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", errCode(t, err))

	unchanged, err := svc.Get(ctx, citizenA, complaint.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusOpen, unchanged.Status)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestComplaintService()
	ctx := context.Background()

	complaint, err := svc.Submit(ctx, citizenA, validInput())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, adminID, complaint.ID, "Closed", "")
	require.Error(t, err)
	assert.Equal(t, "INVALID_STATUS", errCode(t, err))
}

func TestUpdateStatusResolvedRequiresNote(t *testing.T) {
	svc, _ := newTestComplaintService()
	ctx := context.Background()

	complaint, err := svc.Submit(ctx, citizenA, validInput())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, adminID, complaint.ID, domain.ComplaintStatusResolved, "   ")
	require.Error(t, err)
	assert.Equal(t, "MISSING_RESOLUTION_NOTE", errCode(t, err))

	unchanged, err := svc.Get(ctx, adminID, complaint.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusOpen, unchanged.Status)
	assert.Nil(t, unchanged.ResolutionNote)
}

func TestUpdateStatusUnknownComplaint(t *testing.T) {
	svc, _ := newTestComplaintService()
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, adminID, "no-such-id", domain.ComplaintStatusInProgress, "")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
}

func TestUpdateStatusResolvedPersistsNote(t *testing.T) {
	svc, _ := newTestComplaintService()
	ctx := context.Background()

	complaint, err := svc.Submit(ctx, citizenA, validInput())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, adminID, complaint.ID, domain.ComplaintStatusResolved, "fixed pipe")
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusResolved, updated.Status)
	require.NotNil(t, updated.ResolutionNote)
	assert.Equal(t, "fixed pipe", *updated.ResolutionNote)

	// Reopening without a note keeps the old note around.
	reopened, err := svc.UpdateStatus(ctx, adminID, complaint.ID, domain.ComplaintStatusOpen, "")
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusOpen, reopened.Status)
	require.NotNil(t, reopened.ResolutionNote)
	assert.Equal(t, "fixed pipe", *reopened.ResolutionNote)
}

func TestUpdateStatusAllowsAnyTransition(t *testing.T) {
	svc, _ := newTestComplaintService()
	ctx := context.Background()

	complaint, err := svc.Submit(ctx, citizenA, validInput())
	require.NoError(t, err)

	steps := []domain.ComplaintStatus{
		domain.ComplaintStatusResolved,
		domain.ComplaintStatusOpen,
		domain.ComplaintStatusInProgress,
		domain.ComplaintStatusResolved,
	}
	for _, status := range steps {
		note := ""
		if status == domain.ComplaintStatusResolved {
			note = "done"
		}
		updated, err := svc.UpdateStatus(ctx, adminID, complaint.ID, status, note)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestGetEnforcesVisibility(t *testing.T) {
	svc, _ := newTestComplaintService()
	ctx := context.Background()

	complaint, err := svc.Submit(ctx, citizenA, validInput())
	require.NoError(t, err)

	_, err = svc.Get(ctx, citizenB, complaint.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", errCode(t, err))

	got, err := svc.Get(ctx, adminID, complaint.ID)
	require.NoError(t, err)
	assert.Equal(t, complaint.ID, got.ID)

	_, err = svc.Get(ctx, adminID, "no-such-id")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
}

func TestGenerateCodeUsesUnambiguousAlphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "I")
		for _, ch := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, ch))
		}
	}
}

// Full round-trip covering the triage workflow end to end.
func TestTriageScenario(t *testing.T) {
	svc, _ := newTestComplaintService()
	ctx := context.Background()

	c1, err := svc.Submit(ctx, citizenA, ComplaintSubmitInput{
		Name:        "Citizen A",
		Ward:        "12",
		Location:    "Pump House Road",
		Category:    "Water Supply",
		Description: "leak",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, adminID, c1.ID, domain.ComplaintStatusResolved, "")
	require.Error(t, err)
	assert.Equal(t, "MISSING_RESOLUTION_NOTE", errCode(t, err))

	resolved, err := svc.UpdateStatus(ctx, adminID, c1.ID, domain.ComplaintStatusResolved, "fixed pipe")
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolutionNote)
	assert.Equal(t, "fixed pipe", *resolved.ResolutionNote)

	forA, err := svc.List(ctx, citizenA, ComplaintListFilter{})
	require.NoError(t, err)
	require.Len(t, forA, 1)
	assert.Equal(t, c1.ID, forA[0].ID)
	assert.Equal(t, domain.ComplaintStatusResolved, forA[0].Status)

	forB, err := svc.List(ctx, citizenB, ComplaintListFilter{})
	require.NoError(t, err)
	assert.Empty(t, forB)
}
