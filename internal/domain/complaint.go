package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusOpen       ComplaintStatus = "Open"
	ComplaintStatusInProgress ComplaintStatus = "In Progress"
	ComplaintStatusResolved   ComplaintStatus = "Resolved"
)

// Valid reports whether the status is one of the known values.
func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintStatusOpen, ComplaintStatusInProgress, ComplaintStatusResolved:
		return true
	}
	return false
}

// Complaint is the aggregate for citizen-submitted issues. Code is a short
// human-facing identifier printed on receipts; ID is the store key. The
// owner is always the authenticated submitter.
type Complaint struct {
	ID             string
	Code           string
	UserID         string
	Name           string
	Ward           string
	Location       string
	Category       string
	PhotoURL       *string
	Description    string
	Status         ComplaintStatus
	ResolutionNote *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
