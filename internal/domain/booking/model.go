package booking

import (
	"errors"
	"time"
)

// Booking status constants
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
)

// MaxExtraLength bounds the free-text extra request field.
const MaxExtraLength = 1000

// ValidStatuses contains all valid status values.
var ValidStatuses = []string{StatusPending, StatusConfirmed, StatusCancelled}

// Domain errors
var (
	ErrEmptyAccountID = errors.New("booking must reference an account")
	ErrEmptyCourseID  = errors.New("booking must reference a course")
	ErrInvalidStatus  = errors.New("status must be one of: Pending, Confirmed, Cancelled")
	ErrExtraTooLong   = errors.New("extra request cannot exceed 1000 characters")
)

// Booking links an Account to a Course with optional selected modules
// and a free-text extra request. A booking is uniquely identified by
// its (account, course) pair.
type Booking struct {
	ID           string
	AccountID    string
	CourseID     string
	Status       string
	ExtraRequest string
	ModuleIDs    []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks if the Booking has valid data.
// PRE: Booking struct is populated
// POST: Returns nil if valid, error otherwise
func (b *Booking) Validate() error {
	if b.AccountID == "" {
		return ErrEmptyAccountID
	}
	if b.CourseID == "" {
		return ErrEmptyCourseID
	}
	if !isValidStatus(b.Status) {
		return ErrInvalidStatus
	}
	if len(b.ExtraRequest) > MaxExtraLength {
		return ErrExtraTooLong
	}
	return nil
}

// SetExtraRequest replaces the free-text extra request.
// PRE: Booking exists
// POST: ExtraRequest replaced and UpdatedAt bumped, or error if too long
func (b *Booking) SetExtraRequest(extra string, now time.Time) error {
	if len(extra) > MaxExtraLength {
		return ErrExtraTooLong
	}
	b.ExtraRequest = extra
	b.UpdatedAt = now
	return nil
}

func isValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}
