package orchestrators

import (
	"context"
	"log/slog"

	domainBooking "coursebook/internal/domain/booking"
)

// BookingStoreForUpdate defines the store interface needed by UpdateExtraRequest.
type BookingStoreForUpdate interface {
	UpdateExtraRequest(ctx context.Context, accountID, courseID, extra string) (int64, error)
}

// UpdateExtraRequestInput carries input for the extra-request update.
type UpdateExtraRequestInput struct {
	AccountID string
	CourseID  string
	Extra     string
}

// UpdateExtraRequestDeps holds dependencies for UpdateExtraRequest.
type UpdateExtraRequestDeps struct {
	BookingStore BookingStoreForUpdate
}

// ExecuteUpdateExtraRequest overwrites the free-text extra request on
// the booking matching (account, course). Submitting against a course
// the account never booked is a silent no-op.
// PRE: AccountID comes from the session, never from the form
// POST: Extra request replaced on the matching booking, if any
func ExecuteUpdateExtraRequest(ctx context.Context, input UpdateExtraRequestInput, deps UpdateExtraRequestDeps) error {
	if len(input.Extra) > domainBooking.MaxExtraLength {
		return domainBooking.ErrExtraTooLong
	}

	rows, err := deps.BookingStore.UpdateExtraRequest(ctx, input.AccountID, input.CourseID, input.Extra)
	if err != nil {
		return err
	}

	slog.Info("booking_event", "event", "extra_updated",
		"account_id", input.AccountID,
		"course_id", input.CourseID,
		"rows", rows)
	return nil
}
