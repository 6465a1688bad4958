package booking

import (
	"context"
	"errors"

	domain "coursebook/internal/domain/booking"
)

// ErrNotFound is returned when a booking does not exist.
var ErrNotFound = errors.New("booking not found")

// Store persists Booking state, including selected module rows.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Booking, error)
	GetByAccountAndCourse(ctx context.Context, accountID, courseID string) (domain.Booking, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	Save(ctx context.Context, value domain.Booking) error
	// UpdateExtraRequest overwrites the extra request of the booking
	// matching (accountID, courseID). Returns the number of rows
	// affected; zero rows is not an error.
	UpdateExtraRequest(ctx context.Context, accountID, courseID, extra string) (int64, error)
	// CreateWithModules inserts the given bookings and their module
	// rows as a single transaction. Either every row is persisted or
	// none are.
	CreateWithModules(ctx context.Context, bookings []domain.Booking) error
	ModuleIDsForBooking(ctx context.Context, bookingID string) ([]string, error)
	Count(ctx context.Context) (int, error)
}
