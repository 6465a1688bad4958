package projections

import (
	"context"

	domainBooking "coursebook/internal/domain/booking"
	domainCourse "coursebook/internal/domain/course"
)

// BookingStoreForConfirmation defines the booking reads for the
// confirmation page.
type BookingStoreForConfirmation interface {
	GetByID(ctx context.Context, id string) (domainBooking.Booking, error)
	ModuleIDsForBooking(ctx context.Context, bookingID string) ([]string, error)
}

// CourseStoreForConfirmation resolves names for the confirmation page.
type CourseStoreForConfirmation interface {
	GetByID(ctx context.Context, id string) (domainCourse.Course, error)
	GetModuleByID(ctx context.Context, id string) (domainCourse.Module, error)
}

// ConfirmationBooking is one confirmed row on the submitted page.
type ConfirmationBooking struct {
	BookingID    string
	CourseName   string
	Status       string
	ExtraRequest string
	ModuleNames  []string
}

// ConfirmationView is everything the booking-submitted template renders.
type ConfirmationView struct {
	Bookings []ConfirmationBooking
}

// ConfirmationDeps holds dependencies for the confirmation projection.
type ConfirmationDeps struct {
	BookingStore BookingStoreForConfirmation
	CourseStore  CourseStoreForConfirmation
}

// QueryBookingConfirmation resolves the bookings recorded in the
// session after a successful submission. IDs the account does not own,
// or that no longer exist, are dropped rather than erroring.
// PRE: bookingIDs come from the session, recorded at creation time
// POST: Returns only bookings owned by accountID
func QueryBookingConfirmation(ctx context.Context, accountID string, bookingIDs []string, deps ConfirmationDeps) (ConfirmationView, error) {
	var view ConfirmationView

	for _, id := range bookingIDs {
		b, err := deps.BookingStore.GetByID(ctx, id)
		if err != nil {
			continue
		}
		if b.AccountID != accountID {
			continue
		}

		row := ConfirmationBooking{
			BookingID:    b.ID,
			Status:       b.Status,
			ExtraRequest: b.ExtraRequest,
		}
		course, err := deps.CourseStore.GetByID(ctx, b.CourseID)
		if err != nil {
			row.CourseName = b.CourseID
		} else {
			row.CourseName = course.Name
		}
		moduleIDs, err := deps.BookingStore.ModuleIDsForBooking(ctx, b.ID)
		if err != nil {
			return ConfirmationView{}, err
		}
		for _, moduleID := range moduleIDs {
			m, err := deps.CourseStore.GetModuleByID(ctx, moduleID)
			if err != nil {
				continue
			}
			row.ModuleNames = append(row.ModuleNames, m.Name)
		}

		view.Bookings = append(view.Bookings, row)
	}

	return view, nil
}
