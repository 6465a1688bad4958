package projections

import (
	"context"

	domainAccount "coursebook/internal/domain/account"
	domainBooking "coursebook/internal/domain/booking"
	domainCourse "coursebook/internal/domain/course"
)

// BookingStoreForAdmin defines the booking reads for the admin view.
type BookingStoreForAdmin interface {
	ListAll(ctx context.Context) ([]domainBooking.Booking, error)
	GetByID(ctx context.Context, id string) (domainBooking.Booking, error)
}

// AccountStoreForAdmin resolves customer details for the admin view.
type AccountStoreForAdmin interface {
	GetByID(ctx context.Context, id string) (domainAccount.Account, error)
}

// CourseStoreForAdmin resolves course names for the admin view.
type CourseStoreForAdmin interface {
	GetByID(ctx context.Context, id string) (domainCourse.Course, error)
}

// AdminBooking is one row in the admin bookings table.
type AdminBooking struct {
	BookingID     string
	CustomerName  string
	CustomerEmail string
	CourseName    string
	Status        string
	ExtraRequest  string
	UpdatedAt     string
}

// AdminBookingsView is everything the admin dashboard renders.
type AdminBookingsView struct {
	Bookings []AdminBooking
}

// AdminDeps holds dependencies for the admin projections.
type AdminDeps struct {
	BookingStore BookingStoreForAdmin
	AccountStore AccountStoreForAdmin
	CourseStore  CourseStoreForAdmin
}

// QueryAdminBookings lists every booking with customer and course
// names resolved, most recent first.
// PRE: Caller is an authenticated admin
// POST: Returns all bookings across all accounts
func QueryAdminBookings(ctx context.Context, deps AdminDeps) (AdminBookingsView, error) {
	bookings, err := deps.BookingStore.ListAll(ctx)
	if err != nil {
		return AdminBookingsView{}, err
	}

	var view AdminBookingsView
	for _, b := range bookings {
		view.Bookings = append(view.Bookings, deps.adminRow(ctx, b))
	}
	return view, nil
}

// QueryAdminBooking resolves a single booking for the edit page.
// PRE: Caller is an authenticated admin
// POST: Returns the booking row or the store's not-found error
func QueryAdminBooking(ctx context.Context, bookingID string, deps AdminDeps) (AdminBooking, error) {
	b, err := deps.BookingStore.GetByID(ctx, bookingID)
	if err != nil {
		return AdminBooking{}, err
	}
	return deps.adminRow(ctx, b), nil
}

func (deps AdminDeps) adminRow(ctx context.Context, b domainBooking.Booking) AdminBooking {
	row := AdminBooking{
		BookingID:    b.ID,
		Status:       b.Status,
		ExtraRequest: b.ExtraRequest,
		UpdatedAt:    b.UpdatedAt.Format("2006-01-02 15:04"),
	}

	if acct, err := deps.AccountStore.GetByID(ctx, b.AccountID); err == nil {
		row.CustomerName = acct.DisplayName()
		row.CustomerEmail = acct.Email
	} else {
		row.CustomerName = b.AccountID
	}
	if course, err := deps.CourseStore.GetByID(ctx, b.CourseID); err == nil {
		row.CourseName = course.Name
	} else {
		row.CourseName = b.CourseID
	}
	return row
}
