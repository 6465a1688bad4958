package projections

import (
	"context"

	domainBooking "coursebook/internal/domain/booking"
	domainCourse "coursebook/internal/domain/course"
)

// BookingStoreForDashboard defines the booking reads for the dashboard.
type BookingStoreForDashboard interface {
	ListByAccount(ctx context.Context, accountID string) ([]domainBooking.Booking, error)
	ModuleIDsForBooking(ctx context.Context, bookingID string) ([]string, error)
}

// CourseStoreForDashboard defines the course lookups for the dashboard.
type CourseStoreForDashboard interface {
	GetByID(ctx context.Context, id string) (domainCourse.Course, error)
	GetModuleByID(ctx context.Context, id string) (domainCourse.Module, error)
}

// DashboardBooking is one booking row on the customer dashboard.
type DashboardBooking struct {
	BookingID    string
	CourseID     string
	CourseName   string
	Status       string
	ExtraRequest string
	ModuleNames  []string
}

// DashboardView is everything the dashboard template renders.
type DashboardView struct {
	Name     string
	Email    string
	Phone    string
	Bookings []DashboardBooking
}

// DashboardDeps holds dependencies for the dashboard projection.
type DashboardDeps struct {
	BookingStore BookingStoreForDashboard
	CourseStore  CourseStoreForDashboard
}

// QueryDashboard builds the customer dashboard: profile details plus
// the account's bookings, most recent first, with course and module
// names resolved.
// PRE: AccountID comes from an authenticated session
// POST: Returns a view with zero or more booking rows
func QueryDashboard(ctx context.Context, accountID, name, email, phone string, deps DashboardDeps) (DashboardView, error) {
	view := DashboardView{Name: name, Email: email, Phone: phone}

	bookings, err := deps.BookingStore.ListByAccount(ctx, accountID)
	if err != nil {
		return DashboardView{}, err
	}

	for _, b := range bookings {
		row := DashboardBooking{
			BookingID:    b.ID,
			CourseID:     b.CourseID,
			Status:       b.Status,
			ExtraRequest: b.ExtraRequest,
		}

		course, err := deps.CourseStore.GetByID(ctx, b.CourseID)
		if err != nil {
			// A booking against a retired course still renders, with
			// the raw ID standing in for the name.
			row.CourseName = b.CourseID
		} else {
			row.CourseName = course.Name
		}

		moduleIDs, err := deps.BookingStore.ModuleIDsForBooking(ctx, b.ID)
		if err != nil {
			return DashboardView{}, err
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
