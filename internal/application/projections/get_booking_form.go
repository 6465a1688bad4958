package projections

import (
	"context"

	domainBooking "coursebook/internal/domain/booking"
	domainCourse "coursebook/internal/domain/course"
)

// CourseStoreForForm defines the course reads for the booking form.
type CourseStoreForForm interface {
	ListActive(ctx context.Context) ([]domainCourse.Course, error)
	ModulesForCourse(ctx context.Context, courseID string) ([]domainCourse.Module, error)
}

// BookingStoreForForm reports which courses an account already booked.
type BookingStoreForForm interface {
	ListByAccount(ctx context.Context, accountID string) ([]domainBooking.Booking, error)
}

// FormModule is one module checkbox on the booking form.
type FormModule struct {
	ID   string
	Name string
}

// FormCourse is one course section on the booking form.
type FormCourse struct {
	ID            string
	Name          string
	Description   string // markdown, rendered by the template layer
	Modules       []FormModule
	AlreadyBooked bool
}

// BookingFormView is everything the booking form template renders.
type BookingFormView struct {
	Courses []FormCourse
}

// BookingFormDeps holds dependencies for the booking form projection.
type BookingFormDeps struct {
	CourseStore  CourseStoreForForm
	BookingStore BookingStoreForForm
}

// QueryBookingForm lists the active catalogue with each course's
// modules in display order, flagging courses the account already
// booked so the form can disable them.
// PRE: AccountID comes from an authenticated session
// POST: Returns active courses only, modules ordered
func QueryBookingForm(ctx context.Context, accountID string, deps BookingFormDeps) (BookingFormView, error) {
	courses, err := deps.CourseStore.ListActive(ctx)
	if err != nil {
		return BookingFormView{}, err
	}

	booked := make(map[string]bool)
	if deps.BookingStore != nil {
		existing, err := deps.BookingStore.ListByAccount(ctx, accountID)
		if err != nil {
			return BookingFormView{}, err
		}
		for _, b := range existing {
			booked[b.CourseID] = true
		}
	}

	var view BookingFormView
	for _, c := range courses {
		fc := FormCourse{
			ID:            c.ID,
			Name:          c.Name,
			Description:   c.Description,
			AlreadyBooked: booked[c.ID],
		}
		modules, err := deps.CourseStore.ModulesForCourse(ctx, c.ID)
		if err != nil {
			return BookingFormView{}, err
		}
		for _, m := range modules {
			fc.Modules = append(fc.Modules, FormModule{ID: m.ID, Name: m.Name})
		}
		view.Courses = append(view.Courses, fc)
	}

	return view, nil
}
