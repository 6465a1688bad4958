package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"coursebook/internal/adapters/email"
	bookingstore "coursebook/internal/adapters/storage/booking"
	domainBooking "coursebook/internal/domain/booking"
	domainCourse "coursebook/internal/domain/course"
)

// BookingStoreForCreate defines the store interface needed by CreateBooking.
type BookingStoreForCreate interface {
	GetByAccountAndCourse(ctx context.Context, accountID, courseID string) (domainBooking.Booking, error)
	CreateWithModules(ctx context.Context, bookings []domainBooking.Booking) error
}

// CourseStoreForCreate defines the course lookups needed by CreateBooking.
type CourseStoreForCreate interface {
	GetByID(ctx context.Context, id string) (domainCourse.Course, error)
	ModulesForCourse(ctx context.Context, courseID string) ([]domainCourse.Module, error)
}

// CourseSelection is one course picked on the booking form, with the
// module IDs ticked for it.
type CourseSelection struct {
	CourseID  string
	ModuleIDs []string
}

// CreateBookingInput carries input for the booking orchestrator.
type CreateBookingInput struct {
	AccountID    string
	AccountEmail string
	AccountName  string
	Selections   []CourseSelection
	// Extra is the free-text note from the booking form, stored on
	// every booking created by this submission.
	Extra string
}

// CreateBookingDeps holds dependencies for CreateBooking.
type CreateBookingDeps struct {
	BookingStore BookingStoreForCreate
	CourseStore  CourseStoreForCreate
	// EmailSender is optional; when set, a confirmation email is sent
	// best-effort after the bookings are persisted.
	EmailSender email.Sender
}

// CreateBookingResult reports what the orchestrator did per course.
type CreateBookingResult struct {
	// CreatedBookingIDs are the new booking IDs, in selection order.
	CreatedBookingIDs []string
	// SkippedCourseIDs are courses the account had already booked.
	SkippedCourseIDs []string
}

var (
	ErrNoCoursesSelected = errors.New("select at least one course")
	ErrUnknownCourse     = errors.New("selected course does not exist")
	ErrUnknownModule     = errors.New("selected module does not belong to the course")
)

// ExecuteCreateBooking books the selected courses for an account in one
// transaction. Courses the account already booked are skipped rather
// than rejected, so re-submitting the form is harmless.
// PRE: AccountID references an existing account
// POST: One Pending booking per new course, with its module rows; or no
// rows at all on error
// INVARIANT: At most one booking per (account, course) pair
func ExecuteCreateBooking(ctx context.Context, input CreateBookingInput, deps CreateBookingDeps) (CreateBookingResult, error) {
	if len(input.Selections) == 0 {
		return CreateBookingResult{}, ErrNoCoursesSelected
	}
	if len(input.Extra) > domainBooking.MaxExtraLength {
		return CreateBookingResult{}, domainBooking.ErrExtraTooLong
	}

	now := time.Now()
	var result CreateBookingResult
	var toCreate []domainBooking.Booking
	var courseNames []string

	for _, sel := range input.Selections {
		course, err := deps.CourseStore.GetByID(ctx, sel.CourseID)
		if err != nil {
			return CreateBookingResult{}, fmt.Errorf("%w: %s", ErrUnknownCourse, sel.CourseID)
		}

		// Re-submitting a course the account already booked is a no-op.
		if _, err := deps.BookingStore.GetByAccountAndCourse(ctx, input.AccountID, sel.CourseID); err == nil {
			result.SkippedCourseIDs = append(result.SkippedCourseIDs, sel.CourseID)
			continue
		} else if !errors.Is(err, bookingstore.ErrNotFound) {
			return CreateBookingResult{}, err
		}

		moduleIDs, err := validModuleIDs(ctx, deps.CourseStore, sel)
		if err != nil {
			return CreateBookingResult{}, err
		}

		b := domainBooking.Booking{
			ID:           uuid.New().String(),
			AccountID:    input.AccountID,
			CourseID:     sel.CourseID,
			Status:       domainBooking.StatusPending,
			ExtraRequest: input.Extra,
			ModuleIDs:    moduleIDs,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := b.Validate(); err != nil {
			return CreateBookingResult{}, err
		}
		toCreate = append(toCreate, b)
		courseNames = append(courseNames, course.Name)
	}

	if len(toCreate) > 0 {
		if err := deps.BookingStore.CreateWithModules(ctx, toCreate); err != nil {
			return CreateBookingResult{}, err
		}
		for _, b := range toCreate {
			result.CreatedBookingIDs = append(result.CreatedBookingIDs, b.ID)
		}
	}

	slog.Info("booking_event", "event", "bookings_created",
		"account_id", input.AccountID,
		"created", len(result.CreatedBookingIDs),
		"skipped", len(result.SkippedCourseIDs))

	if deps.EmailSender != nil && len(toCreate) > 0 && input.AccountEmail != "" {
		sendBookingConfirmation(ctx, deps.EmailSender, input, courseNames)
	}

	return result, nil
}

// validModuleIDs filters the submitted module IDs down to modules that
// actually belong to the selected course. A module ID from a different
// course is an error, not silently dropped.
func validModuleIDs(ctx context.Context, store CourseStoreForCreate, sel CourseSelection) ([]string, error) {
	if len(sel.ModuleIDs) == 0 {
		return nil, nil
	}

	modules, err := store.ModulesForCourse(ctx, sel.CourseID)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(modules))
	for _, m := range modules {
		known[m.ID] = true
	}

	seen := make(map[string]bool, len(sel.ModuleIDs))
	var ids []string
	for _, id := range sel.ModuleIDs {
		if !known[id] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownModule, id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// sendBookingConfirmation sends the confirmation email. Failures are
// logged, never surfaced; the bookings are already committed.
func sendBookingConfirmation(ctx context.Context, sender email.Sender, input CreateBookingInput, courseNames []string) {
	body := "<p>Hi " + html.EscapeString(input.AccountName) + ",</p><p>We received your booking for:</p><ul>"
	for _, name := range courseNames {
		body += "<li>" + html.EscapeString(name) + "</li>"
	}
	body += "</ul><p>We will confirm your places shortly.</p>"

	_, err := sender.Send(ctx, email.SendRequest{
		To:      []string{input.AccountEmail},
		Subject: "Your booking request",
		HTML:    body,
	})
	if err != nil {
		slog.Warn("email_event", "event", "confirmation_failed", "to", input.AccountEmail, "error", err)
	}
}
