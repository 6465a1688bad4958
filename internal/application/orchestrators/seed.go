package orchestrators

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	accountstore "coursebook/internal/adapters/storage/account"
	bookingstore "coursebook/internal/adapters/storage/booking"
	coursestore "coursebook/internal/adapters/storage/course"
	domainAccount "coursebook/internal/domain/account"
	domainBooking "coursebook/internal/domain/booking"
	domainCourse "coursebook/internal/domain/course"
)

// SeedDeps holds the stores the seeders write to.
type SeedDeps struct {
	AccountStore accountstore.Store
	CourseStore  coursestore.Store
	BookingStore bookingstore.Store
}

// seedCourse pairs a course with its module names, in display order.
type seedCourse struct {
	course  domainCourse.Course
	modules []string
}

var seedCatalogue = []seedCourse{
	{
		course: domainCourse.Course{
			ID:   "course-moving-castle",
			Name: "Moving Castle Creations – 3D Animation",
			Description: "Build a walking castle from the ground up. Covers rigging,\n" +
				"keyframing and rendering a fully animated short.\n\n" +
				"**No prior experience required.**",
			Active: true,
		},
		modules: []string{
			"Introduction to 3D Animation",
			"Character Design Basics",
			"Environmental Modelling",
		},
	},
	{
		course: domainCourse.Course{
			ID:   "course-totoro-design",
			Name: "Totoro Character Design",
			Description: "Design lovable forest spirits. Shape language, silhouette\n" +
				"and colour theory for character artists.",
			Active: true,
		},
		modules: []string{
			"Shape Language Fundamentals",
			"Expression Sheets",
			"Colour and Mood",
		},
	},
	{
		course: domainCourse.Course{
			ID:   "course-spirited-storyboard",
			Name: "Spirited Away Storyboarding",
			Description: "Turn a script into a shot-by-shot storyboard. Framing,\n" +
				"pacing and visual storytelling for film.",
			Active: true,
		},
		modules: []string{
			"Reading a Script for Shots",
			"Thumbnailing and Pacing",
			"Presenting a Board",
		},
	},
}

// ExecuteSeedCourses populates the course catalogue when it is empty.
// Safe to run on every startup.
// PRE: CourseStore is reachable
// POST: Catalogue contains the stock courses with their modules
func ExecuteSeedCourses(ctx context.Context, deps SeedDeps) error {
	n, err := deps.CourseStore.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, sc := range seedCatalogue {
		if err := deps.CourseStore.Save(ctx, sc.course); err != nil {
			return err
		}
		for i, name := range sc.modules {
			m := domainCourse.Module{
				ID:       sc.course.ID + "-m" + strconv.Itoa(i+1),
				CourseID: sc.course.ID,
				Name:     name,
				Order:    i + 1,
				Active:   true,
			}
			if err := deps.CourseStore.SaveModule(ctx, m); err != nil {
				return err
			}
		}
	}

	slog.Info("seed_event", "event", "courses_seeded", "count", len(seedCatalogue))
	return nil
}

// ExecuteSeedDemoCustomer creates the demo customer with two existing
// bookings so the dashboard has something to show. Only runs in
// development; skipped when the account already exists.
// PRE: Courses are seeded
// POST: abbie@example.com exists with bookings on the first two courses
func ExecuteSeedDemoCustomer(ctx context.Context, deps SeedDeps) error {
	const demoEmail = "abbie@example.com"

	if _, err := deps.AccountStore.GetByEmail(ctx, demoEmail); err == nil {
		return nil
	}

	acct := domainAccount.Account{
		ID:        uuid.New().String(),
		Email:     demoEmail,
		Name:      "Abbie",
		LastName:  "Smith",
		Phone:     "123-456-7890",
		Role:      domainAccount.RoleCustomer,
		CreatedAt: time.Now(),
	}
	if err := acct.SetPassword("group1"); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}

	now := time.Now()
	var bookings []domainBooking.Booking
	for i, sc := range seedCatalogue[:2] {
		modules, err := deps.CourseStore.ModulesForCourse(ctx, sc.course.ID)
		if err != nil {
			return err
		}
		b := domainBooking.Booking{
			ID:        uuid.New().String(),
			AccountID: acct.ID,
			CourseID:  sc.course.ID,
			Status:    domainBooking.StatusConfirmed,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
			UpdatedAt: now.Add(time.Duration(i) * time.Second),
		}
		if len(modules) > 0 {
			b.ModuleIDs = []string{modules[0].ID}
		}
		bookings = append(bookings, b)
	}
	if err := deps.BookingStore.CreateWithModules(ctx, bookings); err != nil {
		return err
	}

	slog.Info("seed_event", "event", "demo_customer_seeded", "email", demoEmail, "bookings", len(bookings))
	return nil
}
