package browser_test

import (
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"
)

// TestBookingFlow_EndToEnd walks the full customer journey: log in with
// the demo credentials, book a new course with a module, and check the
// confirmation and dashboard.
func TestBookingFlow_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)
	app.loginAsDemoCustomer(t, page)

	// Dashboard shows the two seeded bookings
	content, err := page.Content()
	if err != nil {
		t.Fatalf("failed to read dashboard: %v", err)
	}
	if !strings.Contains(content, "Abbie Smith") {
		t.Error("dashboard missing customer name")
	}
	if !strings.Contains(content, "Moving Castle Creations") {
		t.Error("dashboard missing seeded booking")
	}

	// The demo customer has not booked the storyboarding course yet
	if _, err := page.Goto(app.BaseURL + "/book"); err != nil {
		t.Fatalf("failed to open booking form: %v", err)
	}
	if err := page.Locator("input[name=Courses][value=course-spirited-storyboard]").Check(); err != nil {
		t.Fatalf("failed to pick course: %v", err)
	}
	if err := page.Locator("input[name=Modules_course-spirited-storyboard]").First().Check(); err != nil {
		t.Fatalf("failed to pick module: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to submit booking: %v", err)
	}
	if err := page.WaitForURL(app.BaseURL+"/booking-submitted", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("booking did not redirect to confirmation: %v", err)
	}

	content, err = page.Content()
	if err != nil {
		t.Fatalf("failed to read confirmation: %v", err)
	}
	if !strings.Contains(content, "Spirited Away Storyboarding") {
		t.Error("confirmation missing booked course")
	}
	if !strings.Contains(content, "Pending") {
		t.Error("confirmation missing Pending status")
	}

	// The new booking appears on the dashboard
	if _, err := page.Goto(app.BaseURL + "/dashboard"); err != nil {
		t.Fatalf("failed to return to dashboard: %v", err)
	}
	content, err = page.Content()
	if err != nil {
		t.Fatalf("failed to read dashboard: %v", err)
	}
	if !strings.Contains(content, "Spirited Away Storyboarding") {
		t.Error("dashboard missing new booking")
	}
}

// TestBookingFlow_ExtraRequestRoundTrip edits an extra request on the
// dashboard and verifies it survives a reload.
func TestBookingFlow_ExtraRequestRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)
	app.loginAsDemoCustomer(t, page)

	if err := page.Locator("textarea[name=ExtraRequest]").First().Fill("Beginner friendly tools please"); err != nil {
		t.Fatalf("failed to fill extra request: %v", err)
	}
	if err := page.Locator("form[action='/dashboard'] button[type=submit]").First().Click(); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if err := page.WaitForURL(app.BaseURL+"/dashboard", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("save did not land back on dashboard: %v", err)
	}

	content, err := page.Content()
	if err != nil {
		t.Fatalf("failed to read dashboard: %v", err)
	}
	if !strings.Contains(content, "Beginner friendly tools please") {
		t.Error("extra request not persisted")
	}
}

// TestAdminFlow_SeesAllBookings logs in as staff and checks the
// bookings table.
func TestAdminFlow_SeesAllBookings(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)
	app.loginAs(t, page, "/admin/login", "admin@test.com", "TestPass123!", "/admin")

	content, err := page.Content()
	if err != nil {
		t.Fatalf("failed to read admin page: %v", err)
	}
	if !strings.Contains(content, "abbie@example.com") {
		t.Error("admin table missing demo customer bookings")
	}
	if !strings.Contains(content, "Moving Castle Creations") {
		t.Error("admin table missing course name")
	}
}
