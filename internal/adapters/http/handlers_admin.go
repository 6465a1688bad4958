package web

import (
	"net/http"
	"time"

	"coursebook/internal/adapters/http/middleware"
	"coursebook/internal/application/orchestrators"
	"coursebook/internal/application/projections"
	domainAccount "coursebook/internal/domain/account"
)

// handleAdminLogin handles GET (form) and POST (authenticate) for /admin/login
func handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		if middleware.IsAdmin(r.Context()) {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "admin_login.html", nil)
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.LoginInput{
			Email:    r.FormValue("Email"),
			Password: r.FormValue("Password"),
			Role:     domainAccount.RoleAdmin,
		}
		deps := orchestrators.LoginDeps{
			AccountStore: stores.AccountStore,
		}

		result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
		if err != nil {
			renderTemplate(w, r, "admin_login.html", map[string]any{
				"Error": err.Error(),
				"Email": input.Email,
			})
			return
		}

		token, err := sessions.Create(middleware.Session{
			AccountID: result.AccountID,
			Email:     result.Email,
			Name:      result.Name,
			Role:      result.Role,
		})
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		middleware.SetSessionCookie(w, token)
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleAdminDashboard handles GET /admin: every booking across all
// accounts, plus a request-timing snapshot for operators.
func handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	view, err := projections.QueryAdminBookings(r.Context(), projections.AdminDeps{
		BookingStore: stores.BookingStore,
		AccountStore: stores.AccountStore,
		CourseStore:  stores.CourseStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	data := map[string]any{
		"Bookings": view.Bookings,
	}
	if perfCollector != nil {
		data["Perf"] = perfCollector.Snapshot(time.Now().Add(-15*time.Minute), 5)
	}

	renderTemplate(w, r, "admin_dashboard.html", data)
}

// handleAdminEditBooking handles GET and POST for /admin/bookings/{id}/edit.
// The edit form renders the booking; saving is not implemented yet and
// bounces back to the admin dashboard.
func handleAdminEditBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		row, err := projections.QueryAdminBooking(r.Context(), r.PathValue("id"), projections.AdminDeps{
			BookingStore: stores.BookingStore,
			AccountStore: stores.AccountStore,
			CourseStore:  stores.CourseStore,
		})
		if err != nil {
			http.NotFound(w, r)
			return
		}
		renderTemplate(w, r, "edit_booking.html", map[string]any{
			"Booking": row,
		})
		return
	}

	if r.Method == "POST" {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}
