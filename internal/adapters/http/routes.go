package web

import (
	"net/http"

	"coursebook/internal/adapters/http/middleware"
	domainAccount "coursebook/internal/domain/account"
)

// registerRoutes wires all application routes onto the mux. Gated
// routes redirect to the matching login page rather than erroring.
func registerRoutes(mux *http.ServeMux) {
	customerOnly := middleware.RequireRole("/login", domainAccount.RoleCustomer)
	adminOnly := middleware.RequireRole("/admin/login", domainAccount.RoleAdmin)

	mux.HandleFunc("/", handleIndex)
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/register", handleRegister)
	mux.HandleFunc("/logout", handleLogout)

	mux.Handle("/dashboard", customerOnly(http.HandlerFunc(handleDashboard)))
	mux.Handle("/book", customerOnly(http.HandlerFunc(handleBook)))
	mux.Handle("/booking-submitted", customerOnly(http.HandlerFunc(handleBookingSubmitted)))

	mux.HandleFunc("/admin/login", handleAdminLogin)
	mux.Handle("/admin", adminOnly(http.HandlerFunc(handleAdminDashboard)))
	mux.Handle("/admin/bookings/{id}/edit", adminOnly(http.HandlerFunc(handleAdminEditBooking)))
}
