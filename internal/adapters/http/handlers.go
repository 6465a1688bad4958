package web

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"coursebook/internal/adapters/http/middleware"
	"coursebook/internal/application/orchestrators"
	"coursebook/internal/application/projections"
	domainAccount "coursebook/internal/domain/account"
	domainBooking "coursebook/internal/domain/booking"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// isBookingValidationError reports whether a booking error came from the
// customer's input. Only these are safe to echo back inline; everything
// else is a persistence failure and stays generic.
func isBookingValidationError(err error) bool {
	return errors.Is(err, orchestrators.ErrNoCoursesSelected) ||
		errors.Is(err, orchestrators.ErrUnknownCourse) ||
		errors.Is(err, orchestrators.ErrUnknownModule) ||
		errors.Is(err, domainBooking.ErrExtraTooLong)
}

// templatesDir is relative to the working directory of the server
// process. Tests run from the package directory and point it at the
// local templates folder.
var templatesDir = "internal/adapters/http/templates"

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	if data == nil {
		data = map[string]any{}
	}
	sess, ok := middleware.GetSessionFromContext(r.Context())
	role := ""
	name := ""
	if ok {
		role = sess.Role
		name = sess.Name
	}

	funcMap := template.FuncMap{
		"currentRole": func() string { return role },
		"currentName": func() string { return name },
		"isLoggedIn":  func() bool { return role != "" },
		"isAdmin":     func() bool { return role == domainAccount.RoleAdmin },
		"csrfToken":   func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// handleIndex handles GET / (landing page).
func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	renderTemplate(w, r, "index.html", nil)
}

// handleLogin handles GET (form) and POST (authenticate) for /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		// If already logged in, redirect to dashboard
		if middleware.IsCustomer(r.Context()) {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", nil)
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
			Role:     domainAccount.RoleCustomer,
		}
		deps := orchestrators.LoginDeps{
			AccountStore: stores.AccountStore,
		}

		result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
		if err != nil {
			renderTemplate(w, r, "login.html", map[string]any{
				"Error": err.Error(),
				"Email": input.Email,
			})
			return
		}

		token, err := sessions.Create(middleware.Session{
			AccountID: result.AccountID,
			Email:     result.Email,
			Name:      result.Name,
			Phone:     result.Phone,
			Role:      result.Role,
		})
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		middleware.SetSessionCookie(w, token)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleRegister handles GET (form) and POST (create account) for /register
func handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		if middleware.IsCustomer(r.Context()) {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "register.html", nil)
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.CreateAccountInput{
			Email:           r.FormValue("Email"),
			Name:            r.FormValue("Name"),
			LastName:        r.FormValue("LastName"),
			Phone:           r.FormValue("Phone"),
			Password:        r.FormValue("Password"),
			ConfirmPassword: r.FormValue("ConfirmPassword"),
		}
		deps := orchestrators.CreateAccountDeps{
			AccountStore: stores.AccountStore,
		}

		_, err := orchestrators.ExecuteCreateAccount(r.Context(), input, deps)
		if err != nil {
			renderTemplate(w, r, "register.html", map[string]any{
				"Error":    err.Error(),
				"Email":    input.Email,
				"Name":     input.Name,
				"LastName": input.LastName,
				"Phone":    input.Phone,
			})
			return
		}

		// Registration does not log the customer in; they sign in with
		// their new credentials.
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles GET /logout (a plain navigation link).
func handleLogout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err == nil {
		sessions.Delete(cookie.Value)
	}

	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleDashboard handles GET (view) and POST (update extra request) for /dashboard
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, _ := middleware.GetSessionFromContext(ctx)

	if r.Method == "GET" {
		view, err := projections.QueryDashboard(ctx, session.AccountID, session.Name, session.Email, session.Phone,
			projections.DashboardDeps{
				BookingStore: stores.BookingStore,
				CourseStore:  stores.CourseStore,
			})
		if err != nil {
			internalError(w, err)
			return
		}
		renderTemplate(w, r, "dashboard.html", map[string]any{
			"Profile":  view,
			"Bookings": view.Bookings,
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		// The account comes from the session, never from the form, so a
		// customer can only ever touch their own bookings.
		err := orchestrators.ExecuteUpdateExtraRequest(ctx, orchestrators.UpdateExtraRequestInput{
			AccountID: session.AccountID,
			CourseID:  r.FormValue("CourseID"),
			Extra:     r.FormValue("ExtraRequest"),
		}, orchestrators.UpdateExtraRequestDeps{
			BookingStore: stores.BookingStore,
		})
		if errors.Is(err, domainBooking.ErrExtraTooLong) {
			view, verr := projections.QueryDashboard(ctx, session.AccountID, session.Name, session.Email, session.Phone,
				projections.DashboardDeps{
					BookingStore: stores.BookingStore,
					CourseStore:  stores.CourseStore,
				})
			if verr != nil {
				internalError(w, verr)
				return
			}
			renderTemplate(w, r, "dashboard.html", map[string]any{
				"Profile":  view,
				"Bookings": view.Bookings,
				"Error":    err.Error(),
			})
			return
		}
		if err != nil {
			internalError(w, err)
			return
		}

		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleBook handles GET (form) and POST (create bookings) for /book
func handleBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, _ := middleware.GetSessionFromContext(ctx)

	if r.Method == "GET" {
		view, err := projections.QueryBookingForm(ctx, session.AccountID, projections.BookingFormDeps{
			CourseStore:  stores.CourseStore,
			BookingStore: stores.BookingStore,
		})
		if err != nil {
			internalError(w, err)
			return
		}
		renderTemplate(w, r, "book.html", map[string]any{
			"Courses": view.Courses,
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		var selections []orchestrators.CourseSelection
		for _, courseID := range r.Form["Courses"] {
			selections = append(selections, orchestrators.CourseSelection{
				CourseID:  courseID,
				ModuleIDs: r.Form["Modules_"+courseID],
			})
		}
		if len(selections) == 0 {
			http.Redirect(w, r, "/book", http.StatusSeeOther)
			return
		}

		result, err := orchestrators.ExecuteCreateBooking(ctx, orchestrators.CreateBookingInput{
			AccountID:    session.AccountID,
			AccountEmail: session.Email,
			AccountName:  session.Name,
			Selections:   selections,
			Extra:        r.FormValue("ExtraRequest"),
		}, orchestrators.CreateBookingDeps{
			BookingStore: stores.BookingStore,
			CourseStore:  stores.CourseStore,
			EmailSender:  emailSender,
		})
		if err != nil {
			// Storage failures get a generic 500; only input problems
			// are echoed back on the form.
			if !isBookingValidationError(err) {
				internalError(w, err)
				return
			}
			view, verr := projections.QueryBookingForm(ctx, session.AccountID, projections.BookingFormDeps{
				CourseStore:  stores.CourseStore,
				BookingStore: stores.BookingStore,
			})
			if verr != nil {
				internalError(w, verr)
				return
			}
			renderTemplate(w, r, "book.html", map[string]any{
				"Courses": view.Courses,
				"Error":   err.Error(),
			})
			return
		}

		// Every selection was already booked: nothing to confirm.
		if len(result.CreatedBookingIDs) == 0 {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}

		// Record the new booking IDs so the confirmation page can show
		// exactly what this submission created.
		if cookie, cerr := r.Cookie(middleware.SessionCookieName); cerr == nil {
			session.LastBookingIDs = result.CreatedBookingIDs
			sessions.Update(cookie.Value, session)
		}

		http.Redirect(w, r, "/booking-submitted", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleBookingSubmitted handles GET /booking-submitted
func handleBookingSubmitted(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	session, _ := middleware.GetSessionFromContext(ctx)

	// No pending confirmation in the session: nothing to show here.
	if len(session.LastBookingIDs) == 0 {
		http.Redirect(w, r, "/book", http.StatusSeeOther)
		return
	}

	view, err := projections.QueryBookingConfirmation(ctx, session.AccountID, session.LastBookingIDs,
		projections.ConfirmationDeps{
			BookingStore: stores.BookingStore,
			CourseStore:  stores.CourseStore,
		})
	if err != nil {
		internalError(w, err)
		return
	}

	renderTemplate(w, r, "booking_submitted.html", map[string]any{
		"Bookings": view.Bookings,
	})
}
