package course

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyName     = errors.New("course name cannot be empty")
	ErrEmptyCourseID = errors.New("module must belong to a course")
	ErrEmptyModule   = errors.New("module name cannot be empty")
	ErrNegativeOrder = errors.New("module order cannot be negative")
)

// Course is read-only reference data for the booking form.
type Course struct {
	ID          string
	Name        string
	Description string // markdown, rendered on the booking form
	Active      bool
}

// Module is a bookable unit within a course, displayed in Order.
type Module struct {
	ID          string
	CourseID    string
	Name        string
	Description string
	Order       int
	Active      bool
}

// Validate checks if the Course has valid data.
// PRE: Course struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Course) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Validate checks if the Module has valid data.
// PRE: Module struct is populated
// POST: Returns nil if valid, error otherwise
func (m *Module) Validate() error {
	if m.CourseID == "" {
		return ErrEmptyCourseID
	}
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyModule
	}
	if m.Order < 0 {
		return ErrNegativeOrder
	}
	return nil
}
