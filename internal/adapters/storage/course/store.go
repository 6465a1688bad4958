package course

import (
	"context"

	domain "coursebook/internal/domain/course"
)

// Store persists Course and Module reference data.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Course, error)
	ListActive(ctx context.Context) ([]domain.Course, error)
	Save(ctx context.Context, value domain.Course) error
	Count(ctx context.Context) (int, error)

	SaveModule(ctx context.Context, value domain.Module) error
	GetModuleByID(ctx context.Context, id string) (domain.Module, error)
	ModulesForCourse(ctx context.Context, courseID string) ([]domain.Module, error)
}
