package course

import (
	"context"
	"database/sql"
	"fmt"

	"coursebook/internal/adapters/storage"
	domain "coursebook/internal/domain/course"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new CourseStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Course by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Course, error) {
	query := "SELECT id, name, description, active FROM course WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanCourse(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Course{}, fmt.Errorf("course not found: %w", err)
	}
	return entity, err
}

// ListActive retrieves all active courses ordered by name.
// PRE: none
// POST: Returns active courses
func (s *SQLiteStore) ListActive(ctx context.Context) ([]domain.Course, error) {
	query := "SELECT id, name, description, active FROM course WHERE active = 1 ORDER BY name"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Course
	for rows.Next() {
		entity, err := scanCourse(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Save persists a Course to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Course) error {
	query := `INSERT INTO course (id, name, description, active)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			description=excluded.description,
			active=excluded.active`

	_, err := s.db.ExecContext(ctx, query, entity.ID, entity.Name, entity.Description, boolToInt(entity.Active))
	return err
}

// Count returns the total number of courses.
// PRE: none
// POST: Returns total course count
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM course").Scan(&count)
	return count, err
}

// SaveModule persists a Module to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) SaveModule(ctx context.Context, entity domain.Module) error {
	query := `INSERT INTO course_module (id, course_id, name, description, module_order, active)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			course_id=excluded.course_id,
			name=excluded.name,
			description=excluded.description,
			module_order=excluded.module_order,
			active=excluded.active`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID, entity.CourseID, entity.Name, entity.Description, entity.Order, boolToInt(entity.Active))
	return err
}

// GetModuleByID retrieves a Module by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetModuleByID(ctx context.Context, id string) (domain.Module, error) {
	query := "SELECT id, course_id, name, description, module_order, active FROM course_module WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanModule(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Module{}, fmt.Errorf("module not found: %w", err)
	}
	return entity, err
}

// ModulesForCourse retrieves all active modules of a course in display order.
// PRE: courseID is non-empty
// POST: Returns modules ordered by module_order
func (s *SQLiteStore) ModulesForCourse(ctx context.Context, courseID string) ([]domain.Module, error) {
	query := `SELECT id, course_id, name, description, module_order, active
		FROM course_module WHERE course_id = ? AND active = 1 ORDER BY module_order`
	rows, err := s.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Module
	for rows.Next() {
		entity, err := scanModule(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// scanCourse extracts a Course from a row scanner function.
func scanCourse(scan func(dest ...any) error) (domain.Course, error) {
	var entity domain.Course
	var active int
	err := scan(&entity.ID, &entity.Name, &entity.Description, &active)
	if err != nil {
		return domain.Course{}, err
	}
	entity.Active = active != 0
	return entity, nil
}

// scanModule extracts a Module from a row scanner function.
func scanModule(scan func(dest ...any) error) (domain.Module, error) {
	var entity domain.Module
	var active int
	err := scan(&entity.ID, &entity.CourseID, &entity.Name, &entity.Description, &entity.Order, &active)
	if err != nil {
		return domain.Module{}, err
	}
	entity.Active = active != 0
	return entity, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
