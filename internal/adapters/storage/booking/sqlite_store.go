package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"coursebook/internal/adapters/storage"
	domain "coursebook/internal/domain/booking"
)

const bookingColumns = "id, account_id, course_id, status, extra_request, created_at, updated_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new BookingStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Booking by its ID.
// PRE: id is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Booking, error) {
	query := "SELECT " + bookingColumns + " FROM booking WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Booking{}, ErrNotFound
	}
	return entity, err
}

// GetByAccountAndCourse retrieves the unique Booking for an (account, course) pair.
// PRE: accountID and courseID are non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByAccountAndCourse(ctx context.Context, accountID, courseID string) (domain.Booking, error) {
	query := "SELECT " + bookingColumns + " FROM booking WHERE account_id = ? AND course_id = ?"
	row := s.db.QueryRowContext(ctx, query, accountID, courseID)

	entity, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Booking{}, ErrNotFound
	}
	return entity, err
}

// ListByAccount retrieves all bookings of an account, most recent first.
// PRE: accountID is non-empty
// POST: Returns bookings ordered by updated_at descending
func (s *SQLiteStore) ListByAccount(ctx context.Context, accountID string) ([]domain.Booking, error) {
	query := "SELECT " + bookingColumns + " FROM booking WHERE account_id = ? ORDER BY updated_at DESC"
	rows, err := s.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// ListAll retrieves every booking, most recent first.
// PRE: none
// POST: Returns all bookings ordered by updated_at descending
func (s *SQLiteStore) ListAll(ctx context.Context) ([]domain.Booking, error) {
	query := "SELECT " + bookingColumns + " FROM booking ORDER BY updated_at DESC"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// Save persists a single Booking (without module rows).
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Booking) error {
	query := `INSERT INTO booking (id, account_id, course_id, status, extra_request, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status=excluded.status,
			extra_request=excluded.extra_request,
			updated_at=excluded.updated_at`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.AccountID,
		entity.CourseID,
		entity.Status,
		entity.ExtraRequest,
		entity.CreatedAt.Format(time.RFC3339Nano),
		entity.UpdatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// UpdateExtraRequest overwrites the extra request for (accountID, courseID).
// PRE: accountID and courseID are non-empty
// POST: Returns rows affected; zero when no booking matches
func (s *SQLiteStore) UpdateExtraRequest(ctx context.Context, accountID, courseID, extra string) (int64, error) {
	query := "UPDATE booking SET extra_request = ?, updated_at = ? WHERE account_id = ? AND course_id = ?"
	res, err := s.db.ExecContext(ctx, query, extra, time.Now().Format(time.RFC3339Nano), accountID, courseID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CreateWithModules inserts bookings and their booking_module rows in one transaction.
// PRE: every booking has been validated and carries its ModuleIDs
// POST: All rows committed, or none on error
func (s *SQLiteStore) CreateWithModules(ctx context.Context, bookings []domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, b := range bookings {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO booking (id, account_id, course_id, status, extra_request, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			b.ID,
			b.AccountID,
			b.CourseID,
			b.Status,
			b.ExtraRequest,
			b.CreatedAt.Format(time.RFC3339Nano),
			b.UpdatedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("insert booking %s: %w", b.ID, err)
		}
		for _, moduleID := range b.ModuleIDs {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO booking_module (booking_id, module_id) VALUES (?, ?)",
				b.ID, moduleID)
			if err != nil {
				return fmt.Errorf("insert booking module %s/%s: %w", b.ID, moduleID, err)
			}
		}
	}

	return tx.Commit()
}

// ModuleIDsForBooking retrieves the module IDs selected for a booking.
// PRE: bookingID is non-empty
// POST: Returns module IDs in insertion order
func (s *SQLiteStore) ModuleIDsForBooking(ctx context.Context, bookingID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT module_id FROM booking_module WHERE booking_id = ?", bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Count returns the total number of bookings.
// PRE: none
// POST: Returns total booking count
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM booking").Scan(&count)
	return count, err
}

// collectBookings drains a result set into booking values.
func collectBookings(rows *sql.Rows) ([]domain.Booking, error) {
	var results []domain.Booking
	for rows.Next() {
		entity, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// scanBooking extracts a Booking from a row scanner function.
func scanBooking(scan func(dest ...any) error) (domain.Booking, error) {
	var entity domain.Booking
	var createdAt, updatedAt string
	err := scan(
		&entity.ID,
		&entity.AccountID,
		&entity.CourseID,
		&entity.Status,
		&entity.ExtraRequest,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Booking{}, err
	}
	entity.CreatedAt, _ = parseTime(createdAt)
	entity.UpdatedAt, _ = parseTime(updatedAt)
	return entity, nil
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		t, err := time.Parse(f, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time: %s", s)
}
