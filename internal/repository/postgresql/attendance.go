package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/faceclock/attendance-backend-go/internal/domain/attendance"
	"github.com/faceclock/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type recordRepository struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) attendance.RecordRepository {
	return &recordRepository{db: db}
}

const recordColumns = `
	id, employee_id, employee_name, date,
	check_in_at, check_in_status,
	check_out_at, check_out_status,
	work_duration_minutes, created_at, updated_at
`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	var date time.Time
	var checkInAt, checkOutAt *time.Time
	var checkInStatus, checkOutStatus *string

	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &date,
		&checkInAt, &checkInStatus,
		&checkOutAt, &checkOutStatus,
		&rec.WorkDurationMinutes, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, err
	}

	rec.Date = date.Format("2006-01-02")
	if checkInAt != nil && checkInStatus != nil {
		rec.CheckIn = &attendance.EventInfo{Timestamp: *checkInAt, Status: attendance.Label(*checkInStatus)}
	}
	if checkOutAt != nil && checkOutStatus != nil {
		rec.CheckOut = &attendance.EventInfo{Timestamp: *checkOutAt, Status: attendance.Label(*checkOutStatus)}
	}
	return rec, nil
}

// GetByEmployeeAndDate implements attendance.RecordRepository.
func (r *recordRepository) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no record for this day yet
		}
		return nil, fmt.Errorf("failed to get attendance record by employee and date: %w", err)
	}

	return &rec, nil
}

// UpsertCheckIn implements attendance.RecordRepository.
// The conditional conflict clause makes duplicate submissions a no-op:
// of two racing check-in attempts exactly one wins, and an already
// stored check-in is never overwritten. The DO UPDATE arm only fires
// for legacy rows whose check-in is still null.
func (r *recordRepository) UpsertCheckIn(ctx context.Context, rec attendance.Record) (bool, error) {
	q := GetQuerier(ctx, r.db)

	if rec.CheckIn == nil {
		return false, fmt.Errorf("check-in info is required to create an attendance record")
	}

	query := `
		INSERT INTO attendance_records (
			id, employee_id, employee_name, date,
			check_in_at, check_in_status, work_duration_minutes
		) VALUES (
			$1, $2, $3, $4, $5, $6, 0
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			check_in_at = EXCLUDED.check_in_at,
			check_in_status = EXCLUDED.check_in_status,
			updated_at = NOW()
		WHERE attendance_records.check_in_at IS NULL
	`

	tag, err := q.Exec(ctx, query,
		rec.ID,
		rec.EmployeeID,
		rec.EmployeeName,
		rec.Date,
		rec.CheckIn.Timestamp,
		string(rec.CheckIn.Status),
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert check-in: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// ApplyCheckOut implements attendance.RecordRepository.
// The WHERE clause makes the checkin->checkout transition conditional
// on the record still being open; the duration is derived from the
// stored check-in timestamp inside the same statement, so the
// transition and the duration commit atomically.
func (r *recordRepository) ApplyCheckOut(ctx context.Context, employeeID, date string, ts time.Time, status attendance.Label) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET check_out_at = $3,
		    check_out_status = $4,
		    work_duration_minutes = GREATEST(0, FLOOR(EXTRACT(EPOCH FROM ($3::timestamptz - check_in_at)) / 60))::int,
		    updated_at = NOW()
		WHERE employee_id = $1
		  AND date = $2
		  AND check_in_at IS NOT NULL
		  AND check_out_at IS NULL
		RETURNING ` + recordColumns + `
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, date, ts, string(status)))
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Record{}, fmt.Errorf("failed to apply check-out: %w", err)
	}

	// The conditional update matched nothing; look at the row to tell
	// "already closed" apart from "never checked in".
	existing, getErr := r.GetByEmployeeAndDate(ctx, employeeID, date)
	if getErr != nil {
		return attendance.Record{}, getErr
	}
	if existing != nil && existing.CheckOut != nil {
		return attendance.Record{}, attendance.ErrAlreadyCheckedOut
	}
	return attendance.Record{}, attendance.ErrNoPriorCheckIn
}

// List implements attendance.RecordRepository. The count and the page
// run in one transaction so pagination metadata matches the rows.
func (r *recordRepository) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, int64, error) {
	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+recordColumns+`
		FROM attendance_records
		WHERE %s
		ORDER BY date DESC, employee_id ASC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}

	var records []attendance.Record
	var total int64

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		countQuery := "SELECT COUNT(*) FROM attendance_records WHERE " + baseWhere
		if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count attendance records: %w", err)
		}

		rows, err := q.Query(ctx, selectQuery, append(args, limit, (page-1)*limit)...)
		if err != nil {
			return fmt.Errorf("failed to query attendance records: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			rec, err := scanRecord(rows)
			if err != nil {
				return fmt.Errorf("failed to scan attendance record: %w", err)
			}
			records = append(records, rec)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
