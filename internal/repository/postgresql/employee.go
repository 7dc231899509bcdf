package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/faceclock/attendance-backend-go/internal/domain/employee"
	"github.com/faceclock/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, employee_id, name, department, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, emp.ID, emp.EmployeeID, emp.Name, emp.Department).
		Scan(&emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.Employee{}, employee.ErrEmployeeIDExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	emp.IsActive = true
	return emp, nil
}

// GetByEmployeeID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, name, department, is_active, created_at, updated_at
		FROM employees
		WHERE employee_id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&emp.ID, &emp.EmployeeID, &emp.Name, &emp.Department,
		&emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.Department != nil && *filter.Department != "" {
		baseWhere += fmt.Sprintf(" AND department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}
	if filter.ActiveOnly {
		baseWhere += " AND is_active = TRUE"
	}

	selectQuery := fmt.Sprintf(`
		SELECT id, employee_id, name, department, is_active, created_at, updated_at
		FROM employees
		WHERE %s
		ORDER BY employee_id ASC
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

	var employees []employee.Employee
	var total int64

	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		countQuery := "SELECT COUNT(*) FROM employees WHERE " + baseWhere
		if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count employees: %w", err)
		}

		rows, err := q.Query(ctx, selectQuery, append(args, limit, (page-1)*limit)...)
		if err != nil {
			return fmt.Errorf("failed to query employees: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var emp employee.Employee
			err := rows.Scan(
				&emp.ID, &emp.EmployeeID, &emp.Name, &emp.Department,
				&emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to scan employee: %w", err)
			}
			employees = append(employees, emp)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	updates := []string{"name = $1", "department = $2", "is_active = $3", "updated_at = $4"}
	args := []interface{}{emp.Name, emp.Department, emp.IsActive, time.Now(), emp.EmployeeID}

	query := "UPDATE employees SET " + strings.Join(updates, ", ") + " WHERE employee_id = $5 RETURNING id"

	var updatedID string
	if err := q.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}

// CountActive implements employee.EmployeeRepository.
func (r *employeeRepository) CountActive(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE is_active = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}
	return count, nil
}
