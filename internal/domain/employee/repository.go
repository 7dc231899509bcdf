package employee

import "context"

type EmployeeRepository interface {
	// Create inserts a new employee; ErrEmployeeIDExists on a
	// duplicate code.
	Create(ctx context.Context, emp Employee) (Employee, error)

	// GetByEmployeeID looks an employee up by code;
	// ErrEmployeeNotFound when absent.
	GetByEmployeeID(ctx context.Context, employeeID string) (Employee, error)

	// List returns employees, optionally filtered by department and
	// active flag.
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)

	// Update rewrites name/department/is_active for the code.
	Update(ctx context.Context, emp Employee) error

	// CountActive counts employees with is_active = true.
	CountActive(ctx context.Context) (int, error)
}
