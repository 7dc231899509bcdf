package employee

import "time"

type Employee struct {
	ID         string
	EmployeeID string // human-facing code, e.g. "EMP-001"
	Name       string
	Department string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
