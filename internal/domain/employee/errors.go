package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeInactive = errors.New("employee is deactivated")
	ErrEmployeeIDExists = errors.New("employee id already exists")
)
