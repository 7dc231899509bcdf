package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/faceclock/attendance-backend-go/internal/domain/employee"
	"github.com/google/uuid"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
}

func NewEmployeeService(repo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{EmployeeRepository: repo}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.Create(ctx, employee.Employee{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		Name:       req.Name,
		Department: req.Department,
		IsActive:   true,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapEmployeeToResponse(emp), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, employeeID string) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeesResponse, error) {
	employees, total, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeesResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}

	page := filter.Page
	if page == 0 {
		page = 1
	}
	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}

	return employee.ListEmployeesResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		Employees:  responses,
	}, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Department != nil {
		emp.Department = *req.Department
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}

	if err := s.EmployeeRepository.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}
	emp.UpdatedAt = time.Now()

	return mapEmployeeToResponse(emp), nil
}

// Deactivate implements employee.EmployeeService. Deactivated
// employees keep their history; new attendance events are rejected.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, employeeID string) error {
	emp, err := s.EmployeeRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return err
	}
	emp.IsActive = false
	return s.EmployeeRepository.Update(ctx, emp)
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		EmployeeID: emp.EmployeeID,
		Name:       emp.Name,
		Department: emp.Department,
		IsActive:   emp.IsActive,
		CreatedAt:  emp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  emp.UpdatedAt.Format(time.RFC3339),
	}
}
