package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/UnknownOlympus/hestia/internal/models"
)

// ListEmployees returns a snapshot of every stored employee keyed by identifier.
func (r *Repository) ListEmployees(ctx context.Context) (map[string]models.Employee, error) {
	defer r.observe("list", time.Now())

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]models.Employee, len(r.employees))
	for id, employee := range r.employees {
		result[id] = employee.Clone()
	}

	return result, nil
}

// GetEmployeeByID retrieves an employee by its identifier.
func (r *Repository) GetEmployeeByID(ctx context.Context, identifier string) (models.Employee, error) {
	defer r.observe("get", time.Now())

	if err := ctx.Err(); err != nil {
		return models.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	employee, ok := r.employees[identifier]
	if !ok {
		return models.Employee{}, fmt.Errorf("failed to get employee by id: %w", ErrEmployeeNotFound)
	}

	return employee.Clone(), nil
}

// SaveEmployee inserts a new employee. An identifier is never reused:
// saving under an identifier that is already taken fails with ErrEmployeeExists.
func (r *Repository) SaveEmployee(ctx context.Context, employee models.Employee) error {
	defer r.observe("create", time.Now())

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}
	if employee.ID == "" {
		return fmt.Errorf("failed to save employee: %w", ErrEmptyID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[employee.ID]; ok {
		return fmt.Errorf("failed to save employee: %w", ErrEmployeeExists)
	}
	r.employees[employee.ID] = employee.Clone()
	r.metrics.StoredEmployees.Set(float64(len(r.employees)))

	return nil
}

// UpdateEmployee replaces an existing employee as a whole.
func (r *Repository) UpdateEmployee(ctx context.Context, employee models.Employee) error {
	defer r.observe("update", time.Now())

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to update employee data: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[employee.ID]; !ok {
		return fmt.Errorf("failed to update employee data: %w", ErrEmployeeNotFound)
	}
	r.employees[employee.ID] = employee.Clone()

	return nil
}

// DeleteEmployee removes an employee. Deleting an absent identifier fails with ErrEmployeeNotFound.
func (r *Repository) DeleteEmployee(ctx context.Context, identifier string) error {
	defer r.observe("delete", time.Now())

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[identifier]; !ok {
		return fmt.Errorf("failed to delete employee: %w", ErrEmployeeNotFound)
	}
	delete(r.employees, identifier)
	r.metrics.StoredEmployees.Set(float64(len(r.employees)))

	return nil
}

// Ping reports whether the store can serve requests.
func (r *Repository) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("store is unavailable: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.employees == nil {
		return fmt.Errorf("store is unavailable: %w", ErrStoreUninitialized)
	}

	return nil
}

func (r *Repository) observe(operation string, startTime time.Time) {
	r.metrics.StoreOpDuration.WithLabelValues(operation).Observe(time.Since(startTime).Seconds())
}
