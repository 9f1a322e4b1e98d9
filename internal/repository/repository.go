package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeExists   = errors.New("employee already exists")
	ErrEmptyID          = errors.New("employee id is empty")

	ErrStoreUninitialized = errors.New("store is not initialized")
)

// Repository keeps employee records in process memory. Records are copied on the
// way in and out, so callers never share state with the store.
// It is safe for concurrent use.
type Repository struct {
	mu        sync.RWMutex
	employees map[string]models.Employee
	metrics   *metrics.Metrics
}

// EmployeeRepoIface represents the interface for interacting with employee data in the repository.
type EmployeeRepoIface interface {
	ListEmployees(ctx context.Context) (map[string]models.Employee, error)
	GetEmployeeByID(ctx context.Context, identifier string) (models.Employee, error)
	SaveEmployee(ctx context.Context, employee models.Employee) error
	UpdateEmployee(ctx context.Context, employee models.Employee) error
	DeleteEmployee(ctx context.Context, identifier string) error
	Ping(ctx context.Context) error
}

func NewEmployeeRepository(metrics *metrics.Metrics) *Repository {
	return &Repository{
		employees: make(map[string]models.Employee),
		metrics:   metrics,
	}
}
