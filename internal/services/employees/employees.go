package employees

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
)

// Enricher fills the optional fields of a new employee from upstream services.
// It must never fail; missing data is reported as nil fields.
type Enricher interface {
	Enrich(ctx context.Context) models.Enrichment
}

// Clock tells the current time; hire dates are checked against it.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Staff runs the employee record workflow on top of the store.
type Staff struct {
	log       *slog.Logger
	repo      repository.EmployeeRepoIface
	enricher  Enricher
	metrics   *metrics.Metrics
	clock     Clock
	validator *Validator
	newID     func() string
}

func NewStaff(
	log *slog.Logger,
	repo repository.EmployeeRepoIface,
	enricher Enricher,
	metrics *metrics.Metrics,
	clock Clock,
) *Staff {
	return &Staff{
		log:       log,
		repo:      repo,
		enricher:  enricher,
		metrics:   metrics,
		clock:     clock,
		validator: NewValidator(),
		newID:     uuid.NewString,
	}
}

func (s *Staff) initLogger(opn string) *slog.Logger {
	return s.log.With(
		sl.Op(opn),
		slog.String("division", "employee"),
	)
}

// List returns every stored employee keyed by identifier.
func (s *Staff) List(ctx context.Context) (map[string]models.Employee, error) {
	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return employees, nil
}

// Get returns the employee with the given identifier or ErrNotFound.
func (s *Staff) Get(ctx context.Context, employeeID string) (models.Employee, error) {
	employee, err := s.repo.GetEmployeeByID(ctx, employeeID)
	if err != nil {
		return models.Employee{}, notFoundOr(err, "failed to get employee")
	}

	return employee, nil
}

// Delete removes the employee with the given identifier. A second delete of the
// same identifier yields ErrNotFound.
func (s *Staff) Delete(ctx context.Context, employeeID string) error {
	log := s.initLogger("Staff.Delete")

	if err := s.repo.DeleteEmployee(ctx, employeeID); err != nil {
		return notFoundOr(err, "failed to delete employee")
	}
	log.InfoContext(ctx, "Employee deleted", "id", employeeID)

	return nil
}

// Create validates payload, assigns a fresh identifier, attaches whatever the
// upstream lookups return and stores the record.
func (s *Staff) Create(ctx context.Context, payload []byte) (models.Employee, error) {
	log := s.initLogger("Staff.Create")

	employee, err := s.validate(ctx, log, payload)
	if err != nil {
		return models.Employee{}, err
	}

	employee.ID = s.newID()
	s.enricher.Enrich(ctx).Apply(&employee)

	if err = s.repo.SaveEmployee(ctx, employee); err != nil {
		return models.Employee{}, fmt.Errorf("failed to save new employee: %w", err)
	}

	log.InfoContext(ctx, "Employee created",
		"id", employee.ID,
		"role", employee.Role,
		"with_picture", employee.PictureURL != nil,
		"with_quote", employee.Quote != nil,
	)

	return employee, nil
}

// Update replaces the employee with the given identifier by the record in payload.
// The identifier must exist before the payload is looked at.
func (s *Staff) Update(ctx context.Context, employeeID string, payload []byte) (models.Employee, error) {
	log := s.initLogger("Staff.Update")

	if _, err := s.repo.GetEmployeeByID(ctx, employeeID); err != nil {
		return models.Employee{}, notFoundOr(err, "failed to look up employee")
	}

	employee, err := s.validate(ctx, log, payload)
	if err != nil {
		return models.Employee{}, err
	}
	employee.ID = employeeID

	if err = s.repo.UpdateEmployee(ctx, employee); err != nil {
		return models.Employee{}, notFoundOr(err, "failed to update employee")
	}

	log.InfoContext(ctx, "Employee updated", "id", employeeID)

	return employee, nil
}

func (s *Staff) validate(ctx context.Context, log *slog.Logger, payload []byte) (models.Employee, error) {
	employee, err := s.validator.Validate(payload, s.clock.Now())
	if err == nil {
		return employee, nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		s.metrics.ValidationFailures.WithLabelValues(apiErr.Code).Inc()
		log.DebugContext(ctx, "Employee payload rejected", "reason", apiErr.Code)
		return models.Employee{}, err
	}

	log.ErrorContext(ctx, "Employee payload could not be validated", sl.Err(err))

	return models.Employee{}, err
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, repository.ErrEmployeeNotFound) {
		return ErrNotFound
	}

	return fmt.Errorf("%s: %w", msg, err)
}
