package employees_test

import (
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/UnknownOlympus/hestia/internal/services/employees"
	mocks "github.com/UnknownOlympus/hestia/mock"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const validPayload = `{"employee":{"firstName":"John","lastName":"Smith","hireDate":"2020-01-01","role":"manager"}}`

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newTestStaff(t *testing.T) (*employees.Staff, *mocks.EmployeeRepoIface, *mocks.Enricher, *metrics.Metrics) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	mockRepo := mocks.NewEmployeeRepoIface(t)
	mockEnricher := mocks.NewEnricher(t)
	testMetrics := metrics.NewMetrics(prometheus.NewRegistry())
	clock := fixedClock{t: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)}

	return employees.NewStaff(logger, mockRepo, mockEnricher, testMetrics, clock), mockRepo, mockEnricher, testMetrics
}

func ptr(s string) *string { return &s }

func TestNewStaff(t *testing.T) {
	t.Parallel()

	s, _, _, _ := newTestStaff(t)

	assert.NotNil(t, s)
}

func TestCreate(t *testing.T) {
	t.Parallel()

	t.Run("should save a new enriched employee", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, mockEnricher, _ := newTestStaff(t)

		mockEnricher.On("Enrich", mock.Anything).Return(models.Enrichment{
			PictureURL: ptr("https://picsum.photos/id/10/450"),
			Quote:      ptr("Carpe diem"),
		}).Once()
		mockRepo.On("SaveEmployee", mock.Anything, mock.MatchedBy(func(e models.Employee) bool {
			_, err := uuid.Parse(e.ID)
			return err == nil &&
				e.Role == models.RoleManager &&
				e.PictureURL != nil && *e.PictureURL == "https://picsum.photos/id/10/450" &&
				e.Quote != nil && *e.Quote == "Carpe diem"
		})).Return(nil).Once()

		employee, err := staff.Create(t.Context(), []byte(validPayload))

		require.NoError(t, err)
		assert.NotEmpty(t, employee.ID)
		assert.Equal(t, "John", employee.FirstName)
		assert.Equal(t, models.RoleManager, employee.Role)
		assert.Equal(t, "Carpe diem", *employee.Quote)
	})

	t.Run("should save employee when enrichment found nothing", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, mockEnricher, _ := newTestStaff(t)

		mockEnricher.On("Enrich", mock.Anything).Return(models.Enrichment{}).Once()
		mockRepo.On("SaveEmployee", mock.Anything, mock.MatchedBy(func(e models.Employee) bool {
			return e.PictureURL == nil && e.Quote == nil
		})).Return(nil).Once()

		employee, err := staff.Create(t.Context(), []byte(validPayload))

		require.NoError(t, err)
		assert.Nil(t, employee.PictureURL)
		assert.Nil(t, employee.Quote)
	})

	t.Run("should assign distinct identifiers", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, mockEnricher, _ := newTestStaff(t)

		mockEnricher.On("Enrich", mock.Anything).Return(models.Enrichment{}).Twice()
		mockRepo.On("SaveEmployee", mock.Anything, mock.Anything).Return(nil).Twice()

		first, err := staff.Create(t.Context(), []byte(validPayload))
		require.NoError(t, err)
		second, err := staff.Create(t.Context(), []byte(validPayload))
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("should reject invalid payload without touching upstreams", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, mockEnricher, testMetrics := newTestStaff(t)

		_, err := staff.Create(t.Context(), []byte(`{"employee":{"firstName":"John"}}`))

		require.ErrorIs(t, err, employees.ErrMissingFields)
		mockEnricher.AssertNotCalled(t, "Enrich", mock.Anything)
		mockRepo.AssertNotCalled(t, "SaveEmployee", mock.Anything, mock.Anything)
		assert.InDelta(t, 1, testutil.ToFloat64(testMetrics.ValidationFailures.WithLabelValues("MISSING_FIELDS")), 0)
	})

	t.Run("should return error when failed to save employee", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, mockEnricher, _ := newTestStaff(t)

		mockEnricher.On("Enrich", mock.Anything).Return(models.Enrichment{}).Once()
		mockRepo.On("SaveEmployee", mock.Anything, mock.Anything).Return(assert.AnError).Once()

		_, err := staff.Create(t.Context(), []byte(validPayload))

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to save new employee")
	})
}

func TestGet(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, _, _ := newTestStaff(t)
		expected := models.Employee{ID: "id-1", FirstName: "John"}
		mockRepo.On("GetEmployeeByID", mock.Anything, "id-1").Return(expected, nil).Once()

		actual, err := staff.Get(t.Context(), "id-1")

		require.NoError(t, err)
		assert.Equal(t, expected, actual)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, _, _ := newTestStaff(t)
		mockRepo.On("GetEmployeeByID", mock.Anything, "nope").
			Return(models.Employee{}, fmt.Errorf("wrapped: %w", repository.ErrEmployeeNotFound)).Once()

		_, err := staff.Get(t.Context(), "nope")

		require.ErrorIs(t, err, employees.ErrNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, _, _ := newTestStaff(t)
		mockRepo.On("GetEmployeeByID", mock.Anything, "id-1").Return(models.Employee{}, assert.AnError).Once()

		_, err := staff.Get(t.Context(), "id-1")

		require.ErrorIs(t, err, assert.AnError)
		require.NotErrorIs(t, err, employees.ErrNotFound)
	})
}

func TestList(t *testing.T) {
	t.Parallel()

	staff, mockRepo, _, _ := newTestStaff(t)
	expected := map[string]models.Employee{"id-1": {ID: "id-1"}}
	mockRepo.On("ListEmployees", mock.Anything).Return(expected, nil).Once()

	actual, err := staff.List(t.Context())

	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	staff, mockRepo, _, _ := newTestStaff(t)
	mockRepo.On("DeleteEmployee", mock.Anything, "id-1").Return(nil).Once()
	mockRepo.On("DeleteEmployee", mock.Anything, "id-1").Return(repository.ErrEmployeeNotFound).Once()

	require.NoError(t, staff.Delete(t.Context(), "id-1"))
	require.ErrorIs(t, staff.Delete(t.Context(), "id-1"), employees.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	t.Run("should replace an existing employee", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, mockEnricher, _ := newTestStaff(t)
		existing := models.Employee{ID: "id-1", FirstName: "Old", Quote: ptr("old quote")}
		replacement := models.Employee{
			ID:        "id-1",
			FirstName: "Jane",
			LastName:  "Doe",
			HireDate:  "2019-03-04",
			Role:      models.RoleCEO,
		}

		mockRepo.On("GetEmployeeByID", mock.Anything, "id-1").Return(existing, nil).Once()
		mockRepo.On("UpdateEmployee", mock.Anything, replacement).Return(nil).Once()

		actual, err := staff.Update(t.Context(), "id-1",
			[]byte(`{"employee":{"firstName":"Jane","lastName":"Doe","hireDate":"2019-03-04","role":"ceo"}}`))

		require.NoError(t, err)
		assert.Equal(t, replacement, actual)
		mockEnricher.AssertNotCalled(t, "Enrich", mock.Anything)
	})

	t.Run("should not validate when employee is absent", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, _, _ := newTestStaff(t)
		mockRepo.On("GetEmployeeByID", mock.Anything, "nope").
			Return(models.Employee{}, repository.ErrEmployeeNotFound).Once()

		_, err := staff.Update(t.Context(), "nope", []byte(`garbage`))

		require.ErrorIs(t, err, employees.ErrNotFound)
		mockRepo.AssertNotCalled(t, "UpdateEmployee", mock.Anything, mock.Anything)
	})

	t.Run("should reject invalid payload", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, _, _ := newTestStaff(t)
		mockRepo.On("GetEmployeeByID", mock.Anything, "id-1").Return(models.Employee{ID: "id-1"}, nil).Once()

		_, err := staff.Update(t.Context(), "id-1",
			[]byte(`{"employee":{"firstName":"Jane","lastName":"Doe","hireDate":"2030-01-01","role":"ceo"}}`))

		require.ErrorIs(t, err, employees.ErrFutureHireDate)
		mockRepo.AssertNotCalled(t, "UpdateEmployee", mock.Anything, mock.Anything)
	})

	t.Run("should report not found when employee vanished before update", func(t *testing.T) {
		t.Parallel()

		staff, mockRepo, _, _ := newTestStaff(t)
		mockRepo.On("GetEmployeeByID", mock.Anything, "id-1").Return(models.Employee{ID: "id-1"}, nil).Once()
		mockRepo.On("UpdateEmployee", mock.Anything, mock.Anything).Return(repository.ErrEmployeeNotFound).Once()

		_, err := staff.Update(t.Context(), "id-1", []byte(validPayload))

		require.ErrorIs(t, err, employees.ErrNotFound)
	})
}

func TestSystemClock(t *testing.T) {
	t.Parallel()

	now := employees.SystemClock{}.Now()

	assert.Equal(t, time.UTC, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Minute)
}
