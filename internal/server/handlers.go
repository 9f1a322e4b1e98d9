package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/services/employees"
)

const maxBodyBytes = 1 << 20

// EmployeeService is the record workflow the handlers delegate to.
type EmployeeService interface {
	List(ctx context.Context) (map[string]models.Employee, error)
	Get(ctx context.Context, employeeID string) (models.Employee, error)
	Create(ctx context.Context, payload []byte) (models.Employee, error)
	Update(ctx context.Context, employeeID string, payload []byte) (models.Employee, error)
	Delete(ctx context.Context, employeeID string) error
}

type errorResponse struct {
	Message string `json:"message"`
}

// EmployeeHandler exposes EmployeeService over HTTP.
type EmployeeHandler struct {
	service EmployeeService
	log     *slog.Logger
}

func NewEmployeeHandler(service EmployeeService, log *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{service: service, log: log.With(slog.String("division", "http"))}
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, "", err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, all)
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	employee, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "", err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, employee)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "", err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	const prefix = "Unable to save new employee\n"

	payload, err := readBody(w, r)
	if err != nil {
		h.fail(w, r, prefix, employees.ErrMissingFields)
		return
	}

	employee, err := h.service.Create(r.Context(), payload)
	if err != nil {
		h.fail(w, r, prefix, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, employee)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	prefix := fmt.Sprintf("Unable to update employee %s.\n", employeeID)

	payload, err := readBody(w, r)
	if err != nil {
		h.fail(w, r, prefix, employees.ErrMissingFields)
		return
	}

	employee, err := h.service.Update(r.Context(), employeeID, payload)
	if err != nil {
		h.fail(w, r, prefix, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, employee)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	return body, nil
}

// fail maps a service error to the API error body. Not-found errors are reported
// without prefix; any error that is not an *employees.Error becomes a 500.
func (h *EmployeeHandler) fail(w http.ResponseWriter, r *http.Request, prefix string, err error) {
	var apiErr *employees.Error
	if !errors.As(err, &apiErr) {
		h.log.ErrorContext(r.Context(), "Request failed", sl.Op("EmployeeHandler.fail"), sl.Err(err))
		h.writeError(w, r, 0, "Internal server error")
		return
	}

	message := apiErr.Message
	if !errors.Is(apiErr, employees.ErrNotFound) {
		message = prefix + message
	}

	h.writeError(w, r, apiErr.Status, message)
}

// writeError writes {"message": ...}; a zero status means 500.
func (h *EmployeeHandler) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if status == 0 {
		status = http.StatusInternalServerError
	}

	h.writeJSON(w, r, status, errorResponse{Message: message})
}

func (h *EmployeeHandler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.ErrorContext(r.Context(), "Failed to write response", sl.Err(err))
	}
}
