package employees

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/UnknownOlympus/hestia/internal/models"
)

const roleTag = "employee_role"

// employeePayload is the shape expected under the "employee" key of a request body.
type employeePayload struct {
	FirstName  string  `json:"firstName"  validate:"required"`
	LastName   string  `json:"lastName"   validate:"required"`
	HireDate   string  `json:"hireDate"   validate:"required"`
	Role       string  `json:"role"       validate:"required,employee_role"`
	PictureURL *string `json:"pictureUrl"`
	Quote      *string `json:"quote"`
}

// Validator checks raw request bodies and turns them into employee records.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation(roleTag, func(fl validator.FieldLevel) bool {
		_, ok := models.ParseRole(fl.Field().String())
		return ok
	}); err != nil {
		panic("failed to register " + roleTag + " validation: " + err.Error())
	}

	return &Validator{validate: validate}
}

// Validate decodes payload of the form {"employee": {...}} and checks it.
// Problems are reported in a fixed order: missing fields, role, hire date format,
// hire date in the future. The returned employee carries the canonical role and no ID.
func (v *Validator) Validate(payload []byte, now time.Time) (models.Employee, error) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(payload, &body); err != nil || len(body) == 0 {
		return models.Employee{}, ErrMissingFields
	}

	rawEmployee, ok := body["employee"]
	if !ok {
		return models.Employee{}, ErrMissingFields
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(rawEmployee, &fields); err != nil || len(fields) == 0 {
		return models.Employee{}, ErrMissingFields
	}

	var in employeePayload
	if err := json.Unmarshal(rawEmployee, &in); err != nil {
		// a field of the wrong type counts as not provided
		return models.Employee{}, ErrMissingFields
	}
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.HireDate = strings.TrimSpace(in.HireDate)

	if err := v.checkFields(in); err != nil {
		return models.Employee{}, err
	}

	hireDate, err := time.Parse(models.HireDateLayout, in.HireDate)
	if err != nil {
		return models.Employee{}, ErrMalformedHireDate
	}
	if hireDate.After(now) {
		return models.Employee{}, ErrFutureHireDate
	}

	role, _ := models.ParseRole(in.Role)

	return models.Employee{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		HireDate:   in.HireDate,
		Role:       role,
		PictureURL: in.PictureURL,
		Quote:      in.Quote,
	}, nil
}

func (v *Validator) checkFields(in employeePayload) error {
	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate employee payload: %w", err)
	}

	invalidRole := false
	for _, fieldErr := range fieldErrs {
		if fieldErr.Tag() == "required" {
			return ErrMissingFields
		}
		if fieldErr.Tag() == roleTag {
			invalidRole = true
		}
	}

	if invalidRole {
		return ErrInvalidRole
	}

	return fmt.Errorf("failed to validate employee payload: %w", err)
}
