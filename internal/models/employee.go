package models

import "strings"

// Role is the position an employee holds in the company.
type Role string

const (
	RoleCEO                   Role = "CEO"
	RoleVP                    Role = "VP"
	RoleManager               Role = "MANAGER"
	RoleIndividualContributor Role = "INDIVIDUAL CONTRIBUTOR"
)

// HireDateLayout is the only accepted format of Employee.HireDate.
const HireDateLayout = "2006-01-02"

// Roles lists every accepted role in its canonical form.
func Roles() []Role {
	return []Role{RoleCEO, RoleVP, RoleManager, RoleIndividualContributor}
}

// ParseRole matches value against the known roles ignoring case
// and returns the canonical (uppercase) role.
func ParseRole(value string) (Role, bool) {
	candidate := Role(strings.ToUpper(value))
	for _, role := range Roles() {
		if candidate == role {
			return role, true
		}
	}

	return "", false
}

// Employee represents an employee record kept by the service.
type Employee struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	HireDate   string  `json:"hireDate"`
	Role       Role    `json:"role"`
	PictureURL *string `json:"pictureUrl"`
	Quote      *string `json:"quote"`
}

// Clone returns a copy of the employee that shares no pointers with the original.
func (e Employee) Clone() Employee {
	cp := e
	if e.PictureURL != nil {
		picture := *e.PictureURL
		cp.PictureURL = &picture
	}
	if e.Quote != nil {
		quote := *e.Quote
		cp.Quote = &quote
	}

	return cp
}
