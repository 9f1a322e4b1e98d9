package models

// UserAgent is sent with every request to an upstream service.
const UserAgent = "hestia/1.0 (+https://github.com/UnknownOlympus/hestia)"

// Enrichment holds the optional, externally sourced fields of an employee.
// A nil field means the lookup did not succeed.
type Enrichment struct {
	PictureURL *string
	Quote      *string
}

// Apply copies the enrichment into the employee, overwriting both fields.
func (en Enrichment) Apply(employee *Employee) {
	employee.PictureURL = en.PictureURL
	employee.Quote = en.Quote
}
