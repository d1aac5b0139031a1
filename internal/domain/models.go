package domain

import "fmt"

// Origin records where an employee list came from.
type Origin string

const (
	OriginRemote   Origin = "remote"
	OriginFallback Origin = "fallback"
)

// Employee is a single directory record as served by the employees API.
type Employee struct {
	ID         int64   `json:"id"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	JobTitle   string  `json:"jobTitle"`
	Department string  `json:"department"`
	Location   string  `json:"location"`
	Salary     float64 `json:"salary"`
	HireDate   string  `json:"hireDate"` // ISO-8601 date, e.g. "2019-04-12"
}

// FullName joins first and last name with a single space.
func (e Employee) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// EmployeeList is a fetched list tagged with its provenance.
// Employees always come from exactly one origin.
type EmployeeList struct {
	Employees []Employee `json:"employees"`
	Origin    Origin     `json:"origin"`
}

// APIError is the normalized shape of every failed API request.
// Status is nil when no response was received.
type APIError struct {
	Status  *int   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (e *APIError) Error() string {
	if e.Status == nil {
		return fmt.Sprintf("api error: %s", e.Message)
	}
	return fmt.Sprintf("api error: status=%d %s", *e.Status, e.Message)
}

// StatusCode returns the response status, or 0 when there was no response.
func (e *APIError) StatusCode() int {
	if e.Status == nil {
		return 0
	}
	return *e.Status
}
