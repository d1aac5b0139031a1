// Package mockdata bundles the sample employee records served when no
// employees API is configured or reachable.
//
// The records are embedded into the binary and decoded once. Employees hands
// out a fresh copy on every call, so the shared set can never be mutated by a
// caller.
package mockdata

import (
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/csg33k/employee-directory/internal/domain"
)

//go:embed employees.json
var employeesJSON []byte

var (
	once      sync.Once
	employees []domain.Employee
)

// Employees returns a copy of the bundled sample records.
func Employees() []domain.Employee {
	once.Do(func() {
		if err := json.Unmarshal(employeesJSON, &employees); err != nil {
			panic("mockdata: bundled employees.json is invalid: " + err.Error())
		}
	})
	out := make([]domain.Employee, len(employees))
	copy(out, employees)
	return out
}
