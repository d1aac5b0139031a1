// Package employees resolves the employee directory and drives the
// directory page through its loading, success and error states.
package employees

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"github.com/csg33k/employee-directory/internal/adapters/mockdata"
	"github.com/csg33k/employee-directory/internal/domain"
	"github.com/csg33k/employee-directory/internal/ports"
)

// Path is the employees collection endpoint, relative to the API base URL.
const Path = "/employees"

// Source fetches the directory from the remote API and falls back to the
// bundled sample records whenever the API is unconfigured, unreachable or
// answers with something that is not a list of employees.
type Source struct {
	api ports.APIClient
	log zerolog.Logger
}

var _ ports.EmployeeSource = (*Source)(nil)

// NewSource returns a Source. A nil api means no base URL is configured.
func NewSource(api ports.APIClient, log zerolog.Logger) *Source {
	return &Source{api: api, log: log.With().Str("component", "employees").Logger()}
}

// Fetch never fails: every problem resolves to the fallback list.
func (s *Source) Fetch(ctx context.Context) domain.EmployeeList {
	if s.api == nil {
		return fallback()
	}

	var body any
	if err := s.api.Get(ctx, Path, &body); err != nil {
		ev := s.log.Warn().Err(err)
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) {
			ev = ev.Int("status", apiErr.StatusCode())
		}
		ev.Msg("fetching employees failed, using sample data")
		return fallback()
	}

	list, ok := Normalize(body)
	if !ok {
		s.log.Warn().Str("shape", shapeOf(body)).Msg("unexpected employees response, using sample data")
		return fallback()
	}
	return domain.EmployeeList{Employees: list, Origin: domain.OriginRemote}
}

// FetchEmployees is Fetch without the origin tag.
func (s *Source) FetchEmployees(ctx context.Context) []domain.Employee {
	return s.Fetch(ctx).Employees
}

// Normalize reshapes a decoded JSON body into employee records. A bare array
// is used as-is; an object carrying an array under "data" yields that array.
// Anything else, including arrays whose elements are not employee objects,
// reports false. Bodies decoded with UseNumber keep integer ids exact.
func Normalize(body any) ([]domain.Employee, bool) {
	var items []any
	switch v := body.(type) {
	case []any:
		items = v
	case map[string]any:
		inner, ok := v["data"].([]any)
		if !ok {
			return nil, false
		}
		items = inner
	default:
		return nil, false
	}

	// Round-trip through JSON so the records decode with the same tags the
	// API uses.
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, false
	}
	out := make([]domain.Employee, 0, len(items))
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return out, true
}

func fallback() domain.EmployeeList {
	return domain.EmployeeList{Employees: mockdata.Employees(), Origin: domain.OriginFallback}
}

func shapeOf(body any) string {
	switch body.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64, json.Number:
		return "number"
	case bool:
		return "bool"
	}
	return "unknown"
}
