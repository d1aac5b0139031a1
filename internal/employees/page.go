package employees

import (
	"context"
	"fmt"
	"time"

	"github.com/csg33k/employee-directory/internal/domain"
	"github.com/csg33k/employee-directory/internal/ports"
	"github.com/csg33k/employee-directory/internal/query"
)

// QueryKey identifies the employee list in the query cache.
const QueryKey = "employees"

type Status string

const (
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// PageState is everything the directory page renders from.
//
// Refetching is only ever set alongside StatusSuccess: a refresh keeps the
// current records on screen until they are replaced.
type PageState struct {
	Status     Status
	Employees  []domain.Employee
	Origin     domain.Origin
	Count      int
	Refetching bool
	UpdatedAt  time.Time
	Err        error
}

// Page is the directory page controller. The source itself never fails, so
// StatusError only surfaces failures of the query cache (closed cache,
// recovered panic, fetch timeout).
type Page struct {
	source ports.EmployeeSource
	cache  *query.Client
}

func NewPage(source ports.EmployeeSource, cache *query.Client) *Page {
	return &Page{source: source, cache: cache}
}

// State reports what the page shows right now, without fetching. Fresh or
// stale cached records render as success; nothing cached renders as loading.
func (p *Page) State() PageState {
	snap := p.cache.Peek(QueryKey)
	switch {
	case snap.Err != nil && !snap.Fetching:
		return errorState(snap.Err)
	case snap.HasData:
		st := successState(snap.Value, snap.UpdatedAt)
		st.Refetching = snap.Fetching
		return st
	}
	return PageState{Status: StatusLoading}
}

// Load resolves the page: cached records while fresh, otherwise a fetch.
func (p *Page) Load(ctx context.Context) PageState {
	v, err := p.cache.Fetch(ctx, QueryKey, p.fetch)
	return p.settle(v, err)
}

// Refresh refetches regardless of freshness. It doubles as the retry action
// of the error state. A refresh while a fetch is in flight joins it.
func (p *Page) Refresh(ctx context.Context) PageState {
	v, err := p.cache.Refetch(ctx, QueryKey, p.fetch)
	return p.settle(v, err)
}

// Fresh reports whether State would render cached records without a fetch.
func (p *Page) Fresh() bool {
	snap := p.cache.Peek(QueryKey)
	return snap.HasData && snap.Err == nil && !snap.Stale
}

func (p *Page) fetch(ctx context.Context) (any, error) {
	return p.source.Fetch(ctx), nil
}

func (p *Page) settle(v any, err error) PageState {
	if err != nil {
		return errorState(err)
	}
	return successState(v, p.cache.Peek(QueryKey).UpdatedAt)
}

func successState(v any, updated time.Time) PageState {
	list, ok := v.(domain.EmployeeList)
	if !ok {
		return errorState(fmt.Errorf("employees: unexpected cached value %T", v))
	}
	return PageState{
		Status:    StatusSuccess,
		Employees: list.Employees,
		Origin:    list.Origin,
		Count:     len(list.Employees),
		UpdatedAt: updated,
	}
}

func errorState(err error) PageState {
	return PageState{Status: StatusError, Err: err}
}
