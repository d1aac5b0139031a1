package templates_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/employee-directory/internal/adapters/mockdata"
	"github.com/csg33k/employee-directory/internal/domain"
	"github.com/csg33k/employee-directory/internal/employees"
	"github.com/csg33k/employee-directory/internal/templates"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func vc(lang string) templates.ViewContext {
	return templates.ViewContext{
		AppName: "Employee Directory",
		Env:     "development",
		Lang:    lang,
		Theme:   templates.ThemeLight,
		Path:    "/employees",
		Now:     now,
	}
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))
	return sb.String()
}

func TestEmployeeTable_Empty(t *testing.T) {
	for _, list := range [][]domain.Employee{nil, {}} {
		out := render(t, templates.EmployeeTable(vc("en"), list))
		assert.Contains(t, out, "No employees found.")
		assert.NotContains(t, out, "<table")
		assert.Equal(t, 0, strings.Count(out, "<tr data-employee-id"))
	}
}

func TestEmployeeTable_OneRowPerRecord(t *testing.T) {
	list := mockdata.Employees()
	out := render(t, templates.EmployeeTable(vc("en"), list))

	assert.Equal(t, len(list), strings.Count(out, "<tr data-employee-id"))
	assert.NotContains(t, out, "No employees found.")
	first := list[0]
	assert.Contains(t, out, fmt.Sprintf(`data-employee-id="%d"`, first.ID))
	assert.Contains(t, out, first.FullName())
	assert.Contains(t, out, `<span class="avatar">`+strings.ToUpper(first.FirstName[:1]+first.LastName[:1])+`</span>`)
}

func TestEmployeeTable_FormatsCells(t *testing.T) {
	list := []domain.Employee{{
		ID: 7, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
		Salary: 125000, HireDate: "2021-06-15",
	}}
	out := render(t, templates.EmployeeTable(vc("en"), list))
	assert.Contains(t, out, "$125,000.00")
	assert.Contains(t, out, "Jun 15, 2021")

	assert.Contains(t, out, `href="mailto:ada@example.com"`)

	list[0].HireDate = "someday"
	list[0].Email = "not an email"
	out = render(t, templates.EmployeeTable(vc("en"), list))
	assert.Contains(t, out, "someday", "unparseable dates are shown as-is")
	assert.NotContains(t, out, "mailto:")
}

func TestEmployeeTable_Swedish(t *testing.T) {
	out := render(t, templates.EmployeeTable(vc("sv"), nil))
	assert.Contains(t, out, "Inga anställda hittades.")
}

func TestEmployeesContent_States(t *testing.T) {
	list := mockdata.Employees()

	t.Run("loading polls for content", func(t *testing.T) {
		out := render(t, templates.EmployeesContent(vc("en"), employees.PageState{Status: employees.StatusLoading}))
		assert.Contains(t, out, `hx-get="/employees/content"`)
		assert.Contains(t, out, "Loading employees")
		assert.NotContains(t, out, "<table")
	})

	t.Run("success from fallback", func(t *testing.T) {
		st := employees.PageState{
			Status: employees.StatusSuccess, Employees: list, Count: len(list),
			Origin: domain.OriginFallback, UpdatedAt: now.Add(-2 * time.Minute),
		}
		out := render(t, templates.EmployeesContent(vc("en"), st))
		assert.Contains(t, out, "Sample data")
		assert.Contains(t, out, "API_BASE_URL")
		assert.Contains(t, out, "Updated 2 minutes ago")
		assert.Equal(t, len(list), strings.Count(out, "<tr data-employee-id"))
	})

	t.Run("single member is singular", func(t *testing.T) {
		st := employees.PageState{Status: employees.StatusSuccess, Employees: list[:1], Count: 1, Origin: domain.OriginRemote}
		out := render(t, templates.EmployeesContent(vc("en"), st))
		assert.Contains(t, out, "1 team member<")
		assert.Contains(t, out, "Live data")
	})

	t.Run("refetching keeps rows and disables refresh", func(t *testing.T) {
		st := employees.PageState{Status: employees.StatusSuccess, Employees: list, Count: len(list), Refetching: true}
		out := render(t, templates.EmployeesContent(vc("en"), st))
		assert.Contains(t, out, "Refreshing...")
		assert.Contains(t, out, " disabled>")
		assert.Equal(t, len(list), strings.Count(out, "<tr data-employee-id"))
	})

	t.Run("error offers retry", func(t *testing.T) {
		st := employees.PageState{Status: employees.StatusError, Err: errors.New("query: closed")}
		out := render(t, templates.EmployeesContent(vc("en"), st))
		assert.Contains(t, out, "Unable to load employees")
		assert.Contains(t, out, "query: closed", "details are shown in development")
		assert.Contains(t, out, "/employees/content?refresh=1")

		prod := vc("en")
		prod.Env = "production"
		out = render(t, templates.EmployeesContent(prod, st))
		assert.NotContains(t, out, "query: closed")
	})
}

func TestEmployeesPage_Layout(t *testing.T) {
	dark := vc("sv")
	dark.Theme = templates.ThemeDark
	out := render(t, templates.EmployeesPage(dark, employees.PageState{Status: employees.StatusLoading}))

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, `<html lang="sv" data-theme="dark">`)
	assert.Contains(t, out, `<option value="sv" selected>`)
	assert.Contains(t, out, `name="theme" value="light"`)
	assert.Contains(t, out, `<a href="/employees" class="active">`)
	assert.Contains(t, out, `id="employees-content"`)
}

func TestNotFound(t *testing.T) {
	out := render(t, templates.NotFound(vc("en")))
	assert.Contains(t, out, "404")
	assert.Contains(t, out, "Page Not Found")
	assert.Contains(t, out, `href="/"`)
}

func TestErrorBoundary(t *testing.T) {
	out := render(t, templates.ErrorBoundary(vc("en"), "boom", "/employees"))
	assert.Contains(t, out, "Something went wrong")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, `href="/employees"`)

	prod := vc("en")
	prod.Env = "production"
	out = render(t, templates.ErrorBoundary(prod, "boom", ""))
	assert.NotContains(t, out, "boom")
	assert.Contains(t, out, `class="btn btn-primary" href="/"`)
}

func TestLoader_DefaultMessage(t *testing.T) {
	assert.Contains(t, render(t, templates.Loader(vc("en"), "")), "Loading...")
	assert.Contains(t, render(t, templates.Loader(vc("en"), "Hold on")), "Hold on")
}
