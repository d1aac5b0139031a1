package templates

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/csg33k/employee-directory/internal/domain"
	"github.com/csg33k/employee-directory/internal/employees"
)

// pageData is the single data shape every view template executes with.
type pageData struct {
	ViewContext
	Title   string
	Body    template.HTML
	State   employees.PageState
	Message string
	Detail  string
	Retry   string
}

func (d pageData) Employees() []domain.Employee { return d.State.Employees }

func (d pageData) LoaderMessage() string {
	if d.Message != "" {
		return d.Message
	}
	return d.T("Loading...")
}

// component wraps a named view template as a templ component.
func component(name string, data pageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return views.ExecuteTemplate(w, name, data)
	})
}

// Layout renders body inside the document shell: head, navigation, language
// and theme controls.
func Layout(vc ViewContext, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		inner, err := templ.ToGoHTML(ctx, body)
		if err != nil {
			return err
		}
		return views.ExecuteTemplate(w, "layout", pageData{ViewContext: vc, Title: title, Body: inner})
	})
}

func Home(vc ViewContext) templ.Component {
	return Layout(vc, vc.T("Dashboard"), component("home", pageData{ViewContext: vc}))
}

// EmployeesPage is the full directory page. A loading state renders the
// spinner, which pulls EmployeesContent as soon as it is on screen.
func EmployeesPage(vc ViewContext, st employees.PageState) templ.Component {
	return Layout(vc, vc.T("Employee Directory"), component("directory", directoryData(vc, st)))
}

// EmployeesContent is the swappable region of the directory page: the
// records with their toolbar, the loader or the error state.
func EmployeesContent(vc ViewContext, st employees.PageState) templ.Component {
	return component("content", directoryData(vc, st))
}

func directoryData(vc ViewContext, st employees.PageState) pageData {
	return pageData{ViewContext: vc, State: st, Message: vc.T("Loading employees")}
}

// EmployeeTable renders one row per record, or the empty-list notice.
func EmployeeTable(vc ViewContext, list []domain.Employee) templ.Component {
	return component("table", pageData{ViewContext: vc, State: employees.PageState{Employees: list}})
}

// Loader is the blocking spinner; an empty message shows "Loading...".
func Loader(vc ViewContext, message string) templ.Component {
	return component("loader", pageData{ViewContext: vc, Message: message})
}

// ErrorState is the directory's error view with its retry action.
func ErrorState(vc ViewContext, err error) templ.Component {
	return component("error-state", pageData{ViewContext: vc, State: employees.PageState{Status: employees.StatusError, Err: err}})
}

func NotFound(vc ViewContext) templ.Component {
	return Layout(vc, vc.T("Page Not Found"), component("not-found", pageData{ViewContext: vc}))
}

// ErrorBoundary is shown when a request handler panics. detail is only
// rendered in development; retry is the link behind "Try Again".
func ErrorBoundary(vc ViewContext, detail, retry string) templ.Component {
	if retry == "" {
		retry = "/"
	}
	return Layout(vc, vc.T("Something went wrong"), component("error-boundary", pageData{ViewContext: vc, Detail: detail, Retry: retry}))
}
