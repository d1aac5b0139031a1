package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog"

	"github.com/csg33k/employee-directory/internal/adapters/sqlite"
	"github.com/csg33k/employee-directory/internal/domain"
	"github.com/csg33k/employee-directory/internal/employees"
	"github.com/csg33k/employee-directory/internal/i18n"
	"github.com/csg33k/employee-directory/internal/logging"
	"github.com/csg33k/employee-directory/internal/ports"
	"github.com/csg33k/employee-directory/internal/templates"
)

type Config struct {
	AppName   string
	Env       string
	LoginPath string
}

type Handler struct {
	cfg        Config
	page       *employees.Page
	store      ports.LocalStorage
	exporters  []ports.DirectoryExporter
	translator *i18n.Translator
	log        zerolog.Logger
	now        func() time.Time
}

func New(cfg Config, page *employees.Page, store ports.LocalStorage, log zerolog.Logger, exporters ...ports.DirectoryExporter) *Handler {
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	return &Handler{
		cfg:        cfg,
		page:       page,
		store:      store,
		exporters:  exporters,
		translator: i18n.Default(),
		log:        log,
		now:        time.Now,
	}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.home)
	mux.HandleFunc("GET /employees", h.directory)
	mux.HandleFunc("GET /employees/content", h.content)
	mux.HandleFunc("GET /employees.json", h.employeesJSON)
	for _, e := range h.exporters {
		mux.HandleFunc("GET /employees/export."+e.Extension(), h.export(e))
	}
	mux.HandleFunc("POST /language", h.setLanguage)
	mux.HandleFunc("POST /theme", h.setTheme)
	mux.HandleFunc("GET /healthz", h.healthz)
	mux.HandleFunc("/", h.notFound)

	return logging.Middleware(h.log)(logging.Recover(h.errorBoundary)(navigation(mux)))
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.Home(h.viewContext(r)))
}

// directory renders the page shell without blocking on the API. A warm
// cache renders the records straight away; stale records are shown while
// the content region pulls a refetch; a cold cache shows the loader.
func (h *Handler) directory(w http.ResponseWriter, r *http.Request) {
	st := h.page.State()
	if st.Status == employees.StatusSuccess && !h.page.Fresh() {
		st.Refetching = true
	}
	render(w, r, templates.EmployeesPage(h.viewContext(r), st))
}

// content is the htmx fragment behind the loader and the Refresh and Retry
// buttons. ?refresh=1 refetches even when the cache is fresh.
func (h *Handler) content(w http.ResponseWriter, r *http.Request) {
	var st employees.PageState
	if r.URL.Query().Get("refresh") != "" {
		st = h.page.Refresh(r.Context())
	} else {
		st = h.page.Load(r.Context())
	}
	if h.redirectToLogin(w, r) {
		return
	}
	if st.Status == employees.StatusError {
		zerolog.Ctx(r.Context()).Error().Err(st.Err).Msg("Loading employees failed")
	}
	render(w, r, templates.EmployeesContent(h.viewContext(r), st))
}

type employeesResponse struct {
	Origin    domain.Origin     `json:"origin"`
	Count     int               `json:"count"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Employees []domain.Employee `json:"employees"`
}

func (h *Handler) employeesJSON(w http.ResponseWriter, r *http.Request) {
	st := h.page.Load(r.Context())
	if h.redirectToLogin(w, r) {
		return
	}
	if st.Status != employees.StatusSuccess {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": errText(st.Err)})
		return
	}
	list := st.Employees
	if list == nil {
		list = []domain.Employee{}
	}
	writeJSON(w, http.StatusOK, employeesResponse{
		Origin:    st.Origin,
		Count:     st.Count,
		UpdatedAt: st.UpdatedAt,
		Employees: list,
	})
}

func (h *Handler) export(e ports.DirectoryExporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := h.page.Load(r.Context())
		if h.redirectToLogin(w, r) {
			return
		}
		if st.Status != employees.StatusSuccess {
			http.Error(w, errText(st.Err), http.StatusServiceUnavailable)
			return
		}
		var buf bytes.Buffer
		list := domain.EmployeeList{Employees: st.Employees, Origin: st.Origin}
		if err := e.Export(r.Context(), list, &buf); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Str("format", e.Extension()).Msg("Export failed")
			http.Error(w, err.Error(), 500)
			return
		}
		filename := fmt.Sprintf("employees_%s.%s", h.now().Format("20060102"), e.Extension())
		w.Header().Set("Content-Type", e.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		w.Write(buf.Bytes())
	}
}

func (h *Handler) setLanguage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	code := r.FormValue("lang")
	if code == "" {
		// Automatic: forget the choice and follow Accept-Language again.
		if err := h.store.Remove(r.Context(), sqlite.KeyLanguage); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		goBack(w, r)
		return
	}
	lang, ok := i18n.Lookup(code)
	if !ok {
		http.Error(w, "unsupported language", 400)
		return
	}
	if err := h.store.Set(r.Context(), sqlite.KeyLanguage, lang.Code); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	goBack(w, r)
}

func (h *Handler) setTheme(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	theme := r.FormValue("theme")
	if theme != templates.ThemeLight && theme != templates.ThemeDark {
		http.Error(w, "unsupported theme", 400)
		return
	}
	if err := h.store.Set(r.Context(), sqlite.KeyTheme, theme); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	goBack(w, r)
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	if p, ok := h.store.(interface{ Ping(context.Context) error }); ok {
		if err := p.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// notFound also serves the login route: authentication is not part of this
// application, the route only exists as the 401 redirect target.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	renderStatus(w, r, http.StatusNotFound, templates.NotFound(h.viewContext(r)))
}

// errorBoundary renders the "Something went wrong" view for a recovered
// handler panic.
func (h *Handler) errorBoundary(w http.ResponseWriter, r *http.Request, rvr any) {
	retry := "/"
	if r.Method == http.MethodGet {
		retry = r.URL.RequestURI()
	}
	renderStatus(w, r, http.StatusInternalServerError,
		templates.ErrorBoundary(h.viewContext(r), fmt.Sprint(rvr), retry))
}

// viewContext resolves the per-request view state: language from the stored
// preference, then Accept-Language; theme from the stored preference.
func (h *Handler) viewContext(r *http.Request) templates.ViewContext {
	ctx := r.Context()
	stored := h.preference(ctx, sqlite.KeyLanguage)
	lang := h.translator.Match(stored, r.Header.Get("Accept-Language"))

	theme := h.preference(ctx, sqlite.KeyTheme)
	if theme != templates.ThemeDark {
		theme = templates.ThemeLight
	}
	return templates.ViewContext{
		AppName: h.cfg.AppName,
		Env:     h.cfg.Env,
		Lang:    lang,
		Theme:   theme,
		Path:    r.URL.Path,
		Printer: h.translator.Printer(lang),
		Now:     h.now(),
	}
}

func (h *Handler) preference(ctx context.Context, key string) string {
	v, err := h.store.Get(ctx, key)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Reading preference failed")
		return ""
	}
	return v
}

// ── Login navigation ─────────────────────────────────────────────────────────

type navigatorKey struct{}

// navigator records that something during the request asked to navigate to
// the login route. It is set from the API client's goroutine.
type navigator struct {
	login atomic.Bool
}

func navigation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), navigatorKey{}, &navigator{})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireLogin asks the request carried by ctx to send the user to the login
// route once it has finished loading. It is the API client's 401 hook; outside
// a request it does nothing.
func RequireLogin(ctx context.Context) {
	if n, ok := ctx.Value(navigatorKey{}).(*navigator); ok {
		n.login.Store(true)
	}
}

func (h *Handler) redirectToLogin(w http.ResponseWriter, r *http.Request) bool {
	n, ok := r.Context().Value(navigatorKey{}).(*navigator)
	if !ok || !n.login.Load() {
		return false
	}
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", h.cfg.LoginPath)
		w.WriteHeader(http.StatusOK)
		return true
	}
	http.Redirect(w, r, h.cfg.LoginPath, http.StatusSeeOther)
	return true
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	renderStatus(w, r, http.StatusOK, c)
}

func renderStatus(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// goBack redirects to the path and query of the referring page, or home.
func goBack(w http.ResponseWriter, r *http.Request) {
	to := "/"
	if u, err := url.Parse(r.Referer()); err == nil && strings.HasPrefix(u.Path, "/") && !strings.HasPrefix(u.Path, "//") {
		to = u.Path
		if u.RawQuery != "" {
			to += "?" + u.RawQuery
		}
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func errText(err error) string {
	if err == nil {
		return http.StatusText(http.StatusServiceUnavailable)
	}
	return err.Error()
}
