package templates

import "html/template"

// NOTE: these would normally be .templ files compiled with `templ generate`.
// They are html/template sources wrapped as templ components (see
// components.go) so the build needs no code generation step.

var views = template.Must(template.New("views").Parse(layoutSrc + homeSrc + directorySrc + tableSrc + statusSrc))

const layoutSrc = `
{{define "layout"}}<!DOCTYPE html>
<html lang="{{.Lang}}" data-theme="{{.Theme}}">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} · {{.AppName}}</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<link rel="preconnect" href="https://fonts.googleapis.com">
<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
<link href="https://fonts.googleapis.com/css2?family=IBM+Plex+Mono:wght@400;500;600&family=IBM+Plex+Sans:wght@300;400;500;600&display=swap" rel="stylesheet">
<style>
  :root {
    --ink: #0d1117;
    --paper: #f5f0e8;
    --ledger: #e8e0cc;
    --card: rgba(255,255,255,0.7);
    --accent: #c0392b;
    --accent2: #2c6e49;
    --muted: #6b5e4e;
    --rule: #b8a898;
  }
  [data-theme="dark"] {
    --ink: #ece6da;
    --paper: #14171c;
    --ledger: #2a2f37;
    --card: rgba(255,255,255,0.04);
    --accent: #e0695c;
    --accent2: #5fb386;
    --muted: #a89c8c;
    --rule: #3a3f47;
  }
  * { box-sizing: border-box; }
  body {
    background: var(--paper);
    color: var(--ink);
    font-family: 'IBM Plex Sans', sans-serif;
    margin: 0;
    min-height: 100vh;
  }
  a { color: inherit; }
  .mono { font-family: 'IBM Plex Mono', monospace; }
  .shell { max-width: 1100px; margin: 0 auto; padding: 32px 24px; }
  .topbar { display: flex; align-items: center; justify-content: space-between; margin-bottom: 32px; gap: 16px; }
  .brand { font-family: 'IBM Plex Mono', monospace; font-size: 1.1rem; font-weight: 600; text-decoration: none; }
  .nav { display: flex; gap: 16px; font-family: 'IBM Plex Mono', monospace; font-size: 0.8rem; text-transform: uppercase; letter-spacing: 0.08em; }
  .nav a { text-decoration: none; color: var(--muted); padding-bottom: 2px; }
  .nav a.active { color: var(--ink); border-bottom: 2px solid var(--accent); }
  .prefs { display: flex; gap: 8px; align-items: center; }
  .prefs select, .prefs button { font-family: 'IBM Plex Mono', monospace; font-size: 0.75rem; background: var(--card); color: var(--ink); border: 1px solid var(--rule); padding: 4px 8px; cursor: pointer; }
  .card { background: var(--card); border: 1px solid var(--ledger); border-left: 4px solid var(--ink); padding: 24px; }
  .section-header {
    font-family: 'IBM Plex Mono', monospace; font-size: 0.7rem; font-weight: 600;
    letter-spacing: 0.18em; text-transform: uppercase; color: var(--muted);
    border-bottom: 1px solid var(--rule); padding-bottom: 4px; margin-bottom: 16px;
  }
  .btn {
    font-family: 'IBM Plex Mono', monospace; font-weight: 600; font-size: 0.8rem;
    letter-spacing: 0.08em; padding: 8px 18px; border: 2px solid var(--ink);
    cursor: pointer; transition: all 0.15s; text-transform: uppercase;
    text-decoration: none; display: inline-block; background: transparent; color: var(--ink);
  }
  .btn-primary { background: var(--ink); color: var(--paper); }
  .btn-primary:hover { background: var(--accent); border-color: var(--accent); }
  .btn[disabled] { opacity: 0.5; cursor: not-allowed; }
  .stamp {
    display: inline-block; border: 2px solid var(--accent2); color: var(--accent2);
    font-family: 'IBM Plex Mono', monospace; font-weight: 600; letter-spacing: 0.12em;
    padding: 1px 8px; font-size: 0.65rem; text-transform: uppercase;
  }
  .stamp.fallback { border-color: var(--accent); color: var(--accent); }
  table.directory { width: 100%; border-collapse: collapse; font-size: 0.9rem; }
  table.directory th {
    text-align: left; font-family: 'IBM Plex Mono', monospace; font-size: 0.65rem;
    letter-spacing: 0.12em; text-transform: uppercase; color: var(--muted);
    border-bottom: 2px solid var(--ink); padding: 8px;
  }
  table.directory td { padding: 10px 8px; border-bottom: 1px solid var(--ledger); vertical-align: middle; }
  .num { text-align: right; font-family: 'IBM Plex Mono', monospace; }
  .avatar {
    display: inline-flex; align-items: center; justify-content: center; width: 32px; height: 32px;
    border-radius: 50%; background: var(--ink); color: var(--paper);
    font-family: 'IBM Plex Mono', monospace; font-size: 0.7rem; font-weight: 600; margin-right: 10px;
  }
  .tag { font-family: 'IBM Plex Mono', monospace; font-size: 0.7rem; background: var(--ledger); padding: 2px 6px; }
  .muted { color: var(--muted); font-size: 0.8rem; }
  .empty { text-align: center; padding: 48px 0; color: var(--muted); }
  .loader { text-align: center; padding: 64px 0; }
  .spinner {
    width: 40px; height: 40px; margin: 0 auto 16px; border: 3px solid var(--ledger);
    border-top-color: var(--accent); border-radius: 50%; animation: spin 0.8s linear infinite;
  }
  @keyframes spin { to { transform: rotate(360deg); } }
  .alert { border-left-color: var(--accent); }
  pre.details { font-size: 0.75rem; white-space: pre-wrap; background: var(--ledger); padding: 12px; }
  .htmx-indicator { opacity: 0; transition: opacity 0.2s; }
  .htmx-request .htmx-indicator, .htmx-request.htmx-indicator { opacity: 1; }
</style>
</head>
<body>
<div class="shell">
<header class="topbar">
  <a class="brand" href="/">{{.AppName}}</a>
  <nav class="nav">
    {{range .Nav}}<a href="{{.Path}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a>{{end}}
  </nav>
  <div class="prefs">
    <form method="post" action="/language">
      <label class="muted" for="lang">{{.T "Language"}}</label>
      <select id="lang" name="lang" onchange="this.form.submit()">
        <option value="">{{.T "Automatic"}}</option>
        {{$lang := .Lang}}{{range .Languages}}<option value="{{.Code}}"{{if eq .Code $lang}} selected{{end}}>{{.Name}}</option>{{end}}
      </select>
    </form>
    <form method="post" action="/theme">
      <input type="hidden" name="theme" value="{{.NextTheme}}">
      <button type="submit">{{if .Dark}}{{.T "Light mode"}}{{else}}{{.T "Dark mode"}}{{end}}</button>
    </form>
  </div>
</header>
<main>
{{.Body}}
</main>
</div>
</body>
</html>{{end}}
`

const homeSrc = `
{{define "home"}}
<section class="card">
  <h1 class="mono" style="margin-top:0;">{{.T "Welcome to %s" .AppName}}</h1>
  <p>{{.T "A server-rendered employee directory with graceful data fallback"}}</p>
  <div class="section-header">{{.T "This application includes:"}}</div>
  <ul>
    <li>{{.T "Server-rendered views"}}</li>
    <li>{{.T "Partial page updates with htmx"}}</li>
    <li>{{.T "Light and dark themes"}}</li>
    <li>{{.T "Error boundaries"}}</li>
    <li>{{.T "Query cache with fallback data"}}</li>
    <li>{{.T "English and Swedish translations"}}</li>
    <li>{{.T "PDF and XLSX export"}}</li>
  </ul>
  <a class="btn btn-primary" href="/employees">{{.T "View Employees Feature"}}</a>
</section>
{{end}}
`

const directorySrc = `
{{define "directory"}}
<section>
  <div style="display:flex;align-items:flex-start;justify-content:space-between;margin-bottom:24px;gap:16px;">
    <div>
      <h1 class="mono" style="margin:0;">{{.T "Employee Directory"}}</h1>
      <div class="muted" style="margin-top:4px;">{{.T "Manage team information, departments, and compensation"}}</div>
    </div>
    <div style="display:flex;gap:8px;">
      <a class="btn" href="/employees/export.pdf">{{.T "Export PDF"}}</a>
      <a class="btn" href="/employees/export.xlsx">{{.T "Export XLSX"}}</a>
    </div>
  </div>
  {{template "content" .}}
</section>
{{end}}

{{define "content"}}
<div id="employees-content"{{if .State.Refetching}} hx-get="/employees/content" hx-trigger="load" hx-swap="outerHTML"{{end}}>
{{if eq .State.Status "loading"}}
  <div hx-get="/employees/content" hx-trigger="load" hx-target="#employees-content" hx-swap="outerHTML">
    {{template "loader" .}}
  </div>
{{else if eq .State.Status "error"}}
  {{template "error-state" .}}
{{else}}
  <div class="card">
    <div style="display:flex;align-items:center;justify-content:space-between;margin-bottom:16px;gap:16px;">
      <div>
        <span class="mono" data-count="{{.State.Count}}">{{.T "%d team members" .State.Count}}</span>
        {{if eq .State.Origin "fallback"}}<span class="stamp fallback">{{.T "Sample data"}}</span>{{else}}<span class="stamp">{{.T "Live data"}}</span>{{end}}
        {{with .Since .State.UpdatedAt}}<span class="muted">{{$.T "Updated %s" .}}</span>{{end}}
      </div>
      <button class="btn" hx-get="/employees/content?refresh=1" hx-target="#employees-content" hx-swap="outerHTML" hx-disabled-elt="this"{{if .State.Refetching}} disabled{{end}}>
        {{if .State.Refetching}}{{.T "Refreshing..."}}{{else}}{{.T "Refresh"}}{{end}}
      </button>
    </div>
    {{template "table" .}}
    <p class="muted">{{if eq .State.Origin "fallback"}}{{.T "Data provided by mock service. Connect your API by setting API_BASE_URL."}}{{else}}{{.T "Data provided by the employees API."}}{{end}}</p>
  </div>
{{end}}
</div>
{{end}}
`

const tableSrc = `
{{define "table"}}
{{if .Employees}}
<table class="directory">
  <thead>
    <tr>
      <th>{{.T "Employee"}}</th>
      <th>{{.T "Job Title"}}</th>
      <th>{{.T "Department"}}</th>
      <th>{{.T "Location"}}</th>
      <th class="num">{{.T "Salary"}}</th>
      <th class="num">{{.T "Hire Date"}}</th>
    </tr>
  </thead>
  <tbody>
  {{range .Employees}}
    <tr data-employee-id="{{.ID}}">
      <td>
        <div style="display:flex;align-items:center;">
          <span class="avatar">{{$.Initials .FirstName .LastName}}</span>
          <div>
            <div>{{.FullName}}</div>
            <div class="muted">{{if $.ValidEmail .Email}}<a href="mailto:{{.Email}}">{{.Email}}</a>{{else}}{{.Email}}{{end}}</div>
          </div>
        </div>
      </td>
      <td>{{.JobTitle}}</td>
      <td><span class="tag">{{.Department}}</span></td>
      <td>{{.Location}}</td>
      <td class="num">{{$.Currency .Salary}}</td>
      <td class="num">{{$.Date .HireDate}}</td>
    </tr>
  {{end}}
  </tbody>
</table>
{{else}}
<div class="empty" data-empty="employees">{{.T "No employees found."}}</div>
{{end}}
{{end}}
`

const statusSrc = `
{{define "loader"}}
<div class="loader" role="status" aria-live="polite">
  <div class="spinner"></div>
  <div class="mono muted">{{.LoaderMessage}}</div>
</div>
{{end}}

{{define "error-state"}}
<div class="card alert" role="alert">
  <h2 class="mono" style="margin-top:0;">{{.T "Unable to load employees"}}</h2>
  <p>{{.T "Please check your network connection or try again later."}}</p>
  {{if and .Dev .State.Err}}<pre class="details">{{.State.Err}}</pre>{{end}}
  <button class="btn btn-primary" hx-get="/employees/content?refresh=1" hx-target="#employees-content" hx-swap="outerHTML" hx-disabled-elt="this">{{.T "Retry"}}</button>
</div>
{{end}}

{{define "not-found"}}
<section class="card" style="text-align:center;">
  <div class="mono" style="font-size:4rem;font-weight:600;">404</div>
  <h1 class="mono">{{.T "Page Not Found"}}</h1>
  <p class="muted">{{.T "The page you're looking for doesn't exist or has been moved."}}</p>
  <a class="btn btn-primary" href="/">{{.T "Go to Home"}}</a>
</section>
{{end}}

{{define "error-boundary"}}
<section class="card alert" role="alert">
  <h1 class="mono" style="margin-top:0;">{{.T "Something went wrong"}}</h1>
  <p>{{.T "We're sorry, but something unexpected happened. Please try refreshing the page."}}</p>
  {{if and .Dev .Detail}}<pre class="details">{{.Detail}}</pre>{{end}}
  <a class="btn btn-primary" href="{{.Retry}}">{{.T "Try Again"}}</a>
</section>
{{end}}
`
