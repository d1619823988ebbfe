package api

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/dennisdiepolder/monti/dashboard/internal/charts"
	"github.com/dennisdiepolder/monti/dashboard/internal/report"
	"github.com/dennisdiepolder/monti/dashboard/internal/types"
)

var pageTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"clock":   report.Clock,
	"percent": report.Percent,
}).Parse(indexHTML))

type chartRef struct {
	Title string
	Src   string
}

type pageData struct {
	Dashboard *types.Dashboard
	Charts    []chartRef
	Error     string
}

// GetIndex serves the HTML dashboard
// GET /
func (h *DashboardHandler) GetIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{}
	status := http.StatusOK

	d, err := h.renderer.Render(r.Context())
	switch {
	case errors.Is(err, context.Canceled):
		return
	case err != nil:
		h.logger.Error().Err(err).Msg("failed to render dashboard page")
		data.Error = err.Error()
		status = http.StatusInternalServerError
	default:
		data.Dashboard = d
		data.Charts = chartRefs(r.URL.Query().Get("token"))
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error().Err(err).Msg("failed to execute page template")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// chartRefs builds the image sources, carrying a query token through so
// image requests pass the auth middleware
func chartRefs(token string) []chartRef {
	refs := make([]chartRef, len(charts.Names))
	for i, name := range charts.Names {
		src := "/charts/" + name + ".svg"
		if token != "" {
			src += "?" + url.Values{"token": {token}}.Encode()
		}
		refs[i] = chartRef{Title: charts.Titles[name], Src: src}
	}
	return refs
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Agent Productivity Dashboard</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #2a3f5f; }
table { border-collapse: collapse; margin-top: 1rem; }
th, td { border: 1px solid #dfe6ee; padding: 4px 8px; text-align: right; }
th:first-child, td:first-child { text-align: left; }
.error { color: #b00020; }
.alert-critical { color: #b00020; font-weight: bold; }
.alert-warning { color: #c77700; }
.charts img { display: block; margin: 1.5rem 0; max-width: 100%; }
</style>
</head>
<body>
<h1>Agent Productivity Dashboard</h1>
{{if .Error}}
<p class="error">Error loading dashboard: {{.Error}}</p>
{{else}}{{with .Dashboard}}
<p>Source: {{.Source}} &middot; {{.Totals.Records}} intervals &middot; {{.Totals.Agents}} agents &middot; generated {{.GeneratedAt.Format "2006-01-02 15:04:05"}}</p>
<div class="charts">
{{range $.Charts}}<img src="{{.Src}}" alt="{{.Title}}">
{{end}}</div>
<h2>Agent Summary</h2>
<table>
<thead><tr><th>Agent</th><th>Logged In</th><th>Available</th><th>Handling</th><th>Wrap Up</th><th>Busy</th><th>On Break</th><th>Working Offline</th><th>Productive</th><th>Productivity %</th><th>Alerts</th></tr></thead>
<tbody>
{{range .Summaries}}<tr><td>{{.Agent}}</td><td>{{clock .LoggedIn}}</td><td>{{clock .Available}}</td><td>{{clock .Handling}}</td><td>{{clock .WrapUp}}</td><td>{{clock .Busy}}</td><td>{{clock .OnBreak}}</td><td>{{clock .WorkingOffline}}</td><td>{{clock .ProductiveTime}}</td><td>{{percent .}}</td><td>{{range .Alerts}}<span class="alert-{{.Severity}}" title="{{.Rule}}">{{.Message}}</span> {{end}}</td></tr>
{{end}}</tbody>
</table>
{{end}}{{end}}
</body>
</html>
`
