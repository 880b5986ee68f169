// Package report renders the static HTML report and writes it to disk.
package report

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"wureport/internal/models"
	"wureport/pkg/metadata"
)

// reportTemplate is the fixed report layout: one heading, one table per OS
// family, inline styling only so the file works on any static host.
const reportTemplate = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>
  body {
    background:#0f172a; color:#e2e8f0; font-family: system-ui,-apple-system,Segoe UI,Roboto,Ubuntu,"Helvetica Neue",Arial;
    margin: 0; padding: 32px;
  }
  h1 { margin: 0 0 16px 0; font-size: 22px; }
  h2 { margin: 28px 0 10px 0; font-size: 17px; color:#bfdbfe; }
  table {
    width: 100%; border-collapse: collapse; background:#0b1220; border:1px solid #23304a;
  }
  th, td { padding: 10px 12px; border-bottom: 1px solid #1e293b; vertical-align: top; }
  th { background:#0b162a; text-align:left; color:#aebbd3; font-weight:600; }
  a, a:visited { color:#7dd3fc; text-decoration: none; }
  a:hover { text-decoration: underline; }
  .muted { color:#94a3b8; font-size: 12px; margin-top: 6px; }
  .empty { text-align:center; color:#64748b; }
</style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <div class="muted">Source: Microsoft Support update history pages. Window: last {{.WindowDays}} days.</div>
{{- range .Sections}}
  <section>
    <h2>{{.Family}}</h2>
    <table>
      <thead>
        <tr>
          <th>Release date</th>
          <th>KB(s)</th>
          <th>Title</th>
          <th>Source</th>
        </tr>
      </thead>
      <tbody>
{{- if .Entries}}
{{- range .Entries}}
        <tr>
          <td>{{formatDate .Date}}</td>
          <td>{{joinKBs .KBs}}</td>
          <td><a href="{{.URL}}" target="_blank" rel="noopener">{{.Title}}</a></td>
          <td><a href="{{.SourceURL}}" target="_blank" rel="noopener">MS Support</a></td>
        </tr>
{{- end}}
{{- else}}
        <tr><td colspan="4" class="empty">No updates in the last {{$.WindowDays}} days.</td></tr>
{{- end}}
      </tbody>
    </table>
  </section>
{{- end}}
</body>
</html>
`

// Renderer produces the report document.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a renderer with the fixed report template.
func NewRenderer() *Renderer {
	tmpl := template.Must(template.New("report").Funcs(template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 02, 2006")
		},
		"joinKBs": func(kbs []string) string {
			if len(kbs) == 0 {
				return "-"
			}

			return strings.Join(kbs, ", ")
		},
	}).Parse(reportTemplate))

	return &Renderer{tmpl: tmpl}
}

// Render produces the final signed HTML document. Everything outside the
// trailing metadata block depends only on the report sections, so identical
// input renders byte-identically run to run.
func (r *Renderer) Render(rep *models.Report) (string, error) {
	var b strings.Builder

	if err := r.tmpl.Execute(&b, rep); err != nil {
		return "", fmt.Errorf("executing report template: %w", err)
	}

	return metadata.Sign(b.String(), rep.GeneratedAt, rep.WindowDays), nil
}
