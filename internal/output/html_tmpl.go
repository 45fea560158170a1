package output

const htmlStyle = `
:root {
  --bg: #fff; --fg: #1a1a2e; --card-bg: #f8f9fa; --border: #dee2e6;
  --table-alt: #f1f3f5; --hover: #e9ecef; --muted: #6c757d;
  --accent: #0d6efd;
}
@media (prefers-color-scheme: dark) {
  :root {
    --bg: #1a1a2e; --fg: #e9ecef; --card-bg: #16213e; --border: #495057;
    --table-alt: #0f3460; --hover: #1a1a4e; --muted: #adb5bd;
    --accent: #5b9aff;
  }
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; padding: 1rem; max-width: 1400px; margin: 0 auto; }
header { margin-bottom: 1.5rem; }
header h1 { font-size: 1.5rem; margin-bottom: .25rem; }
header p { color: var(--muted); font-size: .875rem; }
nav { display: flex; gap: 1rem; margin-bottom: 1rem; }
nav a, .toggle a { color: var(--accent); text-decoration: none; }
nav a.active, .toggle a.active { font-weight: 700; text-decoration: underline; }
.layout { display: grid; grid-template-columns: 260px 1fr; gap: 1.5rem; }
@media (max-width: 900px) { .layout { grid-template-columns: 1fr; } }
.filters { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; font-size: .8125rem; align-self: start; }
.filters fieldset { border: none; margin-bottom: .75rem; }
.filters legend { font-weight: 700; margin-bottom: .25rem; }
.filters label { display: block; }
.filters input[type=number] { width: 5.5rem; padding: .25rem; border: 1px solid var(--border); border-radius: 4px; background: var(--bg); color: var(--fg); }
.filters button { padding: .375rem .75rem; border: 1px solid var(--accent); border-radius: 4px; background: var(--accent); color: #fff; cursor: pointer; }
.cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(140px, 1fr)); gap: .75rem; margin-bottom: 1.5rem; }
.card { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: .75rem; text-align: center; }
.card .value { font-size: 1.5rem; font-weight: 700; }
.card .label { font-size: .75rem; color: var(--muted); text-transform: uppercase; }
.card.info .value { font-size: 2rem; color: var(--accent); }
h2 { font-size: 1.125rem; margin: 1rem 0 .5rem; }
.charts { display: grid; grid-template-columns: 1fr; gap: 1rem; margin-bottom: 1.5rem; }
.chart-box { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; }
.chart-box h3 { font-size: .875rem; margin-bottom: .5rem; }
.chart-box img { width: 100%; height: auto; }
.chart-box .empty { color: var(--muted); padding: 2rem; text-align: center; }
.legend { display: flex; flex-wrap: wrap; gap: .5rem 1rem; font-size: .75rem; margin-top: .5rem; }
.legend span::before { content: ""; display: inline-block; width: .75rem; height: .75rem; margin-right: .25rem; background: var(--swatch); border-radius: 2px; }
.toggle { font-size: .8125rem; margin-bottom: .5rem; }
table { width: 100%; border-collapse: collapse; font-size: .8125rem; }
thead { position: sticky; top: 0; background: var(--card-bg); }
th, td { padding: .5rem .625rem; text-align: left; border-bottom: 1px solid var(--border); }
th { white-space: nowrap; }
tr:nth-child(even) { background: var(--table-alt); }
tr:hover { background: var(--hover); }
`

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Data Breaches Dashboard</title>
<style>` + htmlStyle + `</style>
</head>
<body>
<header>
  <h1>Data Breaches Dashboard</h1>
  <p>Generated {{.GeneratedAt}}{{if .Source}} &middot; {{.Source}}{{end}} &middot; {{.Years.Min}} to {{.Years.Max}}</p>
</header>
{{if .Nav}}<nav>{{range .Nav}}<a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a>{{end}}</nav>{{end}}

<div class="layout">
{{if .Interactive}}
<form class="filters" method="get" action="">
  <fieldset>
    <legend>Year</legend>
    <input type="number" name="from" value="{{.Years.Min}}" min="{{.DatasetYears.Min}}" max="{{.DatasetYears.Max}}">
    to
    <input type="number" name="to" value="{{.Years.Max}}" min="{{.DatasetYears.Min}}" max="{{.DatasetYears.Max}}">
  </fieldset>
  <fieldset>
    <legend>Organization Type</legend>
    <input type="hidden" name="org" value="">
    {{range .OrgOptions}}<label><input type="checkbox" name="org" value="{{.Value}}"{{if .Checked}} checked{{end}}> {{.Label}}</label>{{end}}
  </fieldset>
  <fieldset>
    <legend>Method</legend>
    <input type="hidden" name="method" value="">
    {{range .MethodOption}}<label><input type="checkbox" name="method" value="{{.Value}}"{{if .Checked}} checked{{end}}> {{.Label}}</label>{{end}}
  </fieldset>
  <input type="hidden" name="primary" value="{{.Primary}}">
  {{if .ColumnsParam}}<input type="hidden" name="columns" value="{{.ColumnsParam}}">{{end}}
  <button type="submit">Apply</button>
</form>
{{else}}<div></div>{{end}}

<main>
<section class="cards" id="summary">
  <div class="card info"><div class="value">{{.TotalData}}</div><div class="label">Total Data</div></div>
  <div class="card info"><div class="value">{{.TotalRecords}}</div><div class="label">Total Records</div></div>
</section>

{{if .ShowCharts}}
<section class="charts" id="charts">
{{range .Charts}}
  <div class="chart-box" id="chart-{{.Name}}">
    <h3>{{.Title}}</h3>
    {{if eq .Name "treemap"}}{{if $.PrimaryLinks}}<div class="toggle">Primary:
      {{range $.PrimaryLinks}}<a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a> {{end}}</div>{{end}}{{end}}
    {{if .Error}}<div class="empty chart-error">Chart unavailable: {{.Error}}</div>
    {{else if .Empty}}<div class="empty">No records match the current filters.</div>
    {{else}}<img src="{{.Src}}" alt="{{.Title}}">{{end}}
    {{if and .Legend (not .Empty) (not .Error)}}<div class="legend">{{range .Legend}}<span style="--swatch: {{.Color}}">{{.Name}}</span>{{end}}</div>{{end}}
  </div>
{{end}}
</section>
{{end}}

{{if .ShowData}}
<h2>Organization Type</h2>
<section class="cards" id="organization-types">
{{range .OrgCards}}  <div class="card"><div class="value">{{.Count}}</div><div class="label">{{.Label}}</div></div>
{{end}}</section>

<h2>Method</h2>
<section class="cards" id="methods">
{{range .MethodCards}}  <div class="card"><div class="value">{{.Count}}</div><div class="label">{{.Label}}</div></div>
{{end}}</section>

<h2>Data</h2>
<section id="records">
<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
</section>
{{end}}
</main>
</div>
</body>
</html>
`
