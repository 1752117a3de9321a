package core

import (
	"html/template"
)

// MissingPage describes a request the preview server has no generated file
// for.
type MissingPage struct {
	Route    string
	Expected string
}

var MissingPageTemplate = template.Must(template.New("missing").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Not generated: {{.Route}}</title>
<style>
body{font:15px/1.5 ui-monospace,monospace;margin:3rem auto;max-width:42rem;padding:0 1rem;color:#222}
code{background:#f2f2f2;padding:.1rem .3rem}
</style>
</head>
<body>
<h1>404: {{.Route}}</h1>
{{if .Expected}}<p>No file at <code>{{.Expected}}</code> in the output directory.</p>{{end}}
<p>Add the route to <code>routes</code> (with <code>route_params</code> for dynamic routes) and run <code>prerender generate</code> again.</p>
</body>
</html>`))
