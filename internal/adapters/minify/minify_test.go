package minify

import (
	"strings"
	"testing"
)

const page = `<!DOCTYPE html>
<html lang="en">
  <head>
    <!-- generated -->
    <title>About</title>
    <style>
      body { color: red; }
    </style>
  </head>
  <body>
    <div id="app">
      <h1 class="title">About</h1>
      <p>Hello   world</p>
    </div>
    <script type="text/javascript">
      var answer = 42;
    </script>
  </body>
</html>`

func TestMinify(t *testing.T) {
	got, err := New().Minify(page)
	if err != nil {
		t.Fatalf("Minify() error = %v", err)
	}

	if strings.Contains(got, "<!--") {
		t.Errorf("comments should be removed: %s", got)
	}
	if strings.Contains(got, "</div>\n") || strings.Contains(got, ">\n    <") {
		t.Errorf("whitespace between block tags should be collapsed: %s", got)
	}
	if !strings.Contains(got, `id="app"`) {
		t.Errorf("attribute quotes should be kept: %s", got)
	}
	if !strings.Contains(got, "Hello world") {
		t.Errorf("inline whitespace should collapse to one space: %s", got)
	}
	if !strings.Contains(got, "body{color:red}") {
		t.Errorf("inline css should be minified: %s", got)
	}
	if len(got) >= len(page) {
		t.Errorf("output is not smaller: %d >= %d", len(got), len(page))
	}
}

func TestMinifyEmpty(t *testing.T) {
	got, err := New().Minify("")
	if err != nil {
		t.Fatalf("Minify() error = %v", err)
	}
	if got != "" {
		t.Errorf("Minify(\"\") = %q", got)
	}
}
