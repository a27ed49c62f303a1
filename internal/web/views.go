package web

import (
	"embed"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin/render"

	"portfolio-bff/internal/sections"
)

//go:embed templates static
var assets embed.FS

// views renders each page inside the shared layout. It implements gin's
// render.HTMLRender so handlers can call c.HTML with a page file name.
type views map[string]*template.Template

func (v views) Instance(name string, data any) render.Render {
	return render.HTML{Template: v[name], Name: "layout", Data: data}
}

func mustParseViews() views {
	base := template.Must(template.New("").Funcs(funcs).ParseFS(assets,
		"templates/layout.html", "templates/partials/*.html"))

	pages, err := fs.Glob(assets, "templates/pages/*.html")
	if err != nil {
		panic(err)
	}

	v := make(views, len(pages))
	for _, p := range pages {
		t := template.Must(template.Must(base.Clone()).ParseFS(assets, p))
		v[path.Base(p)] = t
	}
	return v
}

var funcs = template.FuncMap{
	"label":      sections.Label,
	"imgsrc":     imageSource,
	"date":       displayDate,
	"ago":        ago,
	"join":       strings.Join,
	"hasPrefix":  strings.HasPrefix,
	"paragraphs": paragraphs,
	"truncate":   truncate,
	"tabset":     newTabSet,
	"add":        func(a, b int) int { return a + b },
	"year":       func() int { return time.Now().Year() },
}

// imageSource lets trusted image references through html/template, which
// would otherwise reject data URLs in src attributes.
func imageSource(s string) template.URL {
	switch {
	case strings.HasPrefix(s, "data:image/"),
		strings.HasPrefix(s, "https://"),
		strings.HasPrefix(s, "http://"),
		strings.HasPrefix(s, "/"):
		return template.URL(s)
	}
	return ""
}

// displayDate turns backend dates such as "2021-04-01" or
// "2021-04-01T00:00:00.000Z" into "Apr 2021".
func displayDate(s string) string {
	if len(s) >= 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t.Format("Jan 2006")
		}
	}
	return s
}

func ago(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return humanize.Time(t)
}

func paragraphs(s string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func newTabSet(base string, tabs []tab) tabSet {
	return tabSet{Base: base, Tabs: tabs}
}

func humanLimit(n int64) string {
	return humanize.IBytes(uint64(n))
}
