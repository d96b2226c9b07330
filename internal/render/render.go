// Package render loads the page templates and serves them through gin.
package render

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"slices"
	"strings"
	"time"

	ginrender "github.com/gin-gonic/gin/render"
)

// layoutName is the template every page is executed through.
const layoutName = "base"

// pageDirs hold the templates that can be rendered by name. A page is
// addressed by its file name without extension, so names must be unique
// across directories.
var pageDirs = []string{"pages", "forms", "errors"}

// Templates implements gin's render.HTMLRender over a set of pages that
// share the layouts and partials.
type Templates struct {
	pages map[string]*template.Template
}

var _ ginrender.HTMLRender = (*Templates)(nil)

// New parses every page found in fsys together with layouts/*.html and
// partials/*.html.
func New(fsys fs.FS) (*Templates, error) {
	layouts, err := fs.Glob(fsys, "layouts/*.html")
	if err != nil {
		return nil, fmt.Errorf("finding layouts: %w", err)
	}
	if len(layouts) == 0 {
		return nil, fmt.Errorf("no layouts found")
	}
	partials, err := fs.Glob(fsys, "partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("finding partials: %w", err)
	}
	common := append(layouts, partials...)

	t := &Templates{pages: make(map[string]*template.Template)}
	for _, dir := range pageDirs {
		files, err := fs.Glob(fsys, dir+"/*.html")
		if err != nil {
			return nil, fmt.Errorf("finding %s: %w", dir, err)
		}
		for _, file := range files {
			name := strings.TrimSuffix(path.Base(file), ".html")
			if _, dup := t.pages[name]; dup {
				return nil, fmt.Errorf("duplicate page %q (%s)", name, file)
			}

			// The page is parsed last so its definitions override the
			// layout's block defaults.
			set := append(slices.Clone(common), file)
			tmpl, err := template.New(name).Funcs(Funcs()).ParseFS(fsys, set...)
			if err != nil {
				return nil, fmt.Errorf("parsing template %s: %w", name, err)
			}
			t.pages[name] = tmpl
		}
	}
	return t, nil
}

// Instance returns the render for page name. Unknown names produce a
// render that fails with an error instead of panicking.
func (t *Templates) Instance(name string, data any) ginrender.Render {
	tmpl, ok := t.pages[name]
	if !ok {
		return missingPage{name: name}
	}
	return ginrender.HTML{Template: tmpl, Name: layoutName, Data: data}
}

// Has reports whether a page called name was loaded.
func (t *Templates) Has(name string) bool {
	_, ok := t.pages[name]
	return ok
}

type missingPage struct {
	name string
}

func (m missingPage) Render(w http.ResponseWriter) error {
	m.WriteContentType(w)
	return fmt.Errorf("template %q not found", m.name)
}

func (m missingPage) WriteContentType(w http.ResponseWriter) {
	ginrender.HTML{}.WriteContentType(w)
}

// Date formats accepted by the datetime template function.
const (
	FormatFull   = "full"
	FormatMedium = "medium"

	fullLayout   = "Monday January, 2, 2006 at 3:04PM"
	mediumLayout = "Mon 01, 02, 2006 3:04PM"
)

// FormatDateTime renders t in one of the named formats. Any other value is
// used as a time layout.
func FormatDateTime(t time.Time, format string) string {
	switch format {
	case FormatFull:
		return t.Format(fullLayout)
	case FormatMedium, "":
		return t.Format(mediumLayout)
	default:
		return t.Format(format)
	}
}

// Funcs returns the functions available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"datetime":  FormatDateTime,
		"join":      strings.Join,
		"hasPrefix": strings.HasPrefix,
		"contains":  slices.Contains[[]string],
		"plural": func(n int, one, many string) string {
			if n == 1 {
				return one
			}
			return many
		},
	}
}
