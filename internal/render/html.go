package render

import (
	"embed"
	"html/template"
	"io"
	"strings"

	"github.com/octofit/octofit-views/internal/resource"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var templates = template.Must(template.New("octofit").Funcs(template.FuncMap{
	"badgeClass": badgeClass,
	"textClass":  textClass,
}).ParseFS(templateFS, "templates/*.gohtml"))

func badgeClass(t Tone) string {
	if t == TonePlain || t == ToneMuted {
		return "badge bg-secondary"
	}
	return "badge bg-" + string(t)
}

func textClass(t Tone) string {
	return "text-" + string(t)
}

// NavItem is one link of the page navigation bar.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

// Page is a full HTML document holding one or more views.
type Page struct {
	Title string
	Nav   []NavItem
	Views []Node
	// StreamURL, when set, makes the page replace its first view with the
	// fragments pushed by that server-sent event stream.
	StreamURL string
}

// NewPage builds a page with the navigation bar; active may be empty.
func NewPage(title string, active resource.Resource, views ...Node) Page {
	p := Page{Title: title, Views: views}
	for _, r := range resource.All() {
		p.Nav = append(p.Nav, NavItem{
			Label:  navLabel(r),
			Href:   "/views/" + r.String(),
			Active: r == active,
		})
	}
	return p
}

func navLabel(r resource.Resource) string {
	s := r.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// HTML writes the fragment of one view.
func HTML(w io.Writer, n Node) error {
	return templates.ExecuteTemplate(w, "view", n)
}

// WritePage writes a complete HTML document.
func WritePage(w io.Writer, p Page) error {
	return templates.ExecuteTemplate(w, "page", p)
}
