package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"go.uber.org/zap"

	"github.com/afjrotc/logistics/internal/logistics"
	"github.com/afjrotc/logistics/internal/model"
	"github.com/afjrotc/logistics/internal/notify"
	webembed "github.com/afjrotc/logistics/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
	logger    *zap.Logger
}

var conditionLabels = map[string]string{
	model.ConditionNew:           "New",
	model.ConditionGood:          "Good",
	model.ConditionNeedsRepair:   "Needs Repair",
	model.ConditionUnserviceable: "Unserviceable",
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"roleLabel": model.RoleLabel,
		"conditionLabel": func(c string) string {
			if l, ok := conditionLabels[c]; ok {
				return l
			}
			return c
		},
		"conditions": func() []string {
			return []string{model.ConditionNew, model.ConditionGood, model.ConditionNeedsRepair, model.ConditionUnserviceable}
		},
		"roles": func() []string {
			return []string{model.RoleAdmin, model.RoleLogistics, model.RoleCadet}
		},
		"categories": model.Categories,
		"categoryIcon": func(id string) string {
			c, _ := model.LookupCategory(id)
			return c.Icon
		},
		"categoryName": func(id string) string {
			if c, ok := model.LookupCategory(id); ok {
				return c.Name
			}
			return id
		},
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates(logger *zap.Logger) (*Templates, error) {
	tfs := webembed.TemplatesFS()

	// Read layout.
	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"login.html",
		"dashboard.html",
		"inventory.html",
		"admin.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template), logger: logger}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		ts.logger.Error("failed to render template", zap.String("template", name), zap.Error(err))
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	User    *model.User
	Perms   model.RolePermissions
	Nav     logistics.NavState
	Notices []notify.Notification
	Error   string
	Success string
}

// Server holds all dependencies for page handlers.
type Server struct {
	Service      *logistics.Service
	Templates    *Templates
	JWTSecret    string
	CookieSecure bool
	Logger       *zap.Logger
}

// pageData fills the common fields for the workspace and drains its
// notifications.
func (s *Server) pageData(ws *logistics.Workspace, title string) PageData {
	pd := PageData{
		Title:   title,
		Perms:   s.Service.Permissions(ws),
		Nav:     s.Service.Nav(ws),
		Notices: s.Service.Notices(ws),
	}
	if u, ok := s.Service.User(ws); ok {
		pd.User = &u
	}
	return pd
}
