package controllers

import (
	"bytes"
	"culinary-calc/backend/app/middleware"
	"culinary-calc/backend/global"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page is one server rendered screen. Panels fetch their data from
// Endpoint in the browser.
type Page struct {
	Name     string
	Title    string
	Template string
	Endpoint string
}

var Pages = []Page{
	{Name: "home", Title: "Welcome", Template: "landing.html"},
	{Name: "login", Title: "Log in", Template: "auth.html", Endpoint: "/api/auth/login"},
	{Name: "register", Title: "Register", Template: "auth.html", Endpoint: "/api/auth/register"},
	{Name: "dashboard", Title: "Dashboard", Template: "panel.html", Endpoint: "/api/auth/profile"},
	{Name: "recipes", Title: "Recipes", Template: "panel.html", Endpoint: "/api/recipes"},
	{Name: "ingredients", Title: "Ingredients", Template: "panel.html", Endpoint: "/api/ingredients"},
	{Name: "finance", Title: "Finance", Template: "panel.html", Endpoint: "/api/recipes"},
	{Name: "support", Title: "Support", Template: "panel.html", Endpoint: "/api/support"},
	{Name: "admin", Title: "Administration", Template: "panel.html", Endpoint: "/api/admin/stats"},
	{Name: "admin-users", Title: "Users", Template: "panel.html", Endpoint: "/api/admin/users"},
	{Name: "admin-support", Title: "Support tickets", Template: "panel.html", Endpoint: "/api/admin/support"},
	{Name: "admin-activity", Title: "Activity", Template: "panel.html", Endpoint: "/api/admin/activity"},
	{Name: "admin-recipes", Title: "All recipes", Template: "panel.html", Endpoint: "/api/admin/recipes"},
	{Name: "admin-ingredients", Title: "All ingredients", Template: "panel.html", Endpoint: "/api/admin/ingredients"},
	{Name: "admin-suppliers", Title: "All suppliers", Template: "panel.html", Endpoint: "/api/admin/suppliers"},
}

type pageData struct {
	Page
	User *middleware.Identity
}

type PageController struct {
	pages     map[string]Page
	templates map[string]*template.Template
}

func NewPageController() (*PageController, error) {
	c := &PageController{pages: map[string]Page{}, templates: map[string]*template.Template{}}
	for _, p := range Pages {
		c.pages[p.Name] = p
		if _, ok := c.templates[p.Template]; ok {
			continue
		}
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+p.Template)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p.Template, err)
		}
		c.templates[p.Template] = t
	}
	return c, nil
}

// Render returns the handler for the named page. It panics on an unknown
// name since routes are wired once at startup.
func (c *PageController) Render(name string) http.HandlerFunc {
	p, ok := c.pages[name]
	if !ok {
		panic("unknown page " + name)
	}
	t := c.templates[p.Template]
	return func(w http.ResponseWriter, r *http.Request) {
		data := pageData{Page: p}
		if id, ok := middleware.IdentityFrom(r.Context()); ok {
			data.User = &id
		}
		var buf bytes.Buffer
		if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
			global.Logger.Error().Err(err).Str("page", name).Msg("render failed")
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = buf.WriteTo(w)
	}
}
