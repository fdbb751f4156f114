package router

import (
	"culinary-calc/backend/app/controllers"
	"culinary-calc/backend/app/middleware"
	"net/http"
	"os"
	"path/filepath"
)

type Controllers struct {
	Auth    *controllers.AuthController
	Admin   *controllers.AdminController
	Content *controllers.ContentController
	Support *controllers.SupportController
	Pages   *controllers.PageController
}

// NewRouter builds the mux and wraps it as ClientIP(Logging(Gateway(mux))).
func NewRouter(c Controllers, gw *middleware.Gateway, proxies middleware.TrustedProxies, staticDir string) http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, middleware.WithRoute(pattern, h))
	}

	// auth
	handle("POST /api/auth/register", c.Auth.Register)
	handle("POST /api/auth/login", c.Auth.Login)
	handle("POST /api/auth/logout", c.Auth.Logout)
	handle("GET /api/auth/profile", c.Auth.Profile)

	// tenant content
	handle("GET /api/recipes", c.Content.ListRecipes)
	handle("POST /api/recipes", c.Content.CreateRecipe)
	handle("GET /api/ingredients", c.Content.ListIngredients)
	handle("POST /api/ingredients", c.Content.CreateIngredient)
	handle("GET /api/categories", c.Content.ListCategories)
	handle("POST /api/categories", c.Content.CreateCategory)
	handle("GET /api/suppliers", c.Content.ListSuppliers)
	handle("POST /api/suppliers", c.Content.CreateSupplier)
	handle("GET /api/support", c.Support.List)
	handle("POST /api/support", c.Support.Create)

	// admin api
	handle("GET /api/admin/stats", c.Admin.Stats)
	handle("GET /api/admin/users", c.Admin.Users)
	handle("PATCH /api/admin/users/{id}/toggle-status", c.Admin.ToggleStatus)
	handle("PATCH /api/admin/users/{id}/role", c.Admin.UpdateRole)
	handle("GET /api/admin/support", c.Admin.Tickets)
	handle("POST /api/admin/support/{id}/respond", c.Admin.RespondTicket)
	handle("GET /api/admin/recipes", c.Admin.Recipes)
	handle("GET /api/admin/ingredients", c.Admin.Ingredients)
	handle("GET /api/admin/suppliers", c.Admin.Suppliers)
	handle("GET /api/admin/activity", c.Admin.ActivityLogs)

	// pages
	handle("GET /{$}", c.Pages.Render("home"))
	handle("GET /login", c.Pages.Render("login"))
	handle("GET /register", c.Pages.Render("register"))
	handle("GET /dashboard", c.Pages.Render("dashboard"))
	handle("GET /recipes", c.Pages.Render("recipes"))
	handle("GET /ingredients", c.Pages.Render("ingredients"))
	handle("GET /finance", c.Pages.Render("finance"))
	handle("GET /support", c.Pages.Render("support"))
	handle("GET /admin", c.Pages.Render("admin"))
	handle("GET /admin/users", c.Pages.Render("admin-users"))
	handle("GET /admin/support", c.Pages.Render("admin-support"))
	handle("GET /admin/activity", c.Pages.Render("admin-activity"))
	handle("GET /admin/recipes", c.Pages.Render("admin-recipes"))
	handle("GET /admin/ingredients", c.Pages.Render("admin-ingredients"))
	handle("GET /admin/suppliers", c.Pages.Render("admin-suppliers"))

	// static
	if staticDir != "" {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
		favicon := filepath.Join(staticDir, "favicon.ico")
		handle("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
			if _, err := os.Stat(favicon); err != nil {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			http.ServeFile(w, r, favicon)
		})
	}

	return proxies.Wrap(middleware.Logging(gw.Wrap(mux)))
}
