package initialize

import (
	"context"
	"culinary-calc/backend/app/cache"
	"culinary-calc/backend/app/controllers"
	"culinary-calc/backend/app/db"
	jwtutil "culinary-calc/backend/app/jwt"
	"culinary-calc/backend/app/middleware"
	"culinary-calc/backend/app/repo"
	"culinary-calc/backend/app/services"
	"culinary-calc/backend/config"
	"culinary-calc/backend/global"
	"culinary-calc/backend/router"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Cfg     *config.Config
	DB      *gorm.DB
	Redis   *redis.Client
	Handler http.Handler
}

// Build loads config, connects the stores, migrates and assembles the handler.
func Build(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	SetLogLevel(cfg.LogLevel)
	if cfg.Development() && cfg.Auth.TokenSecret == "dev-secret" {
		global.Logger.Warn().Msg("auth.token_secret not set, using the development fallback")
	}

	gdb, err := db.Connect(db.Config{
		Driver:   cfg.DB.Driver,
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Pass,
		DBName:   cfg.DB.Name,
		Path:     cfg.DB.Path,
		Debug:    cfg.DB.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	if err := db.Migrate(gdb); err != nil {
		_ = db.Close(gdb)
		return nil, fmt.Errorf("migrate: %w", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			global.Logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable, stats cache disabled")
			_ = rdb.Close()
			rdb = nil
		}
		cancel()
	}

	app := &App{Cfg: cfg, DB: gdb, Redis: rdb}
	app.Handler, err = NewHandler(context.Background(), cfg, gdb, rdb)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	global.Logger.Info().Str("driver", cfg.DB.Driver).Bool("redis", rdb != nil).Msg("backend initialised")
	return app, nil
}

// NewHandler wires repositories, services and controllers over an open
// store. rdb may be nil.
func NewHandler(ctx context.Context, cfg *config.Config, gdb *gorm.DB, rdb *redis.Client) (http.Handler, error) {
	users := repo.NewUserRepository(gdb)
	sessions := repo.NewSessionRepository(gdb)
	ingredients := repo.NewIngredientRepository(gdb)
	categories := repo.NewCategoryRepository(gdb)
	suppliers := repo.NewSupplierRepository(gdb)
	recipes := repo.NewRecipeRepository(gdb)
	tickets := repo.NewTicketRepository(gdb)
	activityLogs := repo.NewActivityRepository(gdb)

	stats := cache.NewStatsCache(rdb, cfg.Redis.StatsTTL)
	signer := &jwtutil.Signer{Secret: []byte(cfg.Auth.TokenSecret), Issuer: cfg.Auth.TokenIssuer, TTL: cfg.Auth.SessionTTL}
	authSvc, err := services.NewAuthService(users, sessions, signer, services.AuthOptions{
		BcryptCost: cfg.Auth.BcryptCost,
		SessionTTL: cfg.Auth.SessionTTL,
		Stats:      stats,
	})
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}
	if err := authSvc.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return nil, fmt.Errorf("bootstrap admin: %w", err)
		}
		global.Logger.Warn().Err(err).Msg("bootstrap admin not created")
	}

	activity := services.NewActivityService(activityLogs)
	adminSvc := services.NewAdminService(services.AdminRepos{
		Users:       users,
		Recipes:     recipes,
		Ingredients: ingredients,
		Suppliers:   suppliers,
		Tickets:     tickets,
		Activity:    activityLogs,
	}, stats)

	cookie := middleware.SessionCookie{Name: cfg.Auth.CookieName, MaxAge: authSvc.SessionTTL(), Secure: cfg.SecureCookies()}
	pages, err := controllers.NewPageController()
	if err != nil {
		return nil, err
	}
	ctrls := router.Controllers{
		Auth:    controllers.NewAuthController(authSvc, activity, cookie),
		Admin:   controllers.NewAdminController(adminSvc, activity),
		Content: controllers.NewContentController(services.NewRecipeService(recipes, ingredients, categories, stats), services.NewInventoryService(ingredients, categories, suppliers, stats), activity),
		Support: controllers.NewSupportController(services.NewSupportService(tickets, stats), activity),
		Pages:   pages,
	}
	gw := &middleware.Gateway{Sessions: authSvc, Admins: adminSvc, Cookie: cookie}
	proxies, err := middleware.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		return nil, err
	}
	return router.NewRouter(ctrls, gw, proxies, cfg.Server.StaticDir), nil
}

func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, db.Close(a.DB))
	}
	return errors.Join(errs...)
}
