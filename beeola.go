// Package beeola is the publishing engine behind beeola.me: a multi-language
// blog built with Go, Echo, and templ. Posts are stored in SQLite, one row
// per language variant, and every page knows how to address its siblings in
// other languages.
//
// Templates are supplied through the ViewFuncs struct; the views package
// provides a complete default set that a binary can override piecemeal.
package beeola

import (
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/gbozee/beeola.me/locale"
)

// ViewFuncs holds the templ components the engine calls when rendering
// pages. This is the inversion-of-control mechanism that lets the binary own
// and customize all templates.
type ViewFuncs struct {
	Home             func(posts []BlogPost, activeTag string, tags []string, lang string) templ.Component
	Post             func(page PostPage) templ.Component
	AdminLogin       func(showError bool, csrfToken string) templ.Component
	AdminDashboard   func(posts []BlogPost, views map[string]int, message string, csrfToken string) templ.Component
	AdminFormPartial func(post BlogPost, langs []string, csrfToken string) templ.Component
	AdminImages      func(images []Image, csrfToken string) templ.Component
	NotFound         func() templ.Component
	ServerError      func() templ.Component
}

// App is the central application. It wires together the store, cache,
// handlers, middleware, language set, and the supplied templates.
type App struct {
	Config    SiteConfig
	Echo      *echo.Echo
	Store     *Store
	Cache     *PostCache
	Views     ViewFuncs
	Languages locale.Set

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		Languages: locale.NewSet(cfg.Languages),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, cache, middleware, routes, and starts the
// server.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("beeola: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("beeola: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("beeola: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewPostCache(a.Store, a.Languages.Codes(), a.Config.PostCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	if a.Config.StatsEnabled {
		if err := a.Store.InitStatsSalt(); err != nil {
			return fmt.Errorf("beeola: init stats salt: %w", err)
		}
		stop := a.Store.StartStatsCleanup(a.Config.StatsRetentionDays, 24*time.Hour)
		defer stop()
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes. Translated pages carry a language segment inside the
	// slug ("/blog/fr/my-post/"); the default language stays unprefixed.
	// The wildcard hands the whole language-tagged slug to the handler.
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/*", a.handlePost)
	e.GET("/:lang/", a.handleHome)
	e.GET("/:lang/feed.xml", a.handleFeed)

	// View counter beacon
	if a.Config.StatsEnabled {
		e.POST("/api/view/", a.handleRecordView)
	}

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/post/:lang/:slug/", a.handleAdminPost)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/post/:lang/:slug/", a.handleAdminDelete)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.DELETE("/admin/images/:filename/", a.handleImageDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
