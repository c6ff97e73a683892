// Package authorsite is a single-tenant content manager for a writer's
// public page: a multilingual profile site (books, awards, family
// photos, about) with an admin-gated editing surface. Content persists
// as flat JSON files plus uploaded assets on disk.
package authorsite

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/altekov/authorsite/analytics"
)

// App wires together the stores, middleware and handlers.
type App struct {
	Options Options
	Echo    *echo.Echo
	Store   *Store

	analytics    *analytics.Store
	loginLimiter *loginLimiter
	stopCleanup  func()
}

// New creates an App with the given options. Start performs the actual
// initialization.
func New(opts Options) *App {
	opts.setDefaults()
	return &App{
		Options: opts,
		Echo:    echo.New(),
	}
}

// Start validates required options, initializes the stores and the
// uploads tree, and runs the HTTP server until it is shut down.
func (a *App) Start() error {
	if a.Options.AdminPassword == "" {
		return fmt.Errorf("authorsite: ADM_PASS is required")
	}
	if a.Options.SessionSecret == "" {
		return fmt.Errorf("authorsite: SESSION_SECRET is required")
	}

	store, err := NewStore(a.Options.RootDir)
	if err != nil {
		return fmt.Errorf("authorsite: init store: %w", err)
	}
	a.Store = store

	a.loginLimiter = newLoginLimiter(5, time.Minute)

	if a.Options.AnalyticsEnabled {
		dbPath := a.Options.AnalyticsDBPath
		if !filepath.IsAbs(dbPath) {
			dbPath = filepath.Join(a.Options.RootDir, dbPath)
		}
		as, err := analytics.NewStore(dbPath)
		if err != nil {
			return fmt.Errorf("authorsite: init analytics: %w", err)
		}
		a.analytics = as
		a.stopCleanup = as.StartCleanupScheduler(365, 24*time.Hour)
	}

	a.setupMiddleware()
	a.setupRoutes()

	if err := a.Echo.Start(a.Options.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", filepath.Join(a.Options.RootDir, "public"))
	e.Static("/uploads", filepath.Join(a.Options.RootDir, "uploads"))
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/", a.handleHome)
	e.GET("/books.zip", a.handleBooksArchive)

	e.POST("/login", a.handleLogin)
	e.POST("/logout", a.handleLogout)
	e.POST("/admin/config", a.handleSaveConfig)
	e.POST("/admin/books", a.handleAddBook)
	e.POST("/admin/photos", a.handleAddPhoto)
	e.POST("/admin/delete", a.handleDeleteItem)
}

// Close releases resources. Call when shutting the app down.
func (a *App) Close() error {
	if a.stopCleanup != nil {
		a.stopCleanup()
	}
	if a.analytics != nil {
		return a.analytics.Close()
	}
	return nil
}
