package main

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/fretio/fretio/internal/admin"
	"github.com/fretio/fretio/internal/alerts"
	"github.com/fretio/fretio/internal/auth"
	"github.com/fretio/fretio/internal/config"
	"github.com/fretio/fretio/internal/dashboard"
	"github.com/fretio/fretio/internal/db"
	"github.com/fretio/fretio/internal/hostels"
	"github.com/fretio/fretio/internal/items"
	mware "github.com/fretio/fretio/internal/middleware"
	"github.com/fretio/fretio/internal/users"
)

func main() {
	cfg := config.Load()

	db.Init(cfg.DatabaseDSN)

	auth.Init(cfg.JWTSecret, cfg.TokenLifetime)
	auth.AutoApprove = cfg.SellerAutoApprove
	auth.AutoApproveDelay = cfg.AutoApproveDelay

	// Wired here so the task processor can approve applications
	// without importing the auth package.
	alerts.SellerApprovalFunc = auth.ApproveSellerByID
	alerts.Init(cfg.RedisAddr)

	e := echo.New()

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	// Health and root routes
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "service": "fretio"})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/ready", func(c echo.Context) error {
		if db.Conn == nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db not initialized"})
		}
		if err := db.Conn.Ping(context.Background()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db unreachable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	})

	// Public routes
	// Auth routes with per-IP rate limiting to protect register/login from abuse
	authGroup := e.Group("/api/auth")
	authGroup.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	authGroup.POST("/register", auth.Register)
	authGroup.POST("/login", auth.Login)

	e.GET("/api/hostels", hostels.List)
	e.GET("/api/hostels/:id", hostels.Get)

	// Protected routes
	api := e.Group("/api")
	api.Use(mware.JWTMiddleware)

	api.GET("/auth/me", auth.Me)
	api.PUT("/auth/profile", auth.UpdateProfile)
	api.PUT("/auth/password", auth.ChangePassword)
	api.POST("/auth/seller/apply", auth.ApplySeller)
	api.POST("/auth/seller/mock-approve", auth.MockApproveSeller)
	api.GET("/auth/seller/status", auth.SellerStatus)

	api.GET("/hostels/my/info", hostels.MyInfo)

	api.GET("/users/:id", users.Get)
	api.GET("/users/:id/items", users.GetItems)

	api.GET("/items", items.List)
	api.GET("/items/discovery/filters", items.DiscoveryFilters)
	api.GET("/items/my/listings", items.MyListings)
	api.POST("/items", items.Create, mware.RequireSeller)
	api.GET("/items/:id", items.Get)
	api.PUT("/items/:id", items.Update, mware.RequireItemOwner)
	api.DELETE("/items/:id", items.Delete, mware.RequireItemOwner)
	api.PATCH("/items/:id/sold", items.MarkSold, mware.RequireItemOwner)
	api.PATCH("/items/:id/mark-sold", items.MarkSold, mware.RequireItemOwner)
	api.POST("/items/:id/interest", items.ExpressInterest)
	api.POST("/items/:id/contact", items.ContactSeller)
	api.POST("/items/:id/report", items.Report)
	api.POST("/items/:id/rate", items.RateSeller)

	api.GET("/dashboard/analytics", dashboard.Analytics, mware.RequireSeller)
	api.GET("/dashboard/listings", dashboard.Listings, mware.RequireSeller)
	api.PATCH("/dashboard/listings/:id/toggle", dashboard.ToggleListing, mware.RequireSeller)

	// Admin routes
	adminGroup := e.Group("/api/admin")
	adminGroup.Use(mware.JWTMiddleware)
	adminGroup.Use(mware.AdminGuard)

	adminGroup.GET("/sellers/pending", admin.ListPendingSellers)
	adminGroup.POST("/sellers/:id/approve", admin.ApproveSeller)
	adminGroup.POST("/sellers/:id/reject", admin.RejectSeller)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
