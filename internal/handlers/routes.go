package handlers

import (
	"velodrive/internal/middleware"
	"velodrive/internal/models"
	"velodrive/internal/services"

	"github.com/labstack/echo/v4"
)

// Router holds everything the HTTP surface needs.
type Router struct {
	Health   *HealthHandlers
	Auth     *AuthHandlers
	Products *ProductHandlers
	Orders   *OrderHandlers
	AuthSvc  services.AuthService
}

// Register mounts the health check and the v1 API on e.
func (r *Router) Register(e *echo.Echo) {
	e.GET("/health", r.Health.HealthCheck)

	v1 := middleware.VersionRoute(e, middleware.CurrentAPIVersion)
	v1.Use(middleware.JWTMiddleware(r.AuthSvc))
	v1.Use(middleware.AuditRequest())

	auth := v1.Group("/auth")
	auth.POST("/login", r.Auth.Login)
	auth.POST("/logout", r.Auth.Logout, middleware.RequireAuth())
	auth.GET("/me", r.Auth.Me, middleware.RequireAuth())

	browse := middleware.RequireCapability(models.CapBrowseProducts)
	manageProducts := middleware.RequireCapability(models.CapManageProducts)
	v1.GET("/products", r.Products.ListProducts, browse)
	v1.GET("/products/:article", r.Products.GetProduct, browse)
	v1.POST("/products", r.Products.CreateProduct, manageProducts)
	v1.PUT("/products/:article", r.Products.UpdateProduct, manageProducts)
	v1.DELETE("/products/:article", r.Products.DeleteProduct, manageProducts)

	viewOrders := middleware.RequireCapability(models.CapViewOrders)
	manageOrders := middleware.RequireCapability(models.CapManageOrders)
	v1.GET("/orders", r.Orders.GetOrders, viewOrders)
	v1.GET("/orders/:id", r.Orders.GetOrder, viewOrders)
	v1.POST("/orders", r.Orders.CreateOrder, manageOrders)
	v1.PUT("/orders/:id", r.Orders.UpdateOrder, manageOrders)
	v1.DELETE("/orders/:id", r.Orders.DeleteOrder, manageOrders)
}
