package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/halicz/shopfloor/internal/handler"    // import the handlers that implement business logic
	"github.com/halicz/shopfloor/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/halicz/shopfloor/internal/model"      // role constants
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring systems use this endpoint to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Session-establishing operations need no existing session.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token; refresh-access only issues a new
	// access token and leaves the refresh token untouched.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout lives outside the JWT middleware so a client holding only a
	// refresh token can still terminate its session.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleOperator, model.RoleSupervisor))
	auth.GET("/me", a.Me)
}

// RegisterProducts wires the product catalog.  Everyone signed in can
// browse; only supervisors create products.
func RegisterProducts(e *echo.Echo, p *handler.ProductHandler, jwtSecret string) {
	g := e.Group("/v1/products")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleOperator, model.RoleSupervisor))
	g.GET("", p.List)

	sup := e.Group("/v1/products")
	sup.Use(middleware.JWTAuth(jwtSecret))
	sup.Use(middleware.RequireRole(model.RoleSupervisor))
	sup.POST("", p.Create)
}

// RegisterAssignments wires work assignment management.  Supervisors create
// and cancel; operators list their own open work.
func RegisterAssignments(e *echo.Echo, a *handler.AssignmentHandler, jwtSecret string) {
	g := e.Group("/v1/assignments")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleOperator, model.RoleSupervisor))
	g.GET("", a.List)

	sup := e.Group("/v1/assignments")
	sup.Use(middleware.JWTAuth(jwtSecret))
	sup.Use(middleware.RequireRole(model.RoleSupervisor))
	sup.POST("", a.Create)
	sup.POST("/:id/cancel", a.Cancel)
}

// RegisterProduction wires unit recording and history.  Recording is the
// operator's action; history and label re-rendering are open to both roles
// (operators are restricted to their own records inside the handlers).
func RegisterProduction(e *echo.Echo, p *handler.ProductionHandler, jwtSecret string) {
	g := e.Group("/v1/production")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleOperator, model.RoleSupervisor))
	g.POST("", p.Record)
	g.GET("", p.List)
	g.GET("/:id/label", p.Label)
}

// RegisterLabelConfig wires the label designer.  The active layout and
// preview are visible to every signed-in user; changing the layout is a
// supervisor action.
func RegisterLabelConfig(e *echo.Echo, l *handler.LabelConfigHandler, jwtSecret string) {
	g := e.Group("/v1/label-config")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleOperator, model.RoleSupervisor))
	g.GET("", l.Get)
	g.POST("/preview", l.Preview)

	sup := e.Group("/v1/label-config")
	sup.Use(middleware.JWTAuth(jwtSecret))
	sup.Use(middleware.RequireRole(model.RoleSupervisor))
	sup.PUT("", l.Save)
	sup.GET("/export", l.Export)
	sup.POST("/import", l.Import)
}

// RegisterReprints wires the reprint workflow.  Filing and listing are
// shared (operators see only their own requests); review actions are
// supervisor-only.
func RegisterReprints(e *echo.Echo, r *handler.ReprintHandler, jwtSecret string) {
	g := e.Group("/v1/reprints")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleOperator, model.RoleSupervisor))
	g.POST("", r.Create)
	g.GET("", r.List)

	sup := e.Group("/v1/reprints")
	sup.Use(middleware.JWTAuth(jwtSecret))
	sup.Use(middleware.RequireRole(model.RoleSupervisor))
	sup.POST("/:id/approve", r.Approve)
	sup.POST("/:id/reject", r.Reject)
	sup.POST("/approve-batch", r.ApproveBatch)
}

// RegisterReports wires data exports for supervisors.
func RegisterReports(e *echo.Echo, r *handler.ReportHandler, jwtSecret string) {
	g := e.Group("/v1/reports")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleSupervisor))
	g.GET("/production.csv", r.ProductionCSV)
}
