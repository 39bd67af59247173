package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/referral-service/internal/api/http/handlers"
	"github.com/spec-kit/referral-service/internal/auth"
	"github.com/spec-kit/referral-service/internal/domain"
)

// Guards bundles the configured authentication policies. Admin and Employee
// resolve against a single store; Any tries every store in order.
type Guards struct {
	Any      *auth.Guard
	Admin    *auth.Guard
	Employee *auth.Guard
}

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Admin     *handlers.AdminHandler
	Subadmin  *handlers.SubadminHandler
	Employees *handlers.EmployeesHandler
	Users     *handlers.UsersHandler
	Guards    Guards
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.Guards.Employee.Handle, auth.RequireRoles(domain.RoleEmployee), cfg.Auth.Me)

	adminGroup := api.Group("/admin")
	adminGroup.Post("/login", cfg.Admin.Login)
	adminGroup.Get("/current", cfg.Guards.Admin.Handle, auth.RequireRoles(domain.RoleAdmin), cfg.Admin.Current)

	subadminGroup := v1.Group("/subadmin")
	subadminGroup.Post("/register", cfg.Subadmin.Register)
	subadminGroup.Post("/login", cfg.Subadmin.Login)
	subadminGroup.Get("/", cfg.Guards.Any.Handle, auth.RequireRoles(domain.RoleAdmin), cfg.Subadmin.List)

	// The source shipped these routes unprotected with the middleware
	// commented out; that gap is closed here.
	employeeGroup := api.Group("/employee", cfg.Guards.Any.Handle)
	employeeGroup.Get("/me/referred", auth.RequireRoles(domain.RoleUser), cfg.Employees.ListMyReferred)
	employeeGroup.Get("/referred/:referralCode", cfg.Employees.ListByReferralCode)
	employeeGroup.Get("/", cfg.Employees.List)
	employeeGroup.Post("/", cfg.Employees.Create)
	employeeGroup.Get("/:id", cfg.Employees.Get)
	employeeGroup.Put("/:id", auth.RequireRoles(domain.RoleAdmin), cfg.Employees.Update)
	employeeGroup.Delete("/:id", auth.RequireRoles(domain.RoleAdmin), cfg.Employees.Delete)

	usersGroup := v1.Group("/users")
	usersGroup.Post("/", cfg.Users.Create)
	usersGroup.Get("/", cfg.Guards.Any.Handle, auth.RequireRoles(domain.RoleAdmin), cfg.Users.List)
	usersGroup.Get("/:id", cfg.Guards.Any.Handle, auth.RequireRoles(domain.RoleAdmin), cfg.Users.Get)
	usersGroup.Put("/:id", cfg.Guards.Any.Handle, auth.RequireRoles(domain.RoleAdmin), cfg.Users.Update)
	usersGroup.Delete("/:id", cfg.Guards.Any.Handle, auth.RequireRoles(domain.RoleAdmin), cfg.Users.Delete)
}
