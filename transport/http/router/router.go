package router

import (
	"garagebook/internal/handlers/auth"
	"garagebook/internal/handlers/booking"
	"garagebook/internal/handlers/dashboard"
	"garagebook/internal/handlers/user"
	"garagebook/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth      auth.Handler
	User      user.Handler
	Booking   booking.Handler
	Dashboard dashboard.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

// SetupRoutes mounts the JWT protected API and the dashboard key protected operator routes.
// Dashboard routes never see the JWT middleware.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Group(func(operator chi.Router) {
		operator.Use(r.AuthRole.DashboardKey)
		r.DomainHandlers.Dashboard.HealthRouter(operator)
	})

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Group(func(secured chi.Router) {
			secured.Use(r.AuthRole.APIKey, r.AuthRole.Auth, r.AuthRole.RBAC)

			r.DomainHandlers.Auth.Router(secured)
			r.DomainHandlers.User.Router(secured)
			r.DomainHandlers.Booking.Router(secured)
		})

		routerGroup.Group(func(operator chi.Router) {
			operator.Use(r.AuthRole.DashboardKey)
			r.DomainHandlers.Dashboard.Router(operator)
		})
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}
