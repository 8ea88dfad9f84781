package wire

import (
	"transgo-ticketing/internal/adaptor"
	"transgo-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRoute(
	r chi.Router,
	routeHandler *adaptor.RouteHandler,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Route discovery for the booking dashboard and the map view
	r.Get("/api/routes", routeHandler.GetRoutes)
	r.Get("/api/routes/{id}", routeHandler.GetRouteByID)
	r.Get("/api/routes/{id}/stops", routeHandler.GetRouteStops)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/routes", func(r chi.Router) {
		r.Use(middleware.Auth(log))
		r.Use(middleware.Admin(log))

		// POST /api/admin/routes - Create route
		r.Post("/", routeHandler.CreateRoute)

		// PUT /api/admin/routes/{id} - Update route
		r.Put("/{id}", routeHandler.UpdateRoute)

		// DELETE /api/admin/routes/{id} - Delete route
		r.Delete("/{id}", routeHandler.DeleteRoute)

		// PUT /api/admin/routes/{id}/stops - Replace ordered stop list
		r.Put("/{id}/stops", routeHandler.ReplaceRouteStops)
	})
}
