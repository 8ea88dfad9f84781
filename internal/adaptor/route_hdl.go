package adaptor

import (
	"encoding/json"
	"net/http"

	"transgo-ticketing/internal/dto/request"
	"transgo-ticketing/internal/usecase"
	"transgo-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RouteHandler struct {
	service usecase.RouteService
	log     *zap.Logger
}

func NewRouteHandler(service usecase.RouteService, log *zap.Logger) *RouteHandler {
	return &RouteHandler{
		service: service,
		log:     log.With(zap.String("handler", "route")),
	}
}

// GetRoutes handles GET /api/routes (public)
func (h *RouteHandler) GetRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.service.GetRoutes(r.Context())
	if err != nil {
		respondServiceError(w, h.log, err, "get routes")
		return
	}

	utils.ResponseSuccess(w, "success", routes)
}

// GetRouteByID handles GET /api/routes/{id} (public)
func (h *RouteHandler) GetRouteByID(w http.ResponseWriter, r *http.Request) {
	routeID := chi.URLParam(r, "id")
	if routeID == "" {
		utils.ResponseBadRequest(w, "Route ID is required", nil)
		return
	}

	route, err := h.service.GetRouteByID(r.Context(), routeID)
	if err != nil {
		respondServiceError(w, h.log, err, "get route")
		return
	}

	utils.ResponseSuccess(w, "success", route)
}

// GetRouteStops handles GET /api/routes/{id}/stops (public)
func (h *RouteHandler) GetRouteStops(w http.ResponseWriter, r *http.Request) {
	routeID := chi.URLParam(r, "id")
	if routeID == "" {
		utils.ResponseBadRequest(w, "Route ID is required", nil)
		return
	}

	stops, err := h.service.GetRouteStops(r.Context(), routeID)
	if err != nil {
		respondServiceError(w, h.log, err, "get route stops")
		return
	}

	utils.ResponseSuccess(w, "success", stops)
}

// ==================== ADMIN METHODS ====================

// CreateRoute handles POST /api/admin/routes (admin only)
func (h *RouteHandler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	route, err := h.service.CreateRoute(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create route")
		return
	}

	utils.ResponseCreated(w, "success", route)
}

// UpdateRoute handles PUT /api/admin/routes/{id} (admin only)
func (h *RouteHandler) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	routeID := chi.URLParam(r, "id")
	if routeID == "" {
		utils.ResponseBadRequest(w, "Route ID is required", nil)
		return
	}

	var req request.UpdateRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	route, err := h.service.UpdateRoute(r.Context(), routeID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "update route")
		return
	}

	utils.ResponseSuccess(w, "success", route)
}

// DeleteRoute handles DELETE /api/admin/routes/{id} (admin only)
func (h *RouteHandler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	routeID := chi.URLParam(r, "id")
	if routeID == "" {
		utils.ResponseBadRequest(w, "Route ID is required", nil)
		return
	}

	if err := h.service.DeleteRoute(r.Context(), routeID); err != nil {
		respondServiceError(w, h.log, err, "delete route")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ReplaceRouteStops handles PUT /api/admin/routes/{id}/stops (admin only)
func (h *RouteHandler) ReplaceRouteStops(w http.ResponseWriter, r *http.Request) {
	routeID := chi.URLParam(r, "id")
	if routeID == "" {
		utils.ResponseBadRequest(w, "Route ID is required", nil)
		return
	}

	var req request.ReplaceRouteStopsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	stops, err := h.service.ReplaceRouteStops(r.Context(), routeID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "replace route stops")
		return
	}

	utils.ResponseSuccess(w, "success", stops)
}
