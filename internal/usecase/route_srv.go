package usecase

import (
	"context"
	"fmt"
	"time"

	"transgo-ticketing/internal/data/entity"
	"transgo-ticketing/internal/data/repository"
	"transgo-ticketing/internal/dto/request"
	"transgo-ticketing/internal/dto/response"
	"transgo-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RouteService interface {
	CreateRoute(ctx context.Context, req *request.CreateRouteRequest) (*response.RouteResponse, error)
	UpdateRoute(ctx context.Context, routeID string, req *request.UpdateRouteRequest) (*response.RouteResponse, error)
	DeleteRoute(ctx context.Context, routeID string) error
	GetRoutes(ctx context.Context) ([]response.RouteResponse, error)
	GetRouteByID(ctx context.Context, routeID string) (*response.RouteResponse, error)
	GetRouteStops(ctx context.Context, routeID string) ([]response.RouteStopResponse, error)
	ReplaceRouteStops(ctx context.Context, routeID string, req *request.ReplaceRouteStopsRequest) ([]response.RouteStopResponse, error)
}

type routeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRouteService(repo *repository.Repository, log *zap.Logger) RouteService {
	return &routeService{
		repo: repo,
		log:  log.With(zap.String("service", "route")),
	}
}

func (s *routeService) CreateRoute(ctx context.Context, req *request.CreateRouteRequest) (*response.RouteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create route validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	existing, err := s.repo.Route.FindByCode(ctx, req.RouteCode)
	if err != nil {
		return nil, fmt.Errorf("check route code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("route code %s: %w", req.RouteCode, ErrRouteCodeExists)
	}

	route := &entity.Route{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now(),
		},
		RouteCode:     req.RouteCode,
		Name:          req.Name,
		StartPoint:    req.StartPoint,
		EndPoint:      req.EndPoint,
		Fare:          req.Fare,
		EstimatedTime: req.EstimatedTime,
		Color:         req.Color,
	}

	if err := s.repo.Route.Create(ctx, route); err != nil {
		s.log.Error("Failed to create route",
			zap.Error(err),
			zap.String("route_code", req.RouteCode),
		)
		return nil, fmt.Errorf("create route: %w", err)
	}

	s.log.Info("Route created",
		zap.String("route_id", route.ID.String()),
		zap.String("route_code", route.RouteCode),
		zap.Int64("fare", route.Fare),
	)

	resp := response.RouteToResponse(route)
	return &resp, nil
}

func (s *routeService) UpdateRoute(ctx context.Context, routeID string, req *request.UpdateRouteRequest) (*response.RouteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update route validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	id, err := uuid.Parse(routeID)
	if err != nil {
		return nil, fmt.Errorf("invalid route ID format %s: %w", routeID, err)
	}

	route, err := s.repo.Route.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find route: %w", err)
	}
	if route == nil {
		return nil, fmt.Errorf("route %s: %w", routeID, ErrRouteNotFound)
	}

	// Route code must stay unique across the network
	if req.RouteCode != route.RouteCode {
		existing, err := s.repo.Route.FindByCode(ctx, req.RouteCode)
		if err != nil {
			return nil, fmt.Errorf("check route code: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("route code %s: %w", req.RouteCode, ErrRouteCodeExists)
		}
	}

	route.RouteCode = req.RouteCode
	route.Name = req.Name
	route.StartPoint = req.StartPoint
	route.EndPoint = req.EndPoint
	route.Fare = req.Fare
	route.EstimatedTime = req.EstimatedTime
	route.Color = req.Color

	if err := s.repo.Route.Update(ctx, route); err != nil {
		s.log.Error("Failed to update route",
			zap.Error(err),
			zap.String("route_id", routeID),
		)
		return nil, fmt.Errorf("update route: %w", err)
	}

	s.log.Info("Route updated",
		zap.String("route_id", routeID),
		zap.String("route_code", route.RouteCode),
	)

	resp := response.RouteToResponse(route)
	return &resp, nil
}

func (s *routeService) DeleteRoute(ctx context.Context, routeID string) error {
	id, err := uuid.Parse(routeID)
	if err != nil {
		return fmt.Errorf("invalid route ID format %s: %w", routeID, err)
	}

	route, err := s.repo.Route.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find route: %w", err)
	}
	if route == nil {
		return fmt.Errorf("route %s: %w", routeID, ErrRouteNotFound)
	}

	if err := s.repo.Route.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete route",
			zap.Error(err),
			zap.String("route_id", routeID),
		)
		return fmt.Errorf("delete route: %w", err)
	}

	return nil
}

func (s *routeService) GetRoutes(ctx context.Context) ([]response.RouteResponse, error) {
	routes, err := s.repo.Route.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get routes", zap.Error(err))
		return nil, fmt.Errorf("get routes: %w", err)
	}

	routeResponses := make([]response.RouteResponse, len(routes))
	for i, route := range routes {
		routeResponses[i] = response.RouteToResponse(route)
	}

	return routeResponses, nil
}

func (s *routeService) GetRouteByID(ctx context.Context, routeID string) (*response.RouteResponse, error) {
	id, err := uuid.Parse(routeID)
	if err != nil {
		return nil, fmt.Errorf("invalid route ID format %s: %w", routeID, err)
	}

	route, err := s.repo.Route.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find route: %w", err)
	}
	if route == nil {
		return nil, fmt.Errorf("route %s: %w", routeID, ErrRouteNotFound)
	}

	resp := response.RouteToResponse(route)
	return &resp, nil
}

func (s *routeService) GetRouteStops(ctx context.Context, routeID string) ([]response.RouteStopResponse, error) {
	id, err := uuid.Parse(routeID)
	if err != nil {
		return nil, fmt.Errorf("invalid route ID format %s: %w", routeID, err)
	}

	stops, err := s.repo.RouteStop.FindByRouteID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get route stops",
			zap.Error(err),
			zap.String("route_id", routeID),
		)
		return nil, fmt.Errorf("get route stops: %w", err)
	}

	stopResponses := make([]response.RouteStopResponse, len(stops))
	for i, stop := range stops {
		stopResponses[i] = response.RouteStopToResponse(stop)
	}

	return stopResponses, nil
}

// ReplaceRouteStops swaps the full ordered stop list of a route. Stop order
// follows the order of the request.
func (s *routeService) ReplaceRouteStops(ctx context.Context, routeID string, req *request.ReplaceRouteStopsRequest) ([]response.RouteStopResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Replace route stops validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	id, err := uuid.Parse(routeID)
	if err != nil {
		return nil, fmt.Errorf("invalid route ID format %s: %w", routeID, err)
	}

	route, err := s.repo.Route.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find route: %w", err)
	}
	if route == nil {
		return nil, fmt.Errorf("route %s: %w", routeID, ErrRouteNotFound)
	}

	now := time.Now()
	stops := make([]*entity.RouteStop, len(req.Stops))
	for i, stopReq := range req.Stops {
		stops[i] = &entity.RouteStop{
			BaseSimple: entity.BaseSimple{
				ID:        utils.GenerateUUID(),
				CreatedAt: now,
			},
			RouteID:   id,
			StopName:  stopReq.StopName,
			StopOrder: i + 1,
			Latitude:  stopReq.Latitude,
			Longitude: stopReq.Longitude,
		}
	}

	if err := s.repo.RouteStop.ReplaceForRoute(ctx, id, stops); err != nil {
		s.log.Error("Failed to replace route stops",
			zap.Error(err),
			zap.String("route_id", routeID),
		)
		return nil, fmt.Errorf("replace route stops: %w", err)
	}

	s.log.Info("Route stops replaced",
		zap.String("route_id", routeID),
		zap.Int("count", len(stops)),
	)

	stopResponses := make([]response.RouteStopResponse, len(stops))
	for i, stop := range stops {
		stopResponses[i] = response.RouteStopToResponse(stop)
	}

	return stopResponses, nil
}
