package repository

import (
	"context"
	"fmt"

	"transgo-ticketing/internal/data/entity"
	"transgo-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RouteRepository interface {
	Create(ctx context.Context, route *entity.Route) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Route, error)
	FindByCode(ctx context.Context, routeCode string) (*entity.Route, error)
	FindAll(ctx context.Context) ([]*entity.Route, error)
	Update(ctx context.Context, route *entity.Route) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type routeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRouteRepository(db database.PgxIface, log *zap.Logger) RouteRepository {
	return &routeRepository{
		db:  db,
		log: log.With(zap.String("repository", "route")),
	}
}

func (r *routeRepository) Create(ctx context.Context, route *entity.Route) error {
	query := `
		INSERT INTO routes (id, route_code, name, start_point, end_point, fare, estimated_time, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		route.ID,
		route.RouteCode,
		route.Name,
		route.StartPoint,
		route.EndPoint,
		route.Fare,
		route.EstimatedTime,
		route.Color,
		route.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create route",
			zap.Error(err),
			zap.String("route_code", route.RouteCode),
		)
		return fmt.Errorf("create route %s: %w", route.RouteCode, err)
	}

	return nil
}

func (r *routeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Route, error) {
	query := `
		SELECT id, route_code, name, start_point, end_point, fare, estimated_time, color, created_at
		FROM routes
		WHERE id = $1
	`

	var route entity.Route
	err := r.db.QueryRow(ctx, query, id).Scan(
		&route.ID,
		&route.RouteCode,
		&route.Name,
		&route.StartPoint,
		&route.EndPoint,
		&route.Fare,
		&route.EstimatedTime,
		&route.Color,
		&route.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find route by ID",
			zap.Error(err),
			zap.String("route_id", id.String()),
		)
		return nil, fmt.Errorf("find route by ID %s: %w", id.String(), err)
	}

	return &route, nil
}

func (r *routeRepository) FindByCode(ctx context.Context, routeCode string) (*entity.Route, error) {
	query := `
		SELECT id, route_code, name, start_point, end_point, fare, estimated_time, color, created_at
		FROM routes
		WHERE route_code = $1
	`

	var route entity.Route
	err := r.db.QueryRow(ctx, query, routeCode).Scan(
		&route.ID,
		&route.RouteCode,
		&route.Name,
		&route.StartPoint,
		&route.EndPoint,
		&route.Fare,
		&route.EstimatedTime,
		&route.Color,
		&route.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find route by code",
			zap.Error(err),
			zap.String("route_code", routeCode),
		)
		return nil, fmt.Errorf("find route by code %s: %w", routeCode, err)
	}

	return &route, nil
}

func (r *routeRepository) FindAll(ctx context.Context) ([]*entity.Route, error) {
	query := `
		SELECT id, route_code, name, start_point, end_point, fare, estimated_time, color, created_at
		FROM routes
		ORDER BY route_code
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find routes", zap.Error(err))
		return nil, fmt.Errorf("find routes: %w", err)
	}
	defer rows.Close()

	var routes []*entity.Route
	for rows.Next() {
		var route entity.Route
		err := rows.Scan(
			&route.ID,
			&route.RouteCode,
			&route.Name,
			&route.StartPoint,
			&route.EndPoint,
			&route.Fare,
			&route.EstimatedTime,
			&route.Color,
			&route.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan route row", zap.Error(err))
			return nil, fmt.Errorf("scan route row: %w", err)
		}
		routes = append(routes, &route)
	}

	return routes, nil
}

func (r *routeRepository) Update(ctx context.Context, route *entity.Route) error {
	query := `
		UPDATE routes
		SET route_code = $2, name = $3, start_point = $4, end_point = $5,
		    fare = $6, estimated_time = $7, color = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		route.ID,
		route.RouteCode,
		route.Name,
		route.StartPoint,
		route.EndPoint,
		route.Fare,
		route.EstimatedTime,
		route.Color,
	)

	if err != nil {
		r.log.Error("Failed to update route",
			zap.Error(err),
			zap.String("route_id", route.ID.String()),
		)
		return fmt.Errorf("update route %s: %w", route.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("route %s not found", route.ID.String())
	}

	return nil
}

func (r *routeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM routes WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete route",
			zap.Error(err),
			zap.String("route_id", id.String()),
		)
		return fmt.Errorf("delete route %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("route %s not found", id.String())
	}

	r.log.Info("Route deleted", zap.String("route_id", id.String()))
	return nil
}
