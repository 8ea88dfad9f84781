package repository

import (
	"context"
	"fmt"

	"transgo-ticketing/internal/data/entity"
	"transgo-ticketing/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RouteStopRepository interface {
	FindByRouteID(ctx context.Context, routeID uuid.UUID) ([]*entity.RouteStop, error)
	ReplaceForRoute(ctx context.Context, routeID uuid.UUID, stops []*entity.RouteStop) error
}

type routeStopRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRouteStopRepository(db database.PgxIface, log *zap.Logger) RouteStopRepository {
	return &routeStopRepository{
		db:  db,
		log: log.With(zap.String("repository", "route_stop")),
	}
}

func (r *routeStopRepository) FindByRouteID(ctx context.Context, routeID uuid.UUID) ([]*entity.RouteStop, error) {
	query := `
		SELECT id, route_id, stop_name, stop_order, latitude, longitude, created_at
		FROM route_stops
		WHERE route_id = $1
		ORDER BY stop_order
	`

	rows, err := r.db.Query(ctx, query, routeID)
	if err != nil {
		r.log.Error("Failed to find stops by route ID",
			zap.Error(err),
			zap.String("route_id", routeID.String()),
		)
		return nil, fmt.Errorf("find stops by route ID %s: %w", routeID.String(), err)
	}
	defer rows.Close()

	var stops []*entity.RouteStop
	for rows.Next() {
		var stop entity.RouteStop
		err := rows.Scan(
			&stop.ID,
			&stop.RouteID,
			&stop.StopName,
			&stop.StopOrder,
			&stop.Latitude,
			&stop.Longitude,
			&stop.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan route stop row", zap.Error(err))
			return nil, fmt.Errorf("scan route stop row: %w", err)
		}
		stops = append(stops, &stop)
	}

	return stops, nil
}

// ReplaceForRoute swaps the full ordered stop list of a route in one
// transaction so readers never see a half-replaced list.
func (r *routeStopRepository) ReplaceForRoute(ctx context.Context, routeID uuid.UUID, stops []*entity.RouteStop) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace stops for route %s: %w", routeID.String(), err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM route_stops WHERE route_id = $1`, routeID); err != nil {
		r.log.Error("Failed to clear stops for route",
			zap.Error(err),
			zap.String("route_id", routeID.String()),
		)
		return fmt.Errorf("clear stops for route %s: %w", routeID.String(), err)
	}

	insertQuery := `
		INSERT INTO route_stops (id, route_id, stop_name, stop_order, latitude, longitude, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, stop := range stops {
		_, err := tx.Exec(ctx, insertQuery,
			stop.ID,
			stop.RouteID,
			stop.StopName,
			stop.StopOrder,
			stop.Latitude,
			stop.Longitude,
			stop.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to insert route stop",
				zap.Error(err),
				zap.String("route_id", routeID.String()),
				zap.String("stop_name", stop.StopName),
			)
			return fmt.Errorf("insert stop %s for route %s: %w", stop.StopName, routeID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace stops for route %s: %w", routeID.String(), err)
	}

	return nil
}
