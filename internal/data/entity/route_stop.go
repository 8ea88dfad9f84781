package entity

import (
	"github.com/google/uuid"
)

type RouteStop struct {
	BaseSimple
	RouteID   uuid.UUID `db:"route_id"`
	StopName  string    `db:"stop_name"`
	StopOrder int       `db:"stop_order"`
	Latitude  float64   `db:"latitude"`
	Longitude float64   `db:"longitude"`
}
