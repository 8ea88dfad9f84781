package response

import (
	"time"

	"transgo-ticketing/internal/data/entity"
)

type RouteResponse struct {
	ID            string    `json:"id"`
	RouteCode     string    `json:"route_code"`
	Name          string    `json:"name"`
	StartPoint    string    `json:"start_point"`
	EndPoint      string    `json:"end_point"`
	Fare          int64     `json:"fare"`
	EstimatedTime int       `json:"estimated_time"`
	Color         string    `json:"color,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type RouteStopResponse struct {
	ID        string  `json:"id"`
	StopName  string  `json:"stop_name"`
	StopOrder int     `json:"stop_order"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func RouteToResponse(route *entity.Route) RouteResponse {
	return RouteResponse{
		ID:            route.ID.String(),
		RouteCode:     route.RouteCode,
		Name:          route.Name,
		StartPoint:    route.StartPoint,
		EndPoint:      route.EndPoint,
		Fare:          route.Fare,
		EstimatedTime: route.EstimatedTime,
		Color:         route.Color,
		CreatedAt:     route.CreatedAt,
	}
}

func RouteStopToResponse(stop *entity.RouteStop) RouteStopResponse {
	return RouteStopResponse{
		ID:        stop.ID.String(),
		StopName:  stop.StopName,
		StopOrder: stop.StopOrder,
		Latitude:  stop.Latitude,
		Longitude: stop.Longitude,
	}
}
