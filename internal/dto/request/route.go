package request

type CreateRouteRequest struct {
	RouteCode     string `json:"route_code" validate:"required,min=2,max=10"`
	Name          string `json:"name" validate:"required"`
	StartPoint    string `json:"start_point" validate:"required"`
	EndPoint      string `json:"end_point" validate:"required"`
	Fare          int64  `json:"fare" validate:"required,min=1"`
	EstimatedTime int    `json:"estimated_time" validate:"required,min=1"`
	Color         string `json:"color" validate:"omitempty,hexcolor"`
}

type UpdateRouteRequest struct {
	RouteCode     string `json:"route_code" validate:"required,min=2,max=10"`
	Name          string `json:"name" validate:"required"`
	StartPoint    string `json:"start_point" validate:"required"`
	EndPoint      string `json:"end_point" validate:"required"`
	Fare          int64  `json:"fare" validate:"required,min=1"`
	EstimatedTime int    `json:"estimated_time" validate:"required,min=1"`
	Color         string `json:"color" validate:"omitempty,hexcolor"`
}

type RouteStopRequest struct {
	StopName  string  `json:"stop_name" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"required,latitude"`
	Longitude float64 `json:"longitude" validate:"required,longitude"`
}

type ReplaceRouteStopsRequest struct {
	Stops []RouteStopRequest `json:"stops" validate:"required,min=1,dive"`
}
