package request

type CreateBookingRequest struct {
	RouteID        string `json:"route_id" validate:"required,uuid4"`
	StartPoint     string `json:"start_point" validate:"required"`
	EndPoint       string `json:"end_point" validate:"required"`
	PassengerCount int    `json:"passenger_count" validate:"required,min=1,max=20"`
	TravelDate     string `json:"travel_date" validate:"required,datetime=2006-01-02"`
}
