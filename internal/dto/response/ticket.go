package response

import (
	"time"

	"transgo-ticketing/internal/data/entity"
)

type TicketResponse struct {
	ID             string    `json:"id"`
	RouteID        string    `json:"route_id"`
	UserID         string    `json:"user_id"`
	RouteName      string    `json:"route_name,omitempty"`
	RouteCode      string    `json:"route_code,omitempty"`
	RouteColor     string    `json:"route_color,omitempty"`
	StartPoint     string    `json:"start_point"`
	EndPoint       string    `json:"end_point"`
	PassengerCount int       `json:"passenger_count"`
	TravelDate     string    `json:"travel_date"`
	TotalFare      int64     `json:"total_fare"`
	QRCode         string    `json:"qr_code"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"payment_status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PassengerInfo struct {
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type TicketDetailResponse struct {
	TicketResponse
	Passenger PassengerInfo     `json:"passenger"`
	Payments  []PaymentResponse `json:"payments"`
}

// TicketToResponse converts a ticket, optionally decorating it with its
// route's display fields when the route is available.
func TicketToResponse(ticket *entity.Ticket, route *entity.Route) TicketResponse {
	resp := TicketResponse{
		ID:             ticket.ID.String(),
		RouteID:        ticket.RouteID.String(),
		UserID:         ticket.UserID.String(),
		StartPoint:     ticket.StartPoint,
		EndPoint:       ticket.EndPoint,
		PassengerCount: ticket.PassengerCount,
		TravelDate:     ticket.TravelDate.Format("2006-01-02"),
		TotalFare:      ticket.TotalFare,
		QRCode:         ticket.QRCode,
		Status:         string(ticket.Status),
		PaymentStatus:  string(ticket.PaymentStatus),
		CreatedAt:      ticket.CreatedAt,
		UpdatedAt:      ticket.UpdatedAt,
	}

	if route != nil {
		resp.RouteName = route.Name
		resp.RouteCode = route.RouteCode
		resp.RouteColor = route.Color
	}

	return resp
}
