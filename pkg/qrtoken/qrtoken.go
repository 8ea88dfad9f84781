// Package qrtoken builds and parses the opaque token embedded in a ticket's
// QR code. The token identifies a ticket for display and scanning only; it
// carries no authority. Whoever scans it must re-check the live ticket status
// before honoring it.
package qrtoken

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	prefix  = "TGO"
	version = "1"

	dateLayout = "2006-01-02"
	fieldCount = 8
)

// Payload is the set of fields serialized into a token. Field order in the
// encoded form is fixed so independent implementations agree on the format.
type Payload struct {
	TicketID       uuid.UUID
	RouteID        uuid.UUID
	UserID         uuid.UUID
	TravelDate     time.Time
	PassengerCount int
	CreatedAt      time.Time
}

// FormatError reports a token that could not be parsed.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid qr token: %s", e.Reason)
}

// Encode serializes the payload as TGO|1|ticket|route|user|date|count|unix.
// Deterministic: the same payload always yields the same token.
func Encode(p Payload) string {
	return strings.Join([]string{
		prefix,
		version,
		p.TicketID.String(),
		p.RouteID.String(),
		p.UserID.String(),
		p.TravelDate.Format(dateLayout),
		strconv.Itoa(p.PassengerCount),
		strconv.FormatInt(p.CreatedAt.Unix(), 10),
	}, "|")
}

// Decode parses a token back to its payload. Returns *FormatError if the
// token does not match the encoded form.
func Decode(token string) (Payload, error) {
	parts := strings.Split(token, "|")
	if len(parts) != fieldCount {
		return Payload{}, &FormatError{Reason: fmt.Sprintf("expected %d fields, got %d", fieldCount, len(parts))}
	}

	if parts[0] != prefix {
		return Payload{}, &FormatError{Reason: fmt.Sprintf("unknown prefix %q", parts[0])}
	}
	if parts[1] != version {
		return Payload{}, &FormatError{Reason: fmt.Sprintf("unsupported version %q", parts[1])}
	}

	ticketID, err := uuid.Parse(parts[2])
	if err != nil {
		return Payload{}, &FormatError{Reason: "malformed ticket id"}
	}

	routeID, err := uuid.Parse(parts[3])
	if err != nil {
		return Payload{}, &FormatError{Reason: "malformed route id"}
	}

	userID, err := uuid.Parse(parts[4])
	if err != nil {
		return Payload{}, &FormatError{Reason: "malformed user id"}
	}

	travelDate, err := time.Parse(dateLayout, parts[5])
	if err != nil {
		return Payload{}, &FormatError{Reason: "malformed travel date"}
	}

	passengerCount, err := strconv.Atoi(parts[6])
	if err != nil || passengerCount < 1 {
		return Payload{}, &FormatError{Reason: "malformed passenger count"}
	}

	createdUnix, err := strconv.ParseInt(parts[7], 10, 64)
	if err != nil {
		return Payload{}, &FormatError{Reason: "malformed created timestamp"}
	}

	return Payload{
		TicketID:       ticketID,
		RouteID:        routeID,
		UserID:         userID,
		TravelDate:     travelDate,
		PassengerCount: passengerCount,
		CreatedAt:      time.Unix(createdUnix, 0).UTC(),
	}, nil
}
