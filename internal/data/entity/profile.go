package entity

import (
	"github.com/google/uuid"
)

// Profile is user-facing identity owned by the external auth layer.
// Read-only from this service's perspective.
type Profile struct {
	Base
	UserID   uuid.UUID `db:"user_id"`
	FullName string    `db:"full_name"`
	Phone    string    `db:"phone"`
}
