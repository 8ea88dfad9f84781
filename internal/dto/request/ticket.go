package request

type TransitionRequest struct {
	Event string `json:"event" validate:"required,oneof=validate cancel expire"`
}
