package services

import "errors"

// Sentinel errors returned by the lifecycle/task/webhook services. The
// controllers map these onto HTTP status codes; nothing here ever reaches a
// client as a 500.
var (
	ErrOrderNotFound = errors.New("order not found")
	ErrTaskNotFound  = errors.New("task not found")
	ErrStaffNotFound = errors.New("staff not found")
	ErrMenuNotFound  = errors.New("menu item not found or unavailable")

	ErrInvalidState    = errors.New("operation not allowed in current order status")
	ErrConflict        = errors.New("concurrent update lost, refresh and retry")
	ErrForbidden       = errors.New("actor does not own this resource")
	ErrInvalidAmount   = errors.New("payment amount does not match order total")
	ErrInvalidStatus   = errors.New("unknown or unreachable status")
	ErrInvalidTaskType = errors.New("unknown task type")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrNoteRequired    = errors.New("a note is required when failing a task")

	ErrInvalidSignature = errors.New("webhook signature mismatch")
	ErrAlreadyReviewed  = errors.New("order already has a review")
	ErrAlreadyClaimed   = errors.New("task already claimed")
)
