package services

import "github.com/google/uuid"

// Principal is the authenticated identity performing an action. It is
// passed explicitly into every operation rather than read from any
// ambient state, and is rebuilt from the token on each request.
type Principal struct {
	UID   uuid.UUID
	Email string
}
