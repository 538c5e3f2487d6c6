package state

import "github.com/google/uuid"

// SessionID identifies this process in engine logs.
var SessionID = uuid.NewString()

// NewID returns a fresh stroke identifier.
func NewID() string {
	return uuid.NewString()
}
