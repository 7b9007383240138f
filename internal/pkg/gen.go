package pkg

import "github.com/google/uuid"

// GenerateRoomID returns a new unique room identifier.
func GenerateRoomID() string {
	return uuid.NewString()
}

// GenerateSessionID returns a new unique connection identifier.
func GenerateSessionID() string {
	return uuid.NewString()
}
