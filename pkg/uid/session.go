package uid

import "github.com/google/uuid"

// GenerateConnectionID identifies one WebSocket connection for its lifetime.
func GenerateConnectionID() string {
	return uuid.NewString()
}
