package uid

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateTableID returns a random table id without dashes, safe for URLs and redis keys.
func GenerateTableID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// IsTableID reports whether s has the shape GenerateTableID produces.
func IsTableID(s string) bool {
	if len(s) != 32 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
