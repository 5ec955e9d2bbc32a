package tools

import (
	"github.com/google/uuid"
)

// Generates a random request id using UUID
func GenerateRequestId() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return ""
	}

	return id.String()
}
