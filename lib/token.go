package lib

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateImageName returns a random, unguessable base name for a
// stored upload. Extension handling is the caller's concern.
func GenerateImageName() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
