package formdata

import (
	"strings"

	"github.com/google/uuid"
)

// boundaryPrefix is the dash run used by common form-data encoders.
const boundaryPrefix = "------------------------"

// NewBoundary returns a fresh random boundary token: a run of dashes
// followed by the 32 hex digits of a random UUID.
func NewBoundary() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}

	return boundaryPrefix + strings.ReplaceAll(id.String(), "-", ""), nil
}
