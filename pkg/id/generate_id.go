package id

import (
	"strings"

	"github.com/google/uuid"
)

// NewRequestID returns a lowercase uuid suitable for the X-Request-Id
// header and idempotency keys.
func NewRequestID() string {
	return strings.ToLower(uuid.NewString())
}
