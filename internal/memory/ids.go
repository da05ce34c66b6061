package memory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewID returns a record identifier that sorts by creation time: a
// millisecond Unix timestamp prefix followed by a random suffix drawn from a
// v4 UUID. Uniqueness holds within a process; cross-process collision
// avoidance is not attempted.
func NewID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
