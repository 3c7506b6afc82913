package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewOrderNumber builds a human-facing order number: millisecond timestamp
// plus a short random suffix so two submissions in the same tick never collide.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:6])
	return fmt.Sprintf("%d%s", now.UnixMilli(), suffix)
}
