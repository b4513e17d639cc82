package shared

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// NamingSeries hands out per-tenant sequential numbers for a name prefix
type NamingSeries interface {
	// Next increments the counter for prefix and returns the new value
	Next(ctx context.Context, tenantID uuid.UUID, prefix string) (int64, error)
}

// FormatSeriesName renders a series number as <prefix><5 digits>, e.g. SO-00042
func FormatSeriesName(prefix string, n int64) string {
	return fmt.Sprintf("%s%05d", prefix, n)
}
