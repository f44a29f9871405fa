package ports

import (
	"context"

	"github.com/habitflow/habitflow-api/internal/core/domain"
)

// AnalyticsService derives summary statistics and chart series from a
// user's habit ledger. Read-only; nothing is persisted.
type AnalyticsService interface {
	Report(ctx context.Context, userID string) (*domain.AnalyticsReport, error)
}
