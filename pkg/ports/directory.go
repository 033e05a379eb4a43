package ports

import (
	"context"

	"github.com/opskit/slipway/pkg/domain"
)

// Directory is the external service-directory lookup.
//
// An empty query returns the full known set in backend order. A non-empty
// query returns the subset whose name or description contains it as a
// case-insensitive substring. Calls are idempotent and uncached; failures
// surface as a single wrapped error with no retry and no partial results.
type Directory interface {
	FetchServices(ctx context.Context, query string) ([]domain.Service, error)
}
