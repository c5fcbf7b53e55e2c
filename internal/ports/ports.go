package ports

import (
	"context"

	"TenderBoard/internal/domain"
)

// DatasetSource hands out the loaded dataset table. Implementations cache the
// table for the process lifetime and may reload it when the source changes;
// the returned table must be treated as read-only.
type DatasetSource interface {
	GetOrLoad(ctx context.Context) (*domain.Table, error)
}
