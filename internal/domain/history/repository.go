package history

import (
	"context"

	"github.com/lzpck/tfl-snapshot/internal/domain/league"
)

// Repository stores finished-season records.
type Repository interface {
	ListByFormat(ctx context.Context, format league.Format) ([]SeasonRecord, error)
	Upsert(ctx context.Context, record SeasonRecord) error
}
