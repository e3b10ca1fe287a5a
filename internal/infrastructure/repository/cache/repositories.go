package cache

import (
	"context"
	"time"

	"github.com/lzpck/tfl-snapshot/internal/domain/history"
	"github.com/lzpck/tfl-snapshot/internal/domain/league"
	basecache "github.com/lzpck/tfl-snapshot/internal/platform/cache"
)

// SeasonRecordRepository caches season history reads in front of a slower
// repository. Writes flow through and invalidate the affected format.
type SeasonRecordRepository struct {
	next  history.Repository
	cache *basecache.Store
	ttl   time.Duration
}

func NewSeasonRecordRepository(next history.Repository, cache *basecache.Store, ttl time.Duration) *SeasonRecordRepository {
	return &SeasonRecordRepository{next: next, cache: cache, ttl: ttl}
}

func (r *SeasonRecordRepository) ListByFormat(ctx context.Context, format league.Format) ([]history.SeasonRecord, error) {
	key := seasonRecordListKey(format)
	v, err := r.cache.GetOrLoad(ctx, key, r.ttl, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByFormat(ctx, format)
		if err != nil {
			return nil, err
		}
		out := make([]history.SeasonRecord, 0, len(items))
		for _, item := range items {
			out = append(out, cloneSeasonRecord(item))
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]history.SeasonRecord)
	out := make([]history.SeasonRecord, 0, len(items))
	for _, item := range items {
		out = append(out, cloneSeasonRecord(item))
	}
	return out, nil
}

func (r *SeasonRecordRepository) Upsert(ctx context.Context, record history.SeasonRecord) error {
	if err := r.next.Upsert(ctx, record); err != nil {
		return err
	}
	r.cache.Delete(ctx, seasonRecordListKey(record.Format))
	return nil
}

func seasonRecordListKey(format league.Format) string {
	return "history:list:" + string(format)
}

func cloneSeasonRecord(record history.SeasonRecord) history.SeasonRecord {
	copied := record
	copied.FinalStandings = append([]history.FinalStanding(nil), record.FinalStandings...)
	return copied
}
