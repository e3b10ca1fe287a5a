package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/lzpck/tfl-snapshot/internal/domain/history"
	"github.com/lzpck/tfl-snapshot/internal/domain/league"
)

// SeasonRecordRepository keeps archived seasons in process memory. It backs
// deployments that run without a database; records do not survive restarts.
type SeasonRecordRepository struct {
	mu    sync.RWMutex
	items map[string]history.SeasonRecord
}

func NewSeasonRecordRepository() *SeasonRecordRepository {
	return &SeasonRecordRepository{items: make(map[string]history.SeasonRecord)}
}

func (r *SeasonRecordRepository) ListByFormat(_ context.Context, format league.Format) ([]history.SeasonRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]history.SeasonRecord, 0, len(r.items))
	for _, record := range r.items {
		if record.Format != format {
			continue
		}
		out = append(out, cloneSeasonRecord(record))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Season > out[j].Season
	})

	return out, nil
}

func (r *SeasonRecordRepository) Upsert(_ context.Context, record history.SeasonRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[seasonRecordKey(record.Format, record.Season)] = cloneSeasonRecord(record)
	return nil
}

func seasonRecordKey(format league.Format, season string) string {
	return string(format) + "::" + season
}

func cloneSeasonRecord(record history.SeasonRecord) history.SeasonRecord {
	copied := record
	copied.FinalStandings = append([]history.FinalStanding(nil), record.FinalStandings...)
	return copied
}
