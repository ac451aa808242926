package memory

import (
	"sync"

	"github.com/omarshaarawi/recapbot/internal/models"
)

// Repository holds the ranking table loaded at process start. It is the only
// state shared between user actions.
type Repository struct {
	rankings []models.RankingRecord
	byName   map[string]models.RankingRecord
	mu       sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{byName: make(map[string]models.RankingRecord)}
}

// SaveRankings replaces the table. When a name appears more than once the
// first row wins the by-name lookup.
func (r *Repository) SaveRankings(records []models.RankingRecord) {
	byName := make(map[string]models.RankingRecord, len(records))
	for _, rec := range records {
		if _, ok := byName[rec.Name]; !ok {
			byName[rec.Name] = rec
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rankings = append([]models.RankingRecord(nil), records...)
	r.byName = byName
}

func (r *Repository) GetRankings() []models.RankingRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.RankingRecord(nil), r.rankings...)
}

func (r *Repository) FindRanking(name string) (models.RankingRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byName[name]
	return rec, ok
}
