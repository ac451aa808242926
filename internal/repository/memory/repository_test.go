package memory

import (
	"testing"

	"github.com/omarshaarawi/recapbot/internal/models"
)

func TestRepositoryRankings(t *testing.T) {
	repo := NewRepository()

	if got := repo.GetRankings(); len(got) != 0 {
		t.Fatalf("new repository should be empty, got %d", len(got))
	}

	input := []models.RankingRecord{
		{Name: "Josh Allen", Position: "QB", Rank: 1},
		{Name: "Josh Allen", Position: "QB", Rank: 9},
		{Name: "Derrick Henry", Position: "RB", Rank: 4},
	}
	repo.SaveRankings(input)
	input[2].Rank = 99

	got := repo.GetRankings()
	if len(got) != 3 {
		t.Fatalf("got %d rankings want 3", len(got))
	}
	if got[2].Rank != 4 {
		t.Fatalf("repository should keep its own copy, got rank %d", got[2].Rank)
	}

	rec, ok := repo.FindRanking("Josh Allen")
	if !ok || rec.Rank != 1 {
		t.Fatalf("FindRanking(Josh Allen)=%+v,%v want rank 1", rec, ok)
	}
	if _, ok := repo.FindRanking("josh allen"); ok {
		t.Fatal("lookup must be case-sensitive")
	}
}
