package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/omarshaarawi/recapbot/internal/models"
)

type weekFetcher struct {
	byWeek map[int][]models.Matchup
	errs   map[int]error
	calls  []int
}

func (f *weekFetcher) Matchups(_ context.Context, week int) ([]models.Matchup, error) {
	f.calls = append(f.calls, week)
	if err := f.errs[week]; err != nil {
		return nil, err
	}
	return f.byWeek[week], nil
}

func team(name string, wins, losses int, pf float64) models.Team {
	return models.Team{Name: name, Wins: wins, Losses: losses, PointsFor: pf}
}

func game(home, away models.Team, homeScore, awayScore float64) models.Matchup {
	return models.Matchup{HomeTeam: home, AwayTeam: away, HomeScore: homeScore, AwayScore: awayScore}
}

func TestSortStandings(t *testing.T) {
	teams := []models.Team{
		team("A", 1, 1, 200),
		team("B", 1, 1, 300),
		team("C", 1, 1, 200),
		team("D", 1, 1, 250),
		team("E", 1, 1, 200),
	}

	got := SortStandings(teams)

	want := []string{"B", "D", "A", "C", "E"}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("position %d: got %s want %s (full: %v)", i, got[i].Name, name, got)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].PointsFor < got[i].PointsFor {
			t.Fatalf("standings not descending at %d", i)
		}
	}
	if teams[0].Name != "A" {
		t.Fatal("SortStandings must not reorder its input")
	}
}

func TestBestPlayer(t *testing.T) {
	tests := []struct {
		name   string
		roster []models.Player
		want   string
		wantOK bool
	}{
		{
			name:   "Empty",
			roster: nil,
			wantOK: false,
		},
		{
			name: "HighestTotal",
			roster: []models.Player{
				{Name: "Low", TotalPoints: 10},
				{Name: "High", TotalPoints: 99.5},
				{Name: "Mid", TotalPoints: 50},
			},
			want:   "High",
			wantOK: true,
		},
		{
			name: "FirstWinsTie",
			roster: []models.Player{
				{Name: "First", TotalPoints: 80},
				{Name: "Second", TotalPoints: 80},
			},
			want:   "First",
			wantOK: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := BestPlayer(tc.roster)
			if ok != tc.wantOK {
				t.Fatalf("ok=%v want %v", ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if got.Name != tc.want {
				t.Fatalf("got %s want %s", got.Name, tc.want)
			}
			for _, p := range tc.roster {
				if p.TotalPoints > got.TotalPoints {
					t.Fatalf("%s outscores best player %s", p.Name, got.Name)
				}
			}
		})
	}
}

func TestHighestScorerKeepsFirstOnTie(t *testing.T) {
	a, b, c, d := team("A", 0, 0, 0), team("B", 0, 0, 0), team("C", 0, 0, 0), team("D", 0, 0, 0)

	// Scan order of scores is A=10, B=20, C=20, D=5.
	matchups := []models.Matchup{
		game(a, b, 10, 20),
		game(c, d, 20, 5),
	}

	got, err := HighestScorer(matchups)
	if err != nil {
		t.Fatalf("HighestScorer: %v", err)
	}
	if got.Team != "B" || got.Value != 20 {
		t.Fatalf("got %s with %v want B with 20", got.Team, got.Value)
	}
}

func TestHighestScorerAllZero(t *testing.T) {
	a, b := team("A", 0, 0, 0), team("B", 0, 0, 0)
	got, err := HighestScorer([]models.Matchup{game(a, b, 0, 0)})
	if err != nil {
		t.Fatalf("HighestScorer: %v", err)
	}
	if got.Team != "A" {
		t.Fatalf("got %q want A", got.Team)
	}
}

func TestClosestGame(t *testing.T) {
	a, b := team("A", 0, 0, 0), team("B", 0, 0, 0)
	c, d := team("C", 0, 0, 0), team("D", 0, 0, 0)
	e, f := team("E", 0, 0, 0), team("F", 0, 0, 0)

	tests := []struct {
		name     string
		matchups []models.Matchup
		wantHome string
		wantDiff float64
	}{
		{
			name:     "SmallestAnywhere",
			matchups: []models.Matchup{game(a, b, 105, 100), game(c, d, 90, 95), game(e, f, 80, 81)},
			wantHome: "E",
			wantDiff: 1,
		},
		{
			name:     "FirstWinsTie",
			matchups: []models.Matchup{game(a, b, 103, 100), game(c, d, 97, 100)},
			wantHome: "A",
			wantDiff: 3,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ClosestGame(tc.matchups)
			if err != nil {
				t.Fatalf("ClosestGame: %v", err)
			}
			if got.HomeTeam != tc.wantHome || got.Margin != tc.wantDiff {
				t.Fatalf("got %s margin %v want %s margin %v", got.HomeTeam, got.Margin, tc.wantHome, tc.wantDiff)
			}
		})
	}
}

func TestBigMatchup(t *testing.T) {
	strong1, strong2 := team("S1", 5, 0, 0), team("S2", 4, 1, 0)
	weak1, weak2 := team("W1", 0, 5, 0), team("W2", 1, 4, 0)
	mid1, mid2 := team("M1", 3, 2, 0), team("M2", 6, 0, 0)

	got, err := BigMatchup([]models.Matchup{game(weak1, weak2, 0, 0), game(strong1, strong2, 0, 0), game(mid1, mid2, 0, 0)})
	if err != nil {
		t.Fatalf("BigMatchup: %v", err)
	}
	if got.HomeTeam.Name != "S1" {
		t.Fatalf("got %s want S1 (first of the tied 9-win matchups)", got.HomeTeam.Name)
	}

	if _, err := BigMatchup(nil); !errors.Is(err, ErrNoMatchups) {
		t.Fatalf("got %v want ErrNoMatchups", err)
	}
}

func TestBuildSummaryTwoTeamLeague(t *testing.T) {
	a := models.Team{Name: "Team A", Wins: 1, Losses: 0, PointsFor: 100, PointsAgainst: 80,
		Roster: []models.Player{{Name: "Star", Position: "QB", TotalPoints: 30}}}
	b := models.Team{Name: "Team B", Wins: 0, Losses: 1, PointsFor: 80, PointsAgainst: 100}

	fetcher := &weekFetcher{byWeek: map[int][]models.Matchup{
		1: {game(a, b, 100, 80)},
	}}

	report := BuildSummary(context.Background(), []models.Team{b, a}, 2, fetcher)
	text := report.String()

	for _, want := range []string{
		"Team A: 1-0 (PF: 100.00, PA: 80.00) - Playoff Chance: N/A",
		"Team A - Best Player: Star (QB) with 30.00 points",
		"Team B - Best Player: Data not available for individual player points",
		"Matchups - Week 1:\nTeam A (100.00 points) vs Team B (80.00 points)",
		"Highest Scoring Team Last Week: Team A with 100.00 points",
		"Closest Game: Team A vs Team B with a score difference of 20.00",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("summary missing %q:\n%s", want, text)
		}
	}

	if strings.Index(text, "Team A: 1-0") > strings.Index(text, "Team B: 0-1") {
		t.Fatalf("standings not ordered by points for:\n%s", text)
	}

	big, ok := report.Section(bigMatchupTitle(2))
	if !ok || !errors.Is(big.Err, ErrNoMatchups) {
		t.Fatalf("big matchup section should report ErrNoMatchups, got %+v", big)
	}
	if len(fetcher.calls) != 2 || fetcher.calls[0] != 1 || fetcher.calls[1] != 2 {
		t.Fatalf("fetched weeks %v want [1 2]", fetcher.calls)
	}
}

func TestBuildSummaryEmptyMatchupsKeepsOtherSections(t *testing.T) {
	a := models.Team{Name: "Team A", PointsFor: 10, Roster: []models.Player{{Name: "P", Position: "RB", TotalPoints: 1}}}
	fetcher := &weekFetcher{}

	report := BuildSummary(context.Background(), []models.Team{a}, 5, fetcher)

	for _, title := range []string{SectionStandings, SectionTopPerformers} {
		s, ok := report.Section(title)
		if !ok || !s.OK() || len(s.Lines) == 0 {
			t.Fatalf("section %s should succeed, got %+v", title, s)
		}
	}
	for _, title := range []string{bigMatchupTitle(5), SectionHighlights} {
		s, ok := report.Section(title)
		if !ok || !errors.Is(s.Err, ErrNoMatchups) {
			t.Fatalf("section %s should fail with ErrNoMatchups, got %+v", title, s)
		}
	}
	if len(report.Failed()) != 2 {
		t.Fatalf("got %d failed sections want 2", len(report.Failed()))
	}
	if !strings.Contains(report.String(), "Weekly Highlights:\nError: no matchups available") {
		t.Fatalf("failed section not rendered:\n%s", report.String())
	}
}

func TestBuildSummaryFetchErrorIsScoped(t *testing.T) {
	a, b := team("A", 2, 0, 10), team("B", 0, 2, 5)
	boom := errors.New("espn down")
	fetcher := &weekFetcher{
		byWeek: map[int][]models.Matchup{3: {game(a, b, 0, 0)}},
		errs:   map[int]error{2: boom},
	}

	report := BuildSummary(context.Background(), []models.Team{a, b}, 3, fetcher)

	matchups, _ := report.Section(matchupsTitle(2))
	if !errors.Is(matchups.Err, boom) {
		t.Fatalf("matchups section err=%v want wrapped fetch error", matchups.Err)
	}
	highlights, _ := report.Section(SectionHighlights)
	if !errors.Is(highlights.Err, boom) {
		t.Fatalf("highlights section err=%v want wrapped fetch error", highlights.Err)
	}
	big, _ := report.Section(bigMatchupTitle(3))
	if !big.OK() || big.Lines[0] != "A (Record: 2-0) vs B (Record: 0-2)" {
		t.Fatalf("big matchup should still succeed, got %+v", big)
	}
}

func TestBuildSummaryFirstWeekSkipsWeekZero(t *testing.T) {
	fetcher := &weekFetcher{}
	report := BuildSummary(context.Background(), []models.Team{team("A", 0, 0, 0)}, 1, fetcher)

	if len(fetcher.calls) != 1 || fetcher.calls[0] != 1 {
		t.Fatalf("fetched weeks %v want [1]", fetcher.calls)
	}
	s, _ := report.Section(matchupsTitle(0))
	if !s.OK() || s.Lines[0] != "No matchups found." {
		t.Fatalf("unexpected week 0 section: %+v", s)
	}
}

func TestBuildSummaryEmptyCurrentWeekKeepsHighlights(t *testing.T) {
	a, b := team("A", 1, 0, 100), team("B", 0, 1, 80)
	fetcher := &weekFetcher{byWeek: map[int][]models.Matchup{1: {game(a, b, 100, 80)}}}

	report := BuildSummary(context.Background(), []models.Team{a, b}, 2, fetcher)

	big, _ := report.Section(bigMatchupTitle(2))
	if !errors.Is(big.Err, ErrNoMatchups) {
		t.Fatalf("big matchup err=%v want ErrNoMatchups", big.Err)
	}
	highlights, _ := report.Section(SectionHighlights)
	if !highlights.OK() {
		t.Fatalf("highlights should come from last week's games, got %v", highlights.Err)
	}
	if len(report.Failed()) != 1 {
		t.Fatalf("got %d failed sections want 1", len(report.Failed()))
	}
}
