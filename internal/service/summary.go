package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/omarshaarawi/recapbot/internal/models"
)

var ErrNoMatchups = errors.New("no matchups available")

const (
	SectionStandings     = "League Standings and Records"
	SectionTopPerformers = "Top Performers by Team"
	SectionHighlights    = "Weekly Highlights"
	summaryTitle         = "Fantasy Football Weekly Recap"
)

func matchupsTitle(week int) string {
	return fmt.Sprintf("Matchups - Week %d", week)
}

func bigMatchupTitle(week int) string {
	return fmt.Sprintf("Big Matchup - Week %d", week)
}

// MatchupFetcher returns the matchups of one week in source order.
type MatchupFetcher interface {
	Matchups(ctx context.Context, week int) ([]models.Matchup, error)
}

// BuildSummary produces the weekly digest. Every section is computed on its
// own; a section that cannot be computed carries its error and the rest of
// the report is still produced.
func BuildSummary(ctx context.Context, teams []models.Team, currentWeek int, fetcher MatchupFetcher) models.Report {
	lastWeek := currentWeek - 1

	report := models.Report{Title: summaryTitle}
	report.Sections = append(report.Sections,
		standingsSection(teams),
		topPerformersSection(teams),
	)

	lastWeekMatchups, lastWeekErr := fetchMatchups(ctx, fetcher, lastWeek)
	currentMatchups, currentErr := fetchMatchups(ctx, fetcher, currentWeek)

	report.Sections = append(report.Sections,
		matchupsSection(lastWeek, lastWeekMatchups, lastWeekErr),
		bigMatchupSection(currentWeek, currentMatchups, currentErr),
		highlightsSection(lastWeekMatchups, lastWeekErr),
	)

	return report
}

func fetchMatchups(ctx context.Context, fetcher MatchupFetcher, week int) ([]models.Matchup, error) {
	if week < 1 {
		return nil, nil
	}
	matchups, err := fetcher.Matchups(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("fetching week %d matchups: %w", week, err)
	}
	return matchups, nil
}

func standingsSection(teams []models.Team) models.Section {
	section := models.Section{Title: SectionStandings}
	for _, team := range SortStandings(teams) {
		section.Lines = append(section.Lines, fmt.Sprintf("%s: %s (PF: %.2f, PA: %.2f) - Playoff Chance: %s",
			team.Name, team.Record(), team.PointsFor, team.PointsAgainst, team.PlayoffChance()))
	}
	return section
}

// SortStandings orders teams by points-for, highest first. Ties keep their
// source order.
func SortStandings(teams []models.Team) []models.Team {
	standings := make([]models.Team, len(teams))
	copy(standings, teams)
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].PointsFor > standings[j].PointsFor
	})
	return standings
}

func topPerformersSection(teams []models.Team) models.Section {
	section := models.Section{Title: SectionTopPerformers}
	for _, team := range teams {
		player, ok := BestPlayer(team.Roster)
		if !ok {
			section.Lines = append(section.Lines,
				fmt.Sprintf("%s - Best Player: Data not available for individual player points", team.Name))
			continue
		}
		section.Lines = append(section.Lines, fmt.Sprintf("%s - Best Player: %s (%s) with %.2f points",
			team.Name, player.Name, player.Position, player.TotalPoints))
	}
	return section
}

// BestPlayer returns the roster entry with the most season points. The first
// entry wins ties.
func BestPlayer(roster []models.Player) (models.Player, bool) {
	if len(roster) == 0 {
		return models.Player{}, false
	}
	best := roster[0]
	for _, p := range roster[1:] {
		if p.TotalPoints > best.TotalPoints {
			best = p
		}
	}
	return best, true
}

func matchupsSection(week int, matchups []models.Matchup, err error) models.Section {
	section := models.Section{Title: matchupsTitle(week)}
	if err != nil {
		section.Err = err
		return section
	}
	if len(matchups) == 0 {
		section.Lines = []string{"No matchups found."}
		return section
	}
	for _, m := range matchups {
		section.Lines = append(section.Lines, fmt.Sprintf("%s (%.2f points) vs %s (%.2f points)",
			m.HomeTeam.Name, m.HomeScore, m.AwayTeam.Name, m.AwayScore))
	}
	return section
}

func bigMatchupSection(week int, matchups []models.Matchup, err error) models.Section {
	section := models.Section{Title: bigMatchupTitle(week)}
	if err != nil {
		section.Err = err
		return section
	}
	m, err := BigMatchup(matchups)
	if err != nil {
		section.Err = fmt.Errorf("week %d: %w", week, err)
		return section
	}
	section.Lines = []string{fmt.Sprintf("%s (Record: %s) vs %s (Record: %s)",
		m.HomeTeam.Name, m.HomeTeam.Record(), m.AwayTeam.Name, m.AwayTeam.Record())}
	return section
}

// BigMatchup picks the matchup whose teams have the most combined wins. The
// first matchup in source order wins ties.
func BigMatchup(matchups []models.Matchup) (models.Matchup, error) {
	if len(matchups) == 0 {
		return models.Matchup{}, ErrNoMatchups
	}
	sorted := make([]models.Matchup, len(matchups))
	copy(sorted, matchups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CombinedWins() > sorted[j].CombinedWins()
	})
	return sorted[0], nil
}

func highlightsSection(matchups []models.Matchup, err error) models.Section {
	section := models.Section{Title: SectionHighlights}
	if err != nil {
		section.Err = err
		return section
	}

	high, err := HighestScorer(matchups)
	if err != nil {
		section.Err = err
		return section
	}
	closest, err := ClosestGame(matchups)
	if err != nil {
		section.Err = err
		return section
	}

	section.Lines = []string{
		fmt.Sprintf("Highest Scoring Team Last Week: %s with %.2f points", high.Team, high.Value),
		fmt.Sprintf("Closest Game: %s vs %s with a score difference of %.2f",
			closest.HomeTeam, closest.AwayTeam, closest.Margin),
	}
	return section
}

// HighestScorer scans home then away scores of every matchup in order. Only a
// strictly greater score takes the title, so the first team to reach the
// maximum keeps it.
func HighestScorer(matchups []models.Matchup) (models.Trophy, error) {
	if len(matchups) == 0 {
		return models.Trophy{}, ErrNoMatchups
	}

	high := models.Trophy{
		Category: "High Score",
		Team:     matchups[0].HomeTeam.Name,
		Value:    matchups[0].HomeScore,
	}
	for i, m := range matchups {
		if i > 0 && m.HomeScore > high.Value {
			high.Team, high.Value = m.HomeTeam.Name, m.HomeScore
		}
		if m.AwayScore > high.Value {
			high.Team, high.Value = m.AwayTeam.Name, m.AwayScore
		}
	}
	return high, nil
}

// ClosestGame returns the matchup with the smallest score differential. The
// first matchup wins ties.
func ClosestGame(matchups []models.Matchup) (models.CloseGame, error) {
	if len(matchups) == 0 {
		return models.CloseGame{}, ErrNoMatchups
	}

	closest := matchups[0]
	margin := closest.Margin()
	for _, m := range matchups[1:] {
		if d := m.Margin(); d < margin {
			closest, margin = m, d
		}
	}

	return models.CloseGame{
		HomeTeam:  closest.HomeTeam.Name,
		AwayTeam:  closest.AwayTeam.Name,
		HomeScore: closest.HomeScore,
		AwayScore: closest.AwayScore,
		Margin:    margin,
	}, nil
}
