package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/omarshaarawi/recapbot/internal/models"
)

// WeakSpotRank is the worst positional rank still considered startable.
// Anything ranked beyond it is a weak spot.
const WeakSpotRank = 60

const (
	SectionRoster        = "Roster"
	SectionWeakSpots     = "Weak Spots"
	SectionLeagueRosters = "League Rosters"
	SectionWaiverWire    = "Waiver Wire"
)

var ErrTeamNotFound = errors.New("team not found")

// RankingTable is the ranking dataset. Lookups are exact on player name.
type RankingTable interface {
	GetRankings() []models.RankingRecord
	FindRanking(name string) (models.RankingRecord, bool)
}

type TradeAnalysis struct {
	Team      models.Team
	Roster    []models.RankedPlayer
	WeakSpots []models.RankedPlayer
	Waivers   []models.RankingRecord
	Report    models.Report
	Unranked  bool // the ranking table was empty
}

// AnalyzeTeam joins the target team's roster with the ranking table, flags
// weak spots and lists every ranked player nobody in the league rosters.
func AnalyzeTeam(league *models.League, teamName string, table RankingTable) (*TradeAnalysis, error) {
	team, ok := league.TeamByName(teamName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, teamName)
	}

	analysis := &TradeAnalysis{Team: *team}
	for _, player := range team.Roster {
		ranked := models.RankedPlayer{Player: player}
		if rec, ok := table.FindRanking(player.Name); ok {
			ranked.Ranking = &rec
		}
		analysis.Roster = append(analysis.Roster, ranked)
		if IsWeakSpot(ranked) {
			analysis.WeakSpots = append(analysis.WeakSpots, ranked)
		}
	}

	rankings := table.GetRankings()
	analysis.Unranked = len(rankings) == 0
	analysis.Waivers = WaiverEligible(league, rankings)

	analysis.Report = models.Report{
		Title: fmt.Sprintf("Trade & Waiver Analysis for %s", team.Name),
		Sections: []models.Section{
			rosterSection(analysis.Roster),
			weakSpotsSection(analysis.WeakSpots),
			leagueRostersSection(league.Teams),
			waiverSection(analysis.Waivers),
		},
	}

	return analysis, nil
}

// IsWeakSpot reports whether a ranked player sits beyond WeakSpotRank.
// Players missing from the ranking table are never weak spots.
func IsWeakSpot(p models.RankedPlayer) bool {
	return p.Ranking != nil && p.Ranking.Rank > WeakSpotRank
}

// WaiverEligible returns ranking rows whose player is on no roster, in table
// order.
func WaiverEligible(league *models.League, rankings []models.RankingRecord) []models.RankingRecord {
	rostered := league.RosteredNames()
	var available []models.RankingRecord
	for _, rec := range rankings {
		if _, ok := rostered[rec.Name]; !ok {
			available = append(available, rec)
		}
	}
	return available
}

func rosterSection(roster []models.RankedPlayer) models.Section {
	section := models.Section{Title: SectionRoster}
	for _, p := range roster {
		if p.Ranking == nil {
			section.Lines = append(section.Lines, fmt.Sprintf("- %s (%s)", p.Name, p.Position))
			continue
		}
		section.Lines = append(section.Lines, fmt.Sprintf("- %s (%s) - Rank: %d, Projected: %.2f",
			p.Name, p.Position, p.Ranking.Rank, p.Ranking.Projected))
	}
	if len(section.Lines) == 0 {
		section.Lines = []string{"Roster is empty."}
	}
	return section
}

func weakSpotsSection(weak []models.RankedPlayer) models.Section {
	section := models.Section{Title: fmt.Sprintf("%s (rank > %d)", SectionWeakSpots, WeakSpotRank)}
	for _, p := range weak {
		section.Lines = append(section.Lines, fmt.Sprintf("- %s (%s) - Rank: %d", p.Name, p.Position, p.Ranking.Rank))
	}
	if len(section.Lines) == 0 {
		section.Lines = []string{"None"}
	}
	return section
}

func leagueRostersSection(teams []models.Team) models.Section {
	section := models.Section{Title: SectionLeagueRosters}
	for _, team := range teams {
		players := make([]string, len(team.Roster))
		for i, p := range team.Roster {
			players[i] = fmt.Sprintf("%s (%s)", p.Name, p.Position)
		}

		line := fmt.Sprintf("%s: %s", team.Name, team.Record())
		if team.PlayoffPct != nil {
			line += fmt.Sprintf(", Playoff Chance: %s", team.PlayoffChance())
		}
		line += fmt.Sprintf(", Roster: %s", strings.Join(players, ", "))
		section.Lines = append(section.Lines, line)
	}
	return section
}

func waiverSection(waivers []models.RankingRecord) models.Section {
	section := models.Section{Title: SectionWaiverWire}
	for _, rec := range waivers {
		section.Lines = append(section.Lines, fmt.Sprintf("- %s (%s) - Rank: %d, Projected: %.2f",
			rec.Name, rec.Position, rec.Rank, rec.Projected))
	}
	if len(section.Lines) == 0 {
		section.Lines = []string{"No ranked players available."}
	}
	return section
}
