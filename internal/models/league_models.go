package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrMissingInput = errors.New("missing required input")
	ErrInvalidInput = errors.New("invalid input")
)

const minSeasonYear = 2000

// LeagueCredentials identifies one ESPN league season and the cookies needed
// to read it. Values are passed through to ESPN untouched.
type LeagueCredentials struct {
	LeagueID string `json:"league_id"`
	Year     string `json:"year"`
	SWID     string `json:"swid"`
	ESPNS2   string `json:"espn_s2"`
}

// Validate checks presence and basic shape only. Whether the credentials are
// accepted by ESPN is only known once the league is fetched.
func (c LeagueCredentials) Validate() error {
	var missing []string
	if strings.TrimSpace(c.LeagueID) == "" {
		missing = append(missing, "league id")
	}
	if strings.TrimSpace(c.Year) == "" {
		missing = append(missing, "year")
	}
	if strings.TrimSpace(c.SWID) == "" {
		missing = append(missing, "SWID")
	}
	if strings.TrimSpace(c.ESPNS2) == "" {
		missing = append(missing, "ESPN_S2")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingInput, strings.Join(missing, ", "))
	}

	if _, err := strconv.Atoi(strings.TrimSpace(c.LeagueID)); err != nil {
		return fmt.Errorf("%w: league id must be a number", ErrInvalidInput)
	}
	year, err := strconv.Atoi(strings.TrimSpace(c.Year))
	if err != nil {
		return fmt.Errorf("%w: year must be a number", ErrInvalidInput)
	}
	if year < minSeasonYear {
		return fmt.Errorf("%w: year must be %d or later", ErrInvalidInput, minSeasonYear)
	}

	return nil
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (c LeagueCredentials) Trimmed() LeagueCredentials {
	return LeagueCredentials{
		LeagueID: strings.TrimSpace(c.LeagueID),
		Year:     strings.TrimSpace(c.Year),
		SWID:     strings.TrimSpace(c.SWID),
		ESPNS2:   strings.TrimSpace(c.ESPNS2),
	}
}

type League struct {
	ID          int
	Name        string
	SeasonID    int
	CurrentWeek int
	Teams       []Team
}

// TeamByName returns the first team whose name matches exactly.
func (l *League) TeamByName(name string) (*Team, bool) {
	for i := range l.Teams {
		if l.Teams[i].Name == name {
			return &l.Teams[i], true
		}
	}
	return nil, false
}

// TeamNames lists team names in source order.
func (l *League) TeamNames() []string {
	names := make([]string, len(l.Teams))
	for i, team := range l.Teams {
		names[i] = team.Name
	}
	return names
}

// RosteredNames is the union of every roster in the league.
func (l *League) RosteredNames() map[string]struct{} {
	names := make(map[string]struct{})
	for _, team := range l.Teams {
		for _, player := range team.Roster {
			names[player.Name] = struct{}{}
		}
	}
	return names
}

type Team struct {
	ID            int
	Name          string
	Wins          int
	Losses        int
	PointsFor     float64
	PointsAgainst float64
	// PlayoffPct is 0-100 and nil when the source does not report it.
	PlayoffPct *float64
	Roster     []Player
}

func (t Team) Record() string {
	return fmt.Sprintf("%d-%d", t.Wins, t.Losses)
}

// PlayoffChance renders the playoff percentage or "N/A" when absent.
func (t Team) PlayoffChance() string {
	if t.PlayoffPct == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", *t.PlayoffPct)
}

type Player struct {
	Name        string
	Position    string
	TotalPoints float64
}

type Matchup struct {
	Week      int
	HomeTeam  Team
	AwayTeam  Team
	HomeScore float64
	AwayScore float64
}

// Margin is the absolute score differential.
func (m Matchup) Margin() float64 {
	return math.Abs(m.HomeScore - m.AwayScore)
}

// CombinedWins is the sum of both teams' win counts.
func (m Matchup) CombinedWins() int {
	return m.HomeTeam.Wins + m.AwayTeam.Wins
}

// RankingRecord is one row of the external player ranking table. Name is the
// join key against Player.Name and is compared exactly.
type RankingRecord struct {
	Name      string
	Position  string
	Rank      int
	Projected float64
}
