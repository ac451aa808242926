package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/omarshaarawi/recapbot/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func leagueEndpoint(creds models.LeagueCredentials) string {
	return fmt.Sprintf("/seasons/%s/segments/0/leagues/%s", creds.Year, creds.LeagueID)
}

// GetLeague fetches settings, teams, records and rosters in one request.
func (a *API) GetLeague(ctx context.Context, creds models.LeagueCredentials) (*models.League, error) {
	var leagueResponse models.LeagueResponse
	params := map[string]string{
		"view": "mSettings,mTeam,mRoster",
	}

	if err := a.client.Get(ctx, creds, leagueEndpoint(creds), params, nil, &leagueResponse); err != nil {
		return nil, fmt.Errorf("fetching league: %w", err)
	}

	league := &models.League{
		ID:          leagueResponse.ID,
		Name:        leagueResponse.Settings.Name,
		SeasonID:    leagueResponse.SeasonID,
		CurrentWeek: leagueResponse.Status.CurrentMatchupPeriod,
		Teams:       make([]models.Team, len(leagueResponse.Teams)),
	}

	for i, team := range leagueResponse.Teams {
		league.Teams[i] = toTeam(team)
	}

	return league, nil
}

func toTeam(team models.TeamResponse) models.Team {
	t := models.Team{
		ID:            team.ID,
		Name:          getTeamName(team),
		Wins:          team.Record.Overall.Wins,
		Losses:        team.Record.Overall.Losses,
		PointsFor:     round2(team.Record.Overall.PointsFor),
		PointsAgainst: round2(team.Record.Overall.PointsAgainst),
		Roster:        make([]models.Player, 0, len(team.Roster.Entries)),
	}

	if sim := team.CurrentSimulationResults; sim != nil && sim.PlayoffPct != nil {
		pct := *sim.PlayoffPct * 100
		t.PlayoffPct = &pct
	}

	for _, entry := range team.Roster.Entries {
		player := entry.PlayerPoolEntry.Player
		t.Roster = append(t.Roster, models.Player{
			Name:        player.FullName,
			Position:    getPositionString(player.DefaultPositionID),
			TotalPoints: round2(getSeasonPoints(entry.PlayerPoolEntry)),
		})
	}

	return t
}

// getTeamName prefers the single name field and falls back to the older
// location/nickname pair that pre-2024 seasons still return.
func getTeamName(team models.TeamResponse) string {
	if name := strings.TrimSpace(team.Name); name != "" {
		return name
	}
	name := strings.TrimSpace(team.Location + " " + team.Nickname)
	if name == "" {
		return fmt.Sprintf("Team %d", team.ID)
	}
	return name
}

// GetScoreboard returns the matchups for one matchup period in the order ESPN
// lists them. Byes have no away side and are skipped.
func (a *API) GetScoreboard(ctx context.Context, creds models.LeagueCredentials, week int, teams []models.Team) ([]models.Matchup, error) {
	var scoreboardResponse models.ScoreboardResponse

	params := map[string]string{
		"view": "mScoreboard",
	}

	filters := map[string]interface{}{
		"schedule": map[string]interface{}{
			"filterMatchupPeriodIds": map[string]interface{}{
				"value": []int{week},
			},
		},
	}

	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		return nil, fmt.Errorf("error marshalling filters: %w", err)
	}

	headers := map[string]string{
		"x-fantasy-filter": string(filtersJSON),
	}

	if err := a.client.Get(ctx, creds, leagueEndpoint(creds), params, headers, &scoreboardResponse); err != nil {
		return nil, fmt.Errorf("fetching scoreboard for week %d: %w", week, err)
	}

	byID := make(map[int]models.Team, len(teams))
	for _, team := range teams {
		byID[team.ID] = team
	}

	var matchups []models.Matchup
	for _, match := range scoreboardResponse.Schedule {
		if match.Home == nil || match.Away == nil {
			continue
		}
		// The filter header is a hint; older seasons ignore it and return the
		// whole schedule.
		if match.MatchupPeriodID != 0 && match.MatchupPeriodID != week {
			continue
		}

		matchups = append(matchups, models.Matchup{
			Week:      week,
			HomeTeam:  lookupTeam(byID, match.Home.TeamID),
			AwayTeam:  lookupTeam(byID, match.Away.TeamID),
			HomeScore: getScore(*match.Home),
			AwayScore: getScore(*match.Away),
		})
	}

	return matchups, nil
}

func lookupTeam(byID map[int]models.Team, id int) models.Team {
	if team, ok := byID[id]; ok {
		return team
	}
	return models.Team{ID: id, Name: fmt.Sprintf("Team %d", id)}
}

func getScore(teamScore models.TeamScore) float64 {
	score := teamScore.TotalPointsLive
	if score == 0 {
		score = teamScore.TotalPoints
	}
	return round2(score)
}

// getSeasonPoints reads the season-to-date actual total (scoring period 0,
// stat source 0) and falls back to appliedStatTotal.
func getSeasonPoints(entry models.PlayerPoolEntry) float64 {
	for _, stat := range entry.Player.Stats {
		if stat.ScoringPeriodID == 0 && stat.StatSourceID == 0 {
			return stat.AppliedTotal
		}
	}
	return entry.AppliedStatTotal
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func getPositionString(positionID int) string {
	positions := map[int]string{
		1: "QB", 2: "RB", 3: "WR", 4: "TE", 5: "K", 7: "P",
		9: "DT", 10: "DE", 11: "LB", 12: "CB", 13: "S", 14: "HC", 16: "D/ST",
	}
	if pos, ok := positions[positionID]; ok {
		return pos
	}
	return "Unknown"
}
