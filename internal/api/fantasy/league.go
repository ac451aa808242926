package fantasy

import (
	"context"

	"github.com/omarshaarawi/recapbot/internal/models"
)

// Source is the league-data provider. *espn.API satisfies it.
type Source interface {
	GetLeague(ctx context.Context, creds models.LeagueCredentials) (*models.League, error)
	GetScoreboard(ctx context.Context, creds models.LeagueCredentials, week int, teams []models.Team) ([]models.Matchup, error)
}

type API struct {
	source Source
}

func NewAPI(source Source) *API {
	return &API{source: source}
}

// Snapshot is one league read for one set of credentials. Matchups are
// fetched lazily per week and never cached.
type Snapshot struct {
	League *models.League

	source Source
	creds  models.LeagueCredentials
}

func (a *API) Snapshot(ctx context.Context, creds models.LeagueCredentials) (*Snapshot, error) {
	league, err := a.source.GetLeague(ctx, creds)
	if err != nil {
		return nil, err
	}
	return &Snapshot{League: league, source: a.source, creds: creds}, nil
}

func (s *Snapshot) Matchups(ctx context.Context, week int) ([]models.Matchup, error) {
	return s.source.GetScoreboard(ctx, s.creds, week, s.League.Teams)
}
