package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/recapbot/internal/api/fantasy"
	"github.com/omarshaarawi/recapbot/internal/models"
	"github.com/omarshaarawi/recapbot/internal/narrative"
)

// Narrator writes prose for a digest.
type Narrator interface {
	Generate(ctx context.Context, mode narrative.Mode, digest string) (string, error)
}

type FantasyService struct {
	api      *fantasy.API
	rankings RankingTable
	narrator Narrator
}

func NewFantasyService(api *fantasy.API, rankings RankingTable, narrator Narrator) *FantasyService {
	return &FantasyService{api: api, rankings: rankings, narrator: narrator}
}

func (s *FantasyService) snapshot(ctx context.Context, creds models.LeagueCredentials) (*fantasy.Snapshot, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	snap, err := s.api.Snapshot(ctx, creds.Trimmed())
	if err != nil {
		return nil, fmt.Errorf("error fetching league: %w", err)
	}
	return snap, nil
}

// TeamNames lists the league's teams in the order ESPN returns them.
func (s *FantasyService) TeamNames(ctx context.Context, creds models.LeagueCredentials) ([]string, error) {
	snap, err := s.snapshot(ctx, creds)
	if err != nil {
		return nil, err
	}
	return snap.League.TeamNames(), nil
}

// Recap builds the weekly digest and asks the narrator for a recap. A failed
// narration is reported on the result; the digest is still returned.
func (s *FantasyService) Recap(ctx context.Context, creds models.LeagueCredentials) (*models.Result, error) {
	snap, err := s.snapshot(ctx, creds)
	if err != nil {
		return nil, err
	}

	result := &models.Result{
		ID:         uuid.NewString(),
		Mode:       string(narrative.ModeRecap),
		LeagueName: snap.League.Name,
	}
	slog.Info("Generating recap", "id", result.ID, "league", snap.League.ID, "week", snap.League.CurrentWeek)

	result.Report = BuildSummary(ctx, snap.League.Teams, snap.League.CurrentWeek, snap)
	for _, section := range result.Report.Failed() {
		slog.Warn("Summary section failed", "id", result.ID, "section", section.Title, "error", section.Err)
	}

	s.narrate(ctx, result, narrative.ModeRecap, result.Report.String())
	return result, nil
}

// Analyze builds the trade and waiver digest for one team and asks the
// narrator for suggestions.
func (s *FantasyService) Analyze(ctx context.Context, creds models.LeagueCredentials, teamName string) (*models.Result, error) {
	if strings.TrimSpace(teamName) == "" {
		return nil, fmt.Errorf("%w: team", models.ErrMissingInput)
	}

	snap, err := s.snapshot(ctx, creds)
	if err != nil {
		return nil, err
	}
	return s.analyze(ctx, snap, teamName)
}

// AnalyzeMatching is Analyze for a loosely typed team name. The name is
// resolved against the same league snapshot that is analyzed, so the league
// is fetched once.
func (s *FantasyService) AnalyzeMatching(ctx context.Context, creds models.LeagueCredentials, query string) (*models.Result, error) {
	snap, err := s.snapshot(ctx, creds)
	if err != nil {
		return nil, err
	}

	teamName, err := MatchTeamName(snap.League.TeamNames(), query)
	if err != nil {
		return nil, err
	}
	return s.analyze(ctx, snap, teamName)
}

func (s *FantasyService) analyze(ctx context.Context, snap *fantasy.Snapshot, teamName string) (*models.Result, error) {
	analysis, err := AnalyzeTeam(snap.League, teamName, s.rankings)
	if err != nil {
		return nil, err
	}

	result := &models.Result{
		ID:         uuid.NewString(),
		Mode:       string(narrative.ModeAnalysis),
		LeagueName: snap.League.Name,
		TeamName:   analysis.Team.Name,
		Report:     analysis.Report,
		WeakSpots:  analysis.WeakSpots,
	}
	slog.Info("Generating analysis", "id", result.ID, "league", snap.League.ID, "team", teamName,
		"weak_spots", len(analysis.WeakSpots), "waivers", len(analysis.Waivers))

	s.narrate(ctx, result, narrative.ModeAnalysis, analysisPrompt(analysis))
	return result, nil
}

func analysisPrompt(analysis *TradeAnalysis) string {
	digest := analysis.Report.String()
	if analysis.Unranked {
		return digest + "\nNo player rankings are loaded, so there are no ranks and no waiver candidates. " +
			"Base trade suggestions on season points only and do not suggest waiver pickups.\n"
	}
	if len(analysis.WeakSpots) == 0 {
		return digest + "\nThis team has no weak spots by rank; look for upgrades anyway.\n"
	}
	names := make([]string, len(analysis.WeakSpots))
	for i, p := range analysis.WeakSpots {
		names[i] = fmt.Sprintf("%s (%s)", p.Name, p.Position)
	}
	return digest + fmt.Sprintf("\nPrioritize replacing: %s\n", strings.Join(names, ", "))
}

func (s *FantasyService) narrate(ctx context.Context, result *models.Result, mode narrative.Mode, prompt string) {
	text, err := s.narrator.Generate(ctx, mode, prompt)
	if err != nil {
		slog.Error("Narrative generation failed", "id", result.ID, "mode", mode, "error", err)
		result.NarrativeErr = err
		return
	}
	result.Narrative = text
}

// MatchTeamName maps a loosely typed team name onto one of names. Exact
// matches win, then case-insensitive ones, then the closest name by edit
// distance above a similarity threshold.
func MatchTeamName(names []string, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("%w: empty name", ErrTeamNotFound)
	}
	for _, name := range names {
		if name == query {
			return name, nil
		}
	}
	for _, name := range names {
		if strings.EqualFold(name, query) {
			return name, nil
		}
	}

	const threshold = 0.6
	best := ""
	bestScore := threshold
	for _, name := range names {
		distance := fuzzy.LevenshteinDistance(strings.ToLower(query), strings.ToLower(name))
		maxLen := float64(max(len(query), len(name)))
		similarity := 1 - float64(distance)/maxLen
		if similarity > bestScore {
			bestScore = similarity
			best = name
		}
	}

	if best == "" {
		return "", fmt.Errorf("%w: %s", ErrTeamNotFound, query)
	}
	return best, nil
}
