package models

type LeagueResponse struct {
	ID              int            `json:"id"`
	ScoringPeriodID int            `json:"scoringPeriodId"`
	SeasonID        int            `json:"seasonId"`
	Status          Status         `json:"status"`
	Teams           []TeamResponse `json:"teams"`
	Settings        Settings       `json:"settings"`
}

type Settings struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type Status struct {
	CurrentMatchupPeriod int  `json:"currentMatchupPeriod"`
	FinalScoringPeriod   int  `json:"finalScoringPeriod"`
	FirstScoringPeriod   int  `json:"firstScoringPeriod"`
	IsActive             bool `json:"isActive"`
}

type TeamResponse struct {
	ID                       int                `json:"id"`
	Abbreviation             string             `json:"abbrev"`
	Name                     string             `json:"name"`
	Location                 string             `json:"location"`
	Nickname                 string             `json:"nickname"`
	Roster                   Roster             `json:"roster"`
	Record                   Record             `json:"record"`
	CurrentSimulationResults *SimulationResults `json:"currentSimulationResults"`
}

type SimulationResults struct {
	PlayoffPct *float64 `json:"playoffPct"`
}

type Roster struct {
	Entries []RosterEntry `json:"entries"`
}

type Record struct {
	Overall RecordDetails `json:"overall"`
}

type RecordDetails struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	Percentage    float64 `json:"percentage"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
}

type ScoreboardResponse struct {
	Schedule []MatchupScore `json:"schedule"`
}

type MatchupScore struct {
	ID              int        `json:"id"`
	MatchupPeriodID int        `json:"matchupPeriodId"`
	Away            *TeamScore `json:"away"`
	Home            *TeamScore `json:"home"`
	Winner          string     `json:"winner"`
}

type TeamScore struct {
	TeamID          int     `json:"teamId"`
	TotalPoints     float64 `json:"totalPoints"`
	TotalPointsLive float64 `json:"totalPointsLive"`
}

type RosterEntry struct {
	PlayerPoolEntry PlayerPoolEntry `json:"playerPoolEntry"`
	LineupSlotID    int             `json:"lineupSlotId"`
}

type PlayerPoolEntry struct {
	ID               int          `json:"id"`
	OnTeamID         int          `json:"onTeamId"`
	Player           PlayerRecord `json:"player"`
	AppliedStatTotal float64      `json:"appliedStatTotal"`
}

type PlayerRecord struct {
	ID                int    `json:"id"`
	FullName          string `json:"fullName"`
	DefaultPositionID int    `json:"defaultPositionId"`
	ProTeamID         int    `json:"proTeamId"`
	Stats             []Stat `json:"stats"`
	InjuryStatus      string `json:"injuryStatus"`
}

type Stat struct {
	StatSourceID    int     `json:"statSourceId"`
	StatSplitTypeID int     `json:"statSplitTypeId"`
	ScoringPeriodID int     `json:"scoringPeriodId"`
	SeasonID        int     `json:"seasonId"`
	AppliedTotal    float64 `json:"appliedTotal"`
}
