package models

import (
	"fmt"
	"strings"
)

// Section is one titled block of a report. A section either has lines or an
// error explaining why it could not be computed.
type Section struct {
	Title string
	Lines []string
	Err   error
}

func (s Section) OK() bool {
	return s.Err == nil
}

type Report struct {
	Title    string
	Sections []Section
}

// Failed returns the sections that could not be computed.
func (r Report) Failed() []Section {
	var failed []Section
	for _, s := range r.Sections {
		if !s.OK() {
			failed = append(failed, s)
		}
	}
	return failed
}

func (r Report) Section(title string) (Section, bool) {
	for _, s := range r.Sections {
		if s.Title == title {
			return s, true
		}
	}
	return Section{}, false
}

func (r Report) String() string {
	var sb strings.Builder
	if r.Title != "" {
		sb.WriteString(r.Title)
		sb.WriteString(":\n\n")
	}
	for i, s := range r.Sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%s:\n", s.Title))
		if !s.OK() {
			sb.WriteString(fmt.Sprintf("Error: %v\n", s.Err))
			continue
		}
		for _, line := range s.Lines {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

type Trophy struct {
	Category string
	Team     string
	Value    float64
}

type CloseGame struct {
	HomeTeam  string
	AwayTeam  string
	HomeScore float64
	AwayScore float64
	Margin    float64
}

// RankedPlayer is a roster player joined with its ranking row, if any.
type RankedPlayer struct {
	Player
	Ranking *RankingRecord
}

// Result is the outcome of one user action. NarrativeErr is set when the
// digest was built but the language model call failed.
type Result struct {
	ID           string
	Mode         string
	LeagueName   string
	TeamName     string
	Report       Report
	WeakSpots    []RankedPlayer
	Narrative    string
	NarrativeErr error
}

// Text is the chat-friendly rendering of a result: the narrative when there
// is one, otherwise the error followed by the digest it was built from.
func (r *Result) Text() string {
	if r.NarrativeErr == nil && r.Narrative != "" {
		return r.Narrative
	}
	var sb strings.Builder
	if r.NarrativeErr != nil {
		sb.WriteString(fmt.Sprintf("Error generating %s: %v\n\n", r.Mode, r.NarrativeErr))
	}
	sb.WriteString(r.Report.String())
	return sb.String()
}
