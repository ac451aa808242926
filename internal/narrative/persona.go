package narrative

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type Mode string

const (
	ModeRecap    Mode = "recap"
	ModeAnalysis Mode = "analysis"
)

// Persona is everything that differs between the recap and the analysis
// writer: who the model plays, what it is asked and how it samples.
type Persona struct {
	System      string  `yaml:"system"`
	Prompt      string  `yaml:"prompt"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`
}

func DefaultPersonas() map[Mode]Persona {
	return map[Mode]Persona{
		ModeRecap: {
			System: "You are a sarcastic commentator providing a humorous recap of a fantasy football " +
				"league's weekly results. Make fun of the bad teams in detail, including their names. " +
				"Create separate sections with bold headings for each part of the recap: best teams, " +
				"worst teams, last week's matchups and the big matchup of the week. Player scores and " +
				"team scores are totals for the season. Do not include yourself in the recap. Make sure " +
				"every team is mentioned at some point.",
			Prompt:      "Create a funny, sarcastic weekly recap based on this fantasy football data:",
			Model:       "gpt-4o-mini",
			MaxTokens:   1300,
			Temperature: 0.7,
		},
		ModeAnalysis: {
			System: "You are a blunt fantasy football analyst. Using the roster, rankings and waiver " +
				"data provided, recommend concrete trades with other teams in the league and waiver " +
				"pickups that fix the listed weak spots. Use bold headings for Trade Targets, Waiver " +
				"Pickups and Players to Drop. Only recommend players that appear in the data.",
			Prompt:      "Suggest trades and waiver moves for this fantasy football team:",
			Model:       "gpt-4o",
			MaxTokens:   1300,
			Temperature: 0.5,
		},
	}
}

// LoadPersonas reads persona overrides from a YAML file keyed by mode. Fields
// left out of the file keep their default values. A temperature of 0 counts as
// left out: the OpenAI client omits a zero temperature from the request, so
// the API would apply its own default rather than sample deterministically.
// Use a small positive value such as 0.01 for near-deterministic output.
func LoadPersonas(path string) (map[Mode]Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading personas file: %w", err)
	}

	var overrides map[Mode]Persona
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing personas file: %w", err)
	}

	personas := DefaultPersonas()
	for mode, override := range overrides {
		base, ok := personas[mode]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
		}
		personas[mode] = merge(base, override)
	}

	return personas, nil
}

func merge(base, override Persona) Persona {
	if override.System != "" {
		base.System = override.System
	}
	if override.Prompt != "" {
		base.Prompt = override.Prompt
	}
	if override.Model != "" {
		base.Model = override.Model
	}
	if override.MaxTokens > 0 {
		base.MaxTokens = override.MaxTokens
	}
	if override.Temperature > 0 {
		base.Temperature = override.Temperature
	}
	return base
}
