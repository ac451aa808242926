// Package rankings reads the player ranking table used for trade and waiver
// analysis.
package rankings

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/omarshaarawi/recapbot/internal/models"
)

var ErrMissingColumn = errors.New("missing required column")

var columnAliases = map[string][]string{
	"name":      {"player", "name", "player name", "player_name"},
	"position":  {"pos", "position"},
	"rank":      {"rank", "rk", "pos rank", "pos_rank", "position rank"},
	"projected": {"proj", "projected", "projected points", "projected_points", "fpts"},
}

func LoadFile(path string) ([]models.RankingRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rankings file: %w", err)
	}
	defer f.Close()

	records, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}

// Load parses a CSV ranking table with a header row. Name, position and rank
// columns are required; projected points default to 0 when the column is
// absent or the cell is empty.
func Load(r io.Reader) ([]models.RankingRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty rankings table")
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := indexColumns(header)
	for _, required := range []string{"name", "position", "rank"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	var records []models.RankingRecord
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		name := cell(row, cols["name"])
		if name == "" {
			return nil, fmt.Errorf("line %d: empty player name", line)
		}

		rank, err := strconv.Atoi(cell(row, cols["rank"]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid rank %q", line, cell(row, cols["rank"]))
		}

		var projected float64
		if idx, ok := cols["projected"]; ok {
			if raw := cell(row, idx); raw != "" {
				projected, err = strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid projected points %q", line, raw)
				}
			}
		}

		records = append(records, models.RankingRecord{
			Name:      name,
			Position:  cell(row, cols["position"]),
			Rank:      rank,
			Projected: projected,
		})
	}

	return records, nil
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int)
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		for field, aliases := range columnAliases {
			if _, seen := cols[field]; seen {
				continue
			}
			for _, alias := range aliases {
				if h == alias {
					cols[field] = i
					break
				}
			}
		}
	}
	return cols
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
