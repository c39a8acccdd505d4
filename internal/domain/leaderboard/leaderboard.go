// Package leaderboard ranks teams per scoring category, splits points across
// ties and turns category points into standings.
package leaderboard

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/timeline"
)

// Entry is one team's place in one category.
type Entry struct {
	TeamID   string  `json:"teamId"`
	TeamName string  `json:"teamName"`
	Total    float64 `json:"total"`
	Points   float64 `json:"points"`
}

// CategoryRank orders teams for one category, best first.
type CategoryRank struct {
	Category string  `json:"category"`
	Negative bool    `json:"negative,omitempty"`
	Teams    []Entry `json:"teams"`
}

// TeamPoints is a team's overall result.
type TeamPoints struct {
	TeamID   string  `json:"teamId"`
	TeamName string  `json:"teamName"`
	Points   float64 `json:"points"`
	Standing int     `json:"standing"`
}

// Calculate ranks the summaries in every positive category (higher is
// better) and then every negative category (lower is better). Nil summaries
// are skipped.
func Calculate(summaries []*timeline.TeamRangeSummary, positive, negative []string) []CategoryRank {
	board := make([]CategoryRank, 0, len(positive)+len(negative))
	for _, cat := range positive {
		board = append(board, rank(summaries, cat, false))
	}
	for _, cat := range negative {
		board = append(board, rank(summaries, cat, true))
	}
	return board
}

func rank(summaries []*timeline.TeamRangeSummary, category string, negative bool) CategoryRank {
	entries := make([]Entry, 0, len(summaries))
	for _, s := range summaries {
		if s == nil {
			continue
		}
		entries = append(entries, Entry{TeamID: s.TeamID, TeamName: s.TeamName, Total: s.CategoryTotals[category]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if negative {
			return entries[i].Total < entries[j].Total
		}
		return entries[i].Total > entries[j].Total
	})
	AllocatePoints(entries)
	return CategoryRank{Category: category, Negative: negative, Teams: entries}
}

// AllocatePoints assigns rank points to entries already ordered best first.
// With n entries the team at index r earns n-r; a run of equal totals shares
// the average of the points its ranks would earn.
func AllocatePoints(entries []Entry) {
	n := len(entries)
	for i := 0; i < n; {
		j := i
		var sum float64
		for j < n && entries[j].Total == entries[i].Total {
			sum += float64(n - j)
			j++
		}
		share := sum / float64(j-i)
		for k := i; k < j; k++ {
			entries[k].Points = share
		}
		i = j
	}
}

// Standings sums category points per team and orders teams by total, best
// first. Teams with equal points share the standing of the first of them.
func Standings(teams []model.Team, board []CategoryRank) ([]TeamPoints, error) {
	out := make([]TeamPoints, len(teams))
	index := make(map[string]int, len(teams))
	for i, t := range teams {
		out[i] = TeamPoints{TeamID: t.ID, TeamName: t.Name}
		index[t.ID] = i
	}

	for _, cat := range board {
		for _, e := range cat.Teams {
			i, ok := index[e.TeamID]
			if !ok {
				return nil, errors.Wrapf(ErrUnknownTeam, "%q in category %s", e.TeamID, cat.Category)
			}
			out[i].Points += e.Points
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Points > out[j].Points })
	for i := range out {
		if i > 0 && out[i].Points == out[i-1].Points {
			out[i].Standing = out[i-1].Standing
			continue
		}
		out[i].Standing = i + 1
	}
	return out, nil
}
