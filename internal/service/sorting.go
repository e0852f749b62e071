package service

import (
	"slices"
	"sort"
	"time"

	"github.com/AdamBeresnev/tba-match-widget/internal/frc"
)

// SortMatches orders matches in place. SortTime orders by effective start
// (unscheduled first); anything else orders by level then match number.
func SortMatches(matches []frc.Match, mode SortMode) {
	if mode == SortTime {
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].EffectiveTime() < matches[j].EffectiveTime()
		})
		return
	}
	sort.SliceStable(matches, func(i, j int) bool {
		ri, rj := matches[i].CompLevel.Rank(), matches[j].CompLevel.Rank()
		if ri != rj {
			return ri < rj
		}
		return matches[i].MatchNumber < matches[j].MatchNumber
	})
}

// FilterByDate keeps matches starting on date (YYYY-MM-DD) in loc. An empty
// date keeps everything. The result never aliases matches.
func FilterByDate(matches []frc.Match, date string, loc *time.Location) []frc.Match {
	if date == "" {
		return slices.Clone(matches)
	}
	filtered := make([]frc.Match, 0, len(matches))
	for _, m := range matches {
		at, ok := m.StartsAt(loc)
		if ok && at.Format(DateLayout) == date {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// MatchDates lists the distinct local dates of scheduled matches, ascending.
func MatchDates(matches []frc.Match, loc *time.Location) []string {
	seen := make(map[string]struct{})
	var dates []string
	for _, m := range matches {
		at, ok := m.StartsAt(loc)
		if !ok {
			continue
		}
		d := at.Format(DateLayout)
		if _, exists := seen[d]; exists {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
