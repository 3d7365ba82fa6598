package model

import (
	"sort"
	"time"
)

// DailyStats aggregates one day of wiki activity.
// It is computed from recent changes and log events and rendered either
// as a wikitext statistics page or as a Discord digest.
type DailyStats struct {
	// Start and End bound the analyzed window.
	Start time.Time
	End   time.Time

	// TotalChanges counts all retained changes (edits plus creations).
	TotalChanges int

	// NewPages counts page creations.
	NewPages int

	// Edits counts edits to existing pages.
	Edits int

	// EditsByUser maps user name to number of changes.
	EditsByUser map[string]int

	// EditsByPage maps page title to number of changes.
	EditsByPage map[string]int

	// HourCounts holds the number of changes per local hour of day.
	HourCounts [24]int

	// DeletedPages counts delete log events in the window.
	DeletedPages int

	// BlockedUsers counts block log events in the window.
	BlockedUsers int
}

// Ranked is a name with its change count, used for top-N listings.
type Ranked struct {
	Name  string
	Count int
}

// ComputeDailyStats aggregates recent changes into daily statistics.
//
// Changes by users present in the bots set, or flagged as bot edits,
// are excluded. A nil bots set excludes only flagged bot edits.
// Hour buckets are computed in loc so the digest matches the wiki
// community's local time; a nil loc means UTC.
func ComputeDailyStats(changes []RecentChange, bots map[string]bool, loc *time.Location) *DailyStats {
	if loc == nil {
		loc = time.UTC
	}

	stats := &DailyStats{
		EditsByUser: make(map[string]int),
		EditsByPage: make(map[string]int),
	}

	for _, rc := range changes {
		if rc.Bot || bots[rc.User] {
			continue
		}
		if rc.Type != ChangeTypeEdit && rc.Type != ChangeTypeNew {
			continue
		}

		stats.TotalChanges++
		stats.EditsByUser[rc.User]++
		stats.EditsByPage[rc.Title]++
		stats.HourCounts[rc.Timestamp.In(loc).Hour()]++

		switch rc.Type {
		case ChangeTypeNew:
			stats.NewPages++
		case ChangeTypeEdit:
			stats.Edits++
		}
	}

	return stats
}

// TopUsers returns the n most active users, most active first.
// Ties are broken alphabetically so the output is deterministic.
func (s *DailyStats) TopUsers(n int) []Ranked {
	return topN(s.EditsByUser, n)
}

// TopPages returns the n most edited pages, most edited first.
func (s *DailyStats) TopPages(n int) []Ranked {
	return topN(s.EditsByPage, n)
}

// HottestPage returns the single most edited page and its change count.
// It returns ("", 0) when no changes were recorded.
func (s *DailyStats) HottestPage() (string, int) {
	top := topN(s.EditsByPage, 1)
	if len(top) == 0 {
		return "", 0
	}
	return top[0].Name, top[0].Count
}

// PeakHour returns the local hour with the most changes and its count.
func (s *DailyStats) PeakHour() (hour, count int) {
	for h, c := range s.HourCounts {
		if c > count {
			hour, count = h, c
		}
	}
	return hour, count
}

// QuietHour returns the local hour with the fewest changes and its count.
func (s *DailyStats) QuietHour() (hour, count int) {
	hour, count = 0, s.HourCounts[0]
	for h, c := range s.HourCounts {
		if c < count {
			hour, count = h, c
		}
	}
	return hour, count
}

// topN sorts a counter map by count descending, name ascending.
func topN(counts map[string]int, n int) []Ranked {
	ranked := make([]Ranked, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, Ranked{Name: name, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
