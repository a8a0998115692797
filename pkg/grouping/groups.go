package grouping

import (
	"fmt"
	"slices"
	"strings"
)

// Group is one group of a single day. Members is sorted by ID once the day
// is finalized.
type Group struct {
	Capacity int           `json:"capacity"`
	Members  []Participant `json:"members"`
}

// DayPlan is a partition of all participants into groups for one day. Score
// is the penalty of the winning trial.
type DayPlan struct {
	Groups []Group `json:"groups"`
	Score  int     `json:"score"`
}

// DuplicateSummary returns the companies appearing more than once in the
// group, like "A: 2, B: 3", or "none" when every member is from a different
// company.
func (g Group) DuplicateSummary() string {
	counts := companyCounts(g.Members)
	parts := []string{}
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	for _, label := range labels {
		if counts[label] > 1 {
			parts = append(parts, fmt.Sprintf("%s: %d", label, counts[label]))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

func companyCounts(members []Participant) map[string]int {
	counts := make(map[string]int)
	for _, m := range members {
		counts[m.Company]++
	}
	return counts
}
