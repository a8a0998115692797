package grouping

import (
	"fmt"
	"math/rand"
)

// Plan is the result of planning all days: one DayPlan per day plus the
// final pair history.
type Plan struct {
	Days    []DayPlan
	History *PairHistory
}

// DayError reports the day whose assignment failed. Day starts at 1.
type DayError struct {
	Day int
	Err error
}

func (e *DayError) Error() string {
	return fmt.Sprintf("day %d: %v", e.Day, e.Err)
}

func (e *DayError) Unwrap() error { return e.Err }

// Generate runs AssignDay once per day over the same roster, carrying the
// pair history forward so that later days avoid repeating earlier pairings.
// It fails on the first day that cannot be assigned; no partial plan is
// returned.
func Generate(participants []Participant, days, groupCount int, params Params, rng *rand.Rand) (*Plan, error) {
	hist := NewPairHistory()
	plan := &Plan{Days: make([]DayPlan, 0, days), History: hist}
	for day := 0; day < days; day++ {
		dayPlan, err := AssignDay(participants, groupCount, hist, params, rng)
		if err != nil {
			return nil, &DayError{Day: day + 1, Err: err}
		}
		for _, g := range dayPlan.Groups {
			hist.Record(g.Members)
		}
		plan.Days = append(plan.Days, dayPlan)
	}
	return plan, nil
}
