// Package grouping assigns company-tagged participants into capacity-bounded
// groups over multiple days, minimizing same-company grouping and repeated
// pairings.
package grouping

import (
	"cmp"
	"errors"
	"fmt"
	"math/rand"
	"slices"

	"github.com/sourcegraph/conc/pool"
)

// sameCompanyPenalty is the score of one already-placed member of the same
// company, relative to 1 per previously shared day. Company separation
// always outweighs pairing history.
const sameCompanyPenalty = 100

// ErrNoAssignment is returned when no trial produces a complete partition.
var ErrNoAssignment = errors.New("no valid group assignment found")

// Params controls the randomized search of AssignDay.
type Params struct {
	Trials  int // randomized attempts per day
	Workers int // concurrent trial workers
}

// DefaultParams returns the standard search parameters: 100 trials, sequential.
func DefaultParams() Params {
	return Params{Trials: 100, Workers: 1}
}

// AssignDay は1日分の参加者を groupCount 個のグループに割り当てます。
// - 各試行はランダムな順序で参加者を貪欲に配置
// - 同じ会社のメンバーと過去に同席したペアをスコアで回避
// - 全試行の中で最小スコアの DayPlan を採用
// Params のゼロ値フィールドは DefaultParams の値で補われます。
func AssignDay(participants []Participant, groupCount int, hist *PairHistory, params Params, rng *rand.Rand) (DayPlan, error) {
	if groupCount < 1 {
		return DayPlan{}, fmt.Errorf("invalid group count %d", groupCount)
	}
	def := DefaultParams()
	if params.Trials < 1 {
		params.Trials = def.Trials
	}
	if params.Workers < 1 {
		params.Workers = def.Workers
	}

	caps := capacities(len(participants), groupCount)

	// 試行ごとの乱数シードを先に引いておく。勝者は添字順の走査で選ぶので、
	// 結果は Workers の値に依存しない。
	seeds := make([]int64, params.Trials)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	type trialResult struct {
		plan DayPlan
		ok   bool
	}
	results := make([]trialResult, params.Trials)

	p := pool.New().WithMaxGoroutines(params.Workers)
	for i := 0; i < params.Trials; i++ {
		i := i
		p.Go(func() {
			trialRng := rand.New(rand.NewSource(seeds[i]))
			plan, ok := runTrial(participants, caps, hist, trialRng)
			results[i] = trialResult{plan: plan, ok: ok}
		})
	}
	p.Wait()

	best := -1
	for i, r := range results {
		if r.ok && (best < 0 || r.plan.Score < results[best].plan.Score) {
			best = i
		}
	}
	if best < 0 {
		return DayPlan{}, ErrNoAssignment
	}

	winner := results[best].plan
	for gi := range winner.Groups {
		slices.SortFunc(winner.Groups[gi].Members, func(a, b Participant) int {
			return cmp.Compare(a.ID, b.ID)
		})
	}
	return winner, nil
}

// --------------------
// 内部関数
// --------------------

// 余りの人数は先頭のグループから1人ずつ配る
func capacities(total, groupCount int) []int {
	base, remainder := total/groupCount, total%groupCount
	caps := make([]int, groupCount)
	for i := range caps {
		caps[i] = base
		if i < remainder {
			caps[i]++
		}
	}
	return caps
}

func runTrial(participants []Participant, caps []int, hist *PairHistory, rng *rand.Rand) (DayPlan, bool) {
	groups := make([]Group, len(caps))
	for i, c := range caps {
		groups[i] = Group{Capacity: c, Members: make([]Participant, 0, c)}
	}

	for _, idx := range rng.Perm(len(participants)) {
		p := participants[idx]
		best := -1
		bestScore := 0
		for gi := range groups {
			if len(groups[gi].Members) >= groups[gi].Capacity {
				continue
			}
			s := placementScore(p, groups[gi].Members, hist)
			if best < 0 || s < bestScore {
				best, bestScore = gi, s
			}
		}
		if best < 0 {
			return DayPlan{}, false
		}
		groups[best].Members = append(groups[best].Members, p)
	}

	return DayPlan{Groups: groups, Score: scorePlan(groups, hist)}, true
}

func placementScore(p Participant, members []Participant, hist *PairHistory) int {
	score := 0
	for _, m := range members {
		if m.Company == p.Company {
			score += sameCompanyPenalty
		}
		score += hist.Get(p.ID, m.ID)
	}
	return score
}

func scorePlan(groups []Group, hist *PairHistory) int {
	total := 0
	for _, g := range groups {
		for _, n := range companyCounts(g.Members) {
			if n > 1 {
				total += sameCompanyPenalty * (n - 1)
			}
		}
		for i := 0; i < len(g.Members); i++ {
			for j := i + 1; j < len(g.Members); j++ {
				total += hist.Get(g.Members[i].ID, g.Members[j].ID)
			}
		}
	}
	return total
}
