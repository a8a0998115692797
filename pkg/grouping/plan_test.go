package grouping

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	roster := BuildRoster([]int{2, 2, 3, 2, 1, 3, 2, 2, 2, 2, 2, 2})
	plan, err := Generate(roster, 3, 5, DefaultParams(), testRng(1))
	require.NoError(t, err)
	require.Len(t, plan.Days, 3)

	// 毎日、全員がちょうど1回ずつ割り当てられる
	for di, day := range plan.Days {
		require.Len(t, day.Groups, 5, "day %d", di+1)
		seen := map[int]bool{}
		for _, g := range day.Groups {
			assert.Len(t, g.Members, g.Capacity)
			for _, m := range g.Members {
				assert.False(t, seen[m.ID], "day %d: participant %d appears twice", di+1, m.ID)
				seen[m.ID] = true
			}
		}
		assert.Len(t, seen, len(roster), "day %d: every participant assigned", di+1)
	}
}

func TestGenerate_HistoryMatchesDays(t *testing.T) {
	roster := BuildRoster([]int{2, 2, 2, 2})
	plan, err := Generate(roster, 3, 2, DefaultParams(), testRng(5))
	require.NoError(t, err)

	// 3日 × 2グループ × C(4,2) = 36ペア
	assert.Equal(t, 36, plan.History.Total())

	rebuilt := NewPairHistory()
	for _, day := range plan.Days {
		for _, g := range day.Groups {
			rebuilt.Record(g.Members)
		}
	}
	assert.Equal(t, rebuilt, plan.History, "history matches the finalized days")
}

func TestGenerate_FirstDayPairsCountOne(t *testing.T) {
	roster := BuildRoster([]int{2, 2, 2, 2})
	plan, err := Generate(roster, 1, 2, DefaultParams(), testRng(2))
	require.NoError(t, err)

	for _, g := range plan.Days[0].Groups {
		for i := 0; i < len(g.Members); i++ {
			for j := i + 1; j < len(g.Members); j++ {
				assert.Equal(t, 1, plan.History.Get(g.Members[i].ID, g.Members[j].ID))
			}
		}
	}
}

func TestGenerate_KeepsCompaniesApart(t *testing.T) {
	// 4社×2名を2グループ×3日。どの日も同じ会社の2人は同席しない
	roster := BuildRoster([]int{2, 2, 2, 2})
	plan, err := Generate(roster, 3, 2, DefaultParams(), testRng(7))
	require.NoError(t, err)

	for di, day := range plan.Days {
		for _, g := range day.Groups {
			assert.Equal(t, "none", g.DuplicateSummary(), "day %d", di+1)
		}
		assert.Less(t, day.Score, sameCompanyPenalty, "day %d score comes from history only", di+1)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	roster := BuildRoster([]int{3, 2, 4, 2})

	first, err := Generate(roster, 3, 3, DefaultParams(), testRng(42))
	require.NoError(t, err)
	second, err := Generate(roster, 3, 3, DefaultParams(), testRng(42))
	require.NoError(t, err)
	assert.Equal(t, first, second, "same seed must give the same plan")

	parallel, err := Generate(roster, 3, 3, Params{Trials: 100, Workers: 4}, testRng(42))
	require.NoError(t, err)
	assert.Equal(t, first, parallel, "worker count must not affect the plan")
}

func TestGenerate_ZeroDays(t *testing.T) {
	plan, err := Generate(BuildRoster([]int{2}), 0, 1, DefaultParams(), testRng(1))
	require.NoError(t, err)
	assert.Empty(t, plan.Days)
	assert.Equal(t, 0, plan.History.Total())
}

func TestGenerate_DayError(t *testing.T) {
	_, err := Generate(BuildRoster([]int{2}), 2, 0, DefaultParams(), testRng(1))
	require.Error(t, err)

	var dayErr *DayError
	require.True(t, errors.As(err, &dayErr))
	assert.Equal(t, 1, dayErr.Day)
	assert.ErrorContains(t, err, "day 1")
}
