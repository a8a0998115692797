package grouping

// PairHistory counts how many days each pair of participants has shared a
// group. Keys are canonical: the smaller ID always comes first.
type PairHistory struct {
	counts map[[2]int]int
}

// NewPairHistory returns an empty history.
func NewPairHistory() *PairHistory {
	return &PairHistory{counts: make(map[[2]int]int)}
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// Get returns how many days a and b have shared a group, 0 if never.
func (h *PairHistory) Get(a, b int) int {
	return h.counts[pairKey(a, b)]
}

// Record は確定したグループ内の全ペアのカウントを 1 ずつ増やします。
func (h *PairHistory) Record(members []Participant) {
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			h.counts[pairKey(members[i].ID, members[j].ID)]++
		}
	}
}

// Total returns the sum of all pair counts.
func (h *PairHistory) Total() int {
	total := 0
	for _, n := range h.counts {
		total += n
	}
	return total
}

// Matrix returns an n x n symmetric co-occurrence matrix for participant IDs
// 1..n. The diagonal is always zero.
func (h *PairHistory) Matrix(n int) [][]int {
	matrix := make([][]int, n)
	for i := range matrix {
		matrix[i] = make([]int, n)
	}
	for key, count := range h.counts {
		a, b := key[0]-1, key[1]-1
		if a < 0 || b >= n {
			continue
		}
		matrix[a][b] = count
		matrix[b][a] = count
	}
	return matrix
}
