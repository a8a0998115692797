package grouping

// Participant is a single member of the roster. IDs are sequential from 1;
// Company is the label of the company the participant belongs to.
type Participant struct {
	ID      int    `json:"id"`
	Company string `json:"company"`
}

// BuildRoster は会社ごとの人数リストから参加者一覧を作ります。
// ID は 1 からの連番、会社ラベルはリストの位置から A, B, C, ... を割り当てます。
func BuildRoster(counts []int) []Participant {
	roster := []Participant{}
	id := 1
	for i, n := range counts {
		label := CompanyLabel(i)
		for j := 0; j < n; j++ {
			roster = append(roster, Participant{ID: id, Company: label})
			id++
		}
	}
	return roster
}

// CompanyLabel returns the label of the i-th company: A through Z, then AA,
// AB and so on.
func CompanyLabel(i int) string {
	label := ""
	for i >= 0 {
		label = string(rune('A'+i%26)) + label
		i = i/26 - 1
	}
	return label
}
