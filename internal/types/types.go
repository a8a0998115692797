package types

// CompanyLine is one company row in the report header.
type CompanyLine struct {
	Label string
	Count int
}

// GroupView is one group line of one day in the report.
type GroupView struct {
	Index      int // 1-based group number within the day
	Size       int
	Members    string // "1 (A), 5 (B), 9 (C)"
	Duplicates string
}

// DayView is one day section in the report.
type DayView struct {
	Day    int // 1-based
	Score  int
	Groups []GroupView
}

// PairView is a pair of participants grouped together on two or more days.
type PairView struct {
	A     int
	B     int
	Count int
}

// TemplateData is the root value rendered by the report template.
type TemplateData struct {
	Total     int
	Companies []CompanyLine
	Days      []DayView
	Repeats   []PairView
}
