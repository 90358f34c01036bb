package domain

// DashboardSummary holds the read-only counters of the home page. Admin-only
// counters stay zero for other roles.
type DashboardSummary struct {
	Role         string
	DisplayName  string
	StreamName   string
	ExamCount    int
	UserCount    int
	SubjectCount int
	RoomCount    int
}
