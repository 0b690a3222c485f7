package models

// DashboardCounts are the admin home counters.
type DashboardCounts struct {
	Students int `db:"students" json:"students"`
	Parents  int `db:"parents" json:"parents"`
	Teachers int `db:"teachers" json:"teachers"`
	Classes  int `db:"classes" json:"classes"`
	Male     int `db:"male" json:"male"`
	Female   int `db:"female" json:"female"`
}

// AdminDashboard is the admin home payload.
type AdminDashboard struct {
	Counts  DashboardCounts `json:"counts"`
	Notices []Notice        `json:"notices"`
	Inbox   []ChatView      `json:"inbox"`
}

// StudentHome is the student home payload.
type StudentHome struct {
	ClassName string   `json:"class_name"`
	Notices   []Notice `json:"notices"`
}
