package models

// AdminMetrics is the body of GET /admin/metrics.
type AdminMetrics struct {
	Users       int          `json:"users"`
	UsersByRole map[Role]int `json:"usersByRole"`
	Facilities  int          `json:"facilities"`
	Bookings    int          `json:"bookings"`
	OpenOrders  int          `json:"openOrders"`
	Exams       int          `json:"exams"`
	Events      int          `json:"events"`
	LostItems   int          `json:"lostItems"`
}
