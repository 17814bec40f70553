package domain

// DashboardMetrics is the aggregate returned by the dashboard endpoint for a
// given period.
type DashboardMetrics struct {
	Period        MetricsPeriod  `json:"period"`
	TotalRequests int            `json:"total_requests"`
	Pending       int            `json:"pending"`
	Approved      int            `json:"approved"`
	Rejected      int            `json:"rejected"`
	ByType        map[string]int `json:"by_type,omitempty"`
	ByDepartment  map[string]int `json:"by_department,omitempty"`
}
