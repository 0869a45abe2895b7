package analytics

// AdminDashboardStats is the admin overview. Change fields compare the last
// seven days against the seven before; nil means no prior-week baseline.
type AdminDashboardStats struct {
	TotalComplaints       int64    `json:"total_complaints"`
	TotalComplaintsChange *float64 `json:"total_complaints_change"`
	InProgress            int64    `json:"in_progress"`
	InProgressChange      *float64 `json:"in_progress_change"`
	Resolved              int64    `json:"resolved"`
	ResolvedChange        *float64 `json:"resolved_change"`
	HighPriority          int64    `json:"high_priority"`
	HighPriorityChange    *float64 `json:"high_priority_change"`
	TotalResources        int64    `json:"total_resources"`
	AvailableResources    int64    `json:"available_resources"`
	BusyResources         int64    `json:"busy_resources"`
}

// UserDashboardStats summarizes one citizen's complaints
type UserDashboardStats struct {
	TotalComplaints int64 `json:"total_complaints"`
	InProgress      int64 `json:"in_progress"`
	Resolved        int64 `json:"resolved"`
}
