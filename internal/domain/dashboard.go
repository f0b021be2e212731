package domain

// DashboardSnapshot holds the per-status request counts for one staff member.
// Derived data, never persisted.
type DashboardSnapshot struct {
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
}
