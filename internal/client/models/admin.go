package models

// RecentUser is a short roster entry in the admin statistics.
type RecentUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Joined   string `json:"joined"`
}

// AdminStats is the response of GET /admin/stats.
type AdminStats struct {
	TotalUsers       int          `json:"total_users"`
	TotalPredictions int          `json:"total_predictions"`
	TotalEstimations int          `json:"total_estimations"`
	RecentUsers      []RecentUser `json:"recent_users"`
}
