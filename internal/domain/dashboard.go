package domain

// DashboardStats is a role-shaped read-only aggregate. Values are supplied
// by collaborators and passed through to the composed dashboard; zero means
// "not provided for this role".
type DashboardStats struct {
	TotalUsers        int `json:"totalUsers,omitempty"`
	ActiveUsers       int `json:"activeUsers,omitempty"`
	TotalCourses      int `json:"totalCourses,omitempty"`
	CompletionRate    int `json:"completionRate,omitempty"`
	TotalApplications int `json:"totalApplications,omitempty"`
	PendingReviews    int `json:"pendingReviews,omitempty"`
	CareerPaths       int `json:"careerPaths,omitempty"`
	AIInteractions    int `json:"aiInteractions,omitempty"`
	Notifications     int `json:"notifications,omitempty"`
}
