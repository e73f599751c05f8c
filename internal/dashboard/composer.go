// Package dashboard composes the role-gated dashboard view model. The
// composer is a pure function of (identity, stats): it selects exactly one
// of the three role variants and passes supplied aggregates through without
// computing anything itself.
package dashboard

import (
	"fmt"

	"github.com/careerlaunchpad/api/internal/domain"
)

// NavItem is one side-navigation entry. Badge is a pass-through count;
// zero hides it.
type NavItem struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Icon   string `json:"icon"`
	Badge  int    `json:"badge,omitempty"`
	Active bool   `json:"active,omitempty"`
}

// Header describes the top bar: search affordance, notification count and
// the identity badge.
type Header struct {
	SearchEnabled bool   `json:"searchEnabled"`
	Notifications int    `json:"notifications"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	RoleLabel     string `json:"roleLabel"`
}

// StatCard is a single metric tile.
type StatCard struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Color string `json:"color"`
}

// Panel names a role-specific content section.
type Panel struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
}

// Dashboard is the composed view model for one role.
type Dashboard struct {
	Role       domain.Role `json:"role"`
	Title      string      `json:"title"`
	Subtitle   string      `json:"subtitle"`
	Accent     string      `json:"accent"`
	Navigation []NavItem   `json:"navigation"`
	Header     Header      `json:"header"`
	StatCards  []StatCard  `json:"statCards"`
	Panels     []Panel     `json:"panels"`
}

// Compose selects and builds the dashboard variant for the identity's role.
// An unrecognized role fails with domain.ErrUnknownRole; there is no
// fallthrough to the end-user view.
func Compose(identity *domain.User, stats domain.DashboardStats) (*Dashboard, error) {
	header := Header{
		SearchEnabled: true,
		Notifications: stats.Notifications,
		Name:          identity.Name,
		Email:         identity.Email,
		RoleLabel:     string(identity.Role),
	}

	switch identity.Role {
	case domain.RoleUser:
		return userDashboard(header, stats), nil
	case domain.RoleStaff:
		return staffDashboard(header, stats), nil
	case domain.RoleAdmin:
		return adminDashboard(header, stats), nil
	default:
		return nil, domain.ErrUnknownRole
	}
}

func userDashboard(header Header, stats domain.DashboardStats) *Dashboard {
	return &Dashboard{
		Role:     domain.RoleUser,
		Title:    "My Dashboard",
		Subtitle: "Track your career progress and discover new opportunities.",
		Accent:   "blue",
		Header:   header,
		Navigation: []NavItem{
			{Label: "Dashboard", Href: "/dashboard", Icon: "home", Active: true},
			{Label: "Career Paths", Href: "/dashboard/careers", Icon: "map"},
			{Label: "My Courses", Href: "/dashboard/courses", Icon: "book", Badge: stats.TotalCourses},
			{Label: "Applications", Href: "/dashboard/applications", Icon: "briefcase", Badge: stats.TotalApplications},
			{Label: "AI Advisor", Href: "/dashboard/advisor", Icon: "sparkles"},
			{Label: "Profile", Href: "/dashboard/profile", Icon: "user"},
		},
		StatCards: []StatCard{
			{Title: "Career Paths", Value: fmt.Sprintf("%d", stats.CareerPaths), Color: "blue"},
			{Title: "Courses Enrolled", Value: fmt.Sprintf("%d", stats.TotalCourses), Color: "green"},
			{Title: "Completion Rate", Value: fmt.Sprintf("%d%%", stats.CompletionRate), Color: "green"},
			{Title: "Applications", Value: fmt.Sprintf("%d", stats.TotalApplications), Color: "blue"},
		},
		Panels: []Panel{
			{Kind: "ai-advisor", Title: "AI Career Advisor"},
			{Kind: "recommended-courses", Title: "Recommended For You"},
		},
	}
}

func staffDashboard(header Header, stats domain.DashboardStats) *Dashboard {
	return &Dashboard{
		Role:     domain.RoleStaff,
		Title:    "Staff Dashboard",
		Subtitle: "Manage content, review applications, and support users.",
		Accent:   "red",
		Header:   header,
		Navigation: []NavItem{
			{Label: "Dashboard", Href: "/staff/dashboard", Icon: "home", Active: true},
			{Label: "Application Reviews", Href: "/staff/reviews", Icon: "clipboard", Badge: stats.PendingReviews},
			{Label: "Content Management", Href: "/staff/content", Icon: "pencil"},
			{Label: "Course Library", Href: "/staff/courses", Icon: "book"},
			{Label: "User Support", Href: "/staff/users", Icon: "users"},
			{Label: "Reports", Href: "/staff/reports", Icon: "chart"},
			{Label: "Help & Support", Href: "/staff/help", Icon: "question"},
		},
		StatCards: []StatCard{
			{Title: "Pending Reviews", Value: fmt.Sprintf("%d", stats.PendingReviews), Color: "red"},
			{Title: "Total Applications", Value: fmt.Sprintf("%d", stats.TotalApplications), Color: "blue"},
			{Title: "Active Courses", Value: fmt.Sprintf("%d", stats.TotalCourses), Color: "green"},
			{Title: "Completion Rate", Value: fmt.Sprintf("%d%%", stats.CompletionRate), Color: "green"},
		},
		Panels: []Panel{
			{Kind: "pending-reviews", Title: "Pending Reviews"},
			{Kind: "recent-activity", Title: "Recent Activity"},
		},
	}
}

func adminDashboard(header Header, stats domain.DashboardStats) *Dashboard {
	return &Dashboard{
		Role:     domain.RoleAdmin,
		Title:    "Admin Dashboard",
		Subtitle: "Platform overview, user management, and system health.",
		Accent:   "navy",
		Header:   header,
		Navigation: []NavItem{
			{Label: "Dashboard", Href: "/admin/dashboard", Icon: "home", Active: true},
			{Label: "User Management", Href: "/admin/users", Icon: "users", Badge: stats.TotalUsers},
			{Label: "Content", Href: "/admin/content", Icon: "pencil"},
			{Label: "Career Paths", Href: "/admin/careers", Icon: "map"},
			{Label: "Reports", Href: "/admin/reports", Icon: "chart"},
			{Label: "AI Analytics", Href: "/admin/ai", Icon: "sparkles", Badge: stats.AIInteractions},
			{Label: "Settings", Href: "/admin/settings", Icon: "cog"},
		},
		StatCards: []StatCard{
			{Title: "Total Users", Value: fmt.Sprintf("%d", stats.TotalUsers), Color: "navy"},
			{Title: "Active Users", Value: fmt.Sprintf("%d", stats.ActiveUsers), Color: "blue"},
			{Title: "Career Paths", Value: fmt.Sprintf("%d", stats.CareerPaths), Color: "green"},
			{Title: "AI Interactions", Value: fmt.Sprintf("%d", stats.AIInteractions), Color: "purple"},
		},
		Panels: []Panel{
			{Kind: "system-overview", Title: "System Overview"},
			{Kind: "user-management", Title: "User Management"},
		},
	}
}
