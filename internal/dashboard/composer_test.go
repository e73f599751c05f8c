package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerlaunchpad/api/internal/domain"
)

func testUser(role domain.Role) *domain.User {
	return &domain.User{
		ID:    "u-1",
		Name:  "Ada",
		Email: "ada@example.com",
		Role:  role,
	}
}

func navLabels(items []NavItem) []string {
	labels := make([]string, 0, len(items))
	for _, it := range items {
		labels = append(labels, it.Label)
	}
	return labels
}

func TestComposeUserDashboard(t *testing.T) {
	doc, err := Compose(testUser(domain.RoleUser), domain.DashboardStats{TotalCourses: 3})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleUser, doc.Role)
	assert.Equal(t, "blue", doc.Accent)
	assert.Contains(t, navLabels(doc.Navigation), "AI Advisor")
	assert.NotContains(t, navLabels(doc.Navigation), "User Management")
	assert.Equal(t, "ada@example.com", doc.Header.Email)
}

func TestComposeStaffBadgePassThrough(t *testing.T) {
	doc, err := Compose(testUser(domain.RoleStaff), domain.DashboardStats{PendingReviews: 7})
	require.NoError(t, err)

	assert.Equal(t, "red", doc.Accent)
	var reviews *NavItem
	for i := range doc.Navigation {
		if doc.Navigation[i].Label == "Application Reviews" {
			reviews = &doc.Navigation[i]
		}
	}
	require.NotNil(t, reviews, "staff nav must include Application Reviews")
	assert.Equal(t, 7, reviews.Badge)
}

func TestComposeAdminDashboard(t *testing.T) {
	doc, err := Compose(testUser(domain.RoleAdmin), domain.DashboardStats{
		TotalUsers:     120,
		AIInteractions: 42,
	})
	require.NoError(t, err)

	assert.Equal(t, "navy", doc.Accent)
	labels := navLabels(doc.Navigation)
	assert.Contains(t, labels, "User Management")
	assert.Contains(t, labels, "AI Analytics")
	assert.NotContains(t, labels, "My Courses")
}

func TestComposeVariantsAreDisjoint(t *testing.T) {
	user, err := Compose(testUser(domain.RoleUser), domain.DashboardStats{})
	require.NoError(t, err)
	admin, err := Compose(testUser(domain.RoleAdmin), domain.DashboardStats{})
	require.NoError(t, err)

	// The shared "Dashboard" entry points at different roots.
	assert.NotEqual(t, user.Navigation[0].Href, admin.Navigation[0].Href)
	assert.NotEqual(t, user.Title, admin.Title)
}

func TestComposeUnknownRoleFailsLoudly(t *testing.T) {
	doc, err := Compose(testUser(domain.Role("owner")), domain.DashboardStats{})
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, domain.ErrUnknownRole)
}
