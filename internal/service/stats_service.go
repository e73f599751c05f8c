package service

import (
	"context"
	"time"

	"github.com/careerlaunchpad/api/internal/domain"
	"github.com/careerlaunchpad/api/internal/repository"
)

const activeUserWindow = 30 * 24 * time.Hour

// StatsProvider supplies the role-shaped aggregates a dashboard displays.
// The dashboard composer performs no aggregation itself.
type StatsProvider interface {
	StatsFor(ctx context.Context, user *domain.User) (domain.DashboardStats, error)
}

// StatsService answers the aggregates the service owns (user counts) and
// passes everything else through as zero until the owning collaborators
// (courses, applications, reviews) exist.
type StatsService struct {
	stats repository.StatsRepository
}

// NewStatsService builds the provider.
func NewStatsService(stats repository.StatsRepository) *StatsService {
	return &StatsService{stats: stats}
}

// StatsFor returns the aggregate view for the identity's role.
func (s *StatsService) StatsFor(ctx context.Context, user *domain.User) (domain.DashboardStats, error) {
	var out domain.DashboardStats

	if user.Role != domain.RoleAdmin || s.stats == nil {
		return out, nil
	}

	total, err := s.stats.CountUsers(ctx)
	if err != nil {
		return out, err
	}
	active, err := s.stats.CountActiveUsersSince(ctx, time.Now().Add(-activeUserWindow))
	if err != nil {
		return out, err
	}

	out.TotalUsers = total
	out.ActiveUsers = active
	return out, nil
}
