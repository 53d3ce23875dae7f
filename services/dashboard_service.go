package services

import (
	"context"

	"github.com/Dosada05/campus-tournaments/models"
	"github.com/Dosada05/campus-tournaments/repositories"
)

// DashboardOverview: содержимое панели администратора.
type DashboardOverview struct {
	Stats       models.DashboardStats   `json:"stats"`
	Tournaments []models.TournamentView `json:"tournaments"`
}

type DashboardService interface {
	Overview(ctx context.Context) (*DashboardOverview, error)
}

type dashboardService struct {
	tournamentRepo repositories.TournamentRepository
	now            Clock
}

func NewDashboardService(tournamentRepo repositories.TournamentRepository, clock Clock) DashboardService {
	return &dashboardService{
		tournamentRepo: tournamentRepo,
		now:            clockOrNow(clock),
	}
}

func (s *dashboardService) Overview(ctx context.Context) (*DashboardOverview, error) {
	tournaments, err := s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{Order: repositories.OrderByCreatedDesc})
	if err != nil {
		return nil, handleRepositoryError(err, "failed to list tournaments")
	}

	views := toViews(tournaments, s.now())
	return &DashboardOverview{
		Stats:       ComputeStats(views),
		Tournaments: views,
	}, nil
}

// ComputeStats считает открытыми турниры, на которые можно записаться прямо сейчас;
// всё остальное (закрытые вручную и просроченные) попадает в Closed.
func ComputeStats(views []models.TournamentView) models.DashboardStats {
	stats := models.DashboardStats{Total: len(views)}
	for _, v := range views {
		if v.Availability.CanRegister {
			stats.Open++
		}
	}
	stats.Closed = stats.Total - stats.Open
	return stats
}
