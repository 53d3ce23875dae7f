package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/campus-tournaments/models"
	"github.com/Dosada05/campus-tournaments/repositories"
	"github.com/Dosada05/campus-tournaments/validation"
)

type LeaderboardService interface {
	Public(ctx context.Context) ([]models.TournamentLeaderboard, error)
	ForTournament(ctx context.Context, tournamentID string) (*models.TournamentLeaderboard, error)
	AddEntry(ctx context.Context, tournamentID string, form models.LeaderboardEntryForm) (*models.LeaderboardEntry, error)
	DeleteEntry(ctx context.Context, entryID string) error
}

type leaderboardService struct {
	tournamentRepo  repositories.TournamentRepository
	leaderboardRepo repositories.LeaderboardRepository
	validator       *validation.Validator
	now             Clock
}

func NewLeaderboardService(
	tournamentRepo repositories.TournamentRepository,
	leaderboardRepo repositories.LeaderboardRepository,
	validator *validation.Validator,
	clock Clock,
) LeaderboardService {
	return &leaderboardService{
		tournamentRepo:  tournamentRepo,
		leaderboardRepo: leaderboardRepo,
		validator:       validator,
		now:             clockOrNow(clock),
	}
}

// Public группирует записи по турнирам (сначала более поздние); турниры без записей не показываются.
func (s *leaderboardService) Public(ctx context.Context) ([]models.TournamentLeaderboard, error) {
	var (
		tournaments []models.Tournament
		entries     []models.LeaderboardEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tournaments, err = s.tournamentRepo.List(gctx, repositories.ListTournamentsFilter{Order: repositories.OrderByDateDesc})
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.leaderboardRepo.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, handleRepositoryError(err, "failed to load leaderboards")
	}

	byTournament := make(map[string][]models.LeaderboardEntry)
	for _, e := range entries {
		byTournament[e.TournamentID] = append(byTournament[e.TournamentID], e)
	}

	now := s.now()
	result := make([]models.TournamentLeaderboard, 0, len(byTournament))
	for _, t := range tournaments {
		list, ok := byTournament[t.ID]
		if !ok {
			continue
		}
		result = append(result, models.NewTournamentLeaderboard(models.NewTournamentView(t, now), list))
	}
	return result, nil
}

func (s *leaderboardService) ForTournament(ctx context.Context, tournamentID string) (*models.TournamentLeaderboard, error) {
	var (
		tournament *models.Tournament
		entries    []models.LeaderboardEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tournament, err = s.tournamentRepo.GetByID(gctx, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.leaderboardRepo.ListByTournament(gctx, tournamentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, handleRepositoryError(err, "failed to load tournament leaderboard")
	}

	board := models.NewTournamentLeaderboard(models.NewTournamentView(*tournament, s.now()), entries)
	return &board, nil
}

func (s *leaderboardService) AddEntry(ctx context.Context, tournamentID string, form models.LeaderboardEntryForm) (*models.LeaderboardEntry, error) {
	form = validation.TrimLeaderboardEntry(form)
	if fieldErrs := s.validator.LeaderboardEntry(form); !fieldErrs.Empty() {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	entry := &models.LeaderboardEntry{
		TournamentID:    tournamentID,
		Rank:            form.Rank,
		ParticipantName: form.ParticipantName,
		Score:           form.Score,
		Achievement:     form.Achievement,
	}
	if err := s.leaderboardRepo.Create(ctx, entry); err != nil {
		return nil, handleRepositoryError(err, "failed to add leaderboard entry")
	}
	return entry, nil
}

func (s *leaderboardService) DeleteEntry(ctx context.Context, entryID string) error {
	return handleRepositoryError(s.leaderboardRepo.Delete(ctx, entryID), "failed to delete leaderboard entry")
}
