package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/campus-tournaments/models"
	"github.com/Dosada05/campus-tournaments/repositories"
)

// Clock возвращает текущее время; в тестах подменяется.
type Clock func() time.Time

func clockOrNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

func locationOrUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}

// handleRepositoryError переводит ошибки репозитория в ошибки сервисного слоя.
func handleRepositoryError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrLeaderboardEntryNotFound):
		return ErrLeaderboardEntryNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func toViews(tournaments []models.Tournament, now time.Time) []models.TournamentView {
	views := make([]models.TournamentView, 0, len(tournaments))
	for _, t := range tournaments {
		views = append(views, models.NewTournamentView(t, now))
	}
	return views
}
