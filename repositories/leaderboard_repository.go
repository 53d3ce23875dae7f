package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Dosada05/campus-tournaments/models"
)

var ErrLeaderboardEntryNotFound = errors.New("leaderboard entry not found")

type LeaderboardRepository interface {
	Create(ctx context.Context, entry *models.LeaderboardEntry) error
	ListByTournament(ctx context.Context, tournamentID string) ([]models.LeaderboardEntry, error)
	ListAll(ctx context.Context) ([]models.LeaderboardEntry, error)
	Delete(ctx context.Context, id string) error
}

type postgresLeaderboardRepository struct {
	db SQLExecutor
}

func NewPostgresLeaderboardRepository(db SQLExecutor) LeaderboardRepository {
	return &postgresLeaderboardRepository{db: db}
}

const leaderboardColumns = `id, tournament_id, rank, participant_name, score, achievement, created_at`

func (r *postgresLeaderboardRepository) Create(ctx context.Context, e *models.LeaderboardEntry) error {
	e.ID = uuid.NewString()
	query := `
		INSERT INTO leaderboards (id, tournament_id, rank, participant_name, score, achievement)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		e.ID, e.TournamentID, e.Rank, e.ParticipantName, e.Score, e.Achievement,
	).Scan(&e.CreatedAt)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation || isMalformedID(err) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to create leaderboard entry: %w", err)
	}
	return nil
}

func (r *postgresLeaderboardRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.LeaderboardEntry, error) {
	query := `SELECT ` + leaderboardColumns + ` FROM leaderboards WHERE tournament_id = $1 ORDER BY rank ASC, created_at ASC`
	return r.list(ctx, query, tournamentID)
}

func (r *postgresLeaderboardRepository) ListAll(ctx context.Context) ([]models.LeaderboardEntry, error) {
	query := `SELECT ` + leaderboardColumns + ` FROM leaderboards ORDER BY rank ASC, created_at ASC`
	return r.list(ctx, query)
}

func (r *postgresLeaderboardRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.LeaderboardEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		if isMalformedID(err) {
			return []models.LeaderboardEntry{}, nil
		}
		return nil, fmt.Errorf("failed to list leaderboard entries: %w", err)
	}
	defer rows.Close()

	entries := make([]models.LeaderboardEntry, 0)
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(
			&e.ID, &e.TournamentID, &e.Rank, &e.ParticipantName, &e.Score, &e.Achievement, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during leaderboard rows iteration: %w", err)
	}
	return entries, nil
}

func (r *postgresLeaderboardRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM leaderboards WHERE id = $1`, id)
	if err != nil {
		if isMalformedID(err) {
			return ErrLeaderboardEntryNotFound
		}
		return fmt.Errorf("failed to delete leaderboard entry %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrLeaderboardEntryNotFound)
}
