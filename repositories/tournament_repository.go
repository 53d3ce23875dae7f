package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Dosada05/campus-tournaments/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

// TournamentOrder: допустимые сортировки списка турниров.
type TournamentOrder string

const (
	OrderByDateAsc     TournamentOrder = "date_asc"
	OrderByDateDesc    TournamentOrder = "date_desc"
	OrderByCreatedDesc TournamentOrder = "created_desc"
)

var tournamentOrderSQL = map[TournamentOrder]string{
	OrderByDateAsc:     "date ASC, created_at ASC",
	OrderByDateDesc:    "date DESC, created_at DESC",
	OrderByCreatedDesc: "created_at DESC",
}

type ListTournamentsFilter struct {
	Order TournamentOrder
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id string) error
}

type postgresTournamentRepository struct {
	db SQLExecutor
}

func NewPostgresTournamentRepository(db SQLExecutor) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `
	id, title, sport, description, date, venue,
	registration_deadline, team_size, status, created_at`

func scanTournament(row rowScanner, t *models.Tournament) error {
	return row.Scan(
		&t.ID, &t.Title, &t.Sport, &t.Description, &t.Date, &t.Venue,
		&t.RegistrationDeadline, &t.TeamSize, &t.Status, &t.CreatedAt,
	)
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	t.ID = uuid.NewString()
	query := `
		INSERT INTO tournaments (
			id, title, sport, description, date, venue,
			registration_deadline, team_size, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		t.ID, t.Title, t.Sport, t.Description, t.Date, t.Venue,
		t.RegistrationDeadline, t.TeamSize, t.Status,
	).Scan(&t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`

	t := &models.Tournament{}
	err := scanTournament(r.db.QueryRowContext(ctx, query, id), t)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %s: %w", id, err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	order, ok := tournamentOrderSQL[filter.Order]
	if !ok {
		order = tournamentOrderSQL[OrderByDateAsc]
	}
	query := `SELECT ` + tournamentColumns + ` FROM tournaments ORDER BY ` + order

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if err := scanTournament(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan tournament: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during tournament rows iteration: %w", err)
	}
	return tournaments, nil
}

// Update перезаписывает редактируемые поля и возвращает created_at сохранённой записи.
func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	query := `
		UPDATE tournaments SET
			title = $1,
			sport = $2,
			description = $3,
			date = $4,
			venue = $5,
			registration_deadline = $6,
			team_size = $7,
			status = $8
		WHERE id = $9
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		t.Title, t.Sport, t.Description, t.Date, t.Venue,
		t.RegistrationDeadline, t.TeamSize, t.Status,
		t.ID,
	).Scan(&t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to update tournament %s: %w", t.ID, err)
	}
	return nil
}

// Delete удаляет турнир; регистрации и рейтинг удаляются каскадом в БД.
func (r *postgresTournamentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		if isMalformedID(err) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}
