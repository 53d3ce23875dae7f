package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Dosada05/campus-tournaments/models"
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration *models.Registration) error
	ListByTournament(ctx context.Context, tournamentID string) ([]models.Registration, error)
	ListByEmail(ctx context.Context, email string) ([]models.RegistrationWithTournament, error)
}

type postgresRegistrationRepository struct {
	db SQLExecutor
}

func NewPostgresRegistrationRepository(db SQLExecutor) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	reg.ID = uuid.NewString()
	query := `
		INSERT INTO registrations (
			id, tournament_id, student_name, email, college_id, department, year, phone
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		reg.ID, reg.TournamentID, reg.StudentName, reg.Email,
		reg.CollegeID, reg.Department, reg.Year, reg.Phone,
	).Scan(&reg.CreatedAt)
	if err != nil {
		// Турнир удалили между загрузкой формы и отправкой.
		if pqCode(err) == pqForeignKeyViolation || isMalformedID(err) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

func (r *postgresRegistrationRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.Registration, error) {
	query := `
		SELECT id, tournament_id, student_name, email, college_id, department, year, phone, created_at
		FROM registrations
		WHERE tournament_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		if isMalformedID(err) {
			return []models.Registration{}, nil
		}
		return nil, fmt.Errorf("failed to list registrations for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	registrations := make([]models.Registration, 0)
	for rows.Next() {
		var reg models.Registration
		if err := rows.Scan(
			&reg.ID, &reg.TournamentID, &reg.StudentName, &reg.Email,
			&reg.CollegeID, &reg.Department, &reg.Year, &reg.Phone, &reg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		registrations = append(registrations, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during registration rows iteration: %w", err)
	}
	return registrations, nil
}

// ListByEmail ищет по уже нормализованному email и подтягивает родительский турнир.
func (r *postgresRegistrationRepository) ListByEmail(ctx context.Context, email string) ([]models.RegistrationWithTournament, error) {
	query := `
		SELECT
			r.id, r.tournament_id, r.student_name, r.email, r.college_id,
			r.department, r.year, r.phone, r.created_at,
			t.title, t.sport, t.date, t.venue
		FROM registrations r
		LEFT JOIN tournaments t ON t.id = r.tournament_id
		WHERE lower(r.email) = $1
		ORDER BY r.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations by email: %w", err)
	}
	defer rows.Close()

	result := make([]models.RegistrationWithTournament, 0)
	for rows.Next() {
		var (
			item                models.RegistrationWithTournament
			title, sport, venue sql.NullString
			date                sql.NullTime
		)
		if err := rows.Scan(
			&item.ID, &item.TournamentID, &item.StudentName, &item.Email, &item.CollegeID,
			&item.Department, &item.Year, &item.Phone, &item.CreatedAt,
			&title, &sport, &date, &venue,
		); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		if title.Valid {
			item.Tournament = &models.TournamentSummary{
				Title: title.String,
				Sport: sport.String,
				Date:  date.Time,
				Venue: venue.String,
			}
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during registration rows iteration: %w", err)
	}
	return result, nil
}
