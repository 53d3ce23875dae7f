package services

import (
	"context"
	"strings"
	"time"

	"github.com/Dosada05/campus-tournaments/models"
	"github.com/Dosada05/campus-tournaments/repositories"
	"github.com/Dosada05/campus-tournaments/validation"
)

// SportFilterAll: значение фильтра по спорту, означающее "без фильтра".
const SportFilterAll = "All"

type PublicListFilter struct {
	Tab    models.ListTab
	Search string
	Sport  string
}

type PublicTournamentList struct {
	Tournaments []models.TournamentView `json:"tournaments"`
	Sports      []string                `json:"sports"`
}

type TournamentService interface {
	ListPublic(ctx context.Context, filter PublicListFilter) (*PublicTournamentList, error)
	Get(ctx context.Context, id string) (*models.TournamentView, error)
	GetForm(ctx context.Context, id string) (models.TournamentForm, error)
	SubmitCreate(ctx context.Context, form models.TournamentForm) (FormOutcome, error)
	SubmitUpdate(ctx context.Context, id string, form models.TournamentForm) (FormOutcome, error)
	Delete(ctx context.Context, id string) error
}

type tournamentService struct {
	repo      repositories.TournamentRepository
	validator *validation.Validator
	loc       *time.Location
	now       Clock
}

func NewTournamentService(
	repo repositories.TournamentRepository,
	validator *validation.Validator,
	loc *time.Location,
	clock Clock,
) TournamentService {
	return &tournamentService{
		repo:      repo,
		validator: validator,
		loc:       locationOrUTC(loc),
		now:       clockOrNow(clock),
	}
}

func (s *tournamentService) ListPublic(ctx context.Context, filter PublicListFilter) (*PublicTournamentList, error) {
	tournaments, err := s.repo.List(ctx, repositories.ListTournamentsFilter{Order: repositories.OrderByDateAsc})
	if err != nil {
		return nil, handleRepositoryError(err, "failed to list tournaments")
	}

	now := s.now()
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	sport := strings.TrimSpace(filter.Sport)

	result := &PublicTournamentList{
		Tournaments: make([]models.TournamentView, 0, len(tournaments)),
		Sports:      sportPills(tournaments),
	}
	for _, t := range tournaments {
		view := models.NewTournamentView(t, now)
		if filter.Tab != "" && view.Availability.Tab != filter.Tab {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Sport), search) {
			continue
		}
		if sport != "" && sport != SportFilterAll && t.Sport != sport {
			continue
		}
		result.Tournaments = append(result.Tournaments, view)
	}
	return result, nil
}

// sportPills: "All" и уникальные виды спорта в порядке первого появления.
func sportPills(tournaments []models.Tournament) []string {
	pills := []string{SportFilterAll}
	seen := make(map[string]struct{}, len(tournaments))
	for _, t := range tournaments {
		if _, ok := seen[t.Sport]; ok {
			continue
		}
		seen[t.Sport] = struct{}{}
		pills = append(pills, t.Sport)
	}
	return pills
}

func (s *tournamentService) Get(ctx context.Context, id string) (*models.TournamentView, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "failed to get tournament")
	}
	view := models.NewTournamentView(*t, s.now())
	return &view, nil
}

func (s *tournamentService) GetForm(ctx context.Context, id string) (models.TournamentForm, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.TournamentForm{}, handleRepositoryError(err, "failed to get tournament")
	}
	return models.FormFromTournament(*t, s.loc), nil
}

func (s *tournamentService) SubmitCreate(ctx context.Context, form models.TournamentForm) (FormOutcome, error) {
	return s.submit(form, func(t *models.Tournament) error {
		return s.repo.Create(ctx, t)
	})
}

func (s *tournamentService) SubmitUpdate(ctx context.Context, id string, form models.TournamentForm) (FormOutcome, error) {
	return s.submit(form, func(t *models.Tournament) error {
		t.ID = id
		return s.repo.Update(ctx, t)
	})
}

// submit проводит форму через editing -> submitting -> success | editing_with_errors.
// При ошибках валидации хранилище не вызывается и форма остаётся в editing.
// Повторных попыток нет: ошибка сохранения возвращается администратору.
func (s *tournamentService) submit(form models.TournamentForm, save func(*models.Tournament) error) (FormOutcome, error) {
	flow := NewFormFlow()
	normalized := validation.NormalizeTournament(form)
	outcome := FormOutcome{State: flow.State(), Form: normalized}

	schedule, fieldErrs := s.validator.Tournament(normalized, s.loc)
	if !fieldErrs.Empty() {
		outcome.Errors = fieldErrs
		return outcome, &ValidationError{Fields: fieldErrs}
	}

	if err := flow.Transition(FormSubmitting); err != nil {
		return outcome, err
	}

	t := &models.Tournament{
		Title:                normalized.Title,
		Sport:                normalized.Sport,
		Description:          normalized.Description,
		Date:                 schedule.Date,
		Venue:                normalized.Venue,
		RegistrationDeadline: schedule.RegistrationDeadline,
		TeamSize:             models.TeamSize(normalized.TeamSize),
		Status:               models.TournamentStatus(normalized.Status),
	}
	if err := save(t); err != nil {
		if tErr := flow.Transition(FormEditingWithErrors); tErr != nil {
			return outcome, tErr
		}
		outcome.State = flow.State()
		return outcome, handleRepositoryError(err, "failed to save tournament")
	}

	if err := flow.Transition(FormSuccess); err != nil {
		return outcome, err
	}
	view := models.NewTournamentView(*t, s.now())
	outcome.State = flow.State()
	outcome.Tournament = &view
	return outcome, nil
}

func (s *tournamentService) Delete(ctx context.Context, id string) error {
	return handleRepositoryError(s.repo.Delete(ctx, id), "failed to delete tournament")
}
