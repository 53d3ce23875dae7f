package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/Dosada05/campus-tournaments/models"
	"github.com/Dosada05/campus-tournaments/repositories"
	"github.com/Dosada05/campus-tournaments/utils"
	"github.com/Dosada05/campus-tournaments/validation"
)

// registerTimeout ограничивает общую запись регистрации.
const registerTimeout = 10 * time.Second

// TournamentRoster: турнир и его участники для страницы администратора.
type TournamentRoster struct {
	Tournament    models.TournamentView `json:"tournament"`
	Registrations []models.Registration `json:"registrations"`
	Count         int                   `json:"count"`
}

type RegistrationService interface {
	Register(ctx context.Context, tournamentID string, form models.RegistrationForm) (*models.Registration, error)
	LookupByEmail(ctx context.Context, email string) ([]models.RegistrationWithTournament, error)
	Roster(ctx context.Context, tournamentID string) (*TournamentRoster, error)
}

type registrationService struct {
	tournamentRepo   repositories.TournamentRepository
	registrationRepo repositories.RegistrationRepository
	validator        *validation.Validator
	now              Clock

	// inflight схлопывает одинаковые одновременные отправки формы (двойной клик).
	inflight singleflight.Group
}

func NewRegistrationService(
	tournamentRepo repositories.TournamentRepository,
	registrationRepo repositories.RegistrationRepository,
	validator *validation.Validator,
	clock Clock,
) RegistrationService {
	return &registrationService{
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		validator:        validator,
		now:              clockOrNow(clock),
	}
}

func (s *registrationService) Register(ctx context.Context, tournamentID string, form models.RegistrationForm) (*models.Registration, error) {
	form = validation.TrimRegistration(form)
	form.Email = utils.NormalizeEmail(form.Email)
	form.Department = s.validator.CanonicalDepartment(form.Department)

	key := strings.Join([]string{
		tournamentID, form.StudentName, form.Email, form.CollegeID, form.Department, form.Year, form.Phone,
	}, "\x00")

	// Общая запись не зависит от отмены запроса, который её запустил:
	// остальные ожидающие вызовы получат результат и после его отмены.
	ch := s.inflight.DoChan(key, func() (interface{}, error) {
		sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), registerTimeout)
		defer cancel()
		return s.register(sharedCtx, tournamentID, form)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		reg := *res.Val.(*models.Registration)
		return &reg, nil
	}
}

func (s *registrationService) register(ctx context.Context, tournamentID string, form models.RegistrationForm) (*models.Registration, error) {
	t, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err, "failed to load tournament for registration")
	}
	if !t.Availability(s.now()).CanRegister {
		return nil, ErrRegistrationNotOpen
	}

	if fieldErrs := s.validator.Registration(form); !fieldErrs.Empty() {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	reg := &models.Registration{
		TournamentID: t.ID,
		StudentName:  form.StudentName,
		Email:        form.Email,
		CollegeID:    form.CollegeID,
		Department:   form.Department,
		Year:         form.Year,
		Phone:        form.Phone,
	}
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		return nil, handleRepositoryError(err, "failed to create registration")
	}
	return reg, nil
}

// LookupByEmail: пустой ввод не приводит к запросу в хранилище.
func (s *registrationService) LookupByEmail(ctx context.Context, email string) ([]models.RegistrationWithTournament, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return []models.RegistrationWithTournament{}, nil
	}

	regs, err := s.registrationRepo.ListByEmail(ctx, email)
	if err != nil {
		return nil, handleRepositoryError(err, "failed to look up registrations")
	}
	return regs, nil
}

func (s *registrationService) Roster(ctx context.Context, tournamentID string) (*TournamentRoster, error) {
	var (
		tournament    *models.Tournament
		registrations []models.Registration
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tournament, err = s.tournamentRepo.GetByID(gctx, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		registrations, err = s.registrationRepo.ListByTournament(gctx, tournamentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, handleRepositoryError(err, fmt.Sprintf("failed to load roster for tournament %s", tournamentID))
	}

	return &TournamentRoster{
		Tournament:    models.NewTournamentView(*tournament, s.now()),
		Registrations: registrations,
		Count:         len(registrations),
	}, nil
}
