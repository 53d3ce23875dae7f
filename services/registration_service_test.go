package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/campus-tournaments/models"
	"github.com/Dosada05/campus-tournaments/validation"
)

func validRegistration() models.RegistrationForm {
	return models.RegistrationForm{
		StudentName: "Jane Doe",
		Email:       "  Jane@College.EDU ",
		CollegeID:   "STU-2041",
		Department:  "Computer Science",
		Year:        "2nd Year",
		Phone:       "987-654-3210",
	}
}

func newRegistrationFixture() (RegistrationService, *fakeRegistrationRepo) {
	regRepo := &fakeRegistrationRepo{titles: map[string]string{"a": "Chess Open"}}
	svc := NewRegistrationService(
		newFakeTournamentRepo(seedTournaments()...),
		regRepo,
		validation.New(nil),
		fixedClock(testNow),
	)
	return svc, regRepo
}

func TestRegisterStoresNormalizedEmail(t *testing.T) {
	svc, repo := newRegistrationFixture()

	reg, err := svc.Register(context.Background(), "a", validRegistration())
	require.NoError(t, err)
	assert.Equal(t, "jane@college.edu", reg.Email)
	assert.Equal(t, "a", reg.TournamentID)
	assert.NotEmpty(t, reg.ID)
	assert.Equal(t, 1, repo.createCalls)
}

func TestRegisterRejections(t *testing.T) {
	tests := []struct {
		name         string
		tournamentID string
		mutate       func(*models.RegistrationForm)
		wantErr      error
	}{
		{"unknown tournament", "missing", nil, ErrTournamentNotFound},
		{"closed by admin", "b", nil, ErrRegistrationNotOpen},
		{"deadline passed", "c", nil, ErrRegistrationNotOpen},
		{"short phone", "a", func(f *models.RegistrationForm) { f.Phone = "98765432" }, ErrValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newRegistrationFixture()
			form := validRegistration()
			if tt.mutate != nil {
				tt.mutate(&form)
			}
			_, err := svc.Register(context.Background(), tt.tournamentID, form)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, repo.createCalls)
		})
	}
}

func TestRegisterValidationErrorsAreFieldScoped(t *testing.T) {
	svc, _ := newRegistrationFixture()
	form := validRegistration()
	form.Email = "jane.college.edu"
	form.Year = "   "

	_, err := svc.Register(context.Background(), "a", form)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, validation.FieldErrors{
		"email": validation.MsgInvalidFormat,
		"year":  validation.MsgRequired,
	}, vErr.Fields)
}

func TestRegisterCollapsesConcurrentDuplicates(t *testing.T) {
	svc, repo := newRegistrationFixture()
	repo.createDelay = 200 * time.Millisecond

	var wg sync.WaitGroup
	results := make([]*models.Registration, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reg, err := svc.Register(context.Background(), "a", validRegistration())
			assert.NoError(t, err)
			results[i] = reg
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, repo.createCalls)
	require.NotNil(t, results[0])
	require.NotNil(t, results[1])
	assert.Equal(t, results[0].ID, results[1].ID)
}

func TestRegisterDuplicateSurvivesFirstCallerCancel(t *testing.T) {
	svc, repo := newRegistrationFixture()
	repo.createDelay = 200 * time.Millisecond
	repo.createStarted = make(chan struct{}, 1)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	defer cancelFirst()

	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.Register(firstCtx, "a", validRegistration())
		firstErr <- err
	}()
	<-repo.createStarted

	type result struct {
		reg *models.Registration
		err error
	}
	second := make(chan result, 1)
	go func() {
		reg, err := svc.Register(context.Background(), "a", validRegistration())
		second <- result{reg, err}
	}()

	time.Sleep(50 * time.Millisecond)
	cancelFirst()

	assert.ErrorIs(t, <-firstErr, context.Canceled)

	got := <-second
	require.NoError(t, got.err)
	require.NotNil(t, got.reg)
	assert.Equal(t, "jane@college.edu", got.reg.Email)
	assert.Equal(t, 1, repo.createCalls)
}

func TestRegisterStoresCanonicalDepartment(t *testing.T) {
	regRepo := &fakeRegistrationRepo{titles: map[string]string{"a": "Chess Open"}}
	svc := NewRegistrationService(
		newFakeTournamentRepo(seedTournaments()...),
		regRepo,
		validation.New([]string{"Computer Science", "Mechanical"}),
		fixedClock(testNow),
	)

	form := validRegistration()
	form.Department = "  computer SCIENCE "
	reg, err := svc.Register(context.Background(), "a", form)
	require.NoError(t, err)
	assert.Equal(t, "Computer Science", reg.Department)
	assert.Equal(t, "Computer Science", regRepo.registrations[0].Department)
}

func TestRegisterSequentialDuplicatesAreStored(t *testing.T) {
	svc, repo := newRegistrationFixture()

	_, err := svc.Register(context.Background(), "a", validRegistration())
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "a", validRegistration())
	require.NoError(t, err)

	assert.Equal(t, 2, repo.createCalls)
}

func TestLookupByEmail(t *testing.T) {
	svc, repo := newRegistrationFixture()
	_, err := svc.Register(context.Background(), "a", validRegistration())
	require.NoError(t, err)

	other := validRegistration()
	other.Email = "john@college.edu"
	_, err = svc.Register(context.Background(), "a", other)
	require.NoError(t, err)

	found, err := svc.LookupByEmail(context.Background(), " JANE@college.edu")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "jane@college.edu", found[0].Email)
	require.NotNil(t, found[0].Tournament)
	assert.Equal(t, "Chess Open", found[0].Tournament.Title)
	assert.Equal(t, 1, repo.emailQueries)
}

func TestLookupByEmptyEmailSkipsStore(t *testing.T) {
	svc, repo := newRegistrationFixture()

	for _, email := range []string{"", "   "} {
		found, err := svc.LookupByEmail(context.Background(), email)
		require.NoError(t, err)
		assert.NotNil(t, found)
		assert.Empty(t, found)
	}
	assert.Equal(t, 0, repo.emailQueries)
}

func TestRoster(t *testing.T) {
	svc, _ := newRegistrationFixture()
	first := validRegistration()
	second := validRegistration()
	second.Email = "john@college.edu"
	second.StudentName = "John Roe"

	_, err := svc.Register(context.Background(), "a", first)
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "a", second)
	require.NoError(t, err)

	roster, err := svc.Roster(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "Chess Open", roster.Tournament.Title)
	assert.Equal(t, 2, roster.Count)
	assert.Equal(t, "John Roe", roster.Registrations[0].StudentName)

	_, err = svc.Roster(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}
