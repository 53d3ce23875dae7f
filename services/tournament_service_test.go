package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/campus-tournaments/models"
	"github.com/Dosada05/campus-tournaments/validation"
)

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func validForm() models.TournamentForm {
	return models.TournamentForm{
		Title:                    "  Inter-College Cricket Cup ",
		Sport:                    "Cricket",
		Description:              "T20 knockout",
		Date:                     "2026-11-20",
		Time:                     "09:30",
		Venue:                    "Main Ground",
		RegistrationDeadlineDate: "2026-11-10",
		RegistrationDeadlineTime: "18:00",
	}
}

func seedTournaments() []models.Tournament {
	return []models.Tournament{
		{
			ID: "a", Title: "Chess Open", Sport: "Chess", Status: models.StatusOpen,
			Date: testNow.AddDate(0, 1, 0), RegistrationDeadline: testNow.Add(24 * time.Hour),
			CreatedAt: testNow.Add(-3 * time.Hour),
		},
		{
			ID: "b", Title: "Football League", Sport: "Football", Status: models.StatusClosed,
			Date: testNow.AddDate(0, 2, 0), RegistrationDeadline: testNow.AddDate(0, 1, 0),
			CreatedAt: testNow.Add(-2 * time.Hour),
		},
		{
			ID: "c", Title: "Blitz Chess Night", Sport: "Chess", Status: models.StatusOpen,
			Date: testNow.AddDate(0, 0, -3), RegistrationDeadline: testNow.AddDate(0, 0, -5),
			CreatedAt: testNow.Add(-1 * time.Hour),
		},
	}
}

func newTournamentService(repo *fakeTournamentRepo) TournamentService {
	return NewTournamentService(repo, validation.New(nil), time.UTC, fixedClock(testNow))
}

func ids(views []models.TournamentView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

func TestListPublicFilters(t *testing.T) {
	svc := newTournamentService(newFakeTournamentRepo(seedTournaments()...))
	ctx := context.Background()

	tests := []struct {
		name   string
		filter PublicListFilter
		want   []string
	}{
		{"no filter ordered by date", PublicListFilter{}, []string{"c", "a", "b"}},
		{"open tab", PublicListFilter{Tab: models.TabOpen}, []string{"a"}},
		{"closed tab includes expired", PublicListFilter{Tab: models.TabClosed}, []string{"c", "b"}},
		{"search matches sport case-insensitively", PublicListFilter{Search: "CHESS"}, []string{"c", "a"}},
		{"search matches title", PublicListFilter{Search: "league"}, []string{"b"}},
		{"sport filter", PublicListFilter{Sport: "Football"}, []string{"b"}},
		{"sport All means no filter", PublicListFilter{Sport: SportFilterAll}, []string{"c", "a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := svc.ListPublic(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(list.Tournaments))
			assert.Equal(t, []string{"All", "Chess", "Football"}, list.Sports)
		})
	}
}

func TestGetUnknownTournament(t *testing.T) {
	svc := newTournamentService(newFakeTournamentRepo())
	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestGetCarriesAvailabilityAndTheme(t *testing.T) {
	svc := newTournamentService(newFakeTournamentRepo(seedTournaments()...))
	view, err := svc.Get(context.Background(), "c")
	require.NoError(t, err)
	assert.Equal(t, models.LabelRegistrationEnded, view.Availability.Label)
	assert.Equal(t, models.ThemeForSport("Chess"), view.Theme)
}

func TestSubmitCreateSuccess(t *testing.T) {
	repo := newFakeTournamentRepo()
	svc := newTournamentService(repo)

	outcome, err := svc.SubmitCreate(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, FormSuccess, outcome.State)
	require.NotNil(t, outcome.Tournament)
	assert.Equal(t, "Inter-College Cricket Cup", outcome.Tournament.Title)
	assert.Equal(t, time.Date(2026, 11, 20, 9, 30, 0, 0, time.UTC), outcome.Tournament.Date)
	assert.Equal(t, models.TeamSizeIndividual, outcome.Tournament.TeamSize)
	assert.Equal(t, models.StatusOpen, outcome.Tournament.Status)
	assert.True(t, outcome.Tournament.Availability.CanRegister)
	assert.Len(t, repo.tournaments, 1)
}

func TestSubmitCreateValidationSkipsStore(t *testing.T) {
	repo := newFakeTournamentRepo()
	svc := newTournamentService(repo)

	form := validForm()
	form.RegistrationDeadlineDate = form.Date
	form.RegistrationDeadlineTime = form.Time

	outcome, err := svc.SubmitCreate(context.Background(), form)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, validation.MsgDeadlineOrder, vErr.Fields["registration_deadline_date"])
	assert.Equal(t, FormEditing, outcome.State)
	assert.Equal(t, 0, repo.createCalls)
}

func TestSubmitCreateStoreFailureKeepsForm(t *testing.T) {
	repo := newFakeTournamentRepo()
	repo.failWrites = true
	svc := newTournamentService(repo)

	outcome, err := svc.SubmitCreate(context.Background(), validForm())
	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, FormEditingWithErrors, outcome.State)
	assert.Equal(t, "Inter-College Cricket Cup", outcome.Form.Title)
	assert.Nil(t, outcome.Tournament)
	assert.Equal(t, 1, repo.createCalls)
}

func TestSubmitUpdate(t *testing.T) {
	repo := newFakeTournamentRepo(seedTournaments()...)
	svc := newTournamentService(repo)

	form := validForm()
	form.Status = "closed"
	form.TeamSize = "team"
	outcome, err := svc.SubmitUpdate(context.Background(), "a", form)
	require.NoError(t, err)
	assert.Equal(t, FormSuccess, outcome.State)
	assert.Equal(t, "a", outcome.Tournament.ID)
	assert.Equal(t, models.LabelClosed, outcome.Tournament.Availability.Label)
	assert.Equal(t, models.TeamSizeTeam, repo.tournaments["a"].TeamSize)

	_, err = svc.SubmitUpdate(context.Background(), "missing", validForm())
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestGetFormRoundTrip(t *testing.T) {
	repo := newFakeTournamentRepo()
	svc := newTournamentService(repo)

	created, err := svc.SubmitCreate(context.Background(), validForm())
	require.NoError(t, err)

	form, err := svc.GetForm(context.Background(), created.Tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, validation.NormalizeTournament(validForm()), form)
}

func TestDeleteTournament(t *testing.T) {
	repo := newFakeTournamentRepo(seedTournaments()...)
	svc := newTournamentService(repo)

	require.NoError(t, svc.Delete(context.Background(), "a"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "a"), ErrTournamentNotFound)
}

func TestFormFlowTransitions(t *testing.T) {
	flow := NewFormFlow()
	assert.Equal(t, FormEditing, flow.State())

	require.NoError(t, flow.Transition(FormSubmitting))
	require.NoError(t, flow.Transition(FormEditingWithErrors))
	require.NoError(t, flow.Transition(FormSubmitting))
	require.NoError(t, flow.Transition(FormSuccess))

	for _, next := range []FormState{FormEditing, FormSubmitting, FormEditingWithErrors} {
		assert.ErrorIs(t, flow.Transition(next), ErrInvalidFormTransition)
	}
	assert.Equal(t, FormSuccess, flow.State())
}

func TestFormFlowRejectsSkippingSubmit(t *testing.T) {
	flow := NewFormFlow()
	assert.ErrorIs(t, flow.Transition(FormSuccess), ErrInvalidFormTransition)
	assert.ErrorIs(t, flow.Transition(FormEditingWithErrors), ErrInvalidFormTransition)
}

func TestDashboardOverview(t *testing.T) {
	svc := NewDashboardService(newFakeTournamentRepo(seedTournaments()...), fixedClock(testNow))

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DashboardStats{Total: 3, Open: 1, Closed: 2}, overview.Stats)
	assert.Equal(t, []string{"c", "b", "a"}, ids(overview.Tournaments))
}
