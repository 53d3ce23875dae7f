package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/campus-tournaments/models"
	"github.com/Dosada05/campus-tournaments/validation"
)

func newLeaderboardFixture() (LeaderboardService, *fakeLeaderboardRepo) {
	repo := &fakeLeaderboardRepo{known: map[string]bool{"a": true, "b": true, "c": true}}
	svc := NewLeaderboardService(
		newFakeTournamentRepo(seedTournaments()...),
		repo,
		validation.New(nil),
		fixedClock(testNow),
	)
	return svc, repo
}

func addEntries(t *testing.T, svc LeaderboardService, tournamentID string, names ...string) {
	t.Helper()
	for i, name := range names {
		_, err := svc.AddEntry(context.Background(), tournamentID, models.LeaderboardEntryForm{
			Rank: i + 1, ParticipantName: name, Score: "10",
		})
		require.NoError(t, err)
	}
}

func TestPublicLeaderboardsGroupedByTournament(t *testing.T) {
	svc, _ := newLeaderboardFixture()
	addEntries(t, svc, "a", "Alice", "Bob", "Carol", "Dan", "Eve")
	addEntries(t, svc, "c", "Zed")

	boards, err := svc.Public(context.Background())
	require.NoError(t, err)
	require.Len(t, boards, 2)

	// a позже c, поэтому идёт первым; у b нет записей.
	assert.Equal(t, "a", boards[0].Tournament.ID)
	assert.Equal(t, "c", boards[1].Tournament.ID)

	assert.Len(t, boards[0].Entries, 5)
	assert.Len(t, boards[0].Podium, models.PodiumSize)
	assert.Equal(t, 2, boards[0].MoreCount)
	assert.Equal(t, "Alice", boards[0].Podium[0].ParticipantName)
	assert.Equal(t, 0, boards[1].MoreCount)
}

func TestForTournament(t *testing.T) {
	svc, _ := newLeaderboardFixture()
	addEntries(t, svc, "a", "Alice", "Bob")

	board, err := svc.ForTournament(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "Chess Open", board.Tournament.Title)
	assert.Len(t, board.Entries, 2)

	_, err = svc.ForTournament(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestAddEntryValidation(t *testing.T) {
	svc, repo := newLeaderboardFixture()

	_, err := svc.AddEntry(context.Background(), "a", models.LeaderboardEntryForm{Rank: 0, ParticipantName: "  "})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, validation.MsgRequired, vErr.Fields["rank"])
	assert.Equal(t, validation.MsgRequired, vErr.Fields["participant_name"])
	assert.Empty(t, repo.entries)

	_, err = svc.AddEntry(context.Background(), "ghost", models.LeaderboardEntryForm{Rank: 1, ParticipantName: "Alice"})
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestAddEntryTrimsFields(t *testing.T) {
	svc, _ := newLeaderboardFixture()

	entry, err := svc.AddEntry(context.Background(), "a", models.LeaderboardEntryForm{
		Rank: 1, ParticipantName: " Team Titans ", Score: " 120 ", Achievement: " MVP ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Team Titans", entry.ParticipantName)
	assert.Equal(t, "120", entry.Score)
	assert.Equal(t, "MVP", entry.Achievement)
}

func TestDeleteEntry(t *testing.T) {
	svc, _ := newLeaderboardFixture()
	entry, err := svc.AddEntry(context.Background(), "a", models.LeaderboardEntryForm{Rank: 1, ParticipantName: "Alice"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEntry(context.Background(), entry.ID))
	assert.ErrorIs(t, svc.DeleteEntry(context.Background(), entry.ID), ErrLeaderboardEntryNotFound)
}
