package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/campus-tournaments/models"
	"github.com/Dosada05/campus-tournaments/repositories"
	"github.com/Dosada05/campus-tournaments/storage"
)

var errStoreDown = errors.New("store unavailable")

type fakeTournamentRepo struct {
	mu          sync.Mutex
	tournaments map[string]models.Tournament
	seq         int
	failWrites  bool
	createCalls int
}

func newFakeTournamentRepo(ts ...models.Tournament) *fakeTournamentRepo {
	r := &fakeTournamentRepo{tournaments: make(map[string]models.Tournament)}
	for _, t := range ts {
		r.tournaments[t.ID] = t
	}
	return r
}

func (r *fakeTournamentRepo) Create(_ context.Context, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.failWrites {
		return errStoreDown
	}
	r.seq++
	t.ID = fmt.Sprintf("t-%d", r.seq)
	t.CreatedAt = time.Date(2026, 1, 1, 0, 0, r.seq, 0, time.UTC)
	r.tournaments[t.ID] = *t
	return nil
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, id string) (*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return &t, nil
}

func (r *fakeTournamentRepo) List(_ context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		switch filter.Order {
		case repositories.OrderByDateDesc:
			return out[i].Date.After(out[j].Date)
		case repositories.OrderByCreatedDesc:
			return out[i].CreatedAt.After(out[j].CreatedAt)
		default:
			return out[i].Date.Before(out[j].Date)
		}
	})
	return out, nil
}

func (r *fakeTournamentRepo) Update(_ context.Context, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return errStoreDown
	}
	old, ok := r.tournaments[t.ID]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.CreatedAt = old.CreatedAt
	r.tournaments[t.ID] = *t
	return nil
}

func (r *fakeTournamentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

type fakeRegistrationRepo struct {
	mu            sync.Mutex
	registrations []models.Registration
	titles        map[string]string
	createCalls   int
	emailQueries  int
	createDelay   time.Duration
	createStarted chan struct{}
}

func (r *fakeRegistrationRepo) Create(ctx context.Context, reg *models.Registration) error {
	if r.createStarted != nil {
		r.createStarted <- struct{}{}
	}
	if r.createDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.createDelay):
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	reg.ID = fmt.Sprintf("r-%d", r.createCalls)
	reg.CreatedAt = time.Date(2026, 2, 1, 10, 0, r.createCalls, 0, time.UTC)
	r.registrations = append(r.registrations, *reg)
	return nil
}

func (r *fakeRegistrationRepo) ListByTournament(_ context.Context, tournamentID string) ([]models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Registration, 0)
	for i := len(r.registrations) - 1; i >= 0; i-- {
		if r.registrations[i].TournamentID == tournamentID {
			out = append(out, r.registrations[i])
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) ListByEmail(_ context.Context, email string) ([]models.RegistrationWithTournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emailQueries++
	out := make([]models.RegistrationWithTournament, 0)
	for _, reg := range r.registrations {
		if reg.Email != email {
			continue
		}
		item := models.RegistrationWithTournament{Registration: reg}
		if title, ok := r.titles[reg.TournamentID]; ok {
			item.Tournament = &models.TournamentSummary{Title: title}
		}
		out = append(out, item)
	}
	return out, nil
}

type fakeLeaderboardRepo struct {
	mu      sync.Mutex
	entries []models.LeaderboardEntry
	known   map[string]bool
	seq     int
}

func (r *fakeLeaderboardRepo) Create(_ context.Context, e *models.LeaderboardEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.known != nil && !r.known[e.TournamentID] {
		return repositories.ErrTournamentNotFound
	}
	r.seq++
	e.ID = fmt.Sprintf("e-%d", r.seq)
	r.entries = append(r.entries, *e)
	return nil
}

func (r *fakeLeaderboardRepo) ListByTournament(_ context.Context, tournamentID string) ([]models.LeaderboardEntry, error) {
	all, _ := r.ListAll(context.Background())
	out := make([]models.LeaderboardEntry, 0)
	for _, e := range all {
		if e.TournamentID == tournamentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeLeaderboardRepo) ListAll(_ context.Context) ([]models.LeaderboardEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]models.LeaderboardEntry(nil), r.entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

func (r *fakeLeaderboardRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return repositories.ErrLeaderboardEntryNotFound
}

type fakeUploader struct {
	keys    []string
	content []byte
	err     error
}

func (u *fakeUploader) Upload(_ context.Context, key, _ string, reader io.Reader) (*storage.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	b, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.keys = append(u.keys, key)
	u.content = b
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.edu/" + key
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
