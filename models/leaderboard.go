package models

import "time"

type LeaderboardEntry struct {
	ID              string    `json:"id" db:"id"`
	TournamentID    string    `json:"tournament_id" db:"tournament_id"`
	Rank            int       `json:"rank" db:"rank"`
	ParticipantName string    `json:"participant_name" db:"participant_name"`
	Score           string    `json:"score" db:"score"`
	Achievement     string    `json:"achievement,omitempty" db:"achievement"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

type LeaderboardEntryForm struct {
	Rank            int    `json:"rank"`
	ParticipantName string `json:"participant_name"`
	Score           string `json:"score"`
	Achievement     string `json:"achievement"`
}

// PodiumSize: сколько мест показывается на публичной странице до "ещё N участников".
const PodiumSize = 3

// TournamentLeaderboard: турнир с его рейтингом для публичной страницы.
type TournamentLeaderboard struct {
	Tournament TournamentView     `json:"tournament"`
	Entries    []LeaderboardEntry `json:"entries"`
	Podium     []LeaderboardEntry `json:"podium"`
	MoreCount  int                `json:"more_count"`
}

func NewTournamentLeaderboard(t TournamentView, entries []LeaderboardEntry) TournamentLeaderboard {
	podium := entries
	if len(podium) > PodiumSize {
		podium = podium[:PodiumSize]
	}
	return TournamentLeaderboard{
		Tournament: t,
		Entries:    entries,
		Podium:     podium,
		MoreCount:  len(entries) - len(podium),
	}
}
