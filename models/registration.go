package models

import "time"

type Registration struct {
	ID           string    `json:"id" db:"id"`
	TournamentID string    `json:"tournament_id" db:"tournament_id"`
	StudentName  string    `json:"student_name" db:"student_name"`
	Email        string    `json:"email" db:"email"`
	CollegeID    string    `json:"college_id" db:"college_id"`
	Department   string    `json:"department" db:"department"`
	Year         string    `json:"year" db:"year"`
	Phone        string    `json:"phone" db:"phone"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// TournamentSummary: поля турнира, которые подтягиваются вместе с регистрацией.
type TournamentSummary struct {
	Title string    `json:"title"`
	Sport string    `json:"sport"`
	Date  time.Time `json:"date"`
	Venue string    `json:"venue"`
}

// RegistrationWithTournament: регистрация с родительским турниром (nil, если турнир уже удалён).
type RegistrationWithTournament struct {
	Registration
	Tournament *TournamentSummary `json:"tournament"`
}

// RegistrationForm: снимок полей публичной формы регистрации.
type RegistrationForm struct {
	StudentName string `json:"student_name"`
	Email       string `json:"email"`
	CollegeID   string `json:"college_id"`
	Department  string `json:"department"`
	Year        string `json:"year"`
	Phone       string `json:"phone"`
}
