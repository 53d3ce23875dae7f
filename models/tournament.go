package models

import "time"

// TournamentStatus: статус, который выставляет администратор.
type TournamentStatus string

const (
	StatusOpen   TournamentStatus = "open"
	StatusClosed TournamentStatus = "closed"
)

func (s TournamentStatus) Valid() bool {
	return s == StatusOpen || s == StatusClosed
}

// TeamSize: формат участия.
type TeamSize string

const (
	TeamSizeIndividual TeamSize = "individual"
	TeamSizeTeam       TeamSize = "team"
)

func (s TeamSize) Valid() bool {
	return s == TeamSizeIndividual || s == TeamSizeTeam
}

// Tournament представляет турнир.
type Tournament struct {
	ID                   string           `json:"id" db:"id"`
	Title                string           `json:"title" db:"title"`
	Sport                string           `json:"sport" db:"sport"`
	Description          string           `json:"description" db:"description"`
	Date                 time.Time        `json:"date" db:"date"`
	Venue                string           `json:"venue" db:"venue"`
	RegistrationDeadline time.Time        `json:"registration_deadline" db:"registration_deadline"`
	TeamSize             TeamSize         `json:"team_size" db:"team_size"`
	Status               TournamentStatus `json:"status" db:"status"`
	CreatedAt            time.Time        `json:"created_at" db:"created_at"`
}

// Availability вычисляет производное состояние турнира на момент now.
func (t Tournament) Availability(now time.Time) Availability {
	return Evaluate(t.Status, t.RegistrationDeadline, now)
}

// TournamentView: турнир вместе с производным состоянием и темой оформления.
type TournamentView struct {
	Tournament
	Availability Availability `json:"availability"`
	Theme        Theme        `json:"theme"`
}

func NewTournamentView(t Tournament, now time.Time) TournamentView {
	return TournamentView{
		Tournament:   t,
		Availability: t.Availability(now),
		Theme:        ThemeForSport(t.Sport),
	}
}

// TournamentForm: поля формы создания/редактирования в том виде, в котором их присылает клиент.
type TournamentForm struct {
	Title                    string `json:"title"`
	Sport                    string `json:"sport"`
	Description              string `json:"description"`
	Date                     string `json:"date"`
	Time                     string `json:"time"`
	Venue                    string `json:"venue"`
	RegistrationDeadlineDate string `json:"registration_deadline_date"`
	RegistrationDeadlineTime string `json:"registration_deadline_time"`
	TeamSize                 string `json:"team_size"`
	Status                   string `json:"status"`
}

const (
	FormDateLayout = "2006-01-02"
	FormTimeLayout = "15:04"
)

// FormFromTournament раскладывает сохранённый турнир обратно на поля формы (для редактирования).
func FormFromTournament(t Tournament, loc *time.Location) TournamentForm {
	if loc == nil {
		loc = time.UTC
	}
	date := t.Date.In(loc)
	deadline := t.RegistrationDeadline.In(loc)
	return TournamentForm{
		Title:                    t.Title,
		Sport:                    t.Sport,
		Description:              t.Description,
		Date:                     date.Format(FormDateLayout),
		Time:                     date.Format(FormTimeLayout),
		Venue:                    t.Venue,
		RegistrationDeadlineDate: deadline.Format(FormDateLayout),
		RegistrationDeadlineTime: deadline.Format(FormTimeLayout),
		TeamSize:                 string(t.TeamSize),
		Status:                   string(t.Status),
	}
}

// DashboardStats: счётчики панели администратора.
type DashboardStats struct {
	Total  int `json:"total"`
	Open   int `json:"open"`
	Closed int `json:"closed"`
}
