package validation

import (
	"strings"
	"time"

	"github.com/Dosada05/campus-tournaments/models"
)

type tournamentInput struct {
	Title                    string `json:"title" validate:"required"`
	Sport                    string `json:"sport" validate:"required"`
	Description              string `json:"description" validate:"required"`
	Date                     string `json:"date" validate:"required,datetime=2006-01-02"`
	Time                     string `json:"time" validate:"required,datetime=15:04"`
	Venue                    string `json:"venue" validate:"required"`
	RegistrationDeadlineDate string `json:"registration_deadline_date" validate:"required,datetime=2006-01-02"`
	RegistrationDeadlineTime string `json:"registration_deadline_time" validate:"required,datetime=15:04"`
	TeamSize                 string `json:"team_size" validate:"oneof=individual team"`
	Status                   string `json:"status" validate:"oneof=open closed"`
}

// Schedule: даты турнира, собранные из полей формы.
type Schedule struct {
	Date                 time.Time
	RegistrationDeadline time.Time
}

// NormalizeTournament обрезает пробелы и подставляет значения по умолчанию для team_size и status.
func NormalizeTournament(form models.TournamentForm) models.TournamentForm {
	f := models.TournamentForm{
		Title:                    strings.TrimSpace(form.Title),
		Sport:                    strings.TrimSpace(form.Sport),
		Description:              strings.TrimSpace(form.Description),
		Date:                     strings.TrimSpace(form.Date),
		Time:                     strings.TrimSpace(form.Time),
		Venue:                    strings.TrimSpace(form.Venue),
		RegistrationDeadlineDate: strings.TrimSpace(form.RegistrationDeadlineDate),
		RegistrationDeadlineTime: strings.TrimSpace(form.RegistrationDeadlineTime),
		TeamSize:                 strings.TrimSpace(form.TeamSize),
		Status:                   strings.TrimSpace(form.Status),
	}
	if f.TeamSize == "" {
		f.TeamSize = string(models.TeamSizeIndividual)
	}
	if f.Status == "" {
		f.Status = string(models.StatusOpen)
	}
	return f
}

// Tournament проверяет форму турнира; дата и время объединяются в часовом поясе loc.
// Schedule заполнен только когда ошибок нет.
func (val *Validator) Tournament(form models.TournamentForm, loc *time.Location) (Schedule, FieldErrors) {
	if loc == nil {
		loc = time.UTC
	}
	f := NormalizeTournament(form)
	errs := val.fieldErrors(tournamentInput{
		Title:                    f.Title,
		Sport:                    f.Sport,
		Description:              f.Description,
		Date:                     f.Date,
		Time:                     f.Time,
		Venue:                    f.Venue,
		RegistrationDeadlineDate: f.RegistrationDeadlineDate,
		RegistrationDeadlineTime: f.RegistrationDeadlineTime,
		TeamSize:                 f.TeamSize,
		Status:                   f.Status,
	})

	date, dateOK := combine(f.Date, f.Time, loc)
	deadline, deadlineOK := combine(f.RegistrationDeadlineDate, f.RegistrationDeadlineTime, loc)
	if dateOK && deadlineOK && !deadline.Before(date) {
		errs.add("registration_deadline_date", MsgDeadlineOrder)
	}

	if !errs.Empty() {
		return Schedule{}, errs
	}
	return Schedule{Date: date, RegistrationDeadline: deadline}, errs
}

// combine собирает дату и время; пустое или кривое время считается полуночью.
func combine(date, clock string, loc *time.Location) (time.Time, bool) {
	d, err := time.ParseInLocation(models.FormDateLayout, date, loc)
	if err != nil {
		return time.Time{}, false
	}
	c, err := time.Parse(models.FormTimeLayout, clock)
	if err != nil {
		return d, true
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, loc), true
}
