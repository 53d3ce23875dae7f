package services

import (
	"errors"

	"github.com/Dosada05/campus-tournaments/validation"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден
	ErrTournamentNotFound       = errors.New("tournament not found")
	ErrLeaderboardEntryNotFound = errors.New("leaderboard entry not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed      = errors.New("validation failed")
	ErrRegistrationNotOpen   = errors.New("tournament registration is not open")
	ErrNothingToExport       = errors.New("no registrations to export")
	ErrInvalidFormTransition = errors.New("invalid form state transition")

	// Ошибки аутентификации
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError несёт ошибки по полям; errors.Is(err, ErrValidationFailed) для него истинно.
type ValidationError struct {
	Fields validation.FieldErrors
}

func (e *ValidationError) Error() string {
	return ErrValidationFailed.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
