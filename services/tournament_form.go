package services

import (
	"fmt"

	"github.com/Dosada05/campus-tournaments/models"
	"github.com/Dosada05/campus-tournaments/validation"
)

// FormState: состояние формы создания/редактирования турнира.
type FormState string

const (
	FormEditing           FormState = "editing"
	FormSubmitting        FormState = "submitting"
	FormSuccess           FormState = "success"
	FormEditingWithErrors FormState = "editing_with_errors"
)

// Из success переходов нет: чтобы начать заново, нужна новая форма.
var formTransitions = map[FormState][]FormState{
	FormEditing:           {FormSubmitting},
	FormSubmitting:        {FormSuccess, FormEditingWithErrors},
	FormEditingWithErrors: {FormSubmitting},
	FormSuccess:           {},
}

func (s FormState) CanTransitionTo(next FormState) bool {
	for _, allowed := range formTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// FormFlow отслеживает одно прохождение формы.
type FormFlow struct {
	state FormState
}

func NewFormFlow() *FormFlow {
	return &FormFlow{state: FormEditing}
}

func (f *FormFlow) State() FormState {
	return f.state
}

func (f *FormFlow) Transition(next FormState) error {
	if !f.state.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidFormTransition, f.state, next)
	}
	f.state = next
	return nil
}

// FormOutcome: результат отправки формы. Form всегда содержит нормализованные поля,
// чтобы клиент мог показать их повторно.
type FormOutcome struct {
	State      FormState              `json:"state"`
	Form       models.TournamentForm  `json:"form"`
	Errors     validation.FieldErrors `json:"errors,omitempty"`
	Tournament *models.TournamentView `json:"tournament,omitempty"`
}
