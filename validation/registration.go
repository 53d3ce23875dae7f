package validation

import (
	"strings"

	"github.com/Dosada05/campus-tournaments/models"
)

type registrationInput struct {
	StudentName string `json:"student_name" validate:"required"`
	Email       string `json:"email" validate:"required,campusemail"`
	CollegeID   string `json:"college_id" validate:"required"`
	Department  string `json:"department" validate:"required,department"`
	Year        string `json:"year" validate:"required"`
	Phone       string `json:"phone" validate:"required,phone10"`
}

// TrimRegistration убирает пробелы по краям всех полей формы.
func TrimRegistration(form models.RegistrationForm) models.RegistrationForm {
	return models.RegistrationForm{
		StudentName: strings.TrimSpace(form.StudentName),
		Email:       strings.TrimSpace(form.Email),
		CollegeID:   strings.TrimSpace(form.CollegeID),
		Department:  strings.TrimSpace(form.Department),
		Year:        strings.TrimSpace(form.Year),
		Phone:       strings.TrimSpace(form.Phone),
	}
}

// Registration проверяет снимок формы регистрации. Нет сетевых вызовов, результат детерминирован.
func (val *Validator) Registration(form models.RegistrationForm) FieldErrors {
	f := TrimRegistration(form)
	return val.fieldErrors(registrationInput{
		StudentName: f.StudentName,
		Email:       f.Email,
		CollegeID:   f.CollegeID,
		Department:  f.Department,
		Year:        f.Year,
		Phone:       f.Phone,
	})
}
