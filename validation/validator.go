package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Dosada05/campus-tournaments/utils"
)

const (
	MsgRequired      = "Required"
	MsgInvalidFormat = "Invalid format"
	MsgInvalid       = "Invalid"
	MsgDeadlineOrder = "Registration deadline must be before tournament date"
)

// FieldErrors: ошибки по полям формы; отсутствие ключа означает, что поле валидно.
type FieldErrors map[string]string

func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

func (fe FieldErrors) add(field, msg string) {
	if _, exists := fe[field]; !exists {
		fe[field] = msg
	}
}

// Validator держит настроенный *validator.Validate; безопасен для конкурентного использования.
type Validator struct {
	v           *validator.Validate
	departments map[string]string // нижний регистр -> написание из конфигурации
}

// New регистрирует пользовательские теги. Пустой список departments означает свободный ввод.
func New(departments []string) *Validator {
	val := &Validator{
		v:           validator.New(validator.WithRequiredStructEnabled()),
		departments: make(map[string]string, len(departments)),
	}
	for _, d := range departments {
		d = strings.TrimSpace(d)
		val.departments[strings.ToLower(d)] = d
	}

	val.v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = val.v.RegisterValidation("campusemail", validateEmail)
	_ = val.v.RegisterValidation("phone10", validatePhone)
	_ = val.v.RegisterValidation("department", val.validateDepartment)

	return val
}

func validateEmail(fl validator.FieldLevel) bool {
	return utils.IsValidEmail(fl.Field().String())
}

func validatePhone(fl validator.FieldLevel) bool {
	return len(utils.DigitsOnly(fl.Field().String())) == 10
}

func (val *Validator) validateDepartment(fl validator.FieldLevel) bool {
	if len(val.departments) == 0 {
		return true
	}
	_, ok := val.departments[strings.ToLower(fl.Field().String())]
	return ok
}

// CanonicalDepartment возвращает написание из списка DEPARTMENTS, если значение в нём есть
// (без учёта регистра). Иначе значение возвращается как есть.
func (val *Validator) CanonicalDepartment(department string) string {
	if canonical, ok := val.departments[strings.ToLower(strings.TrimSpace(department))]; ok {
		return canonical
	}
	return department
}

func (val *Validator) fieldErrors(s any) FieldErrors {
	errs := FieldErrors{}
	err := val.v.Struct(s)
	if err == nil {
		return errs
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		errs.add("form", MsgInvalid)
		return errs
	}
	for _, fe := range vErrs {
		errs.add(fe.Field(), messageFor(fe.Tag()))
	}
	return errs
}

func messageFor(tag string) string {
	switch tag {
	case "required":
		return MsgRequired
	case "campusemail", "datetime":
		return MsgInvalidFormat
	default:
		return MsgInvalid
	}
}
