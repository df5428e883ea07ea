// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations "собирает" все наши кастомные правила валидации
// и регистрирует их в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("notblank", isNotBlank); err != nil {
		return err
	}
	if err := v.RegisterValidation("status_mark", isStatusMark); err != nil {
		return err
	}

	return nil
}

// isNotBlank — строка не пустая после обрезки пробелов. Обычный required
// пропускает строки из одних пробелов.
func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// isStatusMark — допустимое значение отметки Own/Rental: "✓" или "-".
func isStatusMark(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "✓" || s == "-"
}
