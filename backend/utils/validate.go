package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct проверяет структуру запроса и возвращает карту ошибок
// (поле -> правило) или nil, если все поля валидны.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		field := strings.ToLower(fe.Field())
		if fe.Param() != "" {
			errs[field] = "failed on '" + fe.Tag() + "=" + fe.Param() + "'"
		} else {
			errs[field] = "failed on '" + fe.Tag() + "'"
		}
	}
	return errs
}
