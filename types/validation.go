package types

import (
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
)

func CategoryValidation(fl validator.FieldLevel) bool {
	_, ok := CategoryFromName(fl.Field().String())
	return ok
}

func LocaleValidation(fl validator.FieldLevel) bool {
	_, err := language.Parse(fl.Field().String())
	return err == nil
}

func ValueKindValidation(fl validator.FieldLevel) bool {
	_, ok := ValueKindFromName(fl.Field().String())
	return ok
}

func RegisterTypeValidation(v *validator.Validate) {
	v.RegisterValidation("category", CategoryValidation)
	v.RegisterValidation("locale", LocaleValidation)
	v.RegisterValidation("valuekind", ValueKindValidation)
}
