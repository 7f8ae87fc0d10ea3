package course

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/aimforms/core"
)

var (
	gradeTag  = "grade"
	gradeText = "must be a grade between 6th and 12th"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(gradeTag, gradeValidation)
	core.RegisterCustomTranslation(validate, translator, gradeTag, gradeText)
}

func gradeValidation(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	for _, g := range Grades {
		if g == v {
			return true
		}
	}
	return false
}
