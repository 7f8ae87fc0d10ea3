package school

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/aimforms/core"
)

var (
	syllabusTag  = "syllabus"
	syllabusText = "must be one of " + strings.Join(Syllabi, ", ")
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(syllabusTag, syllabusValidation)
	core.RegisterCustomTranslation(validate, translator, syllabusTag, syllabusText)
}

func syllabusValidation(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	for _, s := range Syllabi {
		if s == v {
			return true
		}
	}
	return false
}
