package teacher

import (
	"github.com/go-playground/validator/v10"

	"github.com/Vane487/kursovarobota/core"
)

var (
	degreeTag  = "degree"
	degreeText = "degree must be Bachelor, Master or Doctor"
)

// InitValidators registers the teacher specific tags on v.
func InitValidators(v *core.Validator) {
	v.RegisterValidation(degreeTag, degreeText, degreeValidation)
}

func degreeValidation(fl validator.FieldLevel) bool {
	if d, ok := fl.Field().Interface().(Degree); ok {
		return d.Valid()
	}
	return false
}
