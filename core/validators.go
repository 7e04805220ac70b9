package core

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
)

var (
	// custom validation tags & texts
	personNameTag   = "personname"
	personNameText  = "only letters, spaces, hyphens and apostrophes are allowed"
	personNameRegex = regexp.MustCompile(`^\p{L}[\p{L}\p{M} '\-]*$`)

	noDelimTag  = "nodelim"
	noDelimText = "this field cannot be blank or contain line breaks, ':' or '|'"

	strictIDTag  = "strictid"
	strictIDText = "ID must look like {0}000 (prefix and three digits)"

	requiredTag  = "required"
	requiredText = "this field is required"
)

// Validator checks records against their `validate` struct tags and reports translated field errors.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewValidator returns a ready Validator. When strictIDs is set, fields tagged `strictid=XX`
// must also match XX followed by three digits.
func NewValidator(strictIDs bool) *Validator {
	validate := validator.New()
	translator := newTranslator()
	InitValidators(validate, translator, strictIDs)
	return &Validator{validate: validate, translator: translator}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator, strictIDs bool) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(personNameTag, personNameValidation)
	RegisterCustomTranslation(validate, translator, personNameTag, personNameText)

	_ = validate.RegisterValidation(noDelimTag, noDelimValidation)
	RegisterCustomTranslation(validate, translator, noDelimTag, noDelimText)

	_ = validate.RegisterValidation(strictIDTag, strictIDValidation(strictIDs))
	_ = validate.RegisterTranslation(
		strictIDTag, translator,
		func(t ut.Translator) error { return t.Add(strictIDTag, strictIDText, false) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(strictIDTag, fe.Param())
			return s
		},
	)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// RegisterValidation adds a field-level tag with its error text.
func (v *Validator) RegisterValidation(tag, text string, fn validator.Func) {
	_ = v.validate.RegisterValidation(tag, fn)
	RegisterCustomTranslation(v.validate, v.translator, tag, text)
}

// RegisterStructValidation adds struct-level checks for the given types.
// Tags reported through sl.ReportError need a text registered with RegisterTranslation.
func (v *Validator) RegisterStructValidation(fn validator.StructLevelFunc, types ...interface{}) {
	v.validate.RegisterStructValidation(fn, types...)
}

func (v *Validator) RegisterTranslation(tag, text string) {
	RegisterCustomTranslation(v.validate, v.translator, tag, text)
}

// Struct validates s and converts failures into a *ValidationError.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validating struct")
	}
	flds := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		flds = append(flds, FieldError{Field: fe.Field(), Error: fe.Translate(v.translator)})
	}
	return NewValidationError(nil, flds...)
}

// Custom Global Validators

// personNameValidation allows letters of any script, spaces, hyphens and apostrophes.
func personNameValidation(fl validator.FieldLevel) bool {
	return personNameRegex.MatchString(fl.Field().String())
}

// noDelimValidation rejects blank values and characters that break the line-based data files.
func noDelimValidation(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return strings.TrimSpace(s) != "" && !strings.ContainsAny(s, "\r\n:|")
}

func strictIDValidation(strict bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		if !strict {
			return true
		}
		id := fl.Field().String()
		re, err := regexp.Compile(fmt.Sprintf(`^%s\d{3}$`, regexp.QuoteMeta(fl.Param())))
		if err != nil {
			return false
		}
		return re.MatchString(id)
	}
}
