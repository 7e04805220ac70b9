package user

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/Vane487/kursovarobota/core"
)

var (
	roleTag  = "role"
	roleText = "role must be Student, Teacher or Admin"

	usernameTag  = "username"
	usernameText = "username cannot contain whitespace or ':'"

	// password policy
	pwdMinLen     = 6
	pwdMinLenTag  = "pwdminlen"
	pwdMinLenText = fmt.Sprintf("password must contain at least %d characters", pwdMinLen)

	pwdNoSpaceTag  = "pwdnospace"
	pwdNoSpaceText = "password must not contain whitespace"

	pwdComplexityTag  = "pwdcplx"
	pwdComplexityText = "password must contain at least 1 letter and 1 digit"
)

// InitValidators registers the account tags and the password policy on v.
func InitValidators(v *core.Validator) {
	v.RegisterValidation(roleTag, roleText, roleValidation)
	v.RegisterValidation(usernameTag, usernameText, usernameValidation)

	v.RegisterStructValidation(userStructValidation, NewUser{}, UpdateUser{})
	v.RegisterTranslation(pwdMinLenTag, pwdMinLenText)
	v.RegisterTranslation(pwdNoSpaceTag, pwdNoSpaceText)
	v.RegisterTranslation(pwdComplexityTag, pwdComplexityText)
}

// Custom Validators

func roleValidation(fl validator.FieldLevel) bool {
	if role, ok := fl.Field().Interface().(Role); ok {
		return role.Valid()
	}
	return false
}

func usernameValidation(fl validator.FieldLevel) bool {
	uname := fl.Field().String()
	return !strings.ContainsRune(uname, ':') && strings.IndexFunc(uname, unicode.IsSpace) < 0
}

// userStructValidation does struct level validation on NewUser and UpdateUser structs.
func userStructValidation(sl validator.StructLevel) {
	switch usr := sl.Current().Interface().(type) {
	case NewUser:
		if usr.Password != "" {
			validatePassword(usr.Password, sl)
		}
	case UpdateUser:
		if usr.Password != "" {
			validatePassword(usr.Password, sl)
		}
	}
}

// validatePassword applies the password policy to provided password:
// - minLen: 6
// - no whitespace
// - complexity: 1 letter, 1 digit
func validatePassword(pwd string, sl validator.StructLevel) {
	reportErr := func(tag string) {
		sl.ReportError(pwd, "password", "Password", tag, "")
	}

	if len([]rune(pwd)) < pwdMinLen {
		reportErr(pwdMinLenTag)
		return
	}

	var hasLetter, hasDigit bool
	for _, char := range pwd {
		if unicode.IsSpace(char) {
			reportErr(pwdNoSpaceTag)
			return
		}
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !(hasLetter && hasDigit) {
		reportErr(pwdComplexityTag)
	}
}
