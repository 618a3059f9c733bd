// Package form implements the login, registration, and forgot-password forms:
// field validation with localized messages and the login state machine.
package form

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"

	"dochub/internal/i18n"
	"dochub/internal/identity"
	dErrors "dochub/pkg/domain-errors"
)

// Field names as the portal front end knows them.
const (
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldNationalID      = "nationalId"
	FieldPassword        = "password"
	FieldFullName        = "fullName"
	FieldConfirmPassword = "confirmPassword"
	FieldRole            = "role"
	FieldMethod          = "method"
	FieldIdentifier      = "identifier"
)

const (
	MinPasswordLen = 6
	MaxFullNameLen = 128
)

// FieldErrors maps a field name to its localized message.
type FieldErrors map[string]string

// Err turns non-empty field errors into a validation error.
func (fe FieldErrors) Err(lang i18n.Language) error {
	if len(fe) == 0 {
		return nil
	}
	msg := "Please correct the highlighted fields"
	if lang == i18n.Nepali {
		msg = "कृपया चिन्ह लगाइएका विवरणहरू सच्याउनुहोस्"
	}
	return dErrors.WithFields(dErrors.CodeValidation, msg, fe)
}

func fieldFor(m identity.Method) string {
	switch m {
	case identity.MethodPhone:
		return FieldPhone
	case identity.MethodNationalID:
		return FieldNationalID
	default:
		return FieldEmail
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// identifierError checks presence on the trimmed value and format on the raw one.
func identifierError(lang i18n.Language, m identity.Method, value string) (string, bool) {
	var required, invalid i18n.Key
	switch m {
	case identity.MethodEmail:
		required, invalid = i18n.EmailRequired, i18n.EmailInvalid
	case identity.MethodPhone:
		required, invalid = i18n.PhoneRequired, i18n.PhoneInvalid
	case identity.MethodNationalID:
		required, invalid = i18n.NationalIDRequired, i18n.NationalIDInvalid
	default:
		return "", false
	}
	if blank(value) {
		return i18n.T(lang, required), true
	}
	if !identity.Validate(m, value) {
		return i18n.T(lang, invalid), true
	}
	return "", false
}

func passwordError(lang i18n.Language, password string) (string, bool) {
	if blank(password) {
		return i18n.T(lang, i18n.PasswordRequired), true
	}
	if utf8.RuneCountInString(password) < MinPasswordLen {
		return i18n.T(lang, i18n.PasswordTooShort), true
	}
	return "", false
}

func fullNameError(lang i18n.Language, name string) (string, bool) {
	if blank(name) {
		return i18n.T(lang, i18n.FullNameRequired), true
	}
	if !govalidator.StringLength(strings.TrimSpace(name), "1", strconv.Itoa(MaxFullNameLen)) {
		return i18n.T(lang, i18n.FullNameTooLong), true
	}
	return "", false
}
