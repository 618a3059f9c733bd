package form

import (
	"dochub/internal/auth/models"
	"dochub/internal/i18n"
	"dochub/internal/identity"
)

// ValidateRegistration checks every field and returns all errors together.
// The national ID is only checked when the role requires one.
func ValidateRegistration(lang i18n.Language, reg models.Registration) FieldErrors {
	errs := FieldErrors{}

	if msg, bad := fullNameError(lang, reg.FullName); bad {
		errs[FieldFullName] = msg
	}
	if msg, bad := identifierError(lang, identity.MethodEmail, reg.Email); bad {
		errs[FieldEmail] = msg
	}
	if msg, bad := identifierError(lang, identity.MethodPhone, reg.Phone); bad {
		errs[FieldPhone] = msg
	}
	if reg.Role.RequiresNationalID() {
		if msg, bad := identifierError(lang, identity.MethodNationalID, reg.NationalID); bad {
			errs[FieldNationalID] = msg
		}
	}
	if msg, bad := passwordError(lang, reg.Password); bad {
		errs[FieldPassword] = msg
	}
	switch {
	case blank(reg.ConfirmPassword):
		errs[FieldConfirmPassword] = i18n.T(lang, i18n.ConfirmRequired)
	case reg.Password != reg.ConfirmPassword:
		errs[FieldConfirmPassword] = i18n.T(lang, i18n.PasswordMismatch)
	}
	if !reg.Role.Valid() {
		errs[FieldRole] = "unknown role"
	}
	return errs
}

// ValidateForgotPassword only requires a non-empty identifier.
func ValidateForgotPassword(lang i18n.Language, req models.ForgotPasswordRequest) FieldErrors {
	errs := FieldErrors{}
	if !req.Method.Valid() {
		errs[FieldMethod] = "unknown identification method"
	}
	if blank(req.Identifier) {
		errs[FieldIdentifier] = i18n.T(lang, i18n.ContactRequired)
	}
	return errs
}
