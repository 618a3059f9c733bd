package form

import (
	"context"
	"sync"

	"dochub/internal/auth/models"
	"dochub/internal/i18n"
	"dochub/internal/identity"
	dErrors "dochub/pkg/domain-errors"
)

// State of the login form.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateError      State = "error"
)

// Overlay is a modal that opens independently of the login state.
type Overlay string

const (
	OverlayForgotPassword Overlay = "forgotPassword"
	OverlayRegister       Overlay = "register"
)

// Authenticator verifies credentials. Failures carry dErrors codes:
// CodeUnauthorized for mismatches, CodeRateLimited when throttled.
type Authenticator interface {
	Authenticate(ctx context.Context, creds models.Credentials) (*models.AuthResult, error)
}

// Login is the login form. Values typed for each identification method are
// kept when the user switches methods; only the active one is validated.
type Login struct {
	mu         sync.Mutex
	lang       i18n.Language
	state      State
	method     identity.Method
	role       models.Role
	values     map[identity.Method]string
	password   string
	rememberMe bool
	errors     FieldErrors
	banner     string
	overlays   map[Overlay]bool
}

func NewLogin(lang i18n.Language) *Login {
	if !lang.Valid() {
		lang = i18n.Default
	}
	return &Login{
		lang:     lang,
		state:    StateIdle,
		method:   identity.MethodEmail,
		role:     models.RoleCitizen,
		values:   make(map[identity.Method]string, len(identity.Methods)),
		errors:   FieldErrors{},
		overlays: map[Overlay]bool{},
	}
}

func (f *Login) SetLanguage(lang i18n.Language) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if lang.Valid() {
		f.lang = lang
	}
}

// SelectMethod switches the active identification method.
func (f *Login) SelectMethod(m identity.Method) error {
	if !m.Valid() {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown identification method")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.method = m
	return nil
}

func (f *Login) SelectRole(r models.Role) error {
	if !r.Valid() {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown role")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.role = r
	return nil
}

// SetIdentifier stores value for the active method as typed.
func (f *Login) SetIdentifier(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[f.method] = value
	f.clearFieldLocked(fieldFor(f.method))
}

// TypeIdentifier applies the field's input mask before storing: the phone
// mask rejects anything but up to ten digits, the national ID is regrouped.
func (f *Login) TypeIdentifier(value string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.method {
	case identity.MethodPhone:
		value = identity.SanitizePhoneInput(f.values[f.method], value)
	case identity.MethodNationalID:
		value = identity.FormatNationalID(value)
	}
	f.values[f.method] = value
	f.clearFieldLocked(fieldFor(f.method))
	return value
}

func (f *Login) SetPassword(password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.password = password
	f.clearFieldLocked(FieldPassword)
}

func (f *Login) SetRememberMe(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rememberMe = v
}

// clearFieldLocked drops one field error and the banner. Caller holds f.mu.
func (f *Login) clearFieldLocked(field string) {
	delete(f.errors, field)
	f.banner = ""
	if f.state == StateError && len(f.errors) == 0 {
		f.state = StateIdle
	}
}

func (f *Login) OpenOverlay(o Overlay) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overlays[o] = true
}

func (f *Login) CloseOverlay(o Overlay) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.overlays, o)
}

func (f *Login) IsOpen(o Overlay) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.overlays[o]
}

// Validate checks the active identifier and the password.
func (f *Login) Validate() FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *Login) validateLocked() FieldErrors {
	errs := FieldErrors{}
	if msg, bad := identifierError(f.lang, f.method, f.values[f.method]); bad {
		errs[fieldFor(f.method)] = msg
	}
	if msg, bad := passwordError(f.lang, f.password); bad {
		errs[FieldPassword] = msg
	}
	return errs
}

// Submit validates and, when the form is valid, calls auth. Validation
// failures move the form to error without calling auth. Authenticator
// failures set a localized banner and return the form to idle.
func (f *Login) Submit(ctx context.Context, auth Authenticator) (*models.AuthResult, error) {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return nil, dErrors.New(dErrors.CodeInvalidState, i18n.T(f.lang, i18n.AlreadySubmitting))
	}
	errs := f.validateLocked()
	if len(errs) > 0 {
		f.state = StateError
		f.errors = errs
		f.banner = ""
		lang := f.lang
		f.mu.Unlock()
		return nil, errs.Err(lang)
	}
	f.state = StateSubmitting
	f.errors = FieldErrors{}
	f.banner = ""
	creds := models.Credentials{
		Method:     f.method,
		Identifier: f.values[f.method],
		Password:   f.password,
		Role:       f.role,
		RememberMe: f.rememberMe,
	}
	lang := f.lang
	f.mu.Unlock()

	result, err := auth.Authenticate(ctx, creds)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateIdle
	if err != nil {
		f.banner = bannerFor(lang, err)
		return nil, dErrors.Wrap(err, dErrors.CodeOf(err), f.banner)
	}
	return result, nil
}

func bannerFor(lang i18n.Language, err error) string {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeUnauthorized:
		return i18n.T(lang, i18n.InvalidCredentials)
	case dErrors.CodeRateLimited:
		return i18n.T(lang, i18n.RateLimited)
	default:
		return i18n.T(lang, i18n.LoginError)
	}
}

// Snapshot is a read-only copy of the form.
type Snapshot struct {
	State      State                      `json:"state"`
	Method     identity.Method            `json:"method"`
	Role       models.Role                `json:"role"`
	Values     map[identity.Method]string `json:"values"`
	RememberMe bool                       `json:"rememberMe"`
	Errors     FieldErrors                `json:"errors,omitempty"`
	Banner     string                     `json:"banner,omitempty"`
	Overlays   []Overlay                  `json:"overlays,omitempty"`
}

func (f *Login) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := Snapshot{
		State:      f.state,
		Method:     f.method,
		Role:       f.role,
		Values:     make(map[identity.Method]string, len(f.values)),
		RememberMe: f.rememberMe,
		Banner:     f.banner,
	}
	for k, v := range f.values {
		s.Values[k] = v
	}
	if len(f.errors) > 0 {
		s.Errors = make(FieldErrors, len(f.errors))
		for k, v := range f.errors {
			s.Errors[k] = v
		}
	}
	for _, o := range []Overlay{OverlayForgotPassword, OverlayRegister} {
		if f.overlays[o] {
			s.Overlays = append(s.Overlays, o)
		}
	}
	return s
}
