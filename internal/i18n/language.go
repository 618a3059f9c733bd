// Package i18n holds the two portal languages, their negotiation, and the
// localized message catalog.
package i18n

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// Language is the portal's two-member language enumeration.
type Language string

const (
	English Language = "en"
	Nepali  Language = "np"

	// Default is used when nothing in the request selects a language.
	Default = Nepali

	CookieName = "lang"
	QueryParam = "lang"
)

// Parse accepts "en" and "np" (and the ISO code "ne" for Nepali).
func Parse(s string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en":
		return English, true
	case "np", "ne":
		return Nepali, true
	default:
		return "", false
	}
}

func (l Language) Valid() bool {
	return l == English || l == Nepali
}

// Toggle switches en to np and back. Invalid values toggle from Default.
func (l Language) Toggle() Language {
	if l == English {
		return Nepali
	}
	if l == Nepali {
		return English
	}
	return Default.Toggle()
}

func (l Language) String() string { return string(l) }

// Nepali comes first so the matcher falls back to it.
var matcher = language.NewMatcher([]language.Tag{language.Nepali, language.English})

// Negotiate picks a language from an Accept-Language header.
func Negotiate(acceptLanguage string) Language {
	if strings.TrimSpace(acceptLanguage) == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default
	}
	if idx == 1 {
		return English
	}
	return Nepali
}

// FromRequest resolves the language from the query, then the cookie, then
// Accept-Language.
func FromRequest(r *http.Request) Language {
	if l, ok := Parse(r.URL.Query().Get(QueryParam)); ok {
		return l
	}
	if c, err := r.Cookie(CookieName); err == nil {
		if l, ok := Parse(c.Value); ok {
			return l
		}
	}
	return Negotiate(r.Header.Get("Accept-Language"))
}

type languageKey struct{}

func WithLanguage(ctx context.Context, l Language) context.Context {
	return context.WithValue(ctx, languageKey{}, l)
}

// FromContext returns the request language, or Default.
func FromContext(ctx context.Context) Language {
	if l, ok := ctx.Value(languageKey{}).(Language); ok && l.Valid() {
		return l
	}
	return Default
}

// Middleware stores the resolved language in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := FromRequest(r)
		w.Header().Set("Content-Language", string(l))
		next.ServeHTTP(w, r.WithContext(WithLanguage(r.Context(), l)))
	})
}

// SetCookie persists the language choice for a year.
func SetCookie(w http.ResponseWriter, l Language) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    string(l),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
}
