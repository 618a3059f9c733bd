// Package view routes the portal between its top-level views. Moves are
// checked by a rego guard with the session as the authorization context.
package view

import (
	"strings"
)

type View string

const (
	Home    View = "home"
	Login   View = "login"
	Citizen View = "citizen"
	Officer View = "officer"
	Admin   View = "admin"
)

var All = []View{Home, Login, Citizen, Officer, Admin}

func Parse(s string) (View, bool) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	return v, v.Valid()
}

func (v View) Valid() bool {
	switch v {
	case Home, Login, Citizen, Officer, Admin:
		return true
	}
	return false
}

// IsDashboard reports whether v is one of the role dashboards.
func (v View) IsDashboard() bool {
	return v == Citizen || v == Officer || v == Admin
}

func (v View) String() string { return string(v) }
