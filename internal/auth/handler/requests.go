package handler

import (
	"dochub/internal/auth/models"
	"dochub/internal/identity"
)

// LoginRequest mirrors the login form. Method defaults to email and role to
// citizen when omitted.
type LoginRequest struct {
	Method     string `json:"method"`
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	RememberMe bool   `json:"rememberMe"`
}

type RegisterRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	NationalID      string `json:"nationalId"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
}

func (r RegisterRequest) toModel() models.Registration {
	role := models.Role(r.Role)
	if r.Role == "" {
		role = models.RoleCitizen
	}
	return models.Registration{
		FullName:        r.FullName,
		Email:           r.Email,
		Phone:           r.Phone,
		NationalID:      r.NationalID,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
		Role:            role,
	}
}

type ForgotPasswordRequest struct {
	Method     string `json:"method"`
	Identifier string `json:"identifier"`
}

func (r ForgotPasswordRequest) toModel() models.ForgotPasswordRequest {
	method := identity.Method(r.Method)
	if r.Method == "" {
		method = identity.MethodEmail
	}
	return models.ForgotPasswordRequest{Method: method, Identifier: r.Identifier}
}
