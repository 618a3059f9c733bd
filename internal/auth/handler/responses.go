package handler

import (
	"time"

	"dochub/internal/auth/models"
)

type LoginResponse struct {
	Token       string                `json:"token"`
	ExpiresAt   time.Time             `json:"expiresAt"`
	Role        models.Role           `json:"role"`
	DisplayName string                `json:"displayName"`
	View        string                `json:"view"`
	Session     models.SessionSummary `json:"session"`
}

func toLoginResponse(res *models.AuthResult) LoginResponse {
	out := LoginResponse{
		Token:       res.Token,
		ExpiresAt:   res.ExpiresAt,
		Role:        res.Role,
		DisplayName: res.DisplayName,
		View:        string(res.Role),
	}
	if res.Session != nil {
		out.Session = res.Session.Summary()
		out.View = res.Session.CurrentView
	}
	return out
}

type RegisterResponse struct {
	UserID  string      `json:"userId"`
	Role    models.Role `json:"role"`
	Message string      `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
