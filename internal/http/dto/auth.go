package dto

import (
	"strconv"

	"basegraph.app/backoffice/internal/model"
)

type AuthURLResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	State            string `json:"state"`
}

type ExchangeRequest struct {
	Code string `json:"code" binding:"required"`
}

type AccountSummary struct {
	ID       string            `json:"id"`
	Email    string            `json:"email"`
	FullName string            `json:"full_name"`
	Role     model.AccountRole `json:"role"`
}

type ExchangeResponse struct {
	User      AccountSummary `json:"user"`
	SessionID string         `json:"session_id"`
	ExpiresIn int            `json:"expires_in"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}

func ToAccountSummary(a *model.Account) AccountSummary {
	return AccountSummary{
		ID:       a.ID.String(),
		Email:    a.Email,
		FullName: a.FullName,
		Role:     a.Role,
	}
}

func ToExchangeResponse(a *model.Account, s *model.Session, expiresInHours int) ExchangeResponse {
	return ExchangeResponse{
		User:      ToAccountSummary(a),
		SessionID: strconv.FormatInt(s.ID, 10),
		ExpiresIn: expiresInHours,
	}
}
