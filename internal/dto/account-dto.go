package dto

import (
	"time"

	"github.com/Sorawitt/account-svc/internal/domain"
)

type RegisterRequest struct {
	Role     string `json:"role"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateRequest struct {
	Role     string `json:"role"`
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

type DeleteRequest struct {
	ID string `json:"id"`
}

// AccountResponse is the only outward projection of an account. It carries
// no credential material.
type AccountResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func NewAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        acc.ID.String(),
		Email:     acc.Email,
		Role:      string(acc.Role),
		Status:    string(acc.Status),
		CreatedAt: acc.CreatedAt.Format(time.RFC3339),
	}
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}
