package dto

import "github.com/google/uuid"

type AuthClaims struct {
	AccountID uuid.UUID `json:"account_id"`
	Role      string    `json:"role"`
	Iat       float64   `json:"iat"`
	Expiry    float64   `json:"expiry"`
}
