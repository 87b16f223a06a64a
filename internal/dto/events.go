package dto

// VerifyOTPEvent is published by the account service on registration and
// consumed by the mail service.
type VerifyOTPEvent struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	OTP       string `json:"otp"`
	ExpiresAt string `json:"expires_at"`
}

const VerifyOTPEventKey = "account.verify_otp"
