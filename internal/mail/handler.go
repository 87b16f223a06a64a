package mail

import (
	"encoding/json"
	"log"

	"github.com/Sorawitt/account-svc/internal/dto"
)

type Handler struct {
	Sender Sender
}

func NewHandler(sender Sender) *Handler {
	return &Handler{Sender: sender}
}

func (h *Handler) HandleMessage(message string) error {
	var event dto.VerifyOTPEvent

	if err := json.Unmarshal([]byte(message), &event); err != nil {
		log.Printf("invalid event payload: %s\n", message)
		return err
	}

	log.Printf("OTP event received: account_id=%s email=%s",
		event.AccountID, event.Email)

	return h.Sender.SendOTPEmail(event.Email, event.OTP, event.ExpiresAt)
}
