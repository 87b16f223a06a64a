package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the single role tag used at both creation and update time.
type Role string

const (
	RoleUser    Role = "user"
	RoleCompany Role = "company"
)

// ParseRole also accepts the legacy tags still sent by older clients
// ("guest"/"User" and "business"/"Company").
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "user", "guest":
		return RoleUser, nil
	case "company", "business":
		return RoleCompany, nil
	default:
		return "", ErrInvalidRole
	}
}

// Status of the account verification state machine.
type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
)

type Account struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `gorm:"type:varchar(20);not null" json:"role"`
	Status       Status     `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	OTPHash      string     `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Activate moves the account from pending to active. It is the only
// transition into the active state.
func (a *Account) Activate() error {
	if a.Status != StatusPending {
		return ErrAlreadyVerified
	}
	a.Status = StatusActive
	return nil
}

func (a *Account) IsVerified() bool {
	return a.Status == StatusActive
}
