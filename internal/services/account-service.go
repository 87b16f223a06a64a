package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Sorawitt/account-svc/internal/domain"
	"github.com/Sorawitt/account-svc/internal/dto"
	"github.com/Sorawitt/account-svc/internal/helper"
	"github.com/Sorawitt/account-svc/internal/helper/utils"
	"github.com/Sorawitt/account-svc/internal/interfaces"
	"github.com/Sorawitt/account-svc/internal/repository"
	"github.com/google/uuid"
)

const otpDigits = 6

type AccountService interface {
	List() ([]dto.AccountResponse, error)
	Register(input dto.RegisterRequest) (string, error)
	Verify(input dto.VerifyRequest) error
	Login(input dto.LoginRequest) (*domain.Account, error)
	Update(input dto.UpdateRequest) (string, error)
	Delete(input dto.DeleteRequest) (string, error)
}

type accountService struct {
	repo     repository.AccountRepository
	producer interfaces.ProducerHandler
	auth     helper.Auth
	otpTTL   time.Duration
}

func NewAccountService(
	repo repository.AccountRepository,
	producer interfaces.ProducerHandler,
	auth helper.Auth,
	otpTTL time.Duration,
) AccountService {
	return &accountService{
		repo:     repo,
		producer: producer,
		auth:     auth,
		otpTTL:   otpTTL,
	}
}

func (s *accountService) List() ([]dto.AccountResponse, error) {
	accounts, err := s.repo.ListAccounts()
	if err != nil {
		return nil, err
	}

	out := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, dto.NewAccountResponse(&accounts[i]))
	}
	return out, nil
}

func (s *accountService) Register(input dto.RegisterRequest) (string, error) {
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return "", domain.ErrInvalidRole
	}
	if role == domain.RoleCompany {
		return "", domain.ErrNotImplemented
	}

	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)
	if email == "" || password == "" {
		return "", domain.ErrMissingFields
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	acc, err := s.repo.FindAccountByEmail(email)
	switch {
	case err == nil:
		if acc.IsVerified() {
			return "", domain.ErrAlreadyRegistered
		}
		// pending account: resume registration in place
		acc.Role = role
		acc.PasswordHash = hash
	case errors.Is(err, domain.ErrNotFound):
		acc = &domain.Account{
			Email:        email,
			PasswordHash: hash,
			Role:         role,
			Status:       domain.StatusPending,
		}
	default:
		return "", err
	}

	otp, err := s.arm(acc)
	if err != nil {
		return "", err
	}

	if acc.ID == uuid.Nil {
		if err := s.repo.CreateAccount(acc); err != nil {
			if errors.Is(err, domain.ErrDuplicateEmail) {
				// lost a concurrent registration race
				return "", domain.ErrAlreadyRegistered
			}
			log.Printf("create account error: %v", err)
			return "", domain.ErrInvalidAccountData
		}
	} else {
		if err := s.repo.SaveAccount(acc); err != nil {
			return "", err
		}
	}

	if err := s.dispatchOTP(acc, otp); err != nil {
		return "", err
	}

	return fmt.Sprintf("OTP sent to %s", acc.Email), nil
}

// arm puts a fresh passcode on the account; only its hash is persisted.
func (s *accountService) arm(acc *domain.Account) (string, error) {
	otp, err := utils.GenerateOTP(otpDigits)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}

	exp := time.Now().Add(s.otpTTL)
	acc.OTPHash = utils.Sha256Hex(otp)
	acc.OTPExpiresAt = &exp
	return otp, nil
}

func (s *accountService) dispatchOTP(acc *domain.Account, otp string) error {
	event := dto.VerifyOTPEvent{
		AccountID: acc.ID.String(),
		Email:     acc.Email,
		OTP:       otp,
		ExpiresAt: acc.OTPExpiresAt.Format(time.RFC3339),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode otp event: %w", err)
	}

	if s.producer == nil {
		log.Println("producer not configured - skip OTP dispatch")
		return nil
	}
	if err := s.producer.PublishMessage([]byte(dto.VerifyOTPEventKey), payload); err != nil {
		return fmt.Errorf("failed to publish otp event: %w", err)
	}
	return nil
}

func (s *accountService) Verify(input dto.VerifyRequest) error {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	otp := strings.TrimSpace(input.OTP)
	if email == "" || otp == "" {
		return domain.ErrMissingFields
	}

	acc, err := s.repo.FindAccountByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidOTP
		}
		return err
	}

	if acc.IsVerified() {
		return domain.ErrAlreadyVerified
	}

	if acc.OTPHash == "" || acc.OTPExpiresAt == nil || time.Now().After(*acc.OTPExpiresAt) {
		return domain.ErrInvalidOTP
	}
	if utils.Sha256Hex(otp) != acc.OTPHash {
		return domain.ErrInvalidOTP
	}

	if err := acc.Activate(); err != nil {
		return err
	}
	acc.OTPHash = ""
	acc.OTPExpiresAt = nil

	return s.repo.SaveAccount(acc)
}

func (s *accountService) Login(input dto.LoginRequest) (*domain.Account, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	acc, err := s.repo.FindAccountByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !acc.IsVerified() {
		return nil, domain.ErrNotVerified
	}

	if err := s.auth.VerifyPassword(password, acc.PasswordHash); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return acc, nil
}

func (s *accountService) Update(input dto.UpdateRequest) (string, error) {
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return "", domain.ErrInvalidRole
	}
	if role == domain.RoleCompany {
		return "", domain.ErrNotImplemented
	}

	rawID := strings.TrimSpace(input.ID)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if rawID == "" || email == "" {
		return "", domain.ErrMissingFields
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return "", domain.ErrNotFound
	}

	acc, err := s.repo.FindAccountByID(id)
	if err != nil {
		return "", err
	}

	if !acc.IsVerified() {
		return "", domain.ErrNotVerified
	}

	dup, err := s.repo.FindAccountByEmail(email)
	if err == nil && dup.ID != acc.ID {
		return "", domain.ErrDuplicateEmail
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	acc.Email = email
	acc.Role = role

	if password := strings.TrimSpace(input.Password); password != "" {
		hash, err := s.auth.HashPassword(password)
		if err != nil {
			return "", err
		}
		acc.PasswordHash = hash
	}

	if err := s.repo.SaveAccount(acc); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s updated", acc.Email), nil
}

func (s *accountService) Delete(input dto.DeleteRequest) (string, error) {
	rawID := strings.TrimSpace(input.ID)
	if rawID == "" {
		return "", domain.ErrMissingID
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return "", domain.ErrNotFound
	}

	acc, err := s.repo.FindAccountByID(id)
	if err != nil {
		return "", err
	}

	if err := s.repo.DeleteAccount(acc); err != nil {
		return "", err
	}

	return fmt.Sprintf("Account %s with Id %s deleted", acc.Email, acc.ID), nil
}
