package repository

import (
	"errors"
	"fmt"

	"github.com/Sorawitt/account-svc/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type AccountRepository interface {
	CreateAccount(acc *domain.Account) error
	FindAccountByEmail(email string) (*domain.Account, error)
	FindAccountByID(id uuid.UUID) (*domain.Account, error)
	SaveAccount(acc *domain.Account) error
	DeleteAccount(acc *domain.Account) error
	ListAccounts() ([]domain.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) CreateAccount(acc *domain.Account) error {
	if acc == nil {
		return errors.New("nil account")
	}

	if err := r.db.Create(acc).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *accountRepository) FindAccountByEmail(email string) (*domain.Account, error) {
	acc := &domain.Account{}

	if err := r.db.First(acc, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by email: %w", err)
	}

	return acc, nil
}

func (r *accountRepository) FindAccountByID(id uuid.UUID) (*domain.Account, error) {
	acc := &domain.Account{}

	if err := r.db.First(acc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by id: %w", err)
	}

	return acc, nil
}

func (r *accountRepository) SaveAccount(acc *domain.Account) error {
	if acc == nil {
		return errors.New("nil account")
	}

	if err := r.db.Save(acc).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

func (r *accountRepository) DeleteAccount(acc *domain.Account) error {
	if acc == nil {
		return errors.New("nil account")
	}

	if err := r.db.Delete(acc).Error; err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func (r *accountRepository) ListAccounts() ([]domain.Account, error) {
	var accounts []domain.Account

	if err := r.db.Order("created_at").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return accounts, nil
}

// The email column carries a unique index, so concurrent registrations of
// the same address lose at write time rather than at the pre-read.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
