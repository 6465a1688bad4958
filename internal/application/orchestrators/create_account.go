package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"coursebook/internal/domain/account"
)

// AccountStoreForCreate defines the store interface needed by CreateAccount.
type AccountStoreForCreate interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// CreateAccountInput carries input for account registration.
type CreateAccountInput struct {
	Email           string
	Name            string
	LastName        string
	Phone           string
	Password        string
	ConfirmPassword string
}

// CreateAccountDeps holds dependencies for CreateAccount.
type CreateAccountDeps struct {
	AccountStore AccountStoreForCreate
}

var (
	ErrPasswordMismatch   = errors.New("Passwords do not match")
	ErrEmailAlreadyExists = errors.New("an account with this email already exists")
)

// ExecuteCreateAccount registers a new customer account.
// PRE: Email is not already registered
// POST: Account persisted with hashed password, customer role
// INVARIANT: Emails are stored lowercased; one account per email
func ExecuteCreateAccount(ctx context.Context, input CreateAccountInput, deps CreateAccountDeps) (account.Account, error) {
	if input.Password != input.ConfirmPassword {
		return account.Account{}, ErrPasswordMismatch
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := deps.AccountStore.GetByEmail(ctx, email); err == nil {
		slog.Info("auth_event", "event", "register_failed", "email", email, "reason", "duplicate")
		return account.Account{}, ErrEmailAlreadyExists
	}

	acct := account.Account{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      strings.TrimSpace(input.Name),
		LastName:  strings.TrimSpace(input.LastName),
		Phone:     strings.TrimSpace(input.Phone),
		Role:      account.RoleCustomer,
		CreatedAt: time.Now(),
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return account.Account{}, err
	}
	if err := acct.Validate(); err != nil {
		return account.Account{}, err
	}

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return account.Account{}, err
	}

	slog.Info("auth_event", "event", "register_success", "email", email, "account_id", acct.ID)
	return acct, nil
}

// ExecuteSeedAdmin ensures the configured admin account exists.
// Safe to run on every startup.
// PRE: Email and password come from configuration
// POST: An admin account with the given email exists
func ExecuteSeedAdmin(ctx context.Context, email, password string, deps CreateAccountDeps) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := deps.AccountStore.GetByEmail(ctx, email); err == nil {
		return nil
	}

	acct := account.Account{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      "Admin",
		Role:      account.RoleAdmin,
		CreatedAt: time.Now(),
	}
	if err := acct.SetPassword(password); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}

	slog.Info("seed_event", "event", "admin_created", "email", email)
	return nil
}
