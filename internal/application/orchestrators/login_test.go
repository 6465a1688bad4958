package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"coursebook/internal/domain/account"
)

// mockAccountStore is an in-memory account store keyed by email.
type mockAccountStore struct {
	accounts map[string]account.Account
	saveErr  error
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{accounts: make(map[string]account.Account)}
}

func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	a, ok := m.accounts[email]
	if !ok {
		return account.Account{}, errors.New("account not found")
	}
	return a, nil
}

func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.accounts[a.Email] = a
	return nil
}

func seedCustomer(t *testing.T, store *mockAccountStore, email, password string) account.Account {
	t.Helper()
	a := account.Account{
		ID:        "a1",
		Email:     email,
		Name:      "Abbie",
		LastName:  "Smith",
		Phone:     "123-456-7890",
		Role:      account.RoleCustomer,
		CreatedAt: time.Now(),
	}
	if err := a.SetPassword(password); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	store.accounts[email] = a
	return a
}

// TestExecuteLogin_Success verifies the demo credentials authenticate.
func TestExecuteLogin_Success(t *testing.T) {
	store := newMockAccountStore()
	seedCustomer(t, store, "abbie@example.com", "group1")

	result, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "abbie@example.com",
		Password: "group1",
		Role:     account.RoleCustomer,
	}, LoginDeps{AccountStore: store})
	if err != nil {
		t.Fatalf("ExecuteLogin: %v", err)
	}
	if result.Name != "Abbie Smith" {
		t.Errorf("Name = %q, want %q", result.Name, "Abbie Smith")
	}
	if result.Role != account.RoleCustomer {
		t.Errorf("Role = %q, want customer", result.Role)
	}
}

// TestExecuteLogin_Failures covers every rejection path with the same
// opaque error.
func TestExecuteLogin_Failures(t *testing.T) {
	tests := []struct {
		name  string
		input LoginInput
	}{
		{"unknown email", LoginInput{Email: "nobody@example.com", Password: "group1", Role: account.RoleCustomer}},
		{"wrong password", LoginInput{Email: "abbie@example.com", Password: "wrong-pass", Role: account.RoleCustomer}},
		{"empty password", LoginInput{Email: "abbie@example.com", Role: account.RoleCustomer}},
		{"empty email", LoginInput{Password: "group1", Role: account.RoleCustomer}},
		{"customer on admin surface", LoginInput{Email: "abbie@example.com", Password: "group1", Role: account.RoleAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockAccountStore()
			seedCustomer(t, store, "abbie@example.com", "group1")

			_, err := ExecuteLogin(context.Background(), tt.input, LoginDeps{AccountStore: store})
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

// TestExecuteLogin_ErrorMessage verifies the exact message shown on the
// login form.
func TestExecuteLogin_ErrorMessage(t *testing.T) {
	if got := ErrInvalidCredentials.Error(); got != "Invalid login credentials" {
		t.Errorf("message = %q, want %q", got, "Invalid login credentials")
	}
}

// TestExecuteLogin_LockoutAfterFiveFailures verifies brute-force lockout.
func TestExecuteLogin_LockoutAfterFiveFailures(t *testing.T) {
	store := newMockAccountStore()
	seedCustomer(t, store, "abbie@example.com", "group1")
	deps := LoginDeps{AccountStore: store}

	for i := 0; i < 5; i++ {
		_, err := ExecuteLogin(context.Background(), LoginInput{
			Email: "abbie@example.com", Password: "wrong", Role: account.RoleCustomer,
		}, deps)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: err = %v", i+1, err)
		}
	}

	// Even the correct password is rejected while locked.
	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email: "abbie@example.com", Password: "group1", Role: account.RoleCustomer,
	}, deps)
	if !errors.Is(err, ErrAccountLocked) {
		t.Errorf("err = %v, want ErrAccountLocked", err)
	}
}

// TestExecuteLogin_ResetsFailuresOnSuccess verifies the counter clears.
func TestExecuteLogin_ResetsFailuresOnSuccess(t *testing.T) {
	store := newMockAccountStore()
	seedCustomer(t, store, "abbie@example.com", "group1")
	deps := LoginDeps{AccountStore: store}

	for i := 0; i < 3; i++ {
		_, _ = ExecuteLogin(context.Background(), LoginInput{
			Email: "abbie@example.com", Password: "wrong", Role: account.RoleCustomer,
		}, deps)
	}
	if _, err := ExecuteLogin(context.Background(), LoginInput{
		Email: "abbie@example.com", Password: "group1", Role: account.RoleCustomer,
	}, deps); err != nil {
		t.Fatalf("login after failures: %v", err)
	}

	got := store.accounts["abbie@example.com"]
	if got.FailedLogins != 0 {
		t.Errorf("FailedLogins = %d, want 0", got.FailedLogins)
	}
}
