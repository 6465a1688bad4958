package account_test

import (
	"testing"
	"time"

	"coursebook/internal/domain/account"
)

// TestAccountValidation tests validation of Account.
func TestAccountValidation(t *testing.T) {
	tests := []struct {
		name    string
		account account.Account
		wantErr bool
	}{
		{
			name: "valid customer",
			account: account.Account{
				ID:    "123",
				Email: "abbie@example.com",
				Name:  "Abbie",
				Role:  account.RoleCustomer,
			},
			wantErr: false,
		},
		{
			name: "valid admin with last name and phone",
			account: account.Account{
				ID:       "123",
				Email:    "admin@example.com",
				Name:     "Sophie",
				LastName: "Hatter",
				Phone:    "123-456-7890",
				Role:     account.RoleAdmin,
			},
			wantErr: false,
		},
		{
			name: "empty email",
			account: account.Account{
				ID:   "123",
				Name: "Abbie",
				Role: account.RoleCustomer,
			},
			wantErr: true,
		},
		{
			name: "email without @",
			account: account.Account{
				ID:    "123",
				Email: "not-an-email",
				Name:  "Abbie",
				Role:  account.RoleCustomer,
			},
			wantErr: true,
		},
		{
			name: "empty name",
			account: account.Account{
				ID:    "123",
				Email: "abbie@example.com",
				Role:  account.RoleCustomer,
			},
			wantErr: true,
		},
		{
			name: "invalid role",
			account: account.Account{
				ID:    "123",
				Email: "abbie@example.com",
				Name:  "Abbie",
				Role:  "superuser",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestSetAndCheckPassword tests bcrypt hashing round-trip.
func TestSetAndCheckPassword(t *testing.T) {
	var a account.Account

	if err := a.SetPassword(""); err != account.ErrEmptyPassword {
		t.Errorf("SetPassword(\"\") = %v, want ErrEmptyPassword", err)
	}
	if err := a.SetPassword("short"); err != account.ErrPasswordTooShort {
		t.Errorf("SetPassword(short) = %v, want ErrPasswordTooShort", err)
	}

	if err := a.SetPassword("group1"); err != nil {
		t.Fatalf("SetPassword(group1) = %v", err)
	}
	if a.PasswordHash == "" || a.PasswordHash == "group1" {
		t.Fatalf("password was not hashed: %q", a.PasswordHash)
	}

	if err := a.CheckPassword("group1"); err != nil {
		t.Errorf("CheckPassword(correct) = %v", err)
	}
	if err := a.CheckPassword("wrongpassword"); err != account.ErrWrongPassword {
		t.Errorf("CheckPassword(wrong) = %v, want ErrWrongPassword", err)
	}
}

// TestCheckPasswordEmptyHash tests that an account without a hash rejects everything.
func TestCheckPasswordEmptyHash(t *testing.T) {
	var a account.Account
	if err := a.CheckPassword("anything"); err != account.ErrWrongPassword {
		t.Errorf("CheckPassword on empty hash = %v, want ErrWrongPassword", err)
	}
}

// TestFailedLoginLockout tests the lockout counter.
func TestFailedLoginLockout(t *testing.T) {
	var a account.Account

	for i := 0; i < 4; i++ {
		a.RecordFailedLogin()
	}
	if a.IsLocked() {
		t.Fatal("account locked after 4 failures, want unlocked")
	}

	a.RecordFailedLogin()
	if !a.IsLocked() {
		t.Fatal("account not locked after 5 failures")
	}
	if a.LockedUntil.Before(time.Now()) {
		t.Error("LockedUntil should be in the future")
	}

	a.ResetFailedLogins()
	if a.IsLocked() || a.FailedLogins != 0 {
		t.Error("ResetFailedLogins did not clear lockout state")
	}
}

// TestDisplayName tests full-name rendering.
func TestDisplayName(t *testing.T) {
	a := account.Account{Name: "Abbie"}
	if got := a.DisplayName(); got != "Abbie" {
		t.Errorf("DisplayName() = %q, want %q", got, "Abbie")
	}
	a.LastName = "Smith"
	if got := a.DisplayName(); got != "Abbie Smith" {
		t.Errorf("DisplayName() = %q, want %q", got, "Abbie Smith")
	}
}
