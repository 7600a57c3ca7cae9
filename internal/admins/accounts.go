package admins

import (
	"fmt"
	"os"
	"strings"
)

// DefaultDisplayName is used when an account omits its display name.
const DefaultDisplayName = "Admin User"

// minPasswordLen is the shortest password Firebase Authentication accepts.
const minPasswordLen = 6

// Account is an admin login to provision
type Account struct {
	Email       string `json:"email" yaml:"email"`
	Password    string `json:"password" yaml:"password"`
	DisplayName string `json:"displayName,omitempty" yaml:"displayName,omitempty"`
}

// DefaultAccounts returns the built-in test admins.
func DefaultAccounts() []Account {
	return []Account{
		{Email: "admin@ecommerce.com", Password: "admin123456", DisplayName: "Admin User"},
		{Email: "test@admin.com", Password: "test123456", DisplayName: "Test Admin"},
	}
}

type accountsFile struct {
	Accounts []Account `json:"accounts" yaml:"accounts"`
}

// LoadAccounts reads an accounts file of the form {"accounts": [...]}.
func LoadAccounts(path string) ([]Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts file: %w", err)
	}

	var f accountsFile
	if err := decode(path, data, &f); err != nil {
		return nil, err
	}

	if len(f.Accounts) == 0 {
		return nil, fmt.Errorf("accounts file %s lists no accounts", path)
	}

	for i := range f.Accounts {
		if f.Accounts[i].DisplayName == "" {
			f.Accounts[i].DisplayName = DefaultDisplayName
		}
		if err := f.Accounts[i].Validate(); err != nil {
			return nil, fmt.Errorf("account %d: %w", i, err)
		}
	}

	return f.Accounts, nil
}

// Validate checks the fields Firebase would reject anyway, before any call is made.
func (a Account) Validate() error {
	at := strings.Index(a.Email, "@")
	if at <= 0 || at == len(a.Email)-1 {
		return fmt.Errorf("invalid email: %q", a.Email)
	}
	if len(a.Password) < minPasswordLen {
		return fmt.Errorf("password for %s must be at least %d characters", a.Email, minPasswordLen)
	}
	return nil
}
