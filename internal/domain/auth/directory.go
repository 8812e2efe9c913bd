package auth

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Account is a provisioned login. PasswordHash is a bcrypt hash.
type Account struct {
	User         User
	PasswordHash string
}

// Directory holds the provisioned accounts. Accounts are read-only once
// provisioned; provisioning itself happens at start-up.
type Directory struct {
	mu      sync.RWMutex
	byID    map[string]Account
	byEmail map[string]string
}

func NewDirectory() *Directory {
	return &Directory{byID: map[string]Account{}, byEmail: map[string]string{}}
}

// Provision hashes password and registers the account.
func (d *Directory) Provision(user User, password string) error {
	if !user.Role.Valid() {
		return ErrUnknownRole
	}
	email := normalizeEmail(user.Email)
	if user.ID == "" || email == "" {
		return fmt.Errorf("provision account: id and email are required")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if len(user.Permissions) == 0 {
		user.Permissions = PermissionsFor(user.Role)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.byEmail[email]; exists {
		return fmt.Errorf("provision account: email %s already registered", email)
	}
	d.byID[user.ID] = Account{User: cloneUser(user), PasswordHash: hash}
	d.byEmail[email] = user.ID
	return nil
}

func (d *Directory) Authenticate(_ context.Context, email, password string) (User, error) {
	d.mu.RLock()
	id, ok := d.byEmail[normalizeEmail(email)]
	account := d.byID[id]
	d.mu.RUnlock()
	if !ok {
		return User{}, ErrInvalidCredentials
	}
	if err := CheckPassword(account.PasswordHash, password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return cloneUser(account.User), nil
}

func (d *Directory) FindByID(_ context.Context, id string) (User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	account, ok := d.byID[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return cloneUser(account.User), nil
}

func (d *Directory) ListByRole(_ context.Context, role Role) []User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []User
	for _, account := range d.byID {
		if account.User.Role == role {
			out = append(out, cloneUser(account.User))
		}
	}
	slices.SortFunc(out, func(a, b User) int { return strings.Compare(a.ID, b.ID) })
	return out
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func cloneUser(u User) User {
	u.Permissions = slices.Clone(u.Permissions)
	return u
}
