package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/planroomhq/planroom-server/models"
	"github.com/planroomhq/planroom-server/store"
	"github.com/planroomhq/planroom-server/utils"
)

type Accounts struct {
	store store.Store
}

func NewAccounts(s store.Store) *Accounts {
	return &Accounts{store: s}
}

// SignupInput is the caller-writable account surface. Identifier and
// timestamps are server-controlled.
type SignupInput struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (s *Accounts) Register(in SignupInput) (*models.Account, error) {
	if _, err := s.store.Accounts().FindByUsername(in.Username); err == nil {
		return nil, fmt.Errorf("username %q: %w", in.Username, ErrConflict)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if _, err := s.store.Accounts().FindByEmail(in.Email); err == nil {
		return nil, fmt.Errorf("email %q: %w", in.Email, ErrConflict)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	account := &models.Account{
		AccountID:    uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.store.Accounts().Create(account); err != nil {
		return nil, err
	}
	return account, nil
}

// Authenticate checks username/password credentials. Unknown usernames and
// wrong passwords produce the same error so callers cannot probe accounts.
func (s *Accounts) Authenticate(username, password string) (*models.Account, error) {
	account, err := s.store.Accounts().FindByUsername(username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(account.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

func (s *Accounts) Find(accountID string) (*models.Account, error) {
	account, err := s.store.Accounts().Find(accountID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("account %s: %w", accountID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

// FindOrCreateByEmail backs federated sign-in. Accounts created here get a
// random unusable password hash; they can only log in through the identity
// provider.
func (s *Accounts) FindOrCreateByEmail(email string) (*models.Account, error) {
	account, err := s.store.Accounts().FindByEmail(email)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	random := make([]byte, 32)
	if _, err := rand.Read(random); err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(hex.EncodeToString(random))
	if err != nil {
		return nil, err
	}

	username := usernameFromEmail(email)
	if _, err := s.store.Accounts().FindByUsername(username); err == nil {
		username = username + "-" + uuid.NewString()[:8]
	}

	account = &models.Account{
		AccountID:    uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.store.Accounts().Create(account); err != nil {
		return nil, err
	}
	return account, nil
}

func usernameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
