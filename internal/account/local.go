package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/kv"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/latency"
)

const (
	usersKey          = "users"
	currentUserPrefix = "currentUser"
	loggedInPrefix    = "isLoggedIn"
)

type storedUser struct {
	User
	PasswordHash []byte `json:"passwordHash"`
}

// LocalAuthenticator keeps accounts in the key-value store next to the
// rest of the session state.
type LocalAuthenticator struct {
	store  kv.Store
	ttl    time.Duration
	delay  latency.Delay
	cost   int
	now    func() time.Time
	logger *zap.Logger

	// guards the read-modify-write of the user list
	mu sync.Mutex
}

func NewLocalAuthenticator(store kv.Store, ttl time.Duration, delay latency.Delay, logger *zap.Logger) *LocalAuthenticator {
	if delay == nil {
		delay = latency.None
	}
	return &LocalAuthenticator{
		store:  store,
		ttl:    ttl,
		delay:  delay,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
		logger: logger,
	}
}

func (a *LocalAuthenticator) Register(ctx context.Context, r Registration) (User, error) {
	if err := r.Validate(); err != nil {
		return User{}, err
	}
	if err := a.delay(ctx); err != nil {
		return User{}, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), a.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	users, err := a.loadUsers(ctx)
	if err != nil {
		return User{}, err
	}
	email := normaliseEmail(r.Email)
	for _, u := range users {
		if u.Email == email {
			return User{}, ErrEmailTaken
		}
	}

	u := storedUser{
		User: User{
			ID:        uuid.NewString(),
			Name:      r.name(),
			Email:     email,
			CreatedAt: a.now().UTC(),
		},
		PasswordHash: hash,
	}
	if err := a.saveUsers(ctx, append(users, u)); err != nil {
		return User{}, err
	}

	a.logger.Info("account registered", zap.String("user_id", u.ID))
	return u.User, nil
}

func (a *LocalAuthenticator) Login(ctx context.Context, sessionID, email, password string) (User, error) {
	if err := a.delay(ctx); err != nil {
		return User{}, fmt.Errorf("login: %w", err)
	}

	users, err := a.loadUsers(ctx)
	if err != nil {
		return User{}, err
	}

	email = normaliseEmail(email)
	for _, u := range users {
		if u.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
			break
		}
		if err := a.startSession(ctx, sessionID, u.User); err != nil {
			return User{}, err
		}
		return u.User, nil
	}
	return User{}, ErrInvalidCredentials
}

// CurrentUser logs the session out when the stored user cannot be read.
func (a *LocalAuthenticator) CurrentUser(ctx context.Context, sessionID string) (User, error) {
	flag, err := a.store.Get(ctx, kv.Key(loggedInPrefix, sessionID))
	if errors.Is(err, kv.ErrNotFound) {
		return User{}, ErrNotLoggedIn
	}
	if err != nil {
		return User{}, fmt.Errorf("load login state: %w", err)
	}
	if string(flag) != "true" {
		return User{}, ErrNotLoggedIn
	}

	raw, err := a.store.Get(ctx, kv.Key(currentUserPrefix, sessionID))
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		return User{}, fmt.Errorf("load current user: %w", err)
	}

	var u User
	if err != nil || json.Unmarshal(raw, &u) != nil || u.ID == "" {
		a.logger.Warn("current user unreadable, logging out", zap.String("session_id", sessionID))
		if err := a.Logout(ctx, sessionID); err != nil {
			return User{}, err
		}
		return User{}, ErrNotLoggedIn
	}
	return u, nil
}

func (a *LocalAuthenticator) Logout(ctx context.Context, sessionID string) error {
	if err := a.store.Delete(ctx, kv.Key(loggedInPrefix, sessionID)); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if err := a.store.Delete(ctx, kv.Key(currentUserPrefix, sessionID)); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (a *LocalAuthenticator) UpdateProfile(ctx context.Context, sessionID string, p ProfileUpdate) (User, error) {
	current, err := a.CurrentUser(ctx, sessionID)
	if err != nil {
		return User{}, err
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return User{}, ErrNameRequired
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	users, err := a.loadUsers(ctx)
	if err != nil {
		return User{}, err
	}
	idx := -1
	for i := range users {
		if users[i].ID == current.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		// account removed underneath the session
		if err := a.Logout(ctx, sessionID); err != nil {
			return User{}, err
		}
		return User{}, ErrNotLoggedIn
	}

	users[idx].Name = name
	users[idx].Phone = strings.TrimSpace(p.Phone)
	users[idx].Address = strings.TrimSpace(p.Address)
	if err := a.saveUsers(ctx, users); err != nil {
		return User{}, err
	}
	if err := a.startSession(ctx, sessionID, users[idx].User); err != nil {
		return User{}, err
	}
	return users[idx].User, nil
}

func (a *LocalAuthenticator) startSession(ctx context.Context, sessionID string, u User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal current user: %w", err)
	}
	if err := a.store.Set(ctx, kv.Key(currentUserPrefix, sessionID), raw, a.ttl); err != nil {
		return fmt.Errorf("save current user: %w", err)
	}
	if err := a.store.Set(ctx, kv.Key(loggedInPrefix, sessionID), []byte("true"), a.ttl); err != nil {
		return fmt.Errorf("save login state: %w", err)
	}
	return nil
}

func (a *LocalAuthenticator) loadUsers(ctx context.Context) ([]storedUser, error) {
	raw, err := a.store.Get(ctx, usersKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	var users []storedUser
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (a *LocalAuthenticator) saveUsers(ctx context.Context, users []storedUser) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}
	if err := a.store.Set(ctx, usersKey, raw, 0); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}
