package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	pkgerrors "github.com/fazendaapp/fazenda-backend/pkg/errors"
	"github.com/fazendaapp/fazenda-backend/pkg/kv"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

type usersRepository interface {
	FindByEmail(email string) (models.User, bool)
	FindByID(id string) (models.User, bool)
	Update(ctx context.Context, user models.User) (bool, error)
}

type licensesRepository interface {
	ActiveForUser(userID string) (models.License, bool)
	Update(ctx context.Context, license models.License) (bool, error)
}

type loginObserver interface {
	IncLogin(outcome string)
}

// Service is the authentication gate: credential check plus the single
// persisted "current session" pointer.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	IsAuthenticated(ctx context.Context) bool
}

type service struct {
	users      usersRepository
	licenses   licensesRepository
	store      kv.Store
	sessionKey string
	observer   loginObserver
	now        func() time.Time
}

// Option tweaks service construction.
type Option func(*service)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithObserver wires the login metrics counter.
func WithObserver(observer loginObserver) Option {
	return func(s *service) { s.observer = observer }
}

// NewService builds the auth gate. The session pointer persists under
// kv.Key(namespace, "current_user").
func NewService(users usersRepository, licenses licensesRepository, store kv.Store, namespace string, opts ...Option) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if licenses == nil {
		return nil, fmt.Errorf("licenses repository required")
	}
	if store == nil {
		return nil, fmt.Errorf("store required")
	}
	s := &service{
		users:      users,
		licenses:   licenses,
		store:      store,
		sessionKey: kv.Key(namespace, "current_user"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Login checks plaintext credentials. Suspended users and credential
// mismatches both yield nil without error. A client whose expiry has
// passed is flipped to expired, together with their active license, yet
// still logs in; the caller surfaces the expired status.
func (s *service) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, ok := s.users.FindByEmail(strings.TrimSpace(email))
	if !ok || user.Password != password {
		s.countLogin("denied")
		return nil, nil
	}
	if user.Status == enums.UserStatusSuspended {
		s.countLogin("suspended")
		return nil, nil
	}

	now := s.now()
	if user.Role == enums.UserRoleClient && user.ExpiresAt != nil && user.ExpiresAt.Before(now) {
		user.Status = enums.UserStatusExpired
		if license, ok := s.licenses.ActiveForUser(user.ID); ok {
			license.Status = enums.LicenseStatusExpired
			if _, err := s.licenses.Update(ctx, license); err != nil {
				return nil, err
			}
		}
	}

	user.LastLogin = &now
	if _, err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding session")
	}
	if err := s.store.Put(ctx, s.sessionKey, raw); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting session")
	}
	s.countLogin("success")
	return &user, nil
}

// Logout clears the session pointer. Logging out with no session is
// not an error.
func (s *service) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.sessionKey); err != nil && !pkgerrors.Is(err, kv.ErrNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing session")
	}
	return nil
}

// CurrentUser reads the session pointer. Absence yields nil, nil.
func (s *service) CurrentUser(ctx context.Context) (*models.User, error) {
	raw, err := s.store.Get(ctx, s.sessionKey)
	if err != nil {
		if pkgerrors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading session")
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding session")
	}
	return &user, nil
}

func (s *service) IsAuthenticated(ctx context.Context) bool {
	user, err := s.CurrentUser(ctx)
	return err == nil && user != nil
}

func (s *service) countLogin(outcome string) {
	if s.observer != nil {
		s.observer.IncLogin(outcome)
	}
}
