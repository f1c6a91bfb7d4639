package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	"github.com/fazendaapp/fazenda-backend/pkg/kv"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

type fakeUsers struct {
	rows []models.User
}

func (f *fakeUsers) FindByEmail(email string) (models.User, bool) {
	for _, u := range f.rows {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return models.User{}, false
}

func (f *fakeUsers) FindByID(id string) (models.User, bool) {
	for _, u := range f.rows {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (f *fakeUsers) Update(_ context.Context, user models.User) (bool, error) {
	for i, u := range f.rows {
		if u.ID == user.ID {
			f.rows[i] = user
			return true, nil
		}
	}
	return false, nil
}

type fakeLicenses struct {
	rows []models.License
}

func (f *fakeLicenses) ActiveForUser(userID string) (models.License, bool) {
	for _, l := range f.rows {
		if l.UserID == userID && l.Status == enums.LicenseStatusActive {
			return l, true
		}
	}
	return models.License{}, false
}

func (f *fakeLicenses) Update(_ context.Context, license models.License) (bool, error) {
	for i, l := range f.rows {
		if l.ID == license.ID {
			f.rows[i] = license
			return true, nil
		}
	}
	return false, nil
}

var testNow = time.Date(2025, time.April, 16, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, users *fakeUsers, licenses *fakeLicenses, store kv.Store) Service {
	t.Helper()
	svc, err := NewService(users, licenses, store, "fazenda", WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestLoginWrongPasswordLeavesUserUntouched(t *testing.T) {
	users := &fakeUsers{rows: []models.User{{ID: "user1", Email: "ana@fazenda.com", Password: "certa"}}}
	store := kv.NewMemory()
	svc := newTestService(t, users, &fakeLicenses{}, store)

	got, err := svc.Login(context.Background(), "ana@fazenda.com", "errada")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil user on credential mismatch")
	}
	if users.rows[0].LastLogin != nil {
		t.Error("lastLogin must not move on failed login")
	}
	if svc.IsAuthenticated(context.Background()) {
		t.Error("no session should exist after failed login")
	}
}

func TestLoginSuspendedUser(t *testing.T) {
	users := &fakeUsers{rows: []models.User{{
		ID:       "user1",
		Email:    "ana@fazenda.com",
		Password: "segredo",
		Status:   enums.UserStatusSuspended,
	}}}
	svc := newTestService(t, users, &fakeLicenses{}, kv.NewMemory())

	got, err := svc.Login(context.Background(), "ana@fazenda.com", "segredo")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got != nil {
		t.Fatal("suspended user must not log in")
	}
}

func TestLoginExpiredClientStillSucceeds(t *testing.T) {
	// Trial ended yesterday: the login flips user and license to
	// expired but still goes through.
	expired := testNow.AddDate(0, 0, -1)
	users := &fakeUsers{rows: []models.User{{
		ID:        "user1",
		Email:     "ana@fazenda.com",
		Password:  "segredo",
		Role:      enums.UserRoleClient,
		Status:    enums.UserStatusTrial,
		ExpiresAt: &expired,
	}}}
	licenses := &fakeLicenses{rows: []models.License{{
		ID:     "LIC001",
		UserID: "user1",
		Status: enums.LicenseStatusActive,
	}}}
	store := kv.NewMemory()
	svc := newTestService(t, users, licenses, store)

	got, err := svc.Login(context.Background(), "ana@fazenda.com", "segredo")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got == nil {
		t.Fatal("expired client must still log in")
	}
	if got.Status != enums.UserStatusExpired {
		t.Errorf("returned status = %s, want expired", got.Status)
	}
	if users.rows[0].Status != enums.UserStatusExpired {
		t.Errorf("persisted status = %s, want expired", users.rows[0].Status)
	}
	if licenses.rows[0].Status != enums.LicenseStatusExpired {
		t.Errorf("license status = %s, want expired", licenses.rows[0].Status)
	}
	if users.rows[0].LastLogin == nil || !users.rows[0].LastLogin.Equal(testNow) {
		t.Errorf("lastLogin = %v, want %v", users.rows[0].LastLogin, testNow)
	}
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	users := &fakeUsers{rows: []models.User{{
		ID:       "user1",
		Email:    "ana@fazenda.com",
		Password: "segredo",
		Status:   enums.UserStatusActive,
		Role:     enums.UserRoleAdmin,
	}}}
	store := kv.NewMemory()
	svc := newTestService(t, users, &fakeLicenses{}, store)
	ctx := context.Background()

	got, err := svc.Login(ctx, "ana@fazenda.com", "segredo")
	if err != nil || got == nil {
		t.Fatalf("Login = %v, %v", got, err)
	}
	if !svc.IsAuthenticated(ctx) {
		t.Fatal("expected session after login")
	}

	current, err := svc.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if current == nil || current.ID != "user1" {
		t.Fatalf("current user = %+v, want user1", current)
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if svc.IsAuthenticated(ctx) {
		t.Error("session must be gone after logout")
	}
	// Logging out twice is harmless.
	if err := svc.Logout(ctx); err != nil {
		t.Errorf("second Logout: %v", err)
	}
}
