package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

type fakeUsers struct {
	rows []models.User
}

func (f *fakeUsers) FindByID(id string) (models.User, bool) {
	for _, u := range f.rows {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (f *fakeUsers) FindByEmail(email string) (models.User, bool) {
	for _, u := range f.rows {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return models.User{}, false
}

func (f *fakeUsers) Create(_ context.Context, user models.User) error {
	f.rows = append(f.rows, user)
	return nil
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

func (f *fakeUsers) NextUserID() string {
	return fmt.Sprintf("user%d", len(f.rows)+1)
}

func (f *fakeUsers) NextFarmID() string {
	clients := 0
	for _, u := range f.rows {
		if u.Role == enums.UserRoleClient {
			clients++
		}
	}
	return fmt.Sprintf("FAZ%03d", clients+1)
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

func (f *fakeLicenses) AnyForUser(userID string) (models.License, bool) {
	for _, l := range f.rows {
		if l.UserID == userID {
			return l, true
		}
	}
	return models.License{}, false
}

func (f *fakeLicenses) Create(_ context.Context, license models.License) error {
	f.rows = append(f.rows, license)
	return nil
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

func (f *fakeLicenses) NextID() string {
	return fmt.Sprintf("LIC%03d", len(f.rows)+1)
}

var testNow = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, users *fakeUsers, licenses *fakeLicenses) Service {
	t.Helper()
	svc, err := NewService(users, licenses, 15, 3, WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestCreateTrialUser(t *testing.T) {
	users := &fakeUsers{}
	licenses := &fakeLicenses{}
	svc := newTestService(t, users, licenses)

	user, err := svc.CreateTrialUser(context.Background(), "Ana", "ana@fazenda.com", "segredo", "Fazenda Alegria")
	if err != nil {
		t.Fatalf("CreateTrialUser: %v", err)
	}
	if user.Status != enums.UserStatusTrial {
		t.Errorf("status = %s, want trial", user.Status)
	}
	if user.FarmID != "FAZ001" {
		t.Errorf("farm id = %s, want FAZ001", user.FarmID)
	}
	wantExpiry := testNow.AddDate(0, 0, 15)
	if user.ExpiresAt == nil || !user.ExpiresAt.Equal(wantExpiry) {
		t.Errorf("expiresAt = %v, want %v", user.ExpiresAt, wantExpiry)
	}

	if len(licenses.rows) != 1 {
		t.Fatalf("licenses = %d, want 1", len(licenses.rows))
	}
	lic := licenses.rows[0]
	if lic.PlanType != enums.PlanTypeTrial || !lic.Price.IsZero() || lic.SupportHours != 1 {
		t.Errorf("trial license wrong: plan=%s price=%s hours=%v", lic.PlanType, lic.Price, lic.SupportHours)
	}
	if lic.Status != enums.LicenseStatusActive {
		t.Errorf("license status = %s, want active", lic.Status)
	}
}

func TestCreateTrialUserDuplicateEmail(t *testing.T) {
	users := &fakeUsers{rows: []models.User{{ID: "user1", Email: "ana@fazenda.com"}}}
	svc := newTestService(t, users, &fakeLicenses{})

	_, err := svc.CreateTrialUser(context.Background(), "Ana", "ana@fazenda.com", "x", "Fazenda")
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if len(users.rows) != 1 {
		t.Errorf("users = %d, want 1", len(users.rows))
	}
}

func TestCreatePaidUserBasicThreeMonths(t *testing.T) {
	users := &fakeUsers{}
	licenses := &fakeLicenses{}
	svc := newTestService(t, users, licenses)

	user, err := svc.CreatePaidUser(context.Background(), "Bruno", "bruno@fazenda.com", "x", "Fazenda Brava", enums.PlanTypeBasic, 3)
	if err != nil {
		t.Fatalf("CreatePaidUser: %v", err)
	}
	if user.Status != enums.UserStatusActive {
		t.Errorf("status = %s, want active", user.Status)
	}

	lic := licenses.rows[0]
	if !lic.Price.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("price = %s, want 1500", lic.Price)
	}
	if lic.SupportHours != 9 {
		t.Errorf("support hours = %v, want 9", lic.SupportHours)
	}
	wantEnd := testNow.AddDate(0, 3, 0)
	if !lic.EndDate.Equal(wantEnd) {
		t.Errorf("endDate = %v, want %v", lic.EndDate, wantEnd)
	}
}

func TestCreatePaidUserRejectsTrialPlan(t *testing.T) {
	svc := newTestService(t, &fakeUsers{}, &fakeLicenses{})
	if _, err := svc.CreatePaidUser(context.Background(), "x", "x@y.z", "p", "f", enums.PlanTypeTrial, 3); err == nil {
		t.Fatal("expected validation error for trial plan")
	}
}

func TestSuspendUserCancelsActiveLicense(t *testing.T) {
	users := &fakeUsers{rows: []models.User{{ID: "user1", Status: enums.UserStatusActive}}}
	licenses := &fakeLicenses{rows: []models.License{{ID: "LIC001", UserID: "user1", Status: enums.LicenseStatusActive}}}
	svc := newTestService(t, users, licenses)

	ok, err := svc.SuspendUser(context.Background(), "user1")
	if err != nil || !ok {
		t.Fatalf("SuspendUser = %v, %v", ok, err)
	}
	if users.rows[0].Status != enums.UserStatusSuspended {
		t.Errorf("user status = %s, want suspended", users.rows[0].Status)
	}
	if licenses.rows[0].Status != enums.LicenseStatusCanceled {
		t.Errorf("license status = %s, want canceled", licenses.rows[0].Status)
	}
}

func TestSuspendUnknownUser(t *testing.T) {
	svc := newTestService(t, &fakeUsers{}, &fakeLicenses{})
	ok, err := svc.SuspendUser(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("SuspendUser: %v", err)
	}
	if ok {
		t.Error("expected false for unknown user")
	}
}

func TestSuspendThenReactivate(t *testing.T) {
	users := &fakeUsers{rows: []models.User{{ID: "user1", Status: enums.UserStatusActive}}}
	licenses := &fakeLicenses{rows: []models.License{{ID: "LIC001", UserID: "user1", Status: enums.LicenseStatusActive}}}
	svc := newTestService(t, users, licenses)
	ctx := context.Background()

	if ok, _ := svc.SuspendUser(ctx, "user1"); !ok {
		t.Fatal("suspend failed")
	}
	if ok, _ := svc.ExtendUserLicense(ctx, "user1", 2); ok {
		t.Error("extend on suspended user must fail, no active license")
	}
	if ok, _ := svc.ReactivateUser(ctx, "user1", 0); !ok {
		t.Fatal("reactivate failed")
	}

	if users.rows[0].Status != enums.UserStatusActive {
		t.Errorf("user status = %s, want active", users.rows[0].Status)
	}
	if licenses.rows[0].Status != enums.LicenseStatusActive {
		t.Errorf("license status = %s, want active", licenses.rows[0].Status)
	}
	wantEnd := testNow.AddDate(0, 3, 0)
	if !licenses.rows[0].EndDate.Equal(wantEnd) {
		t.Errorf("endDate = %v, want %v (default 3 months)", licenses.rows[0].EndDate, wantEnd)
	}
}

func TestReactivateCreatesBasicLicenseWhenNoneExists(t *testing.T) {
	users := &fakeUsers{rows: []models.User{{ID: "user1", Status: enums.UserStatusSuspended}}}
	licenses := &fakeLicenses{}
	svc := newTestService(t, users, licenses)

	ok, err := svc.ReactivateUser(context.Background(), "user1", 3)
	if err != nil || !ok {
		t.Fatalf("ReactivateUser = %v, %v", ok, err)
	}
	if len(licenses.rows) != 1 {
		t.Fatalf("licenses = %d, want 1", len(licenses.rows))
	}
	lic := licenses.rows[0]
	if lic.PlanType != enums.PlanTypeBasic {
		t.Errorf("plan = %s, want basic", lic.PlanType)
	}
	if !lic.Price.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("price = %s, want 1500", lic.Price)
	}
	if lic.SupportHours != 9 {
		t.Errorf("support hours = %v, want 9", lic.SupportHours)
	}
}

func TestExtendCompoundsOnCurrentEndDate(t *testing.T) {
	endDate := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	users := &fakeUsers{rows: []models.User{{ID: "user1", Status: enums.UserStatusActive, ExpiresAt: &endDate}}}
	licenses := &fakeLicenses{rows: []models.License{{
		ID:           "LIC001",
		UserID:       "user1",
		Status:       enums.LicenseStatusActive,
		EndDate:      endDate,
		Price:        decimal.NewFromInt(1500),
		SupportHours: 9,
	}}}
	svc := newTestService(t, users, licenses)

	ok, err := svc.ExtendUserLicense(context.Background(), "user1", 3)
	if err != nil || !ok {
		t.Fatalf("ExtendUserLicense = %v, %v", ok, err)
	}

	wantEnd := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	lic := licenses.rows[0]
	if !lic.EndDate.Equal(wantEnd) {
		t.Errorf("endDate = %v, want %v", lic.EndDate, wantEnd)
	}
	if !lic.Price.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("price = %s, want 3000", lic.Price)
	}
	if lic.SupportHours != 18 {
		t.Errorf("support hours = %v, want 18", lic.SupportHours)
	}
	if users.rows[0].ExpiresAt == nil || !users.rows[0].ExpiresAt.Equal(wantEnd) {
		t.Errorf("user expiresAt = %v, want %v", users.rows[0].ExpiresAt, wantEnd)
	}
}

func TestExtendIsAssociative(t *testing.T) {
	endDate := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	build := func() (*fakeLicenses, Service) {
		users := &fakeUsers{rows: []models.User{{ID: "user1", Status: enums.UserStatusActive}}}
		licenses := &fakeLicenses{rows: []models.License{{
			ID:      "LIC001",
			UserID:  "user1",
			Status:  enums.LicenseStatusActive,
			EndDate: endDate,
			Price:   decimal.NewFromInt(500),
		}}}
		return licenses, newTestService(t, users, licenses)
	}
	ctx := context.Background()

	split, splitSvc := build()
	if ok, _ := splitSvc.ExtendUserLicense(ctx, "user1", 2); !ok {
		t.Fatal("first extend failed")
	}
	if ok, _ := splitSvc.ExtendUserLicense(ctx, "user1", 4); !ok {
		t.Fatal("second extend failed")
	}

	once, onceSvc := build()
	if ok, _ := onceSvc.ExtendUserLicense(ctx, "user1", 6); !ok {
		t.Fatal("single extend failed")
	}

	if !split.rows[0].EndDate.Equal(once.rows[0].EndDate) {
		t.Errorf("split endDate %v != single endDate %v", split.rows[0].EndDate, once.rows[0].EndDate)
	}
	if !split.rows[0].Price.Equal(once.rows[0].Price) {
		t.Errorf("split price %s != single price %s", split.rows[0].Price, once.rows[0].Price)
	}
}

func TestHasValidLicenseAndRemainingDays(t *testing.T) {
	endDate := testNow.AddDate(0, 0, 10)
	licenses := &fakeLicenses{rows: []models.License{{
		ID:      "LIC001",
		UserID:  "user1",
		Status:  enums.LicenseStatusActive,
		EndDate: endDate,
	}}}
	svc := newTestService(t, &fakeUsers{}, licenses)

	if !svc.HasValidLicense("user1") {
		t.Error("expected valid license")
	}
	if days := svc.RemainingDays("user1"); days != 10 {
		t.Errorf("remaining days = %d, want 10", days)
	}
	if svc.HasValidLicense("ghost") {
		t.Error("unknown user must not have a valid license")
	}
	if days := svc.RemainingDays("ghost"); days != 0 {
		t.Errorf("remaining days for unknown user = %d, want 0", days)
	}
}
