package lifecycle

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	pkgerrors "github.com/fazendaapp/fazenda-backend/pkg/errors"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

type usersRepository interface {
	FindByID(id string) (models.User, bool)
	FindByEmail(email string) (models.User, bool)
	Create(ctx context.Context, user models.User) error
	Update(ctx context.Context, user models.User) (bool, error)
	NextUserID() string
	NextFarmID() string
}

type licensesRepository interface {
	ActiveForUser(userID string) (models.License, bool)
	AnyForUser(userID string) (models.License, bool)
	Create(ctx context.Context, license models.License) error
	Update(ctx context.Context, license models.License) (bool, error)
	NextID() string
}

// Plan rates in BRL per month plus the support-hour budget each month
// buys. The trial plan is flat: price zero, one hour total.
var (
	basicMonthlyPrice   = decimal.NewFromInt(500)
	premiumMonthlyPrice = decimal.NewFromInt(900)
)

const (
	basicMonthlyHours   = 3.0
	premiumMonthlyHours = 6.0
	trialSupportHours   = 1.0
)

// Service drives every User/License status transition.
type Service interface {
	CreateTrialUser(ctx context.Context, name, email, password, farmName string) (models.User, error)
	CreatePaidUser(ctx context.Context, name, email, password, farmName string, plan enums.PlanType, durationMonths int) (models.User, error)
	CreateFieldWorkerUser(ctx context.Context, name, email, password, farmID, farmName, workerID string) (models.User, error)
	SuspendUser(ctx context.Context, userID string) (bool, error)
	ReactivateUser(ctx context.Context, userID string, months int) (bool, error)
	ExtendUserLicense(ctx context.Context, userID string, additionalMonths int) (bool, error)
	HasValidLicense(userID string) bool
	RemainingDays(userID string) int
}

type service struct {
	users              usersRepository
	licenses           licensesRepository
	trialDays          int
	reactivationMonths int
	now                func() time.Time
}

// Option tweaks service construction.
type Option func(*service)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// NewService builds the lifecycle engine over the user and license
// repositories. trialDays and reactivationMonths come from config.
func NewService(users usersRepository, licenses licensesRepository, trialDays, reactivationMonths int, opts ...Option) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if licenses == nil {
		return nil, fmt.Errorf("licenses repository required")
	}
	if trialDays <= 0 {
		return nil, fmt.Errorf("trial days must be positive")
	}
	if reactivationMonths <= 0 {
		return nil, fmt.Errorf("reactivation months must be positive")
	}
	s := &service{
		users:              users,
		licenses:           licenses,
		trialDays:          trialDays,
		reactivationMonths: reactivationMonths,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *service) CreateTrialUser(ctx context.Context, name, email, password, farmName string) (models.User, error) {
	email = strings.TrimSpace(email)
	if _, exists := s.users.FindByEmail(email); exists {
		return models.User{}, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("email %s already registered", email))
	}

	now := s.now()
	expiresAt := now.AddDate(0, 0, s.trialDays)
	user := models.User{
		ID:        s.users.NextUserID(),
		Email:     email,
		Name:      name,
		Password:  password,
		Role:      enums.UserRoleClient,
		Status:    enums.UserStatusTrial,
		CreatedAt: now,
		ExpiresAt: &expiresAt,
		FarmID:    s.users.NextFarmID(),
		FarmName:  farmName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	license := models.License{
		ID:            s.licenses.NextID(),
		UserID:        user.ID,
		PlanType:      enums.PlanTypeTrial,
		StartDate:     now,
		EndDate:       expiresAt,
		Price:         decimal.Zero,
		Status:        enums.LicenseStatusActive,
		PaymentStatus: enums.PaymentStatusPaid,
		SupportHours:  trialSupportHours,
	}
	if err := s.licenses.Create(ctx, license); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *service) CreatePaidUser(ctx context.Context, name, email, password, farmName string, plan enums.PlanType, durationMonths int) (models.User, error) {
	if plan != enums.PlanTypeBasic && plan != enums.PlanTypePremium {
		return models.User{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("plan %s is not purchasable", plan))
	}
	if durationMonths <= 0 {
		return models.User{}, pkgerrors.New(pkgerrors.CodeValidation, "duration must be at least one month")
	}
	email = strings.TrimSpace(email)
	if _, exists := s.users.FindByEmail(email); exists {
		return models.User{}, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("email %s already registered", email))
	}

	now := s.now()
	expiresAt := now.AddDate(0, durationMonths, 0)
	user := models.User{
		ID:        s.users.NextUserID(),
		Email:     email,
		Name:      name,
		Password:  password,
		Role:      enums.UserRoleClient,
		Status:    enums.UserStatusActive,
		CreatedAt: now,
		ExpiresAt: &expiresAt,
		FarmID:    s.users.NextFarmID(),
		FarmName:  farmName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	monthlyPrice, monthlyHours := basicMonthlyPrice, basicMonthlyHours
	if plan == enums.PlanTypePremium {
		monthlyPrice, monthlyHours = premiumMonthlyPrice, premiumMonthlyHours
	}
	paymentDate := now
	license := models.License{
		ID:            s.licenses.NextID(),
		UserID:        user.ID,
		PlanType:      plan,
		StartDate:     now,
		EndDate:       expiresAt,
		Price:         monthlyPrice.Mul(decimal.NewFromInt(int64(durationMonths))),
		Status:        enums.LicenseStatusActive,
		PaymentStatus: enums.PaymentStatusPaid,
		PaymentDate:   &paymentDate,
		SupportHours:  monthlyHours * float64(durationMonths),
	}
	if err := s.licenses.Create(ctx, license); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// CreateFieldWorkerUser registers a login for on-site staff. Field
// workers carry no expiry and no license; access rides on the farm they
// belong to.
func (s *service) CreateFieldWorkerUser(ctx context.Context, name, email, password, farmID, farmName, workerID string) (models.User, error) {
	email = strings.TrimSpace(email)
	if _, exists := s.users.FindByEmail(email); exists {
		return models.User{}, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("email %s already registered", email))
	}

	user := models.User{
		ID:            s.users.NextUserID(),
		Email:         email,
		Name:          name,
		Password:      password,
		Role:          enums.UserRoleFieldWorker,
		Status:        enums.UserStatusActive,
		CreatedAt:     s.now(),
		FarmID:        farmID,
		FarmName:      farmName,
		FieldWorkerID: workerID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *service) SuspendUser(ctx context.Context, userID string) (bool, error) {
	user, ok := s.users.FindByID(userID)
	if !ok {
		return false, nil
	}
	user.Status = enums.UserStatusSuspended
	if _, err := s.users.Update(ctx, user); err != nil {
		return false, err
	}
	if license, ok := s.licenses.ActiveForUser(userID); ok {
		license.Status = enums.LicenseStatusCanceled
		if _, err := s.licenses.Update(ctx, license); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (s *service) ReactivateUser(ctx context.Context, userID string, months int) (bool, error) {
	if months <= 0 {
		months = s.reactivationMonths
	}
	user, ok := s.users.FindByID(userID)
	if !ok {
		return false, nil
	}

	now := s.now()
	endDate := now.AddDate(0, months, 0)
	user.Status = enums.UserStatusActive
	user.ExpiresAt = &endDate
	if _, err := s.users.Update(ctx, user); err != nil {
		return false, err
	}

	if license, ok := s.licenses.AnyForUser(userID); ok {
		// Renew the existing record in place. Price and hours stay as
		// they were; only the window and status move.
		license.Status = enums.LicenseStatusActive
		license.StartDate = now
		license.EndDate = endDate
		if _, err := s.licenses.Update(ctx, license); err != nil {
			return false, err
		}
		return true, nil
	}

	paymentDate := now
	license := models.License{
		ID:            s.licenses.NextID(),
		UserID:        userID,
		PlanType:      enums.PlanTypeBasic,
		StartDate:     now,
		EndDate:       endDate,
		Price:         basicMonthlyPrice.Mul(decimal.NewFromInt(int64(months))),
		Status:        enums.LicenseStatusActive,
		PaymentStatus: enums.PaymentStatusPaid,
		PaymentDate:   &paymentDate,
		SupportHours:  basicMonthlyHours * float64(months),
	}
	if err := s.licenses.Create(ctx, license); err != nil {
		return false, err
	}
	return true, nil
}

// ExtendUserLicense pushes the active license's end date out by whole
// months, compounding on the current end date rather than now. Pricing
// uses the basic-plan rate for every plan type, matching the billing
// rules this replaces.
func (s *service) ExtendUserLicense(ctx context.Context, userID string, additionalMonths int) (bool, error) {
	if additionalMonths <= 0 {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "additional months must be positive")
	}
	user, ok := s.users.FindByID(userID)
	if !ok {
		return false, nil
	}
	license, ok := s.licenses.ActiveForUser(userID)
	if !ok {
		return false, nil
	}

	newEndDate := license.EndDate.AddDate(0, additionalMonths, 0)
	user.ExpiresAt = &newEndDate
	if _, err := s.users.Update(ctx, user); err != nil {
		return false, err
	}

	license.EndDate = newEndDate
	license.Price = license.Price.Add(basicMonthlyPrice.Mul(decimal.NewFromInt(int64(additionalMonths))))
	license.SupportHours += basicMonthlyHours * float64(additionalMonths)
	if _, err := s.licenses.Update(ctx, license); err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) HasValidLicense(userID string) bool {
	license, ok := s.licenses.ActiveForUser(userID)
	if !ok {
		return false
	}
	return license.EndDate.After(s.now())
}

func (s *service) RemainingDays(userID string) int {
	license, ok := s.licenses.ActiveForUser(userID)
	if !ok {
		return 0
	}
	remaining := license.EndDate.Sub(s.now())
	days := int(math.Ceil(remaining.Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
