package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	"github.com/fazendaapp/fazenda-backend/pkg/logger"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

type usersRepository interface {
	List() []models.User
	Update(ctx context.Context, user models.User) (bool, error)
}

type licensesRepository interface {
	ActiveForUser(userID string) (models.License, bool)
	Update(ctx context.Context, license models.License) (bool, error)
}

// ExpiryJobParams configure the scheduled expiry sweep.
type ExpiryJobParams struct {
	Logger   *logger.Logger
	Users    usersRepository
	Licenses licensesRepository
}

// NewExpiryJob constructs the license expiry sweep. Login already flips
// an expired client on contact; the sweep catches accounts that never
// log in, so listings and reports see the same status either way.
func NewExpiryJob(params ExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if params.Licenses == nil {
		return nil, fmt.Errorf("licenses repository required")
	}
	return &expiryJob{
		logg:     params.Logger,
		users:    params.Users,
		licenses: params.Licenses,
		now:      time.Now,
	}, nil
}

type expiryJob struct {
	logg     *logger.Logger
	users    usersRepository
	licenses licensesRepository
	now      func() time.Time
}

func (j *expiryJob) Name() string { return "license-expiry-sweep" }

func (j *expiryJob) Run(ctx context.Context) (err error) {
	now := j.now()
	expired := 0
	for _, user := range j.users.List() {
		if user.Role != enums.UserRoleClient {
			continue
		}
		if user.Status != enums.UserStatusActive && user.Status != enums.UserStatusTrial {
			continue
		}
		if user.ExpiresAt == nil || !user.ExpiresAt.Before(now) {
			continue
		}

		user.Status = enums.UserStatusExpired
		if _, updateErr := j.users.Update(ctx, user); updateErr != nil {
			err = multierr.Append(err, fmt.Errorf("expiring user %s: %w", user.ID, updateErr))
			continue
		}
		if license, ok := j.licenses.ActiveForUser(user.ID); ok {
			license.Status = enums.LicenseStatusExpired
			if _, updateErr := j.licenses.Update(ctx, license); updateErr != nil {
				err = multierr.Append(err, fmt.Errorf("expiring license %s: %w", license.ID, updateErr))
			}
		}
		expired++
	}
	if expired > 0 {
		j.logg.Info(j.logg.WithField(ctx, "expired_users", expired), "expiry sweep flipped accounts")
	}
	return err
}
