package licenses

import (
	"context"

	"github.com/fazendaapp/fazenda-backend/internal/repo"
	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	"github.com/fazendaapp/fazenda-backend/pkg/kv"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

// Repository owns the license collection.
type Repository struct {
	col *repo.Collection[models.License]
}

// NewRepository opens the license collection from the store.
func NewRepository(ctx context.Context, store kv.Store, namespace string, observer repo.SnapshotObserver) (*Repository, error) {
	col, err := repo.OpenCollection[models.License](ctx, store, kv.Key(namespace, "licenses"), observer)
	if err != nil {
		return nil, err
	}
	return &Repository{col: col}, nil
}

func (r *Repository) List() []models.License {
	return r.col.List()
}

func (r *Repository) FindByID(id string) (models.License, bool) {
	return r.col.Find(id)
}

// ActiveForUser returns the first active license owned by the user. The
// data model does not forbid multiple active licenses; first match in
// insertion order wins.
func (r *Repository) ActiveForUser(userID string) (models.License, bool) {
	matches := r.col.Filter(func(l models.License) bool {
		return l.UserID == userID && l.Status == enums.LicenseStatusActive
	})
	if len(matches) == 0 {
		return models.License{}, false
	}
	return matches[0], true
}

// AnyForUser returns the first license owned by the user regardless of
// status. Reactivation renews this record in place.
func (r *Repository) AnyForUser(userID string) (models.License, bool) {
	matches := r.col.Filter(func(l models.License) bool {
		return l.UserID == userID
	})
	if len(matches) == 0 {
		return models.License{}, false
	}
	return matches[0], true
}

func (r *Repository) ByUser(userID string) []models.License {
	return r.col.Filter(func(l models.License) bool {
		return l.UserID == userID
	})
}

func (r *Repository) Create(ctx context.Context, license models.License) error {
	return r.col.Add(ctx, license)
}

func (r *Repository) Update(ctx context.Context, license models.License) (bool, error) {
	return r.col.Update(ctx, license)
}

// NextID allocates the next license id across the whole collection.
func (r *Repository) NextID() string {
	return repo.NextID("LIC", r.col.Count(nil))
}
