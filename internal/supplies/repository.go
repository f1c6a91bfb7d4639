package supplies

import (
	"context"

	"github.com/fazendaapp/fazenda-backend/internal/repo"
	"github.com/fazendaapp/fazenda-backend/pkg/kv"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

// Repository owns the supply collection.
type Repository struct {
	col *repo.Collection[models.Supply]
}

// NewRepository opens the supply collection from the store.
func NewRepository(ctx context.Context, store kv.Store, namespace string, observer repo.SnapshotObserver) (*Repository, error) {
	col, err := repo.OpenCollection[models.Supply](ctx, store, kv.Key(namespace, "supplies"), observer)
	if err != nil {
		return nil, err
	}
	return &Repository{col: col}, nil
}

func (r *Repository) List() []models.Supply {
	return r.col.List()
}

func (r *Repository) FindByID(id string) (models.Supply, bool) {
	return r.col.Find(id)
}

func (r *Repository) Create(ctx context.Context, supply models.Supply) error {
	return r.col.Add(ctx, supply)
}

func (r *Repository) Update(ctx context.Context, supply models.Supply) (bool, error) {
	return r.col.Update(ctx, supply)
}

// NextID allocates the next supply id across the whole collection.
func (r *Repository) NextID() string {
	return repo.NextID("S", r.col.Count(nil))
}
