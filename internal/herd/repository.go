package herd

import (
	"context"

	"github.com/fazendaapp/fazenda-backend/internal/repo"
	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	"github.com/fazendaapp/fazenda-backend/pkg/kv"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

// Repository owns the animal collection.
type Repository struct {
	col *repo.Collection[models.Animal]
}

// NewRepository opens the animal collection from the store.
func NewRepository(ctx context.Context, store kv.Store, namespace string, observer repo.SnapshotObserver) (*Repository, error) {
	col, err := repo.OpenCollection[models.Animal](ctx, store, kv.Key(namespace, "animals"), observer)
	if err != nil {
		return nil, err
	}
	return &Repository{col: col}, nil
}

func (r *Repository) List() []models.Animal {
	return r.col.List()
}

func (r *Repository) FindByID(id string) (models.Animal, bool) {
	return r.col.Find(id)
}

func (r *Repository) ByType(animalType enums.AnimalType) []models.Animal {
	return r.col.Filter(func(a models.Animal) bool {
		return a.Type == animalType
	})
}

func (r *Repository) Create(ctx context.Context, animal models.Animal) error {
	return r.col.Add(ctx, animal)
}

func (r *Repository) Update(ctx context.Context, animal models.Animal) (bool, error) {
	return r.col.Update(ctx, animal)
}

// NextID allocates an id scoped to the animal's sub-type, so cows, bulls
// and calves number independently (V001, T001, B001).
func (r *Repository) NextID(animalType enums.AnimalType) string {
	inType := r.col.Count(func(a models.Animal) bool {
		return a.Type == animalType
	})
	return repo.NextID(animalType.IDPrefix(), inType)
}
