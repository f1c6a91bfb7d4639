package incidents

import (
	"context"

	"github.com/fazendaapp/fazenda-backend/internal/repo"
	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	"github.com/fazendaapp/fazenda-backend/pkg/kv"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

// Repository owns the incident collection.
type Repository struct {
	col *repo.Collection[models.Incident]
}

// NewRepository opens the incident collection from the store.
func NewRepository(ctx context.Context, store kv.Store, namespace string, observer repo.SnapshotObserver) (*Repository, error) {
	col, err := repo.OpenCollection[models.Incident](ctx, store, kv.Key(namespace, "incidents"), observer)
	if err != nil {
		return nil, err
	}
	return &Repository{col: col}, nil
}

func (r *Repository) List() []models.Incident {
	return r.col.List()
}

func (r *Repository) FindByID(id string) (models.Incident, bool) {
	return r.col.Find(id)
}

func (r *Repository) ByWorker(workerID string) []models.Incident {
	return r.col.Filter(func(i models.Incident) bool {
		return i.WorkerID == workerID
	})
}

func (r *Repository) ByStatus(status enums.IncidentStatus) []models.Incident {
	return r.col.Filter(func(i models.Incident) bool {
		return i.Status == status
	})
}

func (r *Repository) Create(ctx context.Context, incident models.Incident) error {
	return r.col.Add(ctx, incident)
}

func (r *Repository) Update(ctx context.Context, incident models.Incident) (bool, error) {
	return r.col.Update(ctx, incident)
}

// CountByWorker returns how many incidents the worker has authored.
func (r *Repository) CountByWorker(workerID string) int {
	return r.col.Count(func(i models.Incident) bool {
		return i.WorkerID == workerID
	})
}

// NextID allocates the next incident id across the whole collection.
func (r *Repository) NextID() string {
	return repo.NextID("OC", r.col.Count(nil))
}
