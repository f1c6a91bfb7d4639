package workers

import (
	"context"

	"github.com/fazendaapp/fazenda-backend/internal/repo"
	"github.com/fazendaapp/fazenda-backend/pkg/kv"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

// Repository owns the field-worker collection and the route history
// archive that close-outs append to.
type Repository struct {
	col      *repo.Collection[models.FieldWorker]
	archives *repo.Collection[models.RouteArchive]
}

// NewRepository opens the worker and route-history collections.
func NewRepository(ctx context.Context, store kv.Store, namespace string, observer repo.SnapshotObserver) (*Repository, error) {
	col, err := repo.OpenCollection[models.FieldWorker](ctx, store, kv.Key(namespace, "workers"), observer)
	if err != nil {
		return nil, err
	}
	archives, err := repo.OpenCollection[models.RouteArchive](ctx, store, kv.Key(namespace, "route_history"), observer)
	if err != nil {
		return nil, err
	}
	return &Repository{col: col, archives: archives}, nil
}

func (r *Repository) List() []models.FieldWorker {
	return r.col.List()
}

func (r *Repository) FindByID(id string) (models.FieldWorker, bool) {
	return r.col.Find(id)
}

func (r *Repository) Create(ctx context.Context, worker models.FieldWorker) error {
	return r.col.Add(ctx, worker)
}

func (r *Repository) Update(ctx context.Context, worker models.FieldWorker) (bool, error) {
	return r.col.Update(ctx, worker)
}

// NextID allocates the next worker id across the whole collection.
func (r *Repository) NextID() string {
	return repo.NextID("P", r.col.Count(nil))
}

// ArchiveRoute stores a closed-out tracking session at the head of the
// history, so reads come back newest first. A second close-out on the
// same worker and day replaces the earlier archive in place.
func (r *Repository) ArchiveRoute(ctx context.Context, archive models.RouteArchive) error {
	if replaced, err := r.archives.Update(ctx, archive); err != nil || replaced {
		return err
	}
	return r.archives.Prepend(ctx, archive)
}

// RouteHistory returns the archived sessions for a worker, newest
// first.
func (r *Repository) RouteHistory(workerID string) []models.RouteArchive {
	return r.archives.Filter(func(a models.RouteArchive) bool {
		return a.WorkerID == workerID
	})
}
