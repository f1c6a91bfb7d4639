package tasks

import (
	"context"

	"github.com/fazendaapp/fazenda-backend/internal/repo"
	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	"github.com/fazendaapp/fazenda-backend/pkg/kv"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

// Repository owns the task collection.
type Repository struct {
	col *repo.Collection[models.Task]
}

// NewRepository opens the task collection from the store.
func NewRepository(ctx context.Context, store kv.Store, namespace string, observer repo.SnapshotObserver) (*Repository, error) {
	col, err := repo.OpenCollection[models.Task](ctx, store, kv.Key(namespace, "tasks"), observer)
	if err != nil {
		return nil, err
	}
	return &Repository{col: col}, nil
}

func (r *Repository) List() []models.Task {
	return r.col.List()
}

func (r *Repository) FindByID(id string) (models.Task, bool) {
	return r.col.Find(id)
}

func (r *Repository) ByWorker(workerID string) []models.Task {
	return r.col.Filter(func(t models.Task) bool {
		return t.WorkerID == workerID
	})
}

func (r *Repository) Create(ctx context.Context, task models.Task) error {
	return r.col.Add(ctx, task)
}

// SetStatus flips a task's status. It reports false when the id is
// absent.
func (r *Repository) SetStatus(ctx context.Context, id string, status enums.TaskStatus) (bool, error) {
	task, ok := r.col.Find(id)
	if !ok {
		return false, nil
	}
	task.Status = status
	return r.col.Update(ctx, task)
}

// CountCompletedByWorker returns how many of the worker's tasks are done.
func (r *Repository) CountCompletedByWorker(workerID string) int {
	return r.col.Count(func(t models.Task) bool {
		return t.WorkerID == workerID && t.Status == enums.TaskStatusDone
	})
}

// NextID allocates the next task id across the whole collection.
func (r *Repository) NextID() string {
	return repo.NextID("T", r.col.Count(nil))
}
