package files

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fazendaapp/fazenda-backend/internal/repo"
	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	"github.com/fazendaapp/fazenda-backend/pkg/kv"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

// Repository owns the stored-file collection: captured audio and photos
// with their payloads inline.
type Repository struct {
	col *repo.Collection[models.StoredFile]
	now func() time.Time
}

// NewRepository opens the file collection from the store.
func NewRepository(ctx context.Context, store kv.Store, namespace string, observer repo.SnapshotObserver) (*Repository, error) {
	col, err := repo.OpenCollection[models.StoredFile](ctx, store, kv.Key(namespace, "files"), observer)
	if err != nil {
		return nil, err
	}
	return &Repository{col: col, now: time.Now}, nil
}

func (r *Repository) List() []models.StoredFile {
	return r.col.List()
}

func (r *Repository) FindByID(id string) (models.StoredFile, bool) {
	return r.col.Find(id)
}

func (r *Repository) ByKind(kind enums.FileKind) []models.StoredFile {
	return r.col.Filter(func(f models.StoredFile) bool { return f.Kind == kind })
}

func (r *Repository) ByWorker(workerID string) []models.StoredFile {
	return r.col.Filter(func(f models.StoredFile) bool { return f.WorkerID == workerID })
}

func (r *Repository) ByFarm(farmID string) []models.StoredFile {
	return r.col.Filter(func(f models.StoredFile) bool { return f.FarmID == farmID })
}

func (r *Repository) ByIncident(incidentID string) []models.StoredFile {
	return r.col.Filter(func(f models.StoredFile) bool { return f.IncidentID == incidentID })
}

func (r *Repository) ByAnimal(animalID string) []models.StoredFile {
	return r.col.Filter(func(f models.StoredFile) bool { return f.AnimalID == animalID })
}

// Save assigns the file a fresh id and creation time, then persists it.
func (r *Repository) Save(ctx context.Context, file models.StoredFile) (models.StoredFile, error) {
	now := r.now()
	file.ID = fmt.Sprintf("file_%d_%s", now.UnixMilli(), uuid.NewString()[:8])
	file.CreatedAt = now
	if err := r.col.Add(ctx, file); err != nil {
		return models.StoredFile{}, err
	}
	return file, nil
}

// Delete removes a file. It reports false when the id is absent.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	return r.col.Delete(ctx, id)
}

// MergeMetadata shallow-merges the given keys into the file's metadata.
func (r *Repository) MergeMetadata(ctx context.Context, id string, metadata map[string]any) (bool, error) {
	file, ok := r.col.Find(id)
	if !ok {
		return false, nil
	}
	if file.Metadata == nil {
		file.Metadata = make(map[string]any, len(metadata))
	}
	for k, v := range metadata {
		file.Metadata[k] = v
	}
	return r.col.Update(ctx, file)
}

// LinkToIncident attaches the file to an incident record.
func (r *Repository) LinkToIncident(ctx context.Context, id, incidentID string) (bool, error) {
	file, ok := r.col.Find(id)
	if !ok {
		return false, nil
	}
	file.IncidentID = incidentID
	return r.col.Update(ctx, file)
}

// LinkToAnimal attaches the file to a herd record.
func (r *Repository) LinkToAnimal(ctx context.Context, id, animalID string) (bool, error) {
	file, ok := r.col.Find(id)
	if !ok {
		return false, nil
	}
	file.AnimalID = animalID
	return r.col.Update(ctx, file)
}
