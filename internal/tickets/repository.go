package tickets

import (
	"context"

	"github.com/fazendaapp/fazenda-backend/internal/repo"
	"github.com/fazendaapp/fazenda-backend/pkg/kv"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

// Repository owns the support ticket collection.
type Repository struct {
	col *repo.Collection[models.SupportTicket]
}

// NewRepository opens the ticket collection from the store.
func NewRepository(ctx context.Context, store kv.Store, namespace string, observer repo.SnapshotObserver) (*Repository, error) {
	col, err := repo.OpenCollection[models.SupportTicket](ctx, store, kv.Key(namespace, "tickets"), observer)
	if err != nil {
		return nil, err
	}
	return &Repository{col: col}, nil
}

func (r *Repository) List() []models.SupportTicket {
	return r.col.List()
}

func (r *Repository) FindByID(id string) (models.SupportTicket, bool) {
	return r.col.Find(id)
}

func (r *Repository) ByUser(userID string) []models.SupportTicket {
	return r.col.Filter(func(t models.SupportTicket) bool {
		return t.UserID == userID
	})
}

func (r *Repository) Create(ctx context.Context, ticket models.SupportTicket) error {
	return r.col.Add(ctx, ticket)
}

func (r *Repository) Update(ctx context.Context, ticket models.SupportTicket) (bool, error) {
	return r.col.Update(ctx, ticket)
}

// NextID allocates the next ticket id across the whole collection.
func (r *Repository) NextID() string {
	return repo.NextID("TIC", r.col.Count(nil))
}
