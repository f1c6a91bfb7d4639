package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/fazendaapp/fazenda-backend/internal/repo"
	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	"github.com/fazendaapp/fazenda-backend/pkg/kv"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

// Repository owns the user collection.
type Repository struct {
	col *repo.Collection[models.User]
}

// NewRepository opens the user collection from the store.
func NewRepository(ctx context.Context, store kv.Store, namespace string, observer repo.SnapshotObserver) (*Repository, error) {
	col, err := repo.OpenCollection[models.User](ctx, store, kv.Key(namespace, "users"), observer)
	if err != nil {
		return nil, err
	}
	return &Repository{col: col}, nil
}

func (r *Repository) List() []models.User {
	return r.col.List()
}

func (r *Repository) FindByID(id string) (models.User, bool) {
	return r.col.Find(id)
}

func (r *Repository) FindByEmail(email string) (models.User, bool) {
	matches := r.col.Filter(func(u models.User) bool {
		return strings.EqualFold(u.Email, email)
	})
	if len(matches) == 0 {
		return models.User{}, false
	}
	return matches[0], true
}

func (r *Repository) Create(ctx context.Context, user models.User) error {
	return r.col.Add(ctx, user)
}

func (r *Repository) Update(ctx context.Context, user models.User) (bool, error) {
	return r.col.Update(ctx, user)
}

func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	return r.col.Delete(ctx, id)
}

// NextUserID produces the next sequential user id, unpadded.
func (r *Repository) NextUserID() string {
	return fmt.Sprintf("user%d", r.col.Count(nil)+1)
}

// NextFarmID allocates a farm id scoped to client-role users.
func (r *Repository) NextFarmID() string {
	clients := r.col.Count(func(u models.User) bool {
		return u.Role == enums.UserRoleClient
	})
	return repo.NextID("FAZ", clients)
}
