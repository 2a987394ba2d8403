package entities

import (
	"context"

	"github.com/dmitrijs2005/mcoffline/internal/client/models"
)

// Repository is the Offline Content Repository. Lookups return
// common.ErrNotFound when nothing matches.
type Repository interface {
	// GetByAPIPath returns the entity cached under the exact normalized path.
	GetByAPIPath(ctx context.Context, path string) (*models.Entity, error)

	// GetByTypeAndID returns the entity with the given domain identity.
	GetByTypeAndID(ctx context.Context, entityType models.EntityType, id int64) (*models.Entity, error)

	// GetByParent returns the most recently stored entity of the given type
	// owned by parentID.
	GetByParent(ctx context.Context, entityType models.EntityType, parentID int64) (*models.Entity, error)

	// ListBySearchType returns entities cached from searches of that type.
	ListBySearchType(ctx context.Context, searchType models.SearchType) ([]*models.Entity, error)

	// Put stores e, replacing whatever was cached under the same path or the
	// same (type, id).
	Put(ctx context.Context, e *models.Entity) error

	DeleteByAPIPath(ctx context.Context, path string) error

	Count(ctx context.Context) (int, error)
}
