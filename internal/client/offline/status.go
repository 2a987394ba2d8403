package offline

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mcoffline/internal/client/models"
	"github.com/dmitrijs2005/mcoffline/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mcoffline/internal/common"
)

// StatusSource reports the current offline status.
type StatusSource interface {
	Status(ctx context.Context) (models.OfflineStatus, error)
}

// StatusStore keeps the offline status flag in the metadata table. The flag
// is read on every call, so a change made by another process or by the
// watcher takes effect on the next request.
type StatusStore struct {
	repo metadata.Repository
}

func NewStatusStore(repo metadata.Repository) *StatusStore {
	return &StatusStore{repo: repo}
}

// Status returns the persisted flag, ONLINE when it was never set.
func (s *StatusStore) Status(ctx context.Context) (models.OfflineStatus, error) {
	v, err := s.repo.Get(ctx, common.OfflineStatusKey)
	if err != nil {
		return "", fmt.Errorf("read offline status: %w", err)
	}
	return models.ParseOfflineStatus(string(v))
}

func (s *StatusStore) SetStatus(ctx context.Context, status models.OfflineStatus) error {
	if _, err := models.ParseOfflineStatus(string(status)); err != nil {
		return err
	}
	if err := s.repo.Set(ctx, common.OfflineStatusKey, []byte(status)); err != nil {
		return fmt.Errorf("write offline status: %w", err)
	}
	return nil
}

// FixedStatus is a StatusSource that always reports the same status.
type FixedStatus models.OfflineStatus

func (f FixedStatus) Status(context.Context) (models.OfflineStatus, error) {
	return models.OfflineStatus(f), nil
}
