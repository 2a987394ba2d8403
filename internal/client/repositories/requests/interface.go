package requests

import (
	"context"

	"github.com/dmitrijs2005/mcoffline/internal/client/models"
)

type Repository interface {
	// Enqueue stores req as pending and returns its sequence number.
	Enqueue(ctx context.Context, req *models.UpdateRequest) (int64, error)

	// ListPending returns pending requests in replay order.
	ListPending(ctx context.Context) ([]*models.UpdateRequest, error)

	GetBySeq(ctx context.Context, seq int64) (*models.UpdateRequest, error)

	// MarkReplayed acknowledges a pending request. It returns
	// common.ErrNotFound if seq is unknown or already replayed.
	MarkReplayed(ctx context.Context, seq int64) error

	CountPending(ctx context.Context) (int, error)

	// LastOrdering returns the highest ordering token ever queued, or 0 for
	// an empty queue.
	LastOrdering(ctx context.Context) (int64, error)
}
