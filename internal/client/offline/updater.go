package offline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/mcoffline/internal/client/models"
	"github.com/dmitrijs2005/mcoffline/internal/client/repositories/entities"
	"github.com/dmitrijs2005/mcoffline/internal/client/repositories/requests"
	"github.com/dmitrijs2005/mcoffline/internal/common"
	"github.com/dmitrijs2005/mcoffline/internal/dbx"
	"github.com/dmitrijs2005/mcoffline/internal/logging"
)

// TxStore is the part of the storage layer the Updater needs: a transaction
// runner and repositories bound to a transaction.
type TxStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error
	Entities(db dbx.DBTX) entities.Repository
	Requests(db dbx.DBTX) requests.Repository
}

// Applier applies an offline write.
type Applier interface {
	Apply(ctx context.Context, req *models.UpdateRequest) (json.RawMessage, error)
}

// Updater applies offline writes to the cached entities and queues them for
// replay.
type Updater struct {
	store    TxStore
	routes   []writeRoute
	userName string
	log      logging.Logger
}

// NewUpdater returns an Updater. userName is recorded as the actor of
// sign, verify, clear and similar transitions.
func NewUpdater(store TxStore, userName string, log logging.Logger) *Updater {
	return &Updater{store: store, routes: writeRoutes, userName: userName, log: log}
}

// Apply queues req and applies its effect in one transaction. When no write
// route matches, or the handler fails, nothing is queued and nothing is
// changed. The returned JSON is the handler's response body, if any.
func (u *Updater) Apply(ctx context.Context, req *models.UpdateRequest) (json.RawMessage, error) {
	path, query := splitKey(req.Endpoint)
	route, ok := matchWriteRoute(u.routes, req.Verb, path)
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", common.ErrUnsupportedOfflineUpdate, req.Verb, path)
	}

	var out json.RawMessage
	err := u.store.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		queue := u.store.Requests(tx)

		// The Builder's clock only orders requests within one process; after
		// a restart with the clock set back, keep the token past the queue.
		last, err := queue.LastOrdering(ctx)
		if err != nil {
			return err
		}
		if req.Ordering <= last {
			req.Ordering = last + 1
		}

		seq, err := queue.Enqueue(ctx, req)
		if err != nil {
			return err
		}

		w := &write{
			repo:  u.store.Entities(tx),
			seq:   seq,
			req:   req,
			query: query,
			user:  u.userName,
		}
		out, err = route.handle(ctx, w)
		if err != nil {
			return err
		}
		req.Seq = seq
		return nil
	})
	if err != nil {
		u.log.Warn(ctx, "offline update rejected", "verb", req.Verb, "endpoint", req.Endpoint, "error", err)
		return nil, err
	}

	u.log.Debug(ctx, "offline update applied", "verb", req.Verb, "endpoint", req.Endpoint,
		"seq", req.Seq, "style", route.style)
	return out, nil
}

// write is the state a route handler works with: the repository bound to
// the transaction and the request being applied.
type write struct {
	repo  entities.Repository
	seq   int64
	req   *models.UpdateRequest
	query url.Values
	user  string
}

// timestamp is the request's creation time, so applying the same request
// twice writes the same value.
func (w *write) timestamp() string {
	return w.req.CreatedAt.UTC().Format(time.RFC3339)
}

// tempID identifies items created offline until the server assigns a real id.
func (w *write) tempID() int64 { return -w.seq }

func (w *write) body() (requestBody, error) { return decodeBody(w.req.Body) }

// load returns the cached entity of the given identity.
func (w *write) load(ctx context.Context, t models.EntityType, id int64) (*models.Entity, error) {
	e, err := w.repo.GetByTypeAndID(ctx, t, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s %d", common.ErrEntityNotCached, t, id)
	}
	return e, err
}

// loadChild returns the cached list of the given type owned by parentID.
func (w *write) loadChild(ctx context.Context, t models.EntityType, parentID int64) (*models.Entity, error) {
	e, err := w.repo.GetByParent(ctx, t, parentID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s of %d", common.ErrEntityNotCached, t, parentID)
	}
	return e, err
}

// store writes v back as the new payload of e.
func (w *write) store(ctx context.Context, e *models.Entity, v any) error {
	p, err := models.MarshalJSONPayload(v)
	if err != nil {
		return err
	}
	return w.repo.Put(ctx, e.WithPayload(p))
}

// editObject loads an entity, lets fn change its decoded object and stores
// the result.
func (w *write) editObject(ctx context.Context, t models.EntityType, id int64, fn func(d document) error) error {
	e, err := w.load(ctx, t, id)
	if err != nil {
		return err
	}
	d, err := decodeObject(e.Payload)
	if err != nil {
		return err
	}
	if err := fn(d); err != nil {
		return err
	}
	return w.store(ctx, e, d)
}

// editChildList is editObject for list entities found by parent.
func (w *write) editChildList(ctx context.Context, t models.EntityType, parentID int64, fn func(items []any) ([]any, error)) error {
	e, err := w.loadChild(ctx, t, parentID)
	if err != nil {
		return err
	}
	items, err := decodeArray(e.Payload)
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	if items == nil {
		items = []any{}
	}
	return w.store(ctx, e, items)
}
