package offline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/mcoffline/internal/client/repositories/entities"
	"github.com/dmitrijs2005/mcoffline/internal/common"
	"github.com/dmitrijs2005/mcoffline/internal/logging"
)

// Doer sends HTTP requests; *http.Client and netx.Client satisfy it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// IsCanceled reports whether err comes from a cancelled context. Callers use
// it to drop results of requests they abandoned without reporting an error.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// Fetcher is the single entry point for API calls. It routes each call to
// the network or to the offline store according to the current status.
type Fetcher struct {
	status     StatusSource
	normalizer Normalizer
	entities   entities.Repository
	builder    *Builder
	updater    Applier
	net        Doer
	log        logging.Logger
}

func NewFetcher(
	baseURL string,
	status StatusSource,
	repo entities.Repository,
	updater Applier,
	net Doer,
	log logging.Logger,
) *Fetcher {
	n := NewNormalizer(baseURL)
	return &Fetcher{
		status:     status,
		normalizer: n,
		entities:   repo,
		builder:    NewBuilder(n),
		updater:    updater,
		net:        net,
		log:        log,
	}
}

// Get reads endpoint. Online it goes to the network. Offline it is answered
// by a derived route or from the cache; a cache miss falls back to the
// network. opts may be nil.
func (f *Fetcher) Get(ctx context.Context, endpoint string, opts *FetchOptions) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	offline, err := f.offline(ctx)
	if err != nil {
		return nil, err
	}
	if !offline {
		return f.send(ctx, http.MethodGet, endpoint, opts)
	}

	key := f.normalizer.Normalize(endpoint)
	path, query := splitKey(key)

	if route, ok := matchDerivedRoute(path); ok {
		resp, err := route.handle(ctx, f.entities, query)
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return resp, nil
	}

	e, err := f.entities.GetByAPIPath(ctx, key)
	if errors.Is(err, common.ErrNotFound) {
		f.log.Warn(ctx, "offline cache miss, falling back to network", "path", key)
		return f.send(ctx, http.MethodGet, endpoint, opts)
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return entityResponse(e)
}

// Update sends a write. Offline the write is applied to the cache and
// queued for replay instead.
func (f *Fetcher) Update(ctx context.Context, endpoint string, op FetchOptions) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	offline, err := f.offline(ctx)
	if err != nil {
		return nil, err
	}
	if !offline {
		return f.send(ctx, op.Method, endpoint, &op)
	}

	req, err := f.builder.Build(op, endpoint)
	if err != nil {
		return nil, err
	}
	out, err := f.updater.Apply(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return emptyResponse(), nil
	}
	return jsonResponse(out), nil
}

func (f *Fetcher) offline(ctx context.Context) (bool, error) {
	s, err := f.status.Status(ctx)
	if err != nil {
		return false, err
	}
	return s.IsOffline(), nil
}

func (f *Fetcher) send(ctx context.Context, method, endpoint string, opts *FetchOptions) (*Response, error) {
	return send(ctx, f.net, method, f.normalizer.Absolute(endpoint), opts)
}

// send performs one network round trip.
func send(ctx context.Context, net Doer, method, url string, opts *FetchOptions) (*Response, error) {
	var body io.Reader
	if opts != nil && len(opts.Body) > 0 {
		body = bytes.NewReader(opts.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidRequest, err)
	}
	if opts != nil {
		for k, vs := range opts.Header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
	}

	resp, err := net.Do(req)
	if err != nil {
		return nil, err
	}
	return readResponse(resp)
}
