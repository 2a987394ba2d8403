package offline

import (
	"context"
	"fmt"
	"mime"
	"net/http"

	"github.com/dmitrijs2005/mcoffline/internal/client/models"
	"github.com/dmitrijs2005/mcoffline/internal/client/repositories/entities"
	"github.com/dmitrijs2005/mcoffline/internal/common"
	"github.com/dmitrijs2005/mcoffline/internal/logging"
)

// Prefetcher loads resources from the server into the offline store so they
// can be read and edited once the device goes offline.
type Prefetcher struct {
	normalizer Normalizer
	entities   entities.Repository
	net        Doer
	log        logging.Logger
}

func NewPrefetcher(baseURL string, repo entities.Repository, net Doer, log logging.Logger) *Prefetcher {
	return &Prefetcher{normalizer: NewNormalizer(baseURL), entities: repo, net: net, log: log}
}

// Prefetch GETs endpoint from the network and caches the response under its
// normalized path, indexed by the entity route table.
func (p *Prefetcher) Prefetch(ctx context.Context, endpoint string) (*models.Entity, error) {
	resp, err := send(ctx, p.net, http.MethodGet, p.normalizer.Absolute(endpoint), nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("prefetch %s: server returned %d", endpoint, resp.StatusCode)
	}

	key := p.normalizer.Normalize(endpoint)
	path, _ := splitKey(key)
	route := matchEntityRoute(path)

	var payload models.Payload
	if route.binary || !isJSON(resp.ContentType) {
		payload = models.BinaryPayload(resp.Blob())
	} else {
		payload = models.JSONPayload(resp.Blob())
		if !payload.Valid() {
			return nil, fmt.Errorf("prefetch %s: %w", endpoint, common.ErrMalformedPayload)
		}
	}

	e := route.entity(key, payload)
	if err := p.entities.Put(ctx, e); err != nil {
		return nil, err
	}
	p.log.Info(ctx, "cached for offline use", "path", key, "type", e.EntityType)
	return e, nil
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && (mt == "application/json" || mt == "text/json")
}
