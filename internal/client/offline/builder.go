package offline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/mcoffline/internal/client/models"
	"github.com/dmitrijs2005/mcoffline/internal/common"
	"github.com/google/uuid"
)

// FetchOptions describes a request the way the caller would hand it to the
// network: verb, headers and body.
type FetchOptions struct {
	Method string
	Header http.Header
	Body   []byte
}

// JSONOptions encodes v as the JSON body of a request with the given verb.
func JSONOptions(method string, v any) (FetchOptions, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return FetchOptions{}, fmt.Errorf("marshal request body: %w", err)
	}
	h := http.Header{}
	h.Set("Content-Type", common.ContentTypeJSON)
	return FetchOptions{Method: method, Header: h, Body: b}, nil
}

func (o FetchOptions) contentType() string {
	if o.Header != nil {
		if ct := o.Header.Get("Content-Type"); ct != "" {
			return ct
		}
	}
	switch {
	case len(o.Body) == 0:
		return ""
	case json.Valid(o.Body):
		return common.ContentTypeJSON
	default:
		return common.ContentTypeBinary
	}
}

// Builder turns an intercepted write into a replayable UpdateRequest.
// It does no I/O.
type Builder struct {
	normalizer Normalizer
	now        func() time.Time
	newID      func() string

	mu   sync.Mutex
	last int64
}

func NewBuilder(n Normalizer) *Builder {
	return &Builder{
		normalizer: n,
		now:        time.Now,
		newID:      func() string { return uuid.NewString() },
	}
}

// Build validates op and stamps it with an id, a creation time and an
// ordering token. Ordering is the wall clock in nanoseconds, bumped past the
// previous token when the clock stalls or steps back, so tokens from one
// Builder are strictly increasing.
func (b *Builder) Build(op FetchOptions, endpoint string) (*models.UpdateRequest, error) {
	verb := strings.ToUpper(strings.TrimSpace(op.Method))
	switch verb {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return nil, fmt.Errorf("%w: %q is not a write verb", common.ErrInvalidRequest, op.Method)
	}

	path := b.normalizer.Normalize(endpoint)
	if path == "" {
		return nil, fmt.Errorf("%w: empty endpoint", common.ErrInvalidRequest)
	}

	now := b.now()

	b.mu.Lock()
	ordering := now.UnixNano()
	if ordering <= b.last {
		ordering = b.last + 1
	}
	b.last = ordering
	b.mu.Unlock()

	return &models.UpdateRequest{
		ID:          b.newID(),
		Verb:        verb,
		Endpoint:    path,
		ContentType: op.contentType(),
		Body:        bytes.Clone(op.Body),
		Ordering:    ordering,
		CreatedAt:   now,
		Status:      models.RequestPending,
	}, nil
}
