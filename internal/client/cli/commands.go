package cli

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/mcoffline/internal/client/offline"
	"github.com/dmitrijs2005/mcoffline/internal/common"
)

// Status prints the mode, the queue length and the cache size.
func (a *App) Status(ctx context.Context) error {
	s, err := a.status.Status(ctx)
	if err != nil {
		return err
	}
	pending, err := a.outbox.CountPending(ctx)
	if err != nil {
		return err
	}
	cached, err := a.store.Entities(a.store.DB()).Count(ctx)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("mode: %s, pending writes: %d, cached entities: %d", s, pending, cached))
	return nil
}

func (a *App) Get(ctx context.Context, endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("%w: get <endpoint>", errUsage)
	}
	resp, err := a.fetcher.Get(ctx, endpoint, nil)
	if err != nil {
		return err
	}
	printResponse(resp)
	return nil
}

// Send issues a write. body is inline JSON or @file.
func (a *App) Send(ctx context.Context, method, endpoint, body string) error {
	if endpoint == "" {
		return fmt.Errorf("%w: %s <endpoint> [body|@file]", errUsage, strings.ToLower(method))
	}
	b, err := readBody(body)
	if err != nil {
		return err
	}

	op := offline.FetchOptions{Method: method, Header: http.Header{}, Body: b}
	if len(b) > 0 && !strings.HasPrefix(body, "@") {
		op.Header.Set("Content-Type", common.ContentTypeJSON)
	}

	resp, err := a.fetcher.Update(ctx, endpoint, op)
	if err != nil {
		return err
	}
	printResponse(resp)
	return nil
}

func (a *App) Prefetch(ctx context.Context, endpoints []string) error {
	if len(endpoints) == 0 {
		return fmt.Errorf("%w: prefetch <endpoint>...", errUsage)
	}
	for _, ep := range endpoints {
		e, err := a.prefetcher.Prefetch(ctx, ep)
		if err != nil {
			return err
		}
		printlnFn(fmt.Sprintf("cached %s as %s", e.APIPath, e.EntityType))
	}
	return nil
}

// Pending lists queued writes in replay order. With a seq it shows that
// one request, body included.
func (a *App) Pending(ctx context.Context, seq string) error {
	if seq != "" {
		return a.showRequest(ctx, seq)
	}
	reqs, err := a.outbox.ListPending(ctx)
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		printlnFn("no pending writes")
		return nil
	}
	for _, r := range reqs {
		printlnFn(fmt.Sprintf("%d\t%s\t%s\t%s\t%d bytes",
			r.Seq, r.CreatedAt.Format(time.DateTime), r.Verb, r.Endpoint, len(r.Body)))
	}
	return nil
}

func (a *App) showRequest(ctx context.Context, seq string) error {
	n, err := strconv.ParseInt(seq, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: pending [seq]", errUsage)
	}
	r, err := a.outbox.GetBySeq(ctx, n)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("%d\t%s\t%s\t%s\t%s\t%s",
		r.Seq, r.CreatedAt.Format(time.DateTime), r.Status, r.Verb, r.Endpoint, r.ContentType))
	if len(r.Body) > 0 {
		printlnFn(string(r.Body))
	}
	return nil
}

// Ack marks a queued write as replayed.
func (a *App) Ack(ctx context.Context, seq string) error {
	n, err := strconv.ParseInt(seq, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: ack <seq>", errUsage)
	}
	if err := a.outbox.MarkReplayed(ctx, n); err != nil {
		return err
	}
	printlnFn("acknowledged", n)
	return nil
}

// Token stores the bearer token. Without an argument it is read from the
// terminal without echo.
func (a *App) Token(ctx context.Context, token string) error {
	if token == "" {
		var err error
		if token, err = GetSecret(a.out, "Access token: "); err != nil {
			return err
		}
	}
	if err := a.tokens.SetToken(ctx, token); err != nil {
		return err
	}
	printlnFn("token saved")
	return nil
}

func printResponse(resp *offline.Response) {
	printlnFn(resp.StatusCode, resp.ContentType)
	switch {
	case len(resp.Blob()) == 0:
	case resp.ContentType == common.ContentTypeBinary:
		printlnFn(fmt.Sprintf("<%d bytes>", len(resp.Blob())))
	default:
		printlnFn(resp.Text())
	}
}
