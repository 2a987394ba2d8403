// Package watcher flips the offline status flag according to server
// reachability.
package watcher

import (
	"context"
	"time"

	"github.com/dmitrijs2005/mcoffline/internal/client/models"
	"github.com/dmitrijs2005/mcoffline/internal/logging"
)

// Pinger probes the server.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatusFlag is the persisted offline status.
type StatusFlag interface {
	Status(ctx context.Context) (models.OfflineStatus, error)
	SetStatus(ctx context.Context, s models.OfflineStatus) error
}

// Watcher pings the server on an interval and switches the flag to OFFLINE
// when it stops answering and back to ONLINE when it answers again.
type Watcher struct {
	pinger      Pinger
	flag        StatusFlag
	interval    time.Duration
	pingTimeout time.Duration
	log         logging.Logger
}

func New(pinger Pinger, flag StatusFlag, interval time.Duration, log logging.Logger) *Watcher {
	return &Watcher{
		pinger:      pinger,
		flag:        flag,
		interval:    interval,
		pingTimeout: 3 * time.Second,
		log:         log,
	}
}

// Run checks once per interval until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := w.Check(ctx); err != nil && ctx.Err() == nil {
				w.log.Error(ctx, "online status check failed", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Check pings the server once and updates the flag if reachability changed.
// It returns the status in effect afterwards.
func (w *Watcher) Check(ctx context.Context) (models.OfflineStatus, error) {
	pingCtx, cancel := context.WithTimeout(ctx, w.pingTimeout)
	err := w.pinger.Ping(pingCtx)
	cancel()

	want := models.StatusOnline
	if err != nil {
		want = models.StatusOffline
	}

	current, serr := w.flag.Status(ctx)
	if serr != nil {
		return "", serr
	}
	if current == want {
		return current, nil
	}

	if serr := w.flag.SetStatus(ctx, want); serr != nil {
		return current, serr
	}
	w.log.Info(ctx, "switched mode", "status", want)
	return want, nil
}
