package tracking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/acrsolucoedig-spec/cellparts/internal/events"
	"github.com/acrsolucoedig-spec/cellparts/internal/middleware"
	"github.com/acrsolucoedig-spec/cellparts/internal/model"
	"github.com/acrsolucoedig-spec/cellparts/internal/store"
)

const (
	DefaultPollInterval    = 15 * time.Second
	DefaultPollConcurrency = 4
)

type LatestFetcher interface {
	Latest(ctx context.Context, orderID string) (*model.OrderTracking, error)
}

type CheckpointStore interface {
	Get(ctx context.Context, orderID string) (store.Checkpoint, error)
	Save(ctx context.Context, cp store.Checkpoint) error
	ListActive(ctx context.Context) ([]string, error)
}

type EventPublisher interface {
	PublishTrackingUpdated(ctx context.Context, meta events.EventMeta, seq int64, payload events.TrackingUpdatedPayload) error
	PublishOrderDelivered(ctx context.Context, meta events.EventMeta, seq int64, payload events.OrderDeliveredPayload) error
}

type WatcherOptions struct {
	Interval    time.Duration
	Concurrency int
}

// Watcher polls the latest tracking update of every watched order and publishes
// each new update once.
type Watcher struct {
	fetcher     LatestFetcher
	store       CheckpointStore
	pub         EventPublisher
	logger      *log.Logger
	interval    time.Duration
	concurrency int

	mu      sync.Mutex
	watched map[string]struct{}
}

func NewWatcher(fetcher LatestFetcher, cps CheckpointStore, pub EventPublisher, logger *log.Logger, opts WatcherOptions) *Watcher {
	if opts.Interval <= 0 {
		opts.Interval = DefaultPollInterval
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultPollConcurrency
	}
	return &Watcher{
		fetcher:     fetcher,
		store:       cps,
		pub:         pub,
		logger:      logger,
		interval:    opts.Interval,
		concurrency: opts.Concurrency,
		watched:     make(map[string]struct{}),
	}
}

// Watch persists and starts watching an order. Orders whose watch already finished are ignored.
func (w *Watcher) Watch(ctx context.Context, orderID string) error {
	if orderID == "" {
		return errors.New("empty order id")
	}

	cp, err := w.store.Get(ctx, orderID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		if err := w.store.Save(ctx, store.Checkpoint{OrderID: orderID, Active: true}); err != nil {
			return err
		}
	case err != nil:
		return err
	case !cp.Active:
		w.logger.Printf("order %s already delivered, not watching", orderID)
		return nil
	}

	w.mu.Lock()
	w.watched[orderID] = struct{}{}
	w.mu.Unlock()
	return nil
}

func (w *Watcher) Unwatch(orderID string) {
	w.mu.Lock()
	delete(w.watched, orderID)
	w.mu.Unlock()
}

// Watching returns the watched order ids, sorted.
func (w *Watcher) Watching() []string {
	w.mu.Lock()
	ids := make([]string, 0, len(w.watched))
	for id := range w.watched {
		ids = append(ids, id)
	}
	w.mu.Unlock()
	slices.Sort(ids)
	return ids
}

// Resume loads the watches left active by a previous run.
func (w *Watcher) Resume(ctx context.Context) error {
	ids, err := w.store.ListActive(ctx)
	if err != nil {
		return err
	}
	w.mu.Lock()
	for _, id := range ids {
		w.watched[id] = struct{}{}
	}
	w.mu.Unlock()
	if len(ids) > 0 {
		w.logger.Printf("resumed %d tracking watches", len(ids))
	}
	return nil
}

// Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	if err := w.Resume(ctx); err != nil {
		w.logger.Printf("resume tracking watches: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Println("stopping tracking watcher")
			return
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick polls every watched order once. A failing order is logged and retried next tick.
func (w *Watcher) Tick(ctx context.Context) {
	var g errgroup.Group
	g.SetLimit(w.concurrency)

	for _, id := range w.Watching() {
		id := id
		g.Go(func() error {
			if err := w.poll(ctx, id); err != nil {
				w.logger.Printf("poll tracking for order %s: %v", id, err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (w *Watcher) poll(ctx context.Context, orderID string) error {
	cid := uuid.NewString()
	ctx = middleware.WithCorrelationID(ctx, cid)

	latest, err := w.fetcher.Latest(ctx, orderID)
	if err != nil {
		return fmt.Errorf("fetch latest: %w", err)
	}
	if latest == nil {
		return nil
	}

	cp, err := w.store.Get(ctx, orderID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		cp = store.Checkpoint{OrderID: orderID, Active: true}
	case err != nil:
		return fmt.Errorf("load checkpoint: %w", err)
	case !cp.Active:
		// Finished by an earlier poll that did not get to unwatch.
		w.Unwatch(orderID)
		return nil
	}

	meta := events.EventMeta{CorrelationID: cid, PartitionKey: orderID}

	if latest.ID != cp.LastTrackingID {
		seq := cp.LastSequence + 1
		if err := w.pub.PublishTrackingUpdated(ctx, meta, seq, trackingPayload(orderID, latest)); err != nil {
			return fmt.Errorf("publish tracking updated: %w", err)
		}
		cp.LastTrackingID = latest.ID
		cp.LastSequence = seq
		cp.Active = true
		if err := w.store.Save(ctx, cp); err != nil {
			return fmt.Errorf("save checkpoint: %w", err)
		}
	}

	if !latest.IsCompleted {
		return nil
	}

	// Until the inactive checkpoint is saved, a retry republishes the same sequence.
	seq := cp.LastSequence + 1
	delivered := events.OrderDeliveredPayload{OrderID: orderID, TrackingID: latest.ID, DeliveredAt: latest.CreatedAt}
	if err := w.pub.PublishOrderDelivered(ctx, meta, seq, delivered); err != nil {
		return fmt.Errorf("publish order delivered: %w", err)
	}
	cp.LastSequence = seq
	cp.Active = false
	if err := w.store.Save(ctx, cp); err != nil {
		return fmt.Errorf("save final checkpoint: %w", err)
	}
	w.Unwatch(orderID)
	w.logger.Printf("order %s delivered, watch finished", orderID)
	return nil
}

func trackingPayload(orderID string, t *model.OrderTracking) events.TrackingUpdatedPayload {
	return events.TrackingUpdatedPayload{
		OrderID:     orderID,
		TrackingID:  t.ID,
		Latitude:    t.Latitude,
		Longitude:   t.Longitude,
		Address:     t.Address,
		City:        t.City,
		State:       t.State,
		Notes:       t.Notes,
		IsCompleted: t.IsCompleted,
		RecordedAt:  t.CreatedAt,
	}
}
