package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/jackvpt/hhguesthouses-api/internal/api/metrics"
	"github.com/jackvpt/hhguesthouses-api/internal/core/domain"
	"github.com/jackvpt/hhguesthouses-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// AuditDispatcher decouples audit writes from request handling. Entries are
// routed to a fixed set of workers by hashing the actor email, so the rows of
// a single actor land in the trail in the order they were produced.
type AuditDispatcher struct {
	workers []chan domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewAuditDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an audit entry. The entry is timestamped here so queueing
// delay does not shift the recorded time. A full worker channel drops the
// entry rather than blocking the request path.
func (d *AuditDispatcher) Record(entry domain.AuditEntry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	ch := d.workers[d.shardIndex(entry.ActorEmail)]
	select {
	case ch <- entry:
	default:
		d.log.Warn().Str("action", entry.Action).Str("actor", entry.ActorEmail).Msg("audit queue full, entry dropped")
		metrics.AuditDroppedTotal.Inc()
	}
}

// shardIndex maps an actor email deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(actorEmail string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actorEmail))
	return int(h.Sum32()) % len(d.workers)
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			if err := d.repo.Insert(ctx, &entry); err != nil {
				d.log.Error().Err(err).
					Str("action", entry.Action).
					Int("worker_id", id).
					Msg("audit write failed")
				continue
			}
			metrics.AuditEntriesTotal.WithLabelValues(entry.Action).Inc()
		}
	}
}
