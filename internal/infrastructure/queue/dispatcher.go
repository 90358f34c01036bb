package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/api/metrics"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/ports"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
)

// AuditDispatcher writes audit entries off the request path. Entries are
// sharded by resource and id, so the history of one record is written in
// order.
type AuditDispatcher struct {
	workers []chan domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger
	wg      sync.WaitGroup

	// mu guards closed against concurrent Record calls while Close runs.
	mu     sync.RWMutex
	closed bool
}

var _ ports.AuditRecorder = (*AuditDispatcher)(nil)

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

// Start launches all worker goroutines. Workers drain their queue and stop
// once Close is called; ctx bounds each write.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an entry. It never blocks: when the shard is full, or the
// dispatcher is closed, the entry is dropped and counted.
func (d *AuditDispatcher) Record(entry domain.AuditEntry) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		metrics.AuditDropped.Inc()
		d.log.Warn().
			Str("resource", entry.Resource).
			Str("action", entry.Action).
			Msg("audit dispatcher closed, entry dropped")
		return
	}

	select {
	case d.workers[d.shardIndex(entry)] <- entry:
	default:
		metrics.AuditDropped.Inc()
		d.log.Warn().
			Str("resource", entry.Resource).
			Str("action", entry.Action).
			Msg("audit queue full, entry dropped")
	}
}

// Close stops accepting entries and waits for the queues to drain. It is
// safe to call more than once.
func (d *AuditDispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// shardIndex maps a record deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(entry domain.AuditEntry) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(entry.Resource))
	_, _ = h.Write([]byte(strconv.FormatInt(entry.ResourceID, 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	defer d.wg.Done()
	for entry := range ch {
		if err := d.repo.InsertEntry(ctx, &entry); err != nil {
			d.log.Error().Err(err).
				Str("resource", entry.Resource).
				Int64("resource_id", entry.ResourceID).
				Int("worker_id", id).
				Msg("audit write failed")
		}
	}
}
