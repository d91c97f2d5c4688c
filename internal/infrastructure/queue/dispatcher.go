package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffhub/employee-api/internal/api/metrics"
	"github.com/staffhub/employee-api/internal/core/domain"
	"github.com/staffhub/employee-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	recordTimeout  = 5 * time.Second
)

// Dispatcher persists audit entries off the request path. Entries are sharded
// by actor id so one actor's entries are recorded in the order they happened.
type Dispatcher struct {
	workers []chan domain.AuditEntry
	audit   ports.AuditService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, audit ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		audit:   audit,
		log:     log.With().Str("component", "audit_dispatcher").Logger(),
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches the workers. They drain what is queued and exit once ctx is
// cancelled; Wait blocks until they have.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue never blocks. When the actor's worker is full the entry is dropped
// and counted.
func (d *Dispatcher) Enqueue(entry domain.AuditEntry) {
	idx := d.shardIndex(entry.ActorID)
	select {
	case d.workers[idx] <- entry:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditDroppedTotal.Inc()
		d.log.Warn().
			Str("actor_id", entry.ActorID).
			Str("action", string(entry.Action)).
			Int("worker_id", idx).
			Msg("audit queue full, entry dropped")
	}
}

func (d *Dispatcher) shardIndex(actorID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actorID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch chan domain.AuditEntry) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case entry := <-ch:
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.record(context.Background(), id, entry)
		}
	}
}

// drain records whatever is still buffered at shutdown.
func (d *Dispatcher) drain(id int, ch chan domain.AuditEntry) {
	for {
		select {
		case entry := <-ch:
			d.record(context.Background(), id, entry)
		default:
			metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(0)
			return
		}
	}
}

func (d *Dispatcher) record(parent context.Context, id int, entry domain.AuditEntry) {
	ctx, cancel := context.WithTimeout(parent, recordTimeout)
	defer cancel()

	start := time.Now()
	err := d.audit.Record(ctx, entry)
	result := "ok"
	if err != nil {
		result = "error"
		d.log.Error().Err(err).
			Str("actor_id", entry.ActorID).
			Str("action", string(entry.Action)).
			Str("resource_id", entry.ResourceID).
			Int("worker_id", id).
			Msg("audit entry not recorded")
	}
	metrics.AuditRecordDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}
