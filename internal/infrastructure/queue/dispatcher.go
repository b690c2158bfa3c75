package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/campusly/lms-platform/internal/api/metrics"
	"github.com/campusly/lms-platform/internal/core/domain"
	"github.com/campusly/lms-platform/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher routes orphaned accounts to a fixed set of workers using
// consistent hashing on the account id, so one account is never reconciled
// by two workers at once.
type Dispatcher struct {
	workers    []chan *domain.OrphanedAccount
	reconciler ports.OrphanReconciler
	log        zerolog.Logger

	mu      sync.Mutex
	pending map[string]struct{}
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, reconciler ports.OrphanReconciler, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:    make([]chan *domain.OrphanedAccount, numWorkers),
		reconciler: reconciler,
		log:        log,
		pending:    make(map[string]struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan *domain.OrphanedAccount, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
// The returned WaitGroup is done once every worker has exited.
func (d *Dispatcher) Start(ctx context.Context) *sync.WaitGroup {
	var wg sync.WaitGroup
	for i, ch := range d.workers {
		wg.Add(1)
		go func(id int, ch <-chan *domain.OrphanedAccount) {
			defer wg.Done()
			d.runWorker(ctx, id, ch)
		}(i, ch)
	}
	return &wg
}

// Enqueue hands o to the worker responsible for its account id. It never
// blocks: it returns false when o is already queued or the worker is full,
// and the next sweep picks it up again.
func (d *Dispatcher) Enqueue(o *domain.OrphanedAccount) bool {
	d.mu.Lock()
	if _, queued := d.pending[o.AccountID]; queued {
		d.mu.Unlock()
		return false
	}
	d.pending[o.AccountID] = struct{}{}
	d.mu.Unlock()

	idx := d.shardIndex(o.AccountID)
	select {
	case d.workers[idx] <- o:
		metrics.OrphanQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return true
	default:
		d.done(o.AccountID)
		return false
	}
}

// shardIndex maps an account id deterministically to a worker index.
func (d *Dispatcher) shardIndex(accountID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(accountID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) done(accountID string) {
	d.mu.Lock()
	delete(d.pending, accountID)
	d.mu.Unlock()
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan *domain.OrphanedAccount) {
	depth := metrics.OrphanQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case o, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			err := d.reconciler.Reconcile(ctx, o)
			d.done(o.AccountID)
			if err != nil {
				metrics.OrphanReconcileTotal.WithLabelValues("failed").Inc()
				d.log.Error().Err(err).
					Str("account_id", o.AccountID).
					Int("worker_id", id).
					Msg("orphan reconciliation failed")
				continue
			}
			metrics.OrphanReconcileTotal.WithLabelValues("resolved").Inc()
		}
	}
}
