package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hireloop/jobboard/internal/core/domain"
	"github.com/hireloop/jobboard/internal/core/ports"
	"github.com/hireloop/jobboard/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	sendTimeout    = 30 * time.Second
)

var (
	// ErrQueueFull is returned when the recipient's worker has no room left.
	ErrQueueFull = errors.New("notification queue full")
	// ErrStopped is returned once Stop has been called.
	ErrStopped = errors.New("notification dispatcher stopped")
)

// Dispatcher delivers notifications off the request path. Notifications are
// sharded by recipient so one recipient's messages go out in order.
type Dispatcher struct {
	workers []chan domain.Notification
	sender  ports.NotificationSender
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender ports.NotificationSender, log zerolog.Logger) *Dispatcher {
	return newDispatcher(numWorkers, channelBuffer, sender, log)
}

func newDispatcher(numWorkers, buffer int, sender ports.NotificationSender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Notification, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Notification, buffer)
	}
	return d
}

// Start launches the workers. Sends made by the workers carry ctx's values
// but outlive its cancellation so Stop can drain the queues.
func (d *Dispatcher) Start(ctx context.Context) {
	base := context.WithoutCancel(ctx)
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(base, i, ch)
	}
}

// Stop refuses new notifications, waits for queued ones to be sent and
// returns.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Notify queues n on its recipient's worker without blocking.
func (d *Dispatcher) Notify(_ context.Context, n domain.Notification) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrStopped
	}

	idx := d.shardIndex(n.To)
	// Inc before the send so the worker's Dec can never run first.
	depth := metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx))
	depth.Inc()
	select {
	case d.workers[idx] <- n:
		return nil
	default:
		depth.Dec()
		metrics.NotificationsFailedTotal.WithLabelValues("queue_full").Inc()
		return ErrQueueFull
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Notification) {
	defer d.wg.Done()
	depth := metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id))

	for n := range ch {
		depth.Dec()
		d.deliver(ctx, id, n)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, worker int, n domain.Notification) {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	start := time.Now()
	err := d.sender.Send(ctx, n)
	metrics.NotificationSendDuration.WithLabelValues(n.Kind).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.NotificationsFailedTotal.WithLabelValues("send_failed").Inc()
		d.log.Error().Err(err).
			Str("notification_id", n.ID).
			Str("kind", n.Kind).
			Int("worker_id", worker).
			Msg("notification delivery failed")
		return
	}
	metrics.NotificationsSentTotal.WithLabelValues(n.Kind).Inc()
}
