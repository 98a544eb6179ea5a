// Package notify implements the background notification dispatcher. Delivery
// is best-effort: one attempt per target, failures are logged and counted,
// nothing propagates back to the lifecycle operation that produced the event.
package notify

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/unmatched/taskboard/internal/api/metrics"
	"github.com/unmatched/taskboard/internal/core/domain"
	"github.com/unmatched/taskboard/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	deliverTimeout = 10 * time.Second
)

// DedupChecker suppresses redelivery of a notification that was already
// attempted for the same task revision (e.g. on a replayed request).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, taskID int64, event string, rev time.Time) (bool, error)
	Mark(ctx context.Context, taskID int64, event string, rev time.Time) error
}

// Dispatcher fans task notifications out to the shared channel and to
// direct messages. Notifications shard onto a fixed set of workers by task
// id, so per-task delivery order matches commit order while different tasks
// proceed independently.
type Dispatcher struct {
	workers []chan ports.Notification
	sink    ports.ChatSink
	dedup   DedupChecker
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.ChatSink, dedup DedupChecker, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Notification, numWorkers),
		sink:    sink,
		dedup:   dedup,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their channels until
// Stop closes them; ctx bounds individual delivery attempts.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Stop closes the intake and waits for in-flight deliveries to finish.
func (d *Dispatcher) Stop() {
	for _, ch := range d.workers {
		close(ch)
	}
	d.wg.Wait()
}

// Enqueue hands a notification to the worker responsible for its task id.
// When that worker's buffer is full the notification is dropped with a log
// entry rather than blocking the caller.
func (d *Dispatcher) Enqueue(n ports.Notification) {
	i := d.shardIndex(n.Task.ID)
	select {
	case d.workers[i] <- n:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
	default:
		d.log.Warn().
			Int64("task_id", n.Task.ID).
			Str("event", string(n.Event)).
			Msg("notification queue full, dropping")
		metrics.NotificationsFailedTotal.WithLabelValues(string(n.Event), "queue").Inc()
	}
}

// shardIndex maps a task id deterministically to a worker index.
func (d *Dispatcher) shardIndex(taskID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(taskID, 10)))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Notification) {
	defer d.wg.Done()
	for n := range ch {
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		d.deliver(ctx, n)
	}
}

// deliver attempts the channel broadcast and the direct message for one
// notification. The two attempts are independent; either may fail without
// affecting the other.
func (d *Dispatcher) deliver(ctx context.Context, n ports.Notification) {
	start := time.Now()
	defer func() {
		metrics.NotificationDeliveryDuration.WithLabelValues(string(n.Event)).Observe(time.Since(start).Seconds())
	}()

	if d.dedup != nil {
		dup, err := d.dedup.IsDuplicate(ctx, n.Task.ID, string(n.Event), n.Task.UpdatedAt)
		if err != nil {
			d.log.Warn().Err(err).Int64("task_id", n.Task.ID).Msg("notification dedup check failed, delivering anyway")
		} else if dup {
			d.log.Debug().Int64("task_id", n.Task.ID).Str("event", string(n.Event)).Msg("duplicate notification skipped")
			return
		}
		if err := d.dedup.Mark(ctx, n.Task.ID, string(n.Event), n.Task.UpdatedAt); err != nil {
			d.log.Warn().Err(err).Int64("task_id", n.Task.ID).Msg("failed to set notification dedup key")
		}
	}

	d.sendChannel(ctx, n)

	if target, text := directMessage(n); target != "" {
		d.sendDirect(ctx, n, target, text)
	}
}

func (d *Dispatcher) sendChannel(ctx context.Context, n ports.Notification) {
	sendCtx, cancel := context.WithTimeout(ctx, deliverTimeout)
	defer cancel()

	if err := d.sink.SendChannel(sendCtx, channelMessage(n)); err != nil {
		metrics.NotificationsFailedTotal.WithLabelValues(string(n.Event), "channel").Inc()
		d.log.Error().Err(err).
			Int64("task_id", n.Task.ID).
			Str("event", string(n.Event)).
			Msg("channel notification failed")
		return
	}
	metrics.NotificationsSentTotal.WithLabelValues(string(n.Event), "channel").Inc()
}

func (d *Dispatcher) sendDirect(ctx context.Context, n ports.Notification, discordID, text string) {
	sendCtx, cancel := context.WithTimeout(ctx, deliverTimeout)
	defer cancel()

	if err := d.sink.SendDirect(sendCtx, discordID, text); err != nil {
		metrics.NotificationsFailedTotal.WithLabelValues(string(n.Event), "dm").Inc()
		d.log.Error().Err(err).
			Int64("task_id", n.Task.ID).
			Str("event", string(n.Event)).
			Str("discord_id", discordID).
			Msg("direct notification failed")
		return
	}
	metrics.NotificationsSentTotal.WithLabelValues(string(n.Event), "dm").Inc()
}

// directMessage picks the DM recipient and text for a notification, or
// returns an empty target when no DM applies: assignees hear about new
// assignments, creators hear about completion and rejection.
func directMessage(n ports.Notification) (discordID, text string) {
	switch n.Event {
	case ports.EventCreated, ports.EventAssigned:
		if n.AssigneeDiscordID != "" {
			return n.AssigneeDiscordID, assignmentDM(n)
		}
	case ports.EventStatusChanged:
		if n.CreatorDiscordID == "" {
			return "", ""
		}
		switch n.Task.Status {
		case domain.StatusCompleted, domain.StatusRejected:
			return n.CreatorDiscordID, outcomeDM(n)
		}
	}
	return "", ""
}
