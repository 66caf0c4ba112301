package queue

import (
	"cataconta-webhook/internal/domain/dto"
	Iservices "cataconta-webhook/internal/domain/interfaces/services"
	"cataconta-webhook/internal/infra/logger"
	"cataconta-webhook/internal/infra/provider"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// Outbox is a bounded queue of replies drained by a fixed pool of workers.
type Outbox struct {
	Logger           *logger.Logger
	WhatsAppProvider provider.IWhatsAppProvider
	StatusService    Iservices.IMessageStatusService

	workers     int
	sendTimeout time.Duration
	maxRetries  uint64
	jobs        chan dto.OutboxJob
	newBackOff  func() backoff.BackOff
}

func NewOutbox(logger *logger.Logger, whatsAppProvider provider.IWhatsAppProvider, statusService Iservices.IMessageStatusService, workers, size int, sendTimeout time.Duration, maxRetries uint64) *Outbox {
	if workers <= 0 {
		workers = 3
	}
	if size <= 0 {
		size = 100
	}
	if sendTimeout <= 0 {
		sendTimeout = 20 * time.Second
	}

	return &Outbox{
		Logger:           logger,
		WhatsAppProvider: whatsAppProvider,
		StatusService:    statusService,
		workers:          workers,
		sendTimeout:      sendTimeout,
		maxRetries:       maxRetries,
		jobs:             make(chan dto.OutboxJob, size),
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = time.Second
			b.MaxInterval = 10 * time.Second
			return b
		},
	}
}

// Enqueue adds a job without blocking. It returns false when the queue is full.
func (o *Outbox) Enqueue(job dto.OutboxJob) bool {
	select {
	case o.jobs <- job:
		return true
	default:
		return false
	}
}

// Len is the number of jobs waiting for a worker.
func (o *Outbox) Len() int {
	return len(o.jobs)
}

// Run starts the workers and blocks until ctx is done and every queued job was attempted.
func (o *Outbox) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for i := 0; i < o.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			o.worker(ctx, id)
		}(i + 1)
	}

	o.Logger.Info(fmt.Sprintf("Outbox started with %d workers", o.workers))
	wg.Wait()
	o.Logger.Info("Outbox stopped")
	return nil
}

func (o *Outbox) worker(ctx context.Context, id int) {
	// Jobs already accepted are delivered even while shutting down.
	deliverCtx := context.WithoutCancel(ctx)

	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case job := <-o.jobs:
					o.deliver(deliverCtx, id, job)
				default:
					return
				}
			}
		case job := <-o.jobs:
			o.deliver(deliverCtx, id, job)
		}
	}
}

func (o *Outbox) deliver(ctx context.Context, workerID int, job dto.OutboxJob) {
	fields := logrus.Fields{"worker": workerID, "job": job.ID, "to": job.To}

	defer func() {
		if r := recover(); r != nil {
			o.Logger.Error(fmt.Sprintf("Recovered from panic: %v", r), fields)
		}
	}()

	var result *dto.SendResult
	operation := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, o.sendTimeout)
		defer cancel()

		res, err := o.WhatsAppProvider.SendTextMessage(attemptCtx, job.To, job.Body)
		if err != nil {
			if errors.Is(err, provider.ErrPermanent) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = res
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(o.newBackOff(), o.maxRetries), ctx)
	err := backoff.RetryNotify(operation, policy, func(err error, wait time.Duration) {
		o.Logger.Warn("Send failed, will retry", logrus.Fields{"job": job.ID, "wait": wait.String(), "error": err.Error()})
	})
	if err != nil {
		o.Logger.Error("Failed to deliver reply", logrus.Fields{"worker": workerID, "job": job.ID, "to": job.To, "error": err.Error()})
		o.track(ctx, job.ID, job.To, "failed")
		return
	}

	sid, status := job.ID, "queued"
	if result != nil {
		if result.Sid != "" {
			sid = result.Sid
		}
		if result.Status != "" {
			status = result.Status
		}
	}
	o.Logger.Info("Reply delivered to vendor", logrus.Fields{"worker": workerID, "job": job.ID, "sid": sid})
	o.track(ctx, sid, job.To, status)
}

func (o *Outbox) track(ctx context.Context, sid, to, status string) {
	if err := o.StatusService.Track(ctx, sid, to, status); err != nil {
		o.Logger.Warn("Could not track reply status", logrus.Fields{"sid": sid, "error": err.Error()})
	}
}
