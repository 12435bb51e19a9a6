package services

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// MailJob identifies one confirmation mail to send.
type MailJob struct {
	OrderID primitive.ObjectID
	BuyerID primitive.ObjectID
}

// orderNotifier is implemented by NotificationService.
type orderNotifier interface {
	SendOrderConfirmation(ctx context.Context, orderID, buyerID primitive.ObjectID) error
}

// MailerWorker drains confirmation-mail jobs off the checkout path. Each
// job runs on its own background context with a bounded timeout, so mail
// transport latency or failure never touches a request.
type MailerWorker struct {
	notifier orderNotifier
	jobs     chan MailJob
	timeout  time.Duration
	wg       sync.WaitGroup
	once     sync.Once
}

func NewMailerWorker(notifier orderNotifier, queueSize int) *MailerWorker {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &MailerWorker{
		notifier: notifier,
		jobs:     make(chan MailJob, queueSize),
		timeout:  30 * time.Second,
	}
}

// Start launches the worker goroutine.
func (w *MailerWorker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for job := range w.jobs {
			w.process(job)
		}
	}()
}

// Enqueue offers a job without blocking; a full queue drops the job.
func (w *MailerWorker) Enqueue(job MailJob) bool {
	select {
	case w.jobs <- job:
		return true
	default:
		return false
	}
}

// Stop drains the queue and waits for in-flight sends to finish.
func (w *MailerWorker) Stop() {
	w.once.Do(func() { close(w.jobs) })
	w.wg.Wait()
}

func (w *MailerWorker) process(job MailJob) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	if err := w.notifier.SendOrderConfirmation(ctx, job.OrderID, job.BuyerID); err != nil {
		zap.L().Error("confirmation mail failed",
			zap.String("order_id", job.OrderID.Hex()),
			zap.String("buyer", job.BuyerID.Hex()),
			zap.Error(err),
		)
	}
}
