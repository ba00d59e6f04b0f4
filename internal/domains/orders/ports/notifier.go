package ports

import "context"

// ConfirmationNotice is the payload handed to the notification dispatcher
// after an order commits as Confirmed.
type ConfirmationNotice struct {
	OrderID       int64
	StoreName     string
	CustomerEmail string
}

// Notifier enqueues a confirmation for asynchronous delivery. Enqueue
// failure never affects the already-committed order outcome.
type Notifier interface {
	EnqueueConfirmation(ctx context.Context, notice ConfirmationNotice) error
}
