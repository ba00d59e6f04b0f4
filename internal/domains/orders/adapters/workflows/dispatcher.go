package workflows

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"

	"github.com/mercora/retail-api/internal/domains/orders/ports"
	workflownotifications "github.com/mercora/retail-api/internal/durable/temporal/workflows/notifications"
)

var (
	_ ports.Notifier = (*TemporalDispatcher)(nil)
	_ ports.Notifier = (*InlineDispatcher)(nil)
)

// TemporalDispatcher hands order confirmations to the notification task
// queue. It only starts the workflow and never waits on the run: delivery
// latency and failures stay off the order placement path.
type TemporalDispatcher struct {
	client client.Client
}

func NewTemporalDispatcher(c client.Client) *TemporalDispatcher {
	return &TemporalDispatcher{client: c}
}

func (d *TemporalDispatcher) EnqueueConfirmation(ctx context.Context, notice ports.ConfirmationNotice) error {
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("order-confirmation-%d-%s", notice.OrderID, uuid.NewString()),
		TaskQueue: workflownotifications.OrderConfirmationTaskQueue,
	}
	input := workflownotifications.OrderConfirmationInput{
		OrderID:       notice.OrderID,
		StoreName:     notice.StoreName,
		CustomerEmail: notice.CustomerEmail,
	}
	_, err := d.client.ExecuteWorkflow(ctx, options, workflownotifications.OrderConfirmationWorkflowName, input)
	return err
}

// InlineDispatcher logs the confirmation when Temporal is unavailable.
type InlineDispatcher struct {
	logger *slog.Logger
}

func NewInlineDispatcher(logger *slog.Logger) *InlineDispatcher {
	return &InlineDispatcher{logger: logger}
}

func (d *InlineDispatcher) EnqueueConfirmation(ctx context.Context, notice ports.ConfirmationNotice) error {
	if d.logger != nil {
		d.logger.InfoContext(ctx, "order confirmation (inline)",
			slog.Int64("order.id", notice.OrderID),
			slog.String("store", notice.StoreName),
			slog.String("recipient", notice.CustomerEmail))
	}
	return nil
}
