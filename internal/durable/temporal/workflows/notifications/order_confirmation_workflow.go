package notifications

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	// OrderConfirmationWorkflowName is the public identifier for registering the workflow.
	OrderConfirmationWorkflowName = "notifications.workflows.OrderConfirmation"
	// OrderConfirmationTaskQueue is the queue consumed by the notification worker.
	OrderConfirmationTaskQueue = "ORDER_NOTIFICATIONS"
	// SendOrderConfirmationActivityName delivers the confirmation message.
	SendOrderConfirmationActivityName = "notifications.activities.SendOrderConfirmation"
)

// OrderConfirmationInput is the payload enqueued after an order commits as
// Confirmed. Delivery is decoupled from the order transaction entirely.
type OrderConfirmationInput struct {
	OrderID       int64
	StoreName     string
	CustomerEmail string
}

// OrderConfirmationWorkflow delivers one confirmation for one order.
func OrderConfirmationWorkflow(ctx workflow.Context, input OrderConfirmationInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderConfirmationWorkflow started", "orderId", input.OrderID, "store", input.StoreName)

	activityCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: time.Second,
			MaximumAttempts: 3,
		},
	})
	if err := workflow.ExecuteActivity(activityCtx, SendOrderConfirmationActivityName, input).Get(activityCtx, nil); err != nil {
		logger.Error("OrderConfirmationWorkflow failed", "orderId", input.OrderID, "error", err)
		return err
	}
	logger.Info("OrderConfirmationWorkflow completed", "orderId", input.OrderID)
	return nil
}
