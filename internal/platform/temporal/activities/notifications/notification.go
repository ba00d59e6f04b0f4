package notifications

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/activity"

	workflownotifications "github.com/mercora/retail-api/internal/durable/temporal/workflows/notifications"
)

// Activities groups the notification delivery activities.
type Activities struct{}

func NewActivities() *Activities {
	return &Activities{}
}

// SendOrderConfirmation composes and sends the confirmation message. Wire
// an actual mail provider here; for now the activity logs the send.
func (a *Activities) SendOrderConfirmation(ctx context.Context, input workflownotifications.OrderConfirmationInput) error {
	logger := activity.GetLogger(ctx)
	subject := fmt.Sprintf("Order Confirmation - #%d", input.OrderID)
	logger.Info("sending order confirmation",
		"orderId", input.OrderID,
		"subject", subject,
		"store", input.StoreName,
		"recipient", input.CustomerEmail)
	return nil
}
