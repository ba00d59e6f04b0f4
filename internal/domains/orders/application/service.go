package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mercora/retail-api/internal/domains/orders/domain"
	"github.com/mercora/retail-api/internal/domains/orders/ports"
)

// defaultCustomerEmail stands in for a recipient until orders carry one.
const defaultCustomerEmail = "customer@example.com"

// Service coordinates the order placement transaction: validate the
// request, check and decrement stock, persist the outcome, and schedule
// the post-commit confirmation.
type Service struct {
	stores   ports.StoreDirectory
	tx       ports.TxScope
	reader   ports.OrderReader
	notifier ports.Notifier
	logger   *slog.Logger
}

// Option customizes the service.
type Option func(*Service)

// WithLogger attaches a structured logger used for best-effort paths.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService wires the order coordinator with its collaborators.
func NewService(stores ports.StoreDirectory, tx ports.TxScope, reader ports.OrderReader, notifier ports.Notifier, opts ...Option) *Service {
	s := &Service{
		stores:   stores,
		tx:       tx,
		reader:   reader,
		notifier: notifier,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceOrder runs the placement transaction. Validation failures and
// unknown stores abort before any write. Insufficient stock is a normal
// outcome: the order is persisted as Rejected with no inventory change and
// every shortfalled product reported. Otherwise every distinct product is
// decremented, the order commits as Confirmed, and exactly one confirmation
// is enqueued after commit.
func (s *Service) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*ports.PlaceOrderResult, error) {
	lines, checkOrder, checkSet, err := buildRequest(input)
	if err != nil {
		return nil, err
	}

	store, err := s.stores.GetStore(ctx, input.StoreID)
	if err != nil {
		return nil, mapError(err)
	}

	order, err := domain.NewOrder(input.StoreID, lines)
	if err != nil {
		return nil, mapError(err)
	}

	var (
		placed     *domain.Order
		shortfalls []domain.Shortfall
	)
	err = s.tx.Execute(ctx, func(tx ports.TxRepositories) error {
		shortfalls = shortfalls[:0]
		for _, productID := range checkOrder {
			available, err := tx.Inventory().GetQuantity(ctx, input.StoreID, productID)
			if err != nil {
				return err
			}
			if requested := checkSet[productID]; available < requested {
				shortfalls = append(shortfalls, domain.Shortfall{
					ProductID: productID,
					Available: available,
					Requested: requested,
				})
			}
		}

		// The ledger records what was asked, even when the order is
		// about to be rejected.
		created, err := tx.Ledger().CreateOrder(ctx, order)
		if err != nil {
			return err
		}

		if len(shortfalls) > 0 {
			if err := created.Finalize(domain.StatusRejected); err != nil {
				return err
			}
			ids := make([]int64, 0, len(shortfalls))
			for _, sf := range shortfalls {
				ids = append(ids, sf.ProductID)
			}
			if err := tx.Ledger().SetStatus(ctx, created.ID, domain.StatusRejected, ids...); err != nil {
				return err
			}
			placed = created
			return nil
		}

		for _, productID := range checkOrder {
			ok, err := tx.Inventory().DecrementIfSufficient(ctx, input.StoreID, productID, checkSet[productID])
			if err != nil {
				return err
			}
			if !ok {
				return ports.ErrConflict
			}
		}
		if err := created.Finalize(domain.StatusConfirmed); err != nil {
			return err
		}
		if err := tx.Ledger().SetStatus(ctx, created.ID, domain.StatusConfirmed); err != nil {
			return err
		}
		placed = created
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}

	if placed.Status == domain.StatusConfirmed {
		s.enqueueConfirmation(ctx, placed.ID, store.Name)
	}

	return &ports.PlaceOrderResult{Order: placed, StoreName: store.Name, Shortfalls: shortfalls}, nil
}

// GetOrder loads a single order with its lines.
func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.reader.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

// ListStoreOrders returns a store's orders, newest first.
func (s *Service) ListStoreOrders(ctx context.Context, storeID int64) ([]*domain.Order, error) {
	if _, err := s.stores.GetStore(ctx, storeID); err != nil {
		return nil, mapError(err)
	}
	orders, err := s.reader.ListByStore(ctx, storeID)
	if err != nil {
		return nil, mapError(err)
	}
	return orders, nil
}

// buildRequest validates every item up front and collapses duplicates into
// the availability check set. The last request for a given product wins in
// the check set; the returned lines keep every item in input order.
func buildRequest(input ports.PlaceOrderInput) ([]domain.OrderLine, []int64, map[int64]int64, error) {
	if input.StoreID <= 0 {
		return nil, nil, nil, mapError(domain.ErrInvalidStore)
	}
	if len(input.Items) == 0 {
		return nil, nil, nil, mapError(domain.ErrEmptyItems)
	}
	lines := make([]domain.OrderLine, 0, len(input.Items))
	checkOrder := make([]int64, 0, len(input.Items))
	checkSet := make(map[int64]int64, len(input.Items))
	for _, item := range input.Items {
		line := domain.OrderLine{ProductID: item.ProductID, QuantityRequested: item.QuantityRequested}
		if err := line.Validate(); err != nil {
			return nil, nil, nil, mapError(fmt.Errorf("product %d: %w", item.ProductID, err))
		}
		lines = append(lines, line)
		if _, seen := checkSet[item.ProductID]; !seen {
			checkOrder = append(checkOrder, item.ProductID)
		}
		checkSet[item.ProductID] = item.QuantityRequested
	}
	return lines, checkOrder, checkSet, nil
}

func (s *Service) enqueueConfirmation(ctx context.Context, orderID int64, storeName string) {
	notice := ports.ConfirmationNotice{
		OrderID:       orderID,
		StoreName:     storeName,
		CustomerEmail: defaultCustomerEmail,
	}
	if err := s.notifier.EnqueueConfirmation(ctx, notice); err != nil {
		// Best effort only: the order is already committed.
		s.logger.Warn("order confirmation enqueue failed",
			slog.Int64("order.id", orderID),
			slog.String("error", err.Error()))
	}
}

var _ ports.Service = (*Service)(nil)
