package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mercora/retail-api/internal/domains/orders/domain"
	"github.com/mercora/retail-api/internal/domains/orders/ports"
)

var (
	_ ports.TxScope     = (*Backend)(nil)
	_ ports.OrderReader = (*Backend)(nil)
)

type invKey struct {
	storeID   int64
	productID int64
}

type state struct {
	inventory  map[invKey]int64
	orders     map[int64]*domain.Order
	shortfalls map[int64][]int64
	nextOrder  int64
	nextLine   int64
}

// Backend keeps orders and inventory quantities in memory behind one lock.
// Execute serializes concurrent placements and commits the staged state
// only when the transaction function succeeds, mirroring the all-or-nothing
// semantics of the PostgreSQL scope.
type Backend struct {
	mu  sync.Mutex
	cur *state
}

func NewBackend() *Backend {
	return &Backend{cur: &state{
		inventory:  map[invKey]int64{},
		orders:     map[int64]*domain.Order{},
		shortfalls: map[int64][]int64{},
	}}
}

// Execute runs fn against a staged copy of the state and swaps it in on
// success. The backend lock is held for the whole scope, so two concurrent
// placements against the same stock cannot interleave their check and
// decrement.
func (b *Backend) Execute(_ context.Context, fn func(tx ports.TxRepositories) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	staged := b.cur.clone()
	if err := fn(&txRepositories{state: staged}); err != nil {
		return err
	}
	b.cur = staged
	return nil
}

// GetByID returns a copy of the stored order.
func (b *Backend) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	order, ok := b.cur.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

// ListByStore returns the store's orders newest first.
func (b *Backend) ListByStore(_ context.Context, storeID int64) ([]*domain.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var list []*domain.Order
	for _, order := range b.cur.orders {
		if order.StoreID == storeID {
			list = append(list, cloneOrder(order))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// CreateInventoryRecord seeds one (store, product) record. It reports false
// when a record already exists for the pair.
func (b *Backend) CreateInventoryRecord(_ context.Context, storeID, productID, quantity int64) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := invKey{storeID: storeID, productID: productID}
	if _, exists := b.cur.inventory[key]; exists {
		return false, nil
	}
	b.cur.inventory[key] = quantity
	return true, nil
}

// InventoryQuantities snapshots all quantities held for one store.
func (b *Backend) InventoryQuantities(_ context.Context, storeID int64) (map[int64]int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := map[int64]int64{}
	for key, qty := range b.cur.inventory {
		if key.storeID == storeID {
			out[key.productID] = qty
		}
	}
	return out, nil
}

// AggregateQuantities sums quantities per product across every store.
func (b *Backend) AggregateQuantities(_ context.Context) (map[int64]int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := map[int64]int64{}
	for key, qty := range b.cur.inventory {
		out[key.productID] += qty
	}
	return out, nil
}

type txRepositories struct {
	state *state
}

func (t *txRepositories) Inventory() ports.InventoryStore { return (*inventoryStore)(t) }
func (t *txRepositories) Ledger() ports.Ledger            { return (*ledger)(t) }

type inventoryStore txRepositories

func (s *inventoryStore) GetQuantity(_ context.Context, storeID, productID int64) (int64, error) {
	return s.state.inventory[invKey{storeID: storeID, productID: productID}], nil
}

func (s *inventoryStore) DecrementIfSufficient(_ context.Context, storeID, productID, amount int64) (bool, error) {
	key := invKey{storeID: storeID, productID: productID}
	current, ok := s.state.inventory[key]
	if !ok || current < amount {
		return false, nil
	}
	s.state.inventory[key] = current - amount
	return true, nil
}

type ledger txRepositories

func (l *ledger) CreateOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	clone := cloneOrder(order)
	l.state.nextOrder++
	clone.ID = l.state.nextOrder
	clone.CreatedAt = time.Now()
	for i := range clone.Lines {
		l.state.nextLine++
		clone.Lines[i].ID = l.state.nextLine
		clone.Lines[i].OrderID = clone.ID
	}
	l.state.orders[clone.ID] = clone
	return cloneOrder(clone), nil
}

func (l *ledger) SetStatus(_ context.Context, orderID int64, status domain.Status, shortfallProductIDs ...int64) error {
	order, ok := l.state.orders[orderID]
	if !ok {
		return ports.ErrNotFound
	}
	order.Status = status
	if len(shortfallProductIDs) > 0 {
		l.state.shortfalls[orderID] = append([]int64(nil), shortfallProductIDs...)
	}
	return nil
}

func (s *state) clone() *state {
	next := &state{
		inventory:  make(map[invKey]int64, len(s.inventory)),
		orders:     make(map[int64]*domain.Order, len(s.orders)),
		shortfalls: make(map[int64][]int64, len(s.shortfalls)),
		nextOrder:  s.nextOrder,
		nextLine:   s.nextLine,
	}
	for key, qty := range s.inventory {
		next.inventory[key] = qty
	}
	for id, order := range s.orders {
		next.orders[id] = cloneOrder(order)
	}
	for id, ids := range s.shortfalls {
		next.shortfalls[id] = append([]int64(nil), ids...)
	}
	return next
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Lines = append([]domain.OrderLine(nil), order.Lines...)
	return &clone
}
