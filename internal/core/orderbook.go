package core

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tmarkov/limitbook/internal/domain"
	"github.com/tmarkov/limitbook/internal/port"
)

// OrderBook is the limit order book for a single instrument. It keeps two
// indexes over the same resting orders and they move in lockstep:
//
//   - byID, for identity: every resting order's queue node, keyed by id;
//   - levels, for matching: per side, a price-keyed map of FIFO queues.
//
// A price level exists iff at least one order rests there, so "no level" and
// "empty level" are the same observable state. One mutex serializes every
// operation; each method is a single atomic transition from one consistent
// book to another.
type OrderBook struct {
	mu     sync.Mutex
	byID   map[uuid.UUID]*node
	levels map[domain.Side]map[string]*priceLevel
}

var _ port.Book = (*OrderBook)(nil)

func NewOrderBook() *OrderBook {
	return &OrderBook{
		byID: make(map[uuid.UUID]*node),
		levels: map[domain.Side]map[string]*priceLevel{
			domain.Buy:  make(map[string]*priceLevel),
			domain.Sell: make(map[string]*priceLevel),
		},
	}
}

// priceKey normalizes a price for level lookup. Decimal rendering drops
// trailing zeros, so 10, 10.0 and 10.00 all land on the same level.
func priceKey(price decimal.Decimal) string {
	return price.String()
}

// Lookup returns the resting order with the given id, if any. The boolean
// distinguishes absence, which is an ordinary answer rather than an error.
func (b *OrderBook) Lookup(id uuid.UUID) (*domain.Order, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n, ok := b.byID[id]
	if !ok {
		return nil, false
	}
	return n.order, true
}

// Add validates the parameters, creates a new order placed now and enters it
// at the back of its price level's queue.
func (b *OrderBook) Add(price decimal.Decimal, quantity int64, side domain.Side) (*domain.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, err := domain.NewOrder(price, quantity, side)
	if err != nil {
		return nil, err
	}
	b.insert(o)
	return o, nil
}

// Remove takes the order with the given id off the book and returns it.
// Removing an id that is not resting returns domain.ErrOrderNotFound and
// leaves the book untouched, so removal is idempotent.
func (b *OrderBook) Remove(id uuid.UUID) (*domain.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n, ok := b.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	b.removeNode(n)
	return n.order, nil
}

// Amend replaces the quantity of a resting order. The order keeps its id,
// price and side but is re-entered at the back of its price level with a
// fresh placement time: amending surrenders time priority. If validation of
// the new quantity fails the original order stays untouched.
func (b *OrderBook) Amend(id uuid.UUID, newQuantity int64) (*domain.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n, ok := b.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	repl, err := n.order.Amended(newQuantity, time.Now())
	if err != nil {
		return nil, err
	}
	b.removeNode(n)
	b.insert(repl)
	return repl, nil
}

// Execute attempts to trade the given quantity at exactly the given price.
// It consumes resting orders on the opposite side at that price in queue
// order until the quantity is exhausted or the level runs dry; any
// unfulfilled remainder is entered as a new resting order on the requested
// side. Other price levels are never touched, even when they would cross.
//
// The outcome reports how far matching got: OutcomeFull (nothing left),
// OutcomePartial (remainder rests) or OutcomeNone (no opposite liquidity at
// that price, everything rests). Invalid parameters return an error and
// leave the book untouched.
func (b *OrderBook) Execute(price decimal.Decimal, quantity int64, side domain.Side) (domain.Outcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Constructing under the lock keeps placement stamps in step with queue
	// order; it also rejects invalid input before any queue is touched.
	incoming, err := domain.NewOrder(price, quantity, side)
	if err != nil {
		return "", err
	}

	lvl := b.levels[side.Opposite()][priceKey(price)]
	if lvl == nil || lvl.empty() {
		b.insert(incoming)
		return domain.OutcomeNone, nil
	}

	unfulfilled := quantity
	for n := lvl.head; n != nil && unfulfilled > 0; {
		next := n.next
		resting := n.order.Quantity()
		if unfulfilled >= resting {
			b.removeNode(n)
			unfulfilled -= resting
		} else {
			lvl.reduce(n, unfulfilled)
			unfulfilled = 0
		}
		n = next
	}

	if unfulfilled > 0 {
		incoming.Reduce(quantity - unfulfilled)
		b.insert(incoming)
		return domain.OutcomePartial, nil
	}
	return domain.OutcomeFull, nil
}

// Len reports the number of resting orders across both sides.
func (b *OrderBook) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.byID)
}

// Snapshot copies the whole book under the lock: bids best (highest) first,
// asks best (lowest) first, each level's queue front to back.
func (b *OrderBook) Snapshot() domain.BookSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return domain.BookSnapshot{
		Bids:      b.sideSnapshot(domain.Buy),
		Asks:      b.sideSnapshot(domain.Sell),
		Timestamp: time.Now(),
	}
}

func (b *OrderBook) sideSnapshot(side domain.Side) []domain.LevelSnapshot {
	out := make([]domain.LevelSnapshot, 0, len(b.levels[side]))
	for _, lvl := range b.levels[side] {
		ls := domain.LevelSnapshot{
			Price:    lvl.price,
			Quantity: lvl.totalQty,
			Orders:   make([]domain.OrderSnapshot, 0, lvl.size),
		}
		for n := lvl.head; n != nil; n = n.next {
			o := n.order
			ls.Orders = append(ls.Orders, domain.OrderSnapshot{
				ID:       o.ID(),
				Price:    o.Price(),
				Quantity: o.Quantity(),
				Side:     o.Side(),
				Placed:   o.Placed(),
			})
		}
		out = append(out, ls)
	}
	sort.Slice(out, func(i, j int) bool {
		if side == domain.Buy {
			return out[i].Price.GreaterThan(out[j].Price)
		}
		return out[i].Price.LessThan(out[j].Price)
	})
	return out
}

// insert links a validated order into both indexes, creating its price level
// when it is the first order there. A duplicate id means identity has been
// violated upstream and the book cannot continue.
func (b *OrderBook) insert(o *domain.Order) {
	id := o.ID()
	if _, exists := b.byID[id]; exists {
		panic(fmt.Sprintf("order book: duplicate order id %s", id))
	}
	sideLevels := b.levels[o.Side()]
	key := priceKey(o.Price())
	lvl := sideLevels[key]
	if lvl == nil {
		lvl = newPriceLevel(o.Price())
		sideLevels[key] = lvl
	}
	b.byID[id] = lvl.append(o)
}

// removeNode unlinks a node from both indexes and drops its price level when
// it was the last order there.
func (b *OrderBook) removeNode(n *node) {
	lvl := n.level
	lvl.unlink(n)
	if lvl.empty() {
		delete(b.levels[n.order.Side()], priceKey(lvl.price))
	}
	delete(b.byID, n.order.ID())
}
