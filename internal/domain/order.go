package domain

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Valid reports whether s is one of the two defined sides.
func (s Side) Valid() bool {
	return s == Buy || s == Sell
}

// Opposite returns the side an incoming order of side s executes against.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// orderSeq hands out the logical sequence numbers that break ties between
// orders placed within the same clock reading.
var orderSeq atomic.Uint64

// Order is a single resting or incoming limit order. Every field except the
// quantity is fixed for the life of the order: the quantity is decreased in
// place by matching and replaced wholesale by amendment (see Amended).
//
// Orders are only constructed through NewOrder or Amended, which enforce the
// validation rules; a zero Order is not usable.
type Order struct {
	id       uuid.UUID
	price    decimal.Decimal
	quantity int64
	side     Side
	placed   time.Time
	seq      uint64
}

// ValidateOrderParams checks the caller-supplied order parameters and returns
// a *ValidationError naming the offending field, or nil. The same rules are
// applied again during construction, so a book can never hold an invalid
// order even if a caller skips pre-validation.
func ValidateOrderParams(price decimal.Decimal, quantity int64, side Side) error {
	if price.Sign() <= 0 {
		return &ValidationError{Field: "price", Reason: "must be strictly positive"}
	}
	if quantity <= 0 {
		return &ValidationError{Field: "quantity", Reason: "must be strictly positive"}
	}
	if !side.Valid() {
		return &ValidationError{Field: "side", Reason: fmt.Sprintf("must be %s or %s", Buy, Sell)}
	}
	return nil
}

// NewOrder creates a validated order placed now, with a fresh identifier.
func NewOrder(price decimal.Decimal, quantity int64, side Side) (*Order, error) {
	return newOrderAt(uuid.New(), price, quantity, side, time.Now())
}

func newOrderAt(id uuid.UUID, price decimal.Decimal, quantity int64, side Side, placed time.Time) (*Order, error) {
	if err := ValidateOrderParams(price, quantity, side); err != nil {
		return nil, err
	}
	if placed.IsZero() {
		return nil, &ValidationError{Field: "placed", Reason: "must be set"}
	}
	if placed.After(time.Now()) {
		return nil, &ValidationError{Field: "placed", Reason: "must not be in the future"}
	}
	return &Order{
		id:       id,
		price:    price,
		quantity: quantity,
		side:     side,
		placed:   placed,
		seq:      orderSeq.Add(1),
	}, nil
}

// Amended returns the replacement order an amendment produces: same id, price
// and side, the new quantity, and the given placement time with a fresh
// sequence number. The replacement passes the same validation as NewOrder and
// joins the back of its price-level queue, so amending always costs time
// priority.
func (o *Order) Amended(newQuantity int64, at time.Time) (*Order, error) {
	return newOrderAt(o.id, o.price, newQuantity, o.side, at)
}

func (o *Order) ID() uuid.UUID          { return o.id }
func (o *Order) Price() decimal.Decimal { return o.price }
func (o *Order) Quantity() int64        { return o.quantity }
func (o *Order) Side() Side             { return o.side }
func (o *Order) Placed() time.Time      { return o.placed }

// Reduce decrements the quantity in place, preserving the order's identity
// and time priority. It is the matching path's way of partially consuming a
// resting order; by must stay strictly below the current quantity, since an
// order consumed entirely has to be removed from the book instead.
func (o *Order) Reduce(by int64) {
	if by <= 0 || by >= o.quantity {
		panic(fmt.Sprintf("order %s: reduce by %d out of range (0, %d)", o.id, by, o.quantity))
	}
	o.quantity -= by
}

// Equal reports order identity: two orders are the same iff their ids match.
func (o *Order) Equal(other *Order) bool {
	return other != nil && o.id == other.id
}

// Before reports queue priority between two orders at the same price level:
// earlier placement wins, with the sequence number breaking exact timestamp
// ties in insertion order.
func (o *Order) Before(other *Order) bool {
	if !o.placed.Equal(other.placed) {
		return o.placed.Before(other.placed)
	}
	return o.seq < other.seq
}

func (o *Order) String() string {
	return fmt.Sprintf("Order(id=%s, price=%s, qty=%d, side=%s, placed=%s)",
		shortID(o.id), o.price, o.quantity, o.side, o.placed.Format("15:04:05.000000"))
}

func shortID(id uuid.UUID) string {
	s := id.String()
	return s[:4] + ".." + s[len(s)-4:]
}
