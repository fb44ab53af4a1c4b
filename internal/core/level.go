package core

import (
	"github.com/shopspring/decimal"

	"github.com/tmarkov/limitbook/internal/domain"
)

// node links one resting order into its price-level queue. The book's id
// index points straight at nodes so removal never walks the queue.
type node struct {
	order *domain.Order
	prev  *node
	next  *node
	level *priceLevel
}

// priceLevel is the FIFO queue of all resting orders sharing one side and
// price. Front of the queue (head) holds the highest time priority; inserts
// always go to the back. A level is created on first insert and discarded as
// soon as its last order leaves, so an existing level is never empty.
type priceLevel struct {
	price    decimal.Decimal
	head     *node
	tail     *node
	size     int
	totalQty int64
}

func newPriceLevel(price decimal.Decimal) *priceLevel {
	return &priceLevel{price: price}
}

// append enqueues o at the back of the level and returns its node.
func (l *priceLevel) append(o *domain.Order) *node {
	n := &node{order: o, level: l}
	if l.tail == nil {
		l.head = n
	} else {
		l.tail.next = n
		n.prev = l.tail
	}
	l.tail = n
	l.size++
	l.totalQty += o.Quantity()
	return n
}

// unlink removes n from the level in O(1). The node must belong to this
// level; anything else means the book's indexes have diverged, which is a
// defect, not a condition to handle.
func (l *priceLevel) unlink(n *node) {
	if n.level != l {
		panic("order book: unlinking node from wrong price level")
	}
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next, n.level = nil, nil, nil
	l.size--
	l.totalQty -= n.order.Quantity()
}

// reduce partially consumes the order at n in place, keeping its queue
// position, and keeps the level's quantity sum in step.
func (l *priceLevel) reduce(n *node, by int64) {
	n.order.Reduce(by)
	l.totalQty -= by
}

func (l *priceLevel) empty() bool {
	return l.size == 0
}
