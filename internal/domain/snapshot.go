package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderSnapshot is a point-in-time copy of one resting order.
type OrderSnapshot struct {
	ID       uuid.UUID
	Price    decimal.Decimal
	Quantity int64
	Side     Side
	Placed   time.Time
}

// LevelSnapshot is a point-in-time copy of one price level. Orders are in
// queue order, highest priority first, and Quantity is their sum.
type LevelSnapshot struct {
	Price    decimal.Decimal
	Quantity int64
	Orders   []OrderSnapshot
}

// BookSnapshot is a consistent copy of both sides of the book. Bids are
// sorted best first (highest price), asks best first (lowest price). Only
// non-empty levels appear.
type BookSnapshot struct {
	Bids      []LevelSnapshot
	Asks      []LevelSnapshot
	Timestamp time.Time
}

// String renders the snapshot one side at a time, each level on its own line
// with its queue from front to back.
func (s BookSnapshot) String() string {
	var b strings.Builder
	writeSide := func(side Side, levels []LevelSnapshot) {
		b.WriteString("[" + string(side) + "]\n")
		for _, lvl := range levels {
			b.WriteString(lvl.Price.StringFixed(2))
			b.WriteString("| ")
			for i, o := range lvl.Orders {
				if i > 0 {
					b.WriteString(" << ")
				}
				b.WriteString(renderOrder(o))
			}
			b.WriteByte('\n')
		}
	}
	writeSide(Buy, s.Bids)
	writeSide(Sell, s.Asks)
	return b.String()
}

func renderOrder(o OrderSnapshot) string {
	return "Order(id=" + shortID(o.ID) +
		", qty=" + strconv.FormatInt(o.Quantity, 10) +
		", placed=" + o.Placed.Format("15:04:05.000000") + ")"
}
