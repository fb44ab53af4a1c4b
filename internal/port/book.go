package port

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tmarkov/limitbook/internal/domain"
)

// Book is the order book as the gateway sees it: lookup by identity,
// lifecycle of individual resting orders, execution against one price, and
// read-only views. All methods are safe for concurrent use.
type Book interface {
	Lookup(id uuid.UUID) (*domain.Order, bool)
	Add(price decimal.Decimal, quantity int64, side domain.Side) (*domain.Order, error)
	Remove(id uuid.UUID) (*domain.Order, error)
	Amend(id uuid.UUID, newQuantity int64) (*domain.Order, error)
	Execute(price decimal.Decimal, quantity int64, side domain.Side) (domain.Outcome, error)
	Snapshot() domain.BookSnapshot
	Len() int
}
