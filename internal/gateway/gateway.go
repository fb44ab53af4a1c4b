package gateway

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tmarkov/limitbook/internal/domain"
	"github.com/tmarkov/limitbook/internal/port"
)

// Gateway fronts a book for callers: it validates input, translates failures
// into caller-facing answers and logs every transition. Rejections never
// reach the book, so a bad request cannot disturb resting orders. It is also
// the only layer that folds errors into the ERROR outcome; the book itself
// reports outcomes only for requests that were admitted.
type Gateway struct {
	book port.Book
	log  *zap.Logger
}

func New(book port.Book, log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{book: book, log: log}
}

// SubmitOrder validates the parameters and enters a new resting order.
func (g *Gateway) SubmitOrder(price decimal.Decimal, quantity int64, side domain.Side) (*domain.Order, error) {
	if err := domain.ValidateOrderParams(price, quantity, side); err != nil {
		g.log.Warn("order rejected",
			zap.Stringer("price", price),
			zap.Int64("quantity", quantity),
			zap.String("side", string(side)),
			zap.Error(err))
		return nil, err
	}
	o, err := g.book.Add(price, quantity, side)
	if err != nil {
		g.log.Warn("order rejected", zap.Error(err))
		return nil, err
	}
	g.log.Info("order submitted",
		zap.Stringer("id", o.ID()),
		zap.Stringer("price", o.Price()),
		zap.Int64("quantity", o.Quantity()),
		zap.String("side", string(o.Side())))
	return o, nil
}

// CancelOrder removes the resting order with the given id and returns it.
// Cancelling an id that is not on the book reports domain.ErrOrderNotFound;
// repeating a cancel is therefore harmless.
func (g *Gateway) CancelOrder(id uuid.UUID) (*domain.Order, error) {
	o, err := g.book.Remove(id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			g.log.Debug("cancel ignored, order not resting", zap.Stringer("id", id))
		} else {
			g.log.Warn("cancel failed", zap.Stringer("id", id), zap.Error(err))
		}
		return nil, err
	}
	g.log.Info("order cancelled",
		zap.Stringer("id", o.ID()),
		zap.Int64("quantity", o.Quantity()))
	return o, nil
}

// ModifyOrder changes the quantity of a resting order. The order keeps its
// id but moves to the back of its price level's queue.
func (g *Gateway) ModifyOrder(id uuid.UUID, newQuantity int64) (*domain.Order, error) {
	if newQuantity <= 0 {
		err := &domain.ValidationError{Field: "quantity", Reason: "must be strictly positive"}
		g.log.Warn("amend rejected",
			zap.Stringer("id", id),
			zap.Int64("quantity", newQuantity),
			zap.Error(err))
		return nil, err
	}
	o, err := g.book.Amend(id, newQuantity)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			g.log.Debug("amend ignored, order not resting", zap.Stringer("id", id))
		} else {
			g.log.Warn("amend rejected", zap.Stringer("id", id), zap.Error(err))
		}
		return nil, err
	}
	g.log.Info("order amended",
		zap.Stringer("id", o.ID()),
		zap.Int64("quantity", o.Quantity()))
	return o, nil
}

// ExecuteTrade runs an execution against the book at exactly the given
// price. Invalid requests yield OutcomeError without touching the book; an
// admitted request reports how much of it matched.
func (g *Gateway) ExecuteTrade(price decimal.Decimal, quantity int64, side domain.Side) domain.Outcome {
	if err := domain.ValidateOrderParams(price, quantity, side); err != nil {
		g.log.Warn("trade rejected",
			zap.Stringer("price", price),
			zap.Int64("quantity", quantity),
			zap.String("side", string(side)),
			zap.Error(err))
		return domain.OutcomeError
	}
	out, err := g.book.Execute(price, quantity, side)
	if err != nil {
		g.log.Warn("trade rejected", zap.Error(err))
		return domain.OutcomeError
	}
	g.log.Info("trade executed",
		zap.Stringer("price", price),
		zap.Int64("quantity", quantity),
		zap.String("side", string(side)),
		zap.String("outcome", string(out)))
	return out
}

// Snapshot returns a consistent copy of the book for presentation.
func (g *Gateway) Snapshot() domain.BookSnapshot {
	return g.book.Snapshot()
}
