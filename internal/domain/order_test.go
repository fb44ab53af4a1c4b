package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderRejectsInvalidParams(t *testing.T) {
	cases := []struct {
		name  string
		price decimal.Decimal
		qty   int64
		side  Side
		field string
	}{
		{"zero price", decimal.Zero, 10, Buy, "price"},
		{"negative price", decimal.NewFromInt(-5), 10, Buy, "price"},
		{"zero quantity", decimal.NewFromInt(10), 0, Sell, "quantity"},
		{"negative quantity", decimal.NewFromInt(10), -3, Sell, "quantity"},
		{"unknown side", decimal.NewFromInt(10), 10, Side("HOLD"), "side"},
		{"empty side", decimal.NewFromInt(10), 10, Side(""), "side"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o, err := NewOrder(tc.price, tc.qty, tc.side)
			require.Error(t, err)
			assert.Nil(t, o)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestNewOrderPopulatesEveryField(t *testing.T) {
	before := time.Now()
	o, err := NewOrder(decimal.RequireFromString("10.50"), 20, Buy)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, o.ID())
	assert.True(t, o.Price().Equal(decimal.RequireFromString("10.5")))
	assert.EqualValues(t, 20, o.Quantity())
	assert.Equal(t, Buy, o.Side())
	assert.False(t, o.Placed().Before(before))
	assert.False(t, o.Placed().After(time.Now()))
}

func TestAmendedKeepsIdentityAndRestamps(t *testing.T) {
	o, err := NewOrder(decimal.NewFromInt(10), 20, Sell)
	require.NoError(t, err)

	at := time.Now()
	repl, err := o.Amended(35, at)
	require.NoError(t, err)

	assert.True(t, repl.Equal(o))
	assert.Equal(t, o.ID(), repl.ID())
	assert.True(t, repl.Price().Equal(o.Price()))
	assert.Equal(t, o.Side(), repl.Side())
	assert.EqualValues(t, 35, repl.Quantity())
	assert.True(t, repl.Placed().Equal(at))
	assert.True(t, o.Before(repl))
}

func TestAmendedRejectsInvalidReplacement(t *testing.T) {
	o, err := NewOrder(decimal.NewFromInt(10), 20, Buy)
	require.NoError(t, err)

	var verr *ValidationError

	_, err = o.Amended(0, time.Now())
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "quantity", verr.Field)

	_, err = o.Amended(10, time.Time{})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "placed", verr.Field)

	_, err = o.Amended(10, time.Now().Add(time.Hour))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "placed", verr.Field)
}

func TestReduceDecrementsInPlace(t *testing.T) {
	o, err := NewOrder(decimal.NewFromInt(10), 20, Buy)
	require.NoError(t, err)

	o.Reduce(15)
	assert.EqualValues(t, 5, o.Quantity())

	assert.Panics(t, func() { o.Reduce(5) })
	assert.Panics(t, func() { o.Reduce(0) })
	assert.Panics(t, func() { o.Reduce(-1) })
	assert.EqualValues(t, 5, o.Quantity())
}

func TestEqualComparesIdentityOnly(t *testing.T) {
	price := decimal.NewFromInt(10)
	a, err := NewOrder(price, 10, Buy)
	require.NoError(t, err)
	b, err := NewOrder(price, 10, Buy)
	require.NoError(t, err)

	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))

	amended, err := a.Amended(99, time.Now())
	require.NoError(t, err)
	assert.True(t, a.Equal(amended))
}

func TestBeforeOrdersByPlacementThenSequence(t *testing.T) {
	base, err := NewOrder(decimal.NewFromInt(10), 10, Buy)
	require.NoError(t, err)

	at := time.Now()
	x, err := base.Amended(1, at)
	require.NoError(t, err)
	y, err := base.Amended(2, at)
	require.NoError(t, err)

	assert.True(t, x.Before(y), "same placement time resolves by creation sequence")
	assert.False(t, y.Before(x))

	earlier, err := base.Amended(3, at.Add(-time.Second))
	require.NoError(t, err)
	assert.True(t, earlier.Before(x), "earlier placement wins regardless of sequence")
	assert.False(t, x.Before(earlier))
}

func TestSideOppositeAndValidity(t *testing.T) {
	assert.Equal(t, Sell, Buy.Opposite())
	assert.Equal(t, Buy, Sell.Opposite())
	assert.True(t, Buy.Valid())
	assert.True(t, Sell.Valid())
	assert.False(t, Side("").Valid())
	assert.False(t, Side("hold").Valid())
}

func TestOrderStringIsCompact(t *testing.T) {
	o, err := NewOrder(decimal.NewFromInt(10), 20, Buy)
	require.NoError(t, err)

	s := o.String()
	assert.Contains(t, s, "qty=20")
	assert.Contains(t, s, "side=BUY")
	assert.Contains(t, s, shortID(o.ID()))
}
