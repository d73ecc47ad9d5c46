package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	s, ok := ParseOrderStatus(" shipped ")
	require.True(t, ok)
	assert.Equal(t, OrderStatusShipped, s)

	_, ok = ParseOrderStatus("LOST_IN_MAIL")
	assert.False(t, ok)
	_, ok = ParseOrderStatus("")
	assert.False(t, ok)
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusPending, false},
		{OrderStatusConfirmed, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestSumItemsIsExactDecimal(t *testing.T) {
	items := []OrderItem{
		{ProductID: 1, Quantity: 2, Price: decimal.RequireFromString("5.50")},
		{ProductID: 2, Quantity: 1, Price: decimal.RequireFromString("3.00")},
	}
	assert.True(t, SumItems(items).Equal(decimal.RequireFromString("14.00")))

	// 0.1 × 3 在浮点下会漂移
	drift := []OrderItem{{Quantity: 3, Price: decimal.RequireFromString("0.10")}}
	assert.Equal(t, "0.30", SumItems(drift).StringFixed(2))
	assert.True(t, SumItems(nil).IsZero())
}

func TestIsCents(t *testing.T) {
	for s, want := range map[string]bool{
		"0": true, "1.5": true, "19.99": true, "2.500": true,
		"0.005": false, "1.001": false, "-3.141": false,
	} {
		assert.Equal(t, want, IsCents(decimal.RequireFromString(s)), s)
	}
}
