package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned} {
		assert.True(t, s.Valid(), "%s", s)
	}

	assert.False(t, OrderStatus("archived").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusConfirmed, OrderStatusShipped, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusDelivered, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusReturned, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusReturned, true},
		{OrderStatusDelivered, OrderStatusConfirmed, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusReturned, OrderStatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestOrderStatusNoSelfTransition(t *testing.T) {
	for from := range allowedTransitions {
		assert.False(t, from.CanTransitionTo(from), "%s", from)
	}
}

func TestIsValidWilaya(t *testing.T) {
	assert.True(t, IsValidWilaya("Alger"))
	assert.True(t, IsValidWilaya("Tizi Ouzou"))
	assert.True(t, IsValidWilaya("El M'Ghair"))

	assert.False(t, IsValidWilaya("alger"))
	assert.False(t, IsValidWilaya("Paris"))
	assert.False(t, IsValidWilaya(""))
}

func TestWilayaListComplete(t *testing.T) {
	assert.Len(t, Wilayas, 58)

	seen := map[string]bool{}
	for _, w := range Wilayas {
		assert.False(t, seen[w.Name], "duplicate wilaya %s", w.Name)
		seen[w.Name] = true
	}
}
