package services_test

import (
	"testing"
	"time"

	"restaurant/internal/core/domain/model/actor"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)

func newActor(t *testing.T, category actor.Category) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), category, category.String())
	require.NoError(t, err)
	return a
}

func newOrder(t *testing.T, customerID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	address, err := order.NewAddress("Rua A", "10", "Centro", "Campinas", "", "")
	require.NoError(t, err)
	item, err := order.NewLineItem(kernel.NewUUID(), "Burger", 1, kernel.MustMoney("20.00"))
	require.NoError(t, err)
	totals := order.Totals{Subtotal: item.Total(), Total: item.Total()}

	o, err := order.RestoreOrder(kernel.NewUUID(), customerID, address, []order.LineItem{item}, totals,
		order.Details{}, status, now.Add(-time.Hour), now.Add(-time.Hour), 1)
	require.NoError(t, err)
	return o
}

func price(s string) *kernel.Money {
	m := kernel.MustMoney(s)
	return &m
}
