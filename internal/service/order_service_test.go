package service

import (
	"context"
	"testing"

	"github.com/comexweb/internal/cart"
	"github.com/comexweb/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrderInput() OrderInput {
	return OrderInput{
		CustomerName: "Ana Pérez",
		Email:        "Ana@Example.com",
		WhatsApp:     "+54 9 11 5555 0000",
		Type:         "retail",
		Items: []OrderItemInput{
			{ProductID: 1, Name: "Mate", Quantity: 2, Price: decimal.RequireFromString("10.50")},
			{ProductID: 2, Name: "Bombilla", Quantity: 1, Price: decimal.NewFromInt(5)},
		},
		Total: decimal.NewFromInt(26),
	}
}

func countRows(t *testing.T, svc *OrderService, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, svc.db.Model(model).Count(&n).Error)
	return n
}

func TestOrderCreateRecomputesTotal(t *testing.T) {
	svc := NewOrderService(setupServiceTestDB(t))
	ctx := context.Background()

	order, err := svc.Create(ctx, validOrderInput())
	require.NoError(t, err)
	assert.Equal(t, db.StatusNew, order.Status)
	assert.Equal(t, db.OrderTypeRetail, order.Type)
	assert.Equal(t, "ana@example.com", order.Email)
	assert.Equal(t, "26.00", order.Total.StringFixed(2))
	assert.Len(t, order.Items, 2)

	in := validOrderInput()
	in.Total = decimal.RequireFromString("26.005")
	_, err = svc.Create(ctx, in)
	require.NoError(t, err)

	orders, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Len(t, orders[0].Items, 2)
}

func TestOrderCreateRejectsInvalid(t *testing.T) {
	svc := NewOrderService(setupServiceTestDB(t))
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*OrderInput)
		field  string
	}{
		{"total mismatch", func(in *OrderInput) { in.Total = decimal.NewFromInt(30) }, "total"},
		{"zero quantity", func(in *OrderInput) { in.Items[0].Quantity = 0 }, "items[0].quantity"},
		{"free item", func(in *OrderInput) { in.Items[1].Price = decimal.Zero }, "items[1].price"},
		{"no items", func(in *OrderInput) { in.Items = nil }, "items"},
		{"bad email", func(in *OrderInput) { in.Email = "ana" }, "email"},
		{"bad type", func(in *OrderInput) { in.Type = "GIFT" }, "type"},
		{"no customer", func(in *OrderInput) { in.CustomerName = " " }, "customerName"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validOrderInput()
			tc.mutate(&in)
			_, err := svc.Create(ctx, in)
			requireField(t, err, tc.field)
		})
	}

	assert.Zero(t, countRows(t, svc, &db.Order{}))
	assert.Zero(t, countRows(t, svc, &db.OrderItem{}))
}

func TestOrderCheckoutPricesFromCatalog(t *testing.T) {
	gdb := setupServiceTestDB(t)
	products := NewProductService(gdb)
	svc := NewOrderService(gdb)
	ctx := context.Background()

	mate, err := products.Create(ctx, ProductInput{
		Name:           "Mate",
		PriceRetail:    decimal.NewFromInt(100),
		PriceWholesale: decimal.NewNullDecimal(decimal.NewFromInt(80)),
	})
	require.NoError(t, err)
	termo, err := products.Create(ctx, ProductInput{Name: "Termo", PriceRetail: decimal.NewFromInt(50)})
	require.NoError(t, err)

	// 购物车里的价格已过期，结账时以目录价格为准
	c := cart.New([]cart.Item{
		{ID: mate.ID, Name: "Mate", Price: decimal.NewFromInt(1), Quantity: 2},
		{ID: termo.ID, Name: "Termo", Price: decimal.NewFromInt(1), Quantity: 1},
	})
	customer := CheckoutInput{CustomerName: "Ana", Email: "ana@example.com"}

	retail, err := svc.Checkout(ctx, c, customer)
	require.NoError(t, err)
	assert.Equal(t, db.OrderTypeRetail, retail.Type)
	assert.Equal(t, "250.00", retail.Total.StringFixed(2))

	customer.Type = db.OrderTypeWholesale
	wholesale, err := svc.Checkout(ctx, c, customer)
	require.NoError(t, err)
	assert.Equal(t, "210.00", wholesale.Total.StringFixed(2))
	assert.Equal(t, "80.00", wholesale.Items[0].Price.StringFixed(2))

	_, err = svc.Checkout(ctx, cart.Cart{}, customer)
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = products.Update(ctx, termo.ID, ProductInput{Name: "Termo", PriceRetail: decimal.NewFromInt(50), Active: ptr(false)})
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, c, customer)
	requireField(t, err, "items")
}

func TestOrderUpdateStatus(t *testing.T) {
	svc := NewOrderService(setupServiceTestDB(t))
	ctx := context.Background()

	order, err := svc.Create(ctx, validOrderInput())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, order.ID, "in_progress")
	require.NoError(t, err)
	assert.Equal(t, db.OrderStatusInProgress, updated.Status)
	assert.Len(t, updated.Items, 2)

	_, err = svc.UpdateStatus(ctx, order.ID, "SHIPPED")
	requireField(t, err, "status")

	_, err = svc.UpdateStatus(ctx, 9999, db.OrderStatusDone)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	done, err := svc.List(ctx, "IN_PROGRESS")
	require.NoError(t, err)
	assert.Len(t, done, 1)
}
