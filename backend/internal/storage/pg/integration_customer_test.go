package pg

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/itchan-dev/shopkeeper/shared/domain"
	internal_errors "github.com/itchan-dev/shopkeeper/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomer(t *testing.T, orders ...domain.Order) domain.Customer {
	t.Helper()
	c, err := storage.CreateCustomer(context.Background(), domain.Customer{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Address:   "12 St James's Square",
		Orders:    orders,
	})
	require.NoError(t, err)
	return c
}

func TestCreateCustomer(t *testing.T) {
	t.Run("without orders", func(t *testing.T) {
		c := newCustomer(t)
		assert.NotEqual(t, uuid.Nil, c.Id)
		assert.Equal(t, "Ada", c.FirstName)
		assert.Equal(t, "", c.PaymentDetails)
		assert.NotNil(t, c.Orders)
		assert.Empty(t, c.Orders)
		assert.Equal(t, int64(1), c.Version)
	})

	t.Run("with orders", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Microsecond)
		first := domain.NewOrder(domain.OrderCreationData{Article: uuid.New()}, now)
		second := domain.NewOrder(domain.OrderCreationData{Article: uuid.New(), DeliveryStatus: "shipped"}, now)
		c := newCustomer(t, first, second)

		got, err := storage.Customer(context.Background(), c.Id)
		require.NoError(t, err)
		require.Len(t, got.Orders, 2)
		assert.Equal(t, first.Id, got.Orders[0].Id)
		assert.Equal(t, domain.DefaultDeliveryStatus, got.Orders[0].DeliveryStatus)
		assert.Equal(t, second.Id, got.Orders[1].Id)
		assert.Equal(t, "shipped", got.Orders[1].DeliveryStatus)
		assert.True(t, first.CreatedAt.Equal(got.Orders[0].CreatedAt))
	})
}

func TestCustomers(t *testing.T) {
	ctx := context.Background()
	truncate(t, "customers")

	customers, err := storage.Customers(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers)

	a := newCustomer(t)
	b := newCustomer(t)

	customers, err = storage.Customers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, a.Id, customers[0].Id)
	assert.Equal(t, b.Id, customers[1].Id)

	_, err = storage.Customer(ctx, uuid.New())
	assert.True(t, internal_errors.IsNotFound(err))
}

func TestUpdateCustomer(t *testing.T) {
	ctx := context.Background()
	order := domain.NewOrder(domain.OrderCreationData{Article: uuid.New()}, time.Now())
	c := newCustomer(t, order)

	address := "Marylebone"
	updated, err := storage.UpdateCustomer(ctx, c.Id, domain.CustomerPatch{Address: &address})
	require.NoError(t, err)
	assert.Equal(t, "Marylebone", updated.Address)
	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, c.Version+1, updated.Version)
	require.Len(t, updated.Orders, 1, "orders are left alone")
	assert.Equal(t, order.Id, updated.Orders[0].Id)

	_, err = storage.UpdateCustomer(ctx, uuid.New(), domain.CustomerPatch{Address: &address})
	assert.True(t, internal_errors.IsNotFound(err))
}

func TestSaveOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("append and clear", func(t *testing.T) {
		c := newCustomer(t)
		c.Orders = append(c.Orders, domain.NewOrder(domain.OrderCreationData{Article: uuid.New()}, time.Now()))

		saved, err := storage.SaveOrders(ctx, c)
		require.NoError(t, err)
		require.Len(t, saved.Orders, 1)
		assert.Equal(t, c.Version+1, saved.Version)

		saved.Orders = nil
		cleared, err := storage.SaveOrders(ctx, saved)
		require.NoError(t, err)
		assert.NotNil(t, cleared.Orders)
		assert.Empty(t, cleared.Orders)
	})

	t.Run("stale version is refused", func(t *testing.T) {
		c := newCustomer(t)
		first := c
		first.Orders = domain.Orders{domain.NewOrder(domain.OrderCreationData{Article: uuid.New()}, time.Now())}
		second := c
		second.Orders = domain.Orders{domain.NewOrder(domain.OrderCreationData{Article: uuid.New()}, time.Now())}

		_, err := storage.SaveOrders(ctx, first)
		require.NoError(t, err)

		_, err = storage.SaveOrders(ctx, second)
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, internal_errors.StatusCode(err))

		got, err := storage.Customer(ctx, c.Id)
		require.NoError(t, err)
		require.Len(t, got.Orders, 1)
		assert.Equal(t, first.Orders[0].Id, got.Orders[0].Id, "first write is not lost")
	})

	t.Run("missing customer", func(t *testing.T) {
		_, err := storage.SaveOrders(ctx, domain.Customer{Id: uuid.New(), Version: 1})
		assert.True(t, internal_errors.IsNotFound(err))
	})
}

func TestDeleteCustomer(t *testing.T) {
	ctx := context.Background()
	order := domain.NewOrder(domain.OrderCreationData{Article: uuid.New()}, time.Now())
	c := newCustomer(t, order)

	deleted, err := storage.DeleteCustomer(ctx, c.Id)
	require.NoError(t, err)
	assert.Equal(t, c.Id, deleted.Id)
	require.Len(t, deleted.Orders, 1)

	// orders go with their customer
	_, err = storage.Customer(ctx, c.Id)
	assert.True(t, internal_errors.IsNotFound(err))

	_, err = storage.DeleteCustomer(ctx, c.Id)
	assert.True(t, internal_errors.IsNotFound(err))
}

func TestDeleteCustomers(t *testing.T) {
	ctx := context.Background()
	truncate(t, "customers")
	newCustomer(t)
	newCustomer(t)

	n, err := storage.DeleteCustomers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	customers, err := storage.Customers(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers)
}
