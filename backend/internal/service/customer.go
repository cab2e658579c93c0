package service

import (
	"context"
	"strings"
	"time"

	"github.com/itchan-dev/shopkeeper/shared/domain"
	"github.com/itchan-dev/shopkeeper/shared/errors"
	"github.com/itchan-dev/shopkeeper/shared/logger"
)

type CustomerService interface {
	Create(ctx context.Context, data domain.CustomerCreationData) (domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Get(ctx context.Context, id domain.CustomerId) (domain.Customer, error)
	Update(ctx context.Context, id domain.CustomerId, patch domain.CustomerPatch) (domain.Customer, error)
	Delete(ctx context.Context, id domain.CustomerId) (domain.Customer, error)
	DeleteAll(ctx context.Context) (int64, error)

	Orders(ctx context.Context, id domain.CustomerId) (domain.Orders, error)
	AddOrder(ctx context.Context, id domain.CustomerId, data domain.OrderCreationData) (domain.Customer, error)
	Order(ctx context.Context, id domain.CustomerId, orderId domain.OrderId) (domain.Order, error)
	UpdateOrder(ctx context.Context, id domain.CustomerId, orderId domain.OrderId, patch domain.OrderPatch) (domain.Order, error)
	DeleteOrder(ctx context.Context, id domain.CustomerId, orderId domain.OrderId) (domain.Orders, error)
	ClearOrders(ctx context.Context, id domain.CustomerId) (domain.Customer, error)
}

type CustomerStorage interface {
	CreateCustomer(ctx context.Context, c domain.Customer) (domain.Customer, error)
	Customer(ctx context.Context, id domain.CustomerId) (domain.Customer, error)
	Customers(ctx context.Context) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, id domain.CustomerId, patch domain.CustomerPatch) (domain.Customer, error)
	SaveOrders(ctx context.Context, c domain.Customer) (domain.Customer, error)
	DeleteCustomer(ctx context.Context, id domain.CustomerId) (domain.Customer, error)
	DeleteCustomers(ctx context.Context) (int64, error)
}

type Customer struct {
	storage CustomerStorage
	now     func() time.Time
}

func NewCustomer(storage CustomerStorage) *Customer {
	return &Customer{storage: storage, now: time.Now}
}

var errOrderNotFound = errors.NotFound("Order not found")

func (s *Customer) Create(ctx context.Context, data domain.CustomerCreationData) (domain.Customer, error) {
	var missing []string
	if strings.TrimSpace(data.FirstName) == "" {
		missing = append(missing, "firstName")
	}
	if strings.TrimSpace(data.LastName) == "" {
		missing = append(missing, "lastName")
	}
	if len(missing) > 0 {
		return domain.Customer{}, errors.Validation("Required fields missing: " + strings.Join(missing, ", "))
	}

	now := s.now().UTC()
	orders := make(domain.Orders, 0, len(data.Orders))
	for _, o := range data.Orders {
		orders = append(orders, domain.NewOrder(o, now))
	}

	customer, err := s.storage.CreateCustomer(ctx, domain.Customer{
		FirstName:      data.FirstName,
		LastName:       data.LastName,
		Address:        data.Address,
		PaymentDetails: data.PaymentDetails,
		Orders:         orders,
	})
	if err != nil {
		return domain.Customer{}, err
	}
	logger.Log.Info("customer created", "customer_id", customer.Id, "orders", len(orders))
	return customer, nil
}

func (s *Customer) List(ctx context.Context) ([]domain.Customer, error) {
	return s.storage.Customers(ctx)
}

func (s *Customer) Get(ctx context.Context, id domain.CustomerId) (domain.Customer, error) {
	return s.storage.Customer(ctx, id)
}

// Update merges patch into the top-level fields. Orders are managed through
// the order operations only.
func (s *Customer) Update(ctx context.Context, id domain.CustomerId, patch domain.CustomerPatch) (domain.Customer, error) {
	if patch.IsEmpty() {
		return s.storage.Customer(ctx, id)
	}
	if patch.FirstName != nil && strings.TrimSpace(*patch.FirstName) == "" {
		return domain.Customer{}, errors.Validation("Invalid fields: firstName")
	}
	if patch.LastName != nil && strings.TrimSpace(*patch.LastName) == "" {
		return domain.Customer{}, errors.Validation("Invalid fields: lastName")
	}
	return s.storage.UpdateCustomer(ctx, id, patch)
}

func (s *Customer) Delete(ctx context.Context, id domain.CustomerId) (domain.Customer, error) {
	customer, err := s.storage.DeleteCustomer(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}
	logger.Log.Info("customer deleted", "customer_id", id, "orders", len(customer.Orders))
	return customer, nil
}

func (s *Customer) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.storage.DeleteCustomers(ctx)
	if err != nil {
		return 0, err
	}
	logger.Log.Info("customers deleted", "count", n)
	return n, nil
}

// =========================================================================
// Orders
// Every mutation reads the customer, changes its orders in memory and
// writes the whole sequence back. Storage refuses the write if the
// customer changed in between.
// =========================================================================

func (s *Customer) Orders(ctx context.Context, id domain.CustomerId) (domain.Orders, error) {
	customer, err := s.storage.Customer(ctx, id)
	if err != nil {
		return nil, err
	}
	return customer.Orders, nil
}

// AddOrder appends a new order and returns the updated customer.
func (s *Customer) AddOrder(ctx context.Context, id domain.CustomerId, data domain.OrderCreationData) (domain.Customer, error) {
	customer, err := s.storage.Customer(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}
	order := domain.NewOrder(data, s.now().UTC())
	customer.Orders = append(customer.Orders, order)

	saved, err := s.storage.SaveOrders(ctx, customer)
	if err != nil {
		return domain.Customer{}, err
	}
	logger.Log.Info("order added", "customer_id", id, "order_id", order.Id)
	return saved, nil
}

func (s *Customer) Order(ctx context.Context, id domain.CustomerId, orderId domain.OrderId) (domain.Order, error) {
	customer, err := s.storage.Customer(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	i := customer.Orders.Find(orderId)
	if i < 0 {
		return domain.Order{}, errOrderNotFound
	}
	return customer.Orders[i], nil
}

// UpdateOrder changes only the fields present in patch. An empty delivery
// status counts as absent.
func (s *Customer) UpdateOrder(ctx context.Context, id domain.CustomerId, orderId domain.OrderId, patch domain.OrderPatch) (domain.Order, error) {
	customer, err := s.storage.Customer(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	i := customer.Orders.Find(orderId)
	if i < 0 {
		return domain.Order{}, errOrderNotFound
	}

	order := &customer.Orders[i]
	if patch.Article != nil {
		order.Article = *patch.Article
	}
	if patch.DeliveryStatus != nil && *patch.DeliveryStatus != "" {
		order.DeliveryStatus = *patch.DeliveryStatus
	}
	order.UpdatedAt = s.now().UTC()

	saved, err := s.storage.SaveOrders(ctx, customer)
	if err != nil {
		return domain.Order{}, err
	}
	if j := saved.Orders.Find(orderId); j >= 0 {
		return saved.Orders[j], nil
	}
	return *order, nil
}

// DeleteOrder removes one order and returns the remaining ones.
func (s *Customer) DeleteOrder(ctx context.Context, id domain.CustomerId, orderId domain.OrderId) (domain.Orders, error) {
	customer, err := s.storage.Customer(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer.Orders.Find(orderId) < 0 {
		return nil, errOrderNotFound
	}
	customer.Orders = customer.Orders.Without(orderId)

	saved, err := s.storage.SaveOrders(ctx, customer)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("order deleted", "customer_id", id, "order_id", orderId)
	return saved.Orders, nil
}

func (s *Customer) ClearOrders(ctx context.Context, id domain.CustomerId) (domain.Customer, error) {
	customer, err := s.storage.Customer(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}
	customer.Orders = domain.Orders{}

	saved, err := s.storage.SaveOrders(ctx, customer)
	if err != nil {
		return domain.Customer{}, err
	}
	logger.Log.Info("orders cleared", "customer_id", id)
	return saved, nil
}
