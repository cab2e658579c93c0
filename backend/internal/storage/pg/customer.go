package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/itchan-dev/shopkeeper/shared/domain"
	internal_errors "github.com/itchan-dev/shopkeeper/shared/errors"
)

const customerColumns = "id, first_name, last_name, address, payment_details, orders, version, created_at, updated_at"

var errCustomerNotFound = internal_errors.NotFound("Customer not found")

// =========================================================================
// Public Methods (satisfy the service.CustomerStorage interface)
// =========================================================================

// CreateCustomer inserts a customer document together with its embedded
// orders. Id, version and timestamps of c are ignored.
func (s *Storage) CreateCustomer(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	var customer domain.Customer
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		customer, err = s.createCustomer(ctx, tx, c)
		return err
	})
	return customer, err
}

func (s *Storage) Customer(ctx context.Context, id domain.CustomerId) (domain.Customer, error) {
	return s.customer(ctx, s.db, id)
}

func (s *Storage) Customers(ctx context.Context) ([]domain.Customer, error) {
	return s.customers(ctx, s.db)
}

// UpdateCustomer merges patch into the top-level fields. Orders are not
// touched.
func (s *Storage) UpdateCustomer(ctx context.Context, id domain.CustomerId, patch domain.CustomerPatch) (domain.Customer, error) {
	var customer domain.Customer
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		customer, err = s.updateCustomer(ctx, tx, id, patch)
		return err
	})
	return customer, err
}

// SaveOrders writes back the whole orders sequence of a customer that was
// read at c.Version. If the document changed since then the write is
// refused with a concurrent modification error.
func (s *Storage) SaveOrders(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	var customer domain.Customer
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		customer, err = s.saveOrders(ctx, tx, c)
		return err
	})
	return customer, err
}

// DeleteCustomer removes a customer with all of its orders and returns the
// removed document.
func (s *Storage) DeleteCustomer(ctx context.Context, id domain.CustomerId) (domain.Customer, error) {
	var customer domain.Customer
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		customer, err = s.deleteCustomer(ctx, tx, id)
		return err
	})
	return customer, err
}

func (s *Storage) DeleteCustomers(ctx context.Context) (int64, error) {
	var n int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		n, err = s.deleteCustomers(ctx, tx)
		return err
	})
	return n, err
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) createCustomer(ctx context.Context, q Querier, c domain.Customer) (domain.Customer, error) {
	orders, err := marshalOrders(c.Orders)
	if err != nil {
		return domain.Customer{}, err
	}
	row := q.QueryRowContext(ctx, `
		INSERT INTO customers(id, first_name, last_name, address, payment_details, orders)
		VALUES($1, $2, $3, $4, $5, $6)
		RETURNING `+customerColumns,
		uuid.New(), c.FirstName, c.LastName, c.Address, c.PaymentDetails, orders,
	)
	customer, err := scanCustomer(row)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("failed to insert customer: %w", err)
	}
	return customer, nil
}

func (s *Storage) customer(ctx context.Context, q Querier, id domain.CustomerId) (domain.Customer, error) {
	row := q.QueryRowContext(ctx, "SELECT "+customerColumns+" FROM customers WHERE id = $1", id)
	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, errCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("failed to query customer: %w", err)
	}
	return customer, nil
}

func (s *Storage) customers(ctx context.Context, q Querier) ([]domain.Customer, error) {
	rows, err := q.QueryContext(ctx, "SELECT "+customerColumns+" FROM customers ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}
	return customers, nil
}

func (s *Storage) updateCustomer(ctx context.Context, q Querier, id domain.CustomerId, patch domain.CustomerPatch) (domain.Customer, error) {
	row := q.QueryRowContext(ctx, `
		UPDATE customers SET
			first_name = COALESCE($2, first_name),
			last_name = COALESCE($3, last_name),
			address = COALESCE($4, address),
			payment_details = COALESCE($5, payment_details),
			version = version + 1,
			updated_at = now()
		WHERE id = $1
		RETURNING `+customerColumns,
		id, patch.FirstName, patch.LastName, patch.Address, patch.PaymentDetails,
	)
	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, errCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

func (s *Storage) saveOrders(ctx context.Context, q Querier, c domain.Customer) (domain.Customer, error) {
	orders, err := marshalOrders(c.Orders)
	if err != nil {
		return domain.Customer{}, err
	}
	row := q.QueryRowContext(ctx, `
		UPDATE customers SET
			orders = $3,
			version = version + 1,
			updated_at = now()
		WHERE id = $1 AND version = $2
		RETURNING `+customerColumns,
		c.Id, c.Version, orders,
	)
	customer, err := scanCustomer(row)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, fmt.Errorf("failed to save orders: %w", err)
	}

	// Either the customer is gone or someone else wrote first.
	var exists bool
	if err := q.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)", c.Id).Scan(&exists); err != nil {
		return domain.Customer{}, fmt.Errorf("failed to check customer existence: %w", err)
	}
	if !exists {
		return domain.Customer{}, errCustomerNotFound
	}
	return domain.Customer{}, internal_errors.ConcurrentModification("customer was modified concurrently, retry")
}

func (s *Storage) deleteCustomer(ctx context.Context, q Querier, id domain.CustomerId) (domain.Customer, error) {
	row := q.QueryRowContext(ctx, "DELETE FROM customers WHERE id = $1 RETURNING "+customerColumns, id)
	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, errCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("failed to delete customer: %w", err)
	}
	return customer, nil
}

func (s *Storage) deleteCustomers(ctx context.Context, q Querier) (int64, error) {
	result, err := q.ExecContext(ctx, "DELETE FROM customers")
	if err != nil {
		return 0, fmt.Errorf("failed to delete customers: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows for customers deletion: %w", err)
	}
	return n, nil
}

func marshalOrders(orders domain.Orders) (string, error) {
	if orders == nil {
		orders = domain.Orders{}
	}
	b, err := json.Marshal(orders)
	if err != nil {
		return "", fmt.Errorf("failed to encode orders: %w", err)
	}
	return string(b), nil
}

func scanCustomer(row rowScanner) (domain.Customer, error) {
	var (
		c      domain.Customer
		orders []byte
	)
	err := row.Scan(&c.Id, &c.FirstName, &c.LastName, &c.Address, &c.PaymentDetails, &orders, &c.Version, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Customer{}, err
	}
	c.Orders = domain.Orders{}
	if err := json.Unmarshal(orders, &c.Orders); err != nil {
		return domain.Customer{}, fmt.Errorf("failed to decode orders: %w", err)
	}
	return c, nil
}
