package domain

import (
	"time"

	"github.com/google/uuid"
)

const DefaultDeliveryStatus DeliveryStatus = "order taken"

// Order lives only inside its Customer's Orders. The JSON form is also the
// stored form of the embedded document.
type Order struct {
	Id             OrderId        `json:"id"`
	Article        ArticleId      `json:"article"`
	DeliveryStatus DeliveryStatus `json:"deliveryStatus"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type Orders []Order

type Customer struct {
	Id             CustomerId `json:"id"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Address        string     `json:"address"`
	PaymentDetails string     `json:"paymentDetails"`
	Orders         Orders     `json:"orders"`
	Version        int64      `json:"-"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type OrderCreationData struct {
	Article        ArticleId
	DeliveryStatus DeliveryStatus
}

// OrderPatch holds an order update; nil fields are left untouched.
type OrderPatch struct {
	Article        *ArticleId
	DeliveryStatus *DeliveryStatus
}

type CustomerCreationData struct {
	FirstName      string
	LastName       string
	Address        string
	PaymentDetails string
	Orders         []OrderCreationData
}

// CustomerPatch holds a merge-style update of the top-level customer fields.
type CustomerPatch struct {
	FirstName      *string
	LastName       *string
	Address        *string
	PaymentDetails *string
}

func (p CustomerPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Address == nil && p.PaymentDetails == nil
}

// NewOrder stamps a fresh identity and timestamps on order data.
func NewOrder(data OrderCreationData, now time.Time) Order {
	status := data.DeliveryStatus
	if status == "" {
		status = DefaultDeliveryStatus
	}
	return Order{
		Id:             uuid.New(),
		Article:        data.Article,
		DeliveryStatus: status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Find returns the index of the order with the given id or -1.
func (o Orders) Find(id OrderId) int {
	for i := range o {
		if o[i].Id == id {
			return i
		}
	}
	return -1
}

// Without returns a copy of the sequence with the order removed, preserving
// the order of the remaining elements.
func (o Orders) Without(id OrderId) Orders {
	out := make(Orders, 0, len(o))
	for _, order := range o {
		if order.Id != id {
			out = append(out, order)
		}
	}
	return out
}
