package api

// Request DTOs

type CreateOrderRequest struct {
	Article        string `json:"article" validate:"required"`
	DeliveryStatus string `json:"deliveryStatus"`
}

type UpdateOrderRequest struct {
	Article        *string `json:"article,omitempty"`
	DeliveryStatus *string `json:"deliveryStatus,omitempty"`
}

type CreateCustomerRequest struct {
	FirstName      string               `json:"firstName" validate:"required"`
	LastName       string               `json:"lastName" validate:"required"`
	Address        string               `json:"address"`
	PaymentDetails string               `json:"paymentDetails"`
	Orders         []CreateOrderRequest `json:"orders" validate:"dive"`
}

type UpdateCustomerRequest struct {
	FirstName      *string `json:"firstName,omitempty" validate:"omitnil,min=1"`
	LastName       *string `json:"lastName,omitempty" validate:"omitnil,min=1"`
	Address        *string `json:"address,omitempty"`
	PaymentDetails *string `json:"paymentDetails,omitempty"`
}
