package handler

import (
	"net/http"

	"github.com/itchan-dev/shopkeeper/shared/api"
	"github.com/itchan-dev/shopkeeper/shared/domain"
	"github.com/itchan-dev/shopkeeper/shared/utils"
)

func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "customerId", "Customer")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	orders, err := h.customer.Orders(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

// CreateOrder appends an order and responds with the whole customer.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "customerId", "Customer")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.CreateOrderRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	article, err := parseArticleRef(body.Article)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	customer, err := h.customer.AddOrder(r.Context(), id, domain.OrderCreationData{Article: article, DeliveryStatus: body.DeliveryStatus})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, customer)
}

// ClearOrders empties the orders of a customer and responds with the customer.
func (h *Handler) ClearOrders(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "customerId", "Customer")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	customer, err := h.customer.ClearOrders(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, customer)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, orderId, err := orderPath(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	order, err := h.customer.Order(r.Context(), id, orderId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}

// UpdateOrder changes the fields present in the body. Empty strings count as
// absent.
func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, orderId, err := orderPath(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.UpdateOrderRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var patch domain.OrderPatch
	if body.Article != nil && *body.Article != "" {
		article, err := parseArticleRef(*body.Article)
		if err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
		patch.Article = &article
	}
	if body.DeliveryStatus != nil && *body.DeliveryStatus != "" {
		patch.DeliveryStatus = body.DeliveryStatus
	}

	order, err := h.customer.UpdateOrder(r.Context(), id, orderId, patch)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}

// DeleteOrder removes one order and responds with the remaining orders.
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, orderId, err := orderPath(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	orders, err := h.customer.DeleteOrder(r.Context(), id, orderId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

func orderPath(r *http.Request) (domain.CustomerId, domain.OrderId, error) {
	id, err := pathId(r, "customerId", "Customer")
	if err != nil {
		return id, id, err
	}
	orderId, err := pathId(r, "orderId", "Order")
	if err != nil {
		return id, orderId, err
	}
	return id, orderId, nil
}
