package handler

import (
	"net/http"

	"github.com/itchan-dev/shopkeeper/shared/api"
	"github.com/itchan-dev/shopkeeper/shared/domain"
	"github.com/itchan-dev/shopkeeper/shared/utils"
)

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var body api.CreateCustomerRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	orders := make([]domain.OrderCreationData, 0, len(body.Orders))
	for _, o := range body.Orders {
		article, err := parseArticleRef(o.Article)
		if err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
		orders = append(orders, domain.OrderCreationData{Article: article, DeliveryStatus: o.DeliveryStatus})
	}

	customer, err := h.customer.Create(r.Context(), domain.CustomerCreationData{
		FirstName:      body.FirstName,
		LastName:       body.LastName,
		Address:        body.Address,
		PaymentDetails: body.PaymentDetails,
		Orders:         orders,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, customer)
}

func (h *Handler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customer.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, customers)
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "customerId", "Customer")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	customer, err := h.customer.Get(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, customer)
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "customerId", "Customer")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.UpdateCustomerRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	customer, err := h.customer.Update(r.Context(), id, domain.CustomerPatch{
		FirstName:      body.FirstName,
		LastName:       body.LastName,
		Address:        body.Address,
		PaymentDetails: body.PaymentDetails,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, customer)
}

func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "customerId", "Customer")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	customer, err := h.customer.Delete(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, customer)
}

func (h *Handler) DeleteCustomers(w http.ResponseWriter, r *http.Request) {
	n, err := h.customer.DeleteAll(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.DeleteManyResponse{Success: true, DeletedCount: n})
}
