package handler

import (
	"net/http"

	"github.com/itchan-dev/shopkeeper/shared/api"
	"github.com/itchan-dev/shopkeeper/shared/domain"
	"github.com/itchan-dev/shopkeeper/shared/utils"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body api.RegisterRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	creds := domain.Credentials{Email: body.Email, Password: body.Password}
	if _, err := h.auth.Register(r.Context(), creds, body.FirstName, body.LastName); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.RegisterResponse{Success: true, Status: "Registration Successful!"})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	token, err := h.auth.Login(r.Context(), domain.Credentials{Email: body.Email, Password: body.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.LoginResponse{Success: true, Token: token, Status: "Login Successful!"})
}

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.auth.Users(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.UserListResponse(users))
}
