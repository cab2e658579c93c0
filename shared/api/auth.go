package api

import "github.com/itchan-dev/shopkeeper/shared/domain"

// Request DTOs

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,max=72"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

type RegisterResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Status  string `json:"status"`
}

type UserListResponse []domain.User
