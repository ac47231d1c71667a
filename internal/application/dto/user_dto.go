package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateManagerRequest entrada para crear un manager asignado a una tienda.
type CreateManagerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	StoreID  string `json:"store_id" validate:"required,uuid"`
}

// CreateSupplierRequest entrada para crear un supplier.
type CreateSupplierRequest struct {
	Username     string `json:"username" validate:"required"`
	Password     string `json:"password" validate:"required"`
	SupplierName string `json:"supplier_name"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	StoreID      string    `json:"store_id,omitempty"`
	SupplierName string    `json:"supplier_name,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
