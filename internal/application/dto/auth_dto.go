package dto

import "time"

// AddressDTO dirección de envío en requests y responses.
type AddressDTO struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// RegisterRequest entrada para registro (password en texto, se hashea en el
// caso de uso).
type RegisterRequest struct {
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	Phone     string     `json:"phone"`
	Address   AddressDTO `json:"address"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse salida de un usuario (sin password ni hashes de tokens).
type UserResponse struct {
	ID              string     `json:"id"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone,omitempty"`
	Address         AddressDTO `json:"address"`
	Role            string     `json:"role"`
	IsEmailVerified bool       `json:"isEmailVerified"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// AuthResponse salida de login/registro: token de sesión + usuario.
type AuthResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
	Message string       `json:"message,omitempty"`
}

// UpdateDetailsRequest actualización de perfil (self-service). Campos nil no
// se tocan.
type UpdateDetailsRequest struct {
	FirstName *string     `json:"firstName"`
	LastName  *string     `json:"lastName"`
	Email     *string     `json:"email"`
	Phone     *string     `json:"phone"`
	Address   *AddressDTO `json:"address"`
}

// UpdatePasswordRequest cambio de contraseña autenticado.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ForgotPasswordRequest solicitud de restablecimiento.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest nueva contraseña (el token viaja en la URL).
type ResetPasswordRequest struct {
	Password string `json:"password"`
}
