package entity

import "time"

// Roles válidos para User.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Address dirección de envío del usuario.
type Address struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// User representa un usuario de la tienda.
//
// PasswordHash es bcrypt y nunca sale del dominio en texto plano. Los tokens
// de verificación de correo y de restablecimiento de contraseña se guardan
// solo como hash SHA-256 (un solo uso): el texto plano se entrega una única
// vez por correo y jamás se persiste.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string // único, siempre en minúsculas
	PasswordHash string
	Phone        string
	Address      Address
	Role         string // user | admin

	IsEmailVerified         bool
	EmailVerificationToken  string // hash SHA-256, vacío si no hay token pendiente
	EmailVerificationExpire time.Time
	ResetPasswordToken      string // hash SHA-256, vacío si no hay token pendiente
	ResetPasswordExpire     time.Time

	Orders []string // referencias a pedidos

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClearVerificationToken descarta el token de verificación pendiente
// (uso único o rollback tras fallo de envío).
func (u *User) ClearVerificationToken() {
	u.EmailVerificationToken = ""
	u.EmailVerificationExpire = time.Time{}
}

// ClearResetToken descarta el token de restablecimiento pendiente.
func (u *User) ClearResetToken() {
	u.ResetPasswordToken = ""
	u.ResetPasswordExpire = time.Time{}
}
