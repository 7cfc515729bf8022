package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/artesanica/artesanica-api/internal/application/dto"
	"github.com/artesanica/artesanica-api/internal/domain"
	"github.com/artesanica/artesanica-api/internal/domain/entity"
	"github.com/artesanica/artesanica-api/internal/domain/repository"
	"github.com/artesanica/artesanica-api/pkg/jwt"
	"github.com/artesanica/artesanica-api/pkg/token"
)

// Validez de los tokens de un solo uso.
const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = 10 * time.Minute
	minPasswordLen       = 6
)

var emailRegexp = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro con verificación de
// correo, login, restablecimiento de contraseña y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	mailer   Mailer
	jwtCfg   JWTConfig
	baseURL  string
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, mailer Mailer, jwtCfg JWTConfig, baseURL string) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, mailer: mailer, jwtCfg: jwtCfg, baseURL: baseURL}
}

// Register crea un usuario no verificado, persiste el hash del token de
// verificación (24 h) y envía el texto plano por correo. Si el envío falla,
// los campos de token se revierten y se devuelve ErrDeliveryFailed. El
// password jamás se persiste en texto plano.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if in.FirstName == "" || in.LastName == "" || email == "" {
		return nil, domain.ErrInvalidInput
	}
	if !emailRegexp.MatchString(email) {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Password) < minPasswordLen {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear password: %w", err)
	}

	plaintext, tokenHash, err := token.New()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	country := in.Address.Country
	if country == "" {
		country = "México"
	}
	user := &entity.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(in.Phone),
		Address: entity.Address{
			Street:     in.Address.Street,
			City:       in.Address.City,
			State:      in.Address.State,
			PostalCode: in.Address.PostalCode,
			Country:    country,
		},
		Role:                    entity.RoleUser,
		IsEmailVerified:         false,
		EmailVerificationToken:  tokenHash,
		EmailVerificationExpire: now.Add(verificationTokenTTL),
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := uc.sendVerificationEmail(ctx, user, plaintext); err != nil {
		// Rollback: sin correo entregado el token pendiente es inalcanzable.
		user.ClearVerificationToken()
		user.UpdatedAt = time.Now()
		_ = uc.userRepo.Update(ctx, user)
		return nil, domain.ErrDeliveryFailed
	}

	sessionToken, err := uc.sessionToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Success: true,
		Token:   sessionToken,
		User:    *toUserResponse(user),
		Message: "Registro exitoso. Por favor verifica tu correo electrónico.",
	}, nil
}

// Login verifica credenciales y devuelve un token de sesión. Email
// desconocido y password incorrecto producen el mismo ErrInvalidCredentials;
// la verificación de correo se comprueba estrictamente después de que las
// credenciales son correctas.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsEmailVerified {
		return nil, domain.ErrEmailNotVerified
	}
	sessionToken, err := uc.sessionToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Success: true, Token: sessionToken, User: *toUserResponse(user)}, nil
}

// VerifyEmail hashea el token candidato y busca un usuario cuyo hash
// almacenado coincida y cuya expiración siga en el futuro. Uso único: en
// éxito marca el correo como verificado y limpia los campos de token.
func (uc *AuthUseCase) VerifyEmail(ctx context.Context, candidate string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByVerificationTokenHash(ctx, token.Hash(candidate))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.EmailVerificationExpire.After(time.Now()) {
		return nil, domain.ErrInvalidOrExpiredToken
	}
	user.IsEmailVerified = true
	user.ClearVerificationToken()
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ForgotPassword emite un token de restablecimiento (10 min) para el correo
// dado y envía el texto plano por correo. Email desconocido devuelve
// ErrNotFound; fallo de envío revierte el token y devuelve ErrDeliveryFailed.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}

	plaintext, tokenHash, err := token.New()
	if err != nil {
		return err
	}
	user.ResetPasswordToken = tokenHash
	user.ResetPasswordExpire = time.Now().Add(resetTokenTTL)
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if err := uc.sendResetEmail(ctx, user, plaintext); err != nil {
		user.ClearResetToken()
		user.UpdatedAt = time.Now()
		_ = uc.userRepo.Update(ctx, user)
		return domain.ErrDeliveryFailed
	}
	return nil
}

// ResetPassword consume un token de restablecimiento (uso único) y reemplaza
// el hash de la contraseña. Token no encontrado y token vencido son
// indistinguibles para el llamador.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, candidate, newPassword string) (*dto.AuthResponse, error) {
	if len(newPassword) < minPasswordLen {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByResetTokenHash(ctx, token.Hash(candidate))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.ResetPasswordExpire.After(time.Now()) {
		return nil, domain.ErrInvalidOrExpiredToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.ClearResetToken()
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	sessionToken, err := uc.sessionToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Success: true,
		Token:   sessionToken,
		User:    *toUserResponse(user),
		Message: "Contraseña restablecida exitosamente",
	}, nil
}

// UpdatePassword cambia la contraseña de un usuario autenticado; la
// contraseña actual debe verificar primero.
func (uc *AuthUseCase) UpdatePassword(ctx context.Context, userID string, in dto.UpdatePasswordRequest) (*dto.AuthResponse, error) {
	if len(in.NewPassword) < minPasswordLen {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	sessionToken, err := uc.sessionToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Success: true,
		Token:   sessionToken,
		User:    *toUserResponse(user),
		Message: "Contraseña actualizada correctamente",
	}, nil
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// UpdateDetails actualiza el perfil self-service. Campos nil no se tocan. Un
// cambio de email exige que el nuevo no esté registrado.
func (uc *AuthUseCase) UpdateDetails(ctx context.Context, userID string, in dto.UpdateDetailsRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.FirstName != nil {
		user.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		user.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if !emailRegexp.MatchString(email) {
			return nil, domain.ErrInvalidInput
		}
		if email != user.Email {
			existing, err := uc.userRepo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	if in.Phone != nil {
		user.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		user.Address = entity.Address{
			Street:     in.Address.Street,
			City:       in.Address.City,
			State:      in.Address.State,
			PostalCode: in.Address.PostalCode,
			Country:    in.Address.Country,
		}
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) sessionToken(user *entity.User) (string, error) {
	return jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
}

func (uc *AuthUseCase) sendVerificationEmail(ctx context.Context, user *entity.User, plaintext string) error {
	verificationURL := fmt.Sprintf("%s/api/v1/auth/verify-email/%s", uc.baseURL, plaintext)
	body := fmt.Sprintf(`
		<h2>¡Bienvenido a Artesanica, %s!</h2>
		<p>Gracias por registrarte. Por favor, verifica tu dirección de correo electrónico haciendo clic en el siguiente enlace:</p>
		<a href="%s">Verificar Correo Electrónico</a>
		<p>Si no creaste una cuenta en Artesanica, puedes ignorar este correo.</p>`,
		user.FirstName, verificationURL)
	return uc.mailer.SendHTMLEmail(ctx, user.Email, "Verifica tu correo electrónico - Artesanica", body)
}

func (uc *AuthUseCase) sendResetEmail(ctx context.Context, user *entity.User, plaintext string) error {
	resetURL := fmt.Sprintf("%s/api/v1/auth/resetpassword/%s", uc.baseURL, plaintext)
	body := fmt.Sprintf(`
		<h2>Restablecer Contraseña</h2>
		<p>Has solicitado restablecer tu contraseña. Por favor, haz clic en el siguiente enlace para continuar:</p>
		<a href="%s">Restablecer Contraseña</a>
		<p>Si no solicitaste este restablecimiento, por favor ignora este correo.</p>
		<p>Este enlace expirará en 10 minutos.</p>`, resetURL)
	return uc.mailer.SendHTMLEmail(ctx, user.Email, "Restablecimiento de contraseña - Artesanica", body)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Address: dto.AddressDTO{
			Street:     u.Address.Street,
			City:       u.Address.City,
			State:      u.Address.State,
			PostalCode: u.Address.PostalCode,
			Country:    u.Address.Country,
		},
		Role:            u.Role,
		IsEmailVerified: u.IsEmailVerified,
		CreatedAt:       u.CreatedAt,
	}
}
