package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/artesanica/artesanica-api/internal/domain"
	"github.com/artesanica/artesanica-api/internal/domain/entity"
	"github.com/artesanica/artesanica-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// userDoc forma del documento en la colección users. Los campos de token van
// con omitempty: un token consumido o revertido se des-persiste (unset), no
// queda como string vacío.
type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FirstName    string             `bson:"firstName"`
	LastName     string             `bson:"lastName"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
	Phone        string             `bson:"phone,omitempty"`
	Address      addressDoc         `bson:"address"`
	Role         string             `bson:"role"`

	IsEmailVerified         bool       `bson:"isEmailVerified"`
	EmailVerificationToken  string     `bson:"emailVerificationToken,omitempty"`
	EmailVerificationExpire *time.Time `bson:"emailVerificationExpire,omitempty"`
	ResetPasswordToken      string     `bson:"resetPasswordToken,omitempty"`
	ResetPasswordExpire     *time.Time `bson:"resetPasswordExpire,omitempty"`

	Orders []primitive.ObjectID `bson:"orders,omitempty"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type addressDoc struct {
	Street     string `bson:"street,omitempty"`
	City       string `bson:"city,omitempty"`
	State      string `bson:"state,omitempty"`
	PostalCode string `bson:"postalCode,omitempty"`
	Country    string `bson:"country,omitempty"`
}

// UserRepo implementación del puerto UserRepository sobre MongoDB.
type UserRepo struct {
	col *mongo.Collection
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db *mongo.Database) *UserRepo {
	return &UserRepo{col: db.Collection(usersCollection)}
}

// Create persiste un nuevo usuario y asigna el ID generado. El índice único
// de email convierte el duplicado en ErrEmailAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	doc, err := toUserDoc(user)
	if err != nil {
		return err
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid.Hex()
	}
	return nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil // un ID mal formado no puede resolver a ningún usuario
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// GetByEmail obtiene un usuario por email (almacenado en minúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetByVerificationTokenHash busca por hash del token de verificación.
func (r *UserRepo) GetByVerificationTokenHash(ctx context.Context, tokenHash string) (*entity.User, error) {
	if tokenHash == "" {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"emailVerificationToken": tokenHash})
}

// GetByResetTokenHash busca por hash del token de restablecimiento.
func (r *UserRepo) GetByResetTokenHash(ctx context.Context, tokenHash string) (*entity.User, error) {
	if tokenHash == "" {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"resetPasswordToken": tokenHash})
}

// Update reemplaza el documento completo del usuario. Gracias a omitempty,
// los campos de token limpiados en el dominio desaparecen del documento.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return fmt.Errorf("id de usuario inválido: %w", err)
	}
	doc, err := toUserDoc(user)
	if err != nil {
		return err
	}
	doc.ID = oid
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDoc
	err := r.col.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return fromUserDoc(&doc), nil
}

func toUserDoc(u *entity.User) (*userDoc, error) {
	doc := &userDoc{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Phone:        u.Phone,
		Address: addressDoc{
			Street:     u.Address.Street,
			City:       u.Address.City,
			State:      u.Address.State,
			PostalCode: u.Address.PostalCode,
			Country:    u.Address.Country,
		},
		Role:                   u.Role,
		IsEmailVerified:        u.IsEmailVerified,
		EmailVerificationToken: u.EmailVerificationToken,
		ResetPasswordToken:     u.ResetPasswordToken,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
	}
	if !u.EmailVerificationExpire.IsZero() {
		t := u.EmailVerificationExpire
		doc.EmailVerificationExpire = &t
	}
	if !u.ResetPasswordExpire.IsZero() {
		t := u.ResetPasswordExpire
		doc.ResetPasswordExpire = &t
	}
	for _, order := range u.Orders {
		oid, err := primitive.ObjectIDFromHex(order)
		if err != nil {
			return nil, fmt.Errorf("referencia de pedido inválida: %w", err)
		}
		doc.Orders = append(doc.Orders, oid)
	}
	return doc, nil
}

func fromUserDoc(d *userDoc) *entity.User {
	u := &entity.User{
		ID:           d.ID.Hex(),
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Phone:        d.Phone,
		Address: entity.Address{
			Street:     d.Address.Street,
			City:       d.Address.City,
			State:      d.Address.State,
			PostalCode: d.Address.PostalCode,
			Country:    d.Address.Country,
		},
		Role:                   d.Role,
		IsEmailVerified:        d.IsEmailVerified,
		EmailVerificationToken: d.EmailVerificationToken,
		ResetPasswordToken:     d.ResetPasswordToken,
		CreatedAt:              d.CreatedAt,
		UpdatedAt:              d.UpdatedAt,
	}
	if d.EmailVerificationExpire != nil {
		u.EmailVerificationExpire = *d.EmailVerificationExpire
	}
	if d.ResetPasswordExpire != nil {
		u.ResetPasswordExpire = *d.ResetPasswordExpire
	}
	for _, oid := range d.Orders {
		u.Orders = append(u.Orders, oid.Hex())
	}
	return u
}
