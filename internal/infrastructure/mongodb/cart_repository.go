package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/artesanica/artesanica-api/internal/domain/entity"
	"github.com/artesanica/artesanica-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

type cartDoc struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	UserID    primitive.ObjectID   `bson:"userId"`
	Items     []cartItemDoc        `bson:"items"`
	Total     primitive.Decimal128 `bson:"total"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

type cartItemDoc struct {
	ItemID    string               `bson:"itemId"`
	ProductID primitive.ObjectID   `bson:"productId"`
	Quantity  int                  `bson:"quantity"`
	Price     primitive.Decimal128 `bson:"price"`
	AddedAt   time.Time            `bson:"addedAt"`
}

// CartRepo implementación del puerto CartRepository sobre MongoDB. Un
// documento por usuario; el save reemplaza el documento completo (atomicidad
// por documento, sin token de concurrencia: last-writer-wins asumido).
type CartRepo struct {
	col *mongo.Collection
}

// NewCartRepository construye el adaptador de persistencia del carrito.
func NewCartRepository(db *mongo.Database) *CartRepo {
	return &CartRepo{col: db.Collection(cartsCollection)}
}

// GetByUser obtiene el carrito del usuario; (nil, nil) si no tiene.
func (r *CartRepo) GetByUser(ctx context.Context, userID string) (*entity.Cart, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, nil
	}
	var doc cartDoc
	if err := r.col.FindOne(ctx, bson.M{"userId": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return fromCartDoc(&doc)
}

// Save inserta o reemplaza el carrito del usuario (upsert por userId).
func (r *CartRepo) Save(ctx context.Context, cart *entity.Cart) error {
	doc, err := toCartDoc(cart)
	if err != nil {
		return err
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"userId": doc.UserID}, doc, opts); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// DeleteByUser elimina el documento del carrito; sin documento no es error.
func (r *CartRepo) DeleteByUser(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}
	if _, err := r.col.DeleteOne(ctx, bson.M{"userId": oid}); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

func toCartDoc(c *entity.Cart) (*cartDoc, error) {
	userOID, err := primitive.ObjectIDFromHex(c.UserID)
	if err != nil {
		return nil, fmt.Errorf("id de usuario inválido: %w", err)
	}
	total, err := toDecimal128(c.Total)
	if err != nil {
		return nil, err
	}
	doc := &cartDoc{
		UserID:    userOID,
		Items:     make([]cartItemDoc, 0, len(c.Items)),
		Total:     total,
		UpdatedAt: c.UpdatedAt,
	}
	for _, it := range c.Items {
		productOID, err := primitive.ObjectIDFromHex(it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("referencia de producto inválida: %w", err)
		}
		price, err := toDecimal128(it.Price)
		if err != nil {
			return nil, err
		}
		doc.Items = append(doc.Items, cartItemDoc{
			ItemID:    it.ItemID,
			ProductID: productOID,
			Quantity:  it.Quantity,
			Price:     price,
			AddedAt:   it.AddedAt,
		})
	}
	return doc, nil
}

func fromCartDoc(d *cartDoc) (*entity.Cart, error) {
	total, err := fromDecimal128(d.Total)
	if err != nil {
		return nil, err
	}
	cart := &entity.Cart{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		Items:     make([]entity.CartItem, 0, len(d.Items)),
		Total:     total,
		UpdatedAt: d.UpdatedAt,
	}
	for _, it := range d.Items {
		price, err := fromDecimal128(it.Price)
		if err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, entity.CartItem{
			ItemID:    it.ItemID,
			ProductID: it.ProductID.Hex(),
			Quantity:  it.Quantity,
			Price:     price,
			AddedAt:   it.AddedAt,
		})
	}
	return cart, nil
}
