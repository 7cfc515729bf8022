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

var _ repository.WishlistRepository = (*WishlistRepo)(nil)

type wishlistDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	Items     []wishlistItemDoc  `bson:"items"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type wishlistItemDoc struct {
	ProductID primitive.ObjectID `bson:"productId"`
	AddedAt   time.Time          `bson:"addedAt"`
}

// WishlistRepo implementación del puerto WishlistRepository sobre MongoDB.
type WishlistRepo struct {
	col *mongo.Collection
}

// NewWishlistRepository construye el adaptador de persistencia de la lista
// de deseos.
func NewWishlistRepository(db *mongo.Database) *WishlistRepo {
	return &WishlistRepo{col: db.Collection(wishlistsCollection)}
}

// GetByUser obtiene la lista del usuario; (nil, nil) si no tiene.
func (r *WishlistRepo) GetByUser(ctx context.Context, userID string) (*entity.Wishlist, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, nil
	}
	var doc wishlistDoc
	if err := r.col.FindOne(ctx, bson.M{"userId": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find wishlist: %w", err)
	}
	return fromWishlistDoc(&doc), nil
}

// Save inserta o reemplaza la lista del usuario (upsert por userId).
func (r *WishlistRepo) Save(ctx context.Context, wl *entity.Wishlist) error {
	doc, err := toWishlistDoc(wl)
	if err != nil {
		return err
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"userId": doc.UserID}, doc, opts); err != nil {
		return fmt.Errorf("save wishlist: %w", err)
	}
	return nil
}

// DeleteByUser elimina el documento de la lista; sin documento no es error.
func (r *WishlistRepo) DeleteByUser(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}
	if _, err := r.col.DeleteOne(ctx, bson.M{"userId": oid}); err != nil {
		return fmt.Errorf("delete wishlist: %w", err)
	}
	return nil
}

func toWishlistDoc(w *entity.Wishlist) (*wishlistDoc, error) {
	userOID, err := primitive.ObjectIDFromHex(w.UserID)
	if err != nil {
		return nil, fmt.Errorf("id de usuario inválido: %w", err)
	}
	doc := &wishlistDoc{
		UserID:    userOID,
		Items:     make([]wishlistItemDoc, 0, len(w.Items)),
		UpdatedAt: w.UpdatedAt,
	}
	for _, it := range w.Items {
		productOID, err := primitive.ObjectIDFromHex(it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("referencia de producto inválida: %w", err)
		}
		doc.Items = append(doc.Items, wishlistItemDoc{ProductID: productOID, AddedAt: it.AddedAt})
	}
	return doc, nil
}

func fromWishlistDoc(d *wishlistDoc) *entity.Wishlist {
	wl := &entity.Wishlist{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		Items:     make([]entity.WishlistItem, 0, len(d.Items)),
		UpdatedAt: d.UpdatedAt,
	}
	for _, it := range d.Items {
		wl.Items = append(wl.Items, entity.WishlistItem{ProductID: it.ProductID.Hex(), AddedAt: it.AddedAt})
	}
	return wl
}
