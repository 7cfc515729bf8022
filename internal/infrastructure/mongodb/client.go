package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/artesanica/artesanica-api/pkg/config"
)

// Nombres de colecciones.
const (
	usersCollection     = "users"
	cartsCollection     = "carts"
	wishlistsCollection = "wishlists"
	productsCollection  = "products"
)

// Connect abre la conexión a MongoDB, verifica con ping y asegura los
// índices. El handle se pasa explícitamente a cada repositorio; el cierre es
// responsabilidad del main (Disconnect al apagar).
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("conectar a MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Database)
	if err := ensureIndexes(connectCtx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return db, nil
}

// ensureIndexes crea los índices que sostienen las invariantes del modelo:
// email único, un carrito/lista por usuario, y búsqueda por hash de token.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	_, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "emailVerificationToken", Value: 1}}, Options: options.Index().SetSparse(true)},
		{Keys: bson.D{{Key: "resetPasswordToken", Value: 1}}, Options: options.Index().SetSparse(true)},
	})
	if err != nil {
		return fmt.Errorf("índices de users: %w", err)
	}

	if _, err := db.Collection(cartsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}}, Options: unique,
	}); err != nil {
		return fmt.Errorf("índice de carts: %w", err)
	}

	if _, err := db.Collection(wishlistsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}}, Options: unique,
	}); err != nil {
		return fmt.Errorf("índice de wishlists: %w", err)
	}

	if _, err := db.Collection(productsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "slug", Value: 1}},
	}); err != nil {
		return fmt.Errorf("índice de products: %w", err)
	}
	return nil
}
