package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/warungkita/storefront-api/internal/core/domain"
)

const collectionCartItems = "cart_items"

type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{col: db.Collection(collectionCartItems)}
}

type cartDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	ProductID string             `bson:"product_id"`
	Quantity  int64              `bson:"quantity"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d cartDoc) toDomain() *domain.CartItem {
	return &domain.CartItem{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		ProductID: d.ProductID,
		Quantity:  d.Quantity,
		UpdatedAt: d.UpdatedAt,
	}
}

// AddOrIncrement merges qty into the (userID, productID) line with a single
// upsert, so concurrent adds for the same pair serialize on the unique
// (user_id, product_id) index instead of racing a read-then-write. When two
// first-time adds collide, the loser's upsert surfaces a duplicate key and
// is retried once as a plain increment.
func (r *CartRepository) AddOrIncrement(ctx context.Context, userID, productID string, qty int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID, "product_id": productID}
	update := bson.M{
		"$inc": bson.M{"quantity": qty},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		res, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				lastErr = err
				continue
			}
			return "", err
		}
		if res.UpsertedID != nil {
			return res.UpsertedID.(primitive.ObjectID).Hex(), nil
		}
		var doc cartDoc
		if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
			return "", err
		}
		return doc.ID.Hex(), nil
	}
	return "", lastErr
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, userID, itemID string, qty int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return domain.ErrCartItemNotFound
	}

	// The user_id filter keeps callers inside their own cart.
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": userID},
		bson.M{"$set": bson.M{"quantity": qty, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

// Delete removes the caller's line. An absent line is not an error.
func (r *CartRepository) Delete(ctx context.Context, userID, itemID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return nil
	}

	_, err = r.col.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	return err
}

func (r *CartRepository) ListByUser(ctx context.Context, userID string) ([]*domain.CartItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []*domain.CartItem{}
	for cur.Next(ctx) {
		var doc cartDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, doc.toDomain())
	}
	return items, cur.Err()
}

func (r *CartRepository) ClearUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

// EnsureIndexes creates the unique (user_id, product_id) index that both
// enforces the one-line-per-pair invariant and serializes concurrent merges.
func (r *CartRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "product_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
