package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/warungkita/storefront-api/internal/core/domain"
)

const collectionOrders = "orders"

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

type orderDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	UserID         string             `bson:"user_id"`
	Username       string             `bson:"username"`
	WhatsappNumber string             `bson:"whatsapp_number"`
	Products       []domain.OrderLine `bson:"products"`
	TotalAmount    float64            `bson:"total_amount"`
	Status         string             `bson:"status"`
	CreatedAt      time.Time          `bson:"created_at"`
}

func (d orderDoc) toDomain() *domain.Order {
	return &domain.Order{
		ID:             d.ID.Hex(),
		UserID:         d.UserID,
		Username:       d.Username,
		WhatsappNumber: d.WhatsappNumber,
		Products:       d.Products,
		TotalAmount:    d.TotalAmount,
		Status:         domain.OrderStatus(d.Status),
		CreatedAt:      d.CreatedAt,
	}
}

func (r *OrderRepository) Insert(ctx context.Context, o *domain.Order) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := orderDoc{
		UserID:         o.UserID,
		Username:       o.Username,
		WhatsappNumber: o.WhatsappNumber,
		Products:       o.Products,
		TotalAmount:    o.TotalAmount,
		Status:         string(o.Status),
		CreatedAt:      o.CreatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	var doc orderDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return r.list(ctx, bson.M{})
}

func (r *OrderRepository) list(ctx context.Context, filter bson.M) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	orders := []*domain.Order{}
	for cur.Next(ctx) {
		var doc orderDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		orders = append(orders, doc.toDomain())
	}
	return orders, cur.Err()
}

// UpdateStatus is conditional on the current status: the write applies only
// while the order is still in from. Orders are never deleted, so a zero
// match means a concurrent transition moved the status first.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, from, next domain.OrderStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrOrderNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "status": string(from)},
		bson.M{"$set": bson.M{"status": string(next)}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

// EnsureIndexes creates the owner and status indexes used by the listings.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
