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

const (
	collectionAdmins    = "admins"
	collectionAdminMeta = "admin_meta"

	// bootstrapMarkerID is the _id of the singleton claim document. The
	// primary-key constraint on _id is what makes the first-admin race safe:
	// only one insert of this document can ever succeed.
	bootstrapMarkerID = "bootstrap"
)

type AdminRepository struct {
	grants *mongo.Collection
	meta   *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{
		grants: db.Collection(collectionAdmins),
		meta:   db.Collection(collectionAdminMeta),
	}
}

type grantDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Email     string             `bson:"email"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d grantDoc) toDomain() *domain.AdminGrant {
	return &domain.AdminGrant{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		Email:     d.Email,
		CreatedAt: d.CreatedAt,
	}
}

// FindGrant returns the user's grant, or (nil, nil) when none exists.
func (r *AdminRepository) FindGrant(ctx context.Context, userID string) (*domain.AdminGrant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc grantDoc
	if err := r.grants.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.grants.CountDocuments(ctx, bson.M{})
}

// ClaimBootstrap inserts the singleton marker document. The first caller
// wins; everyone else gets domain.ErrBootstrapTaken. A repeat claim by the
// original winner succeeds again, so a crash between claim and grant insert
// does not wedge the bootstrap forever.
func (r *AdminRepository) ClaimBootstrap(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.meta.InsertOne(ctx, bson.M{
		"_id":        bootstrapMarkerID,
		"user_id":    userID,
		"claimed_at": time.Now().UTC(),
	})
	if err == nil {
		return nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}

	var marker struct {
		UserID string `bson:"user_id"`
	}
	if ferr := r.meta.FindOne(ctx, bson.M{"_id": bootstrapMarkerID}).Decode(&marker); ferr != nil {
		return ferr
	}
	if marker.UserID == userID {
		return nil
	}
	return domain.ErrBootstrapTaken
}

// CreateGrant inserts a grant. A duplicate insert for the same user returns
// the existing grant, keeping the operation idempotent under retries.
func (r *AdminRepository) CreateGrant(ctx context.Context, g *domain.AdminGrant) (*domain.AdminGrant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := grantDoc{
		UserID:    g.UserID,
		Email:     g.Email,
		CreatedAt: g.CreatedAt,
	}
	res, err := r.grants.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return r.FindGrant(ctx, g.UserID)
		}
		return nil, err
	}

	created := *g
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// EnsureIndexes creates the unique user_id index on admin grants.
func (r *AdminRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.grants.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
