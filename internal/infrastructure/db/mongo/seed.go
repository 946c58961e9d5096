package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rs/zerolog"
)

// sampleProducts is the starter catalog inserted by SeedProducts. Prices
// are in IDR.
var sampleProducts = []productDoc{
	{
		Name:        "Laptop Gaming ROG Strix",
		Description: "Laptop gaming dengan Intel Core i7, RAM 16GB, SSD 512GB, RTX 4060.",
		Price:       15000000,
		Category:    "Elektronik",
		InStock:     true,
	},
	{
		Name:        "Smartphone Samsung Galaxy S24",
		Description: "Flagship dengan kamera 200MP, layar AMOLED 6.8 inch, RAM 12GB.",
		Price:       12000000,
		Category:    "Elektronik",
		InStock:     true,
	},
	{
		Name:        "Headset Gaming HyperX Cloud",
		Description: "Audio 7.1 surround, mikrofon noise-cancelling.",
		Price:       1500000,
		Category:    "Gaming",
		InStock:     true,
	},
	{
		Name:        "Mechanical Keyboard RGB",
		Description: "Switch Cherry MX Blue, RGB lighting customizable.",
		Price:       800000,
		Category:    "Gaming",
		InStock:     true,
	},
	{
		Name:        "Hoodie Premium Cotton",
		Description: "Cotton combed 30s, cutting slim fit.",
		Price:       250000,
		Category:    "Fashion",
		InStock:     true,
	},
	{
		Name:        "Sneakers Running Nike",
		Description: "Teknologi Air Zoom, upper mesh breathable.",
		Price:       1200000,
		Category:    "Fashion",
		InStock:     false,
	},
	{
		Name:        "Powerbank 20000mAh",
		Description: "Fast charging PD 22.5W, wireless charging.",
		Price:       300000,
		Category:    "Elektronik",
		InStock:     true,
	},
	{
		Name:        "Smart Watch Apple Series 9",
		Description: "Chipset S9, Always-On Retina display, GPS + Cellular.",
		Price:       6000000,
		Category:    "Elektronik",
		InStock:     true,
	},
}

// SeedProducts inserts the sample catalog when the products collection is
// empty. A non-empty catalog is left untouched.
func SeedProducts(ctx context.Context, db *mongo.Database, log zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	col := db.Collection(collectionProducts)
	count, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info().Int64("products", count).Msg("catalog already seeded, skipping")
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, len(sampleProducts))
	for i, p := range sampleProducts {
		p.CreatedAt = now
		docs[i] = p
	}
	if _, err := col.InsertMany(ctx, docs); err != nil {
		return err
	}

	log.Info().Int("products", len(docs)).Msg("catalog seeded")
	return nil
}
