// Package mongostore stores report documents in MongoDB, one collection
// per document kind.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/district-ledger/backend/internal/models"
	"github.com/district-ledger/backend/internal/store"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

type backend struct {
	client *mongo.Client
}

// Open connects to the MongoDB deployment at uri, ensures the indexes of
// all collections in database exist and returns a Store backed by it.
func Open(ctx context.Context, uri, database string) (*store.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	registry := newRegistry()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetRegistry(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(database)
	if err := ensureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Info().Str("database", database).Msg("connected to MongoDB")

	return &store.Store{
		Backend:     backend{client},
		Sunday:      newCollection[models.SundayServiceReport](db, registry),
		Midweek:     newCollection[models.MidweekServiceReport](db, registry),
		Special:     newCollection[models.SpecialServiceReport](db, registry),
		Tithes:      newCollection[models.TitheReport](db, registry),
		Offerings:   newCollection[models.OfferingReport](db, registry),
		Submissions: newCollection[models.Submission](db, registry),
	}, nil
}

// indexes returns the indexes every collection has: the unique document
// key and the creation time used for sorting and date ranges.
func indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "assembly", Value: 1}, {Key: "month", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("assembly_month"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("created_at"),
		},
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, name := range models.Registry {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes()); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", name, err)
		}
	}
	return nil
}

func (b backend) Name() string {
	return "mongodb"
}

func (b backend) Ping(ctx context.Context) error {
	if err := b.client.Ping(ctx, readpref.Primary()); err != nil {
		log.Error().Msgf("%T: %v", err, err.Error())
		return store.ErrGeneral
	}
	return nil
}

func (b backend) Close(ctx context.Context) error {
	return b.client.Disconnect(ctx)
}
