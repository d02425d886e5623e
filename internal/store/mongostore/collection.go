package mongostore

import (
	"context"
	"errors"
	"time"

	"github.com/district-ledger/backend/internal/models"
	"github.com/district-ledger/backend/internal/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type collection[T any, D models.Document[T]] struct {
	coll     *mongo.Collection
	registry *bsoncodec.Registry
}

func newCollection[T any, D models.Document[T]](db *mongo.Database, registry *bsoncodec.Registry) collection[T, D] {
	return collection[T, D]{
		coll:     db.Collection(D(new(T)).TableName()),
		registry: registry,
	}
}

// Upsert replaces the document for (assembly, period) in one atomic
// operation. The unique index on the key makes one of two concurrent
// inserts fail, that insert is then retried as a replace.
func (c collection[T, D]) Upsert(ctx context.Context, doc D) (bool, error) {
	created, err := c.upsert(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		created, err = c.upsert(ctx, doc)
	}

	if err != nil {
		return false, c.general(err)
	}
	return created, nil
}

func (c collection[T, D]) upsert(ctx context.Context, doc D) (bool, error) {
	h := doc.Meta()
	now := time.Now().UTC()
	id := uuid.NewString()

	h.ID = ""
	h.UpdatedAt = now

	raw, err := marshal(c.registry, doc)
	if err != nil {
		return false, err
	}

	elements, err := raw.Elements()
	if err != nil {
		return false, err
	}

	set := bson.D{}
	for _, e := range elements {
		if e.Key() == "_id" || e.Key() == "createdAt" {
			continue
		}
		set = append(set, bson.E{Key: e.Key(), Value: e.Value()})
	}

	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"_id": id, "createdAt": now},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.Before).
		SetProjection(bson.M{"_id": 1, "createdAt": 1})

	var existing models.Header
	err = c.coll.FindOneAndUpdate(ctx, key(h.Assembly, h.Period.String()), update, opts).Decode(&existing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		store.Stamp(h, nil, now)
		h.ID = id
		return true, nil
	}

	if err != nil {
		return false, err
	}

	store.Stamp(h, &existing, now)
	return false, nil
}

func (c collection[T, D]) Find(ctx context.Context, filter store.Filter, page store.Page) ([]T, int64, error) {
	page = page.Bounded()
	q := filterDocument(filter)

	total, err := c.coll.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, c.general(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(page.Offset)).
		SetLimit(int64(page.Limit))

	docs, err := c.find(ctx, q, opts)
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (c collection[T, D]) All(ctx context.Context, filter store.Filter) ([]T, error) {
	return c.find(ctx, filterDocument(filter), options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (c collection[T, D]) find(ctx context.Context, q bson.M, opts *options.FindOptions) ([]T, error) {
	cursor, err := c.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, c.general(err)
	}

	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, c.general(err)
	}
	return docs, nil
}

func (c collection[T, D]) Get(ctx context.Context, id string) (T, error) {
	var doc T
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, store.NotFound(c.coll.Name())
	}

	if err != nil {
		return doc, c.general(err)
	}
	return doc, nil
}

func (c collection[T, D]) Delete(ctx context.Context, id string) error {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return c.general(err)
	}

	if res.DeletedCount == 0 {
		return store.NotFound(c.coll.Name())
	}
	return nil
}

// general logs driver errors and replaces them with store.ErrGeneral.
func (c collection[T, D]) general(err error) error {
	log.Error().Str("collection", c.coll.Name()).Msgf("%T: %v", err, err.Error())
	return store.ErrGeneral
}
