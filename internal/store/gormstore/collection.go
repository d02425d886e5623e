package gormstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/district-ledger/backend/internal/models"
	"github.com/district-ledger/backend/internal/store"
	"gorm.io/gorm"
)

type collection[T any, D models.Document[T]] struct {
	db *gorm.DB
}

func newCollection[T any, D models.Document[T]](db *gorm.DB) collection[T, D] {
	return collection[T, D]{db: db}
}

// Upsert writes the document in a transaction so that there is only ever
// one document per (assembly, period).
func (c collection[T, D]) Upsert(ctx context.Context, doc D) (bool, error) {
	h := doc.Meta()
	created := false

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing T
		err := tx.
			Where("assembly = ? AND period = ?", h.Assembly, h.Period.String()).
			Order("created_at ASC").
			Take(&existing).Error

		if errors.Is(err, store.ErrNotFound) {
			store.Stamp(h, nil, time.Now())
			created = true
			return tx.Create(doc).Error
		}

		if err != nil {
			return err
		}

		store.Stamp(h, D(&existing).Meta(), time.Now())
		return tx.Save(doc).Error
	})
	if err != nil {
		// Starting the transaction does not run any callbacks
		return false, general(err)
	}

	utc(h)
	return created, nil
}

func (c collection[T, D]) Find(ctx context.Context, filter store.Filter, page store.Page) ([]T, int64, error) {
	page = page.Bounded()

	var total int64
	err := c.query(ctx, filter).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	docs := make([]T, 0)
	err = c.query(ctx, filter).
		Order("created_at DESC").
		Offset(int(page.Offset)).
		Limit(page.Limit).
		Find(&docs).Error
	if err != nil {
		return nil, 0, err
	}

	for i := range docs {
		utc(D(&docs[i]).Meta())
	}
	return docs, total, nil
}

func (c collection[T, D]) All(ctx context.Context, filter store.Filter) ([]T, error) {
	docs := make([]T, 0)
	err := c.query(ctx, filter).Order("created_at DESC").Find(&docs).Error
	if err != nil {
		return nil, err
	}

	for i := range docs {
		utc(D(&docs[i]).Meta())
	}
	return docs, nil
}

func (c collection[T, D]) Get(ctx context.Context, id string) (T, error) {
	var doc T
	err := c.db.WithContext(ctx).First(&doc, "id = ?", id).Error
	if err != nil {
		return doc, err
	}

	utc(D(&doc).Meta())
	return doc, nil
}

func (c collection[T, D]) Delete(ctx context.Context, id string) error {
	doc, err := c.Get(ctx, id)
	if err != nil {
		return err
	}

	return c.db.WithContext(ctx).Delete(&doc).Error
}

// query returns a new query for the documents matched by the filter.
func (c collection[T, D]) query(ctx context.Context, filter store.Filter) *gorm.DB {
	q := c.db.WithContext(ctx).Model(new(T))

	if name := filter.AssemblyName(); name != "" {
		q = q.Where("assembly = ?", name)
	}

	if period, ok := filter.Period(); ok {
		q = q.Where("period = ?", period.String())
	}

	if prefix, ok := filter.PeriodPrefix(); ok {
		q = q.Where("period LIKE ?", prefix+"%")
	}

	if suffix, ok := filter.PeriodSuffix(); ok {
		q = q.Where("period LIKE ?", "%"+suffix)
	}

	if !filter.From.IsZero() {
		q = q.Where("created_at >= ?", filter.From.UTC())
	}

	if !filter.To.IsZero() {
		q = q.Where("created_at <= ?", filter.To.UTC())
	}

	if filter.ServiceType != "" {
		q = q.Where("LOWER(service_type) = LOWER(?)", strings.TrimSpace(filter.ServiceType))
	}

	return q
}

// utc sets the timezone of the timestamps to UTC. They are stored in UTC,
// but sqlite returns them with a +0000 offset instead.
func utc(h *models.Header) {
	h.CreatedAt = h.CreatedAt.In(time.UTC)
	h.UpdatedAt = h.UpdatedAt.In(time.UTC)
}
