// Package store defines how report documents are persisted and queried.
//
// The backends live in the gormstore (embedded sqlite) and mongostore
// (MongoDB) packages. Both implement the same semantics, which the
// in-process Filter.Matches predicate describes.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/district-ledger/backend/internal/models"
	"github.com/google/uuid"
)

var (
	ErrGeneral  = errors.New("an error occurred on the server during your request")
	ErrNotFound = errors.New("there is no")
)

var plural = regexp.MustCompile("ies$")

// NotFound returns ErrNotFound wrapped with the name of the resource
// stored in table, e.g. "there is no tithe report matching your query".
func NotFound(table string) error {
	name := strings.ReplaceAll(table, "_", " ")
	name = plural.ReplaceAllString(name, "y")
	name = strings.TrimSuffix(name, "s")

	return fmt.Errorf("%w %s matching your query", ErrNotFound, name)
}

// Collection stores documents of one kind.
//
// Documents are keyed by (assembly, period). Upsert replaces the records
// and metadata of an existing document for the key and keeps its ID and
// creation time. It reports if the document was newly created.
type Collection[T any, D models.Document[T]] interface {
	Upsert(ctx context.Context, doc D) (created bool, err error)
	Find(ctx context.Context, filter Filter, page Page) (docs []T, total int64, err error)
	All(ctx context.Context, filter Filter) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Delete(ctx context.Context, id string) error
}

// Backend is the connection a Store is built on.
type Backend interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	Name() string
}

// Store holds one collection per document kind.
type Store struct {
	Backend
	Sunday      Collection[models.SundayServiceReport, *models.SundayServiceReport]
	Midweek     Collection[models.MidweekServiceReport, *models.MidweekServiceReport]
	Special     Collection[models.SpecialServiceReport, *models.SpecialServiceReport]
	Tithes      Collection[models.TitheReport, *models.TitheReport]
	Offerings   Collection[models.OfferingReport, *models.OfferingReport]
	Submissions Collection[models.Submission, *models.Submission]
}

// Stamp sets the identity and timestamps of a document that is about to be
// written. existing is the header of the document currently stored for the
// same key, nil if there is none.
func Stamp(h, existing *models.Header, now time.Time) {
	now = now.UTC()
	h.UpdatedAt = now

	if existing == nil {
		h.ID = uuid.NewString()
		h.CreatedAt = now
		return
	}

	h.ID = existing.ID
	h.CreatedAt = existing.CreatedAt
}
