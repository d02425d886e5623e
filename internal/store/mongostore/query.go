package mongostore

import (
	"regexp"
	"strings"

	"github.com/district-ledger/backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// filterDocument translates a filter into a MongoDB query document.
func filterDocument(f store.Filter) bson.M {
	q := bson.M{}

	if name := f.AssemblyName(); name != "" {
		q["assembly"] = name
	}

	if period, ok := f.Period(); ok {
		q["month"] = period.String()
	}

	if prefix, ok := f.PeriodPrefix(); ok {
		q["month"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(prefix)}
	}

	if suffix, ok := f.PeriodSuffix(); ok {
		q["month"] = primitive.Regex{Pattern: regexp.QuoteMeta(suffix) + "$"}
	}

	created := bson.M{}
	if !f.From.IsZero() {
		created["$gte"] = f.From.UTC()
	}
	if !f.To.IsZero() {
		created["$lte"] = f.To.UTC()
	}
	if len(created) > 0 {
		q["createdAt"] = created
	}

	if serviceType := strings.TrimSpace(f.ServiceType); serviceType != "" {
		q["serviceType"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(serviceType) + "$", Options: "i"}
	}

	return q
}

// key selects the document for an assembly and period.
func key(assembly, period string) bson.M {
	return bson.M{"assembly": assembly, "month": period}
}
