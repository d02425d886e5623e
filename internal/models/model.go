package models

import (
	"time"

	"github.com/district-ledger/backend/internal/types"
)

// Header is embedded in every report document.
//
// A document is owned by exactly one assembly and one period. Both are
// stored in canonical form, see types.AssemblyName and types.ParsePeriod.
type Header struct {
	ID          string       `json:"id" gorm:"primaryKey" bson:"_id,omitempty" example:"65392deb-5e92-4268-b114-297faad6cdce"` // UUID for the document
	Assembly    string       `json:"assembly" gorm:"index" bson:"assembly" example:"EMMANUEL"`                                  // Canonical assembly name
	Period      types.Period `json:"month" gorm:"index" bson:"month" example:"November-2025" swaggertype:"string"`              // The period the document reports on
	SubmittedBy string       `json:"submittedBy" bson:"submittedBy" example:"Secretary"`                                          // Who submitted the document
	ServiceType string       `json:"serviceType" bson:"serviceType" example:"divine-service"`                                     // Optional service type label
	CreatedAt   time.Time    `json:"createdAt" gorm:"index" bson:"createdAt" example:"2025-11-02T19:28:44.491514Z"`             // Time the document was first submitted
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updatedAt" example:"2025-11-09T20:14:01.048145Z"`                           // Last time the document was replaced
}

// Meta returns the header so that generic code can read and set it.
func (h *Header) Meta() *Header {
	return h
}

// Document is implemented by the pointer types of all report documents.
//
// TableName is the name of the sqlite table and of the MongoDB collection.
// Normalize drops records without any non-zero value, computes the derived
// fields of the remaining ones and returns how many were kept.
type Document[T any] interface {
	*T
	Meta() *Header
	TableName() string
	Normalize() int
}

// Registry lists the collection names of all document kinds.
var Registry = []string{
	SundayServiceReport{}.TableName(),
	MidweekServiceReport{}.TableName(),
	SpecialServiceReport{}.TableName(),
	TitheReport{}.TableName(),
	OfferingReport{}.TableName(),
	Submission{}.TableName(),
}
