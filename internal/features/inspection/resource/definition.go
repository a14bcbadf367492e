package resource

import (
	"sid-client/internal/features/inspection/validation"
)

// Record is implemented by every record a Client manages
type Record interface {
	// RecordID returns the server-assigned identifier, empty until created
	RecordID() string
}

// ListShape describes how a resource answers a list call
type ListShape int

// List shapes
const (
	// ListBare is a plain JSON array; paging parameters are not sent
	ListBare ListShape = iota
	// ListPaged is a page envelope queried with pageNumber/pageSize
	ListPaged
)

// GetShape describes how a resource answers a get-by-id call
type GetShape int

// Get shapes
const (
	// GetSingle returns one record
	GetSingle GetShape = iota
	// GetList returns a list of records for one id
	GetList
)

// DefaultCollectionField is the page envelope field holding the records
const DefaultCollectionField = "items"

// Definition describes one backend resource
type Definition[T Record] struct {
	// Name is used in errors and logs
	Name string
	// Path is relative to the backend base URL
	Path string
	// ListShape selects bare or paged list decoding
	ListShape ListShape
	// CollectionField names the envelope field of paged lists
	CollectionField string
	// GetShape selects single or list get-by-id decoding
	GetShape GetShape
	// WriteReturnsList is set when create and update answer with the stored records
	WriteReturnsList bool
	// Validate checks a record before it is written; nil accepts everything
	Validate func(record T, op validation.Operation) error
}

func (d Definition[T]) collectionField() string {
	if d.CollectionField == "" {
		return DefaultCollectionField
	}
	return d.CollectionField
}
