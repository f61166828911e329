package models

import "errors"

var (
	// ErrUnsupportedFieldValue signals a field value with no FieldValue mapping.
	ErrUnsupportedFieldValue = errors.New("unsupported field value")
	// ErrEmptyDocumentID signals an index call without a document id.
	ErrEmptyDocumentID = errors.New("document id is required")
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrInvalidQuery signals a search request outside the accepted ranges.
	ErrInvalidQuery = errors.New("invalid query")
)
