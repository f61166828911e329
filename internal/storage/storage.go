// Package storage defines the document store interface and its in-memory implementation.
package storage

import (
	"github.com/hyperjump/humansearch/internal/models"
)

// DocumentStore holds indexed documents by id.
type DocumentStore interface {
	// Put stores doc, replacing any document with the same id. The stored document keeps
	// the CreatedAt of the document it replaces. Put returns the stored document.
	Put(doc *models.IndexedDocument) *models.IndexedDocument
	// Get returns the document or models.ErrDocumentNotFound.
	Get(id string) (*models.IndexedDocument, error)
	// List returns documents ordered by id.
	List(offset, limit int) []*models.IndexedDocument
	// Count returns the number of stored documents.
	Count() int
}
