package storage

import (
	"fmt"

	"github.com/hyperjump/humansearch/internal/models"
	"github.com/hyperjump/humansearch/internal/shardmap"
)

// MemoryStorage implements DocumentStore on a sharded map. Nothing is persisted.
type MemoryStorage struct {
	docs *shardmap.Map[*models.IndexedDocument]
}

// NewMemoryStorage creates an empty store with the given shard count.
func NewMemoryStorage(shards int) *MemoryStorage {
	return &MemoryStorage{docs: shardmap.New[*models.IndexedDocument](shards)}
}

func (s *MemoryStorage) Put(doc *models.IndexedDocument) *models.IndexedDocument {
	return s.docs.Update(doc.ID, func(old *models.IndexedDocument, exists bool) *models.IndexedDocument {
		if exists && old.CreatedAt != 0 {
			doc.CreatedAt = old.CreatedAt
		}
		return doc
	})
}

func (s *MemoryStorage) Get(id string) (*models.IndexedDocument, error) {
	doc, ok := s.docs.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrDocumentNotFound, id)
	}
	return doc, nil
}

func (s *MemoryStorage) List(offset, limit int) []*models.IndexedDocument {
	ids := s.docs.Keys()
	if offset < 0 {
		offset = 0
	}
	if offset >= len(ids) {
		return []*models.IndexedDocument{}
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}

	docs := make([]*models.IndexedDocument, 0, len(ids))
	for _, id := range ids {
		if doc, ok := s.docs.Get(id); ok {
			docs = append(docs, doc)
		}
	}
	return docs
}

func (s *MemoryStorage) Count() int {
	return s.docs.Len()
}
