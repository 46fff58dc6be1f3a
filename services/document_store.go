package services

import (
	"sync"

	"study-spark-backend/models"
)

// DocumentStore holds extracted document text in memory for the process
// lifetime. Documents are immutable after Put, so concurrent readers need
// no coordination beyond the map lock. There is no eviction: uploads are
// expected to be few and small relative to memory.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]models.Document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[string]models.Document),
	}
}

// Put registers a document under its id. Ids are freshly generated at
// upload time, so overwrites do not occur in practice.
func (s *DocumentStore) Put(doc models.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
}

// Get returns the document for id. Unknown ids are not an error: the
// second return reports presence, mirroring map semantics.
func (s *DocumentStore) Get(id string) (models.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	return doc, ok
}

// Resolve maps ids to documents in input order, silently skipping ids
// that are not in the store. Callers treat unknown ids as "no context
// contributed".
func (s *DocumentStore) Resolve(ids []string) []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]models.Document, 0, len(ids))
	for _, id := range ids {
		if doc, ok := s.docs[id]; ok {
			docs = append(docs, doc)
		}
	}
	return docs
}

// Count returns the number of stored documents.
func (s *DocumentStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
