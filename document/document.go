// Package document implements the in-memory cache of loaded PDF documents.
// A document is keyed by a user-supplied identifier (an alias or the file
// path); loading the same identifier again replaces the cached entry.
// Nothing is persisted: the cache lives and dies with the process.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-labs/pdfscholar/pdfops"
)

// ErrNotFound is returned when an identifier does not resolve to a loaded
// document and cannot be loaded as a path.
var ErrNotFound = errors.New("document: not found")

// Document is a cache entry: the association between a user identifier and
// an opened PDF plus its cached metadata.
type Document struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Path     string          `json:"path"`
	Meta     pdfops.Metadata `json:"metadata"`
	LoadedAt time.Time       `json:"loaded_at"`
}

// MetadataFunc reads the metadata for a PDF at the given path. The store's
// default is pdfops.ReadMetadata; tests inject their own.
type MetadataFunc func(path string) (pdfops.Metadata, error)

// Store is the document cache. All methods are safe for concurrent use;
// the MCP host dispatches requests concurrently.
type Store struct {
	readMeta MetadataFunc

	mu     sync.RWMutex
	byName map[string]*Document
}

// NewStore creates an empty document cache backed by pdfops metadata reads.
func NewStore() *Store {
	return NewStoreWithReader(pdfops.ReadMetadata)
}

// NewStoreWithReader creates a cache with a custom metadata reader.
func NewStoreWithReader(readMeta MetadataFunc) *Store {
	return &Store{
		readMeta: readMeta,
		byName:   make(map[string]*Document),
	}
}

// Load opens the PDF at path and caches it under name. An empty name
// defaults to the base file name. Loading an already-used name replaces
// the previous entry, whatever path it pointed to.
func (s *Store) Load(path, name string) (*Document, error) {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, fmt.Errorf("%w: %s", pdfops.ErrNotPDF, path)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	meta, err := s.readMeta(path)
	if err != nil {
		return nil, fmt.Errorf("document: reading metadata of %s: %w", path, err)
	}

	if name == "" {
		name = filepath.Base(path)
	}

	doc := &Document{
		ID:       uuid.NewString(),
		Name:     name,
		Path:     path,
		Meta:     meta,
		LoadedAt: time.Now(),
	}

	s.mu.Lock()
	s.byName[name] = doc
	s.mu.Unlock()

	return doc, nil
}

// Get looks an identifier up in the cache: first as a name, then as an ID,
// then as a path of an already-loaded document.
func (s *Store) Get(key string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if doc, ok := s.byName[key]; ok {
		return doc, true
	}
	for _, doc := range s.byName {
		if doc.ID == key || doc.Path == key {
			return doc, true
		}
	}
	return nil, false
}

// Resolve returns the cached document for key, loading key as a file path
// when it is not cached but names an existing PDF. Unresolvable keys fail
// with ErrNotFound.
func (s *Store) Resolve(key string) (*Document, error) {
	if doc, ok := s.Get(key); ok {
		return doc, nil
	}
	if _, err := os.Stat(key); err == nil {
		return s.Load(key, "")
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
}

// Remove drops the document cached under key. It reports whether an
// entry was removed.
func (s *Store) Remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[key]; ok {
		delete(s.byName, key)
		return true
	}
	for name, doc := range s.byName {
		if doc.ID == key || doc.Path == key {
			delete(s.byName, name)
			return true
		}
	}
	return false
}

// List returns the cached documents ordered by load time.
func (s *Store) List() []*Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]*Document, 0, len(s.byName))
	for _, doc := range s.byName {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].LoadedAt.Before(docs[j].LoadedAt)
	})
	return docs
}

// Len returns the number of cached documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byName)
}
