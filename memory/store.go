package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

// Common errors returned by document store operations.
var (
	// ErrNotFound is returned when a requested document does not exist.
	ErrNotFound = errors.New("memory: document not found")

	// ErrInvalidDocument is returned when a document has no ID or content.
	ErrInvalidDocument = errors.New("memory: invalid document")
)

// Document is one stored research report or note.
type Document struct {
	// ID uniquely identifies the document.
	ID string `json:"id"`

	// Content is the document body.
	Content string `json:"content"`

	// Metadata carries filterable attributes such as "ticker" or "source".
	Metadata map[string]string `json:"metadata"`

	// Timestamp records when the document was stored.
	Timestamp time.Time `json:"timestamp"`
}

// Scored pairs a document with its relevance to a query.
type Scored struct {
	Document   Document
	Similarity float64
}

// DocumentStore persists and retrieves documents for the research tool.
type DocumentStore interface {
	// Put stores a document, replacing any existing document with the same ID.
	Put(ctx context.Context, doc Document) error

	// Get retrieves one document by ID.
	Get(ctx context.Context, id string) (Document, error)

	// Search returns up to limit documents relevant to the query, best
	// first. A non-nil filter restricts results to documents whose
	// metadata matches every filter entry.
	Search(ctx context.Context, query string, filter map[string]string, limit int) ([]Scored, error)
}

// score computes keyword relevance: a full substring match of the query
// scores highest, any shared word scores lower, no overlap scores zero.
func score(query, content string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	c := strings.ToLower(content)
	if q == "" {
		return 0
	}
	if strings.Contains(c, q) {
		return 0.8
	}
	for _, word := range strings.Fields(q) {
		if strings.Contains(c, word) {
			return 0.5
		}
	}
	return 0
}

// matchesFilter reports whether the document satisfies every filter entry.
func matchesFilter(doc Document, filter map[string]string) bool {
	for k, want := range filter {
		if doc.Metadata[k] != want {
			return false
		}
	}
	return true
}

// rank sorts scored documents best first and truncates to limit.
func rank(results []Scored, limit int) []Scored {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
