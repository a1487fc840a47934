package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	docKeyPrefix = "finagent:doc:"
	docIndexKey  = "finagent:docs"
)

// RedisStore is a DocumentStore backed by Redis. Documents live in hashes
// under finagent:doc:<id> with the ID set in finagent:docs. Search fetches
// candidates and scores them client-side with the same keyword heuristic as
// the in-memory store; corpora are small (hundreds of reports).
type RedisStore struct {
	client *redis.Client
}

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379").
	URL string

	// ConnectTimeout is the maximum time to wait for connection establishment.
	ConnectTimeout time.Duration
}

// NewRedisStore creates a store and verifies connectivity with a ping.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("memory: parse redis url: %w", err)
	}
	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("memory: connect redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Put(ctx context.Context, doc Document) error {
	if doc.ID == "" || doc.Content == "" {
		return ErrInvalidDocument
	}
	if doc.Timestamp.IsZero() {
		doc.Timestamp = time.Now()
	}

	meta, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("memory: encode metadata: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, docKeyPrefix+doc.ID,
		"content", doc.Content,
		"metadata", string(meta),
		"timestamp", doc.Timestamp.Format(time.RFC3339))
	pipe.SAdd(ctx, docIndexKey, doc.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("memory: store document: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (Document, error) {
	fields, err := s.client.HGetAll(ctx, docKeyPrefix+id).Result()
	if err != nil {
		return Document{}, fmt.Errorf("memory: fetch document: %w", err)
	}
	if len(fields) == 0 {
		return Document{}, ErrNotFound
	}
	return decodeDoc(id, fields)
}

func (s *RedisStore) Search(ctx context.Context, query string, filter map[string]string, limit int) ([]Scored, error) {
	ids, err := s.client.SMembers(ctx, docIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("memory: list documents: %w", err)
	}

	var results []Scored
	for _, id := range ids {
		doc, err := s.Get(ctx, id)
		if err != nil {
			// Index entries can outlive their hashes if a delete raced;
			// skip rather than failing the whole search.
			continue
		}
		if !matchesFilter(doc, filter) {
			continue
		}
		if sim := score(query, doc.Content); sim > 0 {
			results = append(results, Scored{Document: doc, Similarity: sim})
		}
	}
	return rank(results, limit), nil
}

func decodeDoc(id string, fields map[string]string) (Document, error) {
	doc := Document{
		ID:      id,
		Content: fields["content"],
	}
	if raw, ok := fields["metadata"]; ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &doc.Metadata); err != nil {
			return Document{}, fmt.Errorf("memory: decode metadata: %w", err)
		}
	}
	if raw, ok := fields["timestamp"]; ok && raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err == nil {
			doc.Timestamp = ts
		}
	}
	return doc, nil
}
