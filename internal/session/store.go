package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"
)

// Transcript holds the turn-by-turn message history of one conversation.
type Transcript struct {
	Messages []*schema.Message `json:"messages"`
}

// Store persists conversation transcripts keyed by session ID.
type Store interface {
	Append(ctx context.Context, sessionID string, msg *schema.Message) error
	History(ctx context.Context, sessionID string) (*Transcript, error)
}

// MemoryStore is the default in-process store for a single conversation.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]*Transcript
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]*Transcript)}
}

func (s *MemoryStore) Append(_ context.Context, sessionID string, msg *schema.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.data[sessionID]
	if !ok {
		t = &Transcript{}
		s.data[sessionID] = t
	}
	t.Messages = append(t.Messages, msg)
	return nil
}

func (s *MemoryStore) History(_ context.Context, sessionID string) (*Transcript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.data[sessionID]
	if !ok {
		return &Transcript{Messages: []*schema.Message{}}, nil
	}
	cp := &Transcript{Messages: make([]*schema.Message, len(t.Messages))}
	copy(cp.Messages, t.Messages)
	return cp, nil
}

// RedisStore keeps transcripts in Redis with a TTL refreshed on access.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) key(sessionID string) string {
	return "conversation:" + sessionID
}

func (s *RedisStore) Append(ctx context.Context, sessionID string, msg *schema.Message) error {
	t, err := s.History(ctx, sessionID)
	if err != nil {
		return err
	}
	t.Messages = append(t.Messages, msg)

	data, err := sonic.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}
	return s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err()
}

func (s *RedisStore) History(ctx context.Context, sessionID string) (*Transcript, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return &Transcript{Messages: []*schema.Message{}}, nil
		}
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}

	var t Transcript
	if err := sonic.Unmarshal([]byte(data), &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transcript: %w", err)
	}

	// Refresh TTL on read
	s.client.Expire(ctx, s.key(sessionID), s.ttl)
	return &t, nil
}

// HealthCheck verifies the Redis connection.
func (s *RedisStore) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// RecentContext renders the last maxTurns messages of a transcript as a
// plain text window, oldest first.
func RecentContext(t *Transcript, maxTurns int) string {
	msgs := t.Messages
	if len(msgs) > maxTurns {
		msgs = msgs[len(msgs)-maxTurns:]
	}

	var b strings.Builder
	for _, m := range msgs {
		switch m.Role {
		case schema.User:
			b.WriteString("User: " + m.Content + "\n")
		case schema.Assistant:
			b.WriteString("Bot: " + m.Content + "\n")
		}
	}
	return b.String()
}
