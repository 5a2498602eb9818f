package redis

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/iho/onlinebank/internal/adapter/repository/codec"
	"github.com/iho/onlinebank/internal/domain"
	"github.com/iho/onlinebank/internal/usecase"
)

// DefaultKey holds the account set when no key is configured.
const DefaultKey = "onlinebank:accounts"

// Store implements usecase.AccountStore on a single Redis string key holding
// the same record stream as the account file.
type Store struct {
	client *redis.Client
	key    string
}

// NewStore creates a new Store.
func NewStore(client *redis.Client, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		client: client,
		key:    key,
	}
}

// Load reads all records. A missing key is an empty store.
func (s *Store) Load(ctx context.Context) (usecase.LoadResult, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return usecase.LoadResult{}, nil
		}
		return usecase.LoadResult{}, fmt.Errorf("failed to get %s: %w", s.key, err)
	}

	return codec.Decode(bytes.NewReader(data))
}

// Save replaces the stored record stream.
func (s *Store) Save(ctx context.Context, accounts []*domain.Account) error {
	var buf bytes.Buffer
	if err := codec.Encode(&buf, accounts); err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key, buf.Bytes(), 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", s.key, err)
	}
	return nil
}
