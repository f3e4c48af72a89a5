package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/playeradmin/internal/model"
	"github.com/mcoot/playeradmin/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultConfig().KeyPrefix
	}
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	if player.ID == 0 {
		id, err := s.client.Incr(ctx, playerSequenceKey(s.cfg.KeyPrefix)).Result()
		if err != nil {
			return fmt.Errorf("assign player id: %w", err)
		}
		player.ID = model.PlayerID(id)
	}

	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, playerKey(s.cfg.KeyPrefix, player.ID), data, 0)
	pipe.ZAdd(ctx, playersIndexKey(s.cfg.KeyPrefix), redis.Z{
		Score:  float64(player.ID),
		Member: strconv.FormatInt(int64(player.ID), 10),
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(s.cfg.KeyPrefix, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, playerKey(s.cfg.KeyPrefix, id))
	pipe.ZRem(ctx, playersIndexKey(s.cfg.KeyPrefix), strconv.FormatInt(int64(id), 10))
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if del.Val() == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	members, err := s.client.ZRange(ctx, playersIndexKey(s.cfg.KeyPrefix), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(members) == 0 {
		return []*model.Player{}, nil
	}

	keys := make([]string, len(members))
	for i, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt player index member %q: %w", m, err)
		}
		keys[i] = playerKey(s.cfg.KeyPrefix, model.PlayerID(id))
	}

	// Fetch all players in one round trip using MGET
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Index entry without a value
		}
		raw, ok := val.(string)
		if !ok {
			continue
		}
		var player model.Player
		if err := json.Unmarshal([]byte(raw), &player); err != nil {
			return nil, fmt.Errorf("decode player: %w", err)
		}
		players = append(players, &player)
	}

	return players, nil
}
