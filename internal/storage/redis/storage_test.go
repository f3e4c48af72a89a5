package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/playeradmin/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	mini  *miniredis.Miniredis
	redis *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.redis = NewWithClient(client, DefaultConfig())
	s.Storage = s.redis
	s.Ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestSaveWritesValueAndIndex() {
	p := storagetest.NewPlayer("Alice", 100)
	s.Require().NoError(s.redis.SavePlayer(s.Ctx, p))

	s.True(s.mini.Exists(playerKey("pladmin", p.ID)))

	members, err := s.mini.ZMembers(playersIndexKey("pladmin"))
	s.Require().NoError(err)
	s.Equal([]string{"1"}, members)

	seq, err := s.mini.Get(playerSequenceKey("pladmin"))
	s.Require().NoError(err)
	s.Equal("1", seq)
}

func (s *StorageSuite) TestDeleteRemovesIndexEntry() {
	p := storagetest.NewPlayer("Alice", 100)
	s.Require().NoError(s.redis.SavePlayer(s.Ctx, p))
	s.Require().NoError(s.redis.DeletePlayer(s.Ctx, p.ID))

	s.False(s.mini.Exists(playerKey("pladmin", p.ID)))
	s.False(s.mini.Exists(playersIndexKey("pladmin")), "an empty ZSET is removed")
}

func (s *StorageSuite) TestListSkipsDanglingIndexEntries() {
	p := storagetest.NewPlayer("Alice", 100)
	s.Require().NoError(s.redis.SavePlayer(s.Ctx, p))
	_, err := s.mini.ZAdd(playersIndexKey("pladmin"), 99, "99")
	s.Require().NoError(err)

	players, err := s.redis.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Len(players, 1)
}

func (s *StorageSuite) TestKeyPrefixIsolatesStores() {
	cfg := DefaultConfig()
	cfg.KeyPrefix = "other"
	other := NewWithClient(redis.NewClient(&redis.Options{Addr: s.mini.Addr()}), cfg)
	defer func() { _ = other.Close() }()

	s.Require().NoError(s.redis.SavePlayer(s.Ctx, storagetest.NewPlayer("Alice", 0)))

	players, err := other.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Empty(players)
}
