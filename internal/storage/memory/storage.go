package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/mcoot/playeradmin/internal/model"
	"github.com/mcoot/playeradmin/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Players are copied on the way in and out so callers never share state.
type Storage struct {
	mu sync.RWMutex

	players map[model.PlayerID]*model.Player
	lastID  model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[model.PlayerID]*model.Player),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if player.ID == 0 {
		s.lastID++
		player.ID = s.lastID
	} else if player.ID > s.lastID {
		s.lastID = player.ID
	}
	s.players[player.ID] = player.Clone()
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player.Clone(), nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[id]; !ok {
		return model.ErrPlayerNotFound
	}
	delete(s.players, id)
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p.Clone())
	}
	slices.SortFunc(players, func(a, b *model.Player) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return players, nil
}
