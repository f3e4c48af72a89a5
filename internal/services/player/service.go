package player

import (
	"context"
	"log/slog"

	"github.com/mcoot/playeradmin/internal/model"
	"github.com/mcoot/playeradmin/internal/services/rules"
	"github.com/mcoot/playeradmin/internal/storage"
)

// Service implements player CRUD and listing on top of a storage backend
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new player Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger.With(slog.String("component", "player-service")),
	}
}

func checkID(id model.PlayerID) error {
	if id <= 0 {
		return model.ErrInvalidPlayerID
	}
	return nil
}

// Create validates a creation request and stores the new player
func (s *Service) Create(ctx context.Context, changes model.PlayerChanges) (*model.Player, error) {
	p, err := rules.NewPlayer(changes)
	if err != nil {
		return nil, err
	}

	if err := s.storage.SavePlayer(ctx, p); err != nil {
		s.logger.Error("failed to save player",
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("player created",
		slog.Int64("player_id", int64(p.ID)),
		slog.String("name", p.Name),
		slog.Int("level", p.Level),
	)
	return p, nil
}

// Get returns the player with the given ID
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.storage.GetPlayer(ctx, id)
}

// Update applies a partial change set to a stored player.
// Nothing is written when any present field is invalid.
func (s *Service) Update(ctx context.Context, id model.PlayerID, changes model.PlayerChanges) (*model.Player, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	p, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := rules.ApplyChanges(p, changes); err != nil {
		return nil, err
	}

	if err := s.storage.SavePlayer(ctx, p); err != nil {
		s.logger.Error("failed to save player",
			slog.Int64("player_id", int64(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("player updated",
		slog.Int64("player_id", int64(id)),
		slog.Int("experience", p.Experience),
		slog.Int("level", p.Level),
	)
	return p, nil
}

// Delete removes the player with the given ID
func (s *Service) Delete(ctx context.Context, id model.PlayerID) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.storage.DeletePlayer(ctx, id); err != nil {
		return err
	}

	s.logger.Info("player deleted", slog.Int64("player_id", int64(id)))
	return nil
}

// List returns one page of the players passing filter, sorted by order.
// Nil paging arguments fall back to rules.DefaultPageNumber and rules.DefaultPageSize.
func (s *Service) List(ctx context.Context, filter model.PlayerFilter, order model.PlayerOrder, pageNumber, pageSize *int) ([]*model.Player, error) {
	players, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	return rules.Page(rules.SortPlayers(players, order), pageNumber, pageSize), nil
}

// Count returns how many players pass filter
func (s *Service) Count(ctx context.Context, filter model.PlayerFilter) (int, error) {
	players, err := s.filtered(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(players), nil
}

func (s *Service) filtered(ctx context.Context, filter model.PlayerFilter) ([]*model.Player, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	return rules.FilterPlayers(players, filter)
}
