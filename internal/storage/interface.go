package storage

import (
	"context"

	"github.com/mcoot/playeradmin/internal/model"
)

// Storage defines the interface for player persistence
type Storage interface {
	// SavePlayer inserts or replaces a player. A zero ID is replaced by a newly
	// assigned one, written back into player.
	SavePlayer(ctx context.Context, player *model.Player) error
	// GetPlayer returns model.ErrPlayerNotFound when no player has the ID
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	// DeletePlayer returns model.ErrPlayerNotFound when no player has the ID
	DeletePlayer(ctx context.Context, id model.PlayerID) error
	// ListPlayers returns every stored player in ascending ID order
	ListPlayers(ctx context.Context) ([]*model.Player, error)
}
