package redis

import (
	"fmt"

	"github.com/mcoot/playeradmin/internal/model"
)

// playerKey returns the Redis key holding a Player as JSON
func playerKey(prefix string, id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%d", prefix, id)
}

// playersIndexKey returns the Redis key for the ZSET of player IDs, scored by ID
func playersIndexKey(prefix string) string {
	return fmt.Sprintf("%s:idx:players", prefix)
}

// playerSequenceKey returns the Redis key of the player ID counter
func playerSequenceKey(prefix string) string {
	return fmt.Sprintf("%s:seq:player", prefix)
}
