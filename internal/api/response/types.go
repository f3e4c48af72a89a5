package response

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/playeradmin/internal/model"
)

// OK writes data as a 200 JSON body
func OK(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(data)
}

// Player represents a player in API responses. Birthday is epoch milliseconds.
type Player struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Title          string `json:"title"`
	Race           string `json:"race"`
	Profession     string `json:"profession"`
	Birthday       int64  `json:"birthday"`
	Banned         bool   `json:"banned"`
	Experience     int    `json:"experience"`
	Level          int    `json:"level"`
	UntilNextLevel int    `json:"untilNextLevel"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:             int64(p.ID),
		Name:           p.Name,
		Title:          p.Title,
		Race:           string(p.Race),
		Profession:     string(p.Profession),
		Birthday:       p.Birthday.UnixMilli(),
		Banned:         p.Banned,
		Experience:     p.Experience,
		Level:          p.Level,
		UntilNextLevel: p.UntilNextLevel,
	}
}

// PlayersFromModel converts a page of players. The result is never nil.
func PlayersFromModel(players []*model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// Health is the health check body
type Health struct {
	Status string `json:"status"`
}
