package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/playeradmin/internal/api/apierr"
	"github.com/mcoot/playeradmin/internal/api/request"
	"github.com/mcoot/playeradmin/internal/api/response"
	"github.com/mcoot/playeradmin/internal/model"
	"github.com/mcoot/playeradmin/internal/services/player"
)

// PlayerHandler handles player endpoints
type PlayerHandler struct {
	playerService *player.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(playerService *player.Service) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
	}
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter, err := ParseFilter(query)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	order, err := model.ParseOrder(query.Get("order"))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	pageNumber, err := optionalInt(query, "pageNumber")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	pageSize, err := optionalInt(query, "pageSize")
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	players, err := h.playerService.List(r.Context(), filter, order, pageNumber, pageSize)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.OK(w, response.PlayersFromModel(players))
}

// Count handles GET /api/v1/players/count
func (h *PlayerHandler) Count(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r.URL.Query())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	count, err := h.playerService.Count(r.Context(), filter)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.OK(w, count)
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	changes, ok := decodeChanges(w, r)
	if !ok {
		return
	}

	p, err := h.playerService.Create(r.Context(), changes)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.OK(w, response.PlayerFromModel(p))
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := playerID(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	p, err := h.playerService.Get(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.OK(w, response.PlayerFromModel(p))
}

// Update handles POST and PATCH /api/v1/players/{id}
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := playerID(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	changes, ok := decodeChanges(w, r)
	if !ok {
		return
	}

	p, err := h.playerService.Update(r.Context(), id, changes)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.OK(w, response.PlayerFromModel(p))
}

// Delete handles DELETE /api/v1/players/{id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := playerID(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := h.playerService.Delete(r.Context(), id); err != nil {
		apierr.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func decodeChanges(w http.ResponseWriter, r *http.Request) (model.PlayerChanges, bool) {
	var req request.PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return model.PlayerChanges{}, false
	}
	changes, err := req.ToChanges()
	if err != nil {
		apierr.WriteError(w, err)
		return model.PlayerChanges{}, false
	}
	return changes, true
}

// playerID reads the {id} path variable. Non-numeric values are invalid ids;
// the range check happens in the service.
func playerID(r *http.Request) (model.PlayerID, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, model.ErrInvalidPlayerID
	}
	return model.PlayerID(id), nil
}

// ParseFilter builds a PlayerFilter from query parameters. Absent parameters
// leave the criterion unset; malformed numbers or booleans are filter errors.
func ParseFilter(query url.Values) (model.PlayerFilter, error) {
	var (
		f   model.PlayerFilter
		err error
	)
	f.Name = optionalString(query, "name")
	f.Title = optionalString(query, "title")
	f.Race = optionalString(query, "race")
	f.Profession = optionalString(query, "profession")

	if f.After, err = optionalInt64(query, "after"); err != nil {
		return f, err
	}
	if f.Before, err = optionalInt64(query, "before"); err != nil {
		return f, err
	}
	if f.Banned, err = optionalBool(query, "banned"); err != nil {
		return f, err
	}
	if f.MinExperience, err = optionalInt(query, "minExperience"); err != nil {
		return f, err
	}
	if f.MaxExperience, err = optionalInt(query, "maxExperience"); err != nil {
		return f, err
	}
	if f.MinLevel, err = optionalInt(query, "minLevel"); err != nil {
		return f, err
	}
	if f.MaxLevel, err = optionalInt(query, "maxLevel"); err != nil {
		return f, err
	}
	return f, nil
}

func optionalString(query url.Values, key string) *string {
	if !query.Has(key) {
		return nil
	}
	v := query.Get(key)
	return &v
}

func optionalInt(query url.Values, key string) (*int, error) {
	if !query.Has(key) {
		return nil, nil
	}
	v, err := strconv.Atoi(query.Get(key))
	if err != nil {
		return nil, badParam(key, query.Get(key))
	}
	return &v, nil
}

func optionalInt64(query url.Values, key string) (*int64, error) {
	if !query.Has(key) {
		return nil, nil
	}
	v, err := strconv.ParseInt(query.Get(key), 10, 64)
	if err != nil {
		return nil, badParam(key, query.Get(key))
	}
	return &v, nil
}

func optionalBool(query url.Values, key string) (*bool, error) {
	if !query.Has(key) {
		return nil, nil
	}
	v, err := strconv.ParseBool(query.Get(key))
	if err != nil {
		return nil, badParam(key, query.Get(key))
	}
	return &v, nil
}

func badParam(key, value string) error {
	return fmt.Errorf("%w: %s=%q", model.ErrInvalidFilter, key, value)
}
