package rules

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/mcoot/playeradmin/internal/model"
)

// Paging defaults
const (
	DefaultPageNumber = 0
	DefaultPageSize   = 3
)

// FilterPlayers returns the players passing every criterion in f, in input order.
// An unknown race or profession name yields a *model.ParseError.
func FilterPlayers(players []*model.Player, f model.PlayerFilter) ([]*model.Player, error) {
	var race model.Race
	if f.Race != nil {
		r, err := model.ParseRace(*f.Race)
		if err != nil {
			return nil, err
		}
		race = r
	}
	var profession model.Profession
	if f.Profession != nil {
		p, err := model.ParseProfession(*f.Profession)
		if err != nil {
			return nil, err
		}
		profession = p
	}

	var after, before time.Time
	if f.After != nil {
		after = time.UnixMilli(*f.After)
	}
	if f.Before != nil {
		before = time.UnixMilli(*f.Before)
	}

	result := make([]*model.Player, 0, len(players))
	for _, p := range players {
		if f.Name != nil && !strings.Contains(p.Name, *f.Name) {
			continue
		}
		if f.Title != nil && !strings.Contains(p.Title, *f.Title) {
			continue
		}
		if f.Race != nil && p.Race != race {
			continue
		}
		if f.Profession != nil && p.Profession != profession {
			continue
		}
		if f.After != nil && p.Birthday.Before(after) {
			continue
		}
		if f.Before != nil && p.Birthday.After(before) {
			continue
		}
		if f.Banned != nil && p.Banned != *f.Banned {
			continue
		}
		if f.MinExperience != nil && p.Experience < *f.MinExperience {
			continue
		}
		if f.MaxExperience != nil && p.Experience > *f.MaxExperience {
			continue
		}
		if f.MinLevel != nil && p.Level < *f.MinLevel {
			continue
		}
		if f.MaxLevel != nil && p.Level > *f.MaxLevel {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

// SortPlayers stably sorts players ascending by the order key and returns the
// same slice. An empty order sorts by ID; an unknown one leaves the input order.
func SortPlayers(players []*model.Player, order model.PlayerOrder) []*model.Player {
	if order == "" {
		order = model.OrderID
	}
	slices.SortStableFunc(players, comparator(order))
	return players
}

func comparator(order model.PlayerOrder) func(a, b *model.Player) int {
	switch order {
	case model.OrderID:
		return func(a, b *model.Player) int { return cmp.Compare(a.ID, b.ID) }
	case model.OrderName:
		return func(a, b *model.Player) int { return strings.Compare(a.Name, b.Name) }
	case model.OrderExperience:
		return func(a, b *model.Player) int { return cmp.Compare(a.Experience, b.Experience) }
	case model.OrderBirthday:
		return func(a, b *model.Player) int { return a.Birthday.Compare(b.Birthday) }
	case model.OrderLevel:
		return func(a, b *model.Player) int { return cmp.Compare(a.Level, b.Level) }
	default:
		return func(a, b *model.Player) int { return 0 }
	}
}

// Page returns players[page*size : min(page*size+size, len)].
// Nil arguments take DefaultPageNumber and DefaultPageSize. Both bounds are
// clamped to the slice, so a page past the end is empty rather than a panic.
func Page(players []*model.Player, pageNumber, pageSize *int) []*model.Player {
	page := DefaultPageNumber
	if pageNumber != nil {
		page = *pageNumber
	}
	size := DefaultPageSize
	if pageSize != nil {
		size = *pageSize
	}
	if page < 0 || size <= 0 {
		return players[:0]
	}

	if page > len(players)/size {
		return players[len(players):]
	}
	from := page * size
	to := min(from+size, len(players))
	return players[from:to]
}
