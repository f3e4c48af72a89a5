package request

import (
	"time"

	"github.com/mcoot/playeradmin/internal/model"
)

// PlayerRequest is the request body for creating or updating a player.
// Absent or null fields are left unset. Birthday is epoch milliseconds.
type PlayerRequest struct {
	Name       *string `json:"name"`
	Title      *string `json:"title"`
	Race       *string `json:"race"`
	Profession *string `json:"profession"`
	Birthday   *int64  `json:"birthday"`
	Banned     *bool   `json:"banned"`
	Experience *int    `json:"experience"`
}

// ToChanges converts the request to model changes. An unknown race or
// profession name is reported as an invalid value for that field.
func (r PlayerRequest) ToChanges() (model.PlayerChanges, error) {
	changes := model.PlayerChanges{
		Name:       r.Name,
		Title:      r.Title,
		Banned:     r.Banned,
		Experience: r.Experience,
	}
	if r.Race != nil {
		race, err := model.ParseRace(*r.Race)
		if err != nil {
			return model.PlayerChanges{}, &model.ValidationError{Field: "race"}
		}
		changes.Race = &race
	}
	if r.Profession != nil {
		profession, err := model.ParseProfession(*r.Profession)
		if err != nil {
			return model.PlayerChanges{}, &model.ValidationError{Field: "profession"}
		}
		changes.Profession = &profession
	}
	if r.Birthday != nil {
		if *r.Birthday < 0 {
			return model.PlayerChanges{}, &model.ValidationError{Field: "birthday"}
		}
		birthday := time.UnixMilli(*r.Birthday)
		changes.Birthday = &birthday
	}
	return changes, nil
}

// PlayerRequestFromChanges builds a request body from model changes
func PlayerRequestFromChanges(c model.PlayerChanges) PlayerRequest {
	r := PlayerRequest{
		Name:       c.Name,
		Title:      c.Title,
		Banned:     c.Banned,
		Experience: c.Experience,
	}
	if c.Race != nil {
		race := string(*c.Race)
		r.Race = &race
	}
	if c.Profession != nil {
		profession := string(*c.Profession)
		r.Profession = &profession
	}
	if c.Birthday != nil {
		ms := c.Birthday.UnixMilli()
		r.Birthday = &ms
	}
	return r
}
