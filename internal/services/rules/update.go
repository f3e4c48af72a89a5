package rules

import (
	"github.com/mcoot/playeradmin/internal/model"
)

// ApplyChanges copies the present fields of changes onto p.
//
// Every present field is validated before anything is written, so p is left
// untouched when an error is returned. The error is a *model.ValidationError
// naming the first invalid field in the order name, title, birthday, experience.
// Level and UntilNextLevel are recomputed when birthday, banned or experience
// is present.
func ApplyChanges(p *model.Player, changes model.PlayerChanges) error {
	if changes.Name != nil && !IsStringValid(changes.Name, "name") {
		return &model.ValidationError{Field: "name"}
	}
	if changes.Title != nil && !IsStringValid(changes.Title, "title") {
		return &model.ValidationError{Field: "title"}
	}
	if changes.Birthday != nil && !IsBirthdayValid(*changes.Birthday) {
		return &model.ValidationError{Field: "birthday"}
	}
	if changes.Experience != nil && !IsExperienceValid(changes.Experience) {
		return &model.ValidationError{Field: "experience"}
	}

	ratingDirty := false

	if changes.Name != nil {
		p.Name = *changes.Name
	}
	if changes.Title != nil {
		p.Title = *changes.Title
	}
	if changes.Race != nil {
		p.Race = *changes.Race
	}
	if changes.Profession != nil {
		p.Profession = *changes.Profession
	}
	if changes.Birthday != nil {
		p.Birthday = *changes.Birthday
		ratingDirty = true
	}
	if changes.Banned != nil {
		p.Banned = *changes.Banned
		ratingDirty = true
	}
	if changes.Experience != nil {
		p.Experience = *changes.Experience
		ratingDirty = true
	}

	if ratingDirty {
		RecomputeStats(p)
	}
	return nil
}

// NewPlayer builds a player from a creation request. Name, title, race,
// profession, birthday and experience are required; banned defaults to false.
func NewPlayer(changes model.PlayerChanges) (*model.Player, error) {
	switch {
	case changes.Name == nil:
		return nil, &model.ValidationError{Field: "name"}
	case changes.Title == nil:
		return nil, &model.ValidationError{Field: "title"}
	case changes.Race == nil:
		return nil, &model.ValidationError{Field: "race"}
	case changes.Profession == nil:
		return nil, &model.ValidationError{Field: "profession"}
	case changes.Birthday == nil:
		return nil, &model.ValidationError{Field: "birthday"}
	case changes.Experience == nil:
		return nil, &model.ValidationError{Field: "experience"}
	}

	p := &model.Player{
		Name:       *changes.Name,
		Title:      *changes.Title,
		Race:       *changes.Race,
		Profession: *changes.Profession,
		Birthday:   *changes.Birthday,
		Experience: *changes.Experience,
	}
	if changes.Banned != nil {
		p.Banned = *changes.Banned
	}

	if err := ValidatePlayer(p); err != nil {
		return nil, err
	}
	RecomputeStats(p)
	return p, nil
}
