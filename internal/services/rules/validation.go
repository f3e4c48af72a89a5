// Package rules holds the player domain rules: field validation, derived stat
// formulas, filtering, sorting and pagination. Everything here is pure and
// performs no I/O.
package rules

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mcoot/playeradmin/internal/model"
)

// Field limits
const (
	MinExperience = 0
	MaxExperience = 10_000_000

	MaxNameLength  = 12
	MaxTitleLength = 30

	minBirthYear = 2000
	maxBirthYear = 3000
)

// IsExperienceValid reports whether exp is present and within [0, 10_000_000]
func IsExperienceValid(exp *int) bool {
	return exp != nil && *exp >= MinExperience && *exp <= MaxExperience
}

// IsStringValid validates the "name" or "title" field. Any other field name is invalid.
func IsStringValid(value *string, field string) bool {
	if value == nil {
		return false
	}
	switch {
	case strings.EqualFold(field, "name"):
		return utf8.RuneCountInString(*value) <= MaxNameLength
	case strings.EqualFold(field, "title"):
		return utf8.RuneCountInString(*value) <= MaxTitleLength
	}
	return false
}

// IsBirthdayValid reports whether birthday lies strictly between the start of
// year 2000 and the start of year 3000 in the local timezone
func IsBirthdayValid(birthday time.Time) bool {
	if birthday.IsZero() {
		return false
	}
	return birthday.After(startOfYear(minBirthYear)) && birthday.Before(startOfYear(maxBirthYear))
}

func startOfYear(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
}

// ValidatePlayer returns a *model.ValidationError naming the first invalid
// field, or nil. Level and UntilNextLevel are derived and not checked.
func ValidatePlayer(p *model.Player) error {
	if p == nil {
		return &model.ValidationError{Field: "player"}
	}
	if !IsStringValid(&p.Name, "name") {
		return &model.ValidationError{Field: "name"}
	}
	if !IsStringValid(&p.Title, "title") {
		return &model.ValidationError{Field: "title"}
	}
	if !IsBirthdayValid(p.Birthday) {
		return &model.ValidationError{Field: "birthday"}
	}
	if p.Race == "" {
		return &model.ValidationError{Field: "race"}
	}
	if p.Profession == "" {
		return &model.ValidationError{Field: "profession"}
	}
	if !IsExperienceValid(&p.Experience) {
		return &model.ValidationError{Field: "experience"}
	}
	return nil
}

// IsPlayerValid reports whether every caller-supplied field of p is valid
func IsPlayerValid(p *model.Player) bool {
	return ValidatePlayer(p) == nil
}
