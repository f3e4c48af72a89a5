// Package seed generates random valid players for demo data.
package seed

import (
	"time"

	"github.com/mcoot/playeradmin/internal/dependencies/clock"
	"github.com/mcoot/playeradmin/internal/dependencies/random"
	"github.com/mcoot/playeradmin/internal/model"
	"github.com/mcoot/playeradmin/internal/services/rules"
)

var (
	names = []string{
		"Aragorn", "Brunhild", "Cedric", "Dwalin", "Elowen", "Fargrim",
		"Galadriel", "Hrothgar", "Isolde", "Jareth", "Kael", "Lorien",
	}
	titles = []string{
		"Keeper of the Gate", "Slayer of Wyrms", "The Wanderer", "Shadow of the North",
		"Lord of Ashes", "Warden of the Vale", "The Unbroken", "Seeker of Runes",
	}
)

// Generator builds creation requests for random valid players
type Generator struct {
	clock  clock.Clock
	random random.Random
}

// New creates a Generator
func New(clock clock.Clock, random random.Random) *Generator {
	return &Generator{clock: clock, random: random}
}

// earliestBirthday is the first day accepted by birthday validation
func earliestBirthday() time.Time {
	return time.Date(2000, time.January, 2, 0, 0, 0, 0, time.Local)
}

// Player returns a creation request whose every field passes validation.
// Birthdays fall between 2000-01-02 and the clock's current time.
func (g *Generator) Player() model.PlayerChanges {
	name := names[g.random.Intn(len(names))]
	title := titles[g.random.Intn(len(titles))]
	race := model.Races[g.random.Intn(len(model.Races))]
	profession := model.Professions[g.random.Intn(len(model.Professions))]
	experience := g.random.Intn(rules.MaxExperience + 1)
	banned := g.random.Bool()

	from := earliestBirthday()
	birthday := from
	if span := g.clock.Now().Sub(from).Milliseconds(); span > 0 {
		birthday = from.Add(time.Duration(g.random.Int63n(span)) * time.Millisecond)
	}

	return model.PlayerChanges{
		Name:       &name,
		Title:      &title,
		Race:       &race,
		Profession: &profession,
		Birthday:   &birthday,
		Banned:     &banned,
		Experience: &experience,
	}
}

// Players returns n creation requests
func (g *Generator) Players(n int) []model.PlayerChanges {
	out := make([]model.PlayerChanges, 0, max(n, 0))
	for range n {
		out = append(out, g.Player())
	}
	return out
}
