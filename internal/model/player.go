package model

import "time"

// PlayerID uniquely identifies a stored player. Zero means "not yet assigned".
type PlayerID int64

// Race is the fixed set of character races
type Race string

const (
	RaceHuman  Race = "HUMAN"
	RaceDwarf  Race = "DWARF"
	RaceElf    Race = "ELF"
	RaceGiant  Race = "GIANT"
	RaceOrc    Race = "ORC"
	RaceTroll  Race = "TROLL"
	RaceHobbit Race = "HOBBIT"
)

// Races lists every Race variant in declaration order
var Races = []Race{RaceHuman, RaceDwarf, RaceElf, RaceGiant, RaceOrc, RaceTroll, RaceHobbit}

// Profession is the fixed set of character professions
type Profession string

const (
	ProfessionWarrior  Profession = "WARRIOR"
	ProfessionRogue    Profession = "ROGUE"
	ProfessionSorcerer Profession = "SORCERER"
	ProfessionCleric   Profession = "CLERIC"
	ProfessionPaladin  Profession = "PALADIN"
	ProfessionNazgul   Profession = "NAZGUL"
	ProfessionWarlock  Profession = "WARLOCK"
	ProfessionDruid    Profession = "DRUID"
)

// Professions lists every Profession variant in declaration order
var Professions = []Profession{
	ProfessionWarrior, ProfessionRogue, ProfessionSorcerer, ProfessionCleric,
	ProfessionPaladin, ProfessionNazgul, ProfessionWarlock, ProfessionDruid,
}

// ParseRace converts a variant name to a Race. Matching is exact and case-sensitive.
func ParseRace(s string) (Race, error) {
	for _, r := range Races {
		if string(r) == s {
			return r, nil
		}
	}
	return "", &ParseError{Kind: "race", Value: s}
}

// ParseProfession converts a variant name to a Profession. Matching is exact and case-sensitive.
func ParseProfession(s string) (Profession, error) {
	for _, p := range Professions {
		if string(p) == s {
			return p, nil
		}
	}
	return "", &ParseError{Kind: "profession", Value: s}
}

// Player is a game character record.
// An empty Race or Profession and a zero Birthday mean the value is absent.
type Player struct {
	ID             PlayerID
	Name           string
	Title          string
	Race           Race
	Profession     Profession
	Birthday       time.Time
	Banned         bool
	Experience     int
	Level          int // derived from Experience
	UntilNextLevel int // derived from Experience and Level
}

// Clone returns a copy that shares no state with p
func (p *Player) Clone() *Player {
	c := *p
	return &c
}

// PlayerChanges carries caller-supplied player fields. A nil field is absent.
// It is the input for both creation (all required fields set) and partial updates.
type PlayerChanges struct {
	Name       *string
	Title      *string
	Race       *Race
	Profession *Profession
	Birthday   *time.Time
	Banned     *bool
	Experience *int
}

// PlayerFilter holds optional listing criteria. A nil field always passes.
type PlayerFilter struct {
	Name       *string
	Title      *string
	Race       *string // variant name, parsed when filtering
	Profession *string // variant name, parsed when filtering
	After      *int64  // epoch milliseconds
	Before     *int64  // epoch milliseconds

	Banned        *bool
	MinExperience *int
	MaxExperience *int
	MinLevel      *int
	MaxLevel      *int
}

// PlayerOrder selects the sort key for listings
type PlayerOrder string

const (
	OrderID         PlayerOrder = "ID"
	OrderName       PlayerOrder = "NAME"
	OrderExperience PlayerOrder = "EXPERIENCE"
	OrderBirthday   PlayerOrder = "BIRTHDAY"
	OrderLevel      PlayerOrder = "LEVEL"
)

// ParseOrder converts a wire value to a PlayerOrder. Empty input means OrderID.
func ParseOrder(s string) (PlayerOrder, error) {
	switch o := PlayerOrder(s); o {
	case "":
		return OrderID, nil
	case OrderID, OrderName, OrderExperience, OrderBirthday, OrderLevel:
		return o, nil
	}
	return "", &ParseError{Kind: "order", Value: s}
}
