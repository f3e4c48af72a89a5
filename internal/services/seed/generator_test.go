package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/playeradmin/internal/dependencies/mocks"
	"github.com/mcoot/playeradmin/internal/dependencies/random"
	"github.com/mcoot/playeradmin/internal/model"
	"github.com/mcoot/playeradmin/internal/services/rules"
)

type GeneratorSuite struct {
	suite.Suite
	clock  *mocks.MockClock
	random *mocks.MockRandom
	gen    *Generator
}

func TestGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeneratorSuite))
}

func (s *GeneratorSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local))
	s.random = mocks.NewMockRandom()
	s.gen = New(s.clock, s.random)
}

func (s *GeneratorSuite) TestPlayerUsesQueuedValues() {
	s.random.QueueIntn(2, 1, 3, 4, 5000)
	s.random.QueueBool(true)
	s.random.QueueInt63n(24 * 60 * 60 * 1000)

	changes := s.gen.Player()

	s.Equal("Cedric", *changes.Name)
	s.Equal("Slayer of Wyrms", *changes.Title)
	s.Equal(model.RaceGiant, *changes.Race)
	s.Equal(model.ProfessionPaladin, *changes.Profession)
	s.Equal(5000, *changes.Experience)
	s.True(*changes.Banned)
	s.True(changes.Birthday.Equal(time.Date(2000, time.January, 3, 0, 0, 0, 0, time.Local)))
}

func (s *GeneratorSuite) TestZeroDrawsAreStillValid() {
	p, err := rules.NewPlayer(s.gen.Player())
	s.Require().NoError(err)
	s.Equal("Aragorn", p.Name)
	s.Equal(0, p.Level)
}

func (s *GeneratorSuite) TestClockBeforeEarliestBirthday() {
	s.clock.Set(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC))

	changes := s.gen.Player()
	s.True(changes.Birthday.Equal(earliestBirthday()))
}

func (s *GeneratorSuite) TestRealRandomProducesValidPlayers() {
	gen := New(s.clock, random.New())
	for _, changes := range gen.Players(50) {
		p, err := rules.NewPlayer(changes)
		s.Require().NoError(err)
		s.False(p.Birthday.After(s.clock.Now()))
	}
}

func (s *GeneratorSuite) TestPlayersCount() {
	s.Len(s.gen.Players(4), 4)
	s.Empty(s.gen.Players(-1))
}
