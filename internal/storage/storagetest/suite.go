// Package storagetest holds the behaviour every storage backend must share.
// Backend test suites embed Suite and assign Storage in their SetupTest.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/playeradmin/internal/model"
	"github.com/mcoot/playeradmin/internal/storage"
)

// Suite runs the storage contract against Storage
type Suite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
}

// NewPlayer returns a valid, unsaved player
func NewPlayer(name string, experience int) *model.Player {
	return &model.Player{
		Name:           name,
		Title:          "Tester",
		Race:           model.RaceElf,
		Profession:     model.ProfessionDruid,
		Birthday:       time.Date(2012, time.July, 9, 10, 30, 0, 0, time.UTC),
		Experience:     experience,
		Level:          1,
		UntilNextLevel: 100,
	}
}

func (s *Suite) TestSaveAssignsID() {
	p := NewPlayer("Alice", 100)

	err := s.Storage.SavePlayer(s.Ctx, p)
	s.Require().NoError(err)
	s.NotZero(p.ID)

	q := NewPlayer("Bob", 100)
	err = s.Storage.SavePlayer(s.Ctx, q)
	s.Require().NoError(err)
	s.Greater(q.ID, p.ID)
}

func (s *Suite) TestSaveAndGetPlayer() {
	p := NewPlayer("Alice", 150)
	p.Banned = true
	s.Require().NoError(s.Storage.SavePlayer(s.Ctx, p))

	got, err := s.Storage.GetPlayer(s.Ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(p.ID, got.ID)
	s.Equal("Alice", got.Name)
	s.Equal("Tester", got.Title)
	s.Equal(model.RaceElf, got.Race)
	s.Equal(model.ProfessionDruid, got.Profession)
	s.True(p.Birthday.Equal(got.Birthday), "birthday %v != %v", p.Birthday, got.Birthday)
	s.True(got.Banned)
	s.Equal(150, got.Experience)
	s.Equal(1, got.Level)
	s.Equal(100, got.UntilNextLevel)
}

func (s *Suite) TestSaveExistingReplaces() {
	p := NewPlayer("Alice", 100)
	s.Require().NoError(s.Storage.SavePlayer(s.Ctx, p))
	id := p.ID

	p.Name = "Alicia"
	p.Experience = 300
	s.Require().NoError(s.Storage.SavePlayer(s.Ctx, p))
	s.Equal(id, p.ID)

	got, err := s.Storage.GetPlayer(s.Ctx, id)
	s.Require().NoError(err)
	s.Equal("Alicia", got.Name)
	s.Equal(300, got.Experience)

	all, err := s.Storage.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *Suite) TestGetPlayerNotFound() {
	_, err := s.Storage.GetPlayer(s.Ctx, 4242)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestDeletePlayer() {
	p := NewPlayer("Alice", 100)
	s.Require().NoError(s.Storage.SavePlayer(s.Ctx, p))

	err := s.Storage.DeletePlayer(s.Ctx, p.ID)
	s.Require().NoError(err)

	_, err = s.Storage.GetPlayer(s.Ctx, p.ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestDeletePlayerNotFound() {
	err := s.Storage.DeletePlayer(s.Ctx, 4242)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestListPlayersInIDOrder() {
	for _, name := range []string{"C", "A", "B"} {
		s.Require().NoError(s.Storage.SavePlayer(s.Ctx, NewPlayer(name, 0)))
	}

	players, err := s.Storage.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal("C", players[0].Name)
	s.Equal("A", players[1].Name)
	s.Equal("B", players[2].Name)
	s.Less(players[0].ID, players[1].ID)
	s.Less(players[1].ID, players[2].ID)
}

func (s *Suite) TestListPlayersEmpty() {
	players, err := s.Storage.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *Suite) TestDeletedIDsAreNotReused() {
	p := NewPlayer("Alice", 0)
	s.Require().NoError(s.Storage.SavePlayer(s.Ctx, p))
	s.Require().NoError(s.Storage.DeletePlayer(s.Ctx, p.ID))

	q := NewPlayer("Bob", 0)
	s.Require().NoError(s.Storage.SavePlayer(s.Ctx, q))
	s.Greater(q.ID, p.ID)
}
