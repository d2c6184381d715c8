package games_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/hexgame-api/internal/entities"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
	"github.com/KirkDiggler/hexgame-api/internal/pkg/clock"
	"github.com/KirkDiggler/hexgame-api/internal/repositories/games"
	"github.com/KirkDiggler/hexgame-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	cleanup func()
	clock   *clock.Fixed
	repo    games.Repository
	ctx     context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mr, cleanup := testutils.CreateTestRedis(s.T())
	s.mr = mr
	s.cleanup = cleanup
	s.clock = &clock.Fixed{At: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}

	repo, err := games.NewRedis(&games.RedisConfig{Client: client, Clock: s.clock})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) testGame() *entities.Game {
	return &entities.Game{
		ID:                   "game_1",
		NumberOfPlayers:      2,
		MapSize:              3,
		CurrentTurn:          1,
		Status:               entities.GameStatusInProgress,
		ParticipantPlayerIDs: []string{"player_1", "player_2"},
	}
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	created, err := s.repo.Create(s.ctx, games.CreateInput{Game: s.testGame()})
	s.Require().NoError(err)
	s.Equal(s.clock.At, created.Game.CreatedAt)
	s.True(s.mr.Exists("game:game_1"))

	got, err := s.repo.Get(s.ctx, games.GetInput{ID: "game_1"})
	s.Require().NoError(err)
	s.Equal(created.Game, got.Game)
}

func (s *RedisRepositoryTestSuite) TestCreateDuplicate() {
	_, err := s.repo.Create(s.ctx, games.CreateInput{Game: s.testGame()})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, games.CreateInput{Game: s.testGame()})
	s.Error(err)
	s.Equal(errors.CodeAlreadyExists, errors.GetCode(err))
}

func (s *RedisRepositoryTestSuite) TestUpdate() {
	s.Run("missing game", func() {
		_, err := s.repo.Update(s.ctx, games.UpdateInput{Game: s.testGame()})
		s.True(errors.IsNotFound(err))
	})

	s.Run("existing game", func() {
		_, err := s.repo.Create(s.ctx, games.CreateInput{Game: s.testGame()})
		s.Require().NoError(err)

		game := s.testGame()
		game.CurrentTurn = 2
		game.SubmittedTurnPlayerIDs = []string{"player_1"}
		_, err = s.repo.Update(s.ctx, games.UpdateInput{Game: game})
		s.Require().NoError(err)

		got, err := s.repo.Get(s.ctx, games.GetInput{ID: "game_1"})
		s.Require().NoError(err)
		s.Equal(2, got.Game.CurrentTurn)
		s.Equal([]string{"player_1"}, got.Game.SubmittedTurnPlayerIDs)
	})
}

func (s *RedisRepositoryTestSuite) TestValidation() {
	testCases := []struct {
		name string
		run  func() error
		code errors.Code
	}{
		{
			name: "nil game",
			run: func() error {
				_, err := s.repo.Create(s.ctx, games.CreateInput{})
				return err
			},
			code: errors.CodeInvalidArgument,
		},
		{
			name: "empty id",
			run: func() error {
				_, err := s.repo.Get(s.ctx, games.GetInput{})
				return err
			},
			code: errors.CodeInvalidArgument,
		},
		{
			name: "not found",
			run: func() error {
				_, err := s.repo.Get(s.ctx, games.GetInput{ID: "nope"})
				return err
			},
			code: errors.CodeNotFound,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.code, errors.GetCode(tc.run()))
		})
	}
}

func (s *RedisRepositoryTestSuite) TestStorageFailureIsInternal() {
	s.mr.SetError("ERR storage offline")
	defer s.mr.SetError("")

	_, err := s.repo.Get(s.ctx, games.GetInput{ID: "game_1"})
	s.Error(err)
	s.True(errors.IsInternal(err))
}

func TestNewRedisValidation(t *testing.T) {
	_, err := games.NewRedis(nil)
	if err == nil {
		t.Fatal("expected error for nil config")
	}
	_, err = games.NewRedis(&games.RedisConfig{})
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
