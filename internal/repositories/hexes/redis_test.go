package hexes_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/hexgame-api/internal/entities"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
	"github.com/KirkDiggler/hexgame-api/internal/hexgrid"
	"github.com/KirkDiggler/hexgame-api/internal/repositories/hexes"
	"github.com/KirkDiggler/hexgame-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	cleanup func()
	repo    hexes.Repository
	ctx     context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := hexes.NewRedis(&hexes.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) board(radius int) []*entities.Hex {
	var out []*entities.Hex
	for _, c := range hexgrid.Range(radius) {
		out = append(out, &entities.Hex{
			ID:            "hex_" + c.String(),
			GameID:        "game_1",
			Q:             c.Q,
			R:             c.R,
			S:             c.S(),
			TerrainRating: 1,
		})
	}
	return out
}

func (s *RedisRepositoryTestSuite) TestCreateBatchAndList() {
	out, err := s.repo.CreateBatch(s.ctx, hexes.CreateBatchInput{GameID: "game_1", Hexes: s.board(2)})
	s.Require().NoError(err)
	s.Equal(19, out.Count)

	listed, err := s.repo.ListByGame(s.ctx, hexes.ListByGameInput{GameID: "game_1"})
	s.Require().NoError(err)
	s.Require().Len(listed.Hexes, 19)
	s.Equal(-2, listed.Hexes[0].Q)
	s.Equal(0, listed.Hexes[0].R)
	for _, h := range listed.Hexes {
		s.Equal(0, h.Q+h.R+h.S)
	}
}

func (s *RedisRepositoryTestSuite) TestGetAndUpdate() {
	_, err := s.repo.CreateBatch(s.ctx, hexes.CreateBatchInput{GameID: "game_1", Hexes: s.board(1)})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, hexes.GetInput{GameID: "game_1", Q: 1, R: -1})
	s.Require().NoError(err)
	s.Equal(0, got.Hex.S)

	hex := got.Hex.Clone()
	hex.OwnerID = "player_1"
	hex.MarkExplored("player_1")
	_, err = s.repo.Update(s.ctx, hexes.UpdateInput{Hex: hex})
	s.Require().NoError(err)

	got, err = s.repo.Get(s.ctx, hexes.GetInput{GameID: "game_1", Q: 1, R: -1})
	s.Require().NoError(err)
	s.Equal("player_1", got.Hex.OwnerID)
	s.True(got.Hex.IsExploredBy("player_1"))
}

func (s *RedisRepositoryTestSuite) TestErrors() {
	_, err := s.repo.Get(s.ctx, hexes.GetInput{GameID: "game_1", Q: 5, R: 5})
	s.True(errors.IsNotFound(err))

	bad := &entities.Hex{GameID: "game_1", Q: 1, R: 1, S: 1}
	_, err = s.repo.Update(s.ctx, hexes.UpdateInput{Hex: bad})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.CreateBatch(s.ctx, hexes.CreateBatchInput{GameID: "game_2", Hexes: s.board(0)})
	s.True(errors.IsInvalidArgument(err), "hexes must belong to the batch game")

	_, err = s.repo.CreateBatch(s.ctx, hexes.CreateBatchInput{GameID: "game_1"})
	s.True(errors.IsInvalidArgument(err))
}
