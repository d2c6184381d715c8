package v1alpha1_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/hexgame-api/internal/engine"
	"github.com/KirkDiggler/hexgame-api/internal/entities"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
	"github.com/KirkDiggler/hexgame-api/internal/handlers/hexgame/v1alpha1"
	"github.com/KirkDiggler/hexgame-api/internal/orchestrators/game"
	gamemock "github.com/KirkDiggler/hexgame-api/internal/orchestrators/game/mock"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockGame *gamemock.MockService
	handler  *v1alpha1.Handler
	ctx      context.Context
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockGame = gamemock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		GameService: s.mockGame,
	})
	s.Require().NoError(err)
	s.handler = handler
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) request(fields map[string]any) *structpb.Struct {
	req, err := structpb.NewStruct(fields)
	s.Require().NoError(err)
	return req
}

func sampleView() *engine.View {
	return &engine.View{
		GameID: "game_1",
		Turn:   3,
		Round:  3,
		Status: entities.GameStatusInProgress,
		Player: &entities.Player{ID: "player_1", GameID: "game_1", IsActive: true},
		Hand: []*entities.Card{
			{ID: "card_1", PlayerID: "player_1", Type: entities.CardTypeBattle, Name: "Tactical Strike"},
		},
		Characters: []*entities.Character{
			{ID: "character_1", PlayerID: "player_1", Q: 1, R: -1, Melee: 5, MovementPoints: 2},
		},
		Hexes: []engine.VisibleHex{
			{Hex: &entities.Hex{ID: "hex_1", Q: 1, R: -1, S: 0, TerrainRating: 2, ExploredBy: []string{"player_1"}}, Explored: true},
			{Hex: &entities.Hex{ID: "hex_2", Q: 2, R: -1, S: -1, ExploredBy: []string{}}},
		},
		CanAct:               true,
		ParticipantPlayerIDs: []string{"player_1", "player_2"},
	}
}

func (s *HandlerTestSuite) TestNewHandlerRequiresService() {
	_, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.Error(err)

	_, err = v1alpha1.NewHandler(nil)
	s.Error(err)
}

func (s *HandlerTestSuite) TestCreateGame() {
	s.mockGame.EXPECT().
		CreateGame(s.ctx, &game.CreateGameInput{NumberOfPlayers: 3, MapSize: 5}).
		Return(&game.CreateGameOutput{
			GameID:    "game_1",
			PlayerIDs: []string{"player_1", "player_2", "player_3"},
		}, nil)

	resp, err := s.handler.CreateGame(s.ctx, s.request(map[string]any{
		"number_of_players": 3,
		"map_size":          5,
	}))
	s.Require().NoError(err)

	s.Equal("game_1", resp.GetFields()["game_id"].GetStringValue())
	ids := resp.GetFields()["player_ids"].GetListValue().GetValues()
	s.Require().Len(ids, 3)
	s.Equal("player_3", ids[2].GetStringValue())
}

func (s *HandlerTestSuite) TestCreateGameValidation() {
	testCases := []struct {
		name   string
		fields map[string]any
		errMsg string
	}{
		{
			name:   "missing map size",
			fields: map[string]any{"number_of_players": 2},
			errMsg: "map_size: is required",
		},
		{
			name:   "fractional player count",
			fields: map[string]any{"number_of_players": 2.5, "map_size": 5},
			errMsg: "number_of_players: is invalid: must be a whole number",
		},
		{
			name:   "string map size",
			fields: map[string]any{"number_of_players": 2, "map_size": "big"},
			errMsg: "map_size: is invalid: must be a number",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.handler.CreateGame(s.ctx, s.request(tc.fields))
			s.Require().Error(err)

			st, ok := status.FromError(err)
			s.Require().True(ok)
			s.Equal(codes.InvalidArgument, st.Code())
			s.Contains(st.Message(), tc.errMsg)
		})
	}
}

func (s *HandlerTestSuite) TestGetState() {
	s.mockGame.EXPECT().
		GetState(s.ctx, &game.GetStateInput{GameID: "game_1", PlayerID: "player_1"}).
		Return(&game.GetStateOutput{View: sampleView()}, nil)

	resp, err := s.handler.GetState(s.ctx, s.request(map[string]any{
		"game_id":   "game_1",
		"player_id": "player_1",
	}))
	s.Require().NoError(err)

	fields := resp.GetFields()
	s.Equal("game_1", fields["game_id"].GetStringValue())
	s.Equal(float64(3), fields["turn"].GetNumberValue())
	s.Equal("IN_PROGRESS", fields["status"].GetStringValue())
	s.True(fields["can_act"].GetBoolValue())
	s.Equal("player_1", fields["player"].GetStructValue().GetFields()["id"].GetStringValue())

	hand := fields["hand"].GetListValue().GetValues()
	s.Require().Len(hand, 1)
	s.Equal("Tactical Strike", hand[0].GetStructValue().GetFields()["name"].GetStringValue())

	hexes := fields["hexes"].GetListValue().GetValues()
	s.Require().Len(hexes, 2)
	first := hexes[0].GetStructValue().GetFields()
	s.True(first["explored"].GetBoolValue())
	s.Equal(float64(2), first["terrain_rating"].GetNumberValue())
	s.False(hexes[1].GetStructValue().GetFields()["explored"].GetBoolValue())

	_, isNull := fields["active_battle"].GetKind().(*structpb.Value_NullValue)
	s.True(isNull)
	s.NotNil(fields["recent_battles"].GetListValue())
}

func (s *HandlerTestSuite) TestGetStateRequiresIDs() {
	_, err := s.handler.GetState(s.ctx, s.request(map[string]any{}))
	s.Require().Error(err)

	st, _ := status.FromError(err)
	s.Equal(codes.InvalidArgument, st.Code())
	s.Contains(st.Message(), "game_id: is required")
	s.Contains(st.Message(), "player_id: is required")
}

func (s *HandlerTestSuite) TestMove() {
	s.mockGame.EXPECT().
		Move(s.ctx, &game.MoveInput{
			GameID:      "game_1",
			PlayerID:    "player_1",
			CharacterID: "character_1",
			TargetQ:     -1,
			TargetR:     0,
		}).
		Return(&game.MoveOutput{View: sampleView()}, nil)

	resp, err := s.handler.Move(s.ctx, s.request(map[string]any{
		"game_id":      "game_1",
		"player_id":    "player_1",
		"character_id": "character_1",
		"target_q":     -1,
		"target_r":     0,
	}))
	s.Require().NoError(err)
	s.Equal("game_1", resp.GetFields()["game_id"].GetStringValue())
}

func (s *HandlerTestSuite) TestMoveRequiresTarget() {
	_, err := s.handler.Move(s.ctx, s.request(map[string]any{
		"game_id":      "game_1",
		"player_id":    "player_1",
		"character_id": "character_1",
		"target_q":     1,
	}))
	s.Require().Error(err)

	st, _ := status.FromError(err)
	s.Equal(codes.InvalidArgument, st.Code())
	s.Contains(st.Message(), "target_r: is required")
}

func (s *HandlerTestSuite) TestPlayCard() {
	s.mockGame.EXPECT().
		PlayCard(s.ctx, &game.PlayCardInput{
			GameID:            "game_1",
			PlayerID:          "player_1",
			CardID:            "card_1",
			TargetCharacterID: "character_1",
		}).
		Return(&game.PlayCardOutput{View: sampleView()}, nil)

	_, err := s.handler.PlayCard(s.ctx, s.request(map[string]any{
		"game_id":             "game_1",
		"player_id":           "player_1",
		"card_id":             "card_1",
		"target_character_id": "character_1",
	}))
	s.NoError(err)
}

func (s *HandlerTestSuite) TestSubmitBattleAction() {
	s.mockGame.EXPECT().
		SubmitBattleAction(s.ctx, &game.SubmitBattleActionInput{
			GameID:     "game_1",
			PlayerID:   "player_1",
			BattleID:   "battle_1",
			BattleType: entities.BattleTypeMagic,
			CardIDs:    []string{"card_1", "card_2"},
			Submit:     true,
		}).
		Return(&game.SubmitBattleActionOutput{View: sampleView()}, nil)

	_, err := s.handler.SubmitBattleAction(s.ctx, s.request(map[string]any{
		"game_id":     "game_1",
		"player_id":   "player_1",
		"battle_id":   "battle_1",
		"battle_type": "magic",
		"card_ids":    []any{"card_1", "card_2"},
		"submit":      true,
	}))
	s.NoError(err)
}

func (s *HandlerTestSuite) TestSubmitBattleActionRejectsBadInput() {
	_, err := s.handler.SubmitBattleAction(s.ctx, s.request(map[string]any{
		"game_id":     "game_1",
		"player_id":   "player_1",
		"battle_id":   "battle_1",
		"battle_type": "poetry",
		"card_ids":    []any{"card_1", 7},
	}))
	s.Require().Error(err)

	st, _ := status.FromError(err)
	s.Equal(codes.InvalidArgument, st.Code())
	s.Contains(st.Message(), "battle_type: is invalid")
	s.Contains(st.Message(), "card_ids: is invalid: must be a list of strings")
}

func (s *HandlerTestSuite) TestEndTurnMapsErrors() {
	testCases := []struct {
		name    string
		err     error
		code    codes.Code
		message string
	}{
		{
			name:    "not found",
			err:     errors.NotFound("game game_1 not found"),
			code:    codes.NotFound,
			message: "game game_1 not found",
		},
		{
			name:    "precondition",
			err:     errors.FailedPrecondition("player already ended the turn"),
			code:    codes.FailedPrecondition,
			message: "player already ended the turn",
		},
		{
			name:    "storage failure hides details",
			err:     errors.Internal("redis: connection refused"),
			code:    codes.Internal,
			message: "internal error",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockGame.EXPECT().
				EndTurn(s.ctx, &game.EndTurnInput{GameID: "game_1", PlayerID: "player_1"}).
				Return(nil, tc.err)

			_, err := s.handler.EndTurn(s.ctx, s.request(map[string]any{
				"game_id":   "game_1",
				"player_id": "player_1",
			}))
			s.Require().Error(err)

			st, _ := status.FromError(err)
			s.Equal(tc.code, st.Code())
			s.Equal(tc.message, st.Message())
		})
	}
}

func (s *HandlerTestSuite) TestServesOverGRPC() {
	lis := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	v1alpha1.RegisterGameServiceServer(server, s.handler)
	go func() {
		_ = server.Serve(lis)
	}()
	defer server.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	defer func() { _ = conn.Close() }()

	s.mockGame.EXPECT().
		EndTurn(gomock.Any(), &game.EndTurnInput{GameID: "game_1", PlayerID: "player_1"}).
		Return(&game.EndTurnOutput{View: sampleView()}, nil)

	client := v1alpha1.NewGameServiceClient(conn)
	resp, err := client.EndTurn(s.ctx, s.request(map[string]any{
		"game_id":   "game_1",
		"player_id": "player_1",
	}))
	s.Require().NoError(err)
	s.Equal("game_1", resp.GetFields()["game_id"].GetStringValue())

	_, err = client.GetState(s.ctx, s.request(map[string]any{"game_id": "game_1"}))
	st, _ := status.FromError(err)
	s.Equal(codes.InvalidArgument, st.Code())
}
