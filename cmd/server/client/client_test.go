package client

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/hexgame-api/internal/handlers/hexgame/v1alpha1"
)

// echoServer answers every call with the request it received
type echoServer struct{}

func (echoServer) echo(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req.GetFields()["game_id"].GetStringValue() == "missing" {
		return nil, status.Error(codes.NotFound, "game missing not found")
	}
	return req, nil
}

func (e echoServer) CreateGame(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return e.echo(ctx, req)
}

func (e echoServer) GetState(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return e.echo(ctx, req)
}

func (e echoServer) Move(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return e.echo(ctx, req)
}

func (e echoServer) PlayCard(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return e.echo(ctx, req)
}

func (e echoServer) SubmitBattleAction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return e.echo(ctx, req)
}

func (e echoServer) EndTurn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return e.echo(ctx, req)
}

func startEchoServer(t *testing.T) {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := grpc.NewServer()
	v1alpha1.RegisterGameServiceServer(srv, echoServer{})
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	serverAddr = lis.Addr().String()
	timeout = 5 * time.Second
}

func decode(t *testing.T, out *bytes.Buffer) map[string]*structpb.Value {
	t.Helper()
	resp := &structpb.Struct{}
	require.NoError(t, protojson.Unmarshal(out.Bytes(), resp))
	return resp.GetFields()
}

func TestSendPrintsResponse(t *testing.T) {
	startEchoServer(t)

	var out bytes.Buffer
	err := send(&out, map[string]any{
		v1alpha1.FieldGameID:   "game_1",
		v1alpha1.FieldPlayerID: "player_1",
	}, v1alpha1.GameServiceClient.EndTurn)
	require.NoError(t, err)

	fields := decode(t, &out)
	assert.Equal(t, "game_1", fields["game_id"].GetStringValue())
	assert.Equal(t, "player_1", fields["player_id"].GetStringValue())
}

func TestBattleCommandSendsFlags(t *testing.T) {
	startEchoServer(t)

	var out bytes.Buffer
	battleCmd.SetOut(&out)
	t.Cleanup(func() { battleCmd.SetOut(nil) })

	gameID, playerID = "game_1", "player_1"
	battleType, battleCards, submitBattle = "magic", []string{"card_1"}, true
	t.Cleanup(func() {
		gameID, playerID = "", ""
		battleType, battleCards, submitBattle = "", nil, false
	})

	require.NoError(t, battleCmd.RunE(battleCmd, []string{"battle_1"}))

	fields := decode(t, &out)
	assert.Equal(t, "battle_1", fields["battle_id"].GetStringValue())
	assert.Equal(t, "magic", fields["battle_type"].GetStringValue())
	assert.True(t, fields["submit"].GetBoolValue())
	assert.False(t, fields["submit_turn"].GetBoolValue())
	cards := fields["card_ids"].GetListValue().GetValues()
	require.Len(t, cards, 1)
	assert.Equal(t, "card_1", cards[0].GetStringValue())
}

func TestSendReportsServerErrors(t *testing.T) {
	startEchoServer(t)

	var out bytes.Buffer
	err := send(&out, map[string]any{
		v1alpha1.FieldGameID:   "missing",
		v1alpha1.FieldPlayerID: "player_1",
	}, v1alpha1.GameServiceClient.GetState)
	require.Error(t, err)

	assert.Equal(t, "NOT_FOUND: game missing not found", err.Error())
	assert.Empty(t, out.String())
}

func TestCreateGameRejectsBadNumbers(t *testing.T) {
	err := createGameCmd.RunE(createGameCmd, []string{"two", "3"})
	assert.Error(t, err)
}
