// Package v1alpha1 handles the hexgame GameService grpc interface
package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/hexgame-api/internal/entities"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
	"github.com/KirkDiggler/hexgame-api/internal/orchestrators/game"
)

// HandlerConfig holds dependencies for the game handler
type HandlerConfig struct {
	GameService game.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.GameService == nil {
		return errors.InvalidArgument("game service is required")
	}
	return nil
}

// Handler implements GameServiceServer
type Handler struct {
	gameService game.Service
}

var _ GameServiceServer = (*Handler)(nil)

// NewHandler creates a new game handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		gameService: cfg.GameService,
	}, nil
}

// CreateGame starts a game and returns its id and the player ids in turn order
func (h *Handler) CreateGame(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	vb := errors.NewValidationBuilder()
	players := r.requiredInt(FieldNumberOfPlayers, vb)
	mapSize := r.requiredInt(FieldMapSize, vb)
	if err := vb.Build(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.gameService.CreateGame(ctx, &game.CreateGameInput{
		NumberOfPlayers: players,
		MapSize:         mapSize,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := structpb.NewStruct(map[string]any{
		FieldGameID:    out.GameID,
		FieldPlayerIDs: stringList(out.PlayerIDs),
	})
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	return resp, nil
}

// GetState returns the game as the requesting player sees it
func (h *Handler) GetState(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	vb := errors.NewValidationBuilder()
	gameID := r.requiredString(FieldGameID, vb)
	playerID := r.requiredString(FieldPlayerID, vb)
	if err := vb.Build(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.gameService.GetState(ctx, &game.GetStateInput{
		GameID:   gameID,
		PlayerID: playerID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return viewResponse(out.View)
}

// Move steps a character onto an adjacent hex
func (h *Handler) Move(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	vb := errors.NewValidationBuilder()
	gameID := r.requiredString(FieldGameID, vb)
	playerID := r.requiredString(FieldPlayerID, vb)
	characterID := r.requiredString(FieldCharacterID, vb)
	q := r.requiredInt(FieldTargetQ, vb)
	rr := r.requiredInt(FieldTargetR, vb)
	if err := vb.Build(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.gameService.Move(ctx, &game.MoveInput{
		GameID:      gameID,
		PlayerID:    playerID,
		CharacterID: characterID,
		TargetQ:     q,
		TargetR:     rr,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return viewResponse(out.View)
}

// PlayCard queues a general or strategy card for the end of the turn
func (h *Handler) PlayCard(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	vb := errors.NewValidationBuilder()
	gameID := r.requiredString(FieldGameID, vb)
	playerID := r.requiredString(FieldPlayerID, vb)
	cardID := r.requiredString(FieldCardID, vb)
	if err := vb.Build(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.gameService.PlayCard(ctx, &game.PlayCardInput{
		GameID:            gameID,
		PlayerID:          playerID,
		CardID:            cardID,
		TargetCharacterID: r.optionalString(FieldTargetCharacterID),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return viewResponse(out.View)
}

// SubmitBattleAction chooses the battle type, commits cards and submits,
// in that order, for whichever parts the request carries
func (h *Handler) SubmitBattleAction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	vb := errors.NewValidationBuilder()
	gameID := r.requiredString(FieldGameID, vb)
	playerID := r.requiredString(FieldPlayerID, vb)
	battleID := r.requiredString(FieldBattleID, vb)
	cardIDs := r.strings(FieldCardIDs, vb)

	var battleType entities.BattleType
	if raw := r.optionalString(FieldBattleType); raw != "" {
		parsed, err := entities.ParseBattleType(raw)
		if err != nil {
			vb.InvalidField(FieldBattleType, err.Error())
		}
		battleType = parsed
	}
	if err := vb.Build(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.gameService.SubmitBattleAction(ctx, &game.SubmitBattleActionInput{
		GameID:     gameID,
		PlayerID:   playerID,
		BattleID:   battleID,
		BattleType: battleType,
		CardIDs:    cardIDs,
		Submit:     r.optionalBool(FieldSubmit),
		SubmitTurn: r.optionalBool(FieldSubmitTurn),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return viewResponse(out.View)
}

// EndTurn finishes the player's part of the current round
func (h *Handler) EndTurn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	vb := errors.NewValidationBuilder()
	gameID := r.requiredString(FieldGameID, vb)
	playerID := r.requiredString(FieldPlayerID, vb)
	if err := vb.Build(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.gameService.EndTurn(ctx, &game.EndTurnInput{
		GameID:   gameID,
		PlayerID: playerID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return viewResponse(out.View)
}
