// Package game implements the game orchestrator. It serializes actions per
// game, loads the game aggregate from storage, lets the engine apply the
// rules and writes the resulting changes back entity by entity.
package game

//go:generate mockgen -destination=mock/mock_service.go -package=gamemock github.com/KirkDiggler/hexgame-api/internal/orchestrators/game Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/hexgame-api/internal/engine"
	"github.com/KirkDiggler/hexgame-api/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
	"github.com/KirkDiggler/hexgame-api/internal/hexgrid"
	"github.com/KirkDiggler/hexgame-api/internal/repositories/battles"
	"github.com/KirkDiggler/hexgame-api/internal/repositories/cards"
	"github.com/KirkDiggler/hexgame-api/internal/repositories/characters"
	"github.com/KirkDiggler/hexgame-api/internal/repositories/games"
	"github.com/KirkDiggler/hexgame-api/internal/repositories/hexes"
	"github.com/KirkDiggler/hexgame-api/internal/repositories/players"
)

// Service defines the game actions exposed to transports. Every action
// returns the acting player's view after it applied.
type Service interface {
	CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error)
	GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error)
	Move(ctx context.Context, input *MoveInput) (*MoveOutput, error)
	PlayCard(ctx context.Context, input *PlayCardInput) (*PlayCardOutput, error)
	SubmitBattleAction(ctx context.Context, input *SubmitBattleActionInput) (*SubmitBattleActionOutput, error)
	EndTurn(ctx context.Context, input *EndTurnInput) (*EndTurnOutput, error)
}

// Config holds the dependencies for the game orchestrator
type Config struct {
	Engine        *engine.Engine
	GameRepo      games.Repository
	PlayerRepo    players.Repository
	CharacterRepo characters.Repository
	HexRepo       hexes.Repository
	CardRepo      cards.Repository
	BattleRepo    battles.Repository
	// EventBus is optional; without it no domain events are published
	EventBus events.EventBus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.GameRepo == nil {
		vb.RequiredField("GameRepo")
	}
	if c.PlayerRepo == nil {
		vb.RequiredField("PlayerRepo")
	}
	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.HexRepo == nil {
		vb.RequiredField("HexRepo")
	}
	if c.CardRepo == nil {
		vb.RequiredField("CardRepo")
	}
	if c.BattleRepo == nil {
		vb.RequiredField("BattleRepo")
	}

	return vb.Build()
}

type orchestrator struct {
	engine        *engine.Engine
	gameRepo      games.Repository
	playerRepo    players.Repository
	characterRepo characters.Repository
	hexRepo       hexes.Repository
	cardRepo      cards.Repository
	battleRepo    battles.Repository
	publisher     *rpgtoolkit.Publisher
	locks         *gameLocks
}

// NewOrchestrator creates a new game orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		engine:        cfg.Engine,
		gameRepo:      cfg.GameRepo,
		playerRepo:    cfg.PlayerRepo,
		characterRepo: cfg.CharacterRepo,
		hexRepo:       cfg.HexRepo,
		cardRepo:      cfg.CardRepo,
		battleRepo:    cfg.BattleRepo,
		locks:         newGameLocks(),
	}

	if cfg.EventBus != nil {
		publisher, err := rpgtoolkit.NewPublisher(&rpgtoolkit.PublisherConfig{EventBus: cfg.EventBus})
		if err != nil {
			return nil, err
		}
		o.publisher = publisher
	}

	return o, nil
}

func (o *orchestrator) CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state, err := o.engine.NewGame(engine.NewGameInput{
		NumberOfPlayers: input.NumberOfPlayers,
		MapSize:         input.MapSize,
	})
	if err != nil {
		return nil, err
	}

	unlock := o.locks.lock(state.Game.ID)
	defer unlock()

	if err := o.flush(ctx, state); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "game created",
		"game_id", state.Game.ID,
		"players", input.NumberOfPlayers,
		"map_size", input.MapSize,
		"hexes", len(state.Hexes))

	return &CreateGameOutput{
		GameID:    state.Game.ID,
		PlayerIDs: append([]string{}, state.Game.ParticipantPlayerIDs...),
	}, nil
}

func (o *orchestrator) GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateIDs(input.GameID, input.PlayerID); err != nil {
		return nil, err
	}

	unlock := o.locks.lock(input.GameID)
	state, err := o.load(ctx, input.GameID)
	unlock()
	if err != nil {
		return nil, err
	}

	view, err := engine.BuildView(state, input.PlayerID)
	if err != nil {
		return nil, err
	}

	return &GetStateOutput{View: view}, nil
}

func (o *orchestrator) Move(ctx context.Context, input *MoveInput) (*MoveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateIDs(input.GameID, input.PlayerID); err != nil {
		return nil, err
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character_id is required")
	}

	var result *engine.MoveResult
	view, err := o.apply(ctx, input.GameID, input.PlayerID, func(s *engine.State) error {
		var err error
		result, err = o.engine.Move(s, engine.MoveInput{
			PlayerID:    input.PlayerID,
			CharacterID: input.CharacterID,
			Target:      hexgrid.New(input.TargetQ, input.TargetR),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	if result.Battle != nil {
		slog.InfoContext(ctx, "battle started",
			"game_id", input.GameID,
			"battle_id", result.Battle.ID,
			"attacker", result.Battle.AttackerCharacterID,
			"defender", result.Battle.DefenderCharacterID)
	}

	return &MoveOutput{View: view, Battle: result.Battle.Clone()}, nil
}

func (o *orchestrator) PlayCard(ctx context.Context, input *PlayCardInput) (*PlayCardOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateIDs(input.GameID, input.PlayerID); err != nil {
		return nil, err
	}
	if input.CardID == "" {
		return nil, errors.InvalidArgument("card_id is required")
	}

	view, err := o.apply(ctx, input.GameID, input.PlayerID, func(s *engine.State) error {
		return o.engine.PlayCard(s, engine.PlayCardInput{
			PlayerID:          input.PlayerID,
			CardID:            input.CardID,
			TargetCharacterID: input.TargetCharacterID,
		})
	})
	if err != nil {
		return nil, err
	}

	return &PlayCardOutput{View: view}, nil
}

func (o *orchestrator) SubmitBattleAction(
	ctx context.Context,
	input *SubmitBattleActionInput,
) (*SubmitBattleActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateIDs(input.GameID, input.PlayerID); err != nil {
		return nil, err
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument("battle_id is required")
	}

	view, err := o.apply(ctx, input.GameID, input.PlayerID, func(s *engine.State) error {
		return o.engine.BattleAction(s, engine.BattleActionInput{
			PlayerID:   input.PlayerID,
			BattleID:   input.BattleID,
			Type:       input.BattleType,
			CardIDs:    input.CardIDs,
			Submit:     input.Submit,
			SubmitTurn: input.SubmitTurn,
		})
	})
	if err != nil {
		return nil, err
	}

	return &SubmitBattleActionOutput{View: view}, nil
}

func (o *orchestrator) EndTurn(ctx context.Context, input *EndTurnInput) (*EndTurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateIDs(input.GameID, input.PlayerID); err != nil {
		return nil, err
	}

	view, err := o.apply(ctx, input.GameID, input.PlayerID, func(s *engine.State) error {
		return o.engine.EndTurn(s, input.PlayerID)
	})
	if err != nil {
		return nil, err
	}

	return &EndTurnOutput{View: view}, nil
}

// apply runs one rule against the game while holding its lock, then
// persists what changed and returns the player's view. Rejected actions
// write nothing.
func (o *orchestrator) apply(
	ctx context.Context,
	gameID, playerID string,
	rule func(*engine.State) error,
) (*engine.View, error) {
	unlock := o.locks.lock(gameID)
	defer unlock()

	state, err := o.load(ctx, gameID)
	if err != nil {
		return nil, err
	}

	turn := state.Game.CurrentTurn
	if err := rule(state); err != nil {
		if errors.IsInfrastructure(err) {
			slog.ErrorContext(ctx, "game action failed", "game_id", gameID, "player_id", playerID, "error", err)
		}
		return nil, err
	}

	if err := o.flush(ctx, state); err != nil {
		return nil, err
	}

	if state.Game.CurrentTurn != turn {
		slog.InfoContext(ctx, "round resolved",
			"game_id", gameID,
			"turn", state.Game.CurrentTurn,
			"status", state.Game.Status)
	}

	return engine.BuildView(state, playerID)
}

func validateIDs(gameID, playerID string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("game_id", gameID, vb)
	errors.ValidateRequired("player_id", playerID, vb)
	return vb.Build()
}
