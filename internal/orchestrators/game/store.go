package game

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/hexgame-api/internal/engine"
	"github.com/KirkDiggler/hexgame-api/internal/entities"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
	"github.com/KirkDiggler/hexgame-api/internal/repositories/battles"
	"github.com/KirkDiggler/hexgame-api/internal/repositories/cards"
	"github.com/KirkDiggler/hexgame-api/internal/repositories/characters"
	"github.com/KirkDiggler/hexgame-api/internal/repositories/games"
	"github.com/KirkDiggler/hexgame-api/internal/repositories/hexes"
	"github.com/KirkDiggler/hexgame-api/internal/repositories/players"
)

// load reads every record of the game into a State. Battles resolved on
// the previous turn ride along for replay.
func (o *orchestrator) load(ctx context.Context, gameID string) (*engine.State, error) {
	gameOut, err := o.gameRepo.Get(ctx, games.GetInput{ID: gameID})
	if err != nil {
		return nil, o.storageError(ctx, err, "failed to load game", gameID)
	}
	game := gameOut.Game

	playersOut, err := o.playerRepo.ListByGame(ctx, players.ListByGameInput{GameID: gameID})
	if err != nil {
		return nil, o.storageError(ctx, err, "failed to load players", gameID)
	}

	charactersOut, err := o.characterRepo.ListByGame(ctx, characters.ListByGameInput{GameID: gameID})
	if err != nil {
		return nil, o.storageError(ctx, err, "failed to load characters", gameID)
	}

	hexesOut, err := o.hexRepo.ListByGame(ctx, hexes.ListByGameInput{GameID: gameID})
	if err != nil {
		return nil, o.storageError(ctx, err, "failed to load hexes", gameID)
	}

	var hand []*entities.Card
	for _, p := range playersOut.Players {
		cardsOut, err := o.cardRepo.ListByPlayer(ctx, cards.ListByPlayerInput{PlayerID: p.ID})
		if err != nil {
			return nil, o.storageError(ctx, err, "failed to load cards", gameID)
		}
		hand = append(hand, cardsOut.Cards...)
	}

	var active *entities.Battle
	activeOut, err := o.battleRepo.GetActive(ctx, battles.GetActiveInput{GameID: gameID})
	switch {
	case err == nil:
		active = activeOut.Battle
	case errors.IsNotFound(err):
	default:
		return nil, o.storageError(ctx, err, "failed to load active battle", gameID)
	}

	state := engine.NewState(game, playersOut.Players, charactersOut.Characters, hexesOut.Hexes, hand, active)

	if game.CurrentTurn > 1 {
		recentOut, err := o.battleRepo.ListCompletedOnTurn(ctx, battles.ListCompletedOnTurnInput{
			GameID: gameID,
			Turn:   game.CurrentTurn - 1,
		})
		if err != nil {
			return nil, o.storageError(ctx, err, "failed to load recent battles", gameID)
		}
		state.RecentBattles = recentOut.Battles
	}

	return state, nil
}

// flush writes the journal in order, one entity at a time, then publishes
// the raised events. Writes are not transactional across entities: a
// failure leaves earlier writes in place.
func (o *orchestrator) flush(ctx context.Context, state *engine.State) error {
	for _, m := range state.Journal() {
		if err := o.write(ctx, m); err != nil {
			slog.ErrorContext(ctx, "failed to persist game change",
				"game_id", state.Game.ID,
				"kind", m.Kind,
				"id", m.ID,
				"error", err)
			return errors.WrapWithCode(err, errors.CodeInternal, "failed to persist "+string(m.Kind)+" "+m.ID)
		}
	}

	if o.publisher == nil {
		return nil
	}
	if err := o.publisher.Publish(ctx, state.Events()); err != nil {
		// the changes are stored; a failing subscriber does not undo them
		slog.WarnContext(ctx, "failed to publish game events", "game_id", state.Game.ID, "error", err)
	}

	return nil
}

func (o *orchestrator) write(ctx context.Context, m engine.Mutation) error {
	var err error
	switch m.Kind {
	case engine.MutationCreateGame:
		_, err = o.gameRepo.Create(ctx, games.CreateInput{Game: m.Game})
	case engine.MutationSaveGame:
		_, err = o.gameRepo.Update(ctx, games.UpdateInput{Game: m.Game})
	case engine.MutationCreatePlayer:
		_, err = o.playerRepo.Create(ctx, players.CreateInput{Player: m.Player})
	case engine.MutationSavePlayer:
		_, err = o.playerRepo.Update(ctx, players.UpdateInput{Player: m.Player})
	case engine.MutationCreateHexes:
		_, err = o.hexRepo.CreateBatch(ctx, hexes.CreateBatchInput{GameID: m.ID, Hexes: m.Hexes})
	case engine.MutationSaveHex:
		for _, h := range m.Hexes {
			if _, err = o.hexRepo.Update(ctx, hexes.UpdateInput{Hex: h}); err != nil {
				break
			}
		}
	case engine.MutationCreateCharacter:
		_, err = o.characterRepo.Create(ctx, characters.CreateInput{Character: m.Character})
	case engine.MutationSaveCharacter:
		_, err = o.characterRepo.Update(ctx, characters.UpdateInput{Character: m.Character})
	case engine.MutationRemoveCharacter:
		_, err = o.characterRepo.Delete(ctx, characters.DeleteInput{ID: m.ID})
		if errors.IsNotFound(err) {
			err = nil
		}
	case engine.MutationAddCard:
		_, err = o.cardRepo.Add(ctx, cards.AddInput{Card: m.Card})
	case engine.MutationSaveCard:
		_, err = o.cardRepo.Update(ctx, cards.UpdateInput{Card: m.Card})
	case engine.MutationRemoveCard:
		_, err = o.cardRepo.Remove(ctx, cards.RemoveInput{ID: m.ID})
	case engine.MutationCreateBattle:
		_, err = o.battleRepo.Create(ctx, battles.CreateInput{Battle: m.Battle})
	case engine.MutationSaveBattle:
		_, err = o.battleRepo.Update(ctx, battles.UpdateInput{Battle: m.Battle})
	default:
		err = errors.Internalf("unknown mutation %s", m.Kind)
	}
	return err
}

// storageError passes not-found through and logs everything else as an
// infrastructure failure
func (o *orchestrator) storageError(ctx context.Context, err error, msg, gameID string) error {
	if errors.IsNotFound(err) {
		return err
	}
	slog.ErrorContext(ctx, msg, "game_id", gameID, "error", err)
	return errors.WrapWithCode(err, errors.CodeInternal, msg)
}
