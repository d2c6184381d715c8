package client

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/hexgame-api/internal/handlers/hexgame/v1alpha1"
)

var (
	targetCharacterID string
	battleType        string
	battleCards       []string
	submitBattle      bool
	submitTurn        bool
)

var createGameCmd = &cobra.Command{
	Use:   "create-game [players] [map-size]",
	Short: "Create a game",
	Long: `Create a game for 2 to 8 players on a map of radius 3 to 10.

  create-game 2 3`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		players, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid player count %q: %w", args[0], err)
		}
		mapSize, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid map size %q: %w", args[1], err)
		}
		return send(cmd.OutOrStdout(), map[string]any{
			v1alpha1.FieldNumberOfPlayers: players,
			v1alpha1.FieldMapSize:         mapSize,
		}, v1alpha1.GameServiceClient.CreateGame)
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the game as a player sees it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return send(cmd.OutOrStdout(), playerFields(), v1alpha1.GameServiceClient.GetState)
	},
}

var moveCmd = &cobra.Command{
	Use:   "move [character-id] [q] [r]",
	Short: "Move a character to an adjacent hex",
	Long: `Move a character one hex. Entering an enemy's hex starts a battle.

  move --game g --player p character_1 1 -1`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid q %q: %w", args[1], err)
		}
		r, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid r %q: %w", args[2], err)
		}
		fields := playerFields()
		fields[v1alpha1.FieldCharacterID] = args[0]
		fields[v1alpha1.FieldTargetQ] = q
		fields[v1alpha1.FieldTargetR] = r
		return send(cmd.OutOrStdout(), fields, v1alpha1.GameServiceClient.Move)
	},
}

var playCardCmd = &cobra.Command{
	Use:   "play-card [card-id]",
	Short: "Play a general or strategy card, resolved when the turn ends",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := playerFields()
		fields[v1alpha1.FieldCardID] = args[0]
		if targetCharacterID != "" {
			fields[v1alpha1.FieldTargetCharacterID] = targetCharacterID
		}
		return send(cmd.OutOrStdout(), fields, v1alpha1.GameServiceClient.PlayCard)
	},
}

var battleCmd = &cobra.Command{
	Use:   "battle [battle-id]",
	Short: "Choose a battle type, commit battle cards, or submit",
	Long: `Act in the active battle. The defender picks the type first.

  battle --game g --player p --type melee battle_1
  battle --game g --player p --cards card_1,card_2 --submit battle_1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := playerFields()
		fields[v1alpha1.FieldBattleID] = args[0]
		if battleType != "" {
			fields[v1alpha1.FieldBattleType] = battleType
		}
		if len(battleCards) > 0 {
			ids := make([]any, len(battleCards))
			for i, id := range battleCards {
				ids[i] = id
			}
			fields[v1alpha1.FieldCardIDs] = ids
		}
		fields[v1alpha1.FieldSubmit] = submitBattle
		fields[v1alpha1.FieldSubmitTurn] = submitTurn
		return send(cmd.OutOrStdout(), fields, v1alpha1.GameServiceClient.SubmitBattleAction)
	},
}

var endTurnCmd = &cobra.Command{
	Use:   "end-turn",
	Short: "End the player's turn",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return send(cmd.OutOrStdout(), playerFields(), v1alpha1.GameServiceClient.EndTurn)
	},
}

func init() {
	playCardCmd.Flags().StringVar(&targetCharacterID, "target", "", "character the card applies to")

	battleCmd.Flags().StringVar(&battleType, "type", "", "battle type: melee, magic or diplomacy")
	battleCmd.Flags().StringSliceVar(&battleCards, "cards", nil, "battle card ids to commit")
	battleCmd.Flags().BoolVar(&submitBattle, "submit", false, "submit the battle side")
	battleCmd.Flags().BoolVar(&submitTurn, "end-turn", false, "also end the turn after submitting")
}

func playerFields() map[string]any {
	return map[string]any{
		v1alpha1.FieldGameID:   gameID,
		v1alpha1.FieldPlayerID: playerID,
	}
}
