package players

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"sort"

	"github.com/KirkDiggler/hexgame-api/internal/entities"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
	redisclient "github.com/KirkDiggler/hexgame-api/internal/redis"
)

const (
	playerKeyPrefix = "player:"
	gameIndexPrefix = "player:game:"

	// Error messages
	errPlayerNil     = "player cannot be nil"
	errPlayerIDEmpty = "player ID cannot be empty"
	errGameIDEmpty   = "game ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis player repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed player repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validatePlayer(input.Player); err != nil {
		return nil, err
	}

	key := playerKeyPrefix + input.Player.ID
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("player with ID %s already exists", input.Player.ID)
	}

	data, err := json.Marshal(input.Player)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal player")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, gameIndexPrefix+input.Player.GameID, input.Player.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create player")
	}

	return &CreateOutput{Player: input.Player.Clone()}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	player, err := redisclient.GetJSON[entities.Player](ctx, r.client, playerKeyPrefix+input.ID)
	if err != nil {
		if stderrors.Is(err, redisclient.ErrMissing) {
			return nil, errors.NotFoundf("player with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get player")
	}

	return &GetOutput{Player: player}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validatePlayer(input.Player); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Player)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal player")
	}

	updated, err := r.client.SetXX(ctx, playerKeyPrefix+input.Player.ID, data, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update player")
	}
	if !updated {
		return nil, errors.NotFoundf("player with ID %s not found", input.Player.ID)
	}

	return &UpdateOutput{Player: input.Player.Clone()}, nil
}

func (r *redisRepository) ListByGame(ctx context.Context, input ListByGameInput) (*ListByGameOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	indexKey := gameIndexPrefix + input.GameID
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get players from index %s", indexKey)
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, playerKeyPrefix+id)
	}

	players, missing, err := redisclient.MGetJSON[entities.Player](ctx, r.client, keys)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get players for game %s", input.GameID)
	}
	if len(missing) > 0 {
		slog.WarnContext(ctx, "player index references missing players",
			"game_id", input.GameID,
			"missing", missing)
	}

	sort.Slice(players, func(i, j int) bool {
		return players[i].Index < players[j].Index
	})

	return &ListByGameOutput{Players: players}, nil
}

func validatePlayer(player *entities.Player) error {
	if player == nil {
		return errors.InvalidArgument(errPlayerNil)
	}
	if player.ID == "" {
		return errors.InvalidArgument(errPlayerIDEmpty)
	}
	if player.GameID == "" {
		return errors.InvalidArgument(errGameIDEmpty)
	}
	return nil
}
