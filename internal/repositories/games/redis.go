package games

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/KirkDiggler/hexgame-api/internal/entities"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
	"github.com/KirkDiggler/hexgame-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/hexgame-api/internal/redis"
)

const (
	gameKeyPrefix = "game:"

	// Error messages
	errGameNil     = "game cannot be nil"
	errGameIDEmpty = "game ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis game repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
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

// NewRedis creates a new Redis-backed game repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateGame(input.Game); err != nil {
		return nil, err
	}

	game := input.Game.Clone()
	now := r.clock.Now()
	game.CreatedAt = now
	game.UpdatedAt = now

	data, err := json.Marshal(game)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal game")
	}

	created, err := r.client.SetNX(ctx, gameKeyPrefix+game.ID, data, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create game")
	}
	if !created {
		return nil, errors.AlreadyExistsf("game with ID %s already exists", game.ID)
	}

	return &CreateOutput{Game: game}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	game, err := redisclient.GetJSON[entities.Game](ctx, r.client, gameKeyPrefix+input.ID)
	if err != nil {
		if stderrors.Is(err, redisclient.ErrMissing) {
			return nil, errors.NotFoundf("game with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get game")
	}

	return &GetOutput{Game: game}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateGame(input.Game); err != nil {
		return nil, err
	}

	game := input.Game.Clone()
	game.UpdatedAt = r.clock.Now()

	data, err := json.Marshal(game)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal game")
	}

	updated, err := r.client.SetXX(ctx, gameKeyPrefix+game.ID, data, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update game")
	}
	if !updated {
		return nil, errors.NotFoundf("game with ID %s not found", game.ID)
	}

	return &UpdateOutput{Game: game}, nil
}

func validateGame(game *entities.Game) error {
	if game == nil {
		return errors.InvalidArgument(errGameNil)
	}
	if game.ID == "" {
		return errors.InvalidArgument(errGameIDEmpty)
	}
	return nil
}
