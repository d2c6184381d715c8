package cards

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
	cardKeyPrefix      = "card:"
	playerIndexPrefix  = "card:player:"
	pendingIndexPrefix = "card:pending:"

	// Error messages
	errCardNil       = "card cannot be nil"
	errCardIDEmpty   = "card ID cannot be empty"
	errPlayerIDEmpty = "player ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis card repository.
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

// NewRedis creates a new Redis-backed card repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Add(ctx context.Context, input AddInput) (*AddOutput, error) {
	if err := validateCard(input.Card); err != nil {
		return nil, err
	}

	key := cardKeyPrefix + input.Card.ID
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("card with ID %s already exists", input.Card.ID)
	}

	if err := r.write(ctx, input.Card); err != nil {
		return nil, errors.Wrapf(err, "failed to add card")
	}

	return &AddOutput{Card: input.Card.Clone()}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCardIDEmpty)
	}

	card, err := redisclient.GetJSON[entities.Card](ctx, r.client, cardKeyPrefix+input.ID)
	if err != nil {
		if stderrors.Is(err, redisclient.ErrMissing) {
			return nil, errors.NotFoundf("card with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get card")
	}

	return &GetOutput{Card: card}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateCard(input.Card); err != nil {
		return nil, err
	}

	exists, err := r.client.Exists(ctx, cardKeyPrefix+input.Card.ID).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("card with ID %s not found", input.Card.ID)
	}

	if err := r.write(ctx, input.Card); err != nil {
		return nil, errors.Wrapf(err, "failed to update card")
	}

	return &UpdateOutput{Card: input.Card.Clone()}, nil
}

// write stores the blob and keeps the pending index in step with
// PendingResolution
func (r *redisRepository) write(ctx context.Context, card *entities.Card) error {
	data, err := json.Marshal(card)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, cardKeyPrefix+card.ID, data, 0)
	pipe.SAdd(ctx, playerIndexPrefix+card.PlayerID, card.ID)
	if card.PendingResolution {
		pipe.SAdd(ctx, pendingIndexPrefix+card.PlayerID, card.ID)
	} else {
		pipe.SRem(ctx, pendingIndexPrefix+card.PlayerID, card.ID)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) Remove(ctx context.Context, input RemoveInput) (*RemoveOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCardIDEmpty)
	}

	getOutput, err := r.Get(ctx, GetInput(input))
	if err != nil {
		if errors.IsNotFound(err) {
			return &RemoveOutput{Removed: false}, nil
		}
		return nil, err
	}
	card := getOutput.Card

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, cardKeyPrefix+card.ID)
	pipe.SRem(ctx, playerIndexPrefix+card.PlayerID, card.ID)
	pipe.SRem(ctx, pendingIndexPrefix+card.PlayerID, card.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to remove card")
	}

	return &RemoveOutput{Removed: true}, nil
}

func (r *redisRepository) ListByPlayer(ctx context.Context, input ListByPlayerInput) (*ListByPlayerOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	cards, err := r.listByIndex(ctx, playerIndexPrefix+input.PlayerID)
	if err != nil {
		return nil, err
	}

	return &ListByPlayerOutput{Cards: cards}, nil
}

func (r *redisRepository) ListPendingByPlayer(
	ctx context.Context,
	input ListPendingByPlayerInput,
) (*ListPendingByPlayerOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	cards, err := r.listByIndex(ctx, pendingIndexPrefix+input.PlayerID)
	if err != nil {
		return nil, err
	}

	return &ListPendingByPlayerOutput{Cards: cards}, nil
}

func (r *redisRepository) listByIndex(ctx context.Context, indexKey string) ([]*entities.Card, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get cards from index %s", indexKey)
	}
	sort.Strings(ids)

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, cardKeyPrefix+id)
	}

	cards, missing, err := redisclient.MGetJSON[entities.Card](ctx, r.client, keys)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get cards from index %s", indexKey)
	}

	for _, key := range missing {
		id := key[len(cardKeyPrefix):]
		slog.WarnContext(ctx, "card not found, cleaning up index",
			"card_id", id,
			"index_key", indexKey)
		r.client.SRem(ctx, indexKey, id)
	}

	return cards, nil
}

func validateCard(card *entities.Card) error {
	if card == nil {
		return errors.InvalidArgument(errCardNil)
	}
	if card.ID == "" {
		return errors.InvalidArgument(errCardIDEmpty)
	}
	if card.PlayerID == "" {
		return errors.InvalidArgument(errPlayerIDEmpty)
	}
	return nil
}
