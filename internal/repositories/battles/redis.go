package battles

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sort"
	"strconv"

	"github.com/KirkDiggler/hexgame-api/internal/entities"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
	redisclient "github.com/KirkDiggler/hexgame-api/internal/redis"
)

const (
	battleKeyPrefix = "battle:"
	// active battles of a game
	activeIndexPrefix = "battle:active:"
	// resolved battles, keyed by game and completion turn
	completedIndexPrefix = "battle:completed:"

	// Error messages
	errBattleNil     = "battle cannot be nil"
	errBattleIDEmpty = "battle ID cannot be empty"
	errGameIDEmpty   = "game ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis battle repository.
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

// NewRedis creates a new Redis-backed battle repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateBattle(input.Battle); err != nil {
		return nil, err
	}

	key := battleKeyPrefix + input.Battle.ID
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("battle with ID %s already exists", input.Battle.ID)
	}

	if err := r.write(ctx, input.Battle); err != nil {
		return nil, errors.Wrapf(err, "failed to create battle")
	}

	return &CreateOutput{Battle: input.Battle.Clone()}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	battle, err := redisclient.GetJSON[entities.Battle](ctx, r.client, battleKeyPrefix+input.ID)
	if err != nil {
		if stderrors.Is(err, redisclient.ErrMissing) {
			return nil, errors.NotFoundf("battle with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get battle")
	}

	return &GetOutput{Battle: battle}, nil
}

func (r *redisRepository) GetActive(ctx context.Context, input GetActiveInput) (*GetActiveOutput, error) {
	active, err := r.ListActive(ctx, ListActiveInput(input))
	if err != nil {
		return nil, err
	}
	if len(active.Battles) == 0 {
		return nil, errors.NotFoundf("game %s has no active battle", input.GameID)
	}

	return &GetActiveOutput{Battle: active.Battles[0]}, nil
}

func (r *redisRepository) ListActive(ctx context.Context, input ListActiveInput) (*ListActiveOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	battles, err := r.listByIndex(ctx, activeIndexPrefix+input.GameID)
	if err != nil {
		return nil, err
	}

	return &ListActiveOutput{Battles: battles}, nil
}

func (r *redisRepository) ListSubmitted(ctx context.Context, input ListSubmittedInput) (*ListSubmittedOutput, error) {
	active, err := r.ListActive(ctx, ListActiveInput(input))
	if err != nil {
		return nil, err
	}

	var ready []*entities.Battle
	for _, b := range active.Battles {
		if b.BothSubmitted() {
			ready = append(ready, b)
		}
	}

	return &ListSubmittedOutput{Battles: ready}, nil
}

func (r *redisRepository) ListCompletedOnTurn(
	ctx context.Context,
	input ListCompletedOnTurnInput,
) (*ListCompletedOnTurnOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	battles, err := r.listByIndex(ctx, completedKey(input.GameID, input.Turn))
	if err != nil {
		return nil, err
	}

	return &ListCompletedOnTurnOutput{Battles: battles}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateBattle(input.Battle); err != nil {
		return nil, err
	}

	exists, err := r.client.Exists(ctx, battleKeyPrefix+input.Battle.ID).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("battle with ID %s not found", input.Battle.ID)
	}

	if err := r.write(ctx, input.Battle); err != nil {
		return nil, errors.Wrapf(err, "failed to update battle")
	}

	return &UpdateOutput{Battle: input.Battle.Clone()}, nil
}

// write stores the blob and moves the id from the active index to the
// completed index once the battle resolves
func (r *redisRepository) write(ctx context.Context, battle *entities.Battle) error {
	data, err := json.Marshal(battle)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, battleKeyPrefix+battle.ID, data, 0)
	if battle.IsCompleted {
		pipe.SRem(ctx, activeIndexPrefix+battle.GameID, battle.ID)
		pipe.SAdd(ctx, completedKey(battle.GameID, battle.CompletedTurn), battle.ID)
	} else {
		pipe.SAdd(ctx, activeIndexPrefix+battle.GameID, battle.ID)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) listByIndex(ctx context.Context, indexKey string) ([]*entities.Battle, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get battles from index %s", indexKey)
	}
	sort.Strings(ids)

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, battleKeyPrefix+id)
	}

	battles, missing, err := redisclient.MGetJSON[entities.Battle](ctx, r.client, keys)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get battles from index %s", indexKey)
	}
	if len(missing) > 0 {
		return nil, errors.Internalf("battle index %s references %d missing battles", indexKey, len(missing))
	}

	return battles, nil
}

func completedKey(gameID string, turn int) string {
	return completedIndexPrefix + gameID + ":" + strconv.Itoa(turn)
}

func validateBattle(battle *entities.Battle) error {
	if battle == nil {
		return errors.InvalidArgument(errBattleNil)
	}
	if battle.ID == "" {
		return errors.InvalidArgument(errBattleIDEmpty)
	}
	if battle.GameID == "" {
		return errors.InvalidArgument(errGameIDEmpty)
	}
	return nil
}
