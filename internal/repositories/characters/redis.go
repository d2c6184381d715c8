package characters

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
	characterKeyPrefix = "character:"
	gameIndexPrefix    = "character:game:"
	playerIndexPrefix  = "character:player:"

	// Error messages
	errCharacterNil     = "character cannot be nil"
	errCharacterIDEmpty = "character ID cannot be empty"
	errGameIDEmpty      = "game ID cannot be empty"
	errPlayerIDEmpty    = "player ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis character repository.
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

// NewRedis creates a new Redis-backed character repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateCharacter(input.Character); err != nil {
		return nil, err
	}

	key := characterKeyPrefix + input.Character.ID
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("character with ID %s already exists", input.Character.ID)
	}

	data, err := json.Marshal(input.Character)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, gameIndexPrefix+input.Character.GameID, input.Character.ID)
	pipe.SAdd(ctx, playerIndexPrefix+input.Character.PlayerID, input.Character.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create character")
	}

	return &CreateOutput{Character: input.Character.Clone()}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	character, err := redisclient.GetJSON[entities.Character](ctx, r.client, characterKeyPrefix+input.ID)
	if err != nil {
		if stderrors.Is(err, redisclient.ErrMissing) {
			return nil, errors.NotFoundf("character with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}

	return &GetOutput{Character: character}, nil
}

// Update replaces the character blob. Ownership never changes, so the
// indexes are left alone.
func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateCharacter(input.Character); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Character)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character")
	}

	updated, err := r.client.SetXX(ctx, characterKeyPrefix+input.Character.ID, data, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update character")
	}
	if !updated {
		return nil, errors.NotFoundf("character with ID %s not found", input.Character.ID)
	}

	return &UpdateOutput{Character: input.Character.Clone()}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	getOutput, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}
	character := getOutput.Character

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, characterKeyPrefix+input.ID)
	pipe.SRem(ctx, gameIndexPrefix+character.GameID, input.ID)
	pipe.SRem(ctx, playerIndexPrefix+character.PlayerID, input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByGame(ctx context.Context, input ListByGameInput) (*ListByGameOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	characters, err := r.listByIndex(ctx, gameIndexPrefix+input.GameID)
	if err != nil {
		return nil, err
	}

	return &ListByGameOutput{Characters: characters}, nil
}

func (r *redisRepository) ListByPlayer(ctx context.Context, input ListByPlayerInput) (*ListByPlayerOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	characters, err := r.listByIndex(ctx, playerIndexPrefix+input.PlayerID)
	if err != nil {
		return nil, err
	}

	return &ListByPlayerOutput{Characters: characters}, nil
}

// listByIndex loads every character named in a SET index and prunes ids whose
// blob is gone
func (r *redisRepository) listByIndex(ctx context.Context, indexKey string) ([]*entities.Character, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get characters from index %s", indexKey)
	}
	sort.Strings(ids)

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, characterKeyPrefix+id)
	}

	characters, missing, err := redisclient.MGetJSON[entities.Character](ctx, r.client, keys)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get characters from index %s", indexKey)
	}

	for _, key := range missing {
		id := key[len(characterKeyPrefix):]
		slog.WarnContext(ctx, "character not found, cleaning up index",
			"character_id", id,
			"index_key", indexKey)
		r.client.SRem(ctx, indexKey, id)
	}

	return characters, nil
}

func validateCharacter(character *entities.Character) error {
	if character == nil {
		return errors.InvalidArgument(errCharacterNil)
	}
	if character.ID == "" {
		return errors.InvalidArgument(errCharacterIDEmpty)
	}
	if character.GameID == "" {
		return errors.InvalidArgument(errGameIDEmpty)
	}
	if character.PlayerID == "" {
		return errors.InvalidArgument(errPlayerIDEmpty)
	}
	return nil
}
