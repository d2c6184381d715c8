package hexes

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sort"

	"github.com/KirkDiggler/hexgame-api/internal/entities"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
	"github.com/KirkDiggler/hexgame-api/internal/hexgrid"
	redisclient "github.com/KirkDiggler/hexgame-api/internal/redis"
)

const (
	// Key pattern: hex:{game_id}:{q}:{r}
	hexKeyPrefix    = "hex:"
	gameIndexPrefix = "hex:game:"

	// Error messages
	errHexNil      = "hex cannot be nil"
	errGameIDEmpty = "game ID cannot be empty"
	errNoHexes     = "at least one hex is required"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis hex repository.
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

// NewRedis creates a new Redis-backed hex repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) CreateBatch(ctx context.Context, input CreateBatchInput) (*CreateBatchOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}
	if len(input.Hexes) == 0 {
		return nil, errors.InvalidArgument(errNoHexes)
	}

	pipe := r.client.TxPipeline()
	members := make([]interface{}, 0, len(input.Hexes))
	for _, hex := range input.Hexes {
		if err := validateHex(hex); err != nil {
			return nil, err
		}
		if hex.GameID != input.GameID {
			return nil, errors.InvalidArgumentf("hex %s belongs to game %s", hex.ID, hex.GameID)
		}

		data, err := json.Marshal(hex)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal hex")
		}
		pipe.Set(ctx, hexKey(hex.GameID, hex.Q, hex.R), data, 0)
		members = append(members, coordMember(hex.Q, hex.R))
	}
	pipe.SAdd(ctx, gameIndexPrefix+input.GameID, members...)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create hexes")
	}

	return &CreateBatchOutput{Count: len(input.Hexes)}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	hex, err := redisclient.GetJSON[entities.Hex](ctx, r.client, hexKey(input.GameID, input.Q, input.R))
	if err != nil {
		if stderrors.Is(err, redisclient.ErrMissing) {
			return nil, errors.NotFoundf("hex %s not found", hexgrid.New(input.Q, input.R))
		}
		return nil, errors.Wrapf(err, "failed to get hex")
	}

	return &GetOutput{Hex: hex}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateHex(input.Hex); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Hex)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal hex")
	}

	key := hexKey(input.Hex.GameID, input.Hex.Q, input.Hex.R)
	updated, err := r.client.SetXX(ctx, key, data, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update hex")
	}
	if !updated {
		return nil, errors.NotFoundf("hex %s not found", input.Hex.Coord())
	}

	return &UpdateOutput{Hex: input.Hex.Clone()}, nil
}

func (r *redisRepository) ListByGame(ctx context.Context, input ListByGameInput) (*ListByGameOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	indexKey := gameIndexPrefix + input.GameID
	members, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get hexes from index %s", indexKey)
	}

	keys := make([]string, 0, len(members))
	for _, m := range members {
		keys = append(keys, hexKeyPrefix+input.GameID+":"+m)
	}

	hexes, missing, err := redisclient.MGetJSON[entities.Hex](ctx, r.client, keys)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get hexes for game %s", input.GameID)
	}
	if len(missing) > 0 {
		return nil, errors.Internalf("game %s map is missing %d hexes", input.GameID, len(missing))
	}

	sort.Slice(hexes, func(i, j int) bool {
		if hexes[i].Q != hexes[j].Q {
			return hexes[i].Q < hexes[j].Q
		}
		return hexes[i].R < hexes[j].R
	})

	return &ListByGameOutput{Hexes: hexes}, nil
}

func hexKey(gameID string, q, r int) string {
	return hexKeyPrefix + gameID + ":" + coordMember(q, r)
}

func coordMember(q, r int) string {
	return fmt.Sprintf("%d:%d", q, r)
}

func validateHex(hex *entities.Hex) error {
	if hex == nil {
		return errors.InvalidArgument(errHexNil)
	}
	if hex.GameID == "" {
		return errors.InvalidArgument(errGameIDEmpty)
	}
	if !hexgrid.Valid(hex.Q, hex.R, hex.S) {
		return errors.InvalidArgumentf("hex %d,%d,%d does not satisfy q+r+s=0", hex.Q, hex.R, hex.S)
	}
	return nil
}
