package v1alpha1

import (
	"encoding/json"
	"math"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/hexgame-api/internal/engine"
	"github.com/KirkDiggler/hexgame-api/internal/entities"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
)

// Request and response field names
const (
	FieldNumberOfPlayers   = "number_of_players"
	FieldMapSize           = "map_size"
	FieldGameID            = "game_id"
	FieldPlayerID          = "player_id"
	FieldPlayerIDs         = "player_ids"
	FieldCharacterID       = "character_id"
	FieldTargetQ           = "target_q"
	FieldTargetR           = "target_r"
	FieldCardID            = "card_id"
	FieldTargetCharacterID = "target_character_id"
	FieldBattleID          = "battle_id"
	FieldBattleType        = "battle_type"
	FieldCardIDs           = "card_ids"
	FieldSubmit            = "submit"
	FieldSubmitTurn        = "submit_turn"
)

// request reads typed fields from a Struct. Missing fields read as zero.
type request struct {
	fields map[string]*structpb.Value
}

func newRequest(s *structpb.Struct) *request {
	return &request{fields: s.GetFields()}
}

func (r *request) has(field string) bool {
	v, ok := r.fields[field]
	if !ok {
		return false
	}
	_, isNull := v.GetKind().(*structpb.Value_NullValue)
	return !isNull
}

func (r *request) optionalString(field string) string {
	return r.fields[field].GetStringValue()
}

func (r *request) optionalBool(field string) bool {
	return r.fields[field].GetBoolValue()
}

func (r *request) requiredString(field string, vb *errors.ValidationBuilder) string {
	v := r.optionalString(field)
	errors.ValidateRequired(field, v, vb)
	return v
}

// requiredInt accepts whole numbers only, JSON numbers arrive as doubles
func (r *request) requiredInt(field string, vb *errors.ValidationBuilder) int {
	if !r.has(field) {
		vb.RequiredField(field)
		return 0
	}
	n, ok := r.fields[field].GetKind().(*structpb.Value_NumberValue)
	if !ok {
		vb.InvalidField(field, "must be a number")
		return 0
	}
	if n.NumberValue != math.Trunc(n.NumberValue) ||
		n.NumberValue > math.MaxInt32 || n.NumberValue < math.MinInt32 {
		vb.InvalidField(field, "must be a whole number")
		return 0
	}
	return int(n.NumberValue)
}

func (r *request) strings(field string, vb *errors.ValidationBuilder) []string {
	if !r.has(field) {
		return nil
	}
	list := r.fields[field].GetListValue()
	if list == nil {
		vb.InvalidField(field, "must be a list of strings")
		return nil
	}
	out := make([]string, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		s, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			vb.InvalidField(field, "must be a list of strings")
			return nil
		}
		out = append(out, s.StringValue)
	}
	return out
}

func stringList(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}

type visibleHex struct {
	*entities.Hex
	Explored bool `json:"explored"`
}

type viewMessage struct {
	GameID               string                `json:"game_id"`
	Turn                 int                   `json:"turn"`
	Round                int                   `json:"round"`
	Status               entities.GameStatus   `json:"status"`
	Player               *entities.Player      `json:"player"`
	Hand                 []*entities.Card      `json:"hand"`
	CardsInPlay          []*entities.Card      `json:"cards_in_play"`
	Characters           []*entities.Character `json:"characters"`
	AllCharacters        []*entities.Character `json:"all_characters"`
	Hexes                []visibleHex          `json:"hexes"`
	ActiveBattle         *entities.Battle      `json:"active_battle"`
	RecentBattles        []*entities.Battle    `json:"recent_battles"`
	CanAct               bool                  `json:"can_act"`
	HasLost              bool                  `json:"has_lost"`
	SubmittedPlayerIDs   []string              `json:"submitted_player_ids"`
	ParticipantPlayerIDs []string              `json:"participant_player_ids"`
}

func toViewMessage(v *engine.View) *viewMessage {
	msg := &viewMessage{
		GameID:               v.GameID,
		Turn:                 v.Turn,
		Round:                v.Round,
		Status:               v.Status,
		Player:               v.Player,
		Hand:                 nonNil(v.Hand),
		CardsInPlay:          nonNil(v.CardsInPlay),
		Characters:           nonNil(v.Characters),
		AllCharacters:        nonNil(v.AllCharacters),
		Hexes:                make([]visibleHex, 0, len(v.Hexes)),
		ActiveBattle:         v.ActiveBattle,
		RecentBattles:        nonNil(v.RecentBattles),
		CanAct:               v.CanAct,
		HasLost:              v.HasLost,
		SubmittedPlayerIDs:   nonNil(v.SubmittedPlayerIDs),
		ParticipantPlayerIDs: nonNil(v.ParticipantPlayerIDs),
	}
	for _, h := range v.Hexes {
		msg.Hexes = append(msg.Hexes, visibleHex{Hex: h.Hex, Explored: h.Explored})
	}
	return msg
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// viewResponse encodes a view through its JSON form so the wire shape
// follows the entity json tags
func viewResponse(v *engine.View) (*structpb.Struct, error) {
	if v == nil {
		return nil, errors.ToGRPCError(errors.Internal("missing view"))
	}
	data, err := json.Marshal(toViewMessage(v))
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode view"))
	}
	resp := &structpb.Struct{}
	if err := protojson.Unmarshal(data, resp); err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode view"))
	}
	return resp, nil
}
