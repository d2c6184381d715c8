package entities

import (
	"fmt"
	"strings"
)

// Kinds used as id prefixes and event entity types
const (
	KindGame      = "game"
	KindPlayer    = "player"
	KindCharacter = "character"
	KindHex       = "hex"
	KindCard      = "card"
	KindBattle    = "battle"
)

// GameStatus is the lifecycle state of a game
type GameStatus string

// Game statuses
const (
	GameStatusCreated    GameStatus = "CREATED"
	GameStatusInProgress GameStatus = "IN_PROGRESS"
	GameStatusFinished   GameStatus = "FINISHED"
)

// CardType separates cards by when they can be played
type CardType string

// Card types
const (
	CardTypeBattle   CardType = "BATTLE"
	CardTypeGeneral  CardType = "GENERAL"
	CardTypeStrategy CardType = "STRATEGY"
)

// ParseCardType parses a card type tag case-insensitively
func ParseCardType(s string) (CardType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(CardTypeBattle):
		return CardTypeBattle, nil
	case string(CardTypeGeneral):
		return CardTypeGeneral, nil
	case string(CardTypeStrategy):
		return CardTypeStrategy, nil
	default:
		return "", fmt.Errorf("unknown card type %q", s)
	}
}

// UnmarshalText rejects unknown card types
func (t *CardType) UnmarshalText(b []byte) error {
	parsed, err := ParseCardType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Stat names the character attribute a card or battle refers to. The empty
// value means the card applies regardless of battle type.
type Stat string

// Stats
const (
	StatUnspecified Stat = ""
	StatMelee       Stat = "MELEE"
	StatMagic       Stat = "MAGIC"
	StatDiplomacy   Stat = "DIPLOMACY"
	StatAll         Stat = "ALL"
)

// ParseStat parses a stat tag case-insensitively. Unknown tags are an error.
func ParseStat(s string) (Stat, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return StatUnspecified, nil
	case string(StatMelee):
		return StatMelee, nil
	case string(StatMagic):
		return StatMagic, nil
	case string(StatDiplomacy):
		return StatDiplomacy, nil
	case string(StatAll):
		return StatAll, nil
	default:
		return "", fmt.Errorf("unknown stat %q", s)
	}
}

// UnmarshalText rejects unknown stat tags
func (s *Stat) UnmarshalText(b []byte) error {
	parsed, err := ParseStat(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Matches reports whether a card tagged with s boosts a battle of type t
func (s Stat) Matches(t BattleType) bool {
	switch s {
	case StatUnspecified, StatAll:
		return true
	default:
		return string(s) == string(t)
	}
}

// BattleType is chosen by the defender and picks the stat both sides use
type BattleType string

// Battle types
const (
	BattleTypeUnset     BattleType = ""
	BattleTypeMelee     BattleType = "MELEE"
	BattleTypeMagic     BattleType = "MAGIC"
	BattleTypeDiplomacy BattleType = "DIPLOMACY"
)

// ParseBattleType parses a battle type case-insensitively. Unset is not a
// valid choice.
func ParseBattleType(s string) (BattleType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(BattleTypeMelee):
		return BattleTypeMelee, nil
	case string(BattleTypeMagic):
		return BattleTypeMagic, nil
	case string(BattleTypeDiplomacy):
		return BattleTypeDiplomacy, nil
	default:
		return BattleTypeUnset, fmt.Errorf("unknown battle type %q", s)
	}
}

// BattleState is the phase of a battle
type BattleState string

// Battle states. Transitions only go forward:
// AWAITING_TYPE -> IN_PROGRESS -> RESOLVED.
const (
	BattleStateAwaitingType BattleState = "AWAITING_TYPE"
	BattleStateInProgress   BattleState = "IN_PROGRESS"
	BattleStateResolved     BattleState = "RESOLVED"
)
