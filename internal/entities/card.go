package entities

// CardEffect is the numeric payload of a card
type CardEffect struct {
	StatBonus          int  `json:"stat_bonus,omitempty"`
	AffectsStat        Stat `json:"affects_stat,omitempty"`
	BattleBonus        int  `json:"battle_bonus,omitempty"`
	DefensiveBonus     int  `json:"defensive_bonus,omitempty"`
	NegateTerrain      bool `json:"negate_terrain,omitempty"`
	AdditionalMovement int  `json:"additional_movement,omitempty"`
	Duration           int  `json:"duration,omitempty"`
}

// Card is a card held by, or in play for, a player
type Card struct {
	ID           string     `json:"id"`
	GameID       string     `json:"game_id"`
	PlayerID     string     `json:"player_id"`
	Type         CardType   `json:"type"`
	DefinitionID string     `json:"definition_id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Effect       CardEffect `json:"effect"`

	// PendingResolution marks a played card whose effect has not fired yet
	PendingResolution bool   `json:"pending_resolution"`
	TargetCharacterID string `json:"target_character_id,omitempty"`
	// PlayedOnTurn is 0 while the card is still in hand
	PlayedOnTurn int `json:"played_on_turn,omitempty"`
}

// InHand reports whether the card can still be played
func (c *Card) InHand() bool {
	return c.PlayedOnTurn == 0 && !c.PendingResolution
}

// Lingering reports whether the card resolved but still has duration left
func (c *Card) Lingering() bool {
	return c.PlayedOnTurn > 0 && !c.PendingResolution
}

// Clone returns a copy
func (c *Card) Clone() *Card {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
