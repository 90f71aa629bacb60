package ftb_quests

import (
	"encoding/json"
	"github.com/terrarium-earth/odysseus/snbt"
)

// Reward is one of the reward variants below. The set is closed.
type Reward interface {
	Header() Base
	reward()
}

// TableRef points at a reward table by stable id, by position in the sorted
// table list, or by embedding the table.
type TableRef struct {
	TableID   *ID          `json:"table_id"`
	Table     *int         `json:"table"`
	TableData *RewardTable `json:"table_data"`
}

type ItemReward struct {
	Base
	Item        Item           `json:"item"`
	Count       *int64         `json:"count"`
	Tag         *snbt.Compound `json:"tag"`
	RandomBonus int            `json:"random_bonus"`
	OnlyOne     bool           `json:"only_one"`
}

type CommandReward struct {
	Base
	Command       string `json:"command"`
	PlayerCommand bool   `json:"player_command"`
}

// LootReward covers both the loot and random reward types.
type LootReward struct {
	Base
	TableRef
}

type ChoiceReward struct {
	Base
	TableRef
}

type XPReward struct {
	Base
	XP *int64 `json:"xp"`
}

type XPLevelsReward struct {
	Base
	XPLevels *int64 `json:"xp_levels"`
}

type AdvancementReward struct {
	Base
	Advancement string `json:"advancement"`
}

type CustomReward struct {
	Base
}

type UnsupportedReward struct {
	Base
}

func (ItemReward) reward()        {}
func (CommandReward) reward()     {}
func (LootReward) reward()        {}
func (ChoiceReward) reward()      {}
func (XPReward) reward()          {}
func (XPLevelsReward) reward()    {}
func (AdvancementReward) reward() {}
func (CustomReward) reward()      {}
func (UnsupportedReward) reward() {}

type Rewards []Reward

var _ json.Unmarshaler = &Rewards{}

func (r *Rewards) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(Rewards, 0, len(raw))
	for _, m := range raw {
		reward, err := decodeReward(m)
		if err != nil {
			return err
		}
		out = append(out, reward)
	}
	*r = out
	return nil
}

func decodeReward(raw json.RawMessage) (Reward, error) {
	var base Base
	if err := json.Unmarshal(raw, &base); err != nil {
		return nil, err
	}
	switch base.Kind() {
	case "item":
		return decodeAs[ItemReward](raw)
	case "command":
		return decodeAs[CommandReward](raw)
	case "loot", "random":
		return decodeAs[LootReward](raw)
	case "choice":
		return decodeAs[ChoiceReward](raw)
	case "xp":
		return decodeAs[XPReward](raw)
	case "xp_levels":
		return decodeAs[XPLevelsReward](raw)
	case "advancement":
		return decodeAs[AdvancementReward](raw)
	case "custom":
		return decodeAs[CustomReward](raw)
	}
	return UnsupportedReward{Base: base}, nil
}
