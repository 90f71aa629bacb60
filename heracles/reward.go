package heracles

import (
	"encoding/json"
	"github.com/terrarium-earth/odysseus/snbt"
)

// Reward is one of the Heracles reward types below.
type Reward interface {
	Kind() string
	Header() Element
	reward()
}

type CommandReward struct {
	Element
	Command string `json:"command"`
}

type ItemStack struct {
	ID    string         `json:"id"`
	Count *int64         `json:"count,omitempty"`
	NBT   *snbt.Compound `json:"nbt,omitempty"`
}

type ItemReward struct {
	Element
	Item ItemStack `json:"item"`
}

type LootTableReward struct {
	Element
	LootTable string `json:"loot_table"`
}

type SelectableReward struct {
	Element
	Amount  *int      `json:"amount,omitempty"`
	Rewards RewardMap `json:"rewards"`
}

type XPReward struct {
	Element
	XPType string `json:"xptype"`
	Amount int64  `json:"amount"`
}

func (CommandReward) Kind() string    { return "heracles:command" }
func (ItemReward) Kind() string       { return "heracles:item" }
func (LootTableReward) Kind() string  { return "heracles:loottable" }
func (SelectableReward) Kind() string { return "heracles:selectable" }
func (XPReward) Kind() string         { return "heracles:xp" }

func (CommandReward) reward()    {}
func (ItemReward) reward()       {}
func (LootTableReward) reward()  {}
func (SelectableReward) reward() {}
func (XPReward) reward()         {}

type RewardMap map[string]Reward

var _ json.Marshaler = RewardMap{}

func (m RewardMap) MarshalJSON() ([]byte, error) {
	return marshalMap(m)
}
