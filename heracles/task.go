package heracles

import (
	"encoding/json"
	"github.com/terrarium-earth/odysseus/snbt"
)

// Task is one of the Heracles task types below.
type Task interface {
	Kind() string
	Header() Element
	task()
}

const (
	CollectAutomatic = "AUTOMATIC"
	CollectManual    = "MANUAL"
	CollectConsume   = "CONSUME"
)

const (
	XPPoints = "points"
	XPLevel  = "level"
)

type AdvancementTask struct {
	Element
	Advancements []string `json:"advancements"`
}

type BiomeTask struct {
	Element
	Biomes string `json:"biomes"`
}

type BlockInteractionTask struct {
	Element
	Block string            `json:"block"`
	State map[string]string `json:"state,omitempty"`
	NBT   *snbt.Compound    `json:"nbt,omitempty"`
}

type ChangedDimensionTask struct {
	Element
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

type CheckTask struct {
	Element
}

type EntityInteractionTask struct {
	Element
	Entity string         `json:"entity"`
	NBT    *snbt.Compound `json:"nbt,omitempty"`
}

type ItemTask struct {
	Element
	Item       string         `json:"item"`
	NBT        *snbt.Compound `json:"nbt,omitempty"`
	Amount     *int64         `json:"amount,omitempty"`
	Collection string         `json:"collection,omitempty"`
}

type EntityPredicate struct {
	Type string `json:"type"`
}

type KillEntityTask struct {
	Element
	Entity EntityPredicate `json:"entity"`
	Amount *int64          `json:"amount,omitempty"`
}

type LocationTask struct {
	Element
	Description string            `json:"description"`
	Predicate   LocationPredicate `json:"predicate"`
}

type LocationPredicate struct {
	Position  *PositionPredicate `json:"position,omitempty"`
	Dimension string             `json:"dimension,omitempty"`
}

type PositionPredicate struct {
	X *NumericRange `json:"x,omitempty"`
	Y *NumericRange `json:"y,omitempty"`
	Z *NumericRange `json:"z,omitempty"`
}

// NumericRange is either an exact value or a min/max pair.
type NumericRange struct {
	Exact    *float64
	Min, Max *float64
}

func Exactly(v float64) *NumericRange {
	return &NumericRange{Exact: &v}
}

func Between(min, max float64) *NumericRange {
	return &NumericRange{Min: &min, Max: &max}
}

var _ json.Marshaler = NumericRange{}

func (r NumericRange) MarshalJSON() ([]byte, error) {
	if r.Exact != nil {
		return json.Marshal(*r.Exact)
	}
	return json.Marshal(struct {
		Min *float64 `json:"min,omitempty"`
		Max *float64 `json:"max,omitempty"`
	}{r.Min, r.Max})
}

type StatTask struct {
	Element
	Stat   string `json:"stat"`
	Target int64  `json:"target"`
}

type StructureTask struct {
	Element
	Structures string `json:"structures"`
}

type XPTask struct {
	Element
	Amount int64  `json:"amount"`
	XPType string `json:"xptype"`
}

func (AdvancementTask) Kind() string       { return "heracles:advancement" }
func (BiomeTask) Kind() string             { return "heracles:biome" }
func (BlockInteractionTask) Kind() string  { return "heracles:block_interaction" }
func (ChangedDimensionTask) Kind() string  { return "heracles:changed_dimension" }
func (CheckTask) Kind() string             { return "heracles:check" }
func (EntityInteractionTask) Kind() string { return "heracles:entity_interaction" }
func (ItemTask) Kind() string              { return "heracles:item" }
func (KillEntityTask) Kind() string        { return "heracles:kill_entity" }
func (LocationTask) Kind() string          { return "heracles:location" }
func (StatTask) Kind() string              { return "heracles:stat" }
func (StructureTask) Kind() string         { return "heracles:structure" }
func (XPTask) Kind() string                { return "heracles:xp" }

func (AdvancementTask) task()       {}
func (BiomeTask) task()             {}
func (BlockInteractionTask) task()  {}
func (ChangedDimensionTask) task()  {}
func (CheckTask) task()             {}
func (EntityInteractionTask) task() {}
func (ItemTask) task()              {}
func (KillEntityTask) task()        {}
func (LocationTask) task()          {}
func (StatTask) task()              {}
func (StructureTask) task()         {}
func (XPTask) task()                {}

type TaskMap map[string]Task

var _ json.Marshaler = TaskMap{}

func (m TaskMap) MarshalJSON() ([]byte, error) {
	return marshalMap(m)
}
